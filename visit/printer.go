package visit

import (
	"strings"

	"github.com/aledsdavies/svfront/syntax"
)

// Printer reconstructs the exact source text a syntax.Node spans. It
// exists as a worked example of the dispatch contract, not a formatter:
// it emits every token's leading trivia plus its own raw text, in
// pre-order, which is invariant P1 (spec.md §3 invariant 3/§8) made
// concrete and testable.
type Printer struct{}

// Print reconstructs n's full source text, including every token's
// leading trivia (whitespace, comments, skipped-token recovery trivia,
// disabled conditional text).
func (Printer) Print(n *syntax.Node) string {
	var b strings.Builder
	for _, t := range n.Tokens() {
		b.WriteString(t.FullText())
	}
	return b.String()
}
