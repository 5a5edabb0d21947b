package parser

import (
	"strings"

	"github.com/aledsdavies/svfront/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// suggestExpected returns the spelling of whichever expected kind is
// closest (by edit distance) to got's raw text, for a did-you-mean hint on
// an unexpected-token diagnostic. Returns "" when got isn't close to any
// of them or when none of the expected kinds have a fixed spelling (e.g.
// Identifier).
func suggestExpected(got token.Token, expected []token.Kind) string {
	raw := strings.ToLower(got.Raw)
	if raw == "" {
		return ""
	}
	best, bestDist := "", 3
	for _, k := range expected {
		// Identifiers, literals and other kinds below KwModule, plus
		// DirectiveName, have no fixed spelling: String() gives their kind
		// name, which is no useful suggestion.
		if k < token.KwModule || k == token.DirectiveName {
			continue
		}
		spelling := k.String()
		d := fuzzy.LevenshteinDistance(raw, strings.ToLower(spelling))
		if d < bestDist {
			bestDist, best = d, spelling
		}
	}
	return best
}
