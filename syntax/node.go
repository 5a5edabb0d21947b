package syntax

import (
	"strings"

	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
)

// Element is the TokenOrSyntax alternation the specification calls for in
// separated lists and fixed node schemas: exactly one of Token or Node is
// set.
type Element struct {
	Token *token.Token
	Node  *Node
}

// TokenElement wraps t as a leaf Element.
func TokenElement(t token.Token) Element { return Element{Token: &t} }

// NodeElement wraps n as a child Element.
func NodeElement(n *Node) Element { return Element{Node: n} }

// IsToken reports whether this element is a leaf token.
func (e Element) IsToken() bool { return e.Token != nil }

// Location returns the starting location of whichever alternative is set.
func (e Element) Location() sourcemgr.Location {
	if e.Token != nil {
		return e.Token.Location
	}
	if e.Node != nil {
		return e.Node.Location()
	}
	return sourcemgr.Location{}
}

// fullText reconstructs e's exact source span, recursing into child nodes.
func (e Element) fullText() string {
	if e.Token != nil {
		return e.Token.FullText()
	}
	if e.Node != nil {
		return e.Node.FullText()
	}
	return ""
}

// Node is a concrete-syntax tree node: a Kind tag plus an ordered list of
// child Elements following a fixed schema per kind. Nodes are write-once
// after construction (via New/NewMissing below) and never mutated.
//
// Directive nodes (Kind.IsDirective()) additionally carry Name, the
// directive identifier text (e.g. "define", "ifdef"), satisfying
// token.DirectiveSyntax so a Node can be attached to TriviaDirective
// without the token package importing syntax.
type Node struct {
	Kind     Kind
	Elements []Element
	Name     string // directive name, set only for Kind.IsDirective()

	// Missing marks a node synthesized entirely by error recovery (e.g. a
	// production that could not even begin parsing); it carries no real
	// source text.
	Missing bool
}

// New constructs a Node of the given kind from elems. The schema (which
// positions hold which children) is a convention enforced by each parser
// production's constructor function in parser/, not by this generic type.
func New(kind Kind, elems ...Element) *Node {
	return &Node{Kind: kind, Elements: elems}
}

// NewMissing constructs a sentinel node for a production that could not be
// parsed at all (distinct from a single missing token — see
// token.NewMissing for that finer-grained case).
func NewMissing(kind Kind) *Node {
	return &Node{Kind: kind, Missing: true}
}

// DirectiveName satisfies token.DirectiveSyntax.
func (n *Node) DirectiveName() string { return n.Name }

// Location returns the location of this node's first element, recursing
// into the first child if it is itself a node. Returns the zero Location
// for an empty node.
func (n *Node) Location() sourcemgr.Location {
	if n == nil || len(n.Elements) == 0 {
		return sourcemgr.Location{}
	}
	return n.Elements[0].Location()
}

// FullText reconstructs the exact source text spanned by n: every
// element's FullText, concatenated in order. A CompilationUnit's FullText,
// whose last element is the EOF token with its leading trivia, equals the
// whole input buffer — invariant P1.
func (n *Node) FullText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for _, e := range n.Elements {
		b.WriteString(e.fullText())
	}
	return b.String()
}

// Tokens returns every token directly or transitively owned by n, in
// pre-order; used by visit.Printer and by the P1 round-trip tests
// (token-stream concatenation order, spec.md §3 invariant 3).
func (n *Node) Tokens() []token.Token {
	var out []token.Token
	n.collectTokens(&out)
	return out
}

func (n *Node) collectTokens(out *[]token.Token) {
	if n == nil {
		return
	}
	for _, e := range n.Elements {
		if e.Token != nil {
			*out = append(*out, *e.Token)
		} else if e.Node != nil {
			e.Node.collectTokens(out)
		}
	}
}

// ChildNode returns the i'th element's Node, or nil if out of range, not a
// node, or n is nil. Parser/binder accessor helpers use this to read a
// fixed-schema child by position.
func (n *Node) ChildNode(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Elements) {
		return nil
	}
	return n.Elements[i].Node
}

// ChildToken returns the i'th element's Token, or nil if out of range, not
// a token, or n is nil.
func (n *Node) ChildToken(i int) *token.Token {
	if n == nil || i < 0 || i >= len(n.Elements) {
		return nil
	}
	return n.Elements[i].Token
}

// ChildNodesOfKind returns every direct child Node element whose Kind ==
// kind, in order; used to read variable-length lists (module items,
// statement lists, case items) out of a fixed-schema node.
func (n *Node) ChildNodesOfKind(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, e := range n.Elements {
		if e.Node != nil && e.Node.Kind == kind {
			out = append(out, e.Node)
		}
	}
	return out
}

// IsMissing reports whether n was synthesized by error recovery with no
// real content.
func (n *Node) IsMissing() bool { return n == nil || n.Missing }
