package parser

import "github.com/aledsdavies/svfront/token"

// Disambiguation helpers never consume a token: each reads only the peek
// buffer (bounded to the 4-token horizon the preprocessor guarantees) and
// returns a boolean. Per spec.md §4.5, when a decision would need more
// lookahead than the horizon allows, the rule errs permissive (returns
// true for the more general production) rather than guessing wrong and
// misparsing.
//
// portDirections and netTypeKeywords are checked against Peek(0) only;
// ports and nets are always introduced by one of these fixed keywords, so
// one token of lookahead is enough to classify them.
var portDirections = map[token.Kind]bool{
	token.KwInput:  true,
	token.KwOutput: true,
	token.KwInout:  true,
}

var netTypeKeywords = map[token.Kind]bool{
	token.KwWire: true,
}

var variableTypeKeywords = map[token.Kind]bool{
	token.KwReg:   true,
	token.KwLogic: true,
	token.KwBit:   true,
	token.KwInt:   true,
	token.KwVar:   true,
}

// isPortDeclaration reports whether the tokens starting at the cursor form
// an ANSI-style port declaration (a direction keyword leads it).
func (p *Parser) isPortDeclaration() bool {
	return portDirections[p.peek(0).Kind]
}

// isNetDeclaration reports whether the cursor is at a net declaration
// (`wire ...;`), as opposed to a variable declaration.
func (p *Parser) isNetDeclaration() bool {
	return netTypeKeywords[p.peek(0).Kind]
}

// isVariableDeclaration reports whether the cursor is at a variable
// declaration (`reg`/`logic`/`bit`/`int`/`var ...;`).
func (p *Parser) isVariableDeclaration() bool {
	return variableTypeKeywords[p.peek(0).Kind]
}

// isHierarchyInstantiation distinguishes `Type inst(...)` (instantiation:
// two identifiers before the paren) from an expression-statement call
// `name(...)` (one identifier before the paren), within the 4-token
// horizon. Beyond that horizon (e.g. a parameterized instantiation
// `Type #(...) inst(...)`) it permissively reports true, since a bare call
// expression can never be followed by a '#'.
func (p *Parser) isHierarchyInstantiation() bool {
	if p.peek(0).Kind != token.Identifier {
		return false
	}
	switch p.peek(1).Kind {
	case token.Identifier:
		return p.peek(2).Kind == token.LParen || p.peek(2).Kind == token.LBracket
	case token.Hash:
		return true
	default:
		return false
	}
}

// isNonAnsiPort reports whether the cursor is a bare port name in a
// non-ANSI port list: an identifier immediately followed by ',' or ')',
// with no direction/type keyword of its own (those appear later in the
// module body for a non-ANSI header).
func (p *Parser) isNonAnsiPort() bool {
	return p.isPlainPortName() && !p.isPortDeclaration()
}

// isPlainPortName reports whether the cursor is an identifier that
// terminates a port-list entry (followed by a separator or the list's
// closing paren).
func (p *Parser) isPlainPortName() bool {
	if p.peek(0).Kind != token.Identifier {
		return false
	}
	switch p.peek(1).Kind {
	case token.Comma, token.RParen:
		return true
	default:
		return false
	}
}
