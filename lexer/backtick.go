package lexer

import (
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
)

// lexBacktick handles the three backtick-led forms the preprocessor needs
// as distinct tokens: `` (token-pasting), `" (stringification delimiter),
// and `name (a directive or macro invocation). A lone backtick with
// nothing identifier-like after it is returned as its own Backtick token so
// the preprocessor can diagnose it rather than the lexer guessing.
func (l *Lexer) lexBacktick(startLoc sourcemgr.Location, leading []token.Trivia) token.Token {
	start := l.pos
	l.advance() // consume the leading `

	switch l.peekByte() {
	case '`':
		l.advance()
		return token.NewSimple(token.MacroEscapeTick, startLoc, string(l.src[start:l.pos]), leading)
	case '"':
		l.advance()
		return token.NewSimple(token.MacroStringifyTick, startLoc, string(l.src[start:l.pos]), leading)
	}

	if isIdentStart(l.peekByte()) && l.peekByte() != '$' {
		for !l.atEOF() && isIdentCont(l.peekByte()) {
			l.advance()
		}
		text := string(l.src[start:l.pos]) // includes leading backtick
		name := text[1:]
		return token.NewIdentifier(token.DirectiveName, startLoc, text, leading, l.pool.Intern(name))
	}

	return token.NewSimple(token.Backtick, startLoc, string(l.src[start:l.pos]), leading)
}
