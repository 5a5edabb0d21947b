package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
	"golang.org/x/text/encoding/unicode"
)

// lexString scans a double-quoted string literal, applying standard C
// escape rules plus the backtick-escape used for embedded macro references
// (left undecoded; the preprocessor reopens strings that set HasMacroRef).
// Unterminated strings diagnose at end-of-line and set Unterminated rather
// than failing; no closing quote is synthesized.
func (l *Lexer) lexString(startLoc sourcemgr.Location, leading []token.Trivia) token.Token {
	start := l.pos
	l.advance() // opening quote

	var decoded strings.Builder
	hasMacroRef := false
	unterminated := false

	for {
		if l.atEOF() {
			unterminated = true
			break
		}
		c := l.peekByte()
		if c == '\n' {
			unterminated = true
			break
		}
		if c == '"' {
			l.advance()
			break
		}
		if c == '`' {
			hasMacroRef = true
			decoded.WriteByte(l.advance())
			continue
		}
		if c == '\\' {
			l.advance()
			decoded.WriteString(l.decodeEscape(startLoc))
			continue
		}
		decoded.WriteByte(l.advance())
	}

	text := string(l.src[start:l.pos])
	if unterminated {
		l.sink.Report(startLoc, diag.CodeUnterminatedString, text)
		// No closing quote is added to Raw or Decoded: both hold only what
		// was actually scanned, so trivia+Raw still reproduce the source
		// bytes exactly, and StringValue.Unterminated marks the literal.
	}

	decodedStr := decoded.String()
	badUTF8 := false
	if l.cfg.validateUTF8 {
		decodedStr, badUTF8 = validateUTF8(decodedStr)
		if badUTF8 {
			l.sink.Report(startLoc, diag.CodeInvalidUTF8, text)
		}
	}

	return token.NewString(startLoc, text, leading, token.StringValue{
		Decoded:      decodedStr,
		HadBadUTF8:   badUTF8,
		Unterminated: unterminated,
		HasMacroRef:  hasMacroRef,
	})
}

func (l *Lexer) decodeEscape(strLoc sourcemgr.Location) string {
	if l.atEOF() {
		return ""
	}
	c := l.advance()
	switch c {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case '\\':
		return "\\"
	case '"':
		return "\""
	case '\'':
		return "'"
	case 'v':
		return "\v"
	case 'f':
		return "\f"
	case 'a':
		return "\a"
	case '`':
		return "`"
	case '\n':
		return "" // line continuation inside a string
	default:
		if c >= '0' && c <= '7' {
			val := int(c - '0')
			for i := 0; i < 2 && !l.atEOF() && l.peekByte() >= '0' && l.peekByte() <= '7'; i++ {
				val = val*8 + int(l.advance()-'0')
			}
			return string(rune(val))
		}
		// Unknown escape: keep the backslash and character verbatim, a
		// lenient degrade rather than a fatal error.
		return "\\" + string(c)
	}
}

// validateUTF8 re-decodes s through a strict UTF-8 decoder, replacing any
// invalid sequence with U+FFFD so downstream consumers never see
// ill-formed text, while reporting whether a replacement occurred.
func validateUTF8(s string) (string, bool) {
	if utf8.ValidString(s) {
		return s, false
	}
	dec := unicode.UTF8.NewDecoder()
	out, err := dec.String(s)
	if err != nil || !utf8.ValidString(out) {
		return strings.ToValidUTF8(s, string(utf8.RuneError)), true
	}
	return out, true
}
