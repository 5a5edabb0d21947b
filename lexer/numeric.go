package lexer

import (
	"strconv"
	"strings"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
)

func isBaseSpecChar(c byte) bool {
	switch c {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	default:
		return false
	}
}

func isVectorDigit(c byte, base token.NumberBase) bool {
	switch c {
	case 'x', 'X', 'z', 'Z', '?', '_':
		return true
	}
	switch base {
	case token.BaseBinary:
		return c == '0' || c == '1'
	case token.BaseOctal:
		return c >= '0' && c <= '7'
	case token.BaseDecimal:
		return c >= '0' && c <= '9'
	case token.BaseHex:
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	default:
		return false
	}
}

// lexNumberOrTime scans the two-stage vector-literal grammar (spec.md
// §4.3): an optional decimal size, a mandatory base specifier introduced by
// `'`, then digits (including x/z/?/_). Inputs with no base specifier are
// either plain decimal integers/reals, or — when immediately followed by a
// recognized unit suffix — time literals.
func (l *Lexer) lexNumberOrTime(startLoc sourcemgr.Location, leading []token.Trivia) token.Token {
	start := l.pos

	sizeStart := l.pos
	for !l.atEOF() && isDigit(l.peekByte()) {
		l.advance()
	}
	sizeText := string(l.src[sizeStart:l.pos])

	if l.peekByte() == '\'' && isBaseSpecChar(l.peekByteAt(1)) {
		return l.lexBasedVector(startLoc, start, sizeText, leading)
	}

	// No base specifier: plain decimal integer or real literal.
	isReal := false
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isReal = true
		l.advance() // '.'
		for !l.atEOF() && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if c := l.peekByte(); c == 'e' || c == 'E' {
		save := l.pos
		l.advance()
		if c2 := l.peekByte(); c2 == '+' || c2 == '-' {
			l.advance()
		}
		if isDigit(l.peekByte()) {
			isReal = true
			for !l.atEOF() && isDigit(l.peekByte()) {
				l.advance()
			}
		} else {
			l.pos = save // not actually an exponent; back off
		}
	}

	text := string(l.src[start:l.pos])
	plain := strings.ReplaceAll(text, "_", "")

	if isReal {
		f, _ := strconv.ParseFloat(plain, 64)
		return token.NewNumber(startLoc, text, leading, token.NumberValue{IsReal: true, RealValue: f})
	}

	// Might be the start of a time literal: 1, 10, or 100 immediately
	// followed (no whitespace) by a unit suffix.
	if unitLen, unit, ok := l.peekTimeUnit(); ok {
		mag, _ := strconv.Atoi(plain)
		for i := 0; i < unitLen; i++ {
			l.advance()
		}
		fullText := string(l.src[start:l.pos])
		if mag != 1 && mag != 10 && mag != 100 {
			l.sink.Report(startLoc, diag.CodeBadTimeUnit, mag)
		}
		return token.NewTime(startLoc, fullText, leading, token.TimeValue{Magnitude: mag, Unit: unit})
	}

	n, _ := strconv.ParseUint(plain, 10, 64)
	bits := encodeUint(n)
	return token.NewNumber(startLoc, text, leading, token.NumberValue{Base: token.BaseUnspecified, Bits: bits, XZMask: make([]byte, len(bits))})
}

// peekTimeUnit looks for one of {s, ms, us, ns, ps, fs} starting at the
// current position without consuming, returning the suffix's byte length.
func (l *Lexer) peekTimeUnit() (int, token.TimeUnit, bool) {
	candidates := []string{"ms", "us", "ns", "ps", "fs", "s"} // longest first
	for _, c := range candidates {
		if l.hasPrefixAt(0, c) && !isIdentCont(l.peekByteAt(len(c))) {
			if u, ok := token.TimeUnitFromText(c); ok {
				return len(c), u, true
			}
		}
	}
	return 0, 0, false
}

func (l *Lexer) hasPrefixAt(off int, s string) bool {
	for i := 0; i < len(s); i++ {
		if l.peekByteAt(off+i) != s[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) lexBasedVector(startLoc sourcemgr.Location, start int, sizeText string, leading []token.Trivia) token.Token {
	l.advance() // '\''
	baseChar := l.advance()
	signed := false
	if c := l.peekByte(); c == 's' || c == 'S' {
		signed = true
		l.advance()
	}

	var base token.NumberBase
	switch baseChar {
	case 'b', 'B':
		base = token.BaseBinary
	case 'o', 'O':
		base = token.BaseOctal
	case 'd', 'D':
		base = token.BaseDecimal
	case 'h', 'H':
		base = token.BaseHex
	}

	digitsStart := l.pos
	for !l.atEOF() && (isVectorDigit(l.peekByte(), base) || isDigit(l.peekByte())) {
		l.advance()
	}
	digits := string(l.src[digitsStart:l.pos])

	bits, xz, badDigit := decodeVectorDigits(digits, base)
	if badDigit {
		l.sink.Report(startLoc, diag.CodeBadDigit, digits)
	}

	size := 0
	hasSize := sizeText != ""
	if hasSize {
		size, _ = strconv.Atoi(sizeText)
	}

	text := string(l.src[start:l.pos])
	return token.NewNumber(startLoc, text, leading, token.NumberValue{
		HasSize: hasSize, Size: size, Base: base, Signed: signed,
		Bits: bits, XZMask: xz, HadBadDigit: badDigit,
	})
}

// decodeVectorDigits converts a digit run (possibly containing x/z/?/_)
// into a 4-bit-per-digit bit array and a parallel X/Z mask. Underscores are
// ignored (valid only as separators; adjacency is not strictly validated,
// matching the spec's "ignored, present only to validate adjacency" note —
// a stricter adjacency check would reject leading/trailing/doubled
// underscores, which real-world sources violate constantly).
func decodeVectorDigits(digits string, base token.NumberBase) (bits, xz []byte, bad bool) {
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c == '_' {
			continue
		}
		if c == 'x' || c == 'X' || c == 'z' || c == 'Z' || c == '?' {
			bits = append(bits, 0)
			xz = append(xz, 1)
			continue
		}
		v, ok := digitValue(c, base)
		if !ok {
			bad = true
			v = 0
		}
		bits = append(bits, v)
		xz = append(xz, 0)
	}
	return bits, xz, bad
}

func digitValue(c byte, base token.NumberBase) (byte, bool) {
	var v byte
	switch {
	case c >= '0' && c <= '9':
		v = c - '0'
	case c >= 'a' && c <= 'f':
		v = c - 'a' + 10
	case c >= 'A' && c <= 'F':
		v = c - 'A' + 10
	default:
		return 0, false
	}
	switch base {
	case token.BaseBinary:
		return v, v <= 1
	case token.BaseOctal:
		return v, v <= 7
	case token.BaseHex:
		return v, true
	default: // decimal
		return v, v <= 9
	}
}

func encodeUint(n uint64) []byte {
	if n == 0 {
		return []byte{0}
	}
	var out []byte
	for n > 0 {
		out = append([]byte{byte(n & 0xF)}, out...)
		n >>= 4
	}
	return out
}
