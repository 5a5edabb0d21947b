package token

import (
	"strings"

	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/sourcemgr"
)

// NumberBase is the base specifier of a based (sized or unsized) vector
// literal.
type NumberBase int

const (
	BaseUnspecified NumberBase = iota // plain decimal integer/real, no 'b|'o|'d|'h
	BaseBinary
	BaseOctal
	BaseDecimal
	BaseHex
)

// NumberValue is the structured payload of a NumberLiteral token: width,
// base, sign, and the value as a digit array plus a parallel x/z mask, one
// byte per digit, most significant first. For a based literal each entry
// is one source digit's value in the literal's own base (underscores
// dropped); for an unbased decimal integer the entries are the value's
// hexadecimal digits.
type NumberValue struct {
	HasSize    bool // an explicit "<size>'" prefix was present
	Size       int  // bit width; 0 when HasSize is false
	Base       NumberBase
	Signed     bool // base specifier was 's'/'S' (e.g. 'sh, 'sd)
	Bits       []byte
	XZMask     []byte // same length as Bits; bit set means that digit is X or Z
	IsReal     bool   // an unsized real literal (1.5, 2.3e10); Bits/XZMask unused
	RealValue  float64
	HadBadDigit bool // a diagnostic was already reported for a malformed digit
}

// TimeUnit is the closed set of valid time-literal suffixes.
type TimeUnit int

const (
	UnitSeconds TimeUnit = iota
	UnitMilliseconds
	UnitMicroseconds
	UnitNanoseconds
	UnitPicoseconds
	UnitFemtoseconds
)

var timeUnitText = map[TimeUnit]string{
	UnitSeconds: "s", UnitMilliseconds: "ms", UnitMicroseconds: "us",
	UnitNanoseconds: "ns", UnitPicoseconds: "ps", UnitFemtoseconds: "fs",
}

func (u TimeUnit) String() string { return timeUnitText[u] }

// TimeUnitFromText looks up a time-literal suffix; ok is false for any text
// outside the closed set {s, ms, us, ns, ps, fs}.
func TimeUnitFromText(s string) (TimeUnit, bool) {
	for u, text := range timeUnitText {
		if text == s {
			return u, true
		}
	}
	return 0, false
}

// TimeValue is the payload of a TimeLiteral token.
type TimeValue struct {
	Magnitude int // valid values are 1, 10, and 100; the lexer keeps any
	// other magnitude as scanned and reports a diagnostic (not a panic)
	Unit TimeUnit
}

// StringValue is the payload of a StringLiteral token: the decoded text
// (escapes resolved, backtick-escapes left for the preprocessor to reopen)
// plus whether decoding had to degrade (invalid UTF-8 or an unterminated
// literal).
type StringValue struct {
	Decoded      string
	HadBadUTF8   bool
	Unterminated bool
	HasMacroRef  bool // contains a `-escaped embedded macro reference for the preprocessor to reopen
}

// Token is an immutable lexical unit. Equality (via Equal) compares Kind
// and payload, never Location, per the token-model contract.
type Token struct {
	Kind     Kind
	Location sourcemgr.Location
	Raw      string
	Leading  []Trivia

	// Exactly one of these is meaningful, selected by Kind.
	IdentValue  arena.StringID
	NumberValue NumberValue
	StringValue StringValue
	TimeValue   TimeValue

	// Missing is set by parser error recovery when this token was
	// synthesized rather than scanned; Raw is empty in that case.
	Missing bool
}

// NewIdentifier constructs an identifier/keyword token. kind should be
// Identifier, SystemIdentifier, or a Kw* keyword kind.
func NewIdentifier(kind Kind, loc sourcemgr.Location, raw string, leading []Trivia, id arena.StringID) Token {
	return Token{Kind: kind, Location: loc, Raw: raw, Leading: leading, IdentValue: id}
}

// NewNumber constructs a NumberLiteral token.
func NewNumber(loc sourcemgr.Location, raw string, leading []Trivia, v NumberValue) Token {
	return Token{Kind: NumberLiteral, Location: loc, Raw: raw, Leading: leading, NumberValue: v}
}

// NewString constructs a StringLiteral token.
func NewString(loc sourcemgr.Location, raw string, leading []Trivia, v StringValue) Token {
	return Token{Kind: StringLiteral, Location: loc, Raw: raw, Leading: leading, StringValue: v}
}

// NewTime constructs a TimeLiteral token.
func NewTime(loc sourcemgr.Location, raw string, leading []Trivia, v TimeValue) Token {
	return Token{Kind: TimeLiteral, Location: loc, Raw: raw, Leading: leading, TimeValue: v}
}

// NewSimple constructs a punctuator/operator token carrying no payload.
func NewSimple(kind Kind, loc sourcemgr.Location, raw string, leading []Trivia) Token {
	return Token{Kind: kind, Location: loc, Raw: raw, Leading: leading}
}

// NewMissing synthesizes a missing token of the expected kind at loc, used
// by parser error recovery (spec.md class-3 syntactic errors).
func NewMissing(kind Kind, loc sourcemgr.Location) Token {
	return Token{Kind: kind, Location: loc, Missing: true}
}

// Equal compares Kind and payload, ignoring Location, as required by the
// token-model contract ("equality compares kind and payload, not
// location").
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind || t.Missing != other.Missing {
		return false
	}
	switch t.Kind {
	case Identifier, SystemIdentifier:
		return t.IdentValue == other.IdentValue
	case NumberLiteral:
		return numberEqual(t.NumberValue, other.NumberValue)
	case StringLiteral:
		return t.StringValue == other.StringValue
	case TimeLiteral:
		return t.TimeValue == other.TimeValue
	default:
		if t.Kind.IsKeyword() {
			return true
		}
		return t.Raw == other.Raw
	}
}

func numberEqual(a, b NumberValue) bool {
	if a.HasSize != b.HasSize || a.Size != b.Size || a.Base != b.Base ||
		a.Signed != b.Signed || a.IsReal != b.IsReal || a.RealValue != b.RealValue {
		return false
	}
	return string(a.Bits) == string(b.Bits) && string(a.XZMask) == string(b.XZMask)
}

// FullText reconstructs the exact source text this token and its leading
// trivia cover: every trivia's Raw, in order, followed by the token's own
// Raw. Concatenating FullText across a stream in order is invariant P1.
func (t Token) FullText() string {
	if len(t.Leading) == 0 {
		return t.Raw
	}
	var b strings.Builder
	for _, tr := range t.Leading {
		b.WriteString(tr.Raw)
	}
	b.WriteString(t.Raw)
	return b.String()
}

// IsMissing reports whether this token was synthesized by error recovery.
func (t Token) IsMissing() bool { return t.Missing }
