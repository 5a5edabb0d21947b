package lexer

import (
	"testing"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/token"
)

func newTestLexer(t *testing.T, src string) (*Lexer, *diag.Bag) {
	t.Helper()
	a := arena.New()
	pool := arena.NewStringPool(a)
	bag := diag.NewBag()
	return New(1, []byte(src), bag, pool), bag
}

func allTokens(l *Lexer) []token.Token {
	var out []token.Token
	for {
		tok := l.Lex()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Scenario 1: `1'b0` -> one numeric-literal token, width=1, base=binary,
// value bits = `0`, no X/Z.
func TestScenarioSizedBinaryLiteral(t *testing.T) {
	l, bag := newTestLexer(t, "1'b0")
	toks := allTokens(l)
	if len(toks) != 2 { // number + EOF
		t.Fatalf("expected 1 token + EOF, got %d: %+v", len(toks), toks)
	}
	num := toks[0]
	if num.Kind != token.NumberLiteral {
		t.Fatalf("kind = %v, want NumberLiteral", num.Kind)
	}
	if !num.NumberValue.HasSize || num.NumberValue.Size != 1 {
		t.Fatalf("expected size=1, got %+v", num.NumberValue)
	}
	if num.NumberValue.Base != token.BaseBinary {
		t.Fatalf("expected binary base, got %v", num.NumberValue.Base)
	}
	if len(num.NumberValue.Bits) != 1 || num.NumberValue.Bits[0] != 0 {
		t.Fatalf("expected single zero bit, got %v", num.NumberValue.Bits)
	}
	for _, x := range num.NumberValue.XZMask {
		if x != 0 {
			t.Fatalf("expected no X/Z bits, got mask %v", num.NumberValue.XZMask)
		}
	}
	if !bag.Empty() {
		t.Fatalf("expected no diagnostics, got %v", bag.All())
	}
}

func TestLexIdentifierAndKeyword(t *testing.T) {
	l, _ := newTestLexer(t, "module foo")
	toks := allTokens(l)
	if toks[0].Kind != token.KwModule {
		t.Fatalf("expected KwModule, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Identifier {
		t.Fatalf("expected Identifier, got %v", toks[1].Kind)
	}
}

func TestLexXZLiteral(t *testing.T) {
	l, bag := newTestLexer(t, "4'bxz01")
	toks := allTokens(l)
	nv := toks[0].NumberValue
	if nv.Size != 4 || len(nv.Bits) != 4 {
		t.Fatalf("unexpected %+v", nv)
	}
	if nv.XZMask[0] != 1 || nv.XZMask[1] != 1 || nv.XZMask[2] != 0 || nv.XZMask[3] != 0 {
		t.Fatalf("xz mask = %v, want [1,1,0,0]", nv.XZMask)
	}
	if !bag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", bag.All())
	}
}

func TestLexBadDigitDiagnoses(t *testing.T) {
	l, bag := newTestLexer(t, "3'b012") // '2' invalid in binary
	toks := allTokens(l)
	if !toks[0].NumberValue.HadBadDigit {
		t.Fatalf("expected HadBadDigit")
	}
	if bag.Empty() {
		t.Fatalf("expected a bad-digit diagnostic")
	}
}

func TestLexTimeLiteral(t *testing.T) {
	l, bag := newTestLexer(t, "10ns")
	toks := allTokens(l)
	if toks[0].Kind != token.TimeLiteral {
		t.Fatalf("kind = %v, want TimeLiteral", toks[0].Kind)
	}
	if toks[0].TimeValue.Magnitude != 10 || toks[0].TimeValue.Unit != token.UnitNanoseconds {
		t.Fatalf("unexpected time value %+v", toks[0].TimeValue)
	}
	if !bag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", bag.All())
	}
}

func TestLexTimeLiteralBadMagnitudeDiagnoses(t *testing.T) {
	l, bag := newTestLexer(t, "7ns")
	toks := allTokens(l)
	if toks[0].Kind != token.TimeLiteral {
		t.Fatalf("kind = %v, want TimeLiteral", toks[0].Kind)
	}
	if bag.Empty() {
		t.Fatalf("expected bad-time-unit diagnostic for magnitude 7")
	}
}

func TestLexPlainDecimalIsNotTimeLiteral(t *testing.T) {
	l, _ := newTestLexer(t, "42")
	toks := allTokens(l)
	if toks[0].Kind != token.NumberLiteral {
		t.Fatalf("kind = %v, want NumberLiteral", toks[0].Kind)
	}
}

func TestLexStringLiteral(t *testing.T) {
	l, bag := newTestLexer(t, `"nope"`)
	toks := allTokens(l)
	if toks[0].Kind != token.StringLiteral {
		t.Fatalf("kind = %v", toks[0].Kind)
	}
	if toks[0].StringValue.Decoded != "nope" {
		t.Fatalf("decoded = %q", toks[0].StringValue.Decoded)
	}
	if !bag.Empty() {
		t.Fatalf("unexpected diagnostics %v", bag.All())
	}
}

func TestLexUnterminatedStringDiagnoses(t *testing.T) {
	l, bag := newTestLexer(t, "\"abc\nrest")
	toks := allTokens(l)
	if !toks[0].StringValue.Unterminated {
		t.Fatalf("expected unterminated string")
	}
	if bag.Empty() {
		t.Fatalf("expected a diagnostic for unterminated string")
	}
}

func TestLexStringWithMacroRef(t *testing.T) {
	l, _ := newTestLexer(t, "\"value=`FOO\"")
	toks := allTokens(l)
	if !toks[0].StringValue.HasMacroRef {
		t.Fatalf("expected HasMacroRef to be set")
	}
}

func TestLexDirectiveNameToken(t *testing.T) {
	l, _ := newTestLexer(t, "`define")
	toks := allTokens(l)
	if toks[0].Kind != token.DirectiveName {
		t.Fatalf("kind = %v, want DirectiveName", toks[0].Kind)
	}
	if toks[0].Raw != "`define" {
		t.Fatalf("raw = %q", toks[0].Raw)
	}
}

func TestLexMacroEscapeTick(t *testing.T) {
	l, _ := newTestLexer(t, "a``b")
	toks := allTokens(l)
	if toks[1].Kind != token.MacroEscapeTick {
		t.Fatalf("toks[1].Kind = %v, want MacroEscapeTick", toks[1].Kind)
	}
}

func TestLexUnknownCharacterRecovers(t *testing.T) {
	l, bag := newTestLexer(t, "a \x01 b")
	toks := allTokens(l)
	var sawUnknown bool
	for _, tk := range toks {
		if tk.Kind == token.Unknown {
			sawUnknown = true
		}
	}
	if !sawUnknown {
		t.Fatalf("expected an Unknown token for the control byte")
	}
	if bag.Empty() {
		t.Fatalf("expected a diagnostic for the unknown character")
	}
	// Lexing must still continue past the bad byte.
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("lexing did not reach EOF: %+v", toks)
	}
}

func TestLexEOFIsIdempotent(t *testing.T) {
	l, _ := newTestLexer(t, "")
	first := l.Lex()
	second := l.Lex()
	if first.Kind != token.EOF || second.Kind != token.EOF {
		t.Fatalf("expected EOF tokens, got %v and %v", first.Kind, second.Kind)
	}
}

// P1: round-trip — concatenating every token's FullText (leading trivia +
// raw text) reproduces the input exactly, even across comments/whitespace.
func TestRoundTripProperty(t *testing.T) {
	inputs := []string{
		"module A; endmodule",
		"  // comment\nmodule   A ;\n/* block */ endmodule\n",
		"1'b0 + 4'bxz01 - 10ns",
		`"a string" and `,
	}
	for _, src := range inputs {
		l, _ := newTestLexer(t, src)
		var rebuilt string
		for {
			tok := l.Lex()
			rebuilt += tok.FullText()
			if tok.Kind == token.EOF {
				break
			}
		}
		if rebuilt != src {
			t.Fatalf("round-trip mismatch:\n got: %q\nwant: %q", rebuilt, src)
		}
	}
}

func TestPunctuatorLongestMatch(t *testing.T) {
	l, _ := newTestLexer(t, "a === b")
	toks := allTokens(l)
	if toks[1].Kind != token.CaseEq {
		t.Fatalf("kind = %v, want CaseEq (longest match over ==)", toks[1].Kind)
	}
}
