package preprocessor

import (
	"testing"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
	"github.com/stretchr/testify/require"
)

func newUnit(t *testing.T, text string) (*Preprocessor, *diag.Bag) {
	t.Helper()
	sm := sourcemgr.NewMemManager(false)
	fid := sm.AddFile("unit.sv", []byte(text))
	pool := arena.NewStringPool(arena.New())
	bag := diag.NewBag()
	pp, err := New(sm, bag, pool, fid, NewOptions())
	require.NoError(t, err)
	return pp, bag
}

func drain(pp *Preprocessor) []token.Token {
	var out []token.Token
	for {
		tok := pp.Consume()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Scenario 2 (spec.md §8): `define X 42 then `X+1 expands to the token
// stream 42, +, 1, and the macro table holds X -> 42.
func TestMacroExpansion(t *testing.T) {
	pp, bag := newUnit(t, "`define X 42\n`X+1")
	toks := drain(pp)
	require.True(t, bag.Empty())

	var kinds []token.Kind
	var raws []string
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			break
		}
		kinds = append(kinds, tk.Kind)
		raws = append(raws, tk.Raw)
	}
	require.Equal(t, []token.Kind{token.NumberLiteral, token.Plus, token.NumberLiteral}, kinds)
	require.Equal(t, []string{"42", "+", "1"}, raws)

	def, ok := pp.Macros().Lookup("X")
	require.True(t, ok)
	require.Len(t, def.Body, 1)
	require.Equal(t, "42", def.Body[0].Raw)
}

// Scenario 5 (spec.md §8): with an empty macro table, the ifdef branch is
// skipped and its text becomes disabled-text trivia on the surviving else
// branch's first token.
func TestConditionalSkipping(t *testing.T) {
	pp, _ := newUnit(t, "`ifdef FOO\nx = 1;\n`else\ny = 2;\n`endif")
	toks := drain(pp)

	require.Equal(t, token.Identifier, toks[0].Kind)
	require.Equal(t, "y", toks[0].Raw)

	var disabledText string
	for _, tr := range toks[0].Leading {
		if tr.Kind == token.TriviaDisabledText {
			disabledText += tr.Raw
		}
	}
	require.Contains(t, disabledText, "x = 1;")
}

// Macro non-recursion law: a macro invoking itself transitively emits its
// own name literally, exactly once per textual occurrence, rather than
// looping.
func TestMacroNonRecursion(t *testing.T) {
	pp, _ := newUnit(t, "`define M `M\n`M")
	toks := drain(pp)
	require.Equal(t, token.Identifier, toks[0].Kind)
	require.Equal(t, "M", toks[0].Raw)
	require.Equal(t, token.EOF, toks[1].Kind)
}

func TestFunctionLikeMacroArgs(t *testing.T) {
	pp, bag := newUnit(t, "`define ADD(a, b) a+b\n`ADD(1, 2)")
	toks := drain(pp)
	require.True(t, bag.Empty())
	var raws []string
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			break
		}
		raws = append(raws, tk.Raw)
	}
	require.Equal(t, []string{"1", "+", "2"}, raws)
}

func TestStringification(t *testing.T) {
	pp, _ := newUnit(t, "`define STR(x) `\"x`\"\n`STR(hello)")
	toks := drain(pp)
	require.Equal(t, token.StringLiteral, toks[0].Kind)
	require.Equal(t, "hello", toks[0].StringValue.Decoded)
}

func TestTokenPasting(t *testing.T) {
	pp, _ := newUnit(t, "`define CAT(a, b) a``b\n`CAT(foo, bar)")
	toks := drain(pp)
	require.Equal(t, token.Identifier, toks[0].Kind)
	require.Equal(t, "foobar", toks[0].Raw)
}

func TestUnbalancedEndifDiagnosed(t *testing.T) {
	pp, bag := newUnit(t, "`endif\nx;")
	drain(pp)
	require.False(t, bag.Empty())
	found := false
	for _, d := range bag.All() {
		if d.Code == diag.CodeUnbalancedConditional {
			found = true
		}
	}
	require.True(t, found)
}

func TestUnknownMacroSuggestsClosest(t *testing.T) {
	pp, bag := newUnit(t, "`define WIDTH 8\n`WIDHT")
	drain(pp)
	require.False(t, bag.Empty())
	d := bag.All()[0]
	require.Equal(t, diag.CodeUnknownDirective, d.Code)
	require.Equal(t, "WIDTH", d.Args[1])
}
