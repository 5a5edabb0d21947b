package parser

import (
	"testing"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/preprocessor"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
	"github.com/stretchr/testify/require"
)

func newUnit(t *testing.T, text string) (*preprocessor.Preprocessor, *diag.Bag) {
	t.Helper()
	sm := sourcemgr.NewMemManager(false)
	fid := sm.AddFile("unit.sv", []byte(text))
	pool := arena.NewStringPool(arena.New())
	bag := diag.NewBag()
	pp, err := preprocessor.New(sm, bag, pool, fid, preprocessor.NewOptions())
	require.NoError(t, err)
	return pp, bag
}

// Scenario 3 (spec.md §8): an empty module parses cleanly with its name
// preserved.
func TestEmptyModule(t *testing.T) {
	pp, bag := newUnit(t, "module A; endmodule")
	root := ParseCompilationUnit(pp, bag)
	require.True(t, bag.Empty())

	modules := root.ChildNodesOfKind(syntax.ModuleDeclaration)
	require.Len(t, modules, 1)
	header := modules[0].ChildNode(0)
	require.Equal(t, syntax.ModuleHeader, header.Kind)
	require.Equal(t, "A", header.ChildToken(1).Raw)
}

// Scenario 4 (spec.md §8): a hierarchy instantiation inside a module body
// is recognized and its instance name/type are preserved.
func TestHierarchyInstantiation(t *testing.T) {
	pp, bag := newUnit(t, "module A; Leaf l(); endmodule\nmodule Leaf(); endmodule")
	root := ParseCompilationUnit(pp, bag)
	require.True(t, bag.Empty())

	modules := root.ChildNodesOfKind(syntax.ModuleDeclaration)
	require.Len(t, modules, 2)

	instantiations := modules[0].ChildNodesOfKind(syntax.HierarchyInstantiation)
	require.Len(t, instantiations, 1)
	inst := instantiations[0]
	require.Equal(t, "Leaf", inst.ChildToken(0).Raw)

	instance := inst.ChildNode(1)
	require.Equal(t, syntax.HierarchicalInstance, instance.Kind)
	require.Equal(t, "l", instance.ChildToken(0).Raw)
}

// Scenario 6 (spec.md §8): an immediate assertion with an else-action-block
// preserves both its condition and its else branch, and round-trips.
func TestImmediateAssertElse(t *testing.T) {
	src := `assert(a == b) else $error("nope");`
	pp, bag := newUnit(t, src)
	stmt := ParseStatement(pp, bag)
	require.True(t, bag.Empty())
	require.Equal(t, syntax.ImmediateAssertStatement, stmt.Kind)

	cond := stmt.ChildNode(2)
	require.Equal(t, syntax.BinaryExpression, cond.Kind)

	elseBlock := stmt.ChildNode(4)
	require.Equal(t, syntax.ElseActionBlock, elseBlock.Kind)
}

// P1 (lossless round-trip): concatenating every token's full text
// (including leading trivia) across a parsed tree reproduces the input
// verbatim.
func TestRoundTripWhitespaceAndComments(t *testing.T) {
	src := "module  A ; // trailing\n  endmodule\n"
	pp, bag := newUnit(t, src)
	root := ParseCompilationUnit(pp, bag)
	require.True(t, bag.Empty())

	var got string
	for _, tk := range root.Tokens() {
		got += tk.FullText()
	}
	require.Equal(t, src, got)
}

// The precedence ladder inverts unary and power relative to C: unary binds
// tighter than '**', so `-2**3` parses as `(-2)**3`.
func TestUnaryBindsTighterThanPower(t *testing.T) {
	pp, bag := newUnit(t, "-2**3")
	expr := ParseExpression(pp, bag)
	require.True(t, bag.Empty())
	require.Equal(t, syntax.BinaryExpression, expr.Kind)

	left := expr.ChildNode(0)
	require.Equal(t, syntax.UnaryExpression, left.Kind, "left operand of ** must be the unary-minus expression, not a bare literal")
}

// A malformed statement is recovered from by resynchronizing to the
// statement follow-set, and the skipped text is preserved as trivia so
// round-trip still holds for the remainder of the input.
func TestStatementRecoverySkipsToFollowSet(t *testing.T) {
	pp, bag := newUnit(t, "@@@ ; x = 1;")
	stmt1 := ParseStatement(pp, bag)
	require.Equal(t, syntax.BadSyntax, stmt1.Kind)
	require.False(t, bag.Empty())

	stmt2 := ParseStatement(pp, bag)
	require.Equal(t, syntax.AssignmentStatement, stmt2.Kind)
	assign := stmt2.ChildNode(0)
	require.Equal(t, token.Identifier, assign.ChildNode(0).Tokens()[0].Kind)
}
