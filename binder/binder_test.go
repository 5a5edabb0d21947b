package binder

import (
	"testing"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/parser"
	"github.com/aledsdavies/svfront/preprocessor"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, text string) (*syntax.Node, *diag.Bag) {
	t.Helper()
	sm := sourcemgr.NewMemManager(false)
	fid := sm.AddFile("unit.sv", []byte(text))
	pool := arena.NewStringPool(arena.New())
	bag := diag.NewBag()
	pp, err := preprocessor.New(sm, bag, pool, fid, preprocessor.NewOptions())
	require.NoError(t, err)
	return parser.ParseExpression(pp, bag), bag
}

func parseStmt(t *testing.T, text string) (*syntax.Node, *diag.Bag) {
	t.Helper()
	sm := sourcemgr.NewMemManager(false)
	fid := sm.AddFile("unit.sv", []byte(text))
	pool := arena.NewStringPool(arena.New())
	bag := diag.NewBag()
	pp, err := preprocessor.New(sm, bag, pool, fid, preprocessor.NewOptions())
	require.NoError(t, err)
	return parser.ParseStatement(pp, bag), bag
}

// scopeAll resolves every name, so tests that don't care about undeclared
// -name diagnostics can bind without a nil Scope degrading permissively.
type scopeAll struct{}

func (scopeAll) Lookup(string) bool { return true }

// scopeNone resolves nothing, used to exercise CodeUndeclaredName.
type scopeNone struct{}

func (scopeNone) Lookup(string) bool { return false }

func TestBindLiteralAndBinary(t *testing.T) {
	n, bag := parseExpr(t, "1 + 2")
	require.True(t, bag.Empty())

	expr := BindExpression(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, expr.Bad())
	bin, ok := expr.(BinaryExpr)
	require.True(t, ok)
	require.Equal(t, ExprLiteral, bin.Left.ExprKind())
	require.Equal(t, ExprLiteral, bin.Right.ExprKind())
}

// P3 (invalid propagation): a parent binder that receives an Invalid child
// must itself report Bad() == true.
func TestInvalidPropagatesThroughBinaryExpression(t *testing.T) {
	n, bag := parseExpr(t, "undeclared_name + 1")
	require.True(t, bag.Empty())

	expr := BindExpression(n, BindContext{Scope: scopeNone{}}, bag)
	require.True(t, expr.Bad())
	require.Equal(t, 1, bag.Len(), "undeclared name is reported exactly once, not re-reported by the binary parent")
}

// P4 (diagnostic uniqueness): the same undeclared name used twice in one
// expression produces two diagnostics (legitimate independent causes at
// different locations), never silently deduplicated.
func TestUndeclaredNameReportedPerOccurrence(t *testing.T) {
	n, bag := parseExpr(t, "a + a")
	expr := BindExpression(n, BindContext{Scope: scopeNone{}}, bag)
	require.True(t, expr.Bad())
	require.Equal(t, 2, bag.Len())
}

func TestBindConditionalExpression(t *testing.T) {
	n, bag := parseExpr(t, "sel ? 1 : 0")
	require.True(t, bag.Empty())
	expr := BindExpression(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, expr.Bad())
	cond, ok := expr.(ConditionalExpr)
	require.True(t, ok)
	require.Equal(t, ExprIdentifier, cond.Cond.ExprKind())
}

// Binding the same source twice must produce structurally identical trees.
// cmp.Diff walks the full nested Expression graph (BinaryExpr -> Identifier/
// Literal leaves) in a way require.Equal's reflect.DeepEqual can't, since
// exprBase carries an unexported *syntax.Node whose identity legitimately
// differs between the two parses; IgnoreUnexported drops that field (and
// exprBase's equally unexported kind tag) while still comparing every
// exported field at every depth.
func TestBindBinaryExpressionStructuralEquality(t *testing.T) {
	n1, bag1 := parseExpr(t, "a + 1")
	require.True(t, bag1.Empty())
	n2, bag2 := parseExpr(t, "a + 1")
	require.True(t, bag2.Empty())

	expr1 := BindExpression(n1, BindContext{Scope: scopeAll{}}, bag1)
	expr2 := BindExpression(n2, BindContext{Scope: scopeAll{}}, bag2)

	if diff := cmp.Diff(expr1, expr2, cmpopts.IgnoreUnexported(exprBase{})); diff != "" {
		t.Errorf("identical source bound to different trees (-first +second):\n%s", diff)
	}
}

func TestBindAssignmentStatement(t *testing.T) {
	n, bag := parseStmt(t, "x = 1;")
	require.True(t, bag.Empty())
	stmt := BindStatement(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, stmt.Bad())
	require.Equal(t, StmtAssign, stmt.StmtKind())
}

func TestBindIfElseStatement(t *testing.T) {
	n, bag := parseStmt(t, "if (a) x = 1; else x = 2;")
	require.True(t, bag.Empty())
	stmt := BindStatement(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, stmt.Bad())
	ifStmt, ok := stmt.(IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
}

func TestBindImmediateAssertElse(t *testing.T) {
	n, bag := parseStmt(t, `assert(a == b) else $error("nope");`)
	require.True(t, bag.Empty())
	stmt := BindStatement(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, stmt.Bad())
	assert, ok := stmt.(AssertStmt)
	require.True(t, ok)
	require.Nil(t, assert.Pass)
	require.NotNil(t, assert.Else)
}

// System tasks ($error, $display, ...) are language builtins: their name
// must bind verbatim and they must never trip CodeUndeclaredName, even
// under a scope that resolves nothing.
func TestBindSystemIdentifierName(t *testing.T) {
	n, bag := parseExpr(t, `$error`)
	require.True(t, bag.Empty())

	expr := BindExpression(n, BindContext{Scope: scopeNone{}}, bag)
	require.False(t, expr.Bad())
	require.True(t, bag.Empty())
	id, ok := expr.(IdentifierExpr)
	require.True(t, ok)
	require.Equal(t, "$error", id.Name)
}

func TestBindForLoopWithOmittedClauses(t *testing.T) {
	n, bag := parseStmt(t, "for (;;) x = 1;")
	require.True(t, bag.Empty())
	stmt := BindStatement(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, stmt.Bad())
	forStmt, ok := stmt.(ForStmt)
	require.True(t, ok)
	require.Nil(t, forStmt.Init)
	require.Nil(t, forStmt.Cond)
	require.Nil(t, forStmt.Step)
}

func TestBindCaseStatementWithDefault(t *testing.T) {
	n, bag := parseStmt(t, "case (x) 1: y = 1; default: y = 2; endcase")
	require.True(t, bag.Empty())
	stmt := BindStatement(n, BindContext{Scope: scopeAll{}}, bag)
	require.False(t, stmt.Bad())
	caseStmt, ok := stmt.(CaseStmt)
	require.True(t, ok)
	require.Len(t, caseStmt.Items, 2)
	require.False(t, caseStmt.Items[0].IsDefault)
	require.True(t, caseStmt.Items[1].IsDefault)
}
