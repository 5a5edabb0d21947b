package binder

import (
	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// ConstraintKind tags every Constraint variant.
type ConstraintKind int

const (
	ConstraintInvalid ConstraintKind = iota
	ConstraintList
	ConstraintExpr
	ConstraintImplication
	ConstraintConditional
	ConstraintUniqueness
)

// Constraint is the closed sum type for the `constraint` body grammar.
type Constraint interface {
	ConstraintKind() ConstraintKind
	Syntax() *syntax.Node
	Bad() bool
}

type constraintBase struct {
	kind ConstraintKind
	syn  *syntax.Node
}

func (c constraintBase) ConstraintKind() ConstraintKind { return c.kind }
func (c constraintBase) Syntax() *syntax.Node           { return c.syn }
func (c constraintBase) Bad() bool                      { return c.kind == ConstraintInvalid }

type InvalidConstraint struct {
	constraintBase
	Cause Constraint
}

// ListConstraint is a brace-delimited sequence of constraint items,
// including the body of a `constraint name { ... }` declaration.
type ListConstraint struct {
	constraintBase
	Items []Constraint
}

type ExprConstraint struct {
	constraintBase
	Soft bool
	Expr Expression
}

type ImplicationConstraintNode struct {
	constraintBase
	Soft bool
	Pred Expression
	Body Constraint
}

type ConditionalConstraintNode struct {
	constraintBase
	Cond       Expression
	Then, Else Constraint // Else is nil when absent
}

type UniquenessConstraintNode struct {
	constraintBase
	Elements []Expression
}

// ConstraintDecl is the named top-level `constraint name { ... }`
// declaration; it is not itself a Constraint (it has no standalone
// meaning inside a nested body) so it is bound through its own entry
// point rather than BindConstraint's dispatch.
type ConstraintDecl struct {
	Name string
	Body Constraint // always a ListConstraint unless Body.Bad()
	Syn  *syntax.Node
}

func invalidConstraint(n *syntax.Node, cause Constraint) Constraint {
	return InvalidConstraint{constraintBase{ConstraintInvalid, n}, cause}
}

func badConstraint(c Constraint) bool { return c != nil && c.Bad() }

// BindConstraintDeclaration binds a top-level `constraint name { ... }`.
func BindConstraintDeclaration(n *syntax.Node, ctx BindContext, sink diag.Sink) ConstraintDecl {
	name := ""
	if t := n.ChildToken(1); t != nil {
		name = t.Raw
	}
	body := BindConstraint(n.ChildNode(2), ctx.With(FlagConstantExpr), sink)
	return ConstraintDecl{Name: name, Body: body, Syn: n}
}

// BindConstraint lifts a concrete constraint-item syntax.Node into its
// semantic Constraint.
func BindConstraint(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	if n.IsMissing() {
		return invalidConstraint(n, nil)
	}
	switch n.Kind {
	case syntax.BadSyntax:
		return invalidConstraint(n, nil)
	case syntax.ConstraintBlock:
		return bindConstraintList(n, ctx, sink)
	case syntax.ConstraintExpressionStmt:
		return bindConstraintExpr(n, ctx, sink)
	case syntax.ImplicationConstraint:
		return bindImplicationConstraint(n, ctx, sink)
	case syntax.ConditionalConstraint:
		return bindConditionalConstraint(n, ctx, sink)
	case syntax.UniquenessConstraint:
		return bindUniquenessConstraint(n, ctx, sink)
	default:
		panicInternal("BindConstraint: unreachable syntax kind " + n.Kind.String())
		return nil
	}
}

func bindConstraintList(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	var items []Constraint
	bad := false
	for _, child := range nodeChildren(n) {
		item := BindConstraint(child, ctx, sink)
		items = append(items, item)
		if badConstraint(item) {
			bad = true
		}
	}
	if bad {
		return invalidConstraint(n, nil)
	}
	return ListConstraint{constraintBase{ConstraintList, n}, items}
}

// bindConstraintExpr and bindImplicationConstraint both need to know
// whether the optional leading `soft` token is present; since it shifts
// every following index by one, each reads it directly off Elements[0]
// rather than assuming a fixed position for the expression.
func hasSoftPrefix(n *syntax.Node) bool {
	return len(n.Elements) > 0 && n.Elements[0].IsToken() && n.Elements[0].Token.Kind == token.KwSoft
}

func bindConstraintExpr(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	exprCtx := ctx.With(FlagConstantExpr)
	soft := hasSoftPrefix(n)
	idx := 0
	if soft {
		idx = 1
	}
	expr := BindExpression(n.ChildNode(idx), exprCtx, sink)
	if badExpr(expr) {
		return invalidConstraint(n, nil)
	}
	return ExprConstraint{constraintBase{ConstraintExpr, n}, soft, expr}
}

func bindImplicationConstraint(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	exprCtx := ctx.With(FlagConstantExpr)
	soft := hasSoftPrefix(n)
	idx := 0
	if soft {
		idx = 1
	}
	pred := BindExpression(n.ChildNode(idx), exprCtx, sink)
	body := BindConstraint(n.ChildNode(idx+2), ctx, sink)
	if badExpr(pred) || badConstraint(body) {
		return invalidConstraint(n, nil)
	}
	return ImplicationConstraintNode{constraintBase{ConstraintImplication, n}, soft, pred, body}
}

func bindConditionalConstraint(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	cond := BindExpression(n.ChildNode(2), ctx.With(FlagConstantExpr), sink)
	then := BindConstraint(n.ChildNode(4), ctx, sink)
	var elseBody Constraint
	bad := badExpr(cond) || badConstraint(then)
	if len(n.Elements) > 5 {
		elseBody = BindConstraint(n.ChildNode(6), ctx, sink)
		if badConstraint(elseBody) {
			bad = true
		}
	}
	if bad {
		return invalidConstraint(n, nil)
	}
	return ConditionalConstraintNode{constraintBase{ConstraintConditional, n}, cond, then, elseBody}
}

// bindUniquenessConstraint diagnoses, but still binds, a degenerate
// (fewer than two expression) unique{} list — see DESIGN.md's resolved
// open question on minimum arity.
func bindUniquenessConstraint(n *syntax.Node, ctx BindContext, sink diag.Sink) Constraint {
	var elements []Expression
	bad := false
	for _, child := range nodeChildren(n) {
		e := BindExpression(child, ctx.With(FlagConstantExpr), sink)
		elements = append(elements, e)
		if badExpr(e) {
			bad = true
		}
	}
	if bad {
		return invalidConstraint(n, nil)
	}
	if len(elements) < 2 {
		sink.Report(n.Location(), diag.CodeDegenerateUniqueness, len(elements))
	}
	return UniquenessConstraintNode{constraintBase{ConstraintUniqueness, n}, elements}
}
