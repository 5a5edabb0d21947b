package binder

import (
	"strings"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// ExprKind tags every Expression variant.
type ExprKind int

const (
	ExprInvalid ExprKind = iota
	ExprLiteral
	ExprIdentifier
	ExprUnary
	ExprBinary
	ExprConditional
	ExprAssignment
	ExprElementSelect
	ExprRangeSelect
	ExprInvocation
	ExprConcatenation
	ExprInside
)

// Expression is the closed sum type spec.md §4.6/§9 asks for: a kind tag
// plus a checked downcast, never a type switch on an open interface.
type Expression interface {
	ExprKind() ExprKind
	Syntax() *syntax.Node
	// Bad reports whether this node is Invalid or transitively carries one;
	// invariant 4 (spec.md §3) requires this to be total.
	Bad() bool
}

type exprBase struct {
	kind ExprKind
	syn  *syntax.Node
}

func (e exprBase) ExprKind() ExprKind   { return e.kind }
func (e exprBase) Syntax() *syntax.Node { return e.syn }
func (e exprBase) Bad() bool            { return e.kind == ExprInvalid }

// InvalidExpr is the sentinel for a binding that could not produce a
// well-typed result. Cause, when non-nil, is the best partial child for
// diagnostic chaining; it is never itself re-reported.
type InvalidExpr struct {
	exprBase
	Cause Expression
}

type LiteralExpr struct {
	exprBase
	Token token.Token
}

type IdentifierExpr struct {
	exprBase
	Name string
}

type UnaryExpr struct {
	exprBase
	Op      token.Token
	Operand Expression
}

type BinaryExpr struct {
	exprBase
	Left  Expression
	Op    token.Token
	Right Expression
}

type ConditionalExpr struct {
	exprBase
	Cond, Then, Else Expression
}

type AssignmentExpr struct {
	exprBase
	LHS Expression
	Op  token.Token
	RHS Expression
}

// SelectExpr covers both element select (Low == nil) and range select.
type SelectExpr struct {
	exprBase
	Base     Expression
	High     Expression
	Low      Expression
}

type InvocationExpr struct {
	exprBase
	Callee Expression
	Args   []Expression
}

type ConcatenationExpr struct {
	exprBase
	Elements []Expression
}

type InsideExpr struct {
	exprBase
	Value  Expression
	Ranges []Expression
}

func invalidExpr(n *syntax.Node, cause Expression) Expression {
	return InvalidExpr{exprBase{ExprInvalid, n}, cause}
}

func badExpr(e Expression) bool { return e != nil && e.Bad() }

// BindExpression lifts a concrete expression syntax.Node into its
// semantic Expression, per spec.md §4.6's `bind(syntax, context)` entry
// point for the expression family.
func BindExpression(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	if n.IsMissing() {
		return invalidExpr(n, nil)
	}
	switch n.Kind {
	case syntax.LiteralExpression:
		return LiteralExpr{exprBase{ExprLiteral, n}, *n.ChildToken(0)}
	case syntax.IdentifierName, syntax.HierarchicalName:
		return bindIdentifier(n, ctx, sink)
	case syntax.ParenthesizedExpression:
		return BindExpression(n.ChildNode(1), ctx, sink)
	case syntax.UnaryExpression:
		return bindUnary(n, ctx, sink)
	case syntax.BinaryExpression:
		return bindBinary(n, ctx, sink)
	case syntax.ConditionalExpression:
		return bindConditional(n, ctx, sink)
	case syntax.AssignmentExpression:
		return bindAssignment(n, ctx, sink)
	case syntax.ElementSelectExpression:
		return bindElementSelect(n, ctx, sink)
	case syntax.RangeSelectExpression:
		return bindRangeSelect(n, ctx, sink)
	case syntax.InvocationExpression:
		return bindInvocation(n, ctx, sink)
	case syntax.ConcatenationExpression:
		return bindConcatenation(n, ctx, sink)
	case syntax.InsideExpression:
		return bindInside(n, ctx, sink)
	case syntax.BadSyntax:
		return invalidExpr(n, nil)
	default:
		panicInternal("BindExpression: unreachable syntax kind " + n.Kind.String())
		return nil
	}
}

func bindIdentifier(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	tokens := n.Tokens()
	isSystem := len(tokens) > 0 && tokens[0].Kind == token.SystemIdentifier
	var parts []string
	for _, t := range tokens {
		if t.Kind == token.Identifier || t.Kind == token.SystemIdentifier {
			parts = append(parts, t.Raw)
		}
	}
	name := strings.Join(parts, ".")
	// System tasks/functions ($display, $error, ...) are language builtins,
	// never user-declared, so they are exempt from scope resolution.
	if !isSystem && ctx.Scope != nil && !ctx.Scope.Lookup(name) {
		sink.Report(n.Location(), diag.CodeUndeclaredName, name)
		return invalidExpr(n, nil)
	}
	return IdentifierExpr{exprBase{ExprIdentifier, n}, name}
}

func bindUnary(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	operand := BindExpression(n.ChildNode(1), ctx, sink)
	if badExpr(operand) {
		return invalidExpr(n, operand)
	}
	return UnaryExpr{exprBase{ExprUnary, n}, *n.ChildToken(0), operand}
}

func bindBinary(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	left := BindExpression(n.ChildNode(0), ctx, sink)
	right := BindExpression(n.ChildNode(2), ctx, sink)
	if badExpr(left) {
		return invalidExpr(n, left)
	}
	if badExpr(right) {
		return invalidExpr(n, right)
	}
	return BinaryExpr{exprBase{ExprBinary, n}, left, *n.ChildToken(1), right}
}

func bindConditional(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	cond := BindExpression(n.ChildNode(0), ctx, sink)
	then := BindExpression(n.ChildNode(2), ctx, sink)
	els := BindExpression(n.ChildNode(4), ctx, sink)
	if badExpr(cond) {
		return invalidExpr(n, cond)
	}
	if badExpr(then) {
		return invalidExpr(n, then)
	}
	if badExpr(els) {
		return invalidExpr(n, els)
	}
	return ConditionalExpr{exprBase{ExprConditional, n}, cond, then, els}
}

func bindAssignment(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	lhs := BindExpression(n.ChildNode(0), ctx, sink)
	rhs := BindExpression(n.ChildNode(2), ctx, sink)
	if badExpr(lhs) {
		return invalidExpr(n, lhs)
	}
	if badExpr(rhs) {
		return invalidExpr(n, rhs)
	}
	return AssignmentExpr{exprBase{ExprAssignment, n}, lhs, *n.ChildToken(1), rhs}
}

func bindElementSelect(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	base := BindExpression(n.ChildNode(0), ctx, sink)
	index := BindExpression(n.ChildNode(2), ctx, sink)
	if badExpr(base) {
		return invalidExpr(n, base)
	}
	if badExpr(index) {
		return invalidExpr(n, index)
	}
	return SelectExpr{exprBase{ExprElementSelect, n}, base, index, nil}
}

func bindRangeSelect(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	base := BindExpression(n.ChildNode(0), ctx, sink)
	high := BindExpression(n.ChildNode(2), ctx, sink)
	low := BindExpression(n.ChildNode(4), ctx, sink)
	if badExpr(base) {
		return invalidExpr(n, base)
	}
	if badExpr(high) {
		return invalidExpr(n, high)
	}
	if badExpr(low) {
		return invalidExpr(n, low)
	}
	return SelectExpr{exprBase{ExprRangeSelect, n}, base, high, low}
}

func bindInvocation(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	callee := BindExpression(n.ChildNode(0), ctx, sink)
	bad := badExpr(callee)
	var args []Expression
	for _, child := range nodeChildren(n.ChildNode(1)) {
		a := BindExpression(child, ctx, sink)
		args = append(args, a)
		if badExpr(a) {
			bad = true
		}
	}
	if bad {
		return invalidExpr(n, callee)
	}
	return InvocationExpr{exprBase{ExprInvocation, n}, callee, args}
}

func bindConcatenation(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	var elems []Expression
	bad := false
	for _, child := range nodeChildren(n) {
		e := BindExpression(child, ctx, sink)
		elems = append(elems, e)
		if badExpr(e) {
			bad = true
		}
	}
	if bad {
		return invalidExpr(n, nil)
	}
	return ConcatenationExpr{exprBase{ExprConcatenation, n}, elems}
}

func bindInside(n *syntax.Node, ctx BindContext, sink diag.Sink) Expression {
	value := BindExpression(n.ChildNode(0), ctx, sink)
	rangesNode := n.ChildNode(2)
	var ranges []Expression
	bad := badExpr(value)
	for _, child := range nodeChildren(rangesNode) {
		r := BindExpression(child, ctx, sink)
		ranges = append(ranges, r)
		if badExpr(r) {
			bad = true
		}
	}
	if bad {
		return invalidExpr(n, value)
	}
	return InsideExpr{exprBase{ExprInside, n}, value, ranges}
}
