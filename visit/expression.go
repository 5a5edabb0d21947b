package visit

import "github.com/aledsdavies/svfront/binder"

// ExprVisitor is called once per Expression node in pre-order; returning
// false skips that node's children (its siblings, if any, still run).
type ExprVisitor func(e binder.Expression) bool

// WalkExpression dispatches on e's closed ExprKind, recursing into
// exactly the children that kind owns. This is the exhaustive-switch
// dispatch the binder's own Invalid-propagation logic (BindExpression)
// already performs structurally; WalkExpression exposes it as a reusable utility
// for tests and external callers.
func WalkExpression(e binder.Expression, visit ExprVisitor) {
	if e == nil || !visit(e) {
		return
	}
	switch e.ExprKind() {
	case binder.ExprInvalid:
		if c := e.(binder.InvalidExpr).Cause; c != nil {
			WalkExpression(c, visit)
		}
	case binder.ExprLiteral, binder.ExprIdentifier:
		// leaves
	case binder.ExprUnary:
		WalkExpression(e.(binder.UnaryExpr).Operand, visit)
	case binder.ExprBinary:
		b := e.(binder.BinaryExpr)
		WalkExpression(b.Left, visit)
		WalkExpression(b.Right, visit)
	case binder.ExprConditional:
		c := e.(binder.ConditionalExpr)
		WalkExpression(c.Cond, visit)
		WalkExpression(c.Then, visit)
		WalkExpression(c.Else, visit)
	case binder.ExprAssignment:
		a := e.(binder.AssignmentExpr)
		WalkExpression(a.LHS, visit)
		WalkExpression(a.RHS, visit)
	case binder.ExprElementSelect, binder.ExprRangeSelect:
		s := e.(binder.SelectExpr)
		WalkExpression(s.Base, visit)
		if s.High != nil {
			WalkExpression(s.High, visit)
		}
		if s.Low != nil {
			WalkExpression(s.Low, visit)
		}
	case binder.ExprInvocation:
		inv := e.(binder.InvocationExpr)
		WalkExpression(inv.Callee, visit)
		for _, a := range inv.Args {
			WalkExpression(a, visit)
		}
	case binder.ExprConcatenation:
		for _, el := range e.(binder.ConcatenationExpr).Elements {
			WalkExpression(el, visit)
		}
	case binder.ExprInside:
		in := e.(binder.InsideExpr)
		WalkExpression(in.Value, visit)
		for _, r := range in.Ranges {
			WalkExpression(r, visit)
		}
	default:
		panic("visit.WalkExpression: unreachable expression kind")
	}
}
