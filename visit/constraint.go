package visit

import "github.com/aledsdavies/svfront/binder"

// ConstraintVisitor is called once per Constraint node in pre-order;
// returning false skips that node's children.
type ConstraintVisitor func(c binder.Constraint) bool

// WalkConstraint dispatches on c's closed ConstraintKind.
func WalkConstraint(c binder.Constraint, visitConstraint ConstraintVisitor, visitExpr ExprVisitor) {
	if c == nil || !visitConstraint(c) {
		return
	}
	switch c.ConstraintKind() {
	case binder.ConstraintInvalid:
		if cause := c.(binder.InvalidConstraint).Cause; cause != nil {
			WalkConstraint(cause, visitConstraint, visitExpr)
		}
	case binder.ConstraintList:
		for _, item := range c.(binder.ListConstraint).Items {
			WalkConstraint(item, visitConstraint, visitExpr)
		}
	case binder.ConstraintExpr:
		WalkExpression(c.(binder.ExprConstraint).Expr, visitExpr)
	case binder.ConstraintImplication:
		ic := c.(binder.ImplicationConstraintNode)
		WalkExpression(ic.Pred, visitExpr)
		WalkConstraint(ic.Body, visitConstraint, visitExpr)
	case binder.ConstraintConditional:
		cc := c.(binder.ConditionalConstraintNode)
		WalkExpression(cc.Cond, visitExpr)
		WalkConstraint(cc.Then, visitConstraint, visitExpr)
		if cc.Else != nil {
			WalkConstraint(cc.Else, visitConstraint, visitExpr)
		}
	case binder.ConstraintUniqueness:
		for _, e := range c.(binder.UniquenessConstraintNode).Elements {
			WalkExpression(e, visitExpr)
		}
	default:
		panic("visit.WalkConstraint: unreachable constraint kind")
	}
}
