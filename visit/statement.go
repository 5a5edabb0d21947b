package visit

import "github.com/aledsdavies/svfront/binder"

// StmtVisitor is called once per Statement node in pre-order; returning
// false skips that node's children.
type StmtVisitor func(s binder.Statement) bool

// WalkStatement dispatches on s's closed StmtKind. visitExpr is invoked
// (via WalkExpression) for every Expression reachable from s; pass a
// func that always returns true to simply visit every node.
func WalkStatement(s binder.Statement, visitStmt StmtVisitor, visitExpr ExprVisitor) {
	if s == nil || !visitStmt(s) {
		return
	}
	switch s.StmtKind() {
	case binder.StmtInvalid:
		if c := s.(binder.InvalidStmt).Cause; c != nil {
			WalkStatement(c, visitStmt, visitExpr)
		}
	case binder.StmtEmpty:
		// leaf
	case binder.StmtExpr:
		WalkExpression(s.(binder.ExprStmt).Expr, visitExpr)
	case binder.StmtAssign:
		WalkExpression(s.(binder.AssignStmt).Expr, visitExpr)
	case binder.StmtBlock:
		for _, child := range s.(binder.BlockStmt).Body {
			WalkStatement(child, visitStmt, visitExpr)
		}
	case binder.StmtIf:
		ifs := s.(binder.IfStmt)
		WalkExpression(ifs.Cond, visitExpr)
		WalkStatement(ifs.Then, visitStmt, visitExpr)
		if ifs.Else != nil {
			WalkStatement(ifs.Else, visitStmt, visitExpr)
		}
	case binder.StmtFor:
		f := s.(binder.ForStmt)
		if f.Init != nil {
			WalkExpression(f.Init, visitExpr)
		}
		if f.Cond != nil {
			WalkExpression(f.Cond, visitExpr)
		}
		if f.Step != nil {
			WalkExpression(f.Step, visitExpr)
		}
		WalkStatement(f.Body, visitStmt, visitExpr)
	case binder.StmtWhile:
		w := s.(binder.WhileStmt)
		WalkExpression(w.Cond, visitExpr)
		WalkStatement(w.Body, visitStmt, visitExpr)
	case binder.StmtCase:
		cs := s.(binder.CaseStmt)
		WalkExpression(cs.Selector, visitExpr)
		for _, item := range cs.Items {
			for _, label := range item.Labels {
				WalkExpression(label, visitExpr)
			}
			WalkStatement(item.Body, visitStmt, visitExpr)
		}
	case binder.StmtReturn:
		if v := s.(binder.ReturnStmt).Value; v != nil {
			WalkExpression(v, visitExpr)
		}
	case binder.StmtProcedural:
		p := s.(binder.ProceduralStmt)
		for _, sens := range p.Sensitivity {
			WalkExpression(sens, visitExpr)
		}
		WalkStatement(p.Body, visitStmt, visitExpr)
	case binder.StmtAssert:
		a := s.(binder.AssertStmt)
		WalkExpression(a.Cond, visitExpr)
		if a.Pass != nil {
			WalkStatement(a.Pass, visitStmt, visitExpr)
		}
		if a.Else != nil {
			WalkStatement(a.Else, visitStmt, visitExpr)
		}
	default:
		panic("visit.WalkStatement: unreachable statement kind")
	}
}
