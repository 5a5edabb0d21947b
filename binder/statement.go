package binder

import (
	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// StmtKind tags every Statement variant.
type StmtKind int

const (
	StmtInvalid StmtKind = iota
	StmtEmpty
	StmtExpr
	StmtAssign
	StmtBlock
	StmtIf
	StmtFor
	StmtWhile
	StmtCase
	StmtReturn
	StmtProcedural
	StmtAssert
)

// Statement is the closed sum type for the statement family, mirroring
// Expression's kind-tag + checked-downcast shape.
type Statement interface {
	StmtKind() StmtKind
	Syntax() *syntax.Node
	Bad() bool
}

type stmtBase struct {
	kind StmtKind
	syn  *syntax.Node
}

func (s stmtBase) StmtKind() StmtKind  { return s.kind }
func (s stmtBase) Syntax() *syntax.Node { return s.syn }
func (s stmtBase) Bad() bool           { return s.kind == StmtInvalid }

type InvalidStmt struct {
	stmtBase
	Cause Statement
}

// EmptyStmt is the bare `;` statement.
type EmptyStmt struct{ stmtBase }

type ExprStmt struct {
	stmtBase
	Expr Expression
}

type AssignStmt struct {
	stmtBase
	Expr Expression // kind ExprAssignment
}

type BlockStmt struct {
	stmtBase
	Body []Statement
}

type IfStmt struct {
	stmtBase
	Cond       Expression
	Then, Else Statement // Else is nil when absent
}

type ForStmt struct {
	stmtBase
	Init, Cond, Step Expression // any may be nil
	Body             Statement
}

type WhileStmt struct {
	stmtBase
	Cond Expression
	Body Statement
}

type CaseItemStmt struct {
	Labels    []Expression
	IsDefault bool
	Body      Statement
}

type CaseStmt struct {
	stmtBase
	Selector Expression
	Items    []CaseItemStmt
}

type ReturnStmt struct {
	stmtBase
	Value Expression // nil for bare `return;`
}

type ProceduralStmt struct {
	stmtBase
	Sensitivity []Expression // empty for combinational/initial blocks with no @(...)
	Body        Statement
}

type AssertStmt struct {
	stmtBase
	Cond       Expression
	Pass, Else Statement // either may be nil
}

func invalidStmt(n *syntax.Node, cause Statement) Statement {
	return InvalidStmt{stmtBase{StmtInvalid, n}, cause}
}

func badStmt(s Statement) bool { return s != nil && s.Bad() }

// BindStatement lifts a concrete statement syntax.Node into its semantic
// Statement.
func BindStatement(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	if n.IsMissing() {
		return invalidStmt(n, nil)
	}
	switch n.Kind {
	case syntax.BadSyntax:
		return invalidStmt(n, nil)
	case syntax.ExpressionStatement:
		return bindExprOrEmptyStatement(n, ctx, sink)
	case syntax.AssignmentStatement:
		return bindAssignStatement(n, ctx, sink)
	case syntax.BeginEndBlock:
		return bindBlock(n, ctx, sink)
	case syntax.IfStatement:
		return bindIf(n, ctx, sink)
	case syntax.ForStatement:
		return bindFor(n, ctx, sink)
	case syntax.WhileStatement:
		return bindWhile(n, ctx, sink)
	case syntax.CaseStatement:
		return bindCase(n, ctx, sink)
	case syntax.ReturnStatement:
		return bindReturn(n, ctx, sink)
	case syntax.ProceduralBlock:
		return bindProcedural(n, ctx, sink)
	case syntax.ImmediateAssertStatement:
		return bindAssert(n, ctx, sink)
	default:
		panicInternal("BindStatement: unreachable syntax kind " + n.Kind.String())
		return nil
	}
}

// bindExprOrEmptyStatement handles ExpressionStatement's two shapes: a
// bare `;` (a single token element, no expression child) and a real
// expression statement (expression node + terminating `;`).
func bindExprOrEmptyStatement(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	if len(n.Elements) == 1 && n.Elements[0].IsToken() {
		return EmptyStmt{stmtBase{StmtEmpty, n}}
	}
	exprCtx := ctx.With(FlagProcedural)
	expr := BindExpression(n.ChildNode(0), exprCtx, sink)
	if badExpr(expr) {
		return invalidStmt(n, nil)
	}
	return ExprStmt{stmtBase{StmtExpr, n}, expr}
}

func bindAssignStatement(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	expr := BindExpression(n.ChildNode(0), ctx.With(FlagProcedural), sink)
	if badExpr(expr) {
		return invalidStmt(n, nil)
	}
	return AssignStmt{stmtBase{StmtAssign, n}, expr}
}

func bindBlock(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	var body []Statement
	bad := false
	for _, child := range nodeChildren(n) {
		s := BindStatement(child, ctx, sink)
		body = append(body, s)
		if badStmt(s) {
			bad = true
		}
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return BlockStmt{stmtBase{StmtBlock, n}, body}
}

// bindIf relies on IfStatement's fixed schema (kw, lp, cond, rp, then,
// [ElseClause]) — the ElseClause slot is the only optional one, and its
// presence is detectable by whether a 6th element exists at all.
func bindIf(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	cond := BindExpression(n.ChildNode(2), ctx, sink)
	then := BindStatement(n.ChildNode(4), ctx, sink)
	var elseStmt Statement
	bad := badExpr(cond) || badStmt(then)
	if len(n.Elements) > 5 {
		elseClause := n.ChildNode(5)
		elseStmt = BindStatement(elseClause.ChildNode(1), ctx, sink)
		if badStmt(elseStmt) {
			bad = true
		}
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return IfStmt{stmtBase{StmtIf, n}, cond, then, elseStmt}
}

// bindFor walks ForStatement's elements with elemCursor since the init
// and step clauses may each be absent without leaving a placeholder.
func bindFor(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	c := &elemCursor{elems: n.Elements}
	c.next() // 'for'
	c.next() // '('
	bodyCtx := ctx.With(FlagProcedural)
	var init, cond, step Expression
	bad := false
	if c.peekIsNode() {
		init = BindExpression(c.next().Node, bodyCtx, sink)
		if badExpr(init) {
			bad = true
		}
	}
	c.next() // ';'
	if c.peekIsNode() {
		cond = BindExpression(c.next().Node, bodyCtx, sink)
		if badExpr(cond) {
			bad = true
		}
	}
	c.next() // ';'
	if c.peekIsNode() {
		step = BindExpression(c.next().Node, bodyCtx, sink)
		if badExpr(step) {
			bad = true
		}
	}
	c.next() // ')'
	body := BindStatement(c.next().Node, bodyCtx, sink)
	if badStmt(body) {
		bad = true
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return ForStmt{stmtBase{StmtFor, n}, init, cond, step, body}
}

func bindWhile(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	cond := BindExpression(n.ChildNode(2), ctx, sink)
	body := BindStatement(n.ChildNode(4), ctx.With(FlagProcedural), sink)
	if badExpr(cond) || badStmt(body) {
		return invalidStmt(n, nil)
	}
	return WhileStmt{stmtBase{StmtWhile, n}, cond, body}
}

func bindCase(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	selector := BindExpression(n.ChildNode(2), ctx, sink)
	bad := badExpr(selector)
	var items []CaseItemStmt
	for _, itemNode := range n.ChildNodesOfKind(syntax.CaseItem) {
		item, itemBad := bindCaseItem(itemNode, ctx.With(FlagProcedural), sink)
		items = append(items, item)
		if itemBad {
			bad = true
		}
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return CaseStmt{stmtBase{StmtCase, n}, selector, items}
}

func bindCaseItem(n *syntax.Node, ctx BindContext, sink diag.Sink) (CaseItemStmt, bool) {
	c := &elemCursor{elems: n.Elements}
	bad := false
	if n.Elements[0].IsToken() {
		// 'default' ':' stmt
		c.next()
		c.next() // ':'
		body := BindStatement(c.next().Node, ctx, sink)
		if badStmt(body) {
			bad = true
		}
		return CaseItemStmt{nil, true, body}, bad
	}
	var labels []Expression
	for c.peekIsNode() {
		e := BindExpression(c.next().Node, ctx, sink)
		labels = append(labels, e)
		if badExpr(e) {
			bad = true
		}
		if c.elems[c.i].Token.Kind == token.Comma {
			c.next()
			continue
		}
		break
	}
	c.next() // ':'
	body := BindStatement(c.next().Node, ctx, sink)
	if badStmt(body) {
		bad = true
	}
	return CaseItemStmt{labels, false, body}, bad
}

func bindReturn(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	if len(n.Elements) == 2 {
		// 'return' ';' — no value.
		return ReturnStmt{stmtBase{StmtReturn, n}, nil}
	}
	value := BindExpression(n.ChildNode(1), ctx, sink)
	if badExpr(value) {
		return invalidStmt(n, nil)
	}
	return ReturnStmt{stmtBase{StmtReturn, n}, value}
}

// bindProcedural walks ProceduralBlock with elemCursor: the `@(...)`
// sensitivity list is entirely optional, and when present holds a
// variable number of comma-separated entries before the body statement.
func bindProcedural(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	c := &elemCursor{elems: n.Elements}
	c.next() // always/always_comb/always_ff/initial
	bad := false
	var sensitivity []Expression
	if c.remaining() && c.elems[c.i].IsToken() && c.elems[c.i].Token.Kind == token.At {
		c.next() // '@'
		c.next() // '('
		for c.peekIsNode() {
			e := BindExpression(c.next().Node, ctx, sink)
			sensitivity = append(sensitivity, e)
			if badExpr(e) {
				bad = true
			}
			if c.remaining() && c.elems[c.i].IsToken() && c.elems[c.i].Token.Kind == token.Comma {
				c.next()
				continue
			}
			break
		}
		c.next() // ')'
	}
	bodyCtx := ctx
	if len(sensitivity) == 0 {
		bodyCtx = bodyCtx.With(FlagContinuous)
	}
	bodyCtx = bodyCtx.With(FlagProcedural)
	body := BindStatement(c.next().Node, bodyCtx, sink)
	if badStmt(body) {
		bad = true
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return ProceduralStmt{stmtBase{StmtProcedural, n}, sensitivity, body}
}

// bindAssert walks ImmediateAssertStatement with elemCursor: the action
// block after `assert(cond)` is one of a bare ';', an else-only clause, or
// a pass statement with an optional else clause.
func bindAssert(n *syntax.Node, ctx BindContext, sink diag.Sink) Statement {
	cond := BindExpression(n.ChildNode(2), ctx, sink)
	bad := badExpr(cond)
	c := &elemCursor{elems: n.Elements}
	c.next() // 'assert'
	c.next() // '('
	c.next() // cond
	c.next() // ')'
	var pass, elseStmt Statement
	if c.remaining() {
		if c.elems[c.i].IsToken() {
			c.next() // bare ';'
		} else {
			next := c.next().Node
			if next.Kind == syntax.ElseActionBlock {
				elseStmt = BindStatement(next.ChildNode(1), ctx, sink)
			} else {
				pass = BindStatement(next, ctx, sink)
				if badStmt(pass) {
					bad = true
				}
				if c.remaining() {
					elseNode := c.next().Node
					elseStmt = BindStatement(elseNode.ChildNode(1), ctx, sink)
				}
			}
			if badStmt(elseStmt) {
				bad = true
			}
		}
	}
	if bad {
		return invalidStmt(n, nil)
	}
	return AssertStmt{stmtBase{StmtAssert, n}, cond, pass, elseStmt}
}
