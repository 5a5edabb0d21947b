package parser

import (
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// ParseStatement parses one statement. Always returns a non-nil node.
func (p *Parser) ParseStatement() *syntax.Node {
	switch {
	case p.at(token.KwBegin):
		return p.parseBeginEndBlock()
	case p.at(token.KwIf):
		return p.parseIfStatement()
	case p.at(token.KwFor):
		return p.parseForStatement()
	case p.at(token.KwWhile):
		return p.parseWhileStatement()
	case p.at(token.KwCase):
		return p.parseCaseStatement()
	case p.at(token.KwReturn):
		return p.parseReturnStatement()
	case p.at(token.KwAssert):
		return p.parseImmediateAssertStatement()
	case p.atAny(token.KwAlways, token.KwAlwaysComb, token.KwAlwaysFF, token.KwInitial):
		return p.parseProceduralBlock()
	case p.isVariableDeclaration():
		return p.parseDataDeclaration()
	case p.at(token.Semicolon):
		return syntax.New(syntax.ExpressionStatement, syntax.TokenElement(p.advance()))
	case p.atAny(token.Identifier, token.SystemIdentifier, token.NumberLiteral, token.StringLiteral, token.TimeLiteral, token.LParen, token.LBrace) || unaryOps[p.cur().Kind]:
		return p.parseExpressionOrAssignmentStatement()
	default:
		p.reportUnexpected(token.Identifier, token.KwBegin, token.KwIf)
		p.advance()
		p.resync(followStatement...)
		if p.at(token.Semicolon) {
			p.advance()
		}
		return syntax.NewMissing(syntax.BadSyntax)
	}
}

func (p *Parser) parseExpressionOrAssignmentStatement() *syntax.Node {
	expr := p.parseAssignment()
	semi := p.expect(token.Semicolon)
	if expr.Kind == syntax.AssignmentExpression {
		return syntax.New(syntax.AssignmentStatement, syntax.NodeElement(expr), syntax.TokenElement(semi))
	}
	return syntax.New(syntax.ExpressionStatement, syntax.NodeElement(expr), syntax.TokenElement(semi))
}

func (p *Parser) parseBeginEndBlock() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.KwBegin))}
	for !p.at(token.KwEnd) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEnd)))
	return syntax.New(syntax.BeginEndBlock, elems...)
}

func (p *Parser) parseIfStatement() *syntax.Node {
	kw := p.expect(token.KwIf)
	lp := p.expect(token.LParen)
	cond := p.ParseExpression()
	rp := p.expect(token.RParen)
	thenStmt := p.ParseStatement()
	elems := []syntax.Element{
		syntax.TokenElement(kw), syntax.TokenElement(lp),
		syntax.NodeElement(cond), syntax.TokenElement(rp),
		syntax.NodeElement(thenStmt),
	}
	if p.at(token.KwElse) {
		elems = append(elems, syntax.NodeElement(p.parseElseClause()))
	}
	return syntax.New(syntax.IfStatement, elems...)
}

func (p *Parser) parseElseClause() *syntax.Node {
	kw := p.expect(token.KwElse)
	stmt := p.ParseStatement()
	return syntax.New(syntax.ElseClause, syntax.TokenElement(kw), syntax.NodeElement(stmt))
}

// parseForStatement treats the init and step clauses as assignment
// expressions; a declaration-style init (`for (int i = 0; ...)`) is left
// to a future extension since the statement grammar here has no separate
// "for-init declaration" production.
func (p *Parser) parseForStatement() *syntax.Node {
	kw := p.expect(token.KwFor)
	lp := p.expect(token.LParen)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(lp)}
	if !p.at(token.Semicolon) {
		elems = append(elems, syntax.NodeElement(p.parseAssignment()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	if !p.at(token.Semicolon) {
		elems = append(elems, syntax.NodeElement(p.ParseExpression()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	if !p.at(token.RParen) {
		elems = append(elems, syntax.NodeElement(p.parseAssignment()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	return syntax.New(syntax.ForStatement, elems...)
}

func (p *Parser) parseWhileStatement() *syntax.Node {
	kw := p.expect(token.KwWhile)
	lp := p.expect(token.LParen)
	cond := p.ParseExpression()
	rp := p.expect(token.RParen)
	body := p.ParseStatement()
	return syntax.New(syntax.WhileStatement,
		syntax.TokenElement(kw), syntax.TokenElement(lp),
		syntax.NodeElement(cond), syntax.TokenElement(rp),
		syntax.NodeElement(body))
}

func (p *Parser) parseCaseStatement() *syntax.Node {
	kw := p.expect(token.KwCase)
	lp := p.expect(token.LParen)
	sel := p.ParseExpression()
	rp := p.expect(token.RParen)
	elems := []syntax.Element{
		syntax.TokenElement(kw), syntax.TokenElement(lp),
		syntax.NodeElement(sel), syntax.TokenElement(rp),
	}
	for !p.at(token.KwEndcase) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseCaseItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndcase)))
	return syntax.New(syntax.CaseStatement, elems...)
}

func (p *Parser) parseCaseItem() *syntax.Node {
	var elems []syntax.Element
	if p.at(token.KwDefault) {
		elems = append(elems, syntax.TokenElement(p.advance()))
	} else {
		for {
			elems = append(elems, syntax.NodeElement(p.ParseExpression()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Colon)))
	elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	return syntax.New(syntax.CaseItem, elems...)
}

func (p *Parser) parseReturnStatement() *syntax.Node {
	kw := p.expect(token.KwReturn)
	elems := []syntax.Element{syntax.TokenElement(kw)}
	if !p.at(token.Semicolon) {
		elems = append(elems, syntax.NodeElement(p.ParseExpression()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.ReturnStatement, elems...)
}

// parseImmediateAssertStatement parses `assert(expr) action_block;`, where
// action_block is one of: a bare ';', an else-action-block, a pass
// statement, or a pass statement followed by an else-action-block. The
// terminating ';' belongs to whichever alternative is chosen, not to this
// production itself — every branch below consumes its own.
func (p *Parser) parseImmediateAssertStatement() *syntax.Node {
	kw := p.expect(token.KwAssert)
	lp := p.expect(token.LParen)
	cond := p.ParseExpression()
	rp := p.expect(token.RParen)
	elems := []syntax.Element{
		syntax.TokenElement(kw), syntax.TokenElement(lp),
		syntax.NodeElement(cond), syntax.TokenElement(rp),
	}
	switch {
	case p.at(token.Semicolon):
		elems = append(elems, syntax.TokenElement(p.advance()))
	case p.at(token.KwElse):
		elems = append(elems, syntax.NodeElement(p.parseElseActionBlock()))
	default:
		elems = append(elems, syntax.NodeElement(p.ParseStatement()))
		if p.at(token.KwElse) {
			elems = append(elems, syntax.NodeElement(p.parseElseActionBlock()))
		}
	}
	return syntax.New(syntax.ImmediateAssertStatement, elems...)
}

func (p *Parser) parseElseActionBlock() *syntax.Node {
	kw := p.expect(token.KwElse)
	stmt := p.ParseStatement()
	return syntax.New(syntax.ElseActionBlock, syntax.TokenElement(kw), syntax.NodeElement(stmt))
}

// parseProceduralBlock parses `always|always_comb|always_ff|initial`
// optionally followed by an `@(...)` sensitivity list, then one statement
// body.
func (p *Parser) parseProceduralBlock() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.advance())}
	if p.at(token.At) {
		elems = append(elems, syntax.TokenElement(p.advance()), syntax.TokenElement(p.expect(token.LParen)))
		for {
			elems = append(elems, syntax.NodeElement(p.parseEdgeExpr()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
		elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	}
	elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	return syntax.New(syntax.ProceduralBlock, elems...)
}

// parseEdgeExpr parses one sensitivity-list entry: an optional
// posedge/negedge qualifier over an expression.
func (p *Parser) parseEdgeExpr() *syntax.Node {
	if p.atAny(token.KwPosedge, token.KwNegedge) {
		opTok := p.advance()
		expr := p.ParseExpression()
		return syntax.New(syntax.UnaryExpression, syntax.TokenElement(opTok), syntax.NodeElement(expr))
	}
	return p.ParseExpression()
}
