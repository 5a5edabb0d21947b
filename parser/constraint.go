package parser

import (
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

func (p *Parser) parseConstraintDeclaration() *syntax.Node {
	kw := p.expect(token.KwConstraint)
	name := p.expect(token.Identifier)
	block := p.parseConstraintBlock()
	return syntax.New(syntax.ConstraintDeclaration, syntax.TokenElement(kw), syntax.TokenElement(name), syntax.NodeElement(block))
}

func (p *Parser) parseConstraintBlock() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LBrace))}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseConstraintItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RBrace)))
	return syntax.New(syntax.ConstraintBlock, elems...)
}

func (p *Parser) parseConstraintItem() *syntax.Node {
	switch {
	case p.at(token.KwIf):
		return p.parseConditionalConstraint()
	case p.at(token.KwUnique):
		return p.parseUniquenessConstraint()
	default:
		return p.parseConstraintExpressionOrImplication()
	}
}

// parseConstraintBody parses either a braced list of constraint items or a
// single one, per the `if (cond) body [else body]` and `pred -> body`
// productions, both of which accept either shape for their body.
func (p *Parser) parseConstraintBody() *syntax.Node {
	if p.at(token.LBrace) {
		return p.parseConstraintBlock()
	}
	return p.parseConstraintItem()
}

func (p *Parser) parseConditionalConstraint() *syntax.Node {
	kw := p.expect(token.KwIf)
	lp := p.expect(token.LParen)
	cond := p.ParseExpression()
	rp := p.expect(token.RParen)
	body := p.parseConstraintBody()
	elems := []syntax.Element{
		syntax.TokenElement(kw), syntax.TokenElement(lp),
		syntax.NodeElement(cond), syntax.TokenElement(rp),
		syntax.NodeElement(body),
	}
	if p.at(token.KwElse) {
		elseKw := p.advance()
		elseBody := p.parseConstraintBody()
		elems = append(elems, syntax.TokenElement(elseKw), syntax.NodeElement(elseBody))
	}
	return syntax.New(syntax.ConditionalConstraint, elems...)
}

// parseUniquenessConstraint accepts any arity ≥0 of expressions, syntax
// permissively; the binder diagnoses a degenerate (<2-element) list per
// the resolved uniqueness-arity open question without refusing to parse.
func (p *Parser) parseUniquenessConstraint() *syntax.Node {
	kw := p.expect(token.KwUnique)
	lb := p.expect(token.LBrace)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(lb)}
	if !p.at(token.RBrace) {
		for {
			elems = append(elems, syntax.NodeElement(p.ParseExpression()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RBrace)))
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.UniquenessConstraint, elems...)
}

// parseConstraintExpressionOrImplication parses `[soft] expr;` or
// `[soft] expr -> body`, distinguished by whether '->' follows the
// expression.
func (p *Parser) parseConstraintExpressionOrImplication() *syntax.Node {
	var softElem []syntax.Element
	if p.at(token.KwSoft) {
		softElem = append(softElem, syntax.TokenElement(p.advance()))
	}
	expr := p.ParseExpression()
	if p.at(token.ArrowImplies) {
		arrow := p.advance()
		body := p.parseConstraintBody()
		elems := append(softElem, syntax.NodeElement(expr), syntax.TokenElement(arrow), syntax.NodeElement(body))
		return syntax.New(syntax.ImplicationConstraint, elems...)
	}
	semi := p.expect(token.Semicolon)
	elems := append(softElem, syntax.NodeElement(expr), syntax.TokenElement(semi))
	return syntax.New(syntax.ConstraintExpressionStmt, elems...)
}
