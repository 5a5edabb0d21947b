package parser

import (
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// ParseExpression parses one expression at the conditional precedence
// level (spec.md §4.5's lowest), returning a non-nil node even when
// recovery had to synthesize part of it.
func (p *Parser) ParseExpression() *syntax.Node {
	return p.parseConditional()
}

func (p *Parser) parseConditional() *syntax.Node {
	cond := p.parseLogicalOr()
	if !p.at(token.Question) {
		return cond
	}
	q := p.advance()
	then := p.parseConditional()
	colon := p.expect(token.Colon)
	els := p.parseConditional()
	return syntax.New(syntax.ConditionalExpression,
		syntax.NodeElement(cond), syntax.TokenElement(q),
		syntax.NodeElement(then), syntax.TokenElement(colon),
		syntax.NodeElement(els))
}

// parseAssignment parses an assignment ('=' or '+=') whose left-hand side
// is itself an arbitrary conditional expression; used by statement
// productions, not by ParseExpression (spec.md's expression grammar has
// no assignment operator at any of its documented precedence levels).
func (p *Parser) parseAssignment() *syntax.Node {
	lhs := p.parseConditional()
	if !p.atAny(token.Equals, token.PlusEquals) {
		return lhs
	}
	opTok := p.advance()
	rhs := p.parseConditional()
	return syntax.New(syntax.AssignmentExpression, syntax.NodeElement(lhs), syntax.TokenElement(opTok), syntax.NodeElement(rhs))
}

// parseLeftAssocBinary folds a run of same-or-lower-precedence-excluded
// left-associative binary operators drawn from kinds, with both operands
// produced by sub.
func (p *Parser) parseLeftAssocBinary(sub func() *syntax.Node, kinds ...token.Kind) *syntax.Node {
	left := sub()
	for p.atAny(kinds...) {
		opTok := p.advance()
		right := sub()
		left = syntax.New(syntax.BinaryExpression, syntax.NodeElement(left), syntax.TokenElement(opTok), syntax.NodeElement(right))
	}
	return left
}

func (p *Parser) parseLogicalOr() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseLogicalAnd, token.PipePipe)
}

func (p *Parser) parseLogicalAnd() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseBitwiseOr, token.AmpAmp)
}

func (p *Parser) parseBitwiseOr() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseBitwiseXor, token.Pipe)
}

func (p *Parser) parseBitwiseXor() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseBitwiseAnd, token.Caret, token.CaretTilde)
}

func (p *Parser) parseBitwiseAnd() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseEquality, token.Amp)
}

func (p *Parser) parseEquality() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseRelational, token.EqEq, token.NotEq, token.CaseEq, token.CaseNotEq)
}

// parseRelational additionally recognizes the `inside` operator, whose
// right-hand operand is an open range list in braces rather than a plain
// expression, so it cannot share parseLeftAssocBinary's generic shape.
func (p *Parser) parseRelational() *syntax.Node {
	left := p.parseShift()
	for {
		switch {
		case p.atAny(token.Lt, token.LtEq, token.Gt, token.GtEq):
			opTok := p.advance()
			right := p.parseShift()
			left = syntax.New(syntax.BinaryExpression, syntax.NodeElement(left), syntax.TokenElement(opTok), syntax.NodeElement(right))
		case p.at(token.KwInside):
			insideTok := p.advance()
			ranges := p.parseOpenRangeList()
			left = syntax.New(syntax.InsideExpression, syntax.NodeElement(left), syntax.TokenElement(insideTok), syntax.NodeElement(ranges))
		default:
			return left
		}
	}
}

func (p *Parser) parseOpenRangeList() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LBrace))}
	if !p.at(token.RBrace) {
		for {
			elems = append(elems, syntax.NodeElement(p.parseConditional()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RBrace)))
	return syntax.New(syntax.OpenRangeList, elems...)
}

func (p *Parser) parseShift() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseAdditive, token.ShiftLeft, token.ShiftRight)
}

func (p *Parser) parseAdditive() *syntax.Node {
	return p.parseLeftAssocBinary(p.parseMultiplicative, token.Plus, token.Minus)
}

func (p *Parser) parseMultiplicative() *syntax.Node {
	return p.parseLeftAssocBinary(p.parsePower, token.Star, token.Slash, token.Percent)
}

// parsePower binds its left operand through parseUnary (so unary already
// applied before ** per the ladder) and recurses on itself for the right
// operand, giving ** its spec-mandated right-associativity.
func (p *Parser) parsePower() *syntax.Node {
	left := p.parseUnary()
	if !p.at(token.StarStar) {
		return left
	}
	opTok := p.advance()
	right := p.parsePower()
	return syntax.New(syntax.BinaryExpression, syntax.NodeElement(left), syntax.TokenElement(opTok), syntax.NodeElement(right))
}

func (p *Parser) parseUnary() *syntax.Node {
	if unaryOps[p.cur().Kind] {
		opTok := p.advance()
		operand := p.parseUnary()
		return syntax.New(syntax.UnaryExpression, syntax.TokenElement(opTok), syntax.NodeElement(operand))
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix folds chained element/range selects and call-argument
// lists onto base, e.g. `arr[3][hi:lo]` or `f(a, b)(c)`.
func (p *Parser) parsePostfix(base *syntax.Node) *syntax.Node {
	for {
		switch {
		case p.at(token.LBracket):
			lb := p.advance()
			first := p.ParseExpression()
			if p.at(token.Colon) {
				colon := p.advance()
				second := p.ParseExpression()
				rb := p.expect(token.RBracket)
				base = syntax.New(syntax.RangeSelectExpression,
					syntax.NodeElement(base), syntax.TokenElement(lb),
					syntax.NodeElement(first), syntax.TokenElement(colon),
					syntax.NodeElement(second), syntax.TokenElement(rb))
				continue
			}
			rb := p.expect(token.RBracket)
			base = syntax.New(syntax.ElementSelectExpression,
				syntax.NodeElement(base), syntax.TokenElement(lb),
				syntax.NodeElement(first), syntax.TokenElement(rb))
		case p.at(token.LParen):
			args := p.parseArgumentList()
			base = syntax.New(syntax.InvocationExpression, syntax.NodeElement(base), syntax.NodeElement(args))
		default:
			return base
		}
	}
}

func (p *Parser) parseArgumentList() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LParen))}
	if !p.at(token.RParen) {
		for {
			elems = append(elems, syntax.NodeElement(p.ParseExpression()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	return syntax.New(syntax.ArgumentList, elems...)
}

func (p *Parser) parsePrimary() *syntax.Node {
	switch {
	case p.atAny(token.NumberLiteral, token.StringLiteral, token.TimeLiteral):
		return syntax.New(syntax.LiteralExpression, syntax.TokenElement(p.advance()))
	case p.at(token.LParen):
		lp := p.advance()
		inner := p.ParseExpression()
		rp := p.expect(token.RParen)
		return syntax.New(syntax.ParenthesizedExpression, syntax.TokenElement(lp), syntax.NodeElement(inner), syntax.TokenElement(rp))
	case p.at(token.LBrace):
		return p.parseConcatenation()
	case p.atAny(token.Identifier, token.SystemIdentifier):
		return p.parseNameExpression()
	default:
		p.reportUnexpected(token.Identifier, token.NumberLiteral, token.LParen)
		p.advance()
		return syntax.NewMissing(syntax.BadSyntax)
	}
}

// parseNameExpression parses a (possibly hierarchical) identifier as a
// single IdentifierName/HierarchicalName node; '[' and '(' postfixes are
// layered on by parsePostfix, not here.
func (p *Parser) parseNameExpression() *syntax.Node {
	first := p.advance()
	if !p.at(token.Dot) {
		return syntax.New(syntax.IdentifierName, syntax.TokenElement(first))
	}
	elems := []syntax.Element{syntax.TokenElement(first)}
	for p.at(token.Dot) {
		elems = append(elems, syntax.TokenElement(p.advance()))
		elems = append(elems, syntax.TokenElement(p.expect(token.Identifier)))
	}
	return syntax.New(syntax.HierarchicalName, elems...)
}

func (p *Parser) parseConcatenation() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LBrace))}
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
	return syntax.New(syntax.ConcatenationExpression, elems...)
}
