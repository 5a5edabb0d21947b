package parser

import (
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// ParseCompilationUnit parses a sequence of top-level declarations
// (modules, packages, interfaces) until end of file.
func (p *Parser) ParseCompilationUnit() *syntax.Node {
	var elems []syntax.Element
	for !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseTopLevelItem()))
	}
	elems = append(elems, syntax.TokenElement(p.advance()))
	return syntax.New(syntax.CompilationUnit, elems...)
}

func (p *Parser) parseTopLevelItem() *syntax.Node {
	switch {
	case p.at(token.KwModule):
		return p.ParseModule()
	case p.at(token.KwPackage):
		return p.parsePackageDeclaration()
	case p.at(token.KwInterface):
		return p.parseInterfaceDeclaration()
	default:
		p.reportUnexpected(token.KwModule, token.KwPackage, token.KwInterface)
		p.resync(token.KwModule, token.KwPackage, token.KwInterface)
		if p.at(token.EOF) {
			return syntax.NewMissing(syntax.BadSyntax)
		}
		return p.parseTopLevelItem()
	}
}

// ParseModule parses one module declaration: header, items, `endmodule`.
func (p *Parser) ParseModule() *syntax.Node {
	elems := []syntax.Element{syntax.NodeElement(p.parseModuleHeader())}
	for !p.at(token.KwEndmodule) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseModuleItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndmodule)))
	return syntax.New(syntax.ModuleDeclaration, elems...)
}

func (p *Parser) parseModuleHeader() *syntax.Node {
	kw := p.expect(token.KwModule)
	name := p.expect(token.Identifier)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(name)}
	if p.at(token.LParen) {
		elems = append(elems, syntax.NodeElement(p.parsePortList()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.ModuleHeader, elems...)
}

// parsePortList disambiguates ANSI from non-ANSI port-list shape by
// looking one token past the opening paren: a direction keyword (or an
// empty list) reads as ANSI, anything else as a bare name list.
func (p *Parser) parsePortList() *syntax.Node {
	if p.peek(1).Kind == token.RParen || portDirections[p.peek(1).Kind] {
		return p.parseAnsiPortList()
	}
	return p.parseNonAnsiPortList()
}

func (p *Parser) parseAnsiPortList() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LParen))}
	if !p.at(token.RParen) {
		for {
			elems = append(elems, syntax.NodeElement(p.parseAnsiPort()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	return syntax.New(syntax.AnsiPortList, elems...)
}

func (p *Parser) parseAnsiPort() *syntax.Node {
	var elems []syntax.Element
	if portDirections[p.cur().Kind] {
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	if netTypeKeywords[p.cur().Kind] || variableTypeKeywords[p.cur().Kind] {
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Identifier)))
	return syntax.New(syntax.AnsiPort, elems...)
}

func (p *Parser) parseNonAnsiPortList() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LParen))}
	if !p.at(token.RParen) {
		for {
			elems = append(elems, syntax.NodeElement(syntax.New(syntax.NonAnsiPort, syntax.TokenElement(p.expect(token.Identifier)))))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	return syntax.New(syntax.NonAnsiPortList, elems...)
}

// parseModuleItem dispatches on the lead token of one module-body item.
// Procedural blocks go to parseProceduralBlock; anything not matched by a
// declaration, instantiation or procedural-block case (bare calls,
// assignments, ...) falls through to ParseStatement.
func (p *Parser) parseModuleItem() *syntax.Node {
	switch {
	case p.isPortDeclaration(), p.isNetDeclaration(), p.isVariableDeclaration():
		return p.parseDataDeclaration()
	case p.at(token.KwAssign):
		return p.parseContinuousAssign()
	case p.atAny(token.KwParameter, token.KwLocalparam):
		return p.parseParameterDeclaration()
	case p.at(token.KwImport):
		return p.parseImportDeclaration()
	case p.at(token.KwFunction):
		return p.parseFunctionDeclaration()
	case p.at(token.KwTask):
		return p.parseTaskDeclaration()
	case p.at(token.KwInterface):
		return p.parseInterfaceDeclaration()
	case p.at(token.KwGenerate):
		return p.parseGenerateBlock()
	case p.at(token.KwGenvar):
		return p.parseGenvarDeclaration()
	case p.at(token.KwConstraint):
		return p.parseConstraintDeclaration()
	case p.atAny(token.KwAlways, token.KwAlwaysComb, token.KwAlwaysFF, token.KwInitial):
		return p.parseProceduralBlock()
	case p.isHierarchyInstantiation():
		return p.parseHierarchyInstantiation()
	default:
		return p.ParseStatement()
	}
}

func (p *Parser) parseDataDeclaration() *syntax.Node {
	var elems []syntax.Element
	if portDirections[p.cur().Kind] {
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	if netTypeKeywords[p.cur().Kind] || variableTypeKeywords[p.cur().Kind] {
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	for {
		elems = append(elems, syntax.NodeElement(p.parseVariableDeclarator()))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.DataDeclaration, elems...)
}

func (p *Parser) parseVariableDeclarator() *syntax.Node {
	name := p.expect(token.Identifier)
	elems := []syntax.Element{syntax.TokenElement(name)}
	if p.at(token.Equals) {
		elems = append(elems, syntax.TokenElement(p.advance()), syntax.NodeElement(p.ParseExpression()))
	}
	return syntax.New(syntax.VariableDeclarator, elems...)
}

func (p *Parser) parseContinuousAssign() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.KwAssign))}
	for {
		elems = append(elems, syntax.NodeElement(p.parseAssignment()))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.ContinuousAssign, elems...)
}

func (p *Parser) parseParameterDeclaration() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.advance())}
	for {
		elems = append(elems, syntax.NodeElement(p.parseParameterDeclarator()))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.ParameterDeclaration, elems...)
}

func (p *Parser) parseParameterDeclarator() *syntax.Node {
	name := p.expect(token.Identifier)
	eq := p.expect(token.Equals)
	val := p.ParseExpression()
	return syntax.New(syntax.ParameterDeclarator, syntax.TokenElement(name), syntax.TokenElement(eq), syntax.NodeElement(val))
}

func (p *Parser) parseImportDeclaration() *syntax.Node {
	kw := p.expect(token.KwImport)
	name := p.parseNameExpression()
	semi := p.expect(token.Semicolon)
	return syntax.New(syntax.ImportDeclaration, syntax.TokenElement(kw), syntax.NodeElement(name), syntax.TokenElement(semi))
}

func (p *Parser) parsePackageDeclaration() *syntax.Node {
	kw := p.expect(token.KwPackage)
	name := p.expect(token.Identifier)
	semi := p.expect(token.Semicolon)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(name), syntax.TokenElement(semi)}
	for !p.at(token.KwEndpackage) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseModuleItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndpackage)))
	return syntax.New(syntax.PackageDeclaration, elems...)
}

func (p *Parser) parseFunctionDeclaration() *syntax.Node {
	kw := p.expect(token.KwFunction)
	name := p.expect(token.Identifier)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(name)}
	if p.at(token.LParen) {
		elems = append(elems, syntax.NodeElement(p.parseAnsiPortList()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	for !p.at(token.KwEndfunction) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndfunction)))
	return syntax.New(syntax.FunctionDeclaration, elems...)
}

func (p *Parser) parseTaskDeclaration() *syntax.Node {
	kw := p.expect(token.KwTask)
	name := p.expect(token.Identifier)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(name)}
	if p.at(token.LParen) {
		elems = append(elems, syntax.NodeElement(p.parseAnsiPortList()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	for !p.at(token.KwEndtask) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.ParseStatement()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndtask)))
	return syntax.New(syntax.TaskDeclaration, elems...)
}

func (p *Parser) parseInterfaceDeclaration() *syntax.Node {
	kw := p.expect(token.KwInterface)
	name := p.expect(token.Identifier)
	elems := []syntax.Element{syntax.TokenElement(kw), syntax.TokenElement(name)}
	if p.at(token.LParen) {
		elems = append(elems, syntax.NodeElement(p.parsePortList()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	for !p.at(token.KwEndinterface) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseModuleItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndinterface)))
	return syntax.New(syntax.InterfaceDeclaration, elems...)
}

func (p *Parser) parseGenerateBlock() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.KwGenerate))}
	for !p.at(token.KwEndgenerate) && !p.at(token.EOF) {
		elems = append(elems, syntax.NodeElement(p.parseModuleItem()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.KwEndgenerate)))
	return syntax.New(syntax.GenerateBlock, elems...)
}

func (p *Parser) parseGenvarDeclaration() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.KwGenvar))}
	for {
		elems = append(elems, syntax.TokenElement(p.expect(token.Identifier)))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.GenvarDeclaration, elems...)
}

// parseHierarchyInstantiation parses `Type inst1(...), inst2(...);`.
func (p *Parser) parseHierarchyInstantiation() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.Identifier))}
	for {
		elems = append(elems, syntax.NodeElement(p.parseHierarchicalInstance()))
		if !p.at(token.Comma) {
			break
		}
		elems = append(elems, syntax.TokenElement(p.advance()))
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.Semicolon)))
	return syntax.New(syntax.HierarchyInstantiation, elems...)
}

func (p *Parser) parseHierarchicalInstance() *syntax.Node {
	name := p.expect(token.Identifier)
	conns := p.parsePortConnectionList()
	return syntax.New(syntax.HierarchicalInstance, syntax.TokenElement(name), syntax.NodeElement(conns))
}

// parsePortConnectionList shares ArgumentList's "paren, comma-separated
// elements, paren" schema — a port-connection list and a call-argument
// list are structurally identical; only the element kind differs.
func (p *Parser) parsePortConnectionList() *syntax.Node {
	elems := []syntax.Element{syntax.TokenElement(p.expect(token.LParen))}
	if !p.at(token.RParen) {
		for {
			elems = append(elems, syntax.NodeElement(p.parsePortConnection()))
			if !p.at(token.Comma) {
				break
			}
			elems = append(elems, syntax.TokenElement(p.advance()))
		}
	}
	elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
	return syntax.New(syntax.ArgumentList, elems...)
}

func (p *Parser) parsePortConnection() *syntax.Node {
	if p.at(token.Dot) {
		elems := []syntax.Element{syntax.TokenElement(p.advance()), syntax.TokenElement(p.expect(token.Identifier)), syntax.TokenElement(p.expect(token.LParen))}
		if !p.at(token.RParen) {
			elems = append(elems, syntax.NodeElement(p.ParseExpression()))
		}
		elems = append(elems, syntax.TokenElement(p.expect(token.RParen)))
		return syntax.New(syntax.PortConnection, elems...)
	}
	return syntax.New(syntax.OrderedPortConnection, syntax.NodeElement(p.ParseExpression()))
}
