// Package parser implements spec component C7: a hand-written recursive
// -descent parser over the preprocessor's post-expansion token stream,
// producing a concrete syntax.Node tree. Expressions are parsed by one
// recursive function per precedence level (see expr.go), not by a
// table-driven Pratt loop.
// Error recovery is local (synthesize a missing token, or skip to a
// follow-set member) so one ill-formed construct never aborts the whole
// parse — every entry point always returns a non-nil root.
package parser

import (
	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/preprocessor"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// Parser is single-instance, single-threaded; it holds references to the
// preprocessor and the diagnostic sink only, per spec.md §4.5 "State".
type Parser struct {
	pp       *preprocessor.Preprocessor
	sink     diag.Sink
	opts     Options
	errCount int
}

// New constructs a Parser over pp, reporting diagnostics to sink.
func New(pp *preprocessor.Preprocessor, sink diag.Sink, opts ...Option) *Parser {
	if sink == nil {
		sink = diag.NopSink{}
	}
	return &Parser{pp: pp, sink: sink, opts: NewOptions(opts...)}
}

// ParseCompilationUnit parses a sequence of top-level declarations until
// EOF. Always returns a non-nil CompilationUnit node.
func ParseCompilationUnit(pp *preprocessor.Preprocessor, sink diag.Sink, opts ...Option) *syntax.Node {
	return New(pp, sink, opts...).ParseCompilationUnit()
}

// ParseExpression parses a single expression. Always returns a non-nil
// node (possibly BadSyntax).
func ParseExpression(pp *preprocessor.Preprocessor, sink diag.Sink, opts ...Option) *syntax.Node {
	return New(pp, sink, opts...).ParseExpression()
}

// ParseStatement parses a single statement. Always returns a non-nil node.
func ParseStatement(pp *preprocessor.Preprocessor, sink diag.Sink, opts ...Option) *syntax.Node {
	return New(pp, sink, opts...).ParseStatement()
}

// ParseModule parses a single module declaration. Always returns a non-nil
// node.
func ParseModule(pp *preprocessor.Preprocessor, sink diag.Sink, opts ...Option) *syntax.Node {
	return New(pp, sink, opts...).ParseModule()
}

func (p *Parser) peek(n int) token.Token { return p.pp.Peek(n) }
func (p *Parser) cur() token.Token       { return p.pp.Peek(0) }

func (p *Parser) advance() token.Token { return p.pp.Consume() }

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) atAny(kinds ...token.Kind) bool {
	k := p.cur().Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches kind; otherwise it
// reports a missing-token diagnostic and synthesizes one (spec.md class-3
// recovery step (b)), leaving the real stream untouched.
func (p *Parser) expect(kind token.Kind) token.Token {
	if p.at(kind) {
		return p.advance()
	}
	p.reportMissing(kind)
	return token.NewMissing(kind, p.cur().Location)
}

// reportUnexpected emits CodeUnexpectedToken for the current token against
// an expected-kind set, with a did-you-mean suggestion when one of the
// expected kinds' spellings is close to what was actually found.
func (p *Parser) reportUnexpected(expected ...token.Kind) {
	if p.opts.MaxErrors > 0 && p.errCount >= p.opts.MaxErrors {
		return
	}
	p.errCount++
	p.sink.Report(p.cur().Location, diag.CodeUnexpectedToken, expected, p.cur().Kind, suggestExpected(p.cur(), expected))
}

func (p *Parser) reportMissing(expected token.Kind) {
	if p.opts.MaxErrors > 0 && p.errCount >= p.opts.MaxErrors {
		return
	}
	p.errCount++
	p.sink.Report(p.cur().Location, diag.CodeMissingToken, expected, p.cur().Kind)
}

// resync implements error-recovery step (c): skip tokens (attaching them
// as SkippedTokens trivia on the resynchronization point) until a
// follow-set member or EOF is found.
func (p *Parser) resync(followSet ...token.Kind) {
	var skipped []token.Token
	start := p.cur().Location
	for !p.at(token.EOF) && !p.atAny(followSet...) {
		skipped = append(skipped, p.advance())
	}
	if len(skipped) == 0 {
		return
	}
	var raw string
	for _, t := range skipped {
		raw += t.FullText()
	}
	trivia := token.NewSkippedTokens(start, raw, skipped)
	p.pp.PrependLeading(trivia)
}
