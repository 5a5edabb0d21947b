// Package preprocessor implements spec component C6: the directive
// recognizer, macro table, conditional-inclusion stack, and include stack
// that sit between the lexer and the parser. It owns the token stream the
// parser actually consumes, exposing a 4-token peek buffer (Peek/Consume)
// so the parser never needs to know a token passed through macro
// expansion or conditional skipping.
package preprocessor

import (
	"strings"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/lexer"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// NetType is the mode set by `default_nettype.
type NetType int

const (
	NetWire NetType = iota
	NetNone
)

// pendingTok is one entry of the macro-expansion injection queue: a token
// to emit, optionally paired with the name of a macro whose
// active-expansion guard should be released once this token is consumed
// (attached to the last token of an expanded body).
type pendingTok struct {
	tok     token.Token
	popName string
}

// Preprocessor consumes one root file (plus any files it `includes) and
// emits the post-expansion, post-conditional-filtering token stream the
// parser drives through Peek/Consume. It holds references to a
// SourceManager, a diagnostic Sink, and the arena string pool only — the
// same "single-instance, single-threaded, no hidden state" contract the
// parser itself follows.
type Preprocessor struct {
	sm   sourcemgr.SourceManager
	sink diag.Sink
	pool *arena.StringPool
	opts Options

	macros    *MacroTable
	condStack []condFrame

	includeStack []includeFrame
	activeFiles  map[sourcemgr.FileID]bool

	netType        NetType
	keywordVersion string

	pushedBack *token.Token
	injected   []pendingTok

	activeMacroStack []string
	duePops          []string

	buf []token.Token
}

// New creates a Preprocessor rooted at rootFile. Predefined macros from
// opts.Predefined are installed before the first token is produced.
func New(sm sourcemgr.SourceManager, sink diag.Sink, pool *arena.StringPool, rootFile sourcemgr.FileID, opts Options) (*Preprocessor, error) {
	if sink == nil {
		sink = diag.NopSink{}
	}
	p := &Preprocessor{
		sm:          sm,
		sink:        sink,
		pool:        pool,
		opts:        opts,
		macros:      NewMacroTable(),
		activeFiles: make(map[sourcemgr.FileID]bool),
		netType:     NetWire,
	}
	for name, body := range opts.Predefined {
		p.macros.Define(Definition{Name: name, Body: p.relex(body, sourcemgr.Location{File: rootFile})})
	}
	if err := p.pushInclude(rootFile); err != nil {
		return nil, err
	}
	return p, nil
}

// NetType reports the current `default_nettype mode.
func (p *Preprocessor) NetType() NetType { return p.netType }

// KeywordVersion reports the active `begin_keywords version string, or the
// empty string if none is in effect.
func (p *Preprocessor) KeywordVersion() string { return p.keywordVersion }

// Macros exposes the macro table read-only, for tooling that wants to
// inspect what a compilation unit defined.
func (p *Preprocessor) Macros() *MacroTable { return p.macros }

// Peek returns the token n positions ahead of the next Consume without
// consuming it. n must be in [0,3]; the contract guarantees at least a
// 4-token horizon.
func (p *Preprocessor) Peek(n int) token.Token {
	p.ensure(n)
	return p.buf[n]
}

// PrependLeading attaches trivia as leading trivia on the token currently
// at the front of the buffer (ahead of whatever it already carries), for
// parser error recovery: skipped tokens become SkippedTokens trivia on the
// resynchronization point rather than vanishing from the round-trip text.
func (p *Preprocessor) PrependLeading(trivia token.Trivia) {
	p.ensure(0)
	p.buf[0].Leading = append([]token.Trivia{trivia}, p.buf[0].Leading...)
}

// Consume returns and removes the next token.
func (p *Preprocessor) Consume() token.Token {
	p.ensure(0)
	t := p.buf[0]
	p.buf = p.buf[1:]
	return t
}

func (p *Preprocessor) ensure(n int) {
	for len(p.buf) <= n {
		p.produceOne()
	}
}

// produceOne drives the raw token source (lexer + includes + macro
// injection) until exactly one post-expansion, post-filtering token has
// been appended to buf, or EOF is reached.
//
// The active-macro recursion guard for an injected body is released only
// after the body's last token has been fully dispatched (handleRawToken
// returning), not merely after it is dequeued — otherwise a single-token
// self-referencing body (`define M `M) would see its own guard already
// cleared while still processing that very token.
func (p *Preprocessor) produceOne() {
	var pendingTrivia []token.Trivia
	for {
		t := p.nextRaw()
		done := p.handleRawToken(t, &pendingTrivia)
		p.flushDuePops()
		if done {
			return
		}
	}
}

func (p *Preprocessor) flushDuePops() {
	for _, name := range p.duePops {
		p.popActive(name)
	}
	p.duePops = nil
}

// handleRawToken dispatches one raw token (directive, macro invocation, or
// ordinary content) and reports whether it resulted in a real token being
// appended to buf (ending this call to produceOne).
func (p *Preprocessor) handleRawToken(t token.Token, pendingTrivia *[]token.Trivia) bool {
	if t.Kind == token.EOF {
		if len(p.condStack) > 0 {
			p.sink.Report(t.Location, diag.CodeUnbalancedConditional, "endif")
			p.condStack = nil
		}
		t.Leading = mergeTrivia(*pendingTrivia, t.Leading)
		p.buf = append(p.buf, t)
		return true
	}

	if t.Kind == token.DirectiveName {
		name := p.pool.Lookup(t.IdentValue)
		if p.dispatchDirective(t, name, pendingTrivia) {
			return false
		}
		if p.skipping() {
			return false
		}
		p.expandMacroUse(t, name, pendingTrivia)
		return false
	}

	if p.skipping() {
		*pendingTrivia = append(*pendingTrivia, token.NewDisabledText(t.Location, t.FullText()))
		return false
	}

	t.Leading = mergeTrivia(*pendingTrivia, t.Leading)
	*pendingTrivia = nil
	p.buf = append(p.buf, t)
	return true
}

func mergeTrivia(pending []token.Trivia, leading []token.Trivia) []token.Trivia {
	if len(pending) == 0 {
		return leading
	}
	out := make([]token.Trivia, 0, len(pending)+len(leading))
	out = append(out, pending...)
	out = append(out, leading...)
	return out
}

// nextRaw is the single low-level token source: pushback slot, then the
// macro-injection queue, then the innermost include frame's lexer
// (transparently popping finished include frames).
func (p *Preprocessor) nextRaw() token.Token {
	if p.pushedBack != nil {
		t := *p.pushedBack
		p.pushedBack = nil
		return t
	}
	if len(p.injected) > 0 {
		item := p.injected[0]
		p.injected = p.injected[1:]
		if item.popName != "" {
			p.duePops = append(p.duePops, item.popName)
		}
		return item.tok
	}
	for {
		t := p.currentLexer().Lex()
		if t.Kind == token.EOF && len(p.includeStack) > 1 {
			p.popInclude()
			continue
		}
		return t
	}
}

func (p *Preprocessor) unread(t token.Token) { p.pushedBack = &t }

func (p *Preprocessor) relex(text string, loc sourcemgr.Location) []token.Token {
	sub := lexer.New(loc.File, []byte(text), diag.NopSink{}, p.pool)
	var out []token.Token
	for {
		t := sub.Lex()
		if t.Kind == token.EOF {
			break
		}
		t.Location = loc
		t.Leading = nil
		out = append(out, t)
	}
	if len(out) == 0 {
		out = append(out, token.NewSimple(token.Unknown, loc, text, nil))
	}
	return out
}

func (p *Preprocessor) onActive(name string) bool {
	for _, n := range p.activeMacroStack {
		if n == name {
			return true
		}
	}
	return false
}

func (p *Preprocessor) pushActive(name string) { p.activeMacroStack = append(p.activeMacroStack, name) }

func (p *Preprocessor) popActive(name string) {
	for i := len(p.activeMacroStack) - 1; i >= 0; i-- {
		if p.activeMacroStack[i] == name {
			p.activeMacroStack = append(p.activeMacroStack[:i], p.activeMacroStack[i+1:]...)
			return
		}
	}
}

func (p *Preprocessor) injectFront(body []token.Token, popName string) {
	if len(body) == 0 {
		if popName != "" {
			p.popActive(popName)
		}
		return
	}
	items := make([]pendingTok, len(body))
	for i, t := range body {
		items[i] = pendingTok{tok: t}
	}
	if popName != "" {
		items[len(items)-1].popName = popName
	}
	p.injected = append(items, p.injected...)
}

// suggest returns the closest known directive or macro name to name for a
// did-you-mean diagnostic, or "" if nothing is within editing-distance 3.
func (p *Preprocessor) suggest(name string) string {
	candidates := append([]string(nil), p.macros.Names()...)
	candidates = append(candidates, knownDirectiveNames...)
	best := ""
	bestDist := 4
	lower := strings.ToLower(name)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDist {
			bestDist, best = d, c
		}
	}
	return best
}

func directiveKindFor(name string) syntax.Kind {
	switch name {
	case "include":
		return syntax.IncludeDirective
	case "define":
		return syntax.DefineDirective
	case "undef":
		return syntax.UndefDirective
	case "ifdef":
		return syntax.IfdefDirective
	case "ifndef":
		return syntax.IfndefDirective
	case "elsif":
		return syntax.ElsifDirective
	case "else":
		return syntax.ElseDirective
	case "endif":
		return syntax.EndifDirective
	case "timescale":
		return syntax.TimescaleDirective
	case "default_nettype":
		return syntax.DefaultNettypeDirective
	case "line":
		return syntax.LineDirective
	case "resetall":
		return syntax.ResetallDirective
	case "celldefine":
		return syntax.CelldefineDirective
	case "endcelldefine":
		return syntax.EndcelldefineDirective
	case "pragma":
		return syntax.PragmaDirective
	case "begin_keywords":
		return syntax.BeginKeywordsDirective
	case "end_keywords":
		return syntax.EndKeywordsDirective
	default:
		return syntax.MacroUsage
	}
}
