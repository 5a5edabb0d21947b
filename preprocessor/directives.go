package preprocessor

import (
	"strings"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/syntax"
	"github.com/aledsdavies/svfront/token"
)

// knownDirectiveNames drives the "not a known directive, also not a
// defined macro" diagnostic's did-you-mean suggestion.
var knownDirectiveNames = []string{
	"include", "define", "undef", "ifdef", "ifndef", "else", "elsif",
	"endif", "timescale", "default_nettype", "line", "resetall",
	"celldefine", "endcelldefine", "pragma", "begin_keywords", "end_keywords",
}

func isConditionalDirective(name string) bool {
	switch name {
	case "ifdef", "ifndef", "else", "elsif", "endif":
		return true
	default:
		return false
	}
}

func isKnownDirective(name string) bool {
	for _, n := range knownDirectiveNames {
		if n == name {
			return true
		}
	}
	return false
}

// dispatchDirective handles a DirectiveName token whose text matches a
// known compiler directive. It returns false when name is not a known
// directive at all, signaling the caller to try macro-invocation instead.
func (p *Preprocessor) dispatchDirective(nameTok token.Token, name string, pendingTrivia *[]token.Trivia) bool {
	if !isKnownDirective(name) {
		return false
	}
	if isConditionalDirective(name) {
		p.handleConditional(nameTok, name, pendingTrivia)
		return true
	}
	p.handleSimpleDirective(nameTok, name, !p.skipping(), pendingTrivia)
	return true
}

// handleConditional implements the conditional-inclusion state machine
// (spec.md §4.4/§4.7). Frame transitions always happen, independent of the
// current skip state, so that nested `ifdef/`endif pairs inside an already
// -skipped outer branch still balance correctly.
func (p *Preprocessor) handleConditional(nameTok token.Token, name string, pendingTrivia *[]token.Trivia) {
	var consumed []token.Token

	switch name {
	case "ifdef", "ifndef":
		macroTok := p.nextRaw()
		consumed = append(consumed, macroTok)
		defined := p.macros.IsDefined(macroTok.Raw)
		taken := defined
		if name == "ifndef" {
			taken = !defined
		}
		p.pushIfdef(name, taken)
	case "elsif":
		macroTok := p.nextRaw()
		consumed = append(consumed, macroTok)
		p.flipElsif(p.macros.IsDefined(macroTok.Raw))
	case "else":
		p.flipElse()
	case "endif":
		if !p.popEndif() {
			p.sink.Report(nameTok.Location, diag.CodeUnbalancedConditional, name)
		}
	}

	raw := nameTok.FullText()
	for _, t := range consumed {
		raw += t.FullText()
	}
	dir := syntax.New(directiveKindFor(name))
	dir.Name = name
	*pendingTrivia = append(*pendingTrivia, token.NewDirective(nameTok.Location, raw, dir))
}

// handleSimpleDirective handles every non-conditional directive. apply is
// false when the directive occurs inside a currently-skipped conditional
// branch: the directive's tokens are still consumed (to keep the stream in
// sync) but no state mutation happens, and the span is attached as
// disabled-text trivia instead of a directive node.
func (p *Preprocessor) handleSimpleDirective(nameTok token.Token, name string, apply bool, pendingTrivia *[]token.Trivia) {
	var consumed []token.Token

	switch name {
	case "define":
		consumed = p.doDefine(nameTok, apply)
	case "undef":
		t := p.nextRaw()
		consumed = append(consumed, t)
		if apply {
			p.macros.Undef(t.Raw)
		}
	case "include":
		consumed = p.doInclude(nameTok, apply)
	case "timescale", "line", "pragma":
		consumed = p.collectDirectiveBody()
	case "default_nettype":
		t := p.nextRaw()
		consumed = append(consumed, t)
		if apply {
			if t.Raw == "none" {
				p.netType = NetNone
			} else {
				p.netType = NetWire
			}
		}
	case "resetall":
		if apply {
			p.netType = NetWire
			p.keywordVersion = ""
		}
	case "celldefine", "endcelldefine":
		// no state tracked beyond round-trip; nothing to consume beyond the
		// directive name itself.
	case "begin_keywords":
		consumed = p.doBeginKeywords(nameTok, apply)
	case "end_keywords":
		if apply {
			p.keywordVersion = ""
		}
	}

	raw := nameTok.FullText()
	for _, t := range consumed {
		raw += t.FullText()
	}

	if apply {
		dir := syntax.New(directiveKindFor(name))
		dir.Name = name
		*pendingTrivia = append(*pendingTrivia, token.NewDirective(nameTok.Location, raw, dir))
	} else {
		*pendingTrivia = append(*pendingTrivia, token.NewDisabledText(nameTok.Location, raw))
	}
}

// hasHardNewline reports whether any whitespace trivia in leading contains
// an unescaped newline — the signal that a directive's logical line has
// ended (backslash-newline continuations are their own trivia chunk
// starting with '\\', per lexer.scanTrivia, and never match this check).
func hasHardNewline(leading []token.Trivia) bool {
	for _, tr := range leading {
		if tr.Kind == token.TriviaWhitespace && strings.Contains(tr.Raw, "\n") && !strings.HasPrefix(tr.Raw, "\\") {
			return true
		}
	}
	return false
}

// collectDirectiveBody consumes raw tokens up to (not including) the end
// of the directive's logical source line, unreading the token that starts
// the next line.
func (p *Preprocessor) collectDirectiveBody() []token.Token {
	var body []token.Token
	for {
		t := p.nextRaw()
		if t.Kind == token.EOF || hasHardNewline(t.Leading) {
			p.unread(t)
			break
		}
		body = append(body, t)
	}
	return body
}

func (p *Preprocessor) doDefine(nameTok token.Token, apply bool) []token.Token {
	var consumed []token.Token

	macroNameTok := p.nextRaw()
	consumed = append(consumed, macroNameTok)
	if macroNameTok.Kind != token.Identifier {
		if apply {
			p.sink.Report(nameTok.Location, diag.CodeUnknownDirective, "define")
		}
		return consumed
	}

	lookahead := p.nextRaw()
	funcLike := lookahead.Kind == token.LParen && len(lookahead.Leading) == 0
	var params []Param
	if funcLike {
		consumed = append(consumed, lookahead)
		ps, ptoks := p.parseMacroParams()
		params = ps
		consumed = append(consumed, ptoks...)
	} else {
		p.unread(lookahead)
	}

	body := p.collectDirectiveBody()
	consumed = append(consumed, body...)

	if apply {
		if _, exists := p.macros.Lookup(macroNameTok.Raw); exists {
			p.sink.Report(macroNameTok.Location, diag.CodeMacroRedefined, macroNameTok.Raw)
		}
		p.macros.Define(Definition{Name: macroNameTok.Raw, FuncLike: funcLike, Params: params, Body: body, DefinedLoc: macroNameTok})
	}
	return consumed
}

// parseMacroParams consumes a formal-parameter list up to and including
// the closing ')', returning the parsed Params and every token consumed.
func (p *Preprocessor) parseMacroParams() ([]Param, []token.Token) {
	var params []Param
	var consumed []token.Token

	for {
		t := p.nextRaw()
		consumed = append(consumed, t)
		if t.Kind == token.RParen || t.Kind == token.EOF {
			return params, consumed
		}
		if t.Kind == token.Comma {
			continue
		}
		if t.Kind != token.Identifier {
			continue
		}
		name := t.Raw

		peek := p.nextRaw()
		consumed = append(consumed, peek)
		if peek.Kind == token.Equals {
			var def []token.Token
			for {
				v := p.nextRaw()
				if v.Kind == token.Comma || v.Kind == token.RParen || v.Kind == token.EOF {
					consumed = append(consumed, v)
					params = append(params, Param{Name: name, Default: def})
					if v.Kind != token.Comma {
						return params, consumed
					}
					break
				}
				consumed = append(consumed, v)
				def = append(def, v)
			}
			continue
		}
		params = append(params, Param{Name: name, Default: nil})
		if peek.Kind == token.RParen || peek.Kind == token.EOF {
			return params, consumed
		}
	}
}

func minRequiredArgs(def Definition) int {
	n := 0
	for _, p := range def.Params {
		if p.Default == nil {
			n++
		}
	}
	return n
}

// parseMacroArgs consumes a comma-separated, paren-balanced argument list
// starting just after the opening '(' (already consumed by the caller) up
// to and including the matching ')'.
func (p *Preprocessor) parseMacroArgs() [][]token.Token {
	var args [][]token.Token
	var cur []token.Token
	depth := 0
	for {
		t := p.nextRaw()
		switch {
		case t.Kind == token.EOF:
			args = append(args, cur)
			return args
		case t.Kind == token.LParen:
			depth++
			cur = append(cur, t)
		case t.Kind == token.RParen:
			if depth == 0 {
				args = append(args, cur)
				return args
			}
			depth--
			cur = append(cur, t)
		case t.Kind == token.Comma && depth == 0:
			args = append(args, cur)
			cur = nil
		default:
			cur = append(cur, t)
		}
	}
}

func substituteArgs(def Definition, args [][]token.Token) []token.Token {
	argByName := make(map[string][]token.Token, len(def.Params))
	for i, prm := range def.Params {
		if i < len(args) {
			argByName[prm.Name] = args[i]
		} else {
			argByName[prm.Name] = prm.Default
		}
	}
	var out []token.Token
	for _, t := range def.Body {
		if t.Kind == token.Identifier {
			if repl, ok := argByName[t.Raw]; ok {
				out = append(out, repl...)
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// resolveBody resolves stringification first, then token-pasting, matching
// the order real tools apply these two operators (a pasted operand is
// never itself the product of stringification in well-formed macros, so
// order only matters for `` immediately adjacent to `" which this two-pass
// approach treats as two independent operators applied left to right).
func (p *Preprocessor) resolveBody(body []token.Token) []token.Token {
	return p.resolvePasting(p.resolveStringify(body))
}

func (p *Preprocessor) resolveStringify(body []token.Token) []token.Token {
	var out []token.Token
	for i := 0; i < len(body); {
		if body[i].Kind != token.MacroStringifyTick {
			out = append(out, body[i])
			i++
			continue
		}
		start := body[i].Location
		j := i + 1
		var parts []string
		for j < len(body) && body[j].Kind != token.MacroStringifyTick {
			parts = append(parts, body[j].Raw)
			j++
		}
		text := strings.Join(parts, " ")
		out = append(out, token.NewString(start, `"`+text+`"`, nil, token.StringValue{Decoded: text}))
		if j < len(body) {
			j++
		}
		i = j
	}
	return out
}

func (p *Preprocessor) resolvePasting(body []token.Token) []token.Token {
	var out []token.Token
	for i := 0; i < len(body); {
		if i+1 < len(body) && body[i+1].Kind == token.MacroEscapeTick {
			loc := body[i].Location
			pasted := body[i].Raw
			next := i + 2
			if next < len(body) {
				pasted += body[next].Raw
				next++
			}
			out = append(out, p.relex(pasted, loc)...)
			i = next
			continue
		}
		out = append(out, body[i])
		i++
	}
	return out
}

// expandMacroUse handles a DirectiveName token that is not a known
// compiler directive: it must name a defined macro, and is expanded (or
// diagnosed as unresolved) here.
func (p *Preprocessor) expandMacroUse(nameTok token.Token, name string, pendingTrivia *[]token.Trivia) {
	def, ok := p.macros.Lookup(name)
	if !ok {
		p.sink.Report(nameTok.Location, diag.CodeUnknownDirective, name, p.suggest(name))
		return
	}

	if p.onActive(name) {
		// Recursive self-expansion forbidden: emit the macro name verbatim
		// (spec.md §4.4, "law": non-recursion).
		lit := token.NewIdentifier(token.Identifier, nameTok.Location, name, nameTok.Leading, nameTok.IdentValue)
		p.injectFront([]token.Token{lit}, "")
		return
	}

	var args [][]token.Token
	if def.FuncLike {
		open := p.nextRaw()
		if open.Kind != token.LParen {
			p.sink.Report(nameTok.Location, diag.CodeMacroArityMismatch, name)
			p.unread(open)
			return
		}
		args = p.parseMacroArgs()
		if len(args) > len(def.Params) || len(args) < minRequiredArgs(def) {
			p.sink.Report(nameTok.Location, diag.CodeMacroArityMismatch, name, len(args), len(def.Params))
		}
	}

	body := p.resolveBody(substituteArgs(def, args))
	// Attach nameTok's own leading trivia to the first emitted token so
	// round-trip reconstruction still covers the whitespace/comments that
	// preceded the invocation.
	if len(body) > 0 {
		first := body[0]
		first.Leading = mergeTrivia(nameTok.Leading, first.Leading)
		body[0] = first
	} else if len(*pendingTrivia) == 0 {
		*pendingTrivia = append(*pendingTrivia, nameTok.Leading...)
	}

	p.pushActive(name)
	p.injectFront(body, name)
}

func (p *Preprocessor) doInclude(nameTok token.Token, apply bool) []token.Token {
	var consumed []token.Token

	t := p.nextRaw()
	consumed = append(consumed, t)
	var path string
	switch t.Kind {
	case token.StringLiteral:
		path = t.StringValue.Decoded
	case token.Lt:
		var b strings.Builder
		for {
			n := p.nextRaw()
			consumed = append(consumed, n)
			if n.Kind == token.Gt || n.Kind == token.EOF {
				break
			}
			b.WriteString(n.Raw)
		}
		path = b.String()
	default:
		if apply {
			p.sink.Report(nameTok.Location, diag.CodeIncludeNotFound, "")
		}
		consumed = append(consumed, p.collectDirectiveBody()...)
		return consumed
	}
	consumed = append(consumed, p.collectDirectiveBody()...)

	if !apply {
		return consumed
	}

	fid, err := p.sm.Resolve(path, p.opts.SearchDirs)
	if err != nil {
		p.sink.Report(nameTok.Location, diag.CodeIncludeNotFound, path)
		return consumed
	}
	if p.inCycle(fid) {
		p.sink.Report(nameTok.Location, diag.CodeIncludeCycle, path)
		return consumed
	}
	if p.opts.MaxIncludeDepth > 0 && len(p.includeStack) >= p.opts.MaxIncludeDepth {
		p.sink.Report(nameTok.Location, diag.CodeIncludeCycle, path)
		return consumed
	}
	if err := p.pushInclude(fid); err != nil {
		p.sink.Report(nameTok.Location, diag.CodeIncludeNotFound, path)
	}
	return consumed
}

func (p *Preprocessor) doBeginKeywords(nameTok token.Token, apply bool) []token.Token {
	t := p.nextRaw()
	consumed := []token.Token{t}
	if !apply {
		return consumed
	}
	version := t.Raw
	if t.Kind == token.StringLiteral {
		version = t.StringValue.Decoded
	}
	if keywordVersionIndex(version) < 0 {
		p.sink.Report(nameTok.Location, diag.CodeUnknownKeywordVersion, version)
	}
	p.keywordVersion = version
	return consumed
}
