package preprocessor

import (
	"github.com/aledsdavies/svfront/lexer"
	"github.com/aledsdavies/svfront/sourcemgr"
)

// includeFrame is one entry of the include stack: an active lexer over one
// buffer plus the net-type policy in effect when this buffer was entered
// (used only when NetTypePropagatesAcrossIncludes is false).
type includeFrame struct {
	file  sourcemgr.FileID
	lex   *lexer.Lexer
	netty defaultNetType
}

// pushInclude opens file and pushes a new lexer frame onto the include
// stack. The include stack is scope-acquired during preprocessing: popInclude
// (called whenever a frame's lexer reaches EOF) guarantees release on every
// exit path, including an input that never balances its includes (EOF
// simply pops back to the parent frame, or ends the unit at the root).
func (p *Preprocessor) pushInclude(file sourcemgr.FileID) error {
	text, _, err := p.sm.Open(file)
	if err != nil {
		return err
	}
	p.includeStack = append(p.includeStack, includeFrame{
		file:  file,
		lex:   lexer.New(file, text, p.sink, p.pool),
		netty: p.netType,
	})
	p.activeFiles[file] = true
	return nil
}

// popInclude pops the top include frame (the one that just hit EOF).
func (p *Preprocessor) popInclude() {
	if len(p.includeStack) == 0 {
		return
	}
	top := p.includeStack[len(p.includeStack)-1]
	delete(p.activeFiles, top.file)
	p.includeStack = p.includeStack[:len(p.includeStack)-1]
	if !p.opts.NetTypePropagatesAcrossIncludes && len(p.includeStack) > 0 {
		p.netType = top.netty
	}
}

// currentLexer returns the lexer for the innermost active include frame.
func (p *Preprocessor) currentLexer() *lexer.Lexer {
	return p.includeStack[len(p.includeStack)-1].lex
}

// inCycle reports whether file is already open somewhere on the include
// stack (a self-inclusion cycle).
func (p *Preprocessor) inCycle(file sourcemgr.FileID) bool {
	return p.activeFiles[file]
}
