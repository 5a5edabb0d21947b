package preprocessor

// CondState is the per-frame state machine described in spec.md §4.7:
// {Active, Inactive-can-flip, Inactive-done}.
type CondState int

const (
	CondActive           CondState = iota // currently taken; tokens pass through
	CondInactiveCanFlip                   // skipping, but a later else/elsif may still take this frame
	CondInactiveDone                      // skipping, and no later branch may ever take this frame (a branch already did)
)

// condFrame is one entry of the conditional-inclusion stack.
type condFrame struct {
	state      CondState
	elifsSeen  int
	openToken  string // "ifdef" / "ifndef", for unbalanced-endif diagnostics
	anyBranchTaken bool
}

// pushIfdef pushes a frame for `ifdef/`ifndef. taken reports whether the
// initial branch's condition holds (macro-table membership, possibly
// negated for ifndef).
func (p *Preprocessor) pushIfdef(directive string, taken bool) {
	state := CondInactiveCanFlip
	if taken {
		state = CondActive
	}
	p.condStack = append(p.condStack, condFrame{state: state, openToken: directive, anyBranchTaken: taken})
}

// flipElsif/flipElse transition the top frame per spec.md §4.4: "`else`/
// `elsif` flip `skipping` <-> `taken` only if the containing frame has not
// yet yielded a taken branch".
func (p *Preprocessor) flipElsif(taken bool) {
	if len(p.condStack) == 0 {
		return
	}
	top := &p.condStack[len(p.condStack)-1]
	top.elifsSeen++
	if top.anyBranchTaken {
		top.state = CondInactiveDone
		return
	}
	if taken {
		top.state = CondActive
		top.anyBranchTaken = true
	} else {
		top.state = CondInactiveCanFlip
	}
}

func (p *Preprocessor) flipElse() {
	if len(p.condStack) == 0 {
		return
	}
	top := &p.condStack[len(p.condStack)-1]
	if top.anyBranchTaken {
		top.state = CondInactiveDone
		return
	}
	top.state = CondActive
	top.anyBranchTaken = true
}

// popEndif pops the top frame, returning false if the stack was empty
// (unbalanced `endif`, diagnosed by the caller).
func (p *Preprocessor) popEndif() bool {
	if len(p.condStack) == 0 {
		return false
	}
	p.condStack = p.condStack[:len(p.condStack)-1]
	return true
}

// skipping reports whether tokens emitted right now would be dropped: true
// whenever any frame on the stack is not Active, since a nested frame's
// taken branch inside an outer skipped branch is still skipped.
func (p *Preprocessor) skipping() bool {
	for _, f := range p.condStack {
		if f.state != CondActive {
			return true
		}
	}
	return false
}
