// Package visit implements the dispatch contract spec component C9 asks
// for: an exhaustive switch over a closed kind enum, never a registry of
// function pointers or an open visitor interface one type per kind. It
// provides two worked utilities — Walker (generic traversal) and Printer
// (lossless round-trip reconstruction, exercising invariant P1) — plus
// kind-switch walkers over the three binder semantic-tree families.
package visit

import "github.com/aledsdavies/svfront/syntax"

// Walker performs a pre-order, depth-first traversal of a syntax.Node
// tree. Pre is called on entry to a node; if it returns false, that
// node's children are skipped (but its siblings continue). Post, if
// non-nil, is called after all of a node's children have been visited.
// Either callback may be nil.
type Walker struct {
	Pre  func(n *syntax.Node) bool
	Post func(n *syntax.Node)
}

// Walk traverses n and every descendant Node element.
func (w Walker) Walk(n *syntax.Node) {
	if n == nil {
		return
	}
	descend := true
	if w.Pre != nil {
		descend = w.Pre(n)
	}
	if descend {
		for _, e := range n.Elements {
			if e.Node != nil {
				w.Walk(e.Node)
			}
		}
	}
	if w.Post != nil {
		w.Post(n)
	}
}
