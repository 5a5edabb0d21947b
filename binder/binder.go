package binder

import "github.com/aledsdavies/svfront/syntax"

// InternalError is the panic payload for a class-5 "internal invariant"
// failure (spec.md §7.5): a bind function was asked to handle a
// syntax.Kind outside the family it dispatches for. This is a bug in the
// caller or in the dispatch table, never user input, so it is not
// reported through diag.Sink.
type InternalError struct {
	Msg string
}

func (e InternalError) Error() string { return e.Msg }

func panicInternal(msg string) {
	panic(InternalError{Msg: msg})
}

// nodeChildren returns every direct child Node element of n, in order,
// skipping tokens — used by productions whose child list is a variable-
// length sequence (blocks, concatenations) rather than a fixed schema.
func nodeChildren(n *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for _, e := range n.Elements {
		if e.Node != nil {
			out = append(out, e.Node)
		}
	}
	return out
}

// elemCursor walks a Node's Elements in order without assuming a fixed
// position for optional slots (spec.md §4.5's for-loop clauses and the
// assert action-block can each omit a node before its delimiter token).
type elemCursor struct {
	elems []syntax.Element
	i     int
}

func (c *elemCursor) next() syntax.Element {
	e := c.elems[c.i]
	c.i++
	return e
}

func (c *elemCursor) peekIsNode() bool {
	return c.i < len(c.elems) && c.elems[c.i].Node != nil
}

func (c *elemCursor) remaining() bool { return c.i < len(c.elems) }
