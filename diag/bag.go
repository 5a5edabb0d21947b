package diag

import (
	"fmt"
	"sort"

	"github.com/aledsdavies/svfront/sourcemgr"
)

// Bag is an in-memory Sink that collects diagnostics in report order. It is
// the concrete sink the core's own tests drive; a real driver would wrap a
// richer pretty-printing sink around the same Sink interface.
type Bag struct {
	diags []Diagnostic
	seen  map[seenKey]bool
}

type seenKey struct {
	loc  sourcemgr.Location
	code Code
}

// NewBag creates an empty diagnostic bag.
func NewBag() *Bag {
	return &Bag{seen: make(map[seenKey]bool)}
}

// Report records a diagnostic. Per P4 (diagnostic uniqueness per root), a
// repeated (code, location) pair from an unrelated call site is still
// recorded — Bag does not itself enforce uniqueness, it only gives callers
// a way to check it (see HasDuplicate) since only the producer can tell
// whether two equal pairs share one root cause.
func (b *Bag) Report(loc sourcemgr.Location, code Code, args ...any) {
	b.diags = append(b.diags, Diagnostic{Location: loc, Code: code, Args: append([]any(nil), args...)})
	b.seen[seenKey{loc, code}] = true
}

// All returns the collected diagnostics in report order.
func (b *Bag) All() []Diagnostic { return b.diags }

// Len reports how many diagnostics have been collected.
func (b *Bag) Len() int { return len(b.diags) }

// Empty reports whether no diagnostics were collected.
func (b *Bag) Empty() bool { return len(b.diags) == 0 }

// HasDuplicate reports whether any (code, location) pair was reported more
// than once, for P4 property tests.
func (b *Bag) HasDuplicate() bool {
	counts := make(map[seenKey]int, len(b.diags))
	for _, d := range b.diags {
		k := seenKey{d.Location, d.Code}
		counts[k]++
		if counts[k] > 1 {
			return true
		}
	}
	return false
}

// Sorted returns the diagnostics ordered by location, for display; report
// order (used internally to check discovery-order guarantees) is preserved
// by All.
func (b *Bag) Sorted() []Diagnostic {
	out := append([]Diagnostic(nil), b.diags...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Location.Less(out[j].Location)
	})
	return out
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s %v", d.Location, d.Code, d.Args)
}
