package diag

import (
	"testing"

	"github.com/aledsdavies/svfront/sourcemgr"
)

func TestBagReportsInOrder(t *testing.T) {
	b := NewBag()
	b.Report(sourcemgr.Location{File: 1, Offset: 5}, CodeBadDigit)
	b.Report(sourcemgr.Location{File: 1, Offset: 2}, CodeUnterminatedString)

	all := b.All()
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Code != CodeBadDigit || all[1].Code != CodeUnterminatedString {
		t.Fatalf("report order not preserved: %+v", all)
	}
}

func TestBagSortedByLocation(t *testing.T) {
	b := NewBag()
	b.Report(sourcemgr.Location{File: 1, Offset: 5}, CodeBadDigit)
	b.Report(sourcemgr.Location{File: 1, Offset: 2}, CodeUnterminatedString)

	sorted := b.Sorted()
	if sorted[0].Location.Offset != 2 || sorted[1].Location.Offset != 5 {
		t.Fatalf("not sorted: %+v", sorted)
	}
}

func TestBagHasDuplicate(t *testing.T) {
	b := NewBag()
	loc := sourcemgr.Location{File: 1, Offset: 5}
	b.Report(loc, CodeBadDigit)
	if b.HasDuplicate() {
		t.Fatalf("single report flagged as duplicate")
	}
	b.Report(loc, CodeBadDigit)
	if !b.HasDuplicate() {
		t.Fatalf("repeated (code,location) not detected")
	}
}

func TestCodeClass(t *testing.T) {
	cases := map[Code]int{
		CodeBadDigit:        1,
		CodeUnknownDirective: 2,
		CodeUnexpectedToken: 3,
		CodeUndeclaredName:  4,
	}
	for code, want := range cases {
		if got := code.Class(); got != want {
			t.Fatalf("%s.Class() = %d, want %d", code, got, want)
		}
	}
}

func TestNopSinkDiscards(t *testing.T) {
	var s Sink = NopSink{}
	s.Report(sourcemgr.Location{}, CodeBadDigit) // must not panic
}
