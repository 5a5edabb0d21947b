package token

import (
	"testing"

	"github.com/aledsdavies/svfront/sourcemgr"
)

func TestTokenEqualIgnoresLocation(t *testing.T) {
	a := NewSimple(Semicolon, sourcemgr.Location{Offset: 1}, ";", nil)
	b := NewSimple(Semicolon, sourcemgr.Location{Offset: 99}, ";", nil)
	if !a.Equal(b) {
		t.Fatalf("expected tokens equal regardless of location")
	}
}

func TestTokenEqualComparesIdentPayload(t *testing.T) {
	a := NewIdentifier(Identifier, sourcemgr.Location{}, "foo", nil, 1)
	b := NewIdentifier(Identifier, sourcemgr.Location{}, "foo", nil, 2)
	if a.Equal(b) {
		t.Fatalf("distinct interned ids should not be equal")
	}
}

func TestTokenFullTextIncludesLeadingTrivia(t *testing.T) {
	ws := NewWhitespace(sourcemgr.Location{Offset: 0}, "   ")
	tok := NewSimple(Semicolon, sourcemgr.Location{Offset: 3}, ";", []Trivia{ws})
	if got, want := tok.FullText(), "   ;"; got != want {
		t.Fatalf("FullText() = %q, want %q", got, want)
	}
}

func TestMissingTokenHasNoRawText(t *testing.T) {
	m := NewMissing(Semicolon, sourcemgr.Location{Offset: 5})
	if !m.IsMissing() {
		t.Fatalf("expected Missing to be true")
	}
	if m.Raw != "" {
		t.Fatalf("missing token should have empty raw text, got %q", m.Raw)
	}
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	if KwModule.String() != "module" {
		t.Fatalf("KwModule.String() = %q", KwModule.String())
	}
	if got := Kind(99999).String(); got == "" {
		t.Fatalf("unknown kind should still stringify")
	}
}

func TestTimeUnitFromText(t *testing.T) {
	if u, ok := TimeUnitFromText("ns"); !ok || u != UnitNanoseconds {
		t.Fatalf("TimeUnitFromText(ns) = (%v,%v)", u, ok)
	}
	if _, ok := TimeUnitFromText("weeks"); ok {
		t.Fatalf("expected unknown unit to fail")
	}
}

func TestIsKeyword(t *testing.T) {
	if !KwEndmodule.IsKeyword() {
		t.Fatalf("KwEndmodule should be a keyword kind")
	}
	if Identifier.IsKeyword() {
		t.Fatalf("Identifier should not be a keyword kind")
	}
}
