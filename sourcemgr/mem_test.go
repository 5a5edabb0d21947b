package sourcemgr

import "testing"

func TestMemManagerOpenRoundTrip(t *testing.T) {
	m := NewMemManager(false)
	id := m.AddFile("top.sv", []byte("module A;\nendmodule\n"))

	text, lines, err := m.Open(id)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if string(text) != "module A;\nendmodule\n" {
		t.Fatalf("unexpected text: %q", text)
	}

	pos := lines.Position(7) // the 'A' on line 1
	if pos.Line != 1 {
		t.Fatalf("Position(7).Line = %d, want 1", pos.Line)
	}

	pos2 := lines.Position(10) // start of "endmodule" on line 2
	if pos2.Line != 2 || pos2.Column != 1 {
		t.Fatalf("Position(10) = %+v, want line 2 col 1", pos2)
	}
}

func TestMemManagerResolveByRegisteredName(t *testing.T) {
	m := NewMemManager(false)
	m.AddFile("defs.svh", []byte("`define FOO 1\n"))

	id, err := m.Resolve("defs.svh", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if m.Name(id) != "defs.svh" {
		t.Fatalf("Name = %q", m.Name(id))
	}
}

func TestMemManagerResolveUnknownFailsWithoutDisk(t *testing.T) {
	m := NewMemManager(false)
	if _, err := m.Resolve("missing.svh", []string{"inc"}); err == nil {
		t.Fatalf("expected error resolving unknown file with disk disabled")
	}
}

func TestMemManagerUnknownFileIDErrors(t *testing.T) {
	m := NewMemManager(false)
	if _, _, err := m.Open(FileID(99)); err == nil {
		t.Fatalf("expected error opening unknown file id")
	}
}

func TestLineTableLineStart(t *testing.T) {
	m := NewMemManager(false)
	id := m.AddFile("x.sv", []byte("a\nbb\nccc"))
	_, lines, _ := m.Open(id)

	if off, ok := lines.LineStart(2); !ok || off != 2 {
		t.Fatalf("LineStart(2) = (%d,%v), want (2,true)", off, ok)
	}
	if _, ok := lines.LineStart(99); ok {
		t.Fatalf("LineStart(99) should fail")
	}
}
