package sourcemgr

import (
	"fmt"
	"os"
	"path/filepath"
)

// lineTable is the concrete LineTable used by MemManager: a sorted slice of
// line-start offsets, built once when a file is added.
type lineTable struct {
	starts []int // starts[i] is the byte offset of line i+1
}

func newLineTable(text []byte) *lineTable {
	starts := []int{0}
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineTable{starts: starts}
}

func (t *lineTable) Position(offset int) LineCol {
	// binary search for the last line start <= offset
	lo, hi := 0, len(t.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line := lo + 1
	col := offset - t.starts[lo] + 1
	return LineCol{Line: line, Column: col}
}

func (t *lineTable) LineStart(line int) (int, bool) {
	if line < 1 || line > len(t.starts) {
		return 0, false
	}
	return t.starts[line-1], true
}

type memFile struct {
	name string
	text []byte
	tbl  *lineTable
}

// MemManager is an in-memory SourceManager. It is the concrete
// implementation the core's own tests are built against, and a minimal
// drop-in for hosts that do not need a real filesystem (editor buffers,
// single-string compilations, fuzzing harnesses).
type MemManager struct {
	files   []memFile // index 0 unused; FileID is 1-based into this slice
	byName  map[string]FileID
	useDisk bool // Resolve falls back to os.ReadFile when set
}

// NewMemManager creates an empty in-memory source manager. When
// allowDiskFallback is true, Resolve will read files from the real
// filesystem the first time a path is not already registered with AddFile;
// this is useful for a host that pre-seeds a few virtual buffers (e.g. a
// `-e` inline snippet) but still wants `include` to find real files.
func NewMemManager(allowDiskFallback bool) *MemManager {
	return &MemManager{
		files:   make([]memFile, 1), // reserve index 0 for NoFile
		byName:  make(map[string]FileID),
		useDisk: allowDiskFallback,
	}
}

// AddFile registers text under name and returns its FileID. Calling AddFile
// twice with the same name replaces the previous content and returns the
// same FileID.
func (m *MemManager) AddFile(name string, text []byte) FileID {
	if id, ok := m.byName[name]; ok {
		m.files[id] = memFile{name: name, text: text, tbl: newLineTable(text)}
		return id
	}
	id := FileID(len(m.files))
	m.files = append(m.files, memFile{name: name, text: text, tbl: newLineTable(text)})
	m.byName[name] = id
	return id
}

func (m *MemManager) Open(id FileID) ([]byte, LineTable, error) {
	if id <= NoFile || int(id) >= len(m.files) {
		return nil, nil, fmt.Errorf("sourcemgr: unknown file id %d", id)
	}
	f := m.files[id]
	return f.text, f.tbl, nil
}

func (m *MemManager) Name(id FileID) string {
	if id <= NoFile || int(id) >= len(m.files) {
		return "<unknown>"
	}
	return m.files[id].name
}

func (m *MemManager) Resolve(path string, searchDirs []string) (FileID, error) {
	if id, ok := m.byName[path]; ok {
		return id, nil
	}

	candidates := make([]string, 0, len(searchDirs)+1)
	if filepath.IsAbs(path) {
		candidates = append(candidates, path)
	} else {
		candidates = append(candidates, path)
		for _, dir := range searchDirs {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}

	for _, c := range candidates {
		if id, ok := m.byName[c]; ok {
			return id, nil
		}
	}

	if !m.useDisk {
		return NoFile, fmt.Errorf("sourcemgr: cannot resolve %q (disk access disabled)", path)
	}

	var firstErr error
	for _, c := range candidates {
		data, err := os.ReadFile(c)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return m.AddFile(c, data), nil
	}
	return NoFile, fmt.Errorf("sourcemgr: cannot resolve %q: %w", path, firstErr)
}
