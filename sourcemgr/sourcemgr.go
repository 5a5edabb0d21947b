// Package sourcemgr defines the source-manager contract consumed by the
// lexer and preprocessor, plus one dependency-free in-memory
// implementation. The core never touches the filesystem directly; a host
// application supplies its own SourceManager (backed by disk, a VFS, an
// editor buffer, ...).
package sourcemgr

import "fmt"

// FileID identifies a source buffer. Zero is never a valid, opened file;
// callers use it as a sentinel for "no location".
type FileID int32

// NoFile is the zero value of FileID, meaning "not associated with any
// source buffer".
const NoFile FileID = 0

// Location is an opaque (file, byte-offset) pair. Locations are only
// meaningful relative to the FileID they were produced against; offsets are
// monotone within one token/trivia stream over one buffer.
type Location struct {
	File   FileID
	Offset int
}

// IsValid reports whether the location refers to an opened file.
func (l Location) IsValid() bool { return l.File != NoFile }

func (l Location) String() string {
	if !l.IsValid() {
		return "<invalid>"
	}
	return fmt.Sprintf("file#%d:%d", l.File, l.Offset)
}

// Less orders two locations within the same file by offset. Locations from
// different files are ordered by FileID first; this is only used for
// deterministic diagnostic sorting, never for semantic comparisons.
func (l Location) Less(other Location) bool {
	if l.File != other.File {
		return l.File < other.File
	}
	return l.Offset < other.Offset
}

// LineCol is a 1-based (line, column) pair derived from a LineTable.
type LineCol struct {
	Line   int
	Column int
}

// LineTable maps byte offsets within one buffer to 1-based line/column
// pairs. Implementations are expected to precompute line-start offsets once
// per buffer.
type LineTable interface {
	// Position returns the 1-based line/column for a byte offset.
	Position(offset int) LineCol
	// LineStart returns the byte offset of the first byte of line (1-based).
	LineStart(line int) (offset int, ok bool)
}

// SourceManager maps file IDs to their text and line table, and resolves
// include paths against a set of search directories. The core's lexer and
// preprocessor depend only on this interface; a driver may implement it
// against disk files, an in-memory map (see MemManager), or any other
// backing store.
type SourceManager interface {
	// Open returns the full text and line table for id.
	Open(id FileID) (text []byte, lines LineTable, err error)
	// Resolve finds path (first trying it verbatim, then under each of
	// searchDirs in order) and returns a FileID for it, opening it on
	// first resolution.
	Resolve(path string, searchDirs []string) (FileID, error)
	// Name returns a human-readable name for id (for diagnostics).
	Name(id FileID) string
}
