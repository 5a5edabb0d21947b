// Package diag defines the diagnostic-sink contract consumed by every
// pipeline stage, a closed code enumeration, and one in-memory collecting
// Sink implementation (Bag) used by the core's own tests and by simple
// hosts that just want a slice of diagnostics back.
package diag

import (
	"fmt"

	"github.com/aledsdavies/svfront/sourcemgr"
)

// Code is drawn from a closed integer enumeration. Ranges follow the five
// error classes from the error-handling design: 1xxx lexical, 2xxx
// preprocessor, 3xxx syntactic, 4xxx semantic. Class 5 (internal invariant)
// has no Code; it panics instead of reporting.
type Code int

// Lexical (1xxx)
const (
	CodeBadDigit Code = 1000 + iota
	CodeUnterminatedString
	CodeInvalidUTF8
	CodeBadTimeUnit
	CodeUnknownCharacter
)

// Preprocessor (2xxx)
const (
	CodeUnknownDirective Code = 2000 + iota
	CodeUnbalancedConditional
	CodeMacroArityMismatch
	CodeIncludeCycle
	CodeIncludeNotFound
	CodeMacroRedefined
	CodeUnknownKeywordVersion
)

// Syntactic (3xxx)
const (
	CodeUnexpectedToken Code = 3000 + iota
	CodeMissingToken
)

// Semantic (4xxx)
const (
	CodeUndeclaredName Code = 4000 + iota
	CodeTypeMismatch
	CodeInvalidConstraintTarget
	CodeDegenerateUniqueness
)

var codeNames = map[Code]string{
	CodeBadDigit:              "bad-digit",
	CodeUnterminatedString:    "unterminated-string",
	CodeInvalidUTF8:           "invalid-utf8",
	CodeBadTimeUnit:           "bad-time-unit",
	CodeUnknownCharacter:      "unknown-character",
	CodeUnknownDirective:      "unknown-directive",
	CodeUnbalancedConditional: "unbalanced-conditional",
	CodeMacroArityMismatch:    "macro-arity-mismatch",
	CodeIncludeCycle:          "include-cycle",
	CodeIncludeNotFound:       "include-not-found",
	CodeMacroRedefined:        "macro-redefined",
	CodeUnknownKeywordVersion: "unknown-keyword-version",
	CodeUnexpectedToken:       "unexpected-token",
	CodeMissingToken:          "missing-token",
	CodeUndeclaredName:        "undeclared-name",
	CodeTypeMismatch:          "type-mismatch",
	CodeInvalidConstraintTarget: "invalid-constraint-target",
	CodeDegenerateUniqueness:  "degenerate-uniqueness",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Class classifies a Code into one of the five error-handling design
// classes (1=lexical .. 4=semantic). Internal-invariant failures (class 5)
// are never represented as a Code.
func (c Code) Class() int {
	switch {
	case c >= 1000 && c < 2000:
		return 1
	case c >= 2000 && c < 3000:
		return 2
	case c >= 3000 && c < 4000:
		return 3
	case c >= 4000 && c < 5000:
		return 4
	default:
		return 0
	}
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Location sourcemgr.Location
	Code     Code
	Args     []any
}

// Sink accepts diagnostics from every pipeline stage. Implementations must
// be safe to call repeatedly from a single compilation-unit goroutine; the
// core never calls Report concurrently for one unit.
type Sink interface {
	Report(loc sourcemgr.Location, code Code, args ...any)
}

// NopSink discards every diagnostic. Useful for callers (and speculative
// parser lookahead) that must not emit diagnostics as a side effect.
type NopSink struct{}

func (NopSink) Report(sourcemgr.Location, Code, ...any) {}
