package token

import "github.com/aledsdavies/svfront/sourcemgr"

// TriviaKind tags a Trivia variant.
type TriviaKind int

const (
	TriviaWhitespace TriviaKind = iota
	TriviaLineComment
	TriviaBlockComment
	TriviaSkippedTokens // parser error recovery: tokens skipped to resync
	TriviaDisabledText  // preprocessor: text dropped by a `skipping` conditional frame
	TriviaDirective     // a recognized directive, with the parsed directive attached
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaSkippedTokens:
		return "SkippedTokens"
	case TriviaDisabledText:
		return "DisabledText"
	case TriviaDirective:
		return "Directive"
	default:
		return "Trivia(?)"
	}
}

// DirectiveSyntax is the minimal view of a directive a Trivia node needs to
// carry; syntax.Node is the concrete directive syntax type and satisfies
// this interface so that token (a lower layer) need not import syntax.
type DirectiveSyntax interface {
	DirectiveName() string
}

// Trivia is a tagged variant attached as leading trivia to exactly one
// token. It carries the raw text it covers so that invariant P1 (lossless
// round-trip) holds even for whitespace, comments, skipped tokens, and
// disabled conditional-compilation text.
type Trivia struct {
	Kind     TriviaKind
	Location sourcemgr.Location
	Raw      string

	// Directive is non-nil only when Kind == TriviaDirective.
	Directive DirectiveSyntax

	// SkippedTokens is non-nil only when Kind == TriviaSkippedTokens; it
	// holds the tokens that were skipped during parser resynchronization,
	// preserved so the trivia's Raw reconstructs exactly.
	SkippedTokens []Token
}

// NewWhitespace constructs a whitespace trivia.
func NewWhitespace(loc sourcemgr.Location, raw string) Trivia {
	return Trivia{Kind: TriviaWhitespace, Location: loc, Raw: raw}
}

// NewLineComment constructs a line-comment trivia.
func NewLineComment(loc sourcemgr.Location, raw string) Trivia {
	return Trivia{Kind: TriviaLineComment, Location: loc, Raw: raw}
}

// NewBlockComment constructs a block-comment trivia.
func NewBlockComment(loc sourcemgr.Location, raw string) Trivia {
	return Trivia{Kind: TriviaBlockComment, Location: loc, Raw: raw}
}

// NewDisabledText constructs disabled-text trivia for conditional-inclusion
// skipping.
func NewDisabledText(loc sourcemgr.Location, raw string) Trivia {
	return Trivia{Kind: TriviaDisabledText, Location: loc, Raw: raw}
}

// NewSkippedTokens constructs skipped-tokens trivia for parser error
// recovery. raw must be the exact concatenation of the skipped tokens'
// trivia+text so that round-trip remains lossless.
func NewSkippedTokens(loc sourcemgr.Location, raw string, skipped []Token) Trivia {
	return Trivia{Kind: TriviaSkippedTokens, Location: loc, Raw: raw, SkippedTokens: skipped}
}

// NewDirective constructs directive trivia wrapping d.
func NewDirective(loc sourcemgr.Location, raw string, d DirectiveSyntax) Trivia {
	return Trivia{Kind: TriviaDirective, Location: loc, Raw: raw, Directive: d}
}
