package parser

// Options configures one Parser. Grounded on the teacher's functional
// -option pattern used throughout runtime/lexer and preprocessor.Options.
type Options struct {
	// MaxErrors stops emitting new diagnostics after this many syntactic
	// errors have been reported (0 means unlimited). Recovery still runs;
	// only the sink stops receiving new reports, so a pathological input
	// cannot flood a host's diagnostic UI.
	MaxErrors int
}

// Option mutates an Options value being built by NewOptions.
type Option func(*Options)

// WithMaxErrors caps the number of syntactic diagnostics a single parse
// will report.
func WithMaxErrors(n int) Option {
	return func(o *Options) { o.MaxErrors = n }
}

// NewOptions builds an Options with defaults applied, then opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
