package preprocessor

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Options configures one preprocessor run. Constructed either directly or
// via functional Option values, grounded on the teacher's LexerOpt/WithDebug
// functional-option pattern (runtime/lexer/v2).
type Options struct {
	SearchDirs []string
	Predefined map[string]string // name -> single-token-ish body text, e.g. {"WIDTH": "8"}

	// NetTypePropagatesAcrossIncludes resolves the specification's open
	// question about whether `default_nettype none` (and other
	// default_nettype settings) carry across `include boundaries. Default
	// true, matching the behavior of widely used tools. See DESIGN.md.
	NetTypePropagatesAcrossIncludes bool

	MaxIncludeDepth int
}

// Option mutates an Options value being built by NewOptions.
type Option func(*Options)

// WithSearchDir appends dir to the include search path.
func WithSearchDir(dir string) Option {
	return func(o *Options) { o.SearchDirs = append(o.SearchDirs, dir) }
}

// WithDefine predefines a macro name (as if by a command-line `+define+`)
// with the given body text.
func WithDefine(name, body string) Option {
	return func(o *Options) {
		if o.Predefined == nil {
			o.Predefined = make(map[string]string)
		}
		o.Predefined[name] = body
	}
}

// WithNetTypePropagation sets whether `default_nettype` settings survive
// across `include boundaries.
func WithNetTypePropagation(propagate bool) Option {
	return func(o *Options) { o.NetTypePropagatesAcrossIncludes = propagate }
}

// WithMaxIncludeDepth caps the include stack depth before a cycle/overflow
// is diagnosed defensively (the specification calls the stack itself
// "unbounded depth, detected cycles diagnosed"; this is a belt-and-braces
// limit for includes that cycle through distinct-but-unbounded filenames
// rather than a literal A-includes-A cycle).
func WithMaxIncludeDepth(n int) Option {
	return func(o *Options) { o.MaxIncludeDepth = n }
}

// NewOptions builds an Options with defaults applied, then opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		NetTypePropagatesAcrossIncludes: true,
		MaxIncludeDepth:                 256,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// optionsSchemaText validates a JSON compilation-options document (the on-disk
// form of Options a driver might load: include dirs, predefine table,
// net-type propagation policy). Grounded on core/types/validation.go's
// Validator, which compiles and caches a jsonschema.Schema the same way.
const optionsSchemaText = `{
  "type": "object",
  "properties": {
    "searchDirs": {"type": "array", "items": {"type": "string"}},
    "predefined": {"type": "object", "additionalProperties": {"type": "string"}},
    "netTypePropagatesAcrossIncludes": {"type": "boolean"},
    "maxIncludeDepth": {"type": "integer", "minimum": 1}
  },
  "additionalProperties": false
}`

// LoadOptionsJSON validates raw against the compilation-options schema and,
// on success, decodes it into an Options value (defaults pre-applied, then
// overridden by the document's fields).
func LoadOptionsJSON(raw []byte) (Options, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("options.json", mustJSONReader(optionsSchemaText)); err != nil {
		return Options{}, fmt.Errorf("preprocessor: compiling options schema: %w", err)
	}
	schema, err := compiler.Compile("options.json")
	if err != nil {
		return Options{}, fmt.Errorf("preprocessor: options schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Options{}, fmt.Errorf("preprocessor: options document is not valid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Options{}, fmt.Errorf("preprocessor: options document failed validation: %w", err)
	}

	type wire struct {
		SearchDirs                      []string          `json:"searchDirs"`
		Predefined                      map[string]string `json:"predefined"`
		NetTypePropagatesAcrossIncludes *bool             `json:"netTypePropagatesAcrossIncludes"`
		MaxIncludeDepth                 *int              `json:"maxIncludeDepth"`
	}
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return Options{}, fmt.Errorf("preprocessor: decoding options document: %w", err)
	}

	o := NewOptions()
	o.SearchDirs = w.SearchDirs
	o.Predefined = w.Predefined
	if w.NetTypePropagatesAcrossIncludes != nil {
		o.NetTypePropagatesAcrossIncludes = *w.NetTypePropagatesAcrossIncludes
	}
	if w.MaxIncludeDepth != nil {
		o.MaxIncludeDepth = *w.MaxIncludeDepth
	}
	return o, nil
}
