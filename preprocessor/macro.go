package preprocessor

import "github.com/aledsdavies/svfront/token"

// Param is one formal parameter of a function-like macro: a name plus an
// optional default value (a token list, substituted verbatim when the
// invocation omits that argument).
type Param struct {
	Name    string
	Default []token.Token // nil means "no default; omitting this argument is an arity error"
}

// Definition is one macro-table entry.
type Definition struct {
	Name       string
	FuncLike   bool // defined with `name(...)`, as opposed to a bare `name
	Params     []Param
	Body       []token.Token // body tokens, with parameter references left as plain Identifier tokens matching a Param.Name
	DefinedLoc token.Token   // the `define directive's name token, for diagnostics
}

// MacroTable maps a macro name to its Definition. Lookup is case-sensitive,
// matching the string-pool's identifier contract.
type MacroTable struct {
	entries map[string]Definition
}

// NewMacroTable creates an empty table.
func NewMacroTable() *MacroTable {
	return &MacroTable{entries: make(map[string]Definition)}
}

// Define installs or replaces def. Replacing an existing macro with a
// different body is a redefinition the caller should diagnose with
// diag.CodeMacroRedefined before calling Define (Define itself doesn't
// diagnose: it has no location/sink context, and the preprocessor already
// has both at the call site).
func (t *MacroTable) Define(def Definition) {
	t.entries[def.Name] = def
}

// Undef removes a macro. Undefining a name that was never defined is not
// an error per the specification's directive list (undef is listed
// unconditionally); it is simply a no-op.
func (t *MacroTable) Undef(name string) {
	delete(t.entries, name)
}

// Lookup returns the Definition for name.
func (t *MacroTable) Lookup(name string) (Definition, bool) {
	def, ok := t.entries[name]
	return def, ok
}

// IsDefined reports macro-table membership, used by `ifdef/`ifndef.
func (t *MacroTable) IsDefined(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// Names returns every defined macro name, for did-you-mean suggestions on
// unresolved macro invocations.
func (t *MacroTable) Names() []string {
	out := make([]string, 0, len(t.entries))
	for name := range t.entries {
		out = append(out, name)
	}
	return out
}
