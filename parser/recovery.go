package parser

import "github.com/aledsdavies/svfront/token"

// followStatement is the resynchronization target for a statement that
// failed to start a recognized production: spec.md §4.5 recovery step (c)
// names "semicolon, end, endmodule, matching close-brace" as the
// well-known follow-set members a parser skips forward to.
var followStatement = []token.Kind{
	token.Semicolon, token.KwEnd, token.KwEndmodule,
	token.KwEndfunction, token.KwEndtask, token.KwEndcase,
}
