package lexer

import "github.com/aledsdavies/svfront/token"

// punctuator pairs a literal spelling with its Kind. matchPunctuator keeps
// the longest entry that matches, so the order of this table does not
// affect which punctuator is chosen.
type punctuator struct {
	text string
	kind token.Kind
}

var punctuators = []punctuator{
	{"<->", token.ArrowImpliesW},
	{"->", token.ArrowImplies},
	{"===", token.CaseEq},
	{"!==", token.CaseNotEq},
	{"==", token.EqEq},
	{"!=", token.NotEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.ShiftLeft},
	{">>", token.ShiftRight},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"**", token.StarStar},
	{"^~", token.CaretTilde},
	{"~^", token.CaretTilde},
	{"+=", token.PlusEquals},
	{";", token.Semicolon},
	{":", token.Colon},
	{",", token.Comma},
	{".", token.Dot},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"#", token.Hash},
	{"@", token.At},
	{"?", token.Question},
	{"=", token.Equals},
	{"<", token.Lt},
	{">", token.Gt},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"!", token.Bang},
}

// matchPunctuator finds the longest punctuator matching the start of src.
func matchPunctuator(src []byte) (token.Kind, int, bool) {
	best := -1
	var bestKind token.Kind
	for _, p := range punctuators {
		if len(p.text) <= best {
			continue
		}
		if hasPrefixBytes(src, p.text) {
			best = len(p.text)
			bestKind = p.kind
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return bestKind, best, true
}

func hasPrefixBytes(src []byte, s string) bool {
	if len(src) < len(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if src[i] != s[i] {
			return false
		}
	}
	return true
}
