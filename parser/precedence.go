package parser

import "github.com/aledsdavies/svfront/token"

// Precedence levels, lowest to highest, per spec.md §4.5: "conditional,
// logical-or/and, bitwise or/xor/and, equality, relational, shift,
// additive, multiplicative, power, unary, primary". Unary binds tighter
// than power here, so -2**3 parses as (-2)**3 — see parsePower/parseUnary
// in expr.go for how the recursive calls encode that ordering. The prec*
// constants name the ladder's levels and are not read by the parser; the
// only operator set listed here is unaryOps, and each binary level's
// operators are matched inside its own function in expr.go.
const (
	precNone = iota
	precConditional
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precPrimary
)

var unaryOps = map[token.Kind]bool{
	token.Plus:       true,
	token.Minus:      true,
	token.Bang:       true,
	token.Tilde:      true,
	token.Amp:        true,
	token.Pipe:       true,
	token.Caret:      true,
	token.CaretTilde: true,
}
