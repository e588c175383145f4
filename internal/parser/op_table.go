package parser

import (
	"isl/internal/ast"
	"isl/internal/token"
)

// Binary precedence tiers, loosest to tightest. All left-associative.
const (
	precOr             = 1
	precAnd            = 2
	precEquality       = 3 // ==, !=, implies, iff
	precComparison     = 4 // <, <=, >, >=, in
	precAdditive       = 5
	precMultiplicative = 6
)

type binOp struct {
	op   ast.BinaryOp
	prec int
}

var binOps = map[token.Kind]binOp{
	token.KwOr:      {ast.OpOr, precOr},
	token.KwAnd:     {ast.OpAnd, precAnd},
	token.KwImplies: {ast.OpImplies, precEquality},
	token.KwIff:     {ast.OpIff, precEquality},
	token.EqEq:      {ast.OpEq, precEquality},
	token.BangEq:    {ast.OpNe, precEquality},
	token.Lt:        {ast.OpLt, precComparison},
	token.LtEq:      {ast.OpLe, precComparison},
	token.Gt:        {ast.OpGt, precComparison},
	token.GtEq:      {ast.OpGe, precComparison},
	token.KwIn:      {ast.OpIn, precComparison},
	token.Plus:      {ast.OpAdd, precAdditive},
	token.Minus:     {ast.OpSub, precAdditive},
	token.Star:      {ast.OpMul, precMultiplicative},
	token.Slash:     {ast.OpDiv, precMultiplicative},
	token.Percent:   {ast.OpMod, precMultiplicative},
}

var quantKinds = map[token.Kind]ast.QuantKind{
	token.KwAll:    ast.QuantAll,
	token.KwAny:    ast.QuantAny,
	token.KwNone:   ast.QuantNone,
	token.KwCount:  ast.QuantCount,
	token.KwSum:    ast.QuantSum,
	token.KwFilter: ast.QuantFilter,
}
