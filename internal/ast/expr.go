package ast

import "time"

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// BinaryOp enumerates binary operators.
type BinaryOp uint8

const (
	OpOr BinaryOp = iota
	OpAnd
	OpImplies
	OpIff
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpIn
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinaryOp) String() string {
	switch op {
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpImplies:
		return "implies"
	case OpIff:
		return "iff"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpIn:
		return "in"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	}
	return "?"
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpNeg
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "not"
	}
	return "-"
}

// QuantKind enumerates quantifier heads.
type QuantKind uint8

const (
	QuantAll QuantKind = iota
	QuantAny
	QuantNone
	QuantCount
	QuantSum
	QuantFilter
)

func (q QuantKind) String() string {
	switch q {
	case QuantAll:
		return "all"
	case QuantAny:
		return "any"
	case QuantNone:
		return "none"
	case QuantCount:
		return "count"
	case QuantSum:
		return "sum"
	case QuantFilter:
		return "filter"
	}
	return "?"
}

// IdentExpr is a bare identifier.
type IdentExpr struct {
	Base
	Name string
}

func (*IdentExpr) Kind() NodeKind { return KindIdentExpr }
func (*IdentExpr) exprNode()      {}

// QualifiedExpr is a pure dotted name chain like `account.balance`.
// Mixed chains (calls, indexes in the middle) use MemberExpr instead.
type QualifiedExpr struct {
	Base
	Parts []string
}

func (*QualifiedExpr) Kind() NodeKind { return KindQualifiedExpr }
func (*QualifiedExpr) exprNode()      {}

// StringLit holds the decoded value of a string literal.
type StringLit struct {
	Base
	Value string
}

func (*StringLit) Kind() NodeKind { return KindStringLit }
func (*StringLit) exprNode()      {}

// NumberLit keeps the raw spelling; consumers parse it as needed.
type NumberLit struct {
	Base
	Raw string
}

func (*NumberLit) Kind() NodeKind { return KindNumberLit }
func (*NumberLit) exprNode()      {}

// BoolLit is true or false.
type BoolLit struct {
	Base
	Value bool
}

func (*BoolLit) Kind() NodeKind { return KindBoolLit }
func (*BoolLit) exprNode()      {}

// NullLit is the null literal.
type NullLit struct {
	Base
}

func (*NullLit) Kind() NodeKind { return KindNullLit }
func (*NullLit) exprNode()      {}

// DurationLit keeps both the raw spelling and the resolved duration.
type DurationLit struct {
	Base
	Raw   string
	Value time.Duration
}

func (*DurationLit) Kind() NodeKind { return KindDurationLit }
func (*DurationLit) exprNode()      {}

// RegexLit keeps the pattern without the slash delimiters.
type RegexLit struct {
	Base
	Pattern string
}

func (*RegexLit) Kind() NodeKind { return KindRegexLit }
func (*RegexLit) exprNode()      {}

// BinaryExpr applies Op to Left and Right.
type BinaryExpr struct {
	Base
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*BinaryExpr) Kind() NodeKind { return KindBinaryExpr }
func (*BinaryExpr) exprNode()      {}

// UnaryExpr applies Op to Operand.
type UnaryExpr struct {
	Base
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) Kind() NodeKind { return KindUnaryExpr }
func (*UnaryExpr) exprNode()      {}

// Arg is one call argument, optionally named.
type Arg struct {
	Name  string // empty for positional
	Value Expr
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Base
	Callee Expr
	Args   []Arg
}

func (*CallExpr) Kind() NodeKind { return KindCallExpr }
func (*CallExpr) exprNode()      {}

// MemberExpr is `object.name` where the object is not a pure name chain.
type MemberExpr struct {
	Base
	Object Expr
	Name   string
}

func (*MemberExpr) Kind() NodeKind { return KindMemberExpr }
func (*MemberExpr) exprNode()      {}

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Base
	Object Expr
	Index  Expr
}

func (*IndexExpr) Kind() NodeKind { return KindIndexExpr }
func (*IndexExpr) exprNode()      {}

// QuantifierExpr is `all(collection, binder => predicate)` and friends.
type QuantifierExpr struct {
	Base
	QKind      QuantKind
	Collection Expr
	Binder     string
	Predicate  Expr
}

func (*QuantifierExpr) Kind() NodeKind { return KindQuantifierExpr }
func (*QuantifierExpr) exprNode()      {}

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalExpr) Kind() NodeKind { return KindConditionalExpr }
func (*ConditionalExpr) exprNode()      {}

// OldExpr is `old(expr)`: the pre-state value of an expression.
type OldExpr struct {
	Base
	Operand Expr
}

func (*OldExpr) Kind() NodeKind { return KindOldExpr }
func (*OldExpr) exprNode()      {}

// ResultExpr is the `result` context accessor.
type ResultExpr struct {
	Base
}

func (*ResultExpr) Kind() NodeKind { return KindResultExpr }
func (*ResultExpr) exprNode()      {}

// InputExpr is the `input` context accessor.
type InputExpr struct {
	Base
}

func (*InputExpr) Kind() NodeKind { return KindInputExpr }
func (*InputExpr) exprNode()      {}

// LambdaExpr is `param => body`.
type LambdaExpr struct {
	Base
	Param string
	Body  Expr
}

func (*LambdaExpr) Kind() NodeKind { return KindLambdaExpr }
func (*LambdaExpr) exprNode()      {}

// ListLit is `[a, b, c]`.
type ListLit struct {
	Base
	Elems []Expr
}

func (*ListLit) Kind() NodeKind { return KindListLit }
func (*ListLit) exprNode()      {}

// MapEntry is one `key: value` pair in a map literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// MapLit is `{k: v, ...}`.
type MapLit struct {
	Base
	Entries []MapEntry
}

func (*MapLit) Kind() NodeKind { return KindMapLit }
func (*MapLit) exprNode()      {}
