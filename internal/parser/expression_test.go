package parser

import (
	"testing"
	"time"

	"isl/internal/ast"
)

// exprOf parses a single invariant predicate and returns its expression.
func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	dom, bag := parseSrc(t, `domain D { version: "1.0" invariants { `+src+` } }`)
	if bag.HasErrors() {
		t.Fatalf("parse %q: %+v", src, bag.Items())
	}
	if len(dom.Invariants) != 1 {
		t.Fatalf("parse %q: %d invariants", src, len(dom.Invariants))
	}
	return dom.Invariants[0].Pred
}

func binary(t *testing.T, e ast.Expr, op ast.BinaryOp) *ast.BinaryExpr {
	t.Helper()
	b, ok := e.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("got %#v, want BinaryExpr", e)
	}
	if b.Op != op {
		t.Fatalf("op = %v, want %v", b.Op, op)
	}
	return b
}

func TestPrecedenceAndOverOr(t *testing.T) {
	// a or b and c → a or (b and c)
	e := exprOf(t, "a or b and c")
	root := binary(t, e, ast.OpOr)
	binary(t, root.Right, ast.OpAnd)
}

func TestPrecedenceEqualityTier(t *testing.T) {
	// implies shares the equality tier: a == b implies c → (a == b) implies c
	e := exprOf(t, "a == b implies c")
	root := binary(t, e, ast.OpImplies)
	binary(t, root.Left, ast.OpEq)

	// iff too: a iff b != c → (a iff b) != c (left association in one tier)
	e = exprOf(t, "a iff b != c")
	root = binary(t, e, ast.OpNe)
	binary(t, root.Left, ast.OpIff)
}

func TestPrecedenceComparisonBindsTighter(t *testing.T) {
	// a < b == c < d → (a < b) == (c < d)
	e := exprOf(t, "a < b == c < d")
	root := binary(t, e, ast.OpEq)
	binary(t, root.Left, ast.OpLt)
	binary(t, root.Right, ast.OpLt)
}

func TestPrecedenceArithmetic(t *testing.T) {
	// a + b * c % d → a + ((b * c) % d)
	e := exprOf(t, "a + b * c % d")
	root := binary(t, e, ast.OpAdd)
	mod := binary(t, root.Right, ast.OpMod)
	binary(t, mod.Left, ast.OpMul)
}

func TestInOperator(t *testing.T) {
	e := exprOf(t, `status in ["active", "pending"]`)
	root := binary(t, e, ast.OpIn)
	lst, ok := root.Right.(*ast.ListLit)
	if !ok || len(lst.Elems) != 2 {
		t.Fatalf("right = %#v, want 2-element list", root.Right)
	}
}

func TestUnaryForms(t *testing.T) {
	e := exprOf(t, "not a and !b")
	root := binary(t, e, ast.OpAnd)
	for _, side := range []ast.Expr{root.Left, root.Right} {
		u, ok := side.(*ast.UnaryExpr)
		if !ok || u.Op != ast.OpNot {
			t.Fatalf("side = %#v, want not-unary", side)
		}
	}

	e = exprOf(t, "-x + y")
	root = binary(t, e, ast.OpAdd)
	if u, ok := root.Left.(*ast.UnaryExpr); !ok || u.Op != ast.OpNeg {
		t.Fatalf("left = %#v, want negation", root.Left)
	}
}

func TestQualifiedChainCollapses(t *testing.T) {
	e := exprOf(t, "account.owner.email != null")
	root := binary(t, e, ast.OpNe)
	q, ok := root.Left.(*ast.QualifiedExpr)
	if !ok {
		t.Fatalf("left = %#v, want QualifiedExpr", root.Left)
	}
	if len(q.Parts) != 3 || q.Parts[0] != "account" || q.Parts[2] != "email" {
		t.Errorf("parts = %v", q.Parts)
	}
	if _, ok := root.Right.(*ast.NullLit); !ok {
		t.Errorf("right = %#v, want NullLit", root.Right)
	}
}

func TestMixedChainUsesMemberExpr(t *testing.T) {
	e := exprOf(t, "items[0].price > 0")
	root := binary(t, e, ast.OpGt)
	m, ok := root.Left.(*ast.MemberExpr)
	if !ok || m.Name != "price" {
		t.Fatalf("left = %#v, want MemberExpr .price", root.Left)
	}
	if _, ok := m.Object.(*ast.IndexExpr); !ok {
		t.Errorf("object = %#v, want IndexExpr", m.Object)
	}
}

func TestCallWithNamedArgs(t *testing.T) {
	e := exprOf(t, "transfer(from: a, to: b, 100) == true")
	root := binary(t, e, ast.OpEq)
	call, ok := root.Left.(*ast.CallExpr)
	if !ok {
		t.Fatalf("left = %#v, want CallExpr", root.Left)
	}
	if len(call.Args) != 3 {
		t.Fatalf("args = %d", len(call.Args))
	}
	if call.Args[0].Name != "from" || call.Args[1].Name != "to" || call.Args[2].Name != "" {
		t.Errorf("arg names = %q %q %q", call.Args[0].Name, call.Args[1].Name, call.Args[2].Name)
	}
}

func TestQuantifiers(t *testing.T) {
	e := exprOf(t, "all(accounts, a => a.balance >= 0)")
	q, ok := e.(*ast.QuantifierExpr)
	if !ok {
		t.Fatalf("got %#v, want QuantifierExpr", e)
	}
	if q.QKind != ast.QuantAll || q.Binder != "a" {
		t.Errorf("quantifier = %+v", q)
	}
	if _, ok := q.Predicate.(*ast.BinaryExpr); !ok {
		t.Errorf("predicate = %#v", q.Predicate)
	}

	e = exprOf(t, "sum(accounts, a => a.balance) >= 0")
	root := binary(t, e, ast.OpGe)
	if q, ok := root.Left.(*ast.QuantifierExpr); !ok || q.QKind != ast.QuantSum {
		t.Fatalf("left = %#v, want sum quantifier", root.Left)
	}
}

func TestOldResultInput(t *testing.T) {
	e := exprOf(t, "result.total == old(account.balance) + input.amount")
	root := binary(t, e, ast.OpEq)
	m, ok := root.Left.(*ast.MemberExpr)
	if !ok || m.Name != "total" {
		t.Fatalf("left = %#v", root.Left)
	}
	if _, ok := m.Object.(*ast.ResultExpr); !ok {
		t.Errorf("object = %#v, want ResultExpr", m.Object)
	}
	add := binary(t, root.Right, ast.OpAdd)
	if o, ok := add.Left.(*ast.OldExpr); !ok {
		t.Errorf("old = %#v", add.Left)
	} else if _, ok := o.Operand.(*ast.QualifiedExpr); !ok {
		t.Errorf("old operand = %#v", o.Operand)
	}
	im, ok := add.Right.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("input access = %#v", add.Right)
	}
	if _, ok := im.Object.(*ast.InputExpr); !ok {
		t.Errorf("object = %#v, want InputExpr", im.Object)
	}
}

func TestTernary(t *testing.T) {
	e := exprOf(t, "a > 0 ? a : -a")
	c, ok := e.(*ast.ConditionalExpr)
	if !ok {
		t.Fatalf("got %#v, want ConditionalExpr", e)
	}
	binary(t, c.Cond, ast.OpGt)
	if _, ok := c.Else.(*ast.UnaryExpr); !ok {
		t.Errorf("else = %#v", c.Else)
	}

	// Right-associative: a ? b : c ? d : e → a ? b : (c ? d : e)
	e = exprOf(t, "a ? b : c ? d : e")
	outer := e.(*ast.ConditionalExpr)
	if _, ok := outer.Else.(*ast.ConditionalExpr); !ok {
		t.Errorf("else = %#v, want nested conditional", outer.Else)
	}
}

func TestLambdaStandalone(t *testing.T) {
	e := exprOf(t, "apply(items, x => x.price * 2)")
	call := e.(*ast.CallExpr)
	lam, ok := call.Args[1].Value.(*ast.LambdaExpr)
	if !ok || lam.Param != "x" {
		t.Fatalf("arg = %#v, want lambda", call.Args[1].Value)
	}
	binary(t, lam.Body, ast.OpMul)
}

func TestDurationLiterals(t *testing.T) {
	cases := []struct {
		src  string
		want time.Duration
	}{
		{"x == 200ms", 200 * time.Millisecond},
		{"x == 5.minutes", 5 * time.Minute},
		{"x == 1.5s", 1500 * time.Millisecond},
		{"x == 2.days", 48 * time.Hour},
	}
	for _, tc := range cases {
		e := exprOf(t, tc.src)
		root := binary(t, e, ast.OpEq)
		d, ok := root.Right.(*ast.DurationLit)
		if !ok {
			t.Fatalf("%q: right = %#v, want DurationLit", tc.src, root.Right)
		}
		if d.Value != tc.want {
			t.Errorf("%q: value = %v, want %v", tc.src, d.Value, tc.want)
		}
	}
}

func TestRegexVsDivision(t *testing.T) {
	e := exprOf(t, "matches(email, /.+@.+/)")
	call := e.(*ast.CallExpr)
	re, ok := call.Args[1].Value.(*ast.RegexLit)
	if !ok {
		t.Fatalf("arg = %#v, want RegexLit", call.Args[1].Value)
	}
	if re.Pattern != ".+@.+" {
		t.Errorf("pattern = %q", re.Pattern)
	}

	e = exprOf(t, "total / count2 > 1")
	root := binary(t, e, ast.OpGt)
	binary(t, root.Left, ast.OpDiv)
}

func TestMapLiteral(t *testing.T) {
	e := exprOf(t, `tags == {"env": "prod", "tier": 1}`)
	root := binary(t, e, ast.OpEq)
	m, ok := root.Right.(*ast.MapLit)
	if !ok || len(m.Entries) != 2 {
		t.Fatalf("right = %#v, want 2-entry map", root.Right)
	}
	k, ok := m.Entries[0].Key.(*ast.StringLit)
	if !ok || k.Value != "env" {
		t.Errorf("key = %#v", m.Entries[0].Key)
	}
}

func TestStringEscapes(t *testing.T) {
	e := exprOf(t, `x == "a\nb\"c"`)
	root := binary(t, e, ast.OpEq)
	s := root.Right.(*ast.StringLit)
	if s.Value != "a\nb\"c" {
		t.Errorf("value = %q", s.Value)
	}
}
