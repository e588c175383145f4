package format

import (
	"fmt"
	"strings"

	"isl/internal/ast"
)

// exprStr renders an expression. Composite operands are parenthesized,
// so the rendering encodes the tree shape regardless of precedence.
func (p *printer) exprStr(e ast.Expr) string {
	switch ee := e.(type) {
	case nil:
		return ""
	case *ast.IdentExpr:
		return ee.Name
	case *ast.QualifiedExpr:
		return strings.Join(ee.Parts, ".")
	case *ast.StringLit:
		return quote(ee.Value)
	case *ast.NumberLit:
		return ee.Raw
	case *ast.BoolLit:
		if ee.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "null"
	case *ast.DurationLit:
		return ee.Raw
	case *ast.RegexLit:
		return "/" + ee.Pattern + "/"
	case *ast.BinaryExpr:
		return p.operand(ee.Left) + " " + ee.Op.String() + " " + p.operand(ee.Right)
	case *ast.UnaryExpr:
		if ee.Op == ast.OpNot {
			return "not " + p.operand(ee.Operand)
		}
		return "-" + p.operand(ee.Operand)
	case *ast.CallExpr:
		args := make([]string, len(ee.Args))
		for i, a := range ee.Args {
			if a.Name != "" {
				args[i] = a.Name + ": " + p.exprStr(a.Value)
			} else {
				args[i] = p.exprStr(a.Value)
			}
		}
		return p.operand(ee.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.MemberExpr:
		return p.operand(ee.Object) + "." + ee.Name
	case *ast.IndexExpr:
		return p.operand(ee.Object) + "[" + p.exprStr(ee.Index) + "]"
	case *ast.QuantifierExpr:
		return ee.QKind.String() + "(" + p.exprStr(ee.Collection) + ", " +
			ee.Binder + " => " + p.exprStr(ee.Predicate) + ")"
	case *ast.ConditionalExpr:
		return p.operand(ee.Cond) + " ? " + p.operand(ee.Then) + " : " + p.operand(ee.Else)
	case *ast.OldExpr:
		return "old(" + p.exprStr(ee.Operand) + ")"
	case *ast.ResultExpr:
		return "result"
	case *ast.InputExpr:
		return "input"
	case *ast.LambdaExpr:
		return ee.Param + " => " + p.operand(ee.Body)
	case *ast.ListLit:
		parts := make([]string, len(ee.Elems))
		for i, el := range ee.Elems {
			parts[i] = p.exprStr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.MapLit:
		parts := make([]string, len(ee.Entries))
		for i, en := range ee.Entries {
			parts[i] = p.operand(en.Key) + ": " + p.exprStr(en.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		// Every expression kind must render; a miss here would silently
		// corrupt round-trips.
		panic(fmt.Sprintf("format: unhandled expression %T", e))
	}
}

// operand renders a subexpression, wrapping it in parentheses when its
// shape would otherwise rebind under reparse.
func (p *printer) operand(e ast.Expr) string {
	if isComposite(e) {
		return "(" + p.exprStr(e) + ")"
	}
	return p.exprStr(e)
}

func isComposite(e ast.Expr) bool {
	switch e.(type) {
	case *ast.BinaryExpr, *ast.UnaryExpr, *ast.ConditionalExpr, *ast.LambdaExpr:
		return true
	default:
		return false
	}
}
