package format

import (
	"fmt"
	"strings"

	"isl/internal/ast"
)

func (p *printer) typeStr(t ast.Type) string {
	switch tt := t.(type) {
	case nil:
		return ""
	case *ast.NamedType:
		return tt.Name()
	case *ast.ListType:
		return "List<" + p.typeStr(tt.Elem) + ">"
	case *ast.MapType:
		return "Map<" + p.typeStr(tt.Key) + ", " + p.typeStr(tt.Value) + ">"
	case *ast.OptionalType:
		return p.typeStr(tt.Elem) + "?"
	case *ast.UnionType:
		parts := make([]string, len(tt.Members))
		for i, m := range tt.Members {
			parts[i] = p.typeStr(m)
		}
		return strings.Join(parts, " | ")
	case *ast.StructType:
		if len(tt.Fields) == 0 {
			return "{ }"
		}
		parts := make([]string, len(tt.Fields))
		for i, f := range tt.Fields {
			parts[i] = p.fieldStr(f)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.ConstrainedType:
		parts := make([]string, len(tt.Constraints))
		for i, c := range tt.Constraints {
			parts[i] = c.Name + ": " + p.exprStr(c.Value)
		}
		return p.typeStr(tt.Elem) + " { " + strings.Join(parts, ", ") + " }"
	case *ast.GenericType:
		parts := make([]string, len(tt.Args))
		for i, a := range tt.Args {
			parts[i] = p.typeStr(a)
		}
		return tt.Name + "<" + strings.Join(parts, ", ") + ">"
	default:
		panic(fmt.Sprintf("format: unhandled type %T", t))
	}
}
