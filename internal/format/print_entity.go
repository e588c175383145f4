package format

import (
	"strings"

	"isl/internal/ast"
)

func (p *printer) printEntity(e *ast.Entity) {
	p.w.open("entity " + e.Name)
	for _, f := range e.Fields {
		p.w.line(p.fieldStr(f))
	}
	if len(e.Invariants) > 0 {
		p.printPredicateBlock("invariants", e.Invariants)
	}
	if e.Lifecycle != nil {
		p.w.open("lifecycle")
		for _, tr := range e.Lifecycle.Transitions {
			s := tr.From + " -> " + tr.To
			if tr.Trigger != "" {
				s += " on " + tr.Trigger
			}
			p.w.line(s)
		}
		p.w.close()
	}
	p.w.close()
}

func (p *printer) fieldStr(f *ast.Field) string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(": ")
	b.WriteString(p.typeStr(f.Type))
	for _, ann := range f.Annotations {
		b.WriteByte(' ')
		b.WriteString(p.annotationStr(ann))
	}
	if f.Default != nil {
		b.WriteString(" = ")
		b.WriteString(p.exprStr(f.Default))
	}
	return b.String()
}

func (p *printer) annotationStr(ann *ast.Annotation) string {
	s := "@" + ann.Name
	if len(ann.Args) == 0 {
		return s
	}
	args := make([]string, len(ann.Args))
	for i, a := range ann.Args {
		args[i] = p.exprStr(a)
	}
	return s + "(" + strings.Join(args, ", ") + ")"
}
