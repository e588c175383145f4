package format

import (
	"strings"

	"isl/internal/ast"
)

func (p *printer) printDomain(dom *ast.Domain) {
	p.w.open("domain " + dom.Name)

	if dom.Version != "" {
		p.w.line("version: " + quote(dom.Version))
	}
	if dom.Owner != "" {
		p.w.line("owner: " + quote(dom.Owner))
	}
	for _, u := range dom.Uses {
		s := "use " + strings.Join(u.Path, ".")
		if u.Alias != "" {
			s += " as " + u.Alias
		}
		p.w.line(s)
	}
	for _, im := range dom.Imports {
		s := "import " + quote(im.Path)
		if im.Alias != "" {
			s += " as " + im.Alias
		}
		p.w.line(s)
	}

	for _, td := range dom.Types {
		p.w.line("type " + td.Name + " = " + p.typeStr(td.Type))
	}
	for _, ed := range dom.Enums {
		p.w.line("enum " + ed.Name + " { " + strings.Join(ed.Variants, ", ") + " }")
	}
	for _, e := range dom.Entities {
		p.printEntity(e)
	}
	for _, b := range dom.Behaviors {
		p.printBehavior(b)
	}
	if len(dom.Invariants) > 0 {
		p.printPredicateBlock("invariants", dom.Invariants)
	}
	for _, pl := range dom.Policies {
		p.printPolicy(pl)
	}
	for _, v := range dom.Views {
		p.printView(v)
	}
	for _, s := range dom.Scenarios {
		p.printScenario(s)
	}
	for _, c := range dom.ChaosSpecs {
		p.printChaos(c)
	}
	for _, a := range dom.APIs {
		p.printAPI(a)
	}
	for _, s := range dom.Storages {
		p.printStorage(s)
	}
	for _, wf := range dom.Workflows {
		p.printWorkflow(wf)
	}
	for _, ev := range dom.Events {
		p.printEvent(ev)
	}
	for _, h := range dom.Handlers {
		p.printHandler(h)
	}
	for _, s := range dom.Screens {
		p.printScreen(s)
	}
	for _, c := range dom.Configs {
		p.printConfig(c)
	}

	p.w.close()
}

// printPredicateBlock renders a named block of invariant entries.
func (p *printer) printPredicateBlock(head string, preds []*ast.Invariant) {
	p.w.open(head)
	for _, inv := range preds {
		if inv.Name != "" {
			p.w.line(inv.Name + ": " + p.exprStr(inv.Pred))
		} else {
			p.w.line(p.exprStr(inv.Pred))
		}
	}
	p.w.close()
}

func (p *printer) printPropertyBlock(head string, props []*ast.Property) {
	p.w.open(head)
	for _, pr := range props {
		p.w.line(pr.Name + ": " + p.exprStr(pr.Value))
	}
	p.w.close()
}

// quote renders a string literal with escapes the lexer accepts.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 {
				const hex = "0123456789abcdef"
				b.WriteString(`\x`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xF])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
