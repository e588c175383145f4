package format

import (
	"isl/internal/ast"
)

func (p *printer) printPolicy(pl *ast.Policy) {
	p.w.open("policy " + pl.Name)
	if pl.When != nil {
		p.w.line("when " + p.exprStr(pl.When))
	}
	if pl.Then != nil {
		s := "then " + p.exprStr(pl.Then)
		if pl.Within != nil {
			s += " within " + p.exprStr(pl.Within)
		}
		p.w.line(s)
	}
	p.w.close()
}

func (p *printer) printView(v *ast.View) {
	p.w.open("view " + v.Name)
	for _, f := range v.Fields {
		p.w.line(p.fieldStr(f))
	}
	p.w.close()
}

func (p *printer) printScenario(s *ast.Scenario) {
	p.w.open("scenario " + s.Name)
	for _, e := range s.Given {
		p.w.line("given " + p.exprStr(e))
	}
	for _, e := range s.When {
		p.w.line("when " + p.exprStr(e))
	}
	for _, e := range s.Then {
		p.w.line("then " + p.exprStr(e))
	}
	p.w.close()
}

func (p *printer) printChaos(c *ast.Chaos) {
	p.w.open("chaos " + c.Name)
	for _, inj := range c.Injections {
		p.w.line("inject " + inj)
	}
	for _, t := range c.Expectations {
		p.w.line("expect " + p.temporalStr(t))
	}
	p.w.close()
}

func (p *printer) printAPI(a *ast.APIBlock) {
	p.w.open("api " + a.Name)
	for _, r := range a.Routes {
		p.w.line(r.Method + " " + quote(r.Path) + " -> " + r.Target)
	}
	p.w.close()
}

func (p *printer) printStorage(s *ast.StorageBlock) {
	p.w.open("storage " + s.Name)
	for _, m := range s.Mappings {
		p.w.line(m.Entity + " -> " + quote(m.Target))
	}
	for _, pr := range s.Properties {
		p.w.line(pr.Name + ": " + p.exprStr(pr.Value))
	}
	p.w.close()
}

func (p *printer) printWorkflow(wf *ast.Workflow) {
	p.w.open("workflow " + wf.Name)
	for _, st := range wf.Steps {
		p.w.line("step " + st.Name + " -> " + st.Target)
	}
	p.w.close()
}

func (p *printer) printEvent(ev *ast.EventDecl) {
	p.w.open("event " + ev.Name)
	for _, f := range ev.Fields {
		p.w.line(p.fieldStr(f))
	}
	p.w.close()
}

func (p *printer) printHandler(h *ast.Handler) {
	p.w.open("handler " + h.Name)
	if h.On != "" {
		p.w.line("on: " + h.On)
	}
	if h.Calls != "" {
		p.w.line("calls: " + h.Calls)
	}
	p.w.close()
}

func (p *printer) printScreen(s *ast.Screen) {
	p.w.open("screen " + s.Name)
	if s.Shows != "" {
		p.w.line("shows: " + s.Shows)
	}
	for _, act := range s.Actions {
		p.w.line("action " + act.Name + " -> " + act.Target)
	}
	p.w.close()
}

func (p *printer) printConfig(c *ast.ConfigBlock) {
	head := "config"
	if c.Name != "" {
		head += " " + c.Name
	}
	p.w.open(head)
	for _, pr := range c.Properties {
		p.w.line(pr.Name + ": " + p.exprStr(pr.Value))
	}
	p.w.close()
}
