package parser

import (
	"fmt"
	"strings"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/token"
)

// parsePolicy parses `policy Name { when expr then expr (within expr)? }`.
func (p *Parser) parsePolicy() *ast.Policy {
	kw := p.advance() // 'policy'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	pl := &ast.Policy{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after policy name"); !ok {
		p.resyncUntil()
		return pl
	}

	if p.atIdentText("when") {
		p.advance()
		if cond, ok := p.parseExpr(); ok {
			pl.When = cond
		}
	} else {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
			"policy body must start with 'when'")
	}
	if p.atIdentText("then") {
		p.advance()
		if act, ok := p.parseExpr(); ok {
			pl.Then = act
		}
	} else {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
			"policy 'when' clause must be followed by 'then'")
	}
	if p.eat(token.KwWithin) {
		if dur, ok := p.parseExpr(); ok {
			pl.Within = dur
		}
	}
	if !p.at(token.RBrace) {
		p.resyncUntil(token.RBrace)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close policy body"); ok {
		pl.Sp = pl.Sp.Cover(end.Span)
	}
	return pl
}

// parseView parses `view Name { field* }`.
func (p *Parser) parseView() *ast.View {
	kw := p.advance() // 'view'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	v := &ast.View{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after view name"); !ok {
		p.resyncUntil()
		return v
	}
	for !p.atAny(token.RBrace, token.EOF) {
		f, ok := p.parseField()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		v.Fields = append(v.Fields, f)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close view body"); ok {
		v.Sp = v.Sp.Cover(end.Span)
	}
	return v
}

// parseScenario parses `scenario Name { (given|when|then expr)* }`.
// Each clause keyword may repeat; order is not enforced here.
func (p *Parser) parseScenario() *ast.Scenario {
	kw := p.advance() // 'scenario'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	s := &ast.Scenario{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after scenario name"); !ok {
		p.resyncUntil()
		return s
	}
	for !p.atAny(token.RBrace, token.EOF) {
		var dst *[]ast.Expr
		switch {
		case p.atIdentText("given"):
			dst = &s.Given
		case p.atIdentText("when"):
			dst = &s.When
		case p.atIdentText("then"):
			dst = &s.Then
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				fmt.Sprintf("scenario clause must start with 'given', 'when', or 'then', got %s", p.describe(p.peek())))
			p.resyncUntil(token.RBrace)
			continue
		}
		p.advance()
		e, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		*dst = append(*dst, e)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close scenario body"); ok {
		s.Sp = s.Sp.Cover(end.Span)
	}
	return s
}

// parseChaos parses `chaos Name { (inject name)* (expect temporal)* }`.
func (p *Parser) parseChaos() *ast.Chaos {
	kw := p.advance() // 'chaos'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	c := &ast.Chaos{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after chaos name"); !ok {
		p.resyncUntil()
		return c
	}
	for !p.atAny(token.RBrace, token.EOF) {
		switch {
		case p.atIdentText("inject"):
			p.advance()
			fault, ok := p.parseDottedName()
			if !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			c.Injections = append(c.Injections, fault)
		case p.atIdentText("expect"):
			p.advance()
			t, ok := p.parseTemporalEntry()
			if !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			c.Expectations = append(c.Expectations, t)
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				fmt.Sprintf("chaos clause must start with 'inject' or 'expect', got %s", p.describe(p.peek())))
			p.resyncUntil(token.RBrace)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close chaos body"); ok {
		c.Sp = c.Sp.Cover(end.Span)
	}
	return c
}

// parseDottedName consumes `a` or `a.b.c` and returns the joined form.
func (p *Parser) parseDottedName() (string, bool) {
	first, ok := p.expectIdent()
	if !ok {
		return "", false
	}
	parts := []string{first.Text}
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		parts = append(parts, p.advance().Text)
	}
	return strings.Join(parts, "."), true
}

var routeMethods = map[string]bool{
	"get": true, "post": true, "put": true, "delete": true, "patch": true,
}

// parseAPIBlock parses `api Name { method "/path" -> Target ... }`.
func (p *Parser) parseAPIBlock() *ast.APIBlock {
	kw := p.advance() // 'api'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	a := &ast.APIBlock{Base: ast.Base{Sp: kw.Span.Cover(name.Span)}, Name: name.Text}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after api name"); !ok {
		p.resyncUntil()
		return a
	}
	for !p.atAny(token.RBrace, token.EOF) {
		method := p.peek()
		if method.Kind != token.Ident || !routeMethods[method.Text] {
			p.report(diag.SynUnexpectedToken, diag.SevError, method.Span,
				fmt.Sprintf("route must start with an HTTP method (get, post, put, delete, patch), got %s", p.describe(method)))
			p.resyncUntil(token.RBrace)
			continue
		}
		p.advance()
		r := &ast.Route{Base: ast.Base{Sp: method.Span}, Method: method.Text}
		path, _, ok := p.expectString()
		if !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		r.Path = path
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after route path"); !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		target, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		r.Target = target.Text
		r.Sp = r.Sp.Cover(target.Span)
		a.Routes = append(a.Routes, r)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close api body"); ok {
		a.Sp = a.Sp.Cover(end.Span)
	}
	return a
}

// parseStorageBlock parses `storage Name { (Entity -> "table") | (name: expr) ... }`.
func (p *Parser) parseStorageBlock() *ast.StorageBlock {
	kw := p.advance() // 'storage'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	s := &ast.StorageBlock{Base: ast.Base{Sp: kw.Span.Cover(name.Span)}, Name: name.Text}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after storage name"); !ok {
		p.resyncUntil()
		return s
	}
	for !p.atAny(token.RBrace, token.EOF) {
		// `Entity -> "table"` maps, `name: expr` configures.
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Arrow {
			entity := p.advance()
			p.advance() // '->'
			m := &ast.Mapping{Base: ast.Base{Sp: entity.Span}, Entity: entity.Text}
			target, sp, ok := p.expectString()
			if !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			m.Target = target
			m.Sp = m.Sp.Cover(sp)
			s.Mappings = append(s.Mappings, m)
			p.eat(token.Comma)
			continue
		}
		name, ok := p.memberName()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		prop := &ast.Property{Base: ast.Base{Sp: name.Span}, Name: name.Text}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' or '->' after storage entry name"); !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		val, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		prop.Value = val
		prop.Sp = prop.Sp.Cover(val.Span())
		s.Properties = append(s.Properties, prop)
		p.eat(token.Comma)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close storage body"); ok {
		s.Sp = s.Sp.Cover(end.Span)
	}
	return s
}

// parseWorkflow parses `workflow Name { step name -> Target ... }`.
func (p *Parser) parseWorkflow() *ast.Workflow {
	kw := p.advance() // 'workflow'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	w := &ast.Workflow{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after workflow name"); !ok {
		p.resyncUntil()
		return w
	}
	for !p.atAny(token.RBrace, token.EOF) {
		if !p.atIdentText("step") {
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				fmt.Sprintf("workflow entry must start with 'step', got %s", p.describe(p.peek())))
			p.resyncUntil(token.RBrace)
			continue
		}
		head := p.advance()
		st := &ast.Step{Base: ast.Base{Sp: head.Span}}
		n, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		st.Name = n.Text
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after step name"); !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		target, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		st.Target = target.Text
		st.Sp = st.Sp.Cover(target.Span)
		w.Steps = append(w.Steps, st)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close workflow body"); ok {
		w.Sp = w.Sp.Cover(end.Span)
	}
	return w
}

// parseEventDecl parses `event Name { field* }`.
func (p *Parser) parseEventDecl() *ast.EventDecl {
	kw := p.advance() // 'event'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	e := &ast.EventDecl{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after event name"); !ok {
		p.resyncUntil()
		return e
	}
	for !p.atAny(token.RBrace, token.EOF) {
		f, ok := p.parseField()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		e.Fields = append(e.Fields, f)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close event body"); ok {
		e.Sp = e.Sp.Cover(end.Span)
	}
	return e
}

// parseHandler parses `handler Name { on: Event calls: Behavior }`.
func (p *Parser) parseHandler() *ast.Handler {
	kw := p.advance() // 'handler'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	h := &ast.Handler{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after handler name"); !ok {
		p.resyncUntil()
		return h
	}
	for !p.atAny(token.RBrace, token.EOF) {
		switch {
		case p.at(token.KwOn):
			p.advance()
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'on'"); !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			if ev, ok := p.expectIdent(); ok {
				h.On = ev.Text
			}
		case p.atIdentText("calls"):
			p.advance()
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'calls'"); !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			if tgt, ok := p.expectIdent(); ok {
				h.Calls = tgt.Text
			}
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				fmt.Sprintf("handler entry must be 'on:' or 'calls:', got %s", p.describe(p.peek())))
			p.resyncUntil(token.RBrace)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close handler body"); ok {
		h.Sp = h.Sp.Cover(end.Span)
	}
	return h
}

// parseScreen parses `screen Name { shows: View action name -> Behavior ... }`.
func (p *Parser) parseScreen() *ast.Screen {
	kw := p.advance() // 'screen'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	s := &ast.Screen{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after screen name"); !ok {
		p.resyncUntil()
		return s
	}
	for !p.atAny(token.RBrace, token.EOF) {
		switch {
		case p.atIdentText("shows"):
			p.advance()
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'shows'"); !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			if v, ok := p.expectIdent(); ok {
				s.Shows = v.Text
			}
		case p.atIdentText("action"):
			head := p.advance()
			act := &ast.ScreenAction{Base: ast.Base{Sp: head.Span}}
			n, ok := p.expectIdent()
			if !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			act.Name = n.Text
			if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken, "expected '->' after action name"); !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			target, ok := p.expectIdent()
			if !ok {
				p.resyncUntil(token.RBrace)
				continue
			}
			act.Target = target.Text
			act.Sp = act.Sp.Cover(target.Span)
			s.Actions = append(s.Actions, act)
		default:
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				fmt.Sprintf("screen entry must be 'shows:' or 'action', got %s", p.describe(p.peek())))
			p.resyncUntil(token.RBrace)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close screen body"); ok {
		s.Sp = s.Sp.Cover(end.Span)
	}
	return s
}

// parseConfigBlock parses `config (Name)? { name: expr ... }`.
func (p *Parser) parseConfigBlock() *ast.ConfigBlock {
	kw := p.advance() // 'config'
	c := &ast.ConfigBlock{Base: ast.Base{Sp: kw.Span}}
	if p.at(token.Ident) {
		name := p.advance()
		c.Name = name.Text
		c.Sp = c.Sp.Cover(name.Span)
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'config'"); !ok {
		p.resyncUntil()
		return c
	}
	c.Properties = p.parsePropertyList()
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close config body"); ok {
		c.Sp = c.Sp.Cover(end.Span)
	}
	return c
}
