package parser

import (
	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/token"
)

// parseEntity parses `entity Name { field* invariants? lifecycle? }`.
// Fields, invariant blocks, and the lifecycle may appear in any order;
// repeated invariants blocks accumulate.
func (p *Parser) parseEntity() *ast.Entity {
	kw := p.advance() // 'entity'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	e := &ast.Entity{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after entity name"); !ok {
		p.resyncUntil()
		return e
	}

	for !p.atAny(token.RBrace, token.EOF) {
		switch p.peek().Kind {
		case token.KwInvariants:
			e.Invariants = append(e.Invariants, p.parseInvariantsBlock()...)
		case token.KwLifecycle:
			lc := p.parseLifecycle()
			if e.Lifecycle != nil {
				p.report(diag.SynInvalidLifecycle, diag.SevError, lc.Sp,
					"entity already has a lifecycle block")
			} else {
				e.Lifecycle = lc
			}
		default:
			f, ok := p.parseField()
			if !ok {
				p.resyncUntil(token.RBrace, token.KwInvariants, token.KwLifecycle)
				continue
			}
			e.Fields = append(e.Fields, f)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close entity body"); ok {
		e.Sp = e.Sp.Cover(end.Span)
	}
	return e
}

// parseField is `name: Type @annotation* (= default)?`. Field names may
// reuse keyword spellings like `count` or `on`.
func (p *Parser) parseField() (*ast.Field, bool) {
	name, ok := p.memberName()
	if !ok {
		return nil, false
	}
	f := &ast.Field{
		Base:     ast.Base{Sp: name.Span},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return f, false
	}
	f.Type = ty
	f.Sp = f.Sp.Cover(ty.Span())

	for p.at(token.At) {
		ann, ok := p.parseAnnotation()
		if !ok {
			return f, false
		}
		f.Annotations = append(f.Annotations, ann)
		f.Sp = f.Sp.Cover(ann.Sp)
	}

	if p.eat(token.Assign) {
		def, ok := p.parseExpr()
		if !ok {
			return f, false
		}
		f.Default = def
		f.Sp = f.Sp.Cover(def.Span())
	}
	return f, true
}

// parseAnnotation is `@name` or `@name(arg, ...)`.
func (p *Parser) parseAnnotation() (*ast.Annotation, bool) {
	at := p.advance() // '@'
	name, ok := p.memberName()
	if !ok {
		p.report(diag.SynInvalidAnnotation, diag.SevError, at.Span,
			"annotation name expected after '@'")
		return nil, false
	}
	ann := &ast.Annotation{Base: ast.Base{Sp: at.Span.Cover(name.Span)}, Name: name.Text}

	if !p.at(token.LParen) {
		return ann, true
	}
	p.advance()
	for !p.atAny(token.RParen, token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return ann, false
		}
		ann.Args = append(ann.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close annotation arguments")
	if !ok {
		return ann, false
	}
	ann.Sp = ann.Sp.Cover(end.Span)
	return ann, true
}

// parseInvariantsBlock parses `invariants { entry* }` and returns the
// flattened entry list. Each entry is either `name: predicate` or a bare
// predicate expression.
func (p *Parser) parseInvariantsBlock() []*ast.Invariant {
	p.advance() // 'invariants'
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'invariants'"); !ok {
		p.resyncUntil()
		return nil
	}
	out := p.parsePredicateList()
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close invariants block")
	return out
}

// parsePredicateList consumes named or anonymous predicates up to the
// closing brace. Shared by invariants, preconditions, and postcondition
// outcome bodies.
func (p *Parser) parsePredicateList() []*ast.Invariant {
	var out []*ast.Invariant
	for !p.atAny(token.RBrace, token.EOF) {
		inv := &ast.Invariant{Base: ast.Base{Sp: p.peek().Span}}
		// `name:` prefixes a named predicate; a lone identifier followed
		// by anything else starts an anonymous expression.
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			name := p.advance()
			p.advance() // ':'
			inv.Name = name.Text
		}
		pred, ok := p.parseExpr()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		inv.Pred = pred
		inv.Sp = inv.Sp.Cover(pred.Span())
		out = append(out, inv)
	}
	return out
}

// parseLifecycle parses `lifecycle { from -> to (on trigger)? ... }`.
func (p *Parser) parseLifecycle() *ast.Lifecycle {
	kw := p.advance() // 'lifecycle'
	lc := &ast.Lifecycle{Base: ast.Base{Sp: kw.Span}}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'lifecycle'"); !ok {
		p.resyncUntil()
		return lc
	}
	for !p.atAny(token.RBrace, token.EOF) {
		from, ok := p.expectIdent()
		if !ok {
			p.report(diag.SynInvalidLifecycle, diag.SevError, p.peek().Span,
				"lifecycle transitions are written `from -> to on trigger`")
			p.resyncUntil(token.RBrace)
			break
		}
		tr := &ast.Transition{Base: ast.Base{Sp: from.Span}, From: from.Text}
		if _, ok := p.expect(token.Arrow, diag.SynInvalidLifecycle, "expected '->' in lifecycle transition"); !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		to, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		tr.To = to.Text
		tr.Sp = tr.Sp.Cover(to.Span)
		if p.eat(token.KwOn) {
			trig, ok := p.expectIdent()
			if !ok {
				p.resyncUntil(token.RBrace)
				break
			}
			tr.Trigger = trig.Text
			tr.Sp = tr.Sp.Cover(trig.Span)
		}
		lc.Transitions = append(lc.Transitions, tr)
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close lifecycle block"); ok {
		lc.Sp = lc.Sp.Cover(end.Span)
	}
	return lc
}
