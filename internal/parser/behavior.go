package parser

import (
	"fmt"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/token"
)

// parseBehavior parses a behavior contract with its sections. Sections
// may appear in any order and unrecognized section heads are diagnosed
// with a resync to the next section.
func (p *Parser) parseBehavior() *ast.Behavior {
	kw := p.advance() // 'behavior'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	b := &ast.Behavior{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after behavior name"); !ok {
		p.resyncUntil()
		return b
	}

	for !p.atAny(token.RBrace, token.EOF) {
		switch p.peek().Kind {
		case token.KwInput:
			b.Input = append(b.Input, p.parseFieldBlock("input")...)
		case token.KwOutput:
			out := p.parseOutput()
			if b.Output != nil {
				p.report(diag.SynInvalidOutcome, diag.SevError, out.Sp,
					"behavior already has an output block")
			} else {
				b.Output = out
			}
		case token.KwPreconditions:
			b.Preconditions = append(b.Preconditions, p.parseSectionPredicates("preconditions")...)
		case token.KwPostconditions:
			b.Postconditions = append(b.Postconditions, p.parsePostconditions()...)
		case token.KwInvariants:
			b.Invariants = append(b.Invariants, p.parseInvariantsBlock()...)
		case token.KwTemporal:
			b.Temporal = append(b.Temporal, p.parseTemporalBlock()...)
		case token.KwSecurity:
			b.Security = append(b.Security, p.parsePropertySection("security")...)
		case token.KwCompliance:
			b.Compliance = append(b.Compliance, p.parsePropertySection("compliance")...)
		case token.KwObservability:
			b.Observability = append(b.Observability, p.parsePropertySection("observability")...)
		default:
			t := p.peek()
			p.report(diag.SynUnexpectedToken, diag.SevError, t.Span,
				fmt.Sprintf("unexpected %s in behavior body", p.describe(t)))
			p.advance()
			p.skipBalanced()
			p.resyncUntil(token.RBrace,
				token.KwInput, token.KwOutput, token.KwPreconditions,
				token.KwPostconditions, token.KwInvariants, token.KwTemporal,
				token.KwSecurity, token.KwCompliance, token.KwObservability)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close behavior body"); ok {
		b.Sp = b.Sp.Cover(end.Span)
	}
	return b
}

// parseFieldBlock parses `head { field* }` and returns the fields.
// Shared by behavior input, views, and event payloads.
func (p *Parser) parseFieldBlock(head string) []*ast.Field {
	p.advance() // head keyword
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after '"+head+"'"); !ok {
		p.resyncUntil()
		return nil
	}
	var out []*ast.Field
	for !p.atAny(token.RBrace, token.EOF) {
		f, ok := p.parseField()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		out = append(out, f)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+head+" block")
	return out
}

// parseSectionPredicates is parseInvariantsBlock for other heads.
func (p *Parser) parseSectionPredicates(head string) []*ast.Invariant {
	p.advance() // head keyword
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after '"+head+"'"); !ok {
		p.resyncUntil()
		return nil
	}
	out := p.parsePredicateList()
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+head+" block")
	return out
}

// parseOutput parses `output { success: Type errors { Name, ... } }`.
// Both parts are optional; annotations may follow each error name.
func (p *Parser) parseOutput() *ast.Output {
	kw := p.advance() // 'output'
	out := &ast.Output{Base: ast.Base{Sp: kw.Span}}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'output'"); !ok {
		p.resyncUntil()
		return out
	}
	for !p.atAny(token.RBrace, token.EOF) {
		switch p.peek().Kind {
		case token.KwSuccess:
			p.advance()
			if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'success'"); !ok {
				p.resyncUntil(token.RBrace, token.KwErrors)
				continue
			}
			ty, ok := p.parseType()
			if !ok {
				p.resyncUntil(token.RBrace, token.KwErrors)
				continue
			}
			out.Success = ty
		case token.KwErrors:
			out.Errors = append(out.Errors, p.parseErrorVariants()...)
		default:
			t := p.peek()
			p.report(diag.SynInvalidOutcome, diag.SevError, t.Span,
				fmt.Sprintf("unexpected %s in output block, expected 'success' or 'errors'", p.describe(t)))
			p.advance()
			p.resyncUntil(token.RBrace, token.KwErrors)
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close output block"); ok {
		out.Sp = out.Sp.Cover(end.Span)
	}
	return out
}

// parseErrorVariants parses `errors { Name @ann*, ... }`.
func (p *Parser) parseErrorVariants() []*ast.ErrorVariant {
	p.advance() // 'errors'
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'errors'"); !ok {
		p.resyncUntil()
		return nil
	}
	var out []*ast.ErrorVariant
	for !p.atAny(token.RBrace, token.EOF) {
		name, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		ev := &ast.ErrorVariant{
			Base:     ast.Base{Sp: name.Span},
			Name:     name.Text,
			NameSpan: name.Span,
		}
		for p.at(token.At) {
			ann, ok := p.parseAnnotation()
			if !ok {
				break
			}
			ev.Annotations = append(ev.Annotations, ann)
			ev.Sp = ev.Sp.Cover(ann.Sp)
		}
		out = append(out, ev)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close errors block")
	return out
}

// parsePostconditions parses outcome-keyed predicate blocks:
// `postconditions { success { ... } ErrorName { ... } any_error { ... } }`.
func (p *Parser) parsePostconditions() []*ast.Postcondition {
	p.advance() // 'postconditions'
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'postconditions'"); !ok {
		p.resyncUntil()
		return nil
	}
	var out []*ast.Postcondition
	for !p.atAny(token.RBrace, token.EOF) {
		pc := &ast.Postcondition{Base: ast.Base{Sp: p.peek().Span}}
		switch p.peek().Kind {
		case token.KwSuccess:
			p.advance()
			pc.Outcome = ast.OutcomeSuccess
		case token.KwAnyError:
			p.advance()
			pc.Outcome = ast.OutcomeAnyError
		case token.Ident:
			name := p.advance()
			pc.Outcome = ast.OutcomeError
			pc.ErrorName = name.Text
		default:
			t := p.peek()
			p.report(diag.SynInvalidOutcome, diag.SevError, t.Span,
				fmt.Sprintf("postcondition outcome must be 'success', 'any_error', or an error name, got %s", p.describe(t)))
			p.advance()
			p.resyncUntil(token.RBrace)
			continue
		}
		if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after postcondition outcome"); !ok {
			p.resyncUntil(token.RBrace)
			continue
		}
		pc.Predicates = p.parsePredicateList()
		if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close postcondition body"); ok {
			pc.Sp = pc.Sp.Cover(end.Span)
		}
		out = append(out, pc)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close postconditions block")
	return out
}

// parseTemporalBlock parses `temporal { entry* }`.
func (p *Parser) parseTemporalBlock() []*ast.Temporal {
	p.advance() // 'temporal'
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'temporal'"); !ok {
		p.resyncUntil()
		return nil
	}
	var out []*ast.Temporal
	for !p.atAny(token.RBrace, token.EOF) {
		t, ok := p.parseTemporalEntry()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		out = append(out, t)
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close temporal block")
	return out
}

// parseTemporalEntry is `eventually|always|never|immediately expr
// (within expr)? (at percentile)?`. Also used by chaos expectations.
func (p *Parser) parseTemporalEntry() (*ast.Temporal, bool) {
	head := p.peek()
	t := &ast.Temporal{Base: ast.Base{Sp: head.Span}}
	switch head.Kind {
	case token.KwEventually:
		t.TKind = ast.TemporalEventually
	case token.KwAlways:
		t.TKind = ast.TemporalAlways
	case token.KwNever:
		t.TKind = ast.TemporalNever
	case token.KwImmediately:
		t.TKind = ast.TemporalImmediately
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, head.Span,
			fmt.Sprintf("temporal constraint must start with 'eventually', 'always', 'never', or 'immediately', got %s", p.describe(head)))
		return nil, false
	}
	p.advance()

	pred, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	t.Pred = pred
	t.Sp = t.Sp.Cover(pred.Span())

	if p.eat(token.KwWithin) {
		dur, ok := p.parseExpr()
		if !ok {
			return t, false
		}
		t.Within = dur
		t.Sp = t.Sp.Cover(dur.Span())
	}
	if p.atIdentText("at") {
		p.advance()
		pct, ok := p.expectIdent()
		if !ok {
			return t, false
		}
		t.Percentile = pct.Text
		t.Sp = t.Sp.Cover(pct.Span)
	}
	return t, true
}

// parsePropertySection parses `head { name: expr ... }` for security,
// compliance, and observability sections.
func (p *Parser) parsePropertySection(head string) []*ast.Property {
	p.advance() // head keyword
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after '"+head+"'"); !ok {
		p.resyncUntil()
		return nil
	}
	out := p.parsePropertyList()
	p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close "+head+" block")
	return out
}

// parsePropertyList consumes `name: expr` entries, optionally comma
// separated, up to the closing brace. Property names may reuse keyword
// spellings.
func (p *Parser) parsePropertyList() []*ast.Property {
	var out []*ast.Property
	for !p.atAny(token.RBrace, token.EOF) {
		name, ok := p.memberName()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		prop := &ast.Property{Base: ast.Base{Sp: name.Span}, Name: name.Text}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name"); !ok {
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
		out = append(out, prop)
		p.eat(token.Comma)
	}
	return out
}
