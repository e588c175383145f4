package parser

import (
	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/token"
)

// parseType parses a type expression. Union `|` binds loosest; the `?`
// optional marker and constraint blocks bind as postfix on the element
// they follow, so `A | B?` is a union of A and optional B.
func (p *Parser) parseType() (ast.Type, bool) {
	defer p.enter()()

	first, ok := p.parsePostfixType()
	if !ok {
		return nil, false
	}
	if !p.at(token.Pipe) {
		return first, true
	}
	u := &ast.UnionType{Base: ast.Base{Sp: first.Span()}, Members: []ast.Type{first}}
	for p.eat(token.Pipe) {
		m, ok := p.parsePostfixType()
		if !ok {
			return u, false
		}
		u.Members = append(u.Members, m)
		u.Sp = u.Sp.Cover(m.Span())
	}
	return u, true
}

// parsePostfixType parses a core type followed by any number of `?`
// markers and `{ constraint* }` blocks.
func (p *Parser) parsePostfixType() (ast.Type, bool) {
	core, ok := p.parseCoreType()
	if !ok {
		return nil, false
	}
	for {
		switch {
		case p.at(token.Question):
			q := p.advance()
			core = &ast.OptionalType{Base: ast.Base{Sp: core.Span().Cover(q.Span)}, Elem: core}
		case p.at(token.LBrace):
			ct, ok := p.parseConstraintBlock(core)
			core = ct
			if !ok {
				return core, false
			}
		default:
			return core, true
		}
	}
}

// parseCoreType parses a named or generic reference, or an inline struct.
func (p *Parser) parseCoreType() (ast.Type, bool) {
	defer p.enter()()

	if p.at(token.LBrace) {
		return p.parseStructType()
	}
	if !p.at(token.Ident) {
		p.errExpect(diag.SynExpectType, "expected type, got "+p.describe(p.peek()))
		return nil, false
	}

	first := p.advance()
	parts := []string{first.Text}
	sp := first.Span
	for p.at(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		parts = append(parts, seg.Text)
		sp = sp.Cover(seg.Span)
	}

	if !p.at(token.Lt) {
		return &ast.NamedType{Base: ast.Base{Sp: sp}, Parts: parts}, true
	}

	// Generic application. List and Map get their dedicated nodes; any
	// other head keeps the generic form.
	p.advance() // '<'
	var args []ast.Type
	for {
		arg, ok := p.parseType()
		if !ok {
			return &ast.GenericType{Base: ast.Base{Sp: sp}, Name: first.Text, Args: args}, false
		}
		args = append(args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.Gt, diag.SynExpectType, "expected '>' to close type arguments")
	if ok {
		sp = sp.Cover(end.Span)
	}

	switch {
	case len(parts) == 1 && first.Text == "List" && len(args) == 1:
		return &ast.ListType{Base: ast.Base{Sp: sp}, Elem: args[0]}, ok
	case len(parts) == 1 && first.Text == "Map" && len(args) == 2:
		return &ast.MapType{Base: ast.Base{Sp: sp}, Key: args[0], Value: args[1]}, ok
	default:
		return &ast.GenericType{Base: ast.Base{Sp: sp}, Name: first.Text, Args: args}, ok
	}
}

// parseStructType parses an inline `{ field* }` shape.
func (p *Parser) parseStructType() (ast.Type, bool) {
	open := p.advance() // '{'
	st := &ast.StructType{Base: ast.Base{Sp: open.Span}}
	for !p.atAny(token.RBrace, token.EOF) {
		f, ok := p.parseField()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		st.Fields = append(st.Fields, f)
		p.eat(token.Comma)
	}
	end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close struct type")
	if ok {
		st.Sp = st.Sp.Cover(end.Span)
	}
	return st, ok
}

// parseConstraintBlock parses `{ name: expr, ... }` refining elem.
func (p *Parser) parseConstraintBlock(elem ast.Type) (ast.Type, bool) {
	open := p.advance() // '{'
	ct := &ast.ConstrainedType{Base: ast.Base{Sp: elem.Span().Cover(open.Span)}, Elem: elem}
	for !p.atAny(token.RBrace, token.EOF) {
		name, ok := p.memberName()
		if !ok {
			p.report(diag.SynInvalidConstraint, diag.SevError, p.peek().Span,
				"type constraints are written `name: value`")
			p.resyncUntil(token.RBrace)
			break
		}
		prop := &ast.Property{Base: ast.Base{Sp: name.Span}, Name: name.Text}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after constraint name"); !ok {
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
		ct.Constraints = append(ct.Constraints, prop)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close constraint block")
	if ok {
		ct.Sp = ct.Sp.Cover(end.Span)
	}
	return ct, ok
}
