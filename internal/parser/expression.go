package parser

import (
	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/token"
)

// parseExpr is the expression entry point. The ternary conditional sits
// above the binary tiers and is right-associative.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	defer p.enter()()

	cond, ok := p.parseBinary(precOr)
	if !ok {
		return nil, false
	}
	if !p.eat(token.Question) {
		return cond, true
	}
	then, ok := p.parseExpr()
	if !ok {
		return cond, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression"); !ok {
		return cond, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return cond, false
	}
	return &ast.ConditionalExpr{
		Base: ast.Base{Sp: cond.Span().Cover(els.Span())},
		Cond: cond,
		Then: then,
		Else: els,
	}, true
}

// parseBinary is precedence climbing over the op table. Operators in
// one tier associate left, so `a == b != c` groups as `(a == b) != c`.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, bool) {
	defer p.enter()()

	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		op, isOp := binOps[p.peek().Kind]
		if !isOp || op.prec < minPrec {
			return left, true
		}
		p.advance()
		right, ok := p.parseBinary(op.prec + 1)
		if !ok {
			return left, false
		}
		left = &ast.BinaryExpr{
			Base:  ast.Base{Sp: left.Span().Cover(right.Span())},
			Op:    op.op,
			Left:  left,
			Right: right,
		}
	}
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	defer p.enter()()

	switch p.peek().Kind {
	case token.KwNot, token.Bang:
		op := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{
			Base:    ast.Base{Sp: op.Span.Cover(operand.Span())},
			Op:      ast.OpNot,
			Operand: operand,
		}, true
	case token.Minus:
		op := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{
			Base:    ast.Base{Sp: op.Span.Cover(operand.Span())},
			Op:      ast.OpNeg,
			Operand: operand,
		}, true
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by call, member, and index
// suffixes. Pure dotted identifier chains collapse into a single
// QualifiedExpr; any other shape uses the general MemberExpr.
//
// A `(` or `[` that starts a new line does not attach as a suffix: in
// predicate lists the next entry may itself begin with a parenthesized
// expression or a list literal.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	e, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			if p.onNewLine() {
				return e, true
			}
			call, ok := p.parseCall(e)
			e = call
			if !ok {
				return e, false
			}
		case token.Dot:
			p.advance()
			name, ok := p.memberName()
			if !ok {
				return e, false
			}
			switch obj := e.(type) {
			case *ast.IdentExpr:
				e = &ast.QualifiedExpr{
					Base:  ast.Base{Sp: obj.Sp.Cover(name.Span)},
					Parts: []string{obj.Name, name.Text},
				}
			case *ast.QualifiedExpr:
				obj.Parts = append(obj.Parts, name.Text)
				obj.Sp = obj.Sp.Cover(name.Span)
			default:
				e = &ast.MemberExpr{
					Base:   ast.Base{Sp: e.Span().Cover(name.Span)},
					Object: e,
					Name:   name.Text,
				}
			}
		case token.LBracket:
			if p.onNewLine() {
				return e, true
			}
			p.advance()
			idx, ok := p.parseExpr()
			if !ok {
				return e, false
			}
			end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close index")
			if !ok {
				return e, false
			}
			e = &ast.IndexExpr{
				Base:   ast.Base{Sp: e.Span().Cover(end.Span)},
				Object: e,
				Index:  idx,
			}
		default:
			return e, true
		}
	}
}

// parseCall parses `(arg, ...)` after the callee. Arguments may be
// positional or named (`name: expr`).
func (p *Parser) parseCall(callee ast.Expr) (*ast.CallExpr, bool) {
	p.advance() // '('
	call := &ast.CallExpr{Base: ast.Base{Sp: callee.Span()}, Callee: callee}
	for !p.atAny(token.RParen, token.EOF) {
		var arg ast.Arg
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			arg.Name = p.advance().Text
			p.advance() // ':'
		}
		val, ok := p.parseExpr()
		if !ok {
			return call, false
		}
		arg.Value = val
		call.Args = append(call.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call arguments")
	if ok {
		call.Sp = call.Sp.Cover(end.Span)
	}
	return call, ok
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	defer p.enter()()

	t := p.peek()
	switch t.Kind {
	case token.Ident:
		p.advance()
		if p.at(token.FatArrow) {
			p.advance()
			body, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			return &ast.LambdaExpr{
				Base:  ast.Base{Sp: t.Span.Cover(body.Span())},
				Param: t.Text,
				Body:  body,
			}, true
		}
		return &ast.IdentExpr{Base: ast.Base{Sp: t.Span}, Name: t.Text}, true

	case token.StringLit:
		p.advance()
		return &ast.StringLit{Base: ast.Base{Sp: t.Span}, Value: decodeString(t.Text)}, true

	case token.NumberLit:
		p.advance()
		return &ast.NumberLit{Base: ast.Base{Sp: t.Span}, Raw: t.Text}, true

	case token.DurationLit:
		p.advance()
		d, _ := decodeDuration(t.Text)
		return &ast.DurationLit{Base: ast.Base{Sp: t.Span}, Raw: t.Text, Value: d}, true

	case token.RegexLit:
		p.advance()
		return &ast.RegexLit{Base: ast.Base{Sp: t.Span}, Pattern: regexPattern(t.Text)}, true

	case token.KwTrue:
		p.advance()
		return &ast.BoolLit{Base: ast.Base{Sp: t.Span}, Value: true}, true

	case token.KwFalse:
		p.advance()
		return &ast.BoolLit{Base: ast.Base{Sp: t.Span}, Value: false}, true

	case token.KwNull:
		p.advance()
		return &ast.NullLit{Base: ast.Base{Sp: t.Span}}, true

	case token.KwResult:
		p.advance()
		return &ast.ResultExpr{Base: ast.Base{Sp: t.Span}}, true

	case token.KwInput:
		p.advance()
		return &ast.InputExpr{Base: ast.Base{Sp: t.Span}}, true

	case token.KwOld:
		return p.parseOld()

	case token.KwAll, token.KwAny, token.KwNone, token.KwCount, token.KwSum, token.KwFilter:
		return p.parseQuantifier()

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression"); !ok {
			return inner, false
		}
		return inner, true

	case token.LBracket:
		return p.parseListLit()

	case token.LBrace:
		return p.parseMapLit()
	}

	p.errExpect(diag.SynExpectExpression, "expected expression, got "+p.describe(t))
	return nil, false
}

// parseOld is `old(expr)`.
func (p *Parser) parseOld() (ast.Expr, bool) {
	kw := p.advance() // 'old'
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after 'old'"); !ok {
		return nil, false
	}
	operand, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close 'old'")
	if !ok {
		return &ast.OldExpr{Base: ast.Base{Sp: kw.Span}, Operand: operand}, false
	}
	return &ast.OldExpr{Base: ast.Base{Sp: kw.Span.Cover(end.Span)}, Operand: operand}, true
}

// parseQuantifier is `all(collection, binder => predicate)` and the
// sibling forms.
func (p *Parser) parseQuantifier() (ast.Expr, bool) {
	kw := p.advance()
	q := &ast.QuantifierExpr{Base: ast.Base{Sp: kw.Span}, QKind: quantKinds[kw.Kind]}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after '"+kw.Text+"'"); !ok {
		return nil, false
	}
	coll, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	q.Collection = coll
	if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between collection and binder"); !ok {
		return q, false
	}
	binder, ok := p.expectIdent()
	if !ok {
		return q, false
	}
	q.Binder = binder.Text
	if _, ok := p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' after binder"); !ok {
		return q, false
	}
	pred, ok := p.parseExpr()
	if !ok {
		return q, false
	}
	q.Predicate = pred
	end, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close quantifier")
	if ok {
		q.Sp = q.Sp.Cover(end.Span)
	}
	return q, ok
}

// parseListLit is `[a, b, c]`.
func (p *Parser) parseListLit() (ast.Expr, bool) {
	open := p.advance() // '['
	lst := &ast.ListLit{Base: ast.Base{Sp: open.Span}}
	for !p.atAny(token.RBracket, token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			return lst, false
		}
		lst.Elems = append(lst.Elems, e)
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close list literal")
	if ok {
		lst.Sp = lst.Sp.Cover(end.Span)
	}
	return lst, ok
}

// parseMapLit is `{k: v, ...}`. Keys are full expressions.
func (p *Parser) parseMapLit() (ast.Expr, bool) {
	open := p.advance() // '{'
	m := &ast.MapLit{Base: ast.Base{Sp: open.Span}}
	for !p.atAny(token.RBrace, token.EOF) {
		key, ok := p.parseExpr()
		if !ok {
			return m, false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after map key"); !ok {
			return m, false
		}
		val, ok := p.parseExpr()
		if !ok {
			return m, false
		}
		m.Entries = append(m.Entries, ast.MapEntry{Key: key, Value: val})
		if !p.eat(token.Comma) {
			break
		}
	}
	end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close map literal")
	if ok {
		m.Sp = m.Sp.Cover(end.Span)
	}
	return m, ok
}
