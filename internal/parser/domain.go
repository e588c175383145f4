package parser

import (
	"fmt"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/source"
	"isl/internal/token"
)

// memberVocabulary feeds the "did you mean" suggestion for misspelled
// member keywords at domain level.
var memberVocabulary = []string{
	"version", "owner", "use", "import", "type", "enum", "entity",
	"behavior", "invariants", "policy", "view", "scenario", "chaos",
	"api", "storage", "workflow", "event", "handler", "screen", "config",
}

// parseDomain parses the domain header and its member list. The member
// loop never gives up: every unrecognized construct becomes a diagnostic
// plus a resync, and the loop continues with the next member.
func (p *Parser) parseDomain() *ast.Domain {
	kw := p.advance() // 'domain'
	dom := &ast.Domain{Base: ast.Base{Sp: kw.Span}}

	if name, ok := p.expectIdent(); ok {
		dom.Name = name.Text
		dom.NameSpan = name.Span
	} else {
		dom.NameSpan = kw.Span
	}

	// A single peek selects the braced vs brace-less form.
	bodyStart := dom.NameSpan.End
	braced := false
	if p.at(token.LBrace) {
		braced = true
		brace := p.advance()
		bodyStart = brace.Span.End
	}
	dom.Braceless = !braced

	seen := make(map[string]source.Span)
	closed := false
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			if braced {
				end := p.advance()
				dom.Sp = dom.Sp.Cover(end.Span)
				closed = true
				break
			}
			p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
				"unexpected '}' outside a braced domain")
			p.advance()
			continue
		}
		p.parseMember(dom, seen)
	}
	if braced && !closed {
		p.report(diag.SynUnclosedBrace, diag.SevError, kw.Span.Cover(dom.NameSpan),
			"domain body is never closed, expected '}'")
	}
	if !braced {
		dom.Sp = dom.Sp.Cover(p.lastSpan)
	}

	if dom.Version == "" {
		d := diag.NewError(diag.SynMissingVersion, dom.NameSpan,
			fmt.Sprintf("domain %q declares no version", dom.Name)).
			WithFix("add a version declaration", diag.FixEdit{
				Span:    source.Span{File: dom.NameSpan.File, Start: bodyStart, End: bodyStart},
				NewText: "\n  version: \"1.0\"",
			})
		p.reportFull(d)
	}
	return dom
}

// parseMember dispatches one domain member. A panic out of the member
// parse (other than the depth sentinel) is downgraded to an
// INTERNAL_PARSE_ERROR diagnostic followed by a resync, so a bug in one
// construct cannot take down the whole file.
func (p *Parser) parseMember(dom *ast.Domain, seen map[string]source.Span) {
	start := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(depthExceeded); ok {
				panic(r)
			}
			p.report(diag.SynInternal, diag.SevError, p.peek().Span,
				fmt.Sprintf("internal parse error: %v", r))
			if p.pos == start {
				p.advance()
			}
			p.resyncUntil()
		}
	}()

	switch p.peek().Kind {
	case token.KwVersion:
		p.parseVersionDecl(dom)
	case token.KwOwner:
		p.parseOwnerDecl(dom)
	case token.KwUse:
		if u := p.parseUseDecl(); u != nil {
			dom.Uses = append(dom.Uses, u)
		}
	case token.KwImport:
		if im := p.parseImportDecl(); im != nil {
			dom.Imports = append(dom.Imports, im)
		}
	case token.KwType:
		if td := p.parseTypeDecl(); td != nil {
			p.checkDuplicate(seen, td.Name, td.NameSpan)
			dom.Types = append(dom.Types, td)
		}
	case token.KwEnum:
		if ed := p.parseEnumDecl(); ed != nil {
			p.checkDuplicate(seen, ed.Name, ed.NameSpan)
			dom.Enums = append(dom.Enums, ed)
		}
	case token.KwEntity:
		if e := p.parseEntity(); e != nil {
			p.checkDuplicate(seen, e.Name, e.NameSpan)
			dom.Entities = append(dom.Entities, e)
		}
	case token.KwBehavior:
		if b := p.parseBehavior(); b != nil {
			p.checkDuplicate(seen, b.Name, b.NameSpan)
			dom.Behaviors = append(dom.Behaviors, b)
		}
	case token.KwInvariants:
		dom.Invariants = append(dom.Invariants, p.parseInvariantsBlock()...)
	case token.KwPolicy:
		if pl := p.parsePolicy(); pl != nil {
			dom.Policies = append(dom.Policies, pl)
		}
	case token.KwView:
		if v := p.parseView(); v != nil {
			dom.Views = append(dom.Views, v)
		}
	case token.KwScenario:
		if s := p.parseScenario(); s != nil {
			dom.Scenarios = append(dom.Scenarios, s)
		}
	case token.KwChaos:
		if c := p.parseChaos(); c != nil {
			dom.ChaosSpecs = append(dom.ChaosSpecs, c)
		}
	case token.KwAPI:
		if a := p.parseAPIBlock(); a != nil {
			dom.APIs = append(dom.APIs, a)
		}
	case token.KwStorage:
		if s := p.parseStorageBlock(); s != nil {
			dom.Storages = append(dom.Storages, s)
		}
	case token.KwWorkflow:
		if w := p.parseWorkflow(); w != nil {
			dom.Workflows = append(dom.Workflows, w)
		}
	case token.KwEvent:
		if e := p.parseEventDecl(); e != nil {
			dom.Events = append(dom.Events, e)
		}
	case token.KwHandler:
		if h := p.parseHandler(); h != nil {
			dom.Handlers = append(dom.Handlers, h)
		}
	case token.KwScreen:
		if s := p.parseScreen(); s != nil {
			dom.Screens = append(dom.Screens, s)
		}
	case token.KwConfig:
		if c := p.parseConfigBlock(); c != nil {
			dom.Configs = append(dom.Configs, c)
		}
	default:
		p.unknownMember()
	}

	// The dispatch must consume at least one token; otherwise a stuck
	// production would loop forever.
	if p.pos == start {
		p.advance()
	}
}

// unknownMember reports the stray token at member position, suggests a
// member keyword when the token is a near-miss identifier, then resyncs.
func (p *Parser) unknownMember() {
	t := p.peek()
	d := diag.NewError(diag.SynUnknownMember, t.Span,
		fmt.Sprintf("unexpected %s at domain level", p.describe(t)))
	if t.Kind == token.Ident {
		if sugg := diag.Suggest(t.Text, memberVocabulary, 1); len(sugg) > 0 {
			d = d.WithNote(t.Span, fmt.Sprintf("did you mean %q?", sugg[0]))
		}
	}
	p.reportFull(d)
	p.advance()
	// A misspelled member keyword is typically followed by its body;
	// drop the body so its contents do not cascade.
	if p.at(token.Ident) && p.peekAt(1).Kind == token.LBrace {
		p.advance()
	}
	p.skipBalanced()
	p.resyncUntil()
}

func (p *Parser) checkDuplicate(seen map[string]source.Span, name string, sp source.Span) {
	if name == "" {
		return
	}
	if first, ok := seen[name]; ok {
		d := diag.NewError(diag.SynDuplicateName, sp,
			fmt.Sprintf("duplicate declaration of %q", name)).
			WithNote(first, "first defined here")
		p.reportFull(d)
		return
	}
	seen[name] = sp
}

// parseVersionDecl is `version: "X.Y"`. An empty string is treated the
// same as a missing declaration.
func (p *Parser) parseVersionDecl(dom *ast.Domain) {
	p.advance() // 'version'
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'version'")
	val, sp, ok := p.expectString()
	if !ok {
		p.resyncUntil()
		return
	}
	if val == "" {
		p.report(diag.SynMissingVersion, diag.SevError, sp, "version must be a non-empty string")
		return
	}
	dom.Version = val
	dom.VersionSpan = sp
}

// parseOwnerDecl is `owner: "team"`.
func (p *Parser) parseOwnerDecl(dom *ast.Domain) {
	p.advance() // 'owner'
	p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'owner'")
	val, _, ok := p.expectString()
	if !ok {
		p.resyncUntil()
		return
	}
	dom.Owner = val
}

// parseUseDecl is `use dotted.path (as alias)?`.
func (p *Parser) parseUseDecl() *ast.UseDecl {
	kw := p.advance() // 'use'
	u := &ast.UseDecl{Base: ast.Base{Sp: kw.Span}}

	seg, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	u.Path = append(u.Path, seg.Text)
	for p.eat(token.Dot) {
		seg, ok = p.expectIdent()
		if !ok {
			p.resyncUntil()
			return u
		}
		u.Path = append(u.Path, seg.Text)
	}
	u.Sp = u.Sp.Cover(seg.Span)

	if p.eat(token.KwAs) {
		if alias, ok := p.expectIdent(); ok {
			u.Alias = alias.Text
			u.Sp = u.Sp.Cover(alias.Span)
		}
	}
	return u
}

// parseImportDecl is `import "path.isl" (as alias)?`.
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	kw := p.advance() // 'import'
	path, sp, ok := p.expectString()
	if !ok {
		p.resyncUntil()
		return nil
	}
	im := &ast.ImportDecl{Base: ast.Base{Sp: kw.Span.Cover(sp)}, Path: path}
	if p.eat(token.KwAs) {
		if alias, ok := p.expectIdent(); ok {
			im.Alias = alias.Text
			im.Sp = im.Sp.Cover(alias.Span)
		}
	}
	return im
}

// parseTypeDecl is `type Name = TypeExpr`.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	kw := p.advance() // 'type'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	td := &ast.TypeDecl{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after type name"); !ok {
		p.resyncUntil()
		return td
	}
	ty, ok := p.parseType()
	if !ok {
		p.resyncUntil()
		return td
	}
	td.Type = ty
	td.Sp = td.Sp.Cover(ty.Span())
	return td
}

// parseEnumDecl is `enum Name { A, B, C }`.
func (p *Parser) parseEnumDecl() *ast.EnumDecl {
	kw := p.advance() // 'enum'
	name, ok := p.expectIdent()
	if !ok {
		p.resyncUntil()
		return nil
	}
	ed := &ast.EnumDecl{
		Base:     ast.Base{Sp: kw.Span.Cover(name.Span)},
		Name:     name.Text,
		NameSpan: name.Span,
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name"); !ok {
		p.resyncUntil()
		return ed
	}
	for !p.atAny(token.RBrace, token.EOF) {
		v, ok := p.expectIdent()
		if !ok {
			p.resyncUntil(token.RBrace)
			break
		}
		ed.Variants = append(ed.Variants, v.Text)
		if !p.eat(token.Comma) {
			break
		}
	}
	if end, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close enum body"); ok {
		ed.Sp = ed.Sp.Cover(end.Span)
	}
	return ed
}
