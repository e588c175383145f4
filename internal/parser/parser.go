// Package parser turns a token stream into a Domain syntax tree. One method
// per nonterminal; panic-mode recovery is scoped to domain members so one
// malformed construct never aborts the rest of the file.
package parser

import (
	"fmt"
	"slices"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/limits"
	"isl/internal/source"
	"isl/internal/token"
)

// Options configures one parse call.
type Options struct {
	Reporter diag.Reporter
	// MaxDepth bounds recursion in the expression and type grammars.
	// Zero selects the default ceiling.
	MaxDepth int
}

// Parser holds the cursor state for one file. Never reused across calls.
type Parser struct {
	toks     []token.Token
	pos      int
	opts     Options
	depth    int
	maxDepth int
	lastSpan source.Span
}

// depthExceeded aborts the current parse via panic; Parse recovers it.
type depthExceeded struct{}

// Parse consumes a token stream and returns exactly one Domain plus
// diagnostics through opts.Reporter. It never panics outward: internal
// errors become INTERNAL_PARSE_ERROR diagnostics, depth exhaustion becomes
// DEPTH_EXCEEDED. The returned Domain is non-nil unless the stream holds
// no domain at all.
func Parse(toks []token.Token, opts Options) *ast.Domain {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = limits.Default().MaxDepth
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if len(toks) == 0 {
		return nil
	}
	p := &Parser{
		toks:     toks,
		opts:     opts,
		maxDepth: opts.MaxDepth,
	}

	var dom *ast.Domain
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(depthExceeded); ok {
					p.report(diag.LimitDepthExceeded, diag.SevError, p.peek().Span,
						fmt.Sprintf("recursion depth exceeded the limit of %d", p.maxDepth))
					return
				}
				p.report(diag.SynInternal, diag.SevError, p.peek().Span,
					fmt.Sprintf("internal parse error: %v", r))
			}
		}()
		dom = p.parseFile()
	}()
	return dom
}

// parseFile skips a leading @version directive, then parses the domain.
func (p *Parser) parseFile() *ast.Domain {
	p.skipVersionDirective()

	if !p.at(token.KwDomain) {
		p.errExpect(diag.SynUnexpectedToken, "expected 'domain'")
		p.resyncUntil(token.KwDomain)
		if !p.at(token.KwDomain) {
			return nil
		}
	}
	dom := p.parseDomain()

	if !p.at(token.EOF) {
		p.report(diag.SynUnexpectedToken, diag.SevError, p.peek().Span,
			"unexpected content after domain")
	}
	return dom
}

// skipVersionDirective consumes `@version "X.Y"` at the top of the file.
// The langver package owns interpretation; the parser only tolerates it.
func (p *Parser) skipVersionDirective() {
	if !p.at(token.At) {
		return
	}
	if p.peekAt(1).Kind != token.KwVersion {
		return
	}
	p.advance() // @
	p.advance() // version
	if p.at(token.StringLit) {
		p.advance()
	}
}

// ---- cursor helpers ----

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// atIdentText reports a soft keyword: an Ident whose text is s.
func (p *Parser) atIdentText(s string) bool {
	t := p.peek()
	return t.Kind == token.Ident && t.Text == s
}

// onNewLine reports whether the current token is the first on its line.
func (p *Parser) onNewLine() bool {
	for _, tr := range p.peek().Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	p.lastSpan = tok.Span
	return tok
}

// eat consumes the current token if it matches.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k or reports msg under code.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errExpect(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// expectIdent consumes an identifier.
func (p *Parser) expectIdent() (token.Token, bool) {
	if p.at(token.Ident) {
		return p.advance(), true
	}
	p.errExpect(diag.SynExpectIdentifier, "expected identifier, got "+p.describe(p.peek()))
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}, false
}

// memberName consumes an identifier or a keyword used in name position
// (field and member names may collide with keywords like `count`).
func (p *Parser) memberName() (token.Token, bool) {
	t := p.peek()
	if t.Kind == token.Ident || t.IsKeyword() {
		return p.advance(), true
	}
	p.errExpect(diag.SynExpectIdentifier, "expected name, got "+p.describe(t))
	return token.Token{Kind: token.Invalid, Span: t.Span}, false
}

// expectString consumes a string literal and returns the decoded value.
func (p *Parser) expectString() (string, source.Span, bool) {
	if p.at(token.StringLit) {
		tok := p.advance()
		return decodeString(tok.Text), tok.Span, true
	}
	p.errExpect(diag.SynExpectString, "expected string literal, got "+p.describe(p.peek()))
	return "", p.peek().Span, false
}

func (p *Parser) describe(t token.Token) string {
	switch t.Kind {
	case token.EOF:
		return "end of input"
	case token.StringLit:
		return "string literal"
	default:
		return "\"" + t.Text + "\""
	}
}

// ---- diagnostics ----

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	p.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
}

func (p *Parser) reportFull(d diag.Diagnostic) {
	p.opts.Reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

func (p *Parser) errExpect(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.peek().Span, msg)
}

// ---- recovery ----

// resyncUntil discards tokens until one of kinds, a member-starting
// keyword, a closing brace, or end of input.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.RBrace || t.IsMemberStart() {
			return
		}
		if slices.Contains(kinds, t.Kind) {
			return
		}
		p.advance()
	}
}

// skipBalanced consumes a brace-balanced block starting at the current
// `{`, used to drop the body of an unrecoverable construct.
func (p *Parser) skipBalanced() {
	if !p.at(token.LBrace) {
		return
	}
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// ---- depth guard ----

// enter bumps the recursion counter; the returned func must be deferred
// so the slot is released on every exit path, including panics.
func (p *Parser) enter() func() {
	p.depth++
	if p.depth > p.maxDepth {
		panic(depthExceeded{})
	}
	return func() { p.depth-- }
}
