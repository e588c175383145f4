package lexer

import (
	"isl/internal/limits"
	"isl/internal/source"
	"isl/internal/token"
)

// Lexer scans one file into tokens, left to right, one byte of lookahead.
type Lexer struct {
	file     *source.File
	cursor   Cursor
	opts     Options
	look     *token.Token   // one-token buffer for Peek
	hold     []token.Trivia // collected leading trivia
	prev     token.Kind     // last significant token, for the regex/division split
	count    int            // significant tokens produced so far
	limitErr *limits.LimitError
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Next returns the next significant token with its leading trivia attached.
// After EOF or a limit violation it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.limitErr != nil {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '/' && lx.regexAllowed():
		tok = lx.scanRegex()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	lx.prev = tok.Kind

	lx.count++
	if err := lx.opts.Limits.CheckTokens(lx.count); err != nil {
		lx.limitErr = err.(*limits.LimitError)
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// LimitErr reports the resource-limit violation that stopped the scan, if any.
func (lx *Lexer) LimitErr() *limits.LimitError {
	return lx.limitErr
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// regexAllowed reports whether a '/' at the current position starts a regex
// literal. After an operand the slash is division; everywhere else (start of
// input, after ':', '(', ',', operators) it opens a regex.
func (lx *Lexer) regexAllowed() bool {
	switch lx.prev {
	case token.Ident, token.StringLit, token.NumberLit, token.DurationLit,
		token.RegexLit, token.RParen, token.RBracket,
		token.KwResult, token.KwTrue, token.KwFalse, token.KwNull:
		return false
	default:
		return true
	}
}

// Tokenize scans the whole file and returns every significant token,
// terminated with EOF. Comments stay behind as leading trivia on the
// tokens that follow them. On a limit violation the slice holds what was
// scanned so far and LimitErr is set.
func Tokenize(file *source.File, opts Options) ([]token.Token, *limits.LimitError) {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF || lx.limitErr != nil {
			break
		}
	}
	if out[len(out)-1].Kind != token.EOF {
		out = append(out, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
	}
	return out, lx.limitErr
}
