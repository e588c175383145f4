package lexer

import (
	"isl/internal/diag"
	"isl/internal/limits"
	"isl/internal/token"
)

// scanString scans a double-quoted literal. Escapes are validated here:
// an invalid escape is diagnosed and scanning continues, so one typo does
// not cascade. A newline or EOF before the closing quote is an
// unterminated-string error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			text := string(lx.file.Content[sp.Start:sp.End])
			if err := lx.opts.Limits.CheckString(len(text) - 2); err != nil {
				lx.limitErr = err.(*limits.LimitError)
				return token.Token{Kind: token.Invalid, Span: sp, Text: text}
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: text}
		}

		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.scanEscape(escStart)
			continue
		}

		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}

		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanEscape validates one backslash escape. The backslash is consumed.
func (lx *Lexer) scanEscape(escStart Mark) {
	b := lx.cursor.Peek()
	switch b {
	case '"', '\\', 'n', 't', 'r', '0', '\'':
		lx.cursor.Bump()
	case 'x':
		lx.cursor.Bump()
		for i := 0; i < 2; i++ {
			if !isHexByte(lx.cursor.Peek()) {
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid \\x escape, expected two hex digits")
				return
			}
			lx.cursor.Bump()
		}
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid \\u escape, expected '{'")
			return
		}
		digits := 0
		for isHexByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 || !lx.cursor.Eat('}') {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid \\u escape, expected hex digits in braces")
		}
	default:
		if !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence")
	}
}
