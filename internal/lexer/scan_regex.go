package lexer

import (
	"isl/internal/diag"
	"isl/internal/token"
)

// scanRegex scans a /.../ literal. Inside, \/ escapes the delimiter and a
// character class [...] may contain an unescaped slash. Regexes do not
// span lines.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '/'

	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\n' {
			break
		}
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '[' {
			inClass = true
		} else if b == ']' {
			inClass = false
		} else if b == '/' && !inClass {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.RegexLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedRegex, sp, "unterminated regex literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
