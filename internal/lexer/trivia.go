package lexer

import (
	"isl/internal/diag"
	"isl/internal/token"
)

// collectLeadingTrivia gathers consecutive trivia before a significant token:
// runs of spaces/tabs coalesce into one TriviaSpace, runs of newlines into
// one TriviaNewline; // comments run to end of line; /* */ comments nest and
// an unterminated one is diagnosed and cut at EOF.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)
			continue
		}

		if b == '/' {
			if lx.scanCommentIntoHold() {
				continue
			}
		}

		break
	}
}

// scanCommentIntoHold handles // and /* */. Returns false when the '/' is
// not a comment opener (so the caller treats it as an operator or regex).
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}

	switch b1 {
	case '/':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.pushTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if lx.try2('/', '*') {
				depth++
				continue
			}
			if lx.try2('*', '/') {
				depth--
				continue
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.pushTrivia(token.TriviaBlockComment, start)
		return true
	}
	return false
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
