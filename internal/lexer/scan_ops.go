package lexer

import (
	"isl/internal/diag"
	"isl/internal/token"
)

// scanOperatorOrPunct scans punctuation and operators, longest match first.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	emit := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// Two-byte operators first.
	switch {
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('=', '>'):
		return emit(token.FatArrow)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	}

	b := lx.cursor.Bump()
	switch b {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '.':
		return emit(token.Dot)
	case '?':
		return emit(token.Question)
	case '|':
		return emit(token.Pipe)
	case '@':
		return emit(token.At)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+quoteByte(b))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func quoteByte(b byte) string {
	if b >= 0x20 && b < 0x7F {
		return "'" + string(rune(b)) + "'"
	}
	const hex = "0123456789abcdef"
	return "0x" + string(hex[b>>4]) + string(hex[b&0xF])
}
