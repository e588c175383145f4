package lexer

import (
	"isl/internal/diag"
	"isl/internal/token"
)

// scanNumber scans integer and floating-point literals plus both duration
// forms: compact (200ms, 1.5s) and dotted (15.minutes). Malformed numbers
// are reported and come back as Invalid tokens.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		_ = b0
		switch {
		case ok && isDec(b1):
			// Fraction digits.
			lx.cursor.Bump() // '.'
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		case ok && isAlpha(b1):
			// Dotted duration: 15.minutes. An unknown word after the dot
			// is left alone; the parser sees a number and a member access.
			if tok, isDur := lx.tryDottedDuration(start); isDur {
				return tok
			}
		}
	}

	// Exponent.
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b2 := lx.cursor.Peek(); b2 == '+' || b2 == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(mark)
		} else {
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
		}
	}

	// Compact duration unit glued to the number.
	if isAlpha(lx.cursor.Peek()) {
		unitStart := lx.cursor.Mark()
		for isAlpha(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		unitSpan := lx.cursor.SpanFrom(unitStart)
		unit := string(lx.file.Content[unitSpan.Start:unitSpan.End])
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		if _, ok := token.LookupDurationUnit(unit); !ok {
			lx.errLex(diag.LexBadDurationUnit, sp, "unknown duration unit \""+unit+"\"")
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.DurationLit, Span: sp, Text: text}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// tryDottedDuration checks whether the dot after a number starts a known
// duration unit word. On success it consumes ".unit" and returns the full
// DurationLit token; otherwise the cursor stays put.
func (lx *Lexer) tryDottedDuration(numStart Mark) (token.Token, bool) {
	mark := lx.cursor.Mark()
	lx.cursor.Bump() // '.'
	wordStart := lx.cursor.Mark()
	for isAlpha(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	wordSpan := lx.cursor.SpanFrom(wordStart)
	word := string(lx.file.Content[wordSpan.Start:wordSpan.End])
	if _, ok := token.LookupDurationUnit(word); !ok {
		lx.cursor.Reset(mark)
		return token.Token{}, false
	}
	sp := lx.cursor.SpanFrom(numStart)
	return token.Token{Kind: token.DurationLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}, true
}
