package token

import "isl/internal/source"

// TriviaKind classifies non-significant lexemes.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

// Trivia is whitespace or a comment attached to the following token.
// Comments never reach the parser; tooling can re-derive them from
// token leading trivia.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a comment.
func (tr Trivia) IsComment() bool {
	return tr.Kind == TriviaLineComment || tr.Kind == TriviaBlockComment
}
