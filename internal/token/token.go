package token

import (
	"isl/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a literal of any form.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, NumberLit, DurationLit, RegexLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwDomain && t.Kind <= KwImmediately
}

// IsMemberStart reports whether the token can begin a domain member.
// This set doubles as the panic-mode synchronization set.
func (t Token) IsMemberStart() bool {
	switch t.Kind {
	case KwVersion, KwOwner, KwUse, KwImport, KwType, KwEnum, KwEntity,
		KwBehavior, KwInvariants, KwPolicy, KwView, KwScenario, KwChaos,
		KwAPI, KwStorage, KwWorkflow, KwEvent, KwHandler, KwScreen, KwConfig:
		return true
	default:
		return false
	}
}
