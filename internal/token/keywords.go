package token

var keywords = map[string]Kind{
	"domain":   KwDomain,
	"version":  KwVersion,
	"owner":    KwOwner,
	"use":      KwUse,
	"import":   KwImport,
	"as":       KwAs,
	"type":     KwType,
	"enum":     KwEnum,
	"entity":   KwEntity,
	"behavior": KwBehavior,
	"policy":   KwPolicy,
	"view":     KwView,
	"scenario": KwScenario,
	"chaos":    KwChaos,
	"api":      KwAPI,
	"storage":  KwStorage,
	"workflow": KwWorkflow,
	"event":    KwEvent,
	"handler":  KwHandler,
	"screen":   KwScreen,
	"config":   KwConfig,

	"input":          KwInput,
	"output":         KwOutput,
	"errors":         KwErrors,
	"lifecycle":      KwLifecycle,
	"invariants":     KwInvariants,
	"preconditions":  KwPreconditions,
	"postconditions": KwPostconditions,
	"temporal":       KwTemporal,
	"security":       KwSecurity,
	"compliance":     KwCompliance,
	"observability":  KwObservability,
	"success":        KwSuccess,
	"any_error":      KwAnyError,
	"on":             KwOn,
	"within":         KwWithin,

	"and":     KwAnd,
	"or":      KwOr,
	"not":     KwNot,
	"implies": KwImplies,
	"iff":     KwIff,
	"in":      KwIn,
	"old":     KwOld,
	"result":  KwResult,
	"true":    KwTrue,
	"false":   KwFalse,
	"null":    KwNull,
	"all":     KwAll,
	"any":     KwAny,
	"none":    KwNone,
	"count":   KwCount,
	"sum":     KwSum,
	"filter":  KwFilter,

	"eventually":  KwEventually,
	"always":      KwAlways,
	"never":       KwNever,
	"immediately": KwImmediately,
}

// LookupKeyword maps an identifier to its keyword kind, if any.
// Keywords are case-sensitive, only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// KeywordNames returns the full keyword vocabulary. Used by the
// "did you mean" suggestion search. The returned slice is shared and
// must not be mutated.
func KeywordNames() []string {
	return keywordNames
}

var keywordNames = func() []string {
	out := make([]string, 0, len(keywords))
	for name := range keywords {
		out = append(out, name)
	}
	return out
}()
