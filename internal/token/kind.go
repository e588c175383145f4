package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit represents a string literal.
	StringLit
	// NumberLit represents an integer or floating-point literal.
	NumberLit
	// DurationLit represents a duration literal, either compact (200ms)
	// or dotted (15.minutes).
	DurationLit
	// RegexLit represents a /.../ regular-expression literal.
	RegexLit

	// Declaration keywords.

	KwDomain   // domain
	KwVersion  // version
	KwOwner    // owner
	KwUse      // use
	KwImport   // import
	KwAs       // as
	KwType     // type
	KwEnum     // enum
	KwEntity   // entity
	KwBehavior // behavior
	KwPolicy   // policy
	KwView     // view
	KwScenario // scenario
	KwChaos    // chaos
	KwAPI      // api
	KwStorage  // storage
	KwWorkflow // workflow
	KwEvent    // event
	KwHandler  // handler
	KwScreen   // screen
	KwConfig   // config

	// Section keywords inside entities and behaviors.

	KwInput          // input
	KwOutput         // output
	KwErrors         // errors
	KwLifecycle      // lifecycle
	KwInvariants     // invariants
	KwPreconditions  // preconditions
	KwPostconditions // postconditions
	KwTemporal       // temporal
	KwSecurity       // security
	KwCompliance     // compliance
	KwObservability  // observability
	KwSuccess        // success
	KwAnyError       // any_error
	KwOn             // on
	KwWithin         // within

	// Expression keywords.

	KwAnd     // and
	KwOr      // or
	KwNot     // not
	KwImplies // implies
	KwIff     // iff
	KwIn      // in
	KwOld     // old
	KwResult  // result
	KwTrue    // true
	KwFalse   // false
	KwNull    // null
	KwAll     // all
	KwAny     // any
	KwNone    // none
	KwCount   // count
	KwSum     // sum
	KwFilter  // filter

	// Temporal keywords.

	KwEventually  // eventually
	KwAlways      // always
	KwNever       // never
	KwImmediately // immediately

	// Punctuation and operators.

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Question  // ?
	Pipe      // |
	At        // @
	Arrow     // ->
	FatArrow  // =>
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "identifier",
	StringLit:   "string",
	NumberLit:   "number",
	DurationLit: "duration",
	RegexLit:    "regex",

	KwDomain:   "domain",
	KwVersion:  "version",
	KwOwner:    "owner",
	KwUse:      "use",
	KwImport:   "import",
	KwAs:       "as",
	KwType:     "type",
	KwEnum:     "enum",
	KwEntity:   "entity",
	KwBehavior: "behavior",
	KwPolicy:   "policy",
	KwView:     "view",
	KwScenario: "scenario",
	KwChaos:    "chaos",
	KwAPI:      "api",
	KwStorage:  "storage",
	KwWorkflow: "workflow",
	KwEvent:    "event",
	KwHandler:  "handler",
	KwScreen:   "screen",
	KwConfig:   "config",

	KwInput:          "input",
	KwOutput:         "output",
	KwErrors:         "errors",
	KwLifecycle:      "lifecycle",
	KwInvariants:     "invariants",
	KwPreconditions:  "preconditions",
	KwPostconditions: "postconditions",
	KwTemporal:       "temporal",
	KwSecurity:       "security",
	KwCompliance:     "compliance",
	KwObservability:  "observability",
	KwSuccess:        "success",
	KwAnyError:       "any_error",
	KwOn:             "on",
	KwWithin:         "within",

	KwAnd:     "and",
	KwOr:      "or",
	KwNot:     "not",
	KwImplies: "implies",
	KwIff:     "iff",
	KwIn:      "in",
	KwOld:     "old",
	KwResult:  "result",
	KwTrue:    "true",
	KwFalse:   "false",
	KwNull:    "null",
	KwAll:     "all",
	KwAny:     "any",
	KwNone:    "none",
	KwCount:   "count",
	KwSum:     "sum",
	KwFilter:  "filter",

	KwEventually:  "eventually",
	KwAlways:      "always",
	KwNever:       "never",
	KwImmediately: "immediately",

	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Comma:     ",",
	Colon:     ":",
	Semicolon: ";",
	Dot:       ".",
	Question:  "?",
	Pipe:      "|",
	At:        "@",
	Arrow:     "->",
	FatArrow:  "=>",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
