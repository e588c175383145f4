package diag

import (
	"fmt"
)

// Code identifies a diagnostic category. Codes are stable across releases;
// downstream tooling keys on them.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical errors.
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005
	LexUnterminatedRegex        Code = 1006
	LexBadDurationUnit          Code = 1007

	// Syntax errors.
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectType        Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectColon       Code = 2005
	SynExpectString      Code = 2006
	SynUnclosedBrace     Code = 2007
	SynUnclosedParen     Code = 2008
	SynUnclosedBracket   Code = 2009
	SynMissingVersion    Code = 2010
	SynDuplicateName     Code = 2011
	SynUnknownMember     Code = 2012
	SynInvalidAnnotation Code = 2013
	SynInvalidLifecycle  Code = 2014
	SynInvalidConstraint Code = 2015
	SynInvalidOutcome    Code = 2016
	SynExpectMember      Code = 2017
	SynInternal          Code = 2018

	// Resource-limit errors. These short-circuit the parse; there is no
	// partial AST behind them.
	LimitInfo          Code = 4000
	LimitInputSize     Code = 4001
	LimitStringLen     Code = 4002
	LimitIdentLen      Code = 4003
	LimitTokenCount    Code = 4004
	LimitDepthExceeded Code = 4005
	IOReadError        Code = 4010

	// Fuzzy-mode notices.
	FuzzyInfo        Code = 5000
	FuzzyNormalized  Code = 5001
	FuzzyPartialNode Code = 5002
)

// codeNames gives every code a stable, grep-friendly name.
var codeNames = map[Code]string{
	UnknownCode: "UNKNOWN",

	LexInfo:                     "LEX_INFO",
	LexUnknownChar:              "UNKNOWN_CHARACTER",
	LexUnterminatedString:       "UNTERMINATED_STRING",
	LexUnterminatedBlockComment: "UNTERMINATED_COMMENT",
	LexBadNumber:                "INVALID_NUMBER",
	LexBadEscape:                "INVALID_ESCAPE",
	LexUnterminatedRegex:        "UNTERMINATED_REGEX",
	LexBadDurationUnit:          "INVALID_DURATION_UNIT",

	SynInfo:              "SYN_INFO",
	SynUnexpectedToken:   "UNEXPECTED_TOKEN",
	SynExpectIdentifier:  "EXPECTED_IDENTIFIER",
	SynExpectType:        "EXPECTED_TYPE",
	SynExpectExpression:  "EXPECTED_EXPRESSION",
	SynExpectColon:       "EXPECTED_COLON",
	SynExpectString:      "EXPECTED_STRING",
	SynUnclosedBrace:     "UNCLOSED_BRACE",
	SynUnclosedParen:     "UNCLOSED_PAREN",
	SynUnclosedBracket:   "UNCLOSED_BRACKET",
	SynMissingVersion:    "MISSING_VERSION",
	SynDuplicateName:     "DUPLICATE_NAME",
	SynUnknownMember:     "UNKNOWN_MEMBER",
	SynInvalidAnnotation: "INVALID_ANNOTATION",
	SynInvalidLifecycle:  "INVALID_LIFECYCLE",
	SynInvalidConstraint: "INVALID_CONSTRAINT",
	SynInvalidOutcome:    "INVALID_OUTCOME",
	SynExpectMember:      "EXPECTED_MEMBER",
	SynInternal:          "INTERNAL_PARSE_ERROR",

	LimitInfo:          "LIMIT_INFO",
	LimitInputSize:     "INPUT_TOO_LARGE",
	LimitStringLen:     "STRING_TOO_LONG",
	LimitIdentLen:      "IDENTIFIER_TOO_LONG",
	LimitTokenCount:    "TOKEN_LIMIT_EXCEEDED",
	LimitDepthExceeded: "DEPTH_EXCEEDED",
	IOReadError:        "IO_READ_ERROR",

	FuzzyInfo:        "FUZZY_INFO",
	FuzzyNormalized:  "FUZZY_NORMALIZED",
	FuzzyPartialNode: "FUZZY_PARTIAL_NODE",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("E%04d", uint16(c))
}

// ID returns the short category-prefixed form used in rendered output.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LIM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("FZY%04d", ic)
	}
	return "E0000"
}

// IsLimit reports whether the code belongs to the resource-limit range.
func (c Code) IsLimit() bool {
	return c >= 4000 && c < 5000
}
