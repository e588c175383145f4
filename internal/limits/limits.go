// Package limits guards the parser against pathological input. The checks
// run before any tokenization work and produce a LimitError distinct from
// ordinary syntax diagnostics, so callers can tell "malformed" apart from
// "unsafe to process".
package limits

import (
	"fmt"
)

// LimitKind identifies which ceiling was exceeded.
type LimitKind uint8

const (
	LimitInput LimitKind = iota
	LimitString
	LimitIdent
	LimitTokens
	LimitDepth
)

func (k LimitKind) String() string {
	switch k {
	case LimitInput:
		return "INPUT_TOO_LARGE"
	case LimitString:
		return "STRING_TOO_LONG"
	case LimitIdent:
		return "IDENTIFIER_TOO_LONG"
	case LimitTokens:
		return "TOKEN_LIMIT_EXCEEDED"
	case LimitDepth:
		return "DEPTH_EXCEEDED"
	}
	return "LIMIT_EXCEEDED"
}

// LimitError reports a violated resource ceiling.
type LimitError struct {
	Kind   LimitKind
	Actual int
	Max    int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d exceeds maximum %d", e.Kind, e.Actual, e.Max)
}

// Limits holds the configurable resource ceilings. The zero value is not
// usable; start from Default.
type Limits struct {
	MaxInputBytes int
	MaxStringLen  int
	MaxIdentLen   int
	MaxTokens     int
	MaxDepth      int
}

// Default returns the standard ceilings.
func Default() Limits {
	return Limits{
		MaxInputBytes: 10 << 20, // 10 MiB
		MaxStringLen:  64 << 10, // 64 KiB
		MaxIdentLen:   512,
		MaxTokens:     1 << 20,
		MaxDepth:      256,
	}
}

// CheckInput validates total input size. Runs before tokenization.
func (l Limits) CheckInput(src []byte) error {
	if l.MaxInputBytes > 0 && len(src) > l.MaxInputBytes {
		return &LimitError{Kind: LimitInput, Actual: len(src), Max: l.MaxInputBytes}
	}
	return nil
}

// CheckString validates one string literal's byte length.
func (l Limits) CheckString(n int) error {
	if l.MaxStringLen > 0 && n > l.MaxStringLen {
		return &LimitError{Kind: LimitString, Actual: n, Max: l.MaxStringLen}
	}
	return nil
}

// CheckIdent validates one identifier's byte length.
func (l Limits) CheckIdent(n int) error {
	if l.MaxIdentLen > 0 && n > l.MaxIdentLen {
		return &LimitError{Kind: LimitIdent, Actual: n, Max: l.MaxIdentLen}
	}
	return nil
}

// CheckTokens validates the running token count.
func (l Limits) CheckTokens(n int) error {
	if l.MaxTokens > 0 && n > l.MaxTokens {
		return &LimitError{Kind: LimitTokens, Actual: n, Max: l.MaxTokens}
	}
	return nil
}
