package diag

import (
	"isl/internal/source"
)

// Note attaches a secondary location to a diagnostic, e.g. the first
// definition in a duplicate-name report.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement. An empty span (Start == End)
// inserts NewText at that offset.
type FixEdit struct {
	Span    source.Span
	NewText string
}

// Fix is a suggested source edit attached to a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one reported problem with location, related notes and
// optional fix suggestions.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
