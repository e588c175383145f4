// Package fix applies the suggested edits attached to diagnostics, e.g.
// inserting a missing version declaration. Edits are validated against
// the current file content and rejected on conflict rather than applied
// blindly.
package fix

import (
	"errors"
	"fmt"
	"sort"

	"isl/internal/diag"
	"isl/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode selects how many fixes one call applies.
type ApplyMode uint8

const (
	// ApplyModeOnce applies only the first fix in diagnostic order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting fix.
	ApplyModeAll
)

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	Mode ApplyMode
}

// AppliedFix records one successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	EditCount int
}

// SkippedFix records a fix that could not be applied and why.
type SkippedFix struct {
	Title  string
	Reason string
}

// Result aggregates the outcome of one Apply call. Outputs holds the
// rewritten content per touched file; the caller decides whether to
// write it back.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Outputs map[source.FileID][]byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects the fixes carried by diagnostics, orders them
// deterministically, and applies the selection to in-memory copies of
// the affected files.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: FileSet is nil")
	}
	result := &Result{Outputs: make(map[source.FileID][]byte)}

	cands := gather(diagnostics)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(cands)

	// Edits already applied per file, for conflict detection. Offsets
	// refer to the original content: all edits are validated against the
	// untouched file and replayed together at the end.
	taken := make(map[source.FileID][]diag.FixEdit)

	for _, cand := range cands {
		if reason := stage(fs, taken, cand.fix); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Reason: reason})
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			EditCount: len(cand.fix.Edits),
		})
		if opts.Mode == ApplyModeOnce {
			break
		}
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for id, edits := range taken {
		out, err := ApplyEdits(fs.Get(id).Content, edits)
		if err != nil {
			// stage() validated every edit; a failure here is a bug.
			return result, fmt.Errorf("fix: applying staged edits: %w", err)
		}
		result.Outputs[id] = out
	}
	return result, nil
}

func gather(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		di, dj := cands[i].diag, cands[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return cands[i].order < cands[j].order
	})
}

// stage validates a fix's edits against file bounds and previously
// staged edits, records them on success, and returns a skip reason on
// failure.
func stage(fs *source.FileSet, taken map[source.FileID][]diag.FixEdit, f diag.Fix) string {
	for _, e := range f.Edits {
		file := fs.Get(e.Span.File)
		if int(e.Span.End) > len(file.Content) || e.Span.Start > e.Span.End {
			return "edit span is out of bounds (stale diagnostic?)"
		}
		for _, prev := range taken[e.Span.File] {
			if overlaps(prev.Span, e.Span) {
				return "conflicts with a previously applied edit"
			}
		}
	}
	for _, e := range f.Edits {
		taken[e.Span.File] = append(taken[e.Span.File], e)
	}
	return ""
}

// overlaps treats spans as half-open ranges; touching insertions at the
// same offset still conflict, since their order would be ambiguous.
func overlaps(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return a.Start == b.Start
	}
	return a.Start < b.End && b.Start < a.End
}

// ApplyEdits rewrites content with the given non-overlapping edits.
// Edits are applied back to front so earlier offsets stay valid.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, error) {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	out := append([]byte(nil), content...)
	for i, e := range sorted {
		if int(e.Span.End) > len(content) || e.Span.Start > e.Span.End {
			return nil, fmt.Errorf("edit %d out of bounds: %s", i, e.Span)
		}
		if i > 0 && sorted[i-1].Span.Start < e.Span.End {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.Span.Start)
		}
		out = append(out[:e.Span.Start], append([]byte(e.NewText), out[e.Span.End:]...)...)
	}
	return out, nil
}
