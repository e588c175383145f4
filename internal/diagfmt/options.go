// Package diagfmt renders diagnostic bags for humans (Pretty) and for
// tooling (JSON).
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeFull prints the path as stored in the file set.
	PathModeFull PathMode = iota
	// PathModeBasename prints only the final path element.
	PathModeBasename
)

// PrettyOpts configures human-readable diagnostic output.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON diagnostic output.
type JSONOpts struct {
	// IncludePositions adds resolved line/col alongside byte offsets.
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the rendered list; the bag itself is untouched.
	// <= 0 renders everything.
	Max          int
	IncludeNotes bool
	IncludeFixes bool
}
