package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"isl/internal/diag"
	"isl/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	gutter    = color.New(color.FgBlue)
)

// Pretty renders the bag in compiler style, one diagnostic at a time:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	  <line> | <source line>
//	         | ^~~~~
//
// followed by notes and fix titles when enabled. Call bag.Sort() first
// for deterministic order. Color is applied only when opts.Color is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeader(w, fs, d, opts)
		writeContext(w, fs, d.Primary, opts)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
					displayPath(fs, n.Span.File, opts.PathMode), start.Line, start.Col, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(w, "  fix: %s\n", f.Title)
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics not shown\n", n)
	}
}

func writeHeader(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(fs, d.Primary.File, opts.PathMode),
		start.Line, start.Col, sev, d.Code.ID(), d.Message)
}

// writeContext prints the first source line of the span with a caret
// underline sized by display width, so wide runes underline correctly.
func writeContext(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts) {
	start, end := fs.Resolve(sp)
	file := fs.Get(sp.File)
	line := file.GetLine(start.Line)
	if line == "" && start.Line == 0 {
		return
	}

	lineNo := fmt.Sprintf("%4d", start.Line)
	bar := "|"
	if opts.Color {
		lineNo = gutter.Sprint(lineNo)
		bar = gutter.Sprint(bar)
	}
	fmt.Fprintf(w, "%s %s %s\n", lineNo, bar, expandTabs(line))

	pad := runewidth.StringWidth(expandTabs(prefixOf(line, start.Col)))
	width := underlineWidth(line, start, end)
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = errColor.Sprint(marker)
	}
	fmt.Fprintf(w, "     %s %s%s\n", bar, strings.Repeat(" ", pad), marker)
}

// prefixOf returns the text before a 1-based column, clamped to the line.
func prefixOf(line string, col uint32) string {
	if col == 0 {
		return ""
	}
	n := int(col) - 1
	if n > len(line) {
		n = len(line)
	}
	return line[:n]
}

// underlineWidth measures the display width of the underlined segment.
// Spans reaching past the first line underline to its end.
func underlineWidth(line string, start, end source.LineCol) int {
	from := int(start.Col) - 1
	if from < 0 || from > len(line) {
		return 1
	}
	to := len(line)
	if end.Line == start.Line && int(end.Col)-1 < to {
		to = int(end.Col) - 1
	}
	if to <= from {
		return 1
	}
	w := runewidth.StringWidth(line[from:to])
	if w < 1 {
		return 1
	}
	return w
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	p := fs.Get(id).Path
	if mode == PathModeBasename {
		return filepath.Base(p)
	}
	return p
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
