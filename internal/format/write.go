package format

import "strings"

// writer accumulates canonical output with indentation tracking. Indent
// is emitted lazily at the start of each line so blank lines stay blank.
type writer struct {
	buf         strings.Builder
	indentLevel int
	indentWidth int
	atLineStart bool
}

func newWriter(indentWidth int) *writer {
	return &writer{indentWidth: indentWidth, atLineStart: true}
}

func (w *writer) String() string {
	return w.buf.String()
}

func (w *writer) emitIndent() {
	if !w.atLineStart {
		return
	}
	w.atLineStart = false
	for i := 0; i < w.indentLevel*w.indentWidth; i++ {
		w.buf.WriteByte(' ')
	}
}

func (w *writer) str(s string) {
	if s == "" {
		return
	}
	w.emitIndent()
	w.buf.WriteString(s)
}

func (w *writer) line(s string) {
	w.str(s)
	w.newline()
}

func (w *writer) newline() {
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

func (w *writer) indent() {
	w.indentLevel++
}

func (w *writer) dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// open writes `head {` and indents.
func (w *writer) open(head string) {
	w.line(head + " {")
	w.indent()
}

// close dedents and writes the closing brace.
func (w *writer) close() {
	w.dedent()
	w.line("}")
}
