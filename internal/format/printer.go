package format

import (
	"isl/internal/ast"
)

// Options configures the printer.
type Options struct {
	// IndentWidth is the number of spaces per level. Zero selects 2.
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 2
	}
	return o
}

// Unparse renders a domain as canonical ISL text. The result reparses to
// a structurally equal tree.
func Unparse(dom *ast.Domain, opt Options) string {
	if dom == nil {
		return ""
	}
	opt = opt.withDefaults()
	p := &printer{w: newWriter(opt.IndentWidth)}
	p.printDomain(dom)
	return p.w.String()
}

type printer struct {
	w *writer
}
