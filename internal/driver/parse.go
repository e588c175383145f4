// Package driver is the high-level entry point: it wires the file set,
// lexer, parser, and fuzzy recovery into single-call operations for the
// CLI and for embedding.
package driver

import (
	"os"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/fuzzy"
	"isl/internal/lexer"
	"isl/internal/limits"
	"isl/internal/parser"
	"isl/internal/source"
	"isl/internal/token"
)

// Options configures a parse call.
type Options struct {
	// MaxDiagnostics bounds the bag; <= 0 selects diag.DefaultCap.
	MaxDiagnostics int
	// Limits holds the lexer resource ceilings. The zero value disables
	// every check; use limits.Default() for the standard ones.
	Limits limits.Limits
	// MaxDepth bounds parser recursion; 0 selects the parser default.
	MaxDepth int
	// Cache, when non-nil, lets directory walks skip files whose content
	// hash already has a stored outcome.
	Cache *DiskCache
}

// Result is the outcome of parsing one input.
type Result struct {
	// OK is true when no error-severity diagnostics were produced.
	OK bool
	// Domain is the parsed tree. Non-nil whenever tokenization ran; nil
	// only after an I/O failure or a resource-limit violation.
	Domain  *ast.Domain
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
	File    *source.File
}

// FuzzyResult extends Result with the fuzzy-mode outcome.
type FuzzyResult struct {
	Result
	// Coverage is the fraction of source incorporated into Domain.
	Coverage float64
	// Partials lists the blocks that survived only as raw text.
	Partials []*ast.PartialNode
}

// Parse parses src strictly. name labels the input in spans and
// rendered diagnostics.
func Parse(name string, src []byte, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return parseIn(fs, id, opts)
}

// ParseFile reads and parses path. A read failure becomes an
// IO_READ_ERROR diagnostic rather than a bare error, so callers render
// it like any other failure.
func ParseFile(path string, opts Options) *Result {
	fs := source.NewFileSet()
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadError,
			Message:  "failed to read file: " + err.Error(),
		})
		return &Result{Bag: bag, FileSet: fs}
	}
	id := fs.Add(path, content, 0)
	return parseIn(fs, id, opts)
}

func parseIn(fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &Result{Bag: bag, FileSet: fs, File: file}

	if err := opts.Limits.CheckInput(file.Content); err != nil {
		reportLimit(bag, err.(*limits.LimitError), source.Span{File: id})
		return res
	}

	rep := &diag.BagReporter{Bag: bag}
	toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: rep, Limits: opts.Limits})
	res.Tokens = toks
	if lerr != nil {
		reportLimit(bag, lerr, source.Span{File: id})
		return res
	}

	res.Domain = parser.Parse(toks, parser.Options{Reporter: rep, MaxDepth: opts.MaxDepth})
	res.OK = !bag.HasErrors()
	return res
}

// ParseFuzzy parses src in fuzzy mode: normalize, recover, never fail.
func ParseFuzzy(name string, src []byte, opts Options) *FuzzyResult {
	fs := source.NewFileSet()
	out := fuzzy.Parse(fs, name, src, fuzzy.Options{Limits: opts.Limits, MaxDepth: opts.MaxDepth})

	res := &FuzzyResult{
		Result: Result{
			OK:      !out.Bag.HasErrors(),
			Domain:  out.Domain,
			Bag:     out.Bag,
			FileSet: fs,
		},
		Coverage: out.Coverage,
		Partials: out.Partials,
	}
	if fs.Len() > 0 {
		res.File = fs.Get(0)
	}
	return res
}

// ParseFuzzyFile is ParseFile for fuzzy mode.
func ParseFuzzyFile(path string, opts Options) *FuzzyResult {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		bag := diag.NewBag(opts.MaxDiagnostics)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadError,
			Message:  "failed to read file: " + err.Error(),
		})
		return &FuzzyResult{Result: Result{Bag: bag, FileSet: source.NewFileSet(), Domain: &ast.Domain{}}}
	}
	return ParseFuzzy(path, content, opts)
}

// reportLimit maps a lexer/input limit violation onto its diagnostic
// code. Limit failures carry no partial AST.
func reportLimit(bag *diag.Bag, err *limits.LimitError, sp source.Span) {
	var code diag.Code
	switch err.Kind {
	case limits.LimitInput:
		code = diag.LimitInputSize
	case limits.LimitString:
		code = diag.LimitStringLen
	case limits.LimitIdent:
		code = diag.LimitIdentLen
	case limits.LimitTokens:
		code = diag.LimitTokenCount
	case limits.LimitDepth:
		code = diag.LimitDepthExceeded
	default:
		code = diag.LimitInfo
	}
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  err.Error(),
		Primary:  sp,
	})
}
