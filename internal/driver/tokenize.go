package driver

import (
	"os"

	"isl/internal/diag"
	"isl/internal/lexer"
	"isl/internal/source"
	"isl/internal/token"
)

// TokenizeResult is the outcome of scanning one input without parsing.
type TokenizeResult struct {
	Tokens  []token.Token
	Bag     *diag.Bag
	FileSet *source.FileSet
	File    *source.File
}

// Tokenize scans src and returns the token stream with any lexical
// diagnostics.
func Tokenize(name string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	return tokenizeIn(fs, id, opts)
}

// TokenizeFile reads and scans path. Read failures become an
// IO_READ_ERROR diagnostic.
func TokenizeFile(path string, opts Options) *TokenizeResult {
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
		return &TokenizeResult{Bag: bag, FileSet: fs}
	}
	id := fs.Add(path, content, 0)
	return tokenizeIn(fs, id, opts)
}

func tokenizeIn(fs *source.FileSet, id source.FileID, opts Options) *TokenizeResult {
	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &TokenizeResult{Bag: bag, FileSet: fs, File: file}

	rep := &diag.BagReporter{Bag: bag}
	toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: rep, Limits: opts.Limits})
	res.Tokens = toks
	if lerr != nil {
		reportLimit(bag, lerr, source.Span{File: id})
	}
	return res
}
