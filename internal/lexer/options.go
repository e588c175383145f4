package lexer

import (
	"isl/internal/diag"
	"isl/internal/limits"
	"isl/internal/source"
)

// Options configures one lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; scanning
	// continues either way.
	Reporter diag.Reporter
	// Limits holds the resource ceilings enforced mid-scan (string and
	// identifier length, token count). Zero ceilings disable a check.
	Limits limits.Limits
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil, nil)
	}
}
