// Package fuzzy parses specification text that a strict parse rejects.
// It first normalizes well-known foreign spellings (warning on every
// change), then tries a strict parse, and only when that fails falls
// back to block-level recovery: each domain member that parses on its
// own is merged into the result, and each one that does not survives as
// a PartialNode carrying its raw text. A fuzzy parse never fails and
// always yields a non-nil Domain.
package fuzzy

import (
	"strconv"
	"strings"

	"isl/internal/ast"
	"isl/internal/diag"
	"isl/internal/lexer"
	"isl/internal/limits"
	"isl/internal/parser"
	"isl/internal/source"
)

// shellVersion marks the synthetic wrapper used for block reparses so a
// block's own version declaration can be told apart from the shell's.
const shellVersion = "0.0-shell"

// Options configures a fuzzy parse.
type Options struct {
	// Limits holds the lexer resource ceilings. Zero ceilings disable
	// the corresponding checks.
	Limits limits.Limits
	// MaxDepth bounds parser recursion; 0 selects the parser default.
	MaxDepth int
}

// Result is the outcome of a fuzzy parse. Domain is never nil.
type Result struct {
	Domain *ast.Domain
	// Partials lists the blocks that could not be recovered, in source
	// order.
	Partials []*ast.PartialNode
	// Coverage is the fraction of non-whitespace source characters (after
	// normalization) incorporated into Domain, in [0, 1]. A clean strict
	// parse reports 1.
	Coverage float64
	// Normalized is the text actually parsed, after preprocessing.
	Normalized string
	// Bag holds normalization warnings, partial-node notices, and any
	// diagnostics from recovered blocks.
	Bag *diag.Bag
}

// Parse runs the fuzzy pipeline over src. The normalized text is added
// to fs under name so every span in the result resolves.
func Parse(fs *source.FileSet, name string, src []byte, opts Options) *Result {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	text, notes := Preprocess(text)

	id := fs.AddVirtual(name, []byte(text))
	file := fs.Get(id)
	// AddVirtual re-normalizes; keep our view identical to the file's.
	text = string(file.Content)

	bag := diag.NewBag(0)
	rep := &diag.BagReporter{Bag: bag}
	starts := lineStarts(text)
	for _, n := range notes {
		rep.Report(diag.FuzzyNormalized, diag.SevWarning, lineSpan(id, starts, text, n.Line),
			n.Message, nil, nil)
	}

	res := &Result{Normalized: text, Bag: bag}

	// Strict attempt first. Its diagnostics stay in a scratch bag: on
	// success they are kept, on failure the recovery pass produces its
	// own, more local, ones.
	scratch := diag.NewBag(0)
	if dom, ok := strictParse(file, scratch, opts); ok {
		bag.Merge(scratch)
		res.Domain = dom
		res.Coverage = 1
		return res
	}

	rec := &recovery{
		fs:     fs,
		fileID: id,
		text:   text,
		starts: starts,
		opts:   opts,
		bag:    bag,
		dom:    &ast.Domain{Base: ast.Base{Sp: source.Span{File: id, End: uint32(len(text))}}},
	}
	rec.run()

	res.Domain = rec.dom
	res.Partials = rec.partials
	res.Coverage = rec.coverage()
	return res
}

func strictParse(file *source.File, bag *diag.Bag, opts Options) (*ast.Domain, bool) {
	rep := &diag.BagReporter{Bag: bag}
	toks, lerr := lexer.Tokenize(file, lexer.Options{Reporter: rep, Limits: opts.Limits})
	if lerr != nil {
		return nil, false
	}
	dom := parser.Parse(toks, parser.Options{Reporter: rep, MaxDepth: opts.MaxDepth})
	if dom == nil || bag.HasErrors() {
		return nil, false
	}
	return dom, true
}

// recovery walks the normalized text line by line, extracting member
// blocks and reparsing each inside a synthetic domain shell.
type recovery struct {
	fs     *source.FileSet
	fileID source.FileID
	text   string
	starts []int
	opts   Options
	bag    *diag.Bag

	dom      *ast.Domain
	partials []*ast.PartialNode

	incorporated int
	shells       int
}

// siblingKeyword reports whether the leading word of a line marks the
// start of a new domain member. "invariants" is excluded since it also
// opens sections inside entities and behaviors. A keyword directly
// followed by a colon is a field or property, not a member — except
// version and owner, whose declarations are colon-shaped themselves.
func siblingKeyword(line string) (string, bool) {
	t := strings.TrimLeft(line, " \t")
	w := leadingWord(t)
	if w == "" || w == "invariants" {
		return "", false
	}
	if !memberKeyword(w) {
		return "", false
	}
	rest := strings.TrimLeft(t[len(w):], " \t")
	if strings.HasPrefix(rest, ":") && w != "version" && w != "owner" {
		return "", false
	}
	return w, true
}

var memberWords = map[string]bool{
	"version": true, "owner": true, "use": true, "import": true,
	"type": true, "enum": true, "entity": true, "behavior": true,
	"invariants": true, "policy": true, "view": true, "scenario": true,
	"chaos": true, "api": true, "storage": true, "workflow": true,
	"event": true, "handler": true, "screen": true, "config": true,
}

func memberKeyword(w string) bool { return memberWords[w] }

func (r *recovery) run() {
	lines := strings.Split(r.text, "\n")
	i := 0

	// Domain header, when present, names the accumulator. Headerless
	// text is scanned from the top as a bare member list.
	header := -1
	for ; i < len(lines); i++ {
		t := strings.TrimLeft(lines[i], " \t")
		if leadingWord(t) != "domain" {
			continue
		}
		rest := strings.TrimLeft(t[len("domain"):], " \t")
		r.dom.Name = leadingWord(rest)
		r.dom.NameSpan = lineSpan(r.fileID, r.starts, r.text, i)
		header = i
		break
	}
	switch {
	case header < 0:
		i = 0
	default:
		if tail, ok := r.splitHeader(lines[i]); ok {
			// Members sharing the header line go back into the member
			// scan as the line's remaining text.
			lines[i] = tail
		} else {
			r.countLine(lines[i])
			i++
		}
	}

	for i < len(lines) {
		word, ok := siblingKeyword(lines[i])
		if !ok {
			if t := strings.TrimLeft(lines[i], " \t"); t == "}" {
				r.countLine(lines[i])
			} else if leadingWord(t) == "invariants" {
				word, ok = "invariants", true
			}
		}
		if !ok {
			i++
			continue
		}
		next := r.extractBlock(lines, i)
		block := strings.Join(lines[i:next], "\n")
		r.reparse(block, word, i)
		i = next
	}
}

// splitHeader separates the `domain Name {` prefix from any members
// sharing the header line. The prefix, plus closing braces that belong
// to the domain itself rather than to a member, count as incorporated;
// the member text is returned for the block scan.
func (r *recovery) splitHeader(line string) (string, bool) {
	idx := indexOfUnquoted(line, '{')
	if idx < 0 {
		return "", false
	}
	tail := line[idx+1:]
	if strings.TrimSpace(tail) == "" {
		return "", false
	}
	r.incorporated += weight(line[:idx+1])
	for braceBalance(tail) < 0 {
		cut := strings.LastIndexByte(tail, '}')
		if cut < 0 {
			break
		}
		tail = tail[:cut] + tail[cut+1:]
		r.incorporated++
	}
	return tail, true
}

// braceBalance counts a line's brace nesting delta, skipping strings
// and line comments the same way extractBlock does.
func braceBalance(line string) int {
	depth := 0
	for k := 0; k < len(line); k++ {
		switch line[k] {
		case '"':
			k = skipString(line, k)
		case '/':
			if k+1 < len(line) && line[k+1] == '/' {
				return depth
			}
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return depth
}

// extractBlock returns the line index one past the block starting at
// line i. A block with an opening brace runs to its balanced closer;
// when the braces never balance it is cut short at the next sibling
// member so a broken block cannot swallow the rest of the file.
func (r *recovery) extractBlock(lines []string, i int) int {
	depth := 0
	opened := false
	for j := i; j < len(lines); j++ {
		if opened && depth > 0 && j > i {
			if _, sib := siblingKeyword(lines[j]); sib {
				return j
			}
		}
		for k := 0; k < len(lines[j]); k++ {
			switch lines[j][k] {
			case '"':
				k = skipString(lines[j], k)
			case '/':
				if k+1 < len(lines[j]) && lines[j][k+1] == '/' {
					k = len(lines[j])
				}
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return j + 1
		}
		if !opened {
			// Single-line member (version, owner, use, type, ...).
			return j + 1
		}
	}
	return len(lines)
}

func skipString(line string, k int) int {
	for k++; k < len(line); k++ {
		if line[k] == '\\' {
			k++
		} else if line[k] == '"' {
			return k
		}
	}
	return len(line)
}

// reparse wraps block in a synthetic domain shell and parses it in
// isolation. Success merges the members into the accumulator; failure
// records a PartialNode.
func (r *recovery) reparse(block, guess string, line int) {
	r.shells++
	shell := "domain __fuzzy {\nversion: \"" + shellVersion + "\"\n" + block + "\n}\n"
	name := r.fs.Get(r.fileID).Path + "#recovered" + strconv.Itoa(r.shells)
	sid := r.fs.AddVirtual(name, []byte(shell))

	scratch := diag.NewBag(0)
	dom, ok := strictParse(r.fs.Get(sid), scratch, r.opts)
	sp := blockSpan(r.fileID, r.starts, r.text, line, strings.Count(block, "\n")+1)

	if !ok {
		reason := "block did not parse"
		for _, d := range scratch.Items() {
			if d.Severity >= diag.SevError {
				reason = d.Message
				break
			}
		}
		p := &ast.PartialNode{Base: ast.Base{Sp: sp}, Raw: block, Guess: guess, Reason: reason}
		r.partials = append(r.partials, p)
		r.bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.FuzzyPartialNode,
			Message:  "could not recover " + guess + " block: " + reason,
			Primary:  sp,
		})
		return
	}

	r.incorporated += weight(block)
	r.merge(dom)
	// Recovered-block warnings (other than the shell's bookkeeping) are
	// worth keeping.
	for _, d := range scratch.Items() {
		if d.Code == diag.SynMissingVersion {
			continue
		}
		r.bag.Add(d)
	}
}

func (r *recovery) merge(src *ast.Domain) {
	d := r.dom
	if src.Version != shellVersion && src.Version != "" {
		d.Version = src.Version
		d.VersionSpan = src.VersionSpan
	}
	if src.Owner != "" {
		d.Owner = src.Owner
	}
	d.Uses = append(d.Uses, src.Uses...)
	d.Imports = append(d.Imports, src.Imports...)
	d.Types = append(d.Types, src.Types...)
	d.Enums = append(d.Enums, src.Enums...)
	d.Entities = append(d.Entities, src.Entities...)
	d.Behaviors = append(d.Behaviors, src.Behaviors...)
	d.Invariants = append(d.Invariants, src.Invariants...)
	d.Policies = append(d.Policies, src.Policies...)
	d.Views = append(d.Views, src.Views...)
	d.Scenarios = append(d.Scenarios, src.Scenarios...)
	d.ChaosSpecs = append(d.ChaosSpecs, src.ChaosSpecs...)
	d.APIs = append(d.APIs, src.APIs...)
	d.Storages = append(d.Storages, src.Storages...)
	d.Workflows = append(d.Workflows, src.Workflows...)
	d.Events = append(d.Events, src.Events...)
	d.Handlers = append(d.Handlers, src.Handlers...)
	d.Screens = append(d.Screens, src.Screens...)
	d.Configs = append(d.Configs, src.Configs...)
}

func (r *recovery) countLine(line string) {
	r.incorporated += weight(line)
}

func (r *recovery) coverage() float64 {
	total := weight(r.text)
	if total == 0 {
		return 1
	}
	c := float64(r.incorporated) / float64(total)
	if c > 1 {
		c = 1
	}
	return c
}

// weight counts the non-whitespace bytes of s; coverage is measured
// over these so blank lines and indentation do not dilute it.
func weight(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			n++
		}
	}
	return n
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineSpan(id source.FileID, starts []int, text string, line int) source.Span {
	return blockSpan(id, starts, text, line, 1)
}

func blockSpan(id source.FileID, starts []int, text string, line, nLines int) source.Span {
	if line >= len(starts) {
		n := uint32(len(text))
		return source.Span{File: id, Start: n, End: n}
	}
	start := starts[line]
	end := len(text)
	if last := line + nLines; last < len(starts) {
		end = starts[last] - 1
	}
	return source.Span{File: id, Start: uint32(start), End: uint32(end)}
}
