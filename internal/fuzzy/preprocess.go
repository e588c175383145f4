package fuzzy

import (
	"fmt"
	"strings"
)

// Note records one normalization the preprocessor applied. Line is
// zero-based into the normalized text; the caller resolves it to a span.
type Note struct {
	Line    int
	Message string
}

// scalarCanon maps foreign lowercase scalar spellings to the canonical
// capitalized primitives.
var scalarCanon = map[string]string{
	"string":    "String",
	"int":       "Int",
	"integer":   "Int",
	"float":     "Float",
	"double":    "Float",
	"bool":      "Bool",
	"boolean":   "Bool",
	"uuid":      "UUID",
	"decimal":   "Decimal",
	"date":      "Date",
	"datetime":  "DateTime",
	"timestamp": "Timestamp",
}

// Preprocess applies the source-to-source normalizations, in a fixed
// order, and reports every change. Running it on its own output yields
// no further changes.
func Preprocess(src string) (string, []Note) {
	var notes []Note

	src, notes = normalizeTabs(src, notes)
	src, notes = stripTrailingCommas(src, notes)
	src, notes = canonicalizeScalars(src, notes)
	src, notes = rewriteInlineAnnotations(src, notes)
	src, notes = injectVersion(src, notes)

	return src, notes
}

// normalizeTabs replaces leading tab indentation with two spaces per tab.
func normalizeTabs(src string, notes []Note) (string, []Note) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		j := 0
		for j < len(line) && (line[j] == '\t' || line[j] == ' ') {
			j++
		}
		indent := line[:j]
		if !strings.ContainsRune(indent, '\t') {
			continue
		}
		lines[i] = strings.ReplaceAll(indent, "\t", "  ") + line[j:]
		notes = append(notes, Note{Line: i, Message: "tab indentation normalized to spaces"})
	}
	return strings.Join(lines, "\n"), notes
}

// stripTrailingCommas removes a comma whose next significant character
// is a closer. String literals are left alone.
func stripTrailingCommas(src string, notes []Note) (string, []Note) {
	var b strings.Builder
	b.Grow(len(src))
	line := 0
	inStr := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\n':
			line++
			inStr = false
		case inStr:
			if c == '\\' && i+1 < len(src) {
				b.WriteByte(c)
				i++
				c = src[i]
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == ',':
			if closerFollows(src, i+1) {
				notes = append(notes, Note{Line: line, Message: "trailing comma removed"})
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String(), notes
}

func closerFollows(src string, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '}', ')', ']':
			return true
		default:
			return false
		}
	}
	return false
}

// canonicalizeScalars rewrites lowercase scalar type names appearing in
// type position (the first word after a colon) to their canonical
// capitalized forms. Every colon on a line is considered, so inline
// struct types normalize too.
func canonicalizeScalars(src string, notes []Note) (string, []Note) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		out, changed := canonLine(line)
		if !changed {
			continue
		}
		lines[i] = out
		notes = append(notes, Note{Line: i, Message: "scalar type names normalized to canonical capitalized forms"})
	}
	return strings.Join(lines, "\n"), notes
}

func canonLine(line string) (string, bool) {
	var b strings.Builder
	changed := false
	rest := line
	for {
		colon := indexOfUnquoted(rest, ':')
		if colon < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:colon+1])
		rest = rest[colon+1:]
		trimmed := strings.TrimLeft(rest, " ")
		word := leadingWord(trimmed)
		canon, ok := scalarCanon[word]
		if !ok {
			continue
		}
		b.WriteString(rest[:len(rest)-len(trimmed)])
		b.WriteString(canon)
		rest = trimmed[len(word):]
		changed = true
	}
	return b.String(), changed
}

// hasVersionDecl reports whether an unquoted `version:` declaration
// appears anywhere on the line. Members may share a line with the
// domain header, so a leading-word check is not enough.
func hasVersionDecl(line string) bool {
	inStr := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inStr:
			if c == '\\' {
				i++
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return false
		case c == 'v' && (i == 0 || !isWordByte(line[i-1])):
			if strings.HasPrefix(line[i:], "version") {
				rest := strings.TrimLeft(line[i+len("version"):], " \t")
				if strings.HasPrefix(rest, ":") {
					return true
				}
			}
		}
	}
	return false
}

func indexOfUnquoted(line string, target byte) int {
	inStr := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inStr:
			if c == '\\' {
				i++
			} else if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == target:
			return i
		}
	}
	return -1
}

func leadingWord(s string) string {
	i := 0
	for i < len(s) && (isWordByte(s[i])) {
		i++
	}
	return s[:i]
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_'
}

// rewriteInlineAnnotations converts the single-annotation field
// shorthand `name: Type @ann(arg)` into the canonical constraint-block
// form `name: Type { ann: arg }`. A bare `@ann` becomes `{ ann: true }`.
// Lines that already carry a block, or more than one annotation, are
// left for the parser.
func rewriteInlineAnnotations(src string, notes []Note) (string, []Note) {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		at := indexOfUnquoted(line, '@')
		if at < 0 {
			continue
		}
		// Skip the @version directive and multi-annotation lines.
		if strings.Count(line, "@") != 1 || strings.HasPrefix(strings.TrimSpace(line), "@") {
			continue
		}
		if indexOfUnquoted(line, '{') >= 0 || indexOfUnquoted(line, ':') < 0 {
			continue
		}
		name := leadingWord(line[at+1:])
		if name == "" {
			continue
		}
		rest := strings.TrimRight(line[at+1+len(name):], " \t")
		var value string
		switch {
		case rest == "":
			value = "true"
		case strings.HasPrefix(rest, "(") && strings.HasSuffix(rest, ")"):
			value = strings.TrimSpace(rest[1 : len(rest)-1])
		default:
			continue // trailing content that is not a plain argument list
		}
		if value == "" || strings.ContainsRune(value, ',') {
			continue
		}
		head := strings.TrimRight(line[:at], " \t")
		lines[i] = head + " { " + name + ": " + value + " }"
		notes = append(notes, Note{Line: i,
			Message: fmt.Sprintf("inline annotation @%s rewritten to a constraint block", name)})
	}
	return strings.Join(lines, "\n"), notes
}

// injectVersion inserts a default version declaration right after the
// domain header when the text declares none.
func injectVersion(src string, notes []Note) (string, []Note) {
	lines := strings.Split(src, "\n")
	for _, line := range lines {
		if hasVersionDecl(line) {
			return src, notes
		}
	}
	for i, line := range lines {
		if leadingWord(strings.TrimLeft(line, " \t")) != "domain" {
			continue
		}
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i+1]...)
		out = append(out, `  version: "1.0"`)
		out = append(out, lines[i+1:]...)
		// Earlier notes referenced pre-injection line numbers.
		for k := range notes {
			if notes[k].Line > i {
				notes[k].Line++
			}
		}
		notes = append(notes, Note{Line: i + 1, Message: `missing version, default "1.0" injected`})
		return strings.Join(out, "\n"), notes
	}
	return src, notes
}
