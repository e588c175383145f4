package langver

import (
	"fmt"
	"strings"
)

// rule is one text-level rewrite applied during a migration step. Apply
// returns the rewritten source and whether anything changed.
type rule struct {
	name  string
	apply func(src string) (string, bool)
}

// steps maps a source version to the rules lifting text to the next
// revision. Every step also rewrites the version directive, so the rule
// lists only carry the revision-specific changes.
var steps = map[Version][]rule{
	// 1.1 made the version directive mandatory.
	V1_0: {
		{name: "insert-version-directive", apply: insertDirective},
	},
	// 1.2 dropped tolerance for trailing commas before closers.
	V1_1: {
		{name: "strip-trailing-commas", apply: stripTrailingCommas},
	},
}

// Migrate rewrites src from revision from to revision to, walking every
// adjacent step in between, and returns the migrated text together with
// the names of the rules that actually changed it. Downgrades and
// unknown versions are errors; from == to is a no-op.
func Migrate(src string, from, to Version) (string, []string, error) {
	fi, ti := index(from), index(to)
	if fi < 0 {
		return "", nil, fmt.Errorf("unsupported source version %q", from)
	}
	if ti < 0 {
		return "", nil, fmt.Errorf("unsupported target version %q", to)
	}
	if fi > ti {
		return "", nil, fmt.Errorf("cannot migrate backwards from %s to %s", from, to)
	}

	var applied []string
	for i := fi; i < ti; i++ {
		for _, r := range steps[supported[i]] {
			out, changed := r.apply(src)
			if changed {
				src = out
				applied = append(applied, r.name)
			}
		}
	}
	if fi != ti {
		out, changed := setDirective(src, to)
		if changed {
			src = out
			applied = append(applied, "update-version-directive")
		}
	}
	return src, applied, nil
}

// insertDirective adds `@version` at the top of the file when no
// directive precedes the domain header.
func insertDirective(src string) (string, bool) {
	if _, ok := ExtractDirective(src); ok {
		return src, false
	}
	return `@version "1.0"` + "\n" + src, true
}

// setDirective rewrites the existing directive (or inserts one) to name v.
func setDirective(src string, v Version) (string, bool) {
	want := fmt.Sprintf("@version %q", string(v))
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "//") {
			continue
		}
		if strings.HasPrefix(t, "@version") {
			if t == want {
				return src, false
			}
			lines[i] = want
			return strings.Join(lines, "\n"), true
		}
		break
	}
	return want + "\n" + src, true
}

// stripTrailingCommas removes commas whose next significant character
// closes a brace, bracket, or paren. String literals are untouched.
func stripTrailingCommas(src string) (string, bool) {
	var b strings.Builder
	b.Grow(len(src))
	changed := false
	inStr := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\n':
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
				changed = true
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String(), changed
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
