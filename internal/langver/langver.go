// Package langver tracks supported specification-language revisions: the
// compatibility matrix between a checker's version and a document's, the
// lightweight directive scan, and rule-based text migration between
// adjacent revisions.
package langver

import (
	"strings"
)

// Version identifies a language revision, e.g. "1.1".
type Version string

const (
	V1_0 Version = "1.0"
	V1_1 Version = "1.1"
	V1_2 Version = "1.2"
)

// supported is ordered oldest to newest; index order drives the
// compatibility matrix.
var supported = []Version{V1_0, V1_1, V1_2}

// Supported returns the known language versions, oldest first. The
// returned slice is a copy.
func Supported() []Version {
	out := make([]Version, len(supported))
	copy(out, supported)
	return out
}

// Latest returns the newest supported version.
func Latest() Version {
	return supported[len(supported)-1]
}

// IsSupported reports whether v names a known revision.
func IsSupported(v Version) bool {
	return index(v) >= 0
}

func index(v Version) int {
	for i, s := range supported {
		if s == v {
			return i
		}
	}
	return -1
}

// Compatible reports whether a checker speaking the checker revision
// accepts a document written for the doc revision. A checker accepts
// its own revision and every older one; it never accepts a newer one.
func Compatible(checker, doc Version) bool {
	ci, di := index(checker), index(doc)
	if ci < 0 || di < 0 {
		return false
	}
	return di <= ci
}

// ExtractDirective scans the lines preceding the first domain
// declaration for a leading `@version "X.Y"` directive. The scan is
// purely textual and independent of the tokenizer, so it works on
// files the parser would reject. It reports false when no directive
// appears before the domain header (or end of input).
func ExtractDirective(src string) (Version, bool) {
	for _, line := range strings.Split(src, "\n") {
		t := strings.TrimSpace(line)
		switch {
		case t == "" || strings.HasPrefix(t, "//"):
			continue
		case strings.HasPrefix(t, "@version"):
			rest := strings.TrimSpace(t[len("@version"):])
			if v, ok := unquote(rest); ok {
				return Version(v), true
			}
			return "", false
		case strings.HasPrefix(t, "domain"):
			return "", false
		}
	}
	return "", false
}

func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' {
		return "", false
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", false
	}
	return s[1 : 1+end], true
}
