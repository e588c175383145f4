package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"isl/internal/diag"
	"isl/internal/source"
)

func fixture() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	src := "domain Shop {\n  version: \"\"\n}\n"
	id := fs.AddVirtual("shop.isl", []byte(src))

	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynMissingVersion,
		Message:  "version must be a non-empty string",
		Primary:  source.Span{File: id, Start: 25, End: 27},
		Notes: []diag.Note{
			{Span: source.Span{File: id, Start: 0, End: 6}, Msg: "domain declared here"},
		},
		Fixes: []diag.Fix{
			{Title: "set a version", Edits: []diag.FixEdit{
				{Span: source.Span{File: id, Start: 25, End: 27}, NewText: `"1.0"`},
			}},
		},
	})
	return bag, fs
}

func TestPrettyPlain(t *testing.T) {
	bag, fs := fixture()
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()

	for _, want := range []string{
		"shop.isl:2:12: error SYN2010: version must be a non-empty string",
		"   2 |   version: \"\"",
		"^~",
		"note: shop.isl:1:1: domain declared here",
		"fix: set a version",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestPrettyBasenameMode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("some/dir/shop.isl", []byte("domain X {}\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.FuzzyNormalized,
		Message:  "tab indentation normalized to spaces",
		Primary:  source.Span{File: id, Start: 0, End: 6},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.HasPrefix(buf.String(), "shop.isl:1:1: warning") {
		t.Errorf("basename mode output = %q", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs := fixture()
	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2010" || d.Severity != "error" {
		t.Errorf("code/severity = %q/%q", d.Code, d.Severity)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 12 {
		t.Errorf("location = %+v, want line 2 col 12", d.Location)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("notes = %d fixes = %d, want 1 each", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].Edits[0].NewText != `"1.0"` {
		t.Errorf("fix edit = %+v", d.Fixes[0].Edits[0])
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("x.isl", []byte("domain X {}\n"))
	bag := diag.NewBag(0)
	for i := 0; i < 5; i++ {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SynUnexpectedToken,
			Message:  "unexpected token",
			Primary:  source.Span{File: id},
		})
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("truncated output has %d entries, want 2", len(out.Diagnostics))
	}
	if bag.Len() != 5 {
		t.Errorf("truncation must not mutate the bag: len = %d", bag.Len())
	}
}
