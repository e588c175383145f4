package fix

import (
	"strings"
	"testing"

	"isl/internal/diag"
	"isl/internal/source"
)

func diagWithFix(id source.FileID, start, end uint32, title, newText string) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynMissingVersion,
		Message:  "version must be a non-empty string",
		Primary:  source.Span{File: id, Start: start, End: end},
		Fixes: []diag.Fix{
			{Title: title, Edits: []diag.FixEdit{
				{Span: source.Span{File: id, Start: start, End: end}, NewText: newText},
			}},
		},
	}
}

func TestApplyInsertsVersion(t *testing.T) {
	fs := source.NewFileSet()
	src := "domain Shop {\n}\n"
	id := fs.Add("shop.isl", []byte(src), 0)

	// Insertion right after the opening brace.
	d := diagWithFix(id, 13, 13, "insert version declaration", "\n  version: \"1.0\"")

	res, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	out := string(res.Outputs[id])
	want := "domain Shop {\n  version: \"1.0\"\n}\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestApplyOnceStopsAfterFirst(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("x.isl", []byte("aa bb cc\n"), 0)

	diags := []diag.Diagnostic{
		diagWithFix(id, 0, 2, "first", "AA"),
		diagWithFix(id, 3, 5, "second", "BB"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "first" {
		t.Fatalf("applied = %+v, want only the first fix", res.Applied)
	}
	if got := string(res.Outputs[id]); got != "AA bb cc\n" {
		t.Errorf("output = %q", got)
	}
}

func TestApplySkipsConflicting(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("x.isl", []byte("aa bb cc\n"), 0)

	diags := []diag.Diagnostic{
		diagWithFix(id, 0, 5, "wide", "XXXXX"),
		diagWithFix(id, 3, 5, "nested", "YY"),
	}
	res, err := Apply(fs, diags, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Title != "wide" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || !strings.Contains(res.Skipped[0].Reason, "conflicts") {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplyRejectsStaleSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("x.isl", []byte("short\n"), 0)

	d := diagWithFix(id, 10, 20, "stale", "zzz")
	_, err := Apply(fs, []diag.Diagnostic{d}, ApplyOptions{Mode: ApplyModeAll})
	if err != ErrNoFixes {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
}

func TestApplyNoFixes(t *testing.T) {
	fs := source.NewFileSet()
	fs.Add("x.isl", []byte("domain X {}\n"), 0)

	_, err := Apply(fs, []diag.Diagnostic{{Message: "no fixes here"}}, ApplyOptions{})
	if err != ErrNoFixes {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
}

func TestApplyEditsBackToFront(t *testing.T) {
	content := []byte("one two three")
	edits := []diag.FixEdit{
		{Span: source.Span{Start: 0, End: 3}, NewText: "ONE"},
		{Span: source.Span{Start: 8, End: 13}, NewText: "THREE"},
	}
	out, err := ApplyEdits(content, edits)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ONE two THREE" {
		t.Errorf("out = %q", out)
	}

	if _, err := ApplyEdits(content, []diag.FixEdit{
		{Span: source.Span{Start: 0, End: 5}, NewText: "x"},
		{Span: source.Span{Start: 3, End: 8}, NewText: "y"},
	}); err == nil {
		t.Error("expected overlap error")
	}
}
