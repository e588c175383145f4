package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"isl/internal/diag"
	"isl/internal/limits"
)

const goodDomain = `domain Shop {
  version: "1.0"
  entity User {
    id: UUID
    name: String
  }
}`

func TestParseString(t *testing.T) {
	res := Parse("test.isl", []byte(goodDomain), Options{})
	if !res.OK {
		t.Fatalf("expected OK, diagnostics: %v", res.Bag.Items())
	}
	if res.Domain == nil || res.Domain.Name != "Shop" {
		t.Fatalf("domain not parsed: %+v", res.Domain)
	}
	if len(res.Domain.Entities) != 1 {
		t.Errorf("entities = %d, want 1", len(res.Domain.Entities))
	}
	if len(res.Tokens) == 0 {
		t.Error("token stream missing from result")
	}
}

func TestParseKeepsASTOnError(t *testing.T) {
	res := Parse("test.isl", []byte(`domain Shop { entity User { id: UUID } }`), Options{})
	if res.OK {
		t.Fatal("expected failure for missing version")
	}
	if res.Domain == nil || len(res.Domain.Entities) != 1 {
		t.Fatal("partial AST discarded on diagnosed error")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.SynMissingVersion {
			found = true
		}
	}
	if !found {
		t.Errorf("missing MISSING_VERSION diagnostic: %v", res.Bag.Items())
	}
}

func TestParseFileReadFailure(t *testing.T) {
	res := ParseFile(filepath.Join(t.TempDir(), "absent.isl"), Options{})
	if res.OK {
		t.Fatal("expected failure for unreadable file")
	}
	if res.Domain != nil {
		t.Error("expected nil domain after I/O failure")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOReadError {
		t.Errorf("diagnostics = %v, want one IO_READ_ERROR", items)
	}
}

func TestInputLimitShortCircuits(t *testing.T) {
	lim := limits.Default()
	lim.MaxInputBytes = 8
	res := Parse("big.isl", []byte(goodDomain), Options{Limits: lim})
	if res.OK || res.Domain != nil {
		t.Fatal("limit violation must not produce a partial AST")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.LimitInputSize {
		t.Errorf("diagnostics = %v, want one INPUT_TOO_LARGE", items)
	}
}

func TestParseFuzzyRecovers(t *testing.T) {
	res := ParseFuzzy("test.isl", []byte(`domain Shop {
  version: "1.0"
  entity User { id: }
}`), Options{})
	if res.Domain == nil {
		t.Fatal("fuzzy parse returned nil domain")
	}
	if len(res.Partials) != 1 {
		t.Errorf("partials = %d, want 1", len(res.Partials))
	}
	if res.Coverage >= 1 {
		t.Errorf("coverage = %v, want < 1", res.Coverage)
	}
}

func writeSpec(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "b.isl", goodDomain)
	writeSpec(t, dir, "a.isl", goodDomain)
	writeSpec(t, dir, filepath.Join("sub", "c.isl"), goodDomain)
	writeSpec(t, dir, "ignored.txt", "not a spec")

	_, results, err := ParseDir(context.Background(), dir, 4, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.isl", "b.isl", filepath.Join("sub", "c.isl")}
	if len(results) != len(want) {
		t.Fatalf("results = %d, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Path != want[i] {
			t.Errorf("results[%d].Path = %q, want %q", i, r.Path, want[i])
		}
		if !r.OK {
			t.Errorf("%s: expected OK, got %v", r.Path, r.Bag.Items())
		}
	}
}

func TestParseDirUsesCache(t *testing.T) {
	dir := t.TempDir()
	writeSpec(t, dir, "ok.isl", goodDomain)
	writeSpec(t, dir, "bad.isl", `domain X { entity `)

	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, err := ParseDir(context.Background(), dir, 1, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := ParseDir(context.Background(), dir, 1, opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first {
		if first[i].Cached {
			t.Errorf("%s: first run unexpectedly cached", first[i].Path)
		}
		if !second[i].Cached {
			t.Errorf("%s: second run missed the cache", second[i].Path)
		}
		if first[i].OK != second[i].OK {
			t.Errorf("%s: cached verdict %v != fresh %v",
				first[i].Path, second[i].OK, first[i].OK)
		}
		if first[i].Bag.Len() != second[i].Bag.Len() {
			t.Errorf("%s: cached diagnostics %d != fresh %d",
				first[i].Path, second[i].Bag.Len(), first[i].Bag.Len())
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := Digest{1, 2, 3}
	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "x.isl",
		OK:     false,
		Diags: []CachedDiag{
			{Code: 2010, Severity: 2, Start: 4, End: 9, Message: "missing version"},
		},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get = (%v, %v), want hit", hit, err)
	}
	if out.Path != in.Path || out.OK != in.OK || len(out.Diags) != 1 {
		t.Fatalf("payload mismatch: %+v", out)
	}
	if out.Diags[0] != in.Diags[0] {
		t.Errorf("diag mismatch: %+v != %+v", out.Diags[0], in.Diags[0])
	}

	var miss DiskPayload
	if hit, _ := cache.Get(Digest{9, 9}, &miss); hit {
		t.Error("unexpected hit for unknown key")
	}
}
