package parser

import (
	"testing"

	"isl/internal/diag"
	"isl/internal/lexer"
	"isl/internal/limits"
	"isl/internal/source"
	"isl/internal/testkit"
)

// Every parsed domain must carry well-formed spans: non-empty, inside the
// file, and covering the union of member spans.
func TestParsedSpansAreWellFormed(t *testing.T) {
	inputs := []struct {
		name string
		src  string
	}{
		{"full domain", fullDomain},
		{"minimal", "domain A {\n  version: \"1.0\"\n}\n"},
		{"two members", "domain B {\n  version: \"1.0\"\n  enum S { A, B }\n  entity E {\n    id: UUID\n  }\n}\n"},
	}

	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("test.isl", []byte(tc.src))
			bag := diag.NewBag(100)
			rep := &diag.BagReporter{Bag: bag}
			toks, limitErr := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: rep, Limits: limits.Default()})
			if limitErr != nil {
				t.Fatalf("unexpected limit error: %v", limitErr)
			}
			dom := Parse(toks, Options{Reporter: rep})
			if dom == nil {
				t.Fatal("expected a domain")
			}
			if err := testkit.CheckSpanInvariants(dom, fs.Get(id)); err != nil {
				t.Fatalf("span invariants violated: %v", err)
			}
		})
	}
}
