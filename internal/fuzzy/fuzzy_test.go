package fuzzy

import (
	"strings"
	"testing"

	"isl/internal/diag"
	"isl/internal/source"
)

func fuzzyParse(t *testing.T, src string) *Result {
	t.Helper()
	fs := source.NewFileSet()
	res := Parse(fs, "test.isl", []byte(src), Options{})
	if res.Domain == nil {
		t.Fatal("fuzzy parse returned nil domain")
	}
	return res
}

func countCode(res *Result, code diag.Code) int {
	n := 0
	for _, d := range res.Bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

func TestPreprocessIdempotent(t *testing.T) {
	src := "domain Shop {\n" +
		"\towner: \"commerce\"\n" +
		"\tentity User {\n" +
		"\t\tname: string\n" +
		"\t\temail: String @maxLength(254)\n" +
		"\t}\n" +
		"\tenum Status { Active, Closed, }\n" +
		"}\n"

	once, notes := Preprocess(src)
	if len(notes) == 0 {
		t.Fatal("expected normalizations on messy input")
	}
	twice, again := Preprocess(once)
	if len(again) != 0 {
		t.Fatalf("second pass reported %d changes: %v", len(again), again)
	}
	if twice != once {
		t.Fatalf("second pass changed text:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}
}

func TestPreprocessNormalizations(t *testing.T) {
	src := "domain Shop {\n" +
		"\tentity User {\n" +
		"\t\tname: string\n" +
		"\t\temail: String @maxLength(254)\n" +
		"\t\tflags: { a: int, b: bool }\n" +
		"\t}\n" +
		"\tenum Status { Active, Closed, }\n" +
		"}\n"

	out, notes := Preprocess(src)

	for _, want := range []string{
		`version: "1.0"`,
		"name: String",
		"email: String { maxLength: 254 }",
		"a: Int, b: Bool",
		"Active, Closed }",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("normalized text missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\t") {
		t.Error("tabs survived normalization")
	}
	if len(notes) < 5 {
		t.Errorf("expected at least 5 normalization notes, got %d", len(notes))
	}
}

func TestFuzzyCleanInputIsStrict(t *testing.T) {
	res := fuzzyParse(t, `domain Shop {
  version: "1.0"
  entity User {
    id: UUID
    name: String
  }
}`)
	if res.Coverage != 1 {
		t.Errorf("coverage = %v, want 1", res.Coverage)
	}
	if len(res.Partials) != 0 {
		t.Errorf("expected no partial nodes, got %d", len(res.Partials))
	}
	if res.Domain.Name != "Shop" || len(res.Domain.Entities) != 1 {
		t.Errorf("domain not fully parsed: name=%q entities=%d",
			res.Domain.Name, len(res.Domain.Entities))
	}
}

func TestFuzzyNormalizesThenParsesStrictly(t *testing.T) {
	res := fuzzyParse(t, "domain Shop {\n"+
		"\tentity User {\n"+
		"\t\tname: string\n"+
		"\t}\n"+
		"}\n")
	if res.Coverage != 1 {
		t.Errorf("coverage = %v, want 1 after normalization", res.Coverage)
	}
	if res.Domain.Version != "1.0" {
		t.Errorf("injected version = %q, want \"1.0\"", res.Domain.Version)
	}
	if countCode(res, diag.FuzzyNormalized) == 0 {
		t.Error("expected FUZZY_NORMALIZED warnings")
	}
	if res.Bag.HasErrors() {
		t.Errorf("fuzzy parse of normalizable input reported errors: %v", res.Bag.Items())
	}
}

func TestFuzzyBrokenSiblingRecovered(t *testing.T) {
	res := fuzzyParse(t, `domain Shop {
  version: "1.0"
  entity Good {
    id: UUID
  }
  entity Bad {
    total: Money
  entity Next {
    id: UUID
  }
}`)

	if len(res.Partials) != 1 {
		t.Fatalf("partials = %d, want exactly 1", len(res.Partials))
	}
	p := res.Partials[0]
	if p.Guess != "entity" {
		t.Errorf("partial guess = %q, want \"entity\"", p.Guess)
	}
	if !strings.Contains(p.Raw, "Bad") {
		t.Errorf("partial raw text does not contain the broken block: %q", p.Raw)
	}
	if p.Reason == "" {
		t.Error("partial node has no reason")
	}

	names := make([]string, 0, 2)
	for _, e := range res.Domain.Entities {
		names = append(names, e.Name)
	}
	if len(names) != 2 || names[0] != "Good" || names[1] != "Next" {
		t.Errorf("recovered entities = %v, want [Good Next]", names)
	}
	if res.Domain.Version != "1.0" {
		t.Errorf("version = %q, want \"1.0\"", res.Domain.Version)
	}
	if res.Coverage <= 0 || res.Coverage >= 1 {
		t.Errorf("coverage = %v, want strictly between 0 and 1", res.Coverage)
	}
	if countCode(res, diag.FuzzyPartialNode) != 1 {
		t.Errorf("expected one FUZZY_PARTIAL_NODE notice, got %d",
			countCode(res, diag.FuzzyPartialNode))
	}
}

func TestFuzzyUnparsableEntityBecomesPartial(t *testing.T) {
	res := fuzzyParse(t, `domain Broken {
  version: "1.0"
  entity User { id: }
}`)

	if res.Domain.Name != "Broken" {
		t.Errorf("domain name = %q, want \"Broken\"", res.Domain.Name)
	}
	if len(res.Domain.Entities) != 0 {
		t.Errorf("entities = %d, want 0", len(res.Domain.Entities))
	}
	if len(res.Partials) != 1 {
		t.Fatalf("partials = %d, want 1", len(res.Partials))
	}
	if res.Partials[0].Guess != "entity" {
		t.Errorf("guess = %q, want \"entity\"", res.Partials[0].Guess)
	}
	if res.Coverage >= 1 {
		t.Errorf("coverage = %v, want < 1", res.Coverage)
	}
}

func TestFuzzySingleLineDomainBrokenEntity(t *testing.T) {
	res := fuzzyParse(t, `domain Foo { entity User { id: } }`)

	if res.Domain.Name != "Foo" {
		t.Errorf("domain name = %q, want \"Foo\"", res.Domain.Name)
	}
	if len(res.Domain.Entities) != 0 {
		t.Errorf("entities = %d, want 0", len(res.Domain.Entities))
	}
	if len(res.Partials) != 1 {
		t.Fatalf("partials = %d, want 1", len(res.Partials))
	}
	if res.Partials[0].Guess != "entity" {
		t.Errorf("guess = %q, want \"entity\"", res.Partials[0].Guess)
	}
	if !strings.Contains(res.Partials[0].Raw, "entity User") {
		t.Errorf("raw = %q, want the entity text", res.Partials[0].Raw)
	}
	if res.Coverage <= 0 || res.Coverage >= 1 {
		t.Errorf("coverage = %v, want in (0, 1)", res.Coverage)
	}
	if n := countCode(res, diag.FuzzyPartialNode); n != 1 {
		t.Errorf("partial-node warnings = %d, want 1", n)
	}
}

func TestFuzzyMembersOnHeaderLine(t *testing.T) {
	res := fuzzyParse(t, `domain Shop { version: "2.0"
  entity Broken {
    id:
  }
}`)

	if res.Domain.Name != "Shop" {
		t.Errorf("domain name = %q, want \"Shop\"", res.Domain.Name)
	}
	// The version sharing the header line must both be recovered and
	// suppress the default-version injection.
	if res.Domain.Version != "2.0" {
		t.Errorf("version = %q, want \"2.0\"", res.Domain.Version)
	}
	if len(res.Partials) != 1 {
		t.Fatalf("partials = %d, want 1", len(res.Partials))
	}
	if res.Partials[0].Guess != "entity" {
		t.Errorf("guess = %q, want \"entity\"", res.Partials[0].Guess)
	}
	if res.Coverage >= 1 {
		t.Errorf("coverage = %v, want < 1", res.Coverage)
	}
}

func TestFuzzyNeverFails(t *testing.T) {
	for _, src := range []string{
		"",
		"not a specification at all",
		"}}}{{{",
		"domain",
	} {
		fs := source.NewFileSet()
		res := Parse(fs, "junk.isl", []byte(src), Options{})
		if res.Domain == nil {
			t.Errorf("input %q: nil domain", src)
		}
		if res.Coverage < 0 || res.Coverage > 1 {
			t.Errorf("input %q: coverage %v out of range", src, res.Coverage)
		}
	}
}

func TestFuzzyHeaderlessMemberList(t *testing.T) {
	res := fuzzyParse(t, `entity User {
  id: UUID
}
entity User {`)
	if len(res.Domain.Entities) != 1 {
		t.Errorf("entities = %d, want 1", len(res.Domain.Entities))
	}
	if len(res.Partials) != 1 {
		t.Errorf("partials = %d, want 1", len(res.Partials))
	}
}

func TestFuzzyMixedMembersMerge(t *testing.T) {
	res := fuzzyParse(t, `domain Billing {
  version: "2.0"
  owner: "payments"
  type Money = Decimal
  enum Status { Open, Closed }
  behavior Charge {
    input {
      amount: Money
    }
  oops stray junk here
  policy Retry {
    when failed
    then retry
  }
}`)

	// The behavior block is cut at the next member and fails on its own;
	// everything else merges.
	if res.Domain.Version != "2.0" || res.Domain.Owner != "payments" {
		t.Errorf("version/owner = %q/%q", res.Domain.Version, res.Domain.Owner)
	}
	if len(res.Domain.Types) != 1 || len(res.Domain.Enums) != 1 {
		t.Errorf("types=%d enums=%d, want 1 each",
			len(res.Domain.Types), len(res.Domain.Enums))
	}
	if len(res.Domain.Policies) != 1 {
		t.Errorf("policies = %d, want 1", len(res.Domain.Policies))
	}
	if len(res.Partials) != 1 || res.Partials[0].Guess != "behavior" {
		t.Fatalf("partials = %+v, want one behavior partial", res.Partials)
	}
}
