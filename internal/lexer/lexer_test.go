package lexer

import (
	"testing"

	"isl/internal/diag"
	"isl/internal/limits"
	"isl/internal/source"
	"isl/internal/token"
)

func tokenizeString(t *testing.T, src string) ([]token.Token, *diag.Bag, *limits.LimitError) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.isl", []byte(src))
	bag := diag.NewBag(64)
	toks, lerr := Tokenize(fs.Get(id), Options{
		Reporter: &diag.BagReporter{Bag: bag},
		Limits:   limits.Default(),
	})
	return toks, bag, lerr
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func TestTokenizeBasicDomain(t *testing.T) {
	toks, bag, lerr := tokenizeString(t, `domain Foo { version: "1.0.0" entity User { id: UUID } }`)
	if lerr != nil {
		t.Fatalf("limit error: %v", lerr)
	}
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	want := []token.Kind{
		token.KwDomain, token.Ident, token.LBrace,
		token.KwVersion, token.Colon, token.StringLit,
		token.KwEntity, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident,
		token.RBrace, token.RBrace, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeDurations(t *testing.T) {
	tests := []struct {
		src  string
		text string
	}{
		{"200ms", "200ms"},
		{"15.minutes", "15.minutes"},
		{"1.5s", "1.5s"},
		{"30.days", "30.days"},
	}
	for _, tt := range tests {
		toks, bag, _ := tokenizeString(t, tt.src)
		if bag.Len() != 0 {
			t.Errorf("%q: diagnostics %v", tt.src, bag.Items())
			continue
		}
		if toks[0].Kind != token.DurationLit || toks[0].Text != tt.text {
			t.Errorf("%q -> %v %q, want DurationLit %q", tt.src, toks[0].Kind, toks[0].Text, tt.text)
		}
	}
}

func TestDottedNonUnitStaysMemberAccess(t *testing.T) {
	toks, _, _ := tokenizeString(t, "15.total")
	want := []token.Kind{token.NumberLit, token.Dot, token.Ident, token.EOF}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", got, want)
		}
	}
}

func TestBadDurationUnit(t *testing.T) {
	toks, bag, _ := tokenizeString(t, "200xs")
	if toks[0].Kind != token.Invalid {
		t.Errorf("kind = %v, want Invalid", toks[0].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadDurationUnit {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestUnterminatedStringContinuesScan(t *testing.T) {
	toks, bag, _ := tokenizeString(t, "\"oops\nentity")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	// Scanning resumes after the broken literal.
	var sawEntity bool
	for _, tk := range toks {
		if tk.Kind == token.KwEntity {
			sawEntity = true
		}
	}
	if !sawEntity {
		t.Error("scan must continue past the broken string")
	}
}

func TestInvalidEscapeIsNonFatal(t *testing.T) {
	toks, bag, _ := tokenizeString(t, `"a\qb"`)
	if toks[0].Kind != token.StringLit {
		t.Errorf("kind = %v, want StringLit despite bad escape", toks[0].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadEscape {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestRegexVsDivision(t *testing.T) {
	// After ':' a slash opens a regex.
	toks, bag, _ := tokenizeString(t, "pattern: /a+[/]b/")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if toks[2].Kind != token.RegexLit {
		t.Fatalf("tokens = %v, want RegexLit at index 2", kinds(toks))
	}

	// After an operand a slash is division.
	toks, _, _ = tokenizeString(t, "a / b")
	if toks[1].Kind != token.Slash {
		t.Fatalf("tokens = %v, want Slash at index 1", kinds(toks))
	}
}

func TestCommentsBecomeTrivia(t *testing.T) {
	toks, bag, _ := tokenizeString(t, "// header\n/* block /* nested */ */\nentity")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.KwEntity {
		t.Fatalf("first significant token = %v", toks[0].Kind)
	}
	var comments int
	for _, tr := range toks[0].Leading {
		if tr.IsComment() {
			comments++
		}
	}
	if comments != 2 {
		t.Errorf("leading comments = %d, want 2", comments)
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	_, bag, _ := tokenizeString(t, "/* never closed")
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
}

func TestStringLimitShortCircuits(t *testing.T) {
	fs := source.NewFileSet()
	long := `"` + string(make([]byte, 100)) + `" entity`
	id := fs.AddVirtual("big.isl", []byte(long))
	lim := limits.Default()
	lim.MaxStringLen = 10
	toks, lerr := Tokenize(fs.Get(id), Options{Limits: lim})
	if lerr == nil || lerr.Kind != limits.LimitString {
		t.Fatalf("limit error = %v", lerr)
	}
	// The rest of the file is not tokenized.
	for _, tk := range toks {
		if tk.Kind == token.KwEntity {
			t.Error("tokenization must stop at the limit violation")
		}
	}
}

func TestTokenCountLimit(t *testing.T) {
	fs := source.NewFileSet()
	src := ""
	for i := 0; i < 50; i++ {
		src += "a "
	}
	id := fs.AddVirtual("many.isl", []byte(src))
	lim := limits.Default()
	lim.MaxTokens = 10
	_, lerr := Tokenize(fs.Get(id), Options{Limits: lim})
	if lerr == nil || lerr.Kind != limits.LimitTokens {
		t.Fatalf("limit error = %v", lerr)
	}
}

func TestOperatorGreediness(t *testing.T) {
	toks, _, _ := tokenizeString(t, "-> => == != <= >= = < >")
	want := []token.Kind{
		token.Arrow, token.FatArrow, token.EqEq, token.BangEq,
		token.LtEq, token.GtEq, token.Assign, token.Lt, token.Gt, token.EOF,
	}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokens = %v, want %v", got, want)
		}
	}
}
