package diag

import (
	"reflect"
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"entity", "entiy", 1},
		{"behavior", "behaviour", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggest(t *testing.T) {
	vocab := []string{"entity", "behavior", "invariants", "version", "policy"}

	got := Suggest("entiy", vocab, 3)
	if !reflect.DeepEqual(got, []string{"entity"}) {
		t.Errorf("Suggest(entiy) = %v", got)
	}

	// Too short for suggestions.
	if got := Suggest("en", vocab, 3); got != nil {
		t.Errorf("short words must not suggest, got %v", got)
	}

	// Nothing close enough.
	if got := Suggest("workflow", vocab, 3); got != nil {
		t.Errorf("distant words must not suggest, got %v", got)
	}
}

func TestSuggestOrderedByDistance(t *testing.T) {
	vocab := []string{"county", "count", "counts"}
	got := Suggest("countx", vocab, 3)
	if len(got) == 0 || got[0] != "count" && got[0] != "county" {
		t.Fatalf("Suggest = %v", got)
	}
	// Distance-1 candidates must precede distance-2 ones.
	if len(got) >= 2 && levenshtein("countx", got[0]) > levenshtein("countx", got[1]) {
		t.Errorf("not ordered by distance: %v", got)
	}
}
