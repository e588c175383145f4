package diag

import (
	"testing"

	"isl/internal/source"
)

func TestBagCapDropsSilently(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 5; i++ {
		b.Add(NewError(SynUnexpectedToken, source.Span{Start: uint32(i)}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Dropped() != 3 {
		t.Fatalf("Dropped = %d, want 3", b.Dropped())
	}
}

func TestBagDefaultCap(t *testing.T) {
	b := NewBag(0)
	if b.Cap() != DefaultCap {
		t.Fatalf("Cap = %d, want %d", b.Cap(), DefaultCap)
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(NewWarning(SynMissingVersion, source.Span{Start: 20, End: 21}, "later"))
	b.Add(NewError(SynUnexpectedToken, source.Span{Start: 5, End: 6}, "earlier"))
	b.Sort()
	if b.Items()[0].Message != "earlier" {
		t.Fatalf("sort order wrong: %v", b.Items())
	}
}

func TestMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SynUnexpectedToken, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewError(SynUnexpectedToken, source.Span{}, "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Merge lost diagnostics: %d", a.Len())
	}
}

func TestCodeStableNames(t *testing.T) {
	if SynMissingVersion.String() != "MISSING_VERSION" {
		t.Errorf("SynMissingVersion = %q", SynMissingVersion.String())
	}
	if !LimitDepthExceeded.IsLimit() {
		t.Error("LimitDepthExceeded must be in the limit range")
	}
	if SynMissingVersion.IsLimit() {
		t.Error("MISSING_VERSION must not be in the limit range")
	}
}
