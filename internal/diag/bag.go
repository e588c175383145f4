package diag

import (
	"sort"
)

// DefaultCap bounds the number of stored diagnostics on pathological input.
const DefaultCap = 100

// Bag accumulates diagnostics for one parse call. Entries past the cap are
// silently dropped; the parse itself continues.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag creates a bag holding at most max diagnostics. max <= 0 selects
// DefaultCap.
func NewBag(max int) *Bag {
	if max <= 0 {
		max = DefaultCap
	}
	return &Bag{
		items: make([]Diagnostic, 0, 8),
		max:   max,
	}
}

// Add appends d unless the cap is reached. Returns false when dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap returns the configured maximum.
func (b *Bag) Cap() int {
	return b.max
}

// Dropped returns how many diagnostics were discarded past the cap.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether any stored diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the stored diagnostics. The returned slice aliases the
// bag's internal storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics from other, growing the cap if needed so
// nothing already collected is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders diagnostics by file, start, end, severity (descending),
// then code, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
