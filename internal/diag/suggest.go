package diag

import (
	"sort"
)

// Suggest searches vocabulary for spellings close to word and returns up to
// max candidates ordered by edit distance, then alphabetically for stable
// output. Words shorter than three bytes never get suggestions; the allowed
// distance shrinks for short words to avoid false positives.
func Suggest(word string, vocabulary []string, max int) []string {
	if len(word) < 3 || max <= 0 {
		return nil
	}

	type cand struct {
		name string
		dist int
	}
	var cands []cand

	for _, v := range vocabulary {
		if len(v) < 3 {
			continue
		}
		// For short words require a first-character match.
		if (len(word) <= 5 || len(v) <= 5) && word[0] != v[0] {
			continue
		}
		maxDist := 2
		if min(len(word), len(v)) <= 4 {
			maxDist = 1
		}
		d := levenshtein(word, v)
		if d > 0 && d <= maxDist {
			cands = append(cands, cand{name: v, dist: d})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})

	if len(cands) > max {
		cands = cands[:max]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

// levenshtein computes the edit distance between two ASCII strings using
// a two-row table.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
