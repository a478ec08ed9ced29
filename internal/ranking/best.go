package ranking

import "sort"

// Entry is one fixture's main pick in a cross-fixture ranking.
type Entry struct {
	FixtureID int64  `json:"fixture_id"`
	Home      string `json:"home"`
	Away      string `json:"away"`
	Pick      Pick   `json:"pick"`
}

// BestOfDay sorts entries by value, then confidence, then fixture id, and
// keeps the first n. n <= 0 keeps all.
func BestOfDay(entries []Entry, n int) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Pick.Value != b.Pick.Value {
			return a.Pick.Value > b.Pick.Value
		}
		if a.Pick.Confidence != b.Pick.Confidence {
			return a.Pick.Confidence > b.Pick.Confidence
		}
		return a.FixtureID < b.FixtureID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
