// Package stats keeps cumulative counts of classified civic problems per
// category and sub-category.
package stats

import (
	"maps"
	"slices"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

// CategoryStats is the tally for one category.
type CategoryStats struct {
	Count         int                          `json:"count"`
	SubCategories map[taxonomy.SubCategory]int `json:"subCategories"`
}

// Stats maps every category to its tally. A Stats produced by this package
// always has a key for each category and, inside it, a key for each of the
// category's sub-categories.
type Stats map[taxonomy.Category]CategoryStats

// Zero returns stats with every category and sub-category present at 0.
func Zero() Stats {
	s := make(Stats)
	for _, c := range taxonomy.Categories() {
		subs := make(map[taxonomy.SubCategory]int)
		for _, sc := range taxonomy.SubCategoriesOf(c) {
			subs[sc] = 0
		}
		s[c] = CategoryStats{SubCategories: subs}
	}
	return s
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	for c, cs := range s {
		out[c] = CategoryStats{
			Count:         cs.Count,
			SubCategories: maps.Clone(cs.SubCategories),
		}
	}
	return out
}

// Total sums the category counts.
func (s Stats) Total() int {
	total := 0
	for _, cs := range s {
		total += cs.Count
	}
	return total
}

// merge overlays persisted counts onto zero stats. Keys that are not part of
// the taxonomy are dropped; missing keys stay at zero.
func merge(persisted Stats) Stats {
	out := Zero()
	for c, cs := range persisted {
		base, ok := out[c]
		if !ok {
			continue
		}
		base.Count = max(cs.Count, 0)
		for sc, n := range cs.SubCategories {
			if _, ok := base.SubCategories[sc]; ok {
				base.SubCategories[sc] = max(n, 0)
			}
		}
		out[c] = base
	}
	return out
}

// Ranking is one row of a category leaderboard.
type Ranking struct {
	Category taxonomy.Category
	Count    int
	Share    float64 // fraction of the total, 0 when the total is 0
}

// Ranked returns the categories ordered by count, highest first. Ties keep
// taxonomy display order.
func (s Stats) Ranked() []Ranking {
	total := s.Total()
	out := make([]Ranking, 0, len(s))
	for _, c := range taxonomy.Categories() {
		r := Ranking{Category: c, Count: s[c].Count}
		if total > 0 {
			r.Share = float64(r.Count) / float64(total)
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(a, b Ranking) int {
		return b.Count - a.Count
	})
	return out
}
