package taxonomy

import (
	"fmt"
	"slices"
	"strings"
)

// validate performs all structural checks on a category table.
// Returns a combined error describing all problems found, or nil if valid.
func validate(cats []Category, table map[Category][]SubCategory, declared []SubCategory) error {
	var errs []string

	if len(cats) == 0 {
		errs = append(errs, "no categories declared")
	}
	if !slices.Contains(cats, CatchAll) {
		errs = append(errs, fmt.Sprintf("catch-all category %q is not declared", CatchAll))
	}

	seen := make(map[Category]bool, len(cats))
	for _, c := range cats {
		if seen[c] {
			errs = append(errs, fmt.Sprintf("duplicate category: %q", c))
		}
		seen[c] = true

		subs, ok := table[c]
		if !ok {
			errs = append(errs, fmt.Sprintf("category %q has no sub-category set", c))
			continue
		}
		if len(subs) == 0 {
			errs = append(errs, fmt.Sprintf("category %q has an empty sub-category set", c))
		}
		if !slices.Contains(subs, CatchAllSub) {
			errs = append(errs, fmt.Sprintf("category %q is missing the catch-all %q", c, CatchAllSub))
		}

		subSeen := make(map[SubCategory]bool, len(subs))
		for _, s := range subs {
			if subSeen[s] {
				errs = append(errs, fmt.Sprintf("category %q lists %q twice", c, s))
			}
			subSeen[s] = true
			if !slices.Contains(declared, s) {
				errs = append(errs, fmt.Sprintf("category %q references undeclared sub-category %q", c, s))
			}
		}
	}

	for c := range table {
		if !seen[c] {
			errs = append(errs, fmt.Sprintf("sub-category table references undeclared category %q", c))
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("taxonomy validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
