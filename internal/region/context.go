package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Context renders the prompt context for the region: its name and, when
// the profile carries statistics, the figures advice should build on.
func (p Profile) Context() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Region: %s\n", p.DisplayName())

	st := p.Stats
	if st == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\nRegional data for %s (as of %s):\n", p.DisplayName(), st.LastUpdated)
	if st.Summary != "" {
		fmt.Fprintf(&b, "- Economy: %s\n", st.Summary)
	}
	if len(st.Tourism.Counts) > 0 {
		fmt.Fprintf(&b, "- %s: %s\n", st.Tourism.Label, formatCounts(st.Tourism.Counts))
	}
	if len(st.Airport.Counts) > 0 {
		fmt.Fprintf(&b, "- %s: %s\n", st.Airport.Label, formatCounts(st.Airport.Counts))
	}
	if st.Population > 0 {
		fmt.Fprintf(&b, "- Estimated population: %s (%s from the previous month), %s households\n",
			Thousands(st.Population), signed(st.PopulationChange), Thousands(st.Households))
	}
	b.WriteString("Base your advice on these figures where they are relevant.\n")
	return b.String()
}

// DisplayName returns the label, falling back to the name.
func (p Profile) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

func formatCounts(counts []Count) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		if c.YoY != "" {
			parts[i] = fmt.Sprintf("%s %s (%s YoY)", c.Name, Thousands(c.Count), c.YoY)
		} else {
			parts[i] = fmt.Sprintf("%s %s", c.Name, Thousands(c.Count))
		}
	}
	return strings.Join(parts, ", ")
}

// Thousands formats n with comma separators.
func Thousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func signed(n int) string {
	if n > 0 {
		return "+" + Thousands(n)
	}
	return Thousands(n)
}
