// Package region holds the bundled region profiles and the persisted
// region selection.
package region

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/civiclink/civiclink/internal/taxonomy"
)

// DefaultRegion is selected when nothing has been persisted.
const DefaultRegion = "Kagawa"

// ErrUnknownRegion is returned when selecting a region without a profile.
var ErrUnknownRegion = errors.New("unknown region")

//go:embed regions.yaml
var regionsYAML []byte

// Profile describes one selectable region.
type Profile struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Stats *Stats `yaml:"stats"`

	// Community lists the region's community events.
	Community []Event `yaml:"events"`
}

// Stats is the regional statistics snapshot used to ground advice.
type Stats struct {
	LastUpdated      string    `yaml:"last_updated"`
	Source           string    `yaml:"source"`
	Summary          string    `yaml:"summary"`
	Tourism          CountList `yaml:"tourism"`
	Airport          CountList `yaml:"airport"`
	Population       int       `yaml:"population"`
	PopulationChange int       `yaml:"population_change"`
	Households       int       `yaml:"households"`
}

// CountList is a labelled list of counts.
type CountList struct {
	Label  string  `yaml:"label"`
	Counts []Count `yaml:"counts"`
}

// Count is one measured figure with its year-over-year change.
type Count struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	YoY   string `yaml:"yoy"`
}

// Total sums the counts.
func (l CountList) Total() int {
	var n int
	for _, c := range l.Counts {
		n += c.Count
	}
	return n
}

// Event is a community activity related to a category.
type Event struct {
	ID          string               `yaml:"id"`
	Title       string               `yaml:"title"`
	Description string               `yaml:"description"`
	URL         string               `yaml:"url"`
	Category    taxonomy.Category    `yaml:"category"`
	SubCategory taxonomy.SubCategory `yaml:"sub_category"`
}

// Events returns the events matching category and sub. An empty category
// matches every event; an empty sub matches every sub-category.
func (p Profile) Events(category taxonomy.Category, sub taxonomy.SubCategory) []Event {
	var out []Event
	for _, e := range p.Community {
		if category != "" && e.Category != category {
			continue
		}
		if sub != "" && e.SubCategory != sub {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Profiles parses the bundled profiles.
func Profiles() ([]Profile, error) {
	return parseProfiles(regionsYAML)
}

func parseProfiles(data []byte) ([]Profile, error) {
	var profiles []Profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse region profiles: %w", err)
	}
	if err := validateProfiles(profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func validateProfiles(profiles []Profile) error {
	if len(profiles) == 0 {
		return fmt.Errorf("no region profiles")
	}
	names := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if p.Name == "" {
			return fmt.Errorf("region profile without name")
		}
		if names[p.Name] {
			return fmt.Errorf("duplicate region %q", p.Name)
		}
		names[p.Name] = true

		ids := make(map[string]bool, len(p.Community))
		for _, e := range p.Community {
			if ids[e.ID] {
				return fmt.Errorf("region %s: duplicate event %q", p.Name, e.ID)
			}
			ids[e.ID] = true
			if !taxonomy.IsSubCategoryOf(e.Category, e.SubCategory) {
				return fmt.Errorf("region %s: event %s: %s/%s is not in the taxonomy",
					p.Name, e.ID, e.Category, e.SubCategory)
			}
		}
	}
	return nil
}
