package community

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/taxonomy"
	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/layout"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

// CommunityScreen lists community events of the selected region.
type CommunityScreen struct {
	regions *region.Selector
	// filter indexes into filters; 0 shows every category.
	filter  int
	filters []taxonomy.Category
	errMsg  string
}

var _ screen.Screen = (*CommunityScreen)(nil)
var _ screen.KeyHintProvider = (*CommunityScreen)(nil)

// New creates a CommunityScreen.
func New(regions *region.Selector) *CommunityScreen {
	return &CommunityScreen{
		regions: regions,
		filters: append([]taxonomy.Category{""}, taxonomy.Categories()...),
	}
}

func (s *CommunityScreen) Init() tea.Cmd {
	return nil
}

func (s *CommunityScreen) Title() string {
	return "Community"
}

func (s *CommunityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Category"},
		{Key: "R", Description: "Next region"},
	}
}

func (s *CommunityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		s.filter = (s.filter + len(s.filters) - 1) % len(s.filters)
	case "right", "l", "tab":
		s.filter = (s.filter + 1) % len(s.filters)
	case "r", "R":
		s.nextRegion()
	}
	return s, nil
}

func (s *CommunityScreen) nextRegion() {
	profiles := s.regions.Profiles()
	cur := s.regions.Current()
	for i, p := range profiles {
		if p.Name != cur.Name {
			continue
		}
		next := profiles[(i+1)%len(profiles)]
		if _, err := s.regions.Select(context.Background(), next.Name); err != nil {
			s.errMsg = err.Error()
			return
		}
		s.errMsg = ""
		return
	}
}

// Category returns the active category filter, empty for all.
func (s *CommunityScreen) Category() taxonomy.Category {
	return s.filters[s.filter]
}

func (s *CommunityScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := s.regions.Current()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render(p.DisplayName()))
	b.WriteString("\n")
	if p.Stats != nil && p.Stats.Population > 0 {
		b.WriteString(theme.Subtitle.Width(cw).Render(fmt.Sprintf("Population %s · %s households (%s)",
			region.Thousands(p.Stats.Population), region.Thousands(p.Stats.Households), p.Stats.LastUpdated)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.renderTabs(cw))
	b.WriteString("\n\n")

	events := p.Events(s.Category(), "")
	if len(events) == 0 {
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("No community events for this category."))
	}
	for _, e := range events {
		b.WriteString(components.Card(renderEvent(e, cw-6), cw))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, layout.HeadLines(b.String(), max(height, 1)))
}

func (s *CommunityScreen) renderTabs(cw int) string {
	tabs := make([]string, len(s.filters))
	for i, c := range s.filters {
		label := "All"
		if c != "" {
			label = c.Label()
		}
		if i == s.filter {
			tabs[i] = theme.Badge.Render(label)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Padding(0, 1).Render(label)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(tabs, " "))
}

func renderEvent(e region.Event, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Title))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(e.Category.Label() + " / " + e.SubCategory.Label()))
	if e.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(width).Render(e.Description))
	}
	if e.URL != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Link).Render(e.URL))
	}
	return b.String()
}
