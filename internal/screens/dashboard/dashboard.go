package dashboard

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/taxonomy"
	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/layout"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

// DashboardScreen shows the problem statistics per category.
type DashboardScreen struct {
	agg      *stats.Aggregator
	catalog  *quiz.Catalog
	snapshot stats.Stats
	ranked   []stats.Ranking
	quizzes  int
	selected int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a DashboardScreen. catalog may be nil.
func New(agg *stats.Aggregator, catalog *quiz.Catalog) *DashboardScreen {
	s := &DashboardScreen{agg: agg, catalog: catalog}
	s.load()
	return s
}

func (s *DashboardScreen) load() {
	s.snapshot = s.agg.Snapshot()
	s.ranked = s.snapshot.Ranked()
	if s.catalog != nil {
		s.quizzes = s.catalog.Len()
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "↑↓", Description: "Category"}}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.ranked)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	total := s.snapshot.Total()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render("Your community problems"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).
		Render(fmt.Sprintf("%d problems categorized · %d quizzes created", total, s.quizzes)))
	b.WriteString("\n\n")

	if total == 0 {
		b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).
			Render("Nothing recorded yet. Ask LINK about a problem to start your statistics."))
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
	}

	for i, r := range s.ranked {
		bar := components.NewProgressBar(r.Category.Label(), r.Share, cw-2)
		bar.LabelWidth = 20
		bar.Suffix = fmt.Sprintf("%3d  %3.0f%%", r.Count, r.Share*100)
		bar.Color = theme.SeriesColor(slices.Index(taxonomy.Categories(), r.Category))

		prefix := "  "
		if i == s.selected {
			prefix = theme.Selected.Render("▸ ")
		}
		b.WriteString(prefix + bar.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(components.Card(s.renderBreakdown(cw-6), cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// renderBreakdown lists the sub-category counts of the selected category.
func (s *DashboardScreen) renderBreakdown(width int) string {
	r := s.ranked[s.selected]
	cs := s.snapshot[r.Category]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.Category.Label()))
	for _, sub := range taxonomy.SubCategoriesOf(r.Category) {
		n := cs.SubCategories[sub]
		share := 0.0
		if cs.Count > 0 {
			share = float64(n) / float64(cs.Count)
		}
		bar := components.NewProgressBar(sub.Label(), share, width)
		bar.LabelWidth = 20
		bar.Suffix = fmt.Sprintf("%3d", n)
		b.WriteString("\n")
		b.WriteString(bar.View())
	}
	return b.String()
}
