package dashboard

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestDashboardScreen_EmptyState(t *testing.T) {
	s := New(stats.New(nil, nil), nil)

	view := s.View(100, 30)
	if !strings.Contains(view, "Nothing recorded yet") {
		t.Error("expected empty-state hint")
	}
	if !strings.Contains(view, "0 problems categorized") {
		t.Error("expected zero totals")
	}
}

func TestDashboardScreen_RanksCategories(t *testing.T) {
	agg := stats.New(nil, nil)
	ctx := context.Background()
	agg.Record(ctx, taxonomy.CategoryEducation, taxonomy.SubSchool)
	agg.Record(ctx, taxonomy.CategoryEducation, taxonomy.SubSchool)
	agg.Record(ctx, taxonomy.CategoryTourism, taxonomy.SubNature)

	s := New(agg, nil)
	if s.ranked[0].Category != taxonomy.CategoryEducation {
		t.Fatalf("top category = %s, want Education", s.ranked[0].Category)
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "3 problems categorized") {
		t.Error("expected total of 3")
	}
	// The breakdown card follows the selected category.
	if !strings.Contains(view, "Lifelong Learning") {
		t.Error("expected Education breakdown")
	}

	s.Update(keyPress('j'))
	if s.selected != 1 {
		t.Fatalf("selected = %d, want 1", s.selected)
	}
	if !strings.Contains(s.View(100, 40), "Nature") {
		t.Error("expected Tourism breakdown")
	}

	s.Update(keyPress('k'))
	s.Update(keyPress('k'))
	if s.selected != 0 {
		t.Errorf("selected = %d, want 0", s.selected)
	}
}
