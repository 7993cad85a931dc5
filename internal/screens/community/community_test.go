package community

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/store"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newScreen(t *testing.T) (*CommunityScreen, *store.MemorySnapshotRepo) {
	t.Helper()
	repo := store.NewMemorySnapshotRepo()
	regions, err := region.NewSelector(context.Background(), repo, nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(regions), repo
}

func TestCommunityScreen_ShowsDefaultRegion(t *testing.T) {
	s, _ := newScreen(t)

	view := s.View(100, 60)
	if !strings.Contains(view, "Kagawa") {
		t.Error("expected default region in view")
	}
	if !strings.Contains(view, "Takamatsu Senior Community Cafe") {
		t.Error("expected region events")
	}
}

func TestCommunityScreen_CategoryFilter(t *testing.T) {
	s, _ := newScreen(t)
	if s.Category() != "" {
		t.Fatalf("initial filter = %q, want all", s.Category())
	}

	s.Update(specialKey(tea.KeyRight))
	if s.Category() != taxonomy.Categories()[0] {
		t.Errorf("filter = %q, want %q", s.Category(), taxonomy.Categories()[0])
	}

	s.Update(specialKey(tea.KeyLeft))
	s.Update(specialKey(tea.KeyLeft))
	want := taxonomy.Categories()[len(taxonomy.Categories())-1]
	if s.Category() != want {
		t.Errorf("filter = %q, want wrap to %q", s.Category(), want)
	}
}

func TestCommunityScreen_NextRegionPersists(t *testing.T) {
	s, repo := newScreen(t)

	s.Update(keyPress('r'))
	if got := s.regions.Current().Name; got != "Tokushima" {
		t.Fatalf("region = %q, want Tokushima", got)
	}

	var name string
	found, err := repo.Load(context.Background(), store.KeySelectedRegion, &name)
	if err != nil || !found || name != "Tokushima" {
		t.Errorf("persisted region = %q (found=%v, err=%v)", name, found, err)
	}
	if !strings.Contains(s.View(100, 60), "Awa Odori") {
		t.Error("expected Tokushima events")
	}
}
