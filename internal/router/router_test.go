package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/screen"
)

type stubScreen struct {
	title     string
	inits     int
	refreshes int
	updates   int
}

func (s *stubScreen) Init() tea.Cmd                           { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

// refreshingScreen also reloads when uncovered.
type refreshingScreen struct{ *stubScreen }

func (s refreshingScreen) Refresh() tea.Cmd { s.refreshes++; return nil }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func sameTitles(t *testing.T, r *Router, want ...string) {
	t.Helper()
	got := titles(r)
	if len(got) != len(want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stack = %v, want %v", got, want)
		}
	}
}

func TestRouter_PushAndPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Init()
	if home.inits != 1 {
		t.Fatalf("root Init ran %d times", home.inits)
	}

	chat := &stubScreen{title: "chat"}
	r.Update(PushScreenMsg{Screen: chat})
	sameTitles(t, r, "home", "chat")
	if chat.inits != 1 {
		t.Error("pushed screen was not initialized")
	}

	r.Update(PopScreenMsg{})
	sameTitles(t, r, "home")

	r.Update(PopScreenMsg{})
	sameTitles(t, r, "home")
}

func TestRouter_ReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "play-1"})

	next := &stubScreen{title: "play-2"}
	r.Update(ReplaceScreenMsg{Screen: next})

	sameTitles(t, r, "home", "play-2")
	if next.inits != 1 {
		t.Error("replacement was not initialized")
	}
}

func TestRouter_PopToRoot(t *testing.T) {
	home := refreshingScreen{&stubScreen{title: "home"}}
	r := New(home)
	r.Push(&stubScreen{title: "quizzes"})
	r.Push(&stubScreen{title: "play"})

	r.Update(PopToRootMsg{})
	sameTitles(t, r, "home")
	if home.refreshes != 1 {
		t.Errorf("home refreshed %d times, want 1", home.refreshes)
	}

	r.Update(PopToRootMsg{})
	if home.refreshes != 1 {
		t.Error("pop at the root should not refresh")
	}
}

func TestRouter_PopRefreshesUncoveredScreen(t *testing.T) {
	quizzes := refreshingScreen{&stubScreen{title: "quizzes"}}
	r := New(&stubScreen{title: "home"})
	r.Push(quizzes)
	r.Push(&stubScreen{title: "play"})

	r.Update(PopScreenMsg{})
	if quizzes.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", quizzes.refreshes)
	}
}

func TestRouter_ForwardsOtherMessagesToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "top"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if top.updates != 1 || home.updates != 0 {
		t.Errorf("updates: top=%d home=%d", top.updates, home.updates)
	}
	if got := r.View(80, 24); got != "top" {
		t.Errorf("View = %q", got)
	}
}
