package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screens/community"
	"github.com/civiclink/civiclink/internal/screens/conversation"
	"github.com/civiclink/civiclink/internal/screens/dashboard"
	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/taxonomy"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	regions, err := region.NewSelector(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return Deps{
		Log:     chat.NewLog(nil, nil),
		Stats:   stats.New(nil, nil),
		Catalog: quiz.NewCatalog(nil, nil, nil),
		Regions: regions,
	}
}

func TestHomeScreen_EnterOpensConversation(t *testing.T) {
	h := New(testDeps(t))

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*conversation.ConversationScreen); !ok {
		t.Errorf("pushed %T, want conversation screen", push.Screen)
	}
}

func TestHomeScreen_DashboardEntry(t *testing.T) {
	h := New(testDeps(t))

	h.Update(specialKey(tea.KeyDown))
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*dashboard.DashboardScreen); !ok {
		t.Errorf("pushed %T, want dashboard screen", push.Screen)
	}
}

func TestHomeScreen_ShortcutKey(t *testing.T) {
	h := New(testDeps(t))

	_, cmd := h.Update(tea.KeyPressMsg{Code: '4', Text: "4"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push := cmd().(router.PushScreenMsg)
	if _, ok := push.Screen.(*community.CommunityScreen); !ok {
		t.Errorf("pushed %T, want community screen", push.Screen)
	}
	if h.menu.Selected != 3 {
		t.Errorf("selected = %d, want 3", h.menu.Selected)
	}
}

func TestHomeScreen_QuizzesDisabledWithoutCatalog(t *testing.T) {
	deps := testDeps(t)
	deps.Catalog = nil
	h := New(deps)

	if !h.menu.Items[1].Disabled {
		t.Error("expected QUIZZES to be disabled")
	}
	h.Update(specialKey(tea.KeyDown))
	if h.menu.Selected != 2 {
		t.Errorf("selected = %d, want the item after the disabled one", h.menu.Selected)
	}
}

func TestHomeScreen_RefreshUpdatesSummary(t *testing.T) {
	deps := testDeps(t)
	h := New(deps)
	if h.mascot() != MascotIdle {
		t.Error("expected idle mascot with no problems")
	}

	deps.Stats.Record(context.Background(), taxonomy.CategoryTourism, taxonomy.SubNature)
	h.Refresh()

	if h.summary.problems != 1 {
		t.Errorf("problems = %d, want 1", h.summary.problems)
	}
	if h.summary.topCategory != "Tourism" {
		t.Errorf("top category = %q", h.summary.topCategory)
	}
	if h.mascot() != MascotEngaged {
		t.Error("expected engaged mascot")
	}
}

func TestHomeScreen_ViewShowsNotice(t *testing.T) {
	deps := testDeps(t)
	deps.Notice = "AI features are off"
	h := New(deps)

	for _, size := range [][2]int{{120, 40}, {80, 24}} {
		view := h.View(size[0], size[1])
		if !strings.Contains(view, "AI features are off") {
			t.Errorf("%dx%d: notice missing", size[0], size[1])
		}
		if !strings.Contains(view, "ASK LINK") {
			t.Errorf("%dx%d: menu missing", size[0], size[1])
		}
	}
}
