package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/screens/community"
	"github.com/civiclink/civiclink/internal/screens/conversation"
	"github.com/civiclink/civiclink/internal/screens/dashboard"
	"github.com/civiclink/civiclink/internal/screens/quizzes"
	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/layout"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Chat    *chat.Service // nil when AI features are unavailable
	Log     *chat.Log
	Stats   *stats.Aggregator
	Catalog *quiz.Catalog
	Regions *region.Selector
	Notice  string
}

// summary is what the stats bar shows.
type summary struct {
	problems    int
	quizzes     int
	topCategory string
	generating  bool
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	summary summary
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "ASK LINK", Key: "1", Action: push(func() screen.Screen {
			return conversation.New(deps.Chat, deps.Log)
		})},
		{Label: "QUIZZES", Key: "2", Action: push(func() screen.Screen {
			return quizzes.New(deps.Catalog, deps.Log)
		}), Disabled: deps.Catalog == nil},
		{Label: "DASHBOARD", Key: "3", Action: push(func() screen.Screen {
			return dashboard.New(deps.Stats, deps.Catalog)
		}), Disabled: deps.Stats == nil},
		{Label: "COMMUNITY", Key: "4", Action: push(func() screen.Screen {
			return community.New(deps.Regions)
		}), Disabled: deps.Regions == nil},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	h.summary = h.load()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the totals after returning from another screen.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.summary = h.load()
	return nil
}

func (h *HomeScreen) load() summary {
	var s summary
	if h.deps.Stats != nil {
		s.problems = h.deps.Stats.Total()
		if ranked := h.deps.Stats.Ranked(); len(ranked) > 0 && ranked[0].Count > 0 {
			s.topCategory = ranked[0].Category.Label()
		}
	}
	if h.deps.Catalog != nil {
		s.quizzes = h.deps.Catalog.Len()
		s.generating = h.deps.Catalog.Generating()
	}
	return s
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 30 || width < 100
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, renderStatsBar(h.summary, cw, compact))

	if h.deps.Notice != "" {
		sections = append(sections, renderNotice(h.deps.Notice, cw))
	}

	disabled := h.menu.DisabledSet()
	if height < 28 {
		sections = append(sections, renderMenuCompact(h.menu.Labels(), h.menu.Selected, cw, disabled))
	} else {
		sections = append(sections, renderMenu(h.menu.Labels(), h.menu.Selected, cw, disabled))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.summary.generating:
		return MascotThinking
	case h.summary.problems > 0:
		return MascotEngaged
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "1-4", Description: "Jump"},
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
