package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/region"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/screens/home"
	"github.com/civiclink/civiclink/internal/stats"
	"github.com/civiclink/civiclink/internal/ui/layout"
)

// Options holds the dependencies shared by all screens.
type Options struct {
	// Chat runs conversation turns. It is nil when no LLM provider is
	// configured; the log can still be browsed.
	Chat    *chat.Service
	Log     *chat.Log
	Stats   *stats.Aggregator
	Catalog *quiz.Catalog
	Regions *region.Selector

	// Notice is shown on the home screen, e.g. why AI features are off.
	Notice string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(home.Deps{
			Chat:    opts.Chat,
			Log:     opts.Log,
			Stats:   opts.Stats,
			Catalog: opts.Catalog,
			Regions: opts.Regions,
			Notice:  opts.Notice,
		})),
		opts: opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)
	// Bars wrap when hints overflow, so measure rather than assume.
	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) status() layout.Status {
	var st layout.Status
	if m.opts.Regions != nil {
		st.Region = m.opts.Regions.Current().DisplayName()
	}
	if m.opts.Stats != nil {
		st.Problems = m.opts.Stats.Total()
	}
	if m.opts.Catalog != nil {
		st.Quizzes = m.opts.Catalog.Len()
	}
	return st
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
