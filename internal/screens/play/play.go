package play

import (
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/layout"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

// PlayScreen plays one quiz through a quiz.Session.
type PlayScreen struct {
	catalog  *quiz.Catalog
	session  *quiz.Session
	feedback quiz.Feedback
	errMsg   string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen for q. catalog is used to move on to the next
// quiz and may be nil.
func New(catalog *quiz.Catalog, q quiz.DynamicQuiz) *PlayScreen {
	s := &PlayScreen{
		catalog: catalog,
		session: quiz.NewSession(),
	}
	if err := s.session.Start(q); err != nil {
		s.errMsg = err.Error()
	}
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	if q, ok := s.session.Quiz(); ok {
		return q.Title
	}
	return "Quiz"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.session.Phase() {
	case quiz.PhasePlaying:
		return []layout.KeyHint{
			{Key: "↑↓/1-4", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
		}
	case quiz.PhaseAnswered:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}}
	case quiz.PhaseFinished:
		hints := []layout.KeyHint{{Key: "R", Description: "Play again"}}
		if s.nextQuiz() != nil {
			hints = append(hints, layout.KeyHint{Key: "N", Description: "Next quiz"})
		}
		return append(hints,
			layout.KeyHint{Key: "Enter", Description: "Catalog"},
			layout.KeyHint{Key: "H", Description: "Home"},
		)
	}
	return nil
}

// State exposes the session state.
func (s *PlayScreen) State() quiz.SessionState {
	return s.session.State()
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	switch s.session.Phase() {
	case quiz.PhasePlaying:
		s.handlePlaying(key)

	case quiz.PhaseAnswered:
		if key == "enter" || key == "space" || key == " " {
			s.apply(s.session.Next())
		}

	case quiz.PhaseFinished:
		switch key {
		case "r", "R":
			s.apply(s.session.Restart())
		case "n", "N":
			if next := s.nextQuiz(); next != nil {
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: New(s.catalog, *next)}
				}
			}
		case "enter":
			s.session.ExitToCatalog()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "h", "H":
			s.session.ExitToCatalog()
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}

	default:
		if key == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *PlayScreen) handlePlaying(key string) {
	st := s.session.State()
	current := -1
	if st.Selected != nil {
		current = *st.Selected
	}

	switch key {
	case "up", "k":
		if current > 0 {
			s.apply(s.session.SelectOption(current - 1))
		} else if current < 0 {
			s.apply(s.session.SelectOption(0))
		}
	case "down", "j":
		if current < quiz.OptionCount-1 {
			s.apply(s.session.SelectOption(current + 1))
		}
	case "1", "2", "3", "4":
		s.apply(s.session.SelectOption(int(key[0] - '1')))
	case "enter":
		fb, err := s.session.Submit()
		s.apply(err)
		if fb.Applied {
			s.feedback = fb
		}
	}
}

// apply records an unexpected transition error. Such errors mean a key
// arrived in a phase that does not accept it and are otherwise harmless.
func (s *PlayScreen) apply(err error) {
	if err != nil {
		slog.Debug("quiz transition rejected", "error", err)
	}
}

// nextQuiz returns the catalog entry after the current quiz.
func (s *PlayScreen) nextQuiz() *quiz.DynamicQuiz {
	if s.catalog == nil {
		return nil
	}
	cur, ok := s.session.Quiz()
	if !ok {
		return nil
	}
	all := s.catalog.Quizzes()
	for i, q := range all {
		if q.ID == cur.ID && i+1 < len(all) {
			return &all[i+1]
		}
	}
	return nil
}

func (s *PlayScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Message(width, "Error: "+s.errMsg+"\n\n  Press Enter to go back.", lipgloss.NewStyle().Foreground(theme.Error))
	}

	st := s.session.State()
	if st.Finished {
		return s.renderFinished(width, st)
	}

	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Question %d/%d", st.Index+1, st.Total))
	score := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score %d", st.Score))
	gap := max(cw-lipgloss.Width(info)-lipgloss.Width(score), 1)
	b.WriteString(info + strings.Repeat(" ", gap) + score)
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", float64(st.Index)/float64(max(st.Total, 1)), cw).View())
	b.WriteString("\n\n")

	mc := components.NewMultiChoice(q.Question, q.Options, q.CorrectIndex)
	if st.Selected != nil {
		mc.Selected = *st.Selected
	}
	mc.Revealed = st.ExplanationVisible
	b.WriteString(mc.View(cw))

	if st.ExplanationVisible {
		b.WriteString("\n")
		verdict := theme.Incorrect.Render("Not quite.")
		if mc.IsCorrect() {
			verdict = theme.Correct.Render("Correct!")
		}
		b.WriteString(verdict)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(q.Explanation))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *PlayScreen) renderFinished(width int, st quiz.SessionState) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Quiz complete!"))
	b.WriteString("\n\n")

	pct := 0.0
	if st.Total > 0 {
		pct = float64(st.Score) / float64(st.Total)
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("You answered %d of %d correctly (%.0f%%).", st.Score, st.Total, pct*100)))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Score", pct, min(width-8, 50))
	bar.Color = theme.Success
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	return b.String()
}
