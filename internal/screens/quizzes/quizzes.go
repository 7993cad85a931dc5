package quizzes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/quiz"
	"github.com/civiclink/civiclink/internal/router"
	"github.com/civiclink/civiclink/internal/screen"
	"github.com/civiclink/civiclink/internal/screens/play"
	"github.com/civiclink/civiclink/internal/ui/layout"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

// section is the list that has the cursor.
type section int

const (
	sectionQuizzes section = iota
	sectionSeeds
)

// generatedMsg is sent when a quiz generation finishes.
type generatedMsg struct {
	Quiz quiz.DynamicQuiz
	Err  error
}

type tickMsg time.Time

// QuizzesScreen lists the quiz catalog and the conversations a new quiz
// can be generated from.
type QuizzesScreen struct {
	catalog *quiz.Catalog
	log     *chat.Log

	quizzes []quiz.DynamicQuiz
	seeds   []quiz.Seed
	focus   section
	cursor  [2]int

	generating bool
	dots       int
	status     string
	errMsg     string
}

var _ screen.Screen = (*QuizzesScreen)(nil)
var _ screen.KeyHintProvider = (*QuizzesScreen)(nil)
var _ screen.Refresher = (*QuizzesScreen)(nil)

// New creates a QuizzesScreen. log may be nil.
func New(catalog *quiz.Catalog, log *chat.Log) *QuizzesScreen {
	s := &QuizzesScreen{catalog: catalog, log: log}
	s.reload()
	if len(s.quizzes) == 0 && len(s.seeds) > 0 {
		s.focus = sectionSeeds
	}
	return s
}

func (s *QuizzesScreen) Init() tea.Cmd {
	return nil
}

// Refresh reloads the lists when returning from a quiz.
func (s *QuizzesScreen) Refresh() tea.Cmd {
	s.reload()
	return nil
}

func (s *QuizzesScreen) reload() {
	s.quizzes = s.catalog.Quizzes()
	if s.log != nil {
		s.seeds = quiz.Seeds(s.log.Messages())
	}
	s.cursor[sectionQuizzes] = clamp(s.cursor[sectionQuizzes], len(s.quizzes))
	s.cursor[sectionSeeds] = clamp(s.cursor[sectionSeeds], len(s.seeds))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func (s *QuizzesScreen) Title() string {
	return "Quizzes"
}

func (s *QuizzesScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Switch list"},
	}
	if s.focus == sectionQuizzes {
		return append(hints, layout.KeyHint{Key: "Enter", Description: "Play"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Create quiz"})
}

func (s *QuizzesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		s.generating = false
		if msg.Err != nil {
			s.status = ""
			s.errMsg = generationError(msg.Err)
			return s, nil
		}
		s.errMsg = ""
		s.status = fmt.Sprintf("Created %q", msg.Quiz.Title)
		s.reload()
		s.focus = sectionQuizzes
		s.cursor[sectionQuizzes] = len(s.quizzes) - 1
		return s, nil

	case tickMsg:
		if !s.generating {
			return s, nil
		}
		s.dots = (s.dots + 1) % 4
		return s, tick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizzesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	n := len(s.quizzes)
	if s.focus == sectionSeeds {
		n = len(s.seeds)
	}

	switch msg.String() {
	case "tab":
		s.focus = 1 - s.focus
	case "up", "k":
		s.cursor[s.focus] = clamp(s.cursor[s.focus]-1, n)
	case "down", "j":
		s.cursor[s.focus] = clamp(s.cursor[s.focus]+1, n)
	case "enter":
		if n == 0 {
			return s, nil
		}
		if s.focus == sectionQuizzes {
			q := s.quizzes[s.cursor[sectionQuizzes]]
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: play.New(s.catalog, q)}
			}
		}
		return s.generate(s.seeds[s.cursor[sectionSeeds]])
	}
	return s, nil
}

// generate starts a quiz generation in the background. Only one runs at
// a time.
func (s *QuizzesScreen) generate(seed quiz.Seed) (screen.Screen, tea.Cmd) {
	if s.generating || s.catalog.Generating() {
		s.errMsg = "A quiz is already being created."
		return s, nil
	}
	s.generating = true
	s.errMsg = ""
	s.status = ""

	catalog := s.catalog
	create := func() tea.Msg {
		q, err := catalog.CreateFromSeed(context.Background(), seed)
		return generatedMsg{Quiz: q, Err: err}
	}
	return s, tea.Batch(create, tick())
}

func generationError(err error) string {
	switch {
	case errors.Is(err, quiz.ErrGenerationInProgress):
		return "A quiz is already being created."
	case errors.Is(err, quiz.ErrInvalidSeed):
		return "This conversation cannot be turned into a quiz."
	default:
		return "Could not create a quiz. Please try again."
	}
}

func tick() tea.Cmd {
	return tea.Tick(400*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *QuizzesScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(s.renderHeading("Your quizzes", sectionQuizzes, width))
	if len(s.quizzes) == 0 {
		b.WriteString(theme.Hint.Render("    No quizzes yet. Create one from a conversation below."))
		b.WriteString("\n")
	}
	for i, q := range s.quizzes {
		line := fmt.Sprintf("%s  %d questions  %s", q.Title, len(q.Questions), q.CreatedAt.Local().Format("Jan 02 15:04"))
		b.WriteString(s.renderRow(line, sectionQuizzes, i, width))
	}

	b.WriteString("\n")
	b.WriteString(s.renderHeading("Create from a conversation", sectionSeeds, width))
	if len(s.seeds) == 0 {
		b.WriteString(theme.Hint.Render("    Ask LINK about a problem first."))
		b.WriteString("\n")
	}
	for i, seed := range s.seeds {
		line := fmt.Sprintf("[%s] %s", seed.Category.Label(), seed.Problem)
		b.WriteString(s.renderRow(line, sectionSeeds, i, width))
	}

	b.WriteString("\n")
	switch {
	case s.generating:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Render("  Creating quiz" + strings.Repeat(".", s.dots+1)))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	case s.status != "":
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  " + s.status))
	}

	return layout.HeadLines(b.String(), height)
}

func (s *QuizzesScreen) renderHeading(text string, sec section, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	if s.focus == sec {
		style = style.Foreground(theme.Primary)
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-6, 10)))
	return style.Render("  "+text) + "\n  " + rule + "\n"
}

func (s *QuizzesScreen) renderRow(text string, sec section, i, width int) string {
	text = truncate(text, max(width-8, 10))
	if s.focus == sec && s.cursor[sec] == i {
		return theme.Selected.Render("  ▸ "+text) + "\n"
	}
	return theme.Unselected.Render("    "+text) + "\n"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
