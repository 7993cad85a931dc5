package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice renders a multiple-choice question. It holds no input state
// of its own; the caller sets Selected and Revealed from its session.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int // -1 when nothing is selected
	Revealed     bool
}

// NewMultiChoice creates a multiple-choice view with nothing selected.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     -1,
	}
}

// View renders the question and its options wrapped to width.
func (m MultiChoice) View(width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))

	var b strings.Builder
	b.WriteString(wrap.Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}
		b.WriteString(style.Width(max(width, 20)).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect reports whether the revealed selection is the correct option.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.Selected == m.CorrectIndex
}
