package components

import (
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/ui/theme"
)

const (
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth is the inner width shared by every boxed section inside a
// Frame of frameWidth columns, so cards line up.
func ContentWidth(frameWidth int) int {
	// border 2 + padding 4
	return max(min(frameWidth-6, maxContentWidth), minContentWidth)
}

// Frame draws the double border around a whole screen and centers content
// in it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}

var buttonBase = lipgloss.NewStyle().
	Align(lipgloss.Center).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

// Button is a fixed-width menu button. The selected one is filled with
// the highlight color.
func Button(label string, selected bool, width int) string {
	style := buttonBase.Width(width)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight).
		Render("▸ " + label)
}
