// Package layout draws the chrome around every screen: the header bar with
// the current region and totals, and the footer with key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24
)

type KeyHint struct {
	Key         string
	Description string
}

// Status is what the right side of the header reports.
type Status struct {
	Region   string
	Problems int
	Quizzes  int
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(fmt.Sprintf("Terminal too small.\n\nCivicLink needs at least %d x %d,\nthis one is %d x %d.",
			MinWidth, MinHeight, width, height))
}

// RenderHeader puts the app name on the left, the screen title in the
// middle and status on the right.
func RenderHeader(title string, status Status, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  CivicLink")
	center := theme.Body.Render(title)

	var right []string
	if status.Region != "" {
		right = append(right, lipgloss.NewStyle().Foreground(theme.Secondary).Render("⌂ "+status.Region))
	}
	right = append(right,
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("✎ %d", status.Problems)),
		lipgloss.NewStyle().Foreground(theme.Highlight).Render(fmt.Sprintf("? %d", status.Quizzes)),
	)

	return bar.Width(width).Render(spread(left, center, strings.Join(right, "   "), width-4))
}

// spread lays out three segments on one line of width w, keeping center
// centered when there is room. Segments are never closer than one space.
func spread(left, center, right string, w int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((max(w, 0)-cw)/2-lw, 1)
	gapR := max(w-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Message is a short centered notice for screens with nothing else to show.
func Message(width int, text string, fg lipgloss.Style) string {
	return fg.Width(width).Align(lipgloss.Center).Render("\n\n  " + text)
}

// TailLines keeps the last n lines of s.
func TailLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	return strings.Join(lines[max(len(lines)-n, 0):], "\n")
}

// HeadLines keeps the first n lines of s.
func HeadLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	return strings.Join(lines[:min(n, len(lines))], "\n")
}
