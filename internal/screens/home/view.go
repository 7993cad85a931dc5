package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/ui/components"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

const titleFull = `  ██████╗██╗██╗   ██╗██╗ ██████╗██╗     ██╗███╗   ██╗██╗  ██╗
 ██╔════╝██║██║   ██║██║██╔════╝██║     ██║████╗  ██║██║ ██╔╝
 ██║     ██║██║   ██║██║██║     ██║     ██║██╔██╗ ██║█████╔╝
 ██║     ██║╚██╗ ██╔╝██║██║     ██║     ██║██║╚██╗██║██╔═██╗
 ╚██████╗██║ ╚████╔╝ ██║╚██████╗███████╗██║██║ ╚████║██║  ██╗
  ╚═════╝╚═╝  ╚═══╝  ╚═╝ ╚═════╝╚══════╝╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝`

const titleCompact = "C · I · V · I · C · L · I · N · K"

// titleFullWidth is the widest line of titleFull.
const titleFullWidth = 61

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	art := titleFull
	if compact || cw < titleFullWidth {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the running totals in a bordered box.
func renderStatsBar(s summary, cw int, compact bool) string {
	problemStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	quizStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	topStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	top := dimStyle.Render("NO TOPIC YET")
	if s.topCategory != "" {
		top = topStyle.Render("▲ " + strings.ToUpper(s.topCategory))
	}

	var text string
	if compact {
		text = fmt.Sprintf("%s %s %s",
			problemStyle.Render(fmt.Sprintf("✎%d", s.problems)),
			quizStyle.Render(fmt.Sprintf("?%d", s.quizzes)),
			top,
		)
	} else {
		text = fmt.Sprintf("%s  %s  %s",
			problemStyle.Render(fmt.Sprintf("✎ %d PROBLEMS", s.problems)),
			quizStyle.Render(fmt.Sprintf("? %d QUIZZES", s.quizzes)),
			top,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(label))
			continue
		}
		buttons = append(buttons, components.Button(label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as simple text lines for small
// terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderNotice renders a warning line, e.g. when no LLM key is configured.
func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
