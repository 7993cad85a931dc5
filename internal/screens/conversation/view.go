package conversation

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/chat"
	"github.com/civiclink/civiclink/internal/ui/layout"
	"github.com/civiclink/civiclink/internal/ui/theme"
)

func (s *ConversationScreen) View(width, height int) string {
	inner := max(width-4, 20)

	var footer strings.Builder
	if s.errMsg != "" {
		footer.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  Error: " + s.errMsg))
		footer.WriteString("\n")
	}
	if s.busy {
		footer.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
			Render(fmt.Sprintf("  %s LINK is thinking...", spinnerFrames[s.frame])))
		footer.WriteString("\n")
	}
	if s.svc == nil {
		footer.WriteString(theme.Hint.Render("  Set an LLM API key to ask new questions (see civiclink --help)"))
	} else {
		footer.WriteString("  " + s.input.View())
	}

	footerText := footer.String()
	historyHeight := max(height-lipgloss.Height(footerText)-1, 1)

	history := s.renderHistory(inner)
	lines := strings.Split(history, "\n")
	end := len(lines) - min(s.scroll, max(len(lines)-historyHeight, 0))
	history = layout.TailLines(strings.Join(lines[:end], "\n"), historyHeight)

	pad := historyHeight - lipgloss.Height(history)
	if pad > 0 {
		history = strings.Repeat("\n", pad) + history
	}
	return history + "\n\n" + footerText
}

func (s *ConversationScreen) renderHistory(width int) string {
	msgs := s.log.Messages()
	if len(msgs) == 0 {
		return theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Tell LINK about a problem in your community: tourism, health, disaster prevention, education...")
	}

	bubbleWidth := min(width-2, 90)
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		if m.Role == chat.RoleUser {
			b.WriteString(renderUser(m, bubbleWidth, width))
		} else {
			b.WriteString(renderModel(m, bubbleWidth))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderUser(m chat.Message, bubbleWidth, width int) string {
	label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("You")
	if m.Pending {
		label += theme.Hint.Render("  sending...")
	}
	bubble := theme.UserBubble.Width(bubbleWidth).Render(m.Text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, label+"\n"+bubble)
}

func renderModel(m chat.Message, bubbleWidth int) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("LINK")
	if m.Classified() {
		label += "  " + theme.Badge.Render(classification(m))
	}

	body := m.Text
	if len(m.URLs) > 0 {
		var src strings.Builder
		src.WriteString("\n\nSources:")
		for _, u := range m.URLs {
			title := u.Title
			if title == "" {
				title = u.URI
			}
			fmt.Fprintf(&src, "\n• %s", title)
			if u.Title != "" {
				src.WriteString("\n  " + lipgloss.NewStyle().Foreground(theme.Link).Render(u.URI))
			}
		}
		body += src.String()
	}
	return label + "\n" + theme.ModelBubble.Width(bubbleWidth).Render(body)
}

func classification(m chat.Message) string {
	return m.Category.Label() + " / " + m.SubCategory.Label()
}
