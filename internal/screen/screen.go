// Package screen defines what the router needs from a TUI screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/ui/layout"
)

// Screen is one page of the TUI. View draws only the area between the
// header and footer bars.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown in the middle of the header.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher screens reload shared state (stats, catalog, chat log) when a
// screen above them is closed.
type Refresher interface {
	Refresh() tea.Cmd
}
