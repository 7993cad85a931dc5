package home

import (
	"charm.land/lipgloss/v2"

	"github.com/civiclink/civiclink/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota // Nothing recorded yet
	MascotEngaged                       // Problems recorded
	MascotThinking                      // A quiz is being generated
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ⌂⌂⌂ │
└─────┘`

const mascotEngaged = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ⌂⌂⌂ │
└─╥═╥─┘`

const mascotThinking = `┌─────┐
│ ◔ ◔ │ …
│  ─  │
│ ⌂⌂⌂ │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotEngaged:
		art = mascotEngaged
		fg = theme.Highlight
	case MascotThinking:
		art = mascotThinking
		fg = theme.Secondary
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
