// Package router keeps the TUI's stack of screens and applies navigation
// messages to it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/civiclink/civiclink/internal/screen"
)

type (
	// PushScreenMsg opens Screen on top of the current one.
	PushScreenMsg struct{ Screen screen.Screen }

	// PopScreenMsg closes the current screen.
	PopScreenMsg struct{}

	// PopToRootMsg closes every screen above the home screen.
	PopToRootMsg struct{}

	// ReplaceScreenMsg swaps the current screen for Screen without changing
	// the depth.
	ReplaceScreenMsg struct{ Screen screen.Screen }
)

// Router is a stack of screens. The bottom screen is never removed.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Init() tea.Cmd {
	return r.stack[0].Init()
}

func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen and lets the uncovered one reload shared state.
func (r *Router) Pop() tea.Cmd {
	return r.popTo(len(r.stack) - 2)
}

// PopToRoot returns to the bottom screen.
func (r *Router) PopToRoot() tea.Cmd {
	return r.popTo(0)
}

func (r *Router) popTo(i int) tea.Cmd {
	if i < 0 || i >= len(r.stack)-1 {
		return nil
	}
	clear(r.stack[i+1:])
	r.stack = r.stack[:i+1]
	if rf, ok := r.Active().(screen.Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

func (r *Router) Active() screen.Screen { return r.stack[len(r.stack)-1] }

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
