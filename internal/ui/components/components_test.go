package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func TestMenu_SkipsDisabledItems(t *testing.T) {
	var picked string
	action := func(name string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = name
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "ONE", Action: action("one"), Disabled: true},
		{Label: "TWO", Action: action("two")},
		{Label: "THREE", Action: action("three"), Disabled: true},
		{Label: "FOUR", Action: action("four")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("selection after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("selection moved past the end: %d", m.Selected)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "four" {
		t.Errorf("picked = %q, want four", picked)
	}

	if got := strings.Join(m.Labels(), ","); got != "ONE,TWO,THREE,FOUR" {
		t.Errorf("Labels = %q", got)
	}
}

func TestMultiChoice_View(t *testing.T) {
	mc := NewMultiChoice("Where is the nearest shelter?", []string{"School gym", "Station", "Mall", "Beach"}, 0)
	if mc.IsCorrect() {
		t.Error("unrevealed choice cannot be correct")
	}

	mc.Selected = 2
	view := mc.View(60)
	if !strings.Contains(view, "C)  Mall") {
		t.Error("expected labelled option")
	}
	if strings.Contains(view, "✓") {
		t.Error("answer shown before reveal")
	}

	mc.Revealed = true
	view = mc.View(60)
	if !strings.Contains(view, "✓") || !strings.Contains(view, "✗") {
		t.Error("expected both marks after a wrong reveal")
	}
	if mc.IsCorrect() {
		t.Error("wrong selection reported correct")
	}

	mc.Selected = 0
	if !mc.IsCorrect() {
		t.Error("right selection reported wrong")
	}
}

func TestProgressBar_Width(t *testing.T) {
	for _, pct := range []float64{0, 0.5, 1, 1.7} {
		bar := NewProgressBar("Tourism", pct, 50)
		bar.LabelWidth = 12
		if w := lipgloss.Width(bar.View()); w != 50 {
			t.Errorf("width at %.1f = %d, want 50", pct, w)
		}
	}

	bar := NewProgressBar("", 0.25, 30)
	if !strings.Contains(bar.View(), "25%") {
		t.Error("expected default percentage suffix")
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{200, 72},
		{80, 72},
		{50, 44},
		{10, 20},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTextInput_DisabledIgnoresKeys(t *testing.T) {
	ti := NewTextInput("type here", 10)
	ti.SetDisabled(true)
	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if ti.Value() != "" {
		t.Errorf("Value = %q, want empty", ti.Value())
	}
	if !strings.Contains(ti.View(), "waiting") {
		t.Error("expected waiting placeholder")
	}

	ti.SetDisabled(false)
	ti.Model.SetValue("  hello  ")
	if ti.Value() != "hello" {
		t.Errorf("Value = %q, want trimmed", ti.Value())
	}
	ti.Clear()
	if ti.Value() != "" {
		t.Error("expected Clear to empty the input")
	}
}
