package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cubesnake/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateUp},
		{"w", runeKey('w'), core.ActionRotateUp},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionRotateDown},
		{"s", runeKey('s'), core.ActionRotateDown},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionRotateLeft},
		{"a", runeKey('a'), core.ActionRotateLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRotateRight},
		{"d", runeKey('d'), core.ActionRotateRight},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionRestart},
		{"r", runeKey('r'), core.ActionRestart},
		{"p", runeKey('p'), core.ActionPause},
		{"q", runeKey('q'), core.ActionQuit},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('x'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestKeyMapperMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame) {
		t.Error("left should not be a quit request")
	}
	if !frame.Has(core.ActionRotateLeft) {
		t.Error("frame should carry the rotation")
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should be a quit request")
	}

	frame.Clear()
	km.MapKeyToFrame(runeKey('x'), &frame)
	if len(frame.Actions) != 0 {
		t.Errorf("unbound key should not set actions: %v", frame.Actions)
	}
}

func TestKeyMapperScreenshot(t *testing.T) {
	km := NewKeyMapper()
	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s should take a screenshot")
	}
	if km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlS}) != core.ActionNone {
		t.Error("ctrl+s should not map to a game action")
	}
}
