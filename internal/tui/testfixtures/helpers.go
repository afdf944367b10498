package testfixtures

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/ansi"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for consistent rendering across CI/platforms
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

// WindowSize returns a resize message for the canonical terminal size.
func WindowSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: TestTermWidth, Height: TestTermHeight}
}

// Key builds a key press for a special key such as tea.KeyEnter.
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ShiftTab builds a shift+tab key press.
func ShiftTab() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
}

// CtrlC builds a ctrl+c key press.
func CtrlC() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
}

// Type returns one key press per rune of s, as a user typing it.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// Plain strips ANSI sequences so rendered output can be matched as text.
func Plain(s string) string {
	return ansi.Strip(s)
}

// Contains checks if rendered output contains a substring once styling is removed.
func Contains(rendered, substr string) bool {
	return strings.Contains(Plain(rendered), substr)
}
