package tui

import (
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyUpDown    = "↑/↓"
	KeyLeftRight = "←/→"
	KeyTabs      = "1-4"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyTab       = "tab"
	KeyCtrlC     = "ctrl+c"
	KeyR         = "r"
	KeyQ         = "q"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . " (bullet point separator).
// Example: RenderHintBar("↑/↓", "move", "enter", "book", "esc", "back")
// Returns: "↑/↓ move . enter book . esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	var result string

	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i]
		desc := pairs[i+1]

		if i > 0 {
			result += " " + s.HintSeparator.Render(".") + " "
		}

		result += s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
	}

	return result
}

// hintsFor returns the hint bar for a step.
func hintsFor(step booking.Step, tabBarFocused bool) string {
	switch step {
	case booking.StepSearch:
		if tabBarFocused {
			return RenderHintBar(KeyLeftRight+"/"+KeyTabs, "switch tab", KeyTab, "fields", KeyEnter, "search", KeyCtrlC, "quit")
		}
		return RenderHintBar(KeyTab, "next field", KeyEsc, "tabs", KeyEnter, "search", KeyCtrlC, "quit")
	case booking.StepResults:
		return RenderHintBar(KeyUpDown, "move", KeyEnter, "book now", KeyEsc, "back to search", KeyCtrlC, "quit")
	case booking.StepDetails:
		return RenderHintBar(KeyTab, "next field", KeyEnter, "proceed to payment", KeyEsc, "back to results", KeyCtrlC, "quit")
	case booking.StepPayment:
		return RenderHintBar(KeyTab, "next field", KeyEnter, "complete payment", KeyEsc, "back", KeyCtrlC, "quit")
	case booking.StepConfirmation:
		return RenderHintBar(KeyEnter+"/"+KeyR, "make another booking", KeyQ, "quit")
	}
	return ""
}
