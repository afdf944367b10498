package theme

import "sync"

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string // lipgloss.Color is a string type
	Secondary string
	Tertiary  string

	// Background hierarchy (dark→light)
	BgBase     string
	BgMantle   string
	BgSurface0 string
	BgSurface1 string
	BgSurface2 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string
	FgBright string

	// Status colors
	Success string
	Warning string
	Error   string
	Info    string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	current     *Theme
	currentOnce sync.Once
)

// Current returns the active theme.
func Current() *Theme {
	currentOnce.Do(func() {
		current = NewCatppuccinMocha()
	})
	return current
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}
