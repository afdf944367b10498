package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	// Frame
	Container lipgloss.Style
	Brand     lipgloss.Style
	Tagline   lipgloss.Style
	StepTitle lipgloss.Style
	Divider   lipgloss.Style

	// Tab bar
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabFocused  lipgloss.Style

	// Form fields
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	InputText    lipgloss.Style
	Placeholder  lipgloss.Style
	Prompt       lipgloss.Style
	PromptBlur   lipgloss.Style
	ErrorLine    lipgloss.Style

	// Item cards
	CardTitle    lipgloss.Style
	CardSelected lipgloss.Style
	Location     lipgloss.Style
	Rating       lipgloss.Style
	Price        lipgloss.Style
	PriceSuffix  lipgloss.Style
	Tag          lipgloss.Style
	Processing   lipgloss.Style
	Cursor       lipgloss.Style

	// Hints
	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	// Buttons
	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style

	Success lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginLeft(1).
		MarginRight(1)

	tab := lipgloss.NewStyle().Padding(0, 2)

	return &Styles{
		Container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Secondary)).
			Padding(1, 2),
		Brand: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Tagline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)).
			Italic(true),
		StepTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Divider: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgSurface1)),

		TabActive: tab.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Primary)).
			Bold(true),
		TabInactive: tab.
			Foreground(lipgloss.Color(t.FgSubtle)).
			Background(lipgloss.Color(t.BgSurface0)),
		TabFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		LabelFocused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)).
			Bold(true),
		InputText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)),
		Placeholder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)),
		PromptBlur: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		ErrorLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		CardTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBase)).
			Bold(true),
		CardSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),
		Location: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		Rating: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		Price: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Tertiary)).
			Bold(true),
		PriceSuffix: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgMuted)),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Background(lipgloss.Color(t.BgSurface0)).
			Padding(0, 1),
		Processing: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Secondary)),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgBright)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.FgSubtle)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BgSurface2)),

		ButtonNormal: button.
			Foreground(lipgloss.Color(t.FgBase)).
			Background(lipgloss.Color(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(lipgloss.Color(t.FgMuted)).
			Background(lipgloss.Color(t.BgMantle)),
		ButtonFocused: button.
			Foreground(lipgloss.Color(t.BgBase)).
			Background(lipgloss.Color(t.Secondary)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
	}
}
