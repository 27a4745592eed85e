// Package tui is the interactive terminal client for the games view.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a terminal color scheme.
type Theme struct {
	Foreground  lipgloss.Color
	Primary     lipgloss.Color
	Accent      lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Destructive lipgloss.Color
}

// LightTheme is for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Foreground:  lipgloss.Color("#101F38"),
		Primary:     lipgloss.Color("#1565C0"),
		Accent:      lipgloss.Color("#2E7D32"),
		Muted:       lipgloss.Color("#6B7280"),
		Border:      lipgloss.Color("#D0D4DA"),
		Destructive: lipgloss.Color("#C62828"),
	}
}

// DarkTheme is for dark terminal backgrounds.
func DarkTheme() Theme {
	return Theme{
		Foreground:  lipgloss.Color("#F2F2F2"),
		Primary:     lipgloss.Color("#90CAF9"),
		Accent:      lipgloss.Color("#8BC34A"),
		Muted:       lipgloss.Color("#8A94A6"),
		Border:      lipgloss.Color("#2A3850"),
		Destructive: lipgloss.Color("#E53935"),
	}
}

// ThemeByName maps the ui.theme config value to a Theme. Unknown names get
// the dark theme.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles is the set of lipgloss styles the model renders with.
type Styles struct {
	AppTitle lipgloss.Style
	Heading  lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Platform lipgloss.Style
	Delete   lipgloss.Style
	Label    lipgloss.Style
	Button   lipgloss.Style
	Focused  lipgloss.Style
	Panel    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds Styles from t.
func NewStyles(t Theme) Styles {
	return Styles{
		AppTitle: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Row:      lipgloss.NewStyle().Foreground(t.Foreground).PaddingLeft(2),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).PaddingLeft(2),
		Platform: lipgloss.NewStyle().Foreground(t.Muted).PaddingLeft(4),
		Delete:   lipgloss.NewStyle().Foreground(t.Destructive),
		Label:    lipgloss.NewStyle().Foreground(t.Muted),
		Button:   lipgloss.NewStyle().Foreground(t.Foreground).Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(t.Border),
		Focused:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(t.Accent),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(t.Destructive),
		Help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}
