package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the console's color palette.
type Theme struct {
	Name string

	Border        string
	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

// Styles returns the pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// Styles contains the pre-built lipgloss styles for a theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
}

var themes = []Theme{
	{
		Name:          "shelter",
		Border:        "#6d5a42",
		SelectionBg:   "#3a5a40",
		SelectionText: "#f4f1de",
		Text:          "#e8e4d8",
		Muted:         "#8f8a7a",
		Accent:        "#a3b18a",
		Success:       "#95d5b2",
		Warning:       "#e9c46a",
		Danger:        "#e76f51",
	},
	{
		Name:          "dark",
		Border:        "#44475a",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#8be9fd",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
	},
}

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
