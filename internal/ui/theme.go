package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/state"
)

// DarkModeFlag is the registry flag that drives theme selection.
const DarkModeFlag = "dark_mode"

// Theme defines the color palette for a console.
type Theme struct {
	Name string

	Text          string
	Muted         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	Border        string
	SelectionBg   string
	SelectionText string
}

// Light is the default palette.
func Light() Theme {
	return Theme{
		Name:          "light",
		Text:          "#1a1a1a",
		Muted:         "#6b7280",
		Accent:        "#2563eb",
		Success:       "#15803d",
		Warning:       "#b45309",
		Danger:        "#b91c1c",
		Border:        "#d1d5db",
		SelectionBg:   "#dbeafe",
		SelectionText: "#1e3a8a",
	}
}

// Dark is selected while the dark_mode flag is enabled.
func Dark() Theme {
	return Theme{
		Name:          "dark",
		Text:          "#e5e7eb",
		Muted:         "#9ca3af",
		Accent:        "#60a5fa",
		Success:       "#4ade80",
		Warning:       "#fbbf24",
		Danger:        "#f87171",
		Border:        "#4b5563",
		SelectionBg:   "#1e3a8a",
		SelectionText: "#eff6ff",
	}
}

// ThemeFor derives the theme purely from the latest registry contents.
func ThemeFor(reg *state.Registry) Theme {
	if reg != nil && reg.Enabled(DarkModeFlag) {
		return Dark()
	}
	return Light()
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Toast    lipgloss.Style
	Fallback lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Danger)).
			Foreground(lipgloss.Color(t.Danger)).
			Padding(0, 1),
		Fallback: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.Warning)).
			Foreground(lipgloss.Color(t.Warning)).
			Padding(1, 3),
	}
}
