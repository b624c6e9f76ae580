// Package themes holds the color schemes of the results browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Money       lipgloss.Style
	Rejected    lipgloss.Style
	Favorite    lipgloss.Style
	Selected    lipgloss.Style
	Header      lipgloss.Style
	RoundedBox  lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color
}

func build(primary, muted, border, success, warning, errColor, fg, selBg lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,
		Success: success,
		Warning: warning,
		Error:   errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Money: lipgloss.NewStyle().
			Bold(true).
			Foreground(success),
		Rejected: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),
		Favorite: lipgloss.NewStyle().
			Foreground(warning),
		Selected: lipgloss.NewStyle().
			Background(selBg).
			Foreground(fg).
			Bold(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(muted),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#64748B"),
	lipgloss.Color("#334155"),
	lipgloss.Color("#34D399"),
	lipgloss.Color("#F59E0B"),
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#F8FAFC"),
	lipgloss.Color("#1E3A8A"),
)

// Light suits terminals with a light background.
var Light = build(
	lipgloss.Color("#1D4ED8"),
	lipgloss.Color("#6B7280"),
	lipgloss.Color("#D1D5DB"),
	lipgloss.Color("#047857"),
	lipgloss.Color("#B45309"),
	lipgloss.Color("#B91C1C"),
	lipgloss.Color("#111827"),
	lipgloss.Color("#BFDBFE"),
)

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	switch name {
	case "light":
		return Light
	default:
		return Default
	}
}
