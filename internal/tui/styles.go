// Package tui provides terminal user interface components.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor
}

// DefaultTheme returns the default whenq theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:    lipgloss.AdaptiveColor{Light: "#1a73e8", Dark: "#8ab4f8"},
		Secondary:  lipgloss.AdaptiveColor{Light: "#5f6368", Dark: "#9aa0a6"},
		Success:    lipgloss.AdaptiveColor{Light: "#1e8e3e", Dark: "#81c995"},
		Warning:    lipgloss.AdaptiveColor{Light: "#f9ab00", Dark: "#fdd663"},
		Error:      lipgloss.AdaptiveColor{Light: "#d93025", Dark: "#f28b82"},
		Muted:      lipgloss.AdaptiveColor{Light: "#80868b", Dark: "#6e7681"},
		Foreground: lipgloss.AdaptiveColor{Light: "#202124", Dark: "#e8eaed"},
		Border:     lipgloss.AdaptiveColor{Light: "#dadce0", Dark: "#3c4043"},
	}
}

// Styles holds the styled components for the TUI.
type Styles struct {
	theme Theme

	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
}

// NewStyles creates a new Styles with the resolved theme.
func NewStyles() *Styles {
	return NewStylesWithTheme(ResolveTheme())
}

// NewStylesWithTheme creates a new Styles with a custom theme.
func NewStylesWithTheme(theme Theme) *Styles {
	s := &Styles{theme: theme}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		MarginBottom(1)

	s.Body = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	s.Muted = lipgloss.NewStyle().
		Foreground(theme.Muted)

	s.Bold = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Foreground)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error)

	s.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	s.Cursor = lipgloss.NewStyle().
		Foreground(theme.Primary)

	return s
}
