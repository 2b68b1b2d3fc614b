package views

import (
	"github.com/charmbracelet/lipgloss"

	"omnisearch/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Group         lipgloss.Style
	Label         lipgloss.Style
	Description   lipgloss.Style
	Shortcut      lipgloss.Style
	Disabled      lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Filter        lipgloss.Style
	Regex         lipgloss.Style
	Suggestion    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	ConfirmBox    lipgloss.Style
	Button        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Group:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Label:       lipgloss.NewStyle(),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Shortcut:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Regex:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Suggestion:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("241")),
		Button: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
}

// SeverityColor returns the accent color for a confirmation dialog
func SeverityColor(severity domain.Severity) string {
	switch severity {
	case domain.SeverityDanger:
		return "203" // red
	case domain.SeverityWarning:
		return "214" // yellow
	default:
		return "33" // blue
	}
}
