package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Prompt      lipgloss.Style
	Row         lipgloss.Style
	Selected    lipgloss.Style
	SelectionBg lipgloss.Style
	Highlight   lipgloss.Style
	Icon        lipgloss.Style
	Result      lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Scroll      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Header      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Prompt:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Row:         lipgloss.NewStyle(),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Icon:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Result:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(0, 1),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}
