package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Link          lipgloss.Style
	Service       lipgloss.Style
	Completion    lipgloss.Style
	Folder        lipgloss.Style
	File          lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	HoverBg       lipgloss.Style
	Affordance    lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:        lipgloss.NewStyle().Faint(true),
		Link:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Service:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Completion: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Folder:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // blue
		File:       lipgloss.NewStyle(),
		Help:       lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		HoverBg:       lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Affordance:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
