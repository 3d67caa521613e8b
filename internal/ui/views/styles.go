package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Main container padding, used to translate mouse coordinates into strip columns
const (
	mainPaddingTop  = 1
	mainPaddingLeft = 2
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Item          lipgloss.Style
	Button        lipgloss.Style
	NavButton     lipgloss.Style
	CurrentButton lipgloss.Style
	FocusedButton lipgloss.Style
	Input         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(mainPaddingTop, mainPaddingLeft),
		Item:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Button:    lipgloss.NewStyle().Padding(0, 1),
		NavButton: lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("33")), // blue
		CurrentButton: lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("226")), // yellow
		FocusedButton: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")),
		Input:         lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// PlainStyles returns styles without colors or attributes, for non-terminal output
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	padded := lipgloss.NewStyle().Padding(0, 1)
	return &Styles{
		Title:         plain,
		Dim:           plain,
		Status:        plain,
		StatusError:   plain,
		Help:          plain,
		Main:          plain,
		Item:          plain,
		Button:        padded,
		NavButton:     padded,
		CurrentButton: lipgloss.NewStyle().Padding(0, 1),
		FocusedButton: padded,
		Input:         plain,
	}
}
