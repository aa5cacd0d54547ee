package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. A single cyan accent keeps the picker readable on both
// light and dark terminals.
const (
	ColorCyan     = "51"  // Primary accent - selection and highlights
	ColorCyanDim  = "30"  // Dimmed cyan for secondary accents
	ColorWhite    = "255" // Result names
	ColorGray     = "245" // Paths, labels
	ColorDarkGray = "238" // Help text, separators
	ColorRed      = "196" // Errors
)

// Styles holds all styles for the interactive picker.
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Path     lipgloss.Style
	Count    lipgloss.Style
	Loading  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns styled components for interactive mode.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyan)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Normal:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Path:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCyanDim)),
		Loading:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for NO_COLOR terminals.
func NoColorStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle(),
		Prompt:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Bold(true),
		Normal:   lipgloss.NewStyle(),
		Path:     lipgloss.NewStyle(),
		Count:    lipgloss.NewStyle(),
		Loading:  lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
