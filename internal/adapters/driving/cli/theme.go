package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates partial failures.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary: lipgloss.Color("#7C3AED"), // Purple
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
		Success: lipgloss.Color("#A6E3A1"), // Green
		Warning: lipgloss.Color("#F9E2AF"), // Yellow
		Error:   lipgloss.Color("#F38BA8"), // Red
		Border:  lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for tables.
type Styles struct {
	// Header style for table headers.
	Header lipgloss.Style

	// Cell style for regular cells.
	Cell lipgloss.Style

	// Muted style for secondary cells.
	Muted lipgloss.Style

	// Success, Warning and Error colour the status column.
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Border style for table borders.
	Border lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	return &Styles{
		Header:  cell.Bold(true).Foreground(theme.Primary),
		Cell:    cell,
		Muted:   cell.Foreground(theme.Muted),
		Success: cell.Foreground(theme.Success),
		Warning: cell.Foreground(theme.Warning),
		Error:   cell.Foreground(theme.Error),
		Border:  lipgloss.NewStyle().Foreground(theme.Border),
	}
}
