package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Status colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Epic status colors
	ColorPlanning   = lipgloss.Color("#9CA3AF") // Gray
	ColorInProgress = lipgloss.Color("#3B82F6") // Blue
	ColorReview     = lipgloss.Color("#F59E0B") // Amber
	ColorDone       = lipgloss.Color("#10B981") // Green

	// Text colors
	ColorText      = lipgloss.Color("#F3F4F6") // Light gray
	ColorTextMuted = lipgloss.Color("#9CA3AF") // Gray

	// Border colors
	ColorBorder = lipgloss.Color("#374151") // Medium gray
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	DimStyle    = lipgloss.NewStyle().Foreground(ColorTextMuted)
)

// Table styles
var (
	TableBorderStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// StatusStyle returns the style for an epic status label.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "planning":
		return lipgloss.NewStyle().Foreground(ColorPlanning)
	case "in-progress":
		return lipgloss.NewStyle().Foreground(ColorInProgress)
	case "review":
		return lipgloss.NewStyle().Foreground(ColorReview)
	case "done":
		return lipgloss.NewStyle().Foreground(ColorDone)
	default:
		return DimStyle
	}
}
