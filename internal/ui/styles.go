package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Base styles
	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	// Header styles
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Underline(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	// Tab styles
	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Margin(0, 1)

	ActiveTabStyle = TabStyle.
			Foreground(lipgloss.Color("36")).
			Bold(true).
			Underline(true)

	InactiveTabStyle = TabStyle.
				Foreground(lipgloss.Color("241"))

	// Progress bar styles
	ProgressCompleteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("36"))

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	// Data styles
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ScrollHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	ScrollInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			PaddingLeft(1)

	// Table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				PaddingLeft(1).
				PaddingRight(1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(1).
			PaddingRight(1)

	AltRowStyle = TableCellStyle.
			Foreground(lipgloss.Color("245"))

	SelectedRowStyle = TableCellStyle.
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true)
)

// RenderProgressBar draws a fixed width bar for a 0-100 percentage.
func RenderProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 20
	}

	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))

	return ProgressCompleteStyle.Render(strings.Repeat("█", filled)) +
		ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
