package form

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/numform/numform/internal/ui"
)

// Styles for the form view
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Bold(true).
			PaddingLeft(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			PaddingLeft(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor).
			Width(10)

	labelFocusedStyle = lipgloss.NewStyle().
				Foreground(ui.TextColor).
				Bold(true).
				Width(10)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.MutedColor).
			Padding(0, 1)

	fieldFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ui.PrimaryColor).
				Padding(0, 1)

	fieldErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ErrorColor).
			Padding(0, 1)

	errorMarkStyle = lipgloss.NewStyle().
			Foreground(ui.ErrorColor).
			Bold(true)

	settingsTitleStyle = lipgloss.NewStyle().
				Foreground(ui.WarningColor).
				Bold(true).
				PaddingLeft(1)

	settingsErrStyle = lipgloss.NewStyle().
				Foreground(ui.ErrorColor).
				PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingTop(1)
)

// Error flag marker
const errorMark = "✗"
