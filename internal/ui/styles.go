package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette shared by the form views
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, focused borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - settled values
	ErrorColor   = lipgloss.Color("#FF5555") // Red - error flag
	WarningColor = lipgloss.Color("#FFA500") // Orange - pending edits
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	MaxContentWidth  = 100
)

// GetTerminalSize returns the current terminal width and height. The width
// is clamped to the supported content range; a non-terminal stdout gets the
// minimum geometry. The form uses this to lay out its first paint, before
// the program delivers a window size message.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
