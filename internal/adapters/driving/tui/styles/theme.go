// Package styles provides colour themes and styling for the transcript viewer.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the viewer.
type Theme struct {
	// Primary is the main accent colour, used for the title.
	Primary lipgloss.Color

	// Interviewer colours interviewer speaker headings.
	Interviewer lipgloss.Color

	// Participant colours participant speaker headings.
	Participant lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for timestamps and hints.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:     lipgloss.Color("#7C3AED"), // Purple
		Interviewer: lipgloss.Color("#06B6D4"), // Cyan
		Participant: lipgloss.Color("#A6E3A1"), // Green
		Foreground:  lipgloss.Color("#CDD6F4"), // Light gray
		Muted:       lipgloss.Color("#6C7086"), // Medium gray
		Error:       lipgloss.Color("#F38BA8"), // Red
		Border:      lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for the header line.
	Title lipgloss.Style

	// Interviewer style for interviewer speaker labels.
	Interviewer lipgloss.Style

	// Participant style for participant speaker labels.
	Participant lipgloss.Style

	// Time style for timestamps.
	Time lipgloss.Style

	// Speech style for the spoken text.
	Speech lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// StatusBar style for the footer.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),

		Interviewer: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Interviewer),

		Participant: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Participant),

		Time: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Speech: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(2),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Speaker returns the label style for a speaker.
func (s *Styles) Speaker(interviewer bool) lipgloss.Style {
	if interviewer {
		return s.Interviewer
	}
	return s.Participant
}
