// Package theme holds the lipgloss palette and styles of the terminal quiz
// player.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette, built around Wikipedia's blue link color.
var (
	Primary   = lipgloss.Color("#3366CC") // Link blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Difficulty badges.
var (
	Easy   = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Medium = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Hard   = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	Link = lipgloss.NewStyle().
		Foreground(Primary).
		Underline(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Dimmed = lipgloss.NewStyle().
		Foreground(TextDim)
)

// DifficultyStyle returns the badge style for a difficulty name.
func DifficultyStyle(difficulty string) lipgloss.Style {
	switch difficulty {
	case "easy":
		return Easy
	case "medium":
		return Medium
	case "hard":
		return Hard
	}
	return Subtitle
}
