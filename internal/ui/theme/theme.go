package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Question sets
var (
	QuestionNumber = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	QuestionText = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	OptionLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Answer = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Explanation = lipgloss.NewStyle().
			Foreground(TextDim).
			PaddingLeft(2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
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

// Messages
var (
	Warning = lipgloss.NewStyle().
		Foreground(Accent)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
