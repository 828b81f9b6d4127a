package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — torchlit dungeon, readable for kids
var (
	Primary   = lipgloss.Color("#F59E0B") // Torch Amber
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#A78BFA") // Rune Violet
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#1C1917") // Cave Black
	BgCard    = lipgloss.Color("#292524") // Stone
	Border    = lipgloss.Color("#57534E") // Mortar
	Door      = lipgloss.Color("#A16207") // Oak
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
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
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	DoorClosed = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Door).
			Padding(0, 1)

	DoorSelected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(0, 1)
)
