package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, muted for long interviews on a dark terminal.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Amber
	Error     = lipgloss.Color("#F43F5E") // Rose
	Info      = lipgloss.Color("#3B82F6") // Blue
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
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

// Layout
var (
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
)

// Banners
var (
	InfoBanner = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Info).
			Foreground(Text).
			PaddingLeft(1)

	WarningBanner = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Warning).
			Foreground(Warning).
			PaddingLeft(1)

	ErrorBanner = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Error).
			Foreground(Error).
			Bold(true).
			PaddingLeft(1)

	SuccessBanner = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Success).
			Foreground(Success).
			PaddingLeft(1)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// LevelColor is the heading color for a working level: plain at Level 1,
// green at Level 2 and blue at Level 3.
func LevelColor(level int) color.Color {
	switch level {
	case 2:
		return Success
	case 3:
		return Info
	default:
		return Text
	}
}

// RatingColor maps a rating rank (0-3) to a traffic-light color. Unrated
// tasks are dim.
func RatingColor(rank int) color.Color {
	switch rank {
	case 0:
		return Error
	case 1:
		return Accent
	case 2:
		return Warning
	case 3:
		return Success
	default:
		return TextDim
	}
}
