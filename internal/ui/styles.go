package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorSuccess   = lipgloss.Color("#73F59F")
	ColorWarning   = lipgloss.Color("#F5A623")
	ColorDanger    = lipgloss.Color("#F56565")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#3F3F46")
	ColorText      = lipgloss.Color("#E4E4E7")
	ColorCyan      = lipgloss.Color("#22D3EE")

	// Classification colors
	ColorLight   = lipgloss.Color("#F4F4F5") // white background
	ColorLightBg = lipgloss.Color("#3F3F46")
	ColorOther   = lipgloss.Color("#7DD3FC") // everything else
	ColorOtherBg = lipgloss.Color("#1E3A5F")
	ColorEmptyBg = lipgloss.Color("#2D2D2D")
)

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F1F23")).
			Padding(0, 1)

	PhaseBadge = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	StatsStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// Form
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Width(14)

	ButtonActive = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2).
			Bold(true)

	ButtonDisabled = lipgloss.NewStyle().
			Background(ColorBorder).
			Foreground(ColorMuted).
			Padding(0, 2)

	// Designer list
	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ListItemSelected = lipgloss.NewStyle().
				Background(ColorPrimary).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	LoadBar = lipgloss.NewStyle().
		Foreground(ColorPrimary)

	// Log levels
	LogInfo  = lipgloss.NewStyle().Foreground(ColorMuted)
	LogWarn  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogError = lipgloss.NewStyle().Foreground(ColorDanger)

	// Help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	LightStyle = lipgloss.NewStyle().Foreground(ColorLight).Bold(true)
	OtherStyle = lipgloss.NewStyle().Foreground(ColorOther).Bold(true)
)

// FormatCount formats a file count with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatSize formats bytes to a human readable string
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
