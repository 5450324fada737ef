package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumnWidth = 12 // Width for key column in help text

// HelpOverlay displays keyboard shortcuts in a centered overlay
type HelpOverlay struct {
	visible bool
	width   int
	height  int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay() HelpOverlay {
	return HelpOverlay{
		visible: false,
	}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (ho *HelpOverlay) SetSize(w, h int) {
	ho.width = w
	ho.height = h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true).
		MarginTop(1)

	keyStyle := HelpKey
	descStyle := lipgloss.NewStyle().Foreground(ColorText)

	var content strings.Builder

	content.WriteString(titleStyle.Render("Keyboard Shortcuts"))
	content.WriteString("\n")

	content.WriteString(sectionStyle.Render("FORM"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Tab", "Switch field"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Start splitting"))

	content.WriteString(sectionStyle.Render("RUN"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "c", "Clear log"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q q", "Quit while running"))

	content.WriteString(sectionStyle.Render("RESULTS"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "arrows/hjkl", "Select designer"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "g/G", "Jump to top/bottom"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Tab", "Switch panel"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "Enter", "Open designer folder"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "o", "Open source folder"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "r", "New run"))

	content.WriteString(sectionStyle.Render("OTHER"))
	content.WriteString("\n")
	content.WriteString(formatHelpLine(keyStyle, descStyle, "?", "Toggle this help"))
	content.WriteString(formatHelpLine(keyStyle, descStyle, "q", "Quit"))

	content.WriteString(sectionStyle.Render("LOAD MAP COLORS"))
	content.WriteString("\n")
	content.WriteString(formatColorLine(ColorLightBg, "Mostly white backgrounds"))
	content.WriteString(formatColorLineNoNewline(ColorOtherBg, "Mostly other backgrounds"))

	box := boxStyle.Render(content.String())

	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// formatHelpLine formats a single help line with key and description
func formatHelpLine(keyStyle, descStyle lipgloss.Style, key, desc string) string {
	return keyStyle.Width(helpKeyColumnWidth).Render(key) + descStyle.Render(desc) + "\n"
}

// formatColorLine formats a color indicator line
func formatColorLine(color lipgloss.Color, desc string) string {
	return formatColorLineNoNewline(color, desc) + "\n"
}

// formatColorLineNoNewline formats a color indicator line without trailing newline
func formatColorLineNoNewline(color lipgloss.Color, desc string) string {
	colorStyle := lipgloss.NewStyle().Foreground(color)
	descStyle := lipgloss.NewStyle().Foreground(ColorText)
	return colorStyle.Width(helpKeyColumnWidth).Render("████") + descStyle.Render(desc)
}

// hint is one entry of the bottom help bar
type hint struct {
	key  string
	desc string
}

// HelpBar renders a bottom help bar with key hints
func HelpBar(width int, hints []hint) string {
	keyStyle := HelpKey
	sepStyle := HelpStyle

	var parts []string
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.key)+sepStyle.Render(" "+h.desc))
	}

	bar := strings.Join(parts, sepStyle.Render("  |  "))

	return HelpStyle.Width(width).MaxHeight(1).Render(bar)
}
