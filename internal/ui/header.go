package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/sgsplit/internal/core"
)

// Header displays the app name, current phase and lifetime counters
type Header struct {
	phase         core.Phase
	root          string
	width         int
	runsLifetime  int
	filesLifetime int
}

// NewHeader creates a new header component
func NewHeader() Header {
	return Header{}
}

// SetPhase sets the phase badge and the folder being split
func (h *Header) SetPhase(phase core.Phase, root string) {
	h.phase = phase
	h.root = root
}

// SetLifetime sets the counters remembered across sessions
func (h *Header) SetLifetime(runs, files int) {
	h.runsLifetime = runs
	h.filesLifetime = files
}

// SetWidth sets the header width
func (h *Header) SetWidth(w int) {
	h.width = w
}

// View renders the header
func (h Header) View() string {
	appName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C084FC")). // soft violet
		Bold(true).
		Render("SG SPLIT")

	var badge string
	if name := h.phase.String(); name != "" {
		badge = PhaseBadge.Render(name)
	}

	var folder string
	if h.root != "" {
		folder = StatsStyle.Render(h.root)
	}

	var lifetime string
	if h.runsLifetime > 0 {
		lifetime = lipgloss.NewStyle().Foreground(ColorMuted).Render(
			fmt.Sprintf("%s runs · %s files split", FormatCount(h.runsLifetime), FormatCount(h.filesLifetime)))
	}

	sep := lipgloss.NewStyle().Foreground(ColorBorder).Render(" │ ")

	left := appName
	if badge != "" {
		left += sep + badge
	}

	// For narrow terminals, drop the lifetime counters first, then the folder
	total := lipgloss.Width(left) + lipgloss.Width(sep) + lipgloss.Width(folder) + lipgloss.Width(lifetime) + 2
	if h.width < total {
		lifetime = ""
		total = lipgloss.Width(left) + lipgloss.Width(sep) + lipgloss.Width(folder) + 2
	}
	if h.width < total {
		folder = ""
	}
	if folder != "" {
		left += sep + folder
	}

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(lifetime) - 2
	if gap < 1 {
		gap = 1
	}

	line := left + strings.Repeat(" ", gap) + lifetime
	return HeaderStyle.MaxHeight(1).Render(line)
}
