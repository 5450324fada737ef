package ui

import (
	"strings"

	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/muesli/reflow/truncate"
)

// maxLogLines bounds the retained history
const maxLogLines = 500

// LogPanel shows the most recent operator log lines
type LogPanel struct {
	lines  []core.LogEvent
	width  int
	height int
}

// NewLogPanel creates an empty log panel
func NewLogPanel() LogPanel {
	return LogPanel{}
}

// SetSize sets the panel dimensions
func (l *LogPanel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Append adds a line, dropping the oldest beyond maxLogLines
func (l *LogPanel) Append(e core.LogEvent) {
	l.lines = append(l.lines, e)
	if len(l.lines) > maxLogLines {
		l.lines = l.lines[len(l.lines)-maxLogLines:]
	}
}

// Clear removes all lines
func (l *LogPanel) Clear() {
	l.lines = nil
}

// Len returns the number of retained lines
func (l LogPanel) Len() int {
	return len(l.lines)
}

// Warnings counts retained lines at warn level or above
func (l LogPanel) Warnings() int {
	n := 0
	for _, e := range l.lines {
		if e.Level >= core.LevelWarn {
			n++
		}
	}
	return n
}

// View renders the tail of the log, one line per entry
func (l LogPanel) View() string {
	inner := l.height - 3 // border and title
	if inner < 1 {
		inner = 1
	}
	textW := l.width - 4
	if textW < 10 {
		textW = 10
	}

	start := len(l.lines) - inner
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	b.WriteString(PanelTitle.Render("Log"))
	for _, e := range l.lines[start:] {
		line := truncate.StringWithTail(e.String(), uint(textW), "…")
		b.WriteString("\n")
		switch e.Level {
		case core.LevelWarn:
			b.WriteString(LogWarn.Render(line))
		case core.LevelError:
			b.WriteString(LogError.Render(line))
		default:
			b.WriteString(LogInfo.Render(line))
		}
	}

	return PanelStyle.Width(l.width).Height(l.height - 2).Render(b.String())
}
