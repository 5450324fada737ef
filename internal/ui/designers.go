package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/sgsplit/internal/model"
)

const loadBarWidth = 10 // Width of load proportion bar [██████████]

// DesignerLoad is the outcome for one designer folder
type DesignerLoad struct {
	Index int
	Name  string
	Files int
	Light int
}

// Other returns the number of non-white files
func (d DesignerLoad) Other() int {
	return d.Files - d.Light
}

// LoadsFromSnapshot summarizes each designer's placed files
func LoadsFromSnapshot(s model.Snapshot) []DesignerLoad {
	loads := make([]DesignerLoad, len(s.Workers))
	for i, w := range s.Workers {
		loads[i] = DesignerLoad{Index: i, Name: w.Name, Files: len(w.Files)}
		for _, f := range w.Files {
			if f.Background == model.BackgroundLight {
				loads[i].Light++
			}
		}
	}
	return loads
}

// DesignerList displays designers with their load
type DesignerList struct {
	loads   []DesignerLoad
	max     int
	cursor  int
	offset  int // scroll offset
	width   int
	height  int
	focused bool
}

// NewDesignerList creates an empty designer list
func NewDesignerList() DesignerList {
	return DesignerList{}
}

// SetLoads replaces the list contents
func (d *DesignerList) SetLoads(loads []DesignerLoad) {
	d.loads = loads
	d.cursor = 0
	d.offset = 0
	d.max = 0
	for _, l := range loads {
		if l.Files > d.max {
			d.max = l.Files
		}
	}
}

// SetSize sets the panel dimensions
func (d *DesignerList) SetSize(w, h int) {
	d.width = w
	d.height = h
	d.ensureVisible()
}

// SetFocused sets focus state
func (d *DesignerList) SetFocused(focused bool) {
	d.focused = focused
}

// Selected returns the index of the highlighted designer, or -1
func (d DesignerList) Selected() int {
	if d.cursor >= 0 && d.cursor < len(d.loads) {
		return d.loads[d.cursor].Index
	}
	return -1
}

// Select highlights the designer with the given index
func (d *DesignerList) Select(index int) {
	for i, l := range d.loads {
		if l.Index == index {
			d.cursor = i
			d.ensureVisible()
			return
		}
	}
}

// MoveUp moves cursor up
func (d *DesignerList) MoveUp() {
	if d.cursor > 0 {
		d.cursor--
		d.ensureVisible()
	}
}

// MoveDown moves cursor down
func (d *DesignerList) MoveDown() {
	if d.cursor < len(d.loads)-1 {
		d.cursor++
		d.ensureVisible()
	}
}

// GoToTop moves to first item
func (d *DesignerList) GoToTop() {
	d.cursor = 0
	d.offset = 0
}

// GoToBottom moves to last item
func (d *DesignerList) GoToBottom() {
	d.cursor = len(d.loads) - 1
	if d.cursor < 0 {
		d.cursor = 0
	}
	d.ensureVisible()
}

func (d *DesignerList) ensureVisible() {
	if d.cursor < d.offset {
		d.offset = d.cursor
	}
	maxVisible := d.height - 2 // account for borders
	if maxVisible < 1 {
		maxVisible = 1
	}
	if d.cursor >= d.offset+maxVisible {
		d.offset = d.cursor - maxVisible + 1
	}
}

// buildLine renders one row without selection styling
func (d DesignerList) buildLine(l DesignerLoad) string {
	filled := 0
	if d.max > 0 {
		filled = l.Files * loadBarWidth / d.max
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", loadBarWidth-filled)
	return fmt.Sprintf("%-12s %s %6s  %s/%s", l.Name, bar, FormatCount(l.Files),
		FormatCount(l.Light), FormatCount(l.Other()))
}

// RequiredWidth returns the width needed to show every row
func (d DesignerList) RequiredWidth() int {
	w := 30
	for _, l := range d.loads {
		if lw := lipgloss.Width(d.buildLine(l)) + 4; lw > w {
			w = lw
		}
	}
	return w
}

// View renders the list
func (d DesignerList) View() string {
	maxVisible := d.height - 2
	if maxVisible < 1 {
		maxVisible = 1
	}

	var lines []string
	for i := d.offset; i < len(d.loads) && i < d.offset+maxVisible; i++ {
		line := d.buildLine(d.loads[i])
		if i == d.cursor && d.focused {
			line = ListItemSelected.Render(line)
		} else {
			line = ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	style := PanelStyle.Width(d.width - 2).Height(d.height - 2)
	if d.focused {
		style = style.BorderForeground(ColorPrimary)
	}
	return style.Render(strings.Join(lines, "\n"))
}
