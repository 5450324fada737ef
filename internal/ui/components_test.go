package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lumipallolabs/sgsplit/internal/core"
	"github.com/lumipallolabs/sgsplit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLoadsFromSnapshot(t *testing.T) {
	snap := model.Snapshot{
		Workers: []model.WorkerFiles{
			{Name: "Designer_1", Files: []model.PlacedFile{
				{Name: "a.png", Background: model.BackgroundLight},
				{Name: "b.png", Background: model.BackgroundOther},
				{Name: "c.png", Background: model.BackgroundLight},
			}},
			{Name: "Designer_2"},
		},
	}

	loads := LoadsFromSnapshot(snap)

	assert.Equal(t, []DesignerLoad{
		{Index: 0, Name: "Designer_1", Files: 3, Light: 2},
		{Index: 1, Name: "Designer_2"},
	}, loads)
	assert.Equal(t, 1, loads[0].Other())
}

func TestDesignerListNavigation(t *testing.T) {
	d := NewDesignerList()
	assert.Equal(t, -1, d.Selected())

	d.SetSize(40, 4) // two visible rows
	d.SetLoads(makeLoads(10, 20, 30, 40))
	assert.Equal(t, 0, d.Selected())

	d.MoveUp()
	assert.Equal(t, 0, d.Selected())

	d.MoveDown()
	d.MoveDown()
	assert.Equal(t, 2, d.Selected())
	assert.Equal(t, 1, d.offset, "cursor kept on screen")

	d.GoToBottom()
	assert.Equal(t, 3, d.Selected())
	d.MoveDown()
	assert.Equal(t, 3, d.Selected())

	d.GoToTop()
	assert.Equal(t, 0, d.Selected())
	assert.Zero(t, d.offset)

	d.Select(2)
	assert.Equal(t, 2, d.Selected())
	d.Select(99)
	assert.Equal(t, 2, d.Selected(), "unknown index ignored")
}

func TestDesignerListRows(t *testing.T) {
	d := NewDesignerList()
	d.SetLoads(makeLoads(1200, 0))

	line := d.buildLine(d.loads[0])
	assert.Contains(t, line, "Designer_1")
	assert.Contains(t, line, "1,200")
	assert.Contains(t, line, strings.Repeat("█", loadBarWidth))

	empty := d.buildLine(d.loads[1])
	assert.Contains(t, empty, strings.Repeat("░", loadBarWidth))
	assert.GreaterOrEqual(t, d.RequiredWidth(), 30)
}

func TestLogPanelBounded(t *testing.T) {
	l := NewLogPanel()
	for i := 0; i < maxLogLines+20; i++ {
		l.Append(core.LogEvent{Level: core.LevelInfo, Message: "line", Time: time.Now()})
	}
	assert.Equal(t, maxLogLines, l.Len())

	l.Append(core.LogEvent{Level: core.LevelWarn, Message: "careful", Time: time.Now()})
	l.Append(core.LogEvent{Level: core.LevelError, Message: "broken", Time: time.Now()})
	assert.Equal(t, 2, l.Warnings())

	l.SetSize(60, 6)
	view := l.View()
	assert.Contains(t, view, "careful")
	assert.Contains(t, view, "broken")

	l.Clear()
	assert.Zero(t, l.Len())
}

func TestFormValidation(t *testing.T) {
	f := NewForm("", 0, 1, 60)
	assert.False(t, f.Valid())

	f = NewForm("/data/images", 5, 1, 60)
	assert.True(t, f.Valid())
	assert.Equal(t, "/data/images", f.Folder())
	assert.Equal(t, 5, f.Workers())

	f = NewForm("/data/images", 61, 1, 60)
	assert.False(t, f.Valid())
}

func TestFormTyping(t *testing.T) {
	f := NewForm("", 0, 1, 60)
	f.SetError("boom")

	for _, r := range "/tmp/x" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	f.NextField()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})

	assert.Equal(t, "/tmp/x", f.Folder())
	assert.Equal(t, 4, f.Workers())
	assert.Empty(t, f.err, "typing clears the error")
}

func TestHeaderDropsDetailsWhenNarrow(t *testing.T) {
	h := NewHeader()
	h.SetPhase(core.PhaseDistributing, "/data/images")
	h.SetLifetime(3, 1500)

	h.SetWidth(120)
	wide := h.View()
	assert.Contains(t, wide, "/data/images")
	assert.Contains(t, wide, "1,500 files split")

	h.SetWidth(30)
	narrow := h.View()
	assert.NotContains(t, narrow, "files split")
}
