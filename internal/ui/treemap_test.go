package ui

import (
	"fmt"
	"testing"

	"github.com/jeffwilliams/squarify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquarifyDirect(t *testing.T) {
	root := &loadItem{
		size: 300,
		children: []*loadItem{
			{size: 100},
			{size: 100},
			{size: 100},
		},
	}

	rect := squarify.Rect{X: 0, Y: 0, W: 76, H: 22}
	blocks, metas := squarify.Squarify(root, rect, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	// squarify returns children at depth 0
	depth0 := 0
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
		}
	}
	assert.Equal(t, 3, depth0)
}

func makeLoads(files ...int) []DesignerLoad {
	loads := make([]DesignerLoad, len(files))
	for i, n := range files {
		loads[i] = DesignerLoad{Index: i, Name: fmt.Sprintf("Designer_%d", i+1), Files: n, Light: n / 2}
	}
	return loads
}

func TestLoadMapBlocksInBounds(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(80, 24)
	m.SetLoads(makeLoads(120, 90, 60, 40, 25, 10))

	contentW, contentH := 78, 22
	require.NotEmpty(t, m.blocks)

	seen := map[int]bool{}
	for _, b := range m.blocks {
		assert.GreaterOrEqual(t, b.X, 0)
		assert.GreaterOrEqual(t, b.Y, 0)
		assert.LessOrEqual(t, b.X+b.Width, contentW, "block %+v exceeds width", b)
		assert.LessOrEqual(t, b.Y+b.Height, contentH, "block %+v exceeds height", b)
		if b.Load != nil {
			assert.False(t, seen[b.Load.Index], "designer %d drawn twice", b.Load.Index)
			seen[b.Load.Index] = true
		}
	}
}

func TestLoadMapCoverage(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(80, 24)
	m.SetLoads(makeLoads(50, 50, 30, 20))

	area := 0
	for _, b := range m.blocks {
		area += b.Width * b.Height
	}
	total := 78 * 22
	assert.GreaterOrEqual(t, float64(area)/float64(total), 0.9,
		"blocks cover %d of %d cells", area, total)
}

func TestLoadMapGroupsBeyondLimit(t *testing.T) {
	files := make([]int, 20)
	for i := range files {
		files[i] = 10
	}

	m := NewLoadMap()
	m.SetSize(200, 60)
	m.SetLoads(makeLoads(files...))

	visible, grouped := 0, 0
	var group Block
	for _, b := range m.blocks {
		if b.IsGrouped {
			grouped++
			group = b
		} else {
			visible++
		}
	}
	assert.LessOrEqual(t, visible, maxVisibleItems)
	require.Equal(t, 1, grouped)
	assert.Equal(t, 20-visible, group.GroupCount)
	assert.Equal(t, (20-visible)*10, group.GroupFiles)
}

func TestLoadMapEmptyDesignersGrouped(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(80, 24)
	m.SetLoads(makeLoads(30, 0, 20, 0))

	var group *Block
	for i := range m.blocks {
		b := &m.blocks[i]
		if b.IsGrouped {
			group = b
			continue
		}
		assert.NotZero(t, b.Load.Files, "empty designer got a block")
	}
	require.NotNil(t, group)
	assert.Equal(t, 2, group.GroupCount)
	assert.Zero(t, group.GroupFiles)
}

func TestLoadMapAllEmpty(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(80, 24)
	m.SetLoads(makeLoads(0, 0, 0))

	require.Len(t, m.blocks, 1)
	assert.True(t, m.blocks[0].IsGrouped)
	assert.Equal(t, 3, m.blocks[0].GroupCount)
}

func TestLoadMapTooSmall(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(6, 3)
	m.SetLoads(makeLoads(10, 5))

	assert.Empty(t, m.blocks)
	assert.NotEmpty(t, m.View())
}

func TestLoadMapMoveToBlock(t *testing.T) {
	m := NewLoadMap()
	m.SetSize(80, 24)
	m.SetLoads(makeLoads(50, 50))
	m.SetFocused(true)
	require.Len(t, m.blocks, 2)

	var cur, other Block
	for _, b := range m.blocks {
		if b.Load.Index == m.Selected() {
			cur = b
		} else {
			other = b
		}
	}

	dx, dy := 0, 0
	switch {
	case other.X > cur.X:
		dx = 1
	case other.X < cur.X:
		dx = -1
	case other.Y > cur.Y:
		dy = 1
	default:
		dy = -1
	}

	// Moving away from the only neighbour keeps the selection
	m.MoveToBlock(-dx, -dy)
	assert.Equal(t, cur.Load.Index, m.Selected())

	m.MoveToBlock(dx, dy)
	assert.Equal(t, other.Load.Index, m.Selected())
}

func TestLoadMapSelectionSurvivesResize(t *testing.T) {
	m := NewLoadMap()
	m.SetLoads(makeLoads(40, 30, 20))
	m.SetSelected(2)
	m.SetSize(100, 30)

	assert.Equal(t, 2, m.Selected())
	assert.NotEmpty(t, m.View())
}
