package ui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jeffwilliams/squarify"
)

// Block represents a rectangle in the load map
type Block struct {
	Load          *DesignerLoad // nil for the grouped block
	X, Y          int
	Width, Height int

	// For the grouped remainder block
	IsGrouped  bool
	GroupCount int
	GroupFiles int
}

// loadItem wraps a designer for the squarify algorithm
type loadItem struct {
	load     *DesignerLoad
	size     float64
	children []*loadItem
}

// Size implements squarify.TreeSizer
func (l *loadItem) Size() float64 {
	return l.size
}

// NumChildren implements squarify.TreeSizer
func (l *loadItem) NumChildren() int {
	return len(l.children)
}

// Child implements squarify.TreeSizer
func (l *loadItem) Child(i int) squarify.TreeSizer {
	return l.children[i]
}

const (
	minBlockWidth   = 8  // minimum width for any block (fits short label)
	minBlockHeight  = 3  // minimum height for any block (border + 1 line text)
	maxVisibleItems = 15 // max designers before grouping the rest into "N more"
)

// LoadMap draws designer folders as a squarified treemap sized by file count
type LoadMap struct {
	loads    []DesignerLoad
	blocks   []Block
	selected int // designer index
	width    int
	height   int
	focused  bool
}

// NewLoadMap creates an empty load map
func NewLoadMap() LoadMap {
	return LoadMap{selected: -1}
}

// SetLoads replaces the designers shown
func (m *LoadMap) SetLoads(loads []DesignerLoad) {
	m.loads = loads
	m.selected = -1
	if len(loads) > 0 {
		m.selected = loads[0].Index
	}
	m.layout()
}

// SetSize sets the panel dimensions
func (m *LoadMap) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.layout()
}

// SetFocused sets focus state
func (m *LoadMap) SetFocused(focused bool) {
	m.focused = focused
}

// SetSelected highlights a designer (for sync from the list)
func (m *LoadMap) SetSelected(index int) {
	m.selected = index
}

// Selected returns the highlighted designer index
func (m LoadMap) Selected() int {
	return m.selected
}

// SelectFirst selects the largest visible block
func (m *LoadMap) SelectFirst() {
	for _, b := range m.blocks {
		if b.Load != nil {
			m.selected = b.Load.Index
			return
		}
	}
}

// MoveToBlock moves selection to an adjacent block
func (m *LoadMap) MoveToBlock(dx, dy int) {
	var current *Block
	for i := range m.blocks {
		if m.blocks[i].Load != nil && m.blocks[i].Load.Index == m.selected {
			current = &m.blocks[i]
			break
		}
	}
	if current == nil {
		m.SelectFirst()
		return
	}

	cx := current.X + current.Width/2
	cy := current.Y + current.Height/2

	var best *Block
	bestDist := -1
	for i := range m.blocks {
		b := &m.blocks[i]
		if b == current || b.Load == nil {
			continue
		}
		bx := b.X + b.Width/2
		by := b.Y + b.Height/2

		if dx > 0 && bx <= cx {
			continue
		}
		if dx < 0 && bx >= cx {
			continue
		}
		if dy > 0 && by <= cy {
			continue
		}
		if dy < 0 && by >= cy {
			continue
		}

		dist := abs(bx-cx) + abs(by-cy)
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = b
		}
	}

	if best != nil {
		m.selected = best.Load.Index
	}
}

// layout calculates block positions using the squarify library
func (m *LoadMap) layout() {
	m.blocks = nil

	contentW := m.width - 2
	contentH := m.height - 2
	if contentW < minBlockWidth || contentH < minBlockHeight {
		return
	}

	// Empty folders have no area; they are counted in the grouped block
	items := make([]*loadItem, 0, len(m.loads))
	empty := 0
	for i := range m.loads {
		if m.loads[i].Files == 0 {
			empty++
			continue
		}
		items = append(items, &loadItem{load: &m.loads[i], size: float64(m.loads[i].Files)})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].size > items[j].size
	})
	if len(items) == 0 {
		if empty > 0 {
			m.blocks = append(m.blocks, Block{
				Width: contentW, Height: minBlockHeight,
				IsGrouped: true, GroupCount: empty,
			})
		}
		return
	}

	rect := squarify.Rect{X: 0, Y: 0, W: float64(contentW), H: float64(contentH)}

	// Shrink the visible set until every block can hold a label
	maxVisible := len(items)
	if maxVisible > maxVisibleItems {
		maxVisible = maxVisibleItems
	}

	var blocks []squarify.Block
	var metas []squarify.Meta
	numVisible := maxVisible
	for {
		numVisible = maxVisible
		mainRect := rect
		grouped := len(items)-numVisible > 0 || empty > 0
		if grouped {
			mainRect.H = float64(contentH - minBlockHeight)
		}

		root := &loadItem{children: items[:numVisible]}
		for _, c := range root.children {
			root.size += c.size
		}
		blocks, metas = squarify.Squarify(root, mainRect, squarify.Options{
			MaxDepth: 1,
			Sort:     true,
		})

		allFit := true
		for i, b := range blocks {
			if i >= len(metas) || metas[i].Depth != 0 {
				continue
			}
			w := int(math.Floor(b.X+b.W)) - int(math.Floor(b.X))
			h := int(math.Floor(b.Y+b.H)) - int(math.Floor(b.Y))
			if w < minBlockWidth || h < minBlockHeight {
				allFit = false
				break
			}
		}
		if allFit || maxVisible == 1 {
			break
		}
		maxVisible--
	}

	for i, b := range blocks {
		item, ok := b.TreeSizer.(*loadItem)
		if !ok || i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		x := int(math.Round(b.X))
		y := int(math.Round(b.Y))
		w := int(math.Round(b.X+b.W)) - x
		h := int(math.Round(b.Y+b.H)) - y
		if w < 1 || h < 1 {
			continue
		}
		m.blocks = append(m.blocks, Block{Load: item.load, X: x, Y: y, Width: w, Height: h})
	}

	if rest := len(items) - numVisible; rest > 0 || empty > 0 {
		files := 0
		for _, it := range items[numVisible:] {
			files += it.load.Files
		}
		m.blocks = append(m.blocks, Block{
			X:          0,
			Y:          contentH - minBlockHeight,
			Width:      contentW,
			Height:     minBlockHeight,
			IsGrouped:  true,
			GroupCount: rest + empty,
			GroupFiles: files,
		})
	}
}

// View renders the load map
func (m LoadMap) View() string {
	contentW := m.width - 2
	contentH := m.height - 2
	if contentW < 1 || contentH < 1 || len(m.blocks) == 0 {
		return PanelStyle.Width(m.width - 2).Height(m.height - 2).Render("No files placed")
	}

	grid := make([][]rune, contentH)
	colors := make([][]lipgloss.Style, contentH)
	for i := range grid {
		grid[i] = make([]rune, contentW)
		colors[i] = make([]lipgloss.Style, contentW)
		for j := range grid[i] {
			grid[i][j] = ' '
			colors[i][j] = lipgloss.NewStyle()
		}
	}

	for _, b := range m.blocks {
		m.drawBlock(grid, colors, b, contentW, contentH)
	}

	lines := make([]string, contentH)
	for y := 0; y < contentH; y++ {
		var line strings.Builder
		for x := 0; x < contentW; x++ {
			line.WriteString(colors[y][x].Render(string(grid[y][x])))
		}
		lines[y] = line.String()
	}

	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder)
	if m.focused {
		style = style.BorderForeground(ColorPrimary)
	}
	return style.Render(strings.Join(lines, "\n"))
}

// drawBlock draws a single block onto the grid
func (m LoadMap) drawBlock(grid [][]rune, colors [][]lipgloss.Style, b Block, gridW, gridH int) {
	if b.Width < 1 || b.Height < 1 {
		return
	}

	// Mostly-white folders use the light palette
	bg, fg := ColorEmptyBg, ColorMuted
	var label, detail string
	if b.IsGrouped {
		label = fmt.Sprintf("%d more", b.GroupCount)
		detail = FormatCount(b.GroupFiles) + " files"
	} else if b.Load != nil {
		label = b.Load.Name
		detail = fmt.Sprintf("%s files", FormatCount(b.Load.Files))
		if b.Load.Light*2 >= b.Load.Files {
			bg, fg = ColorLightBg, ColorLight
		} else {
			bg, fg = ColorOtherBg, ColorOther
		}
	}

	isSelected := m.focused && b.Load != nil && b.Load.Index == m.selected

	blockStyle := lipgloss.NewStyle().Background(bg).Foreground(fg)
	borderStyle := lipgloss.NewStyle().Background(bg).Foreground(lipgloss.Color("#4B5563"))
	if isSelected {
		blockStyle = blockStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
		borderStyle = borderStyle.Background(ColorPrimary).Foreground(lipgloss.Color("#FFFFFF"))
	}

	set := func(x, y int, r rune, s lipgloss.Style) {
		if x >= 0 && y >= 0 && x < gridW && y < gridH {
			grid[y][x] = r
			colors[y][x] = s
		}
	}

	right := b.X + b.Width - 1
	bottom := b.Y + b.Height - 1

	for y := b.Y; y <= bottom; y++ {
		for x := b.X; x <= right; x++ {
			set(x, y, ' ', blockStyle)
		}
	}
	for x := b.X; x <= right; x++ {
		set(x, b.Y, '─', borderStyle)
		set(x, bottom, '─', borderStyle)
	}
	for y := b.Y; y <= bottom; y++ {
		set(b.X, y, '│', borderStyle)
		set(right, y, '│', borderStyle)
	}
	set(b.X, b.Y, '┌', borderStyle)
	set(right, b.Y, '┐', borderStyle)
	set(b.X, bottom, '└', borderStyle)
	set(right, bottom, '┘', borderStyle)

	// Label and file count if space permits
	if b.Width > 4 && b.Height > 2 {
		maxLen := b.Width - 4
		writeText := func(y int, text string) {
			for i, ch := range []rune(text) {
				if i >= maxLen {
					break
				}
				set(b.X+2+i, y, ch, blockStyle)
			}
		}
		writeText(b.Y+1, label)
		if b.Height > 3 {
			writeText(b.Y+2, detail)
		}
	}
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
