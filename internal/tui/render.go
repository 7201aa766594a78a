package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/lofidesk/internal/desktop"
	"github.com/1broseidon/lofidesk/internal/drag"
	"github.com/1broseidon/lofidesk/internal/launcher"
	"github.com/1broseidon/lofidesk/internal/widgets"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// launcher bar plus help line
	chromeRows = 2

	controlsLabel = "[_][x]"

	// minGrip is how many title bar cells of a window always stay on screen.
	minGrip = 10
)

var (
	frameStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeFrameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true)
	bodyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	barStyle        = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	toolStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	openToolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238"))
	activeToolStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("236"))
)

type control int

const (
	controlNone control = iota
	controlMinimize
	controlClose
)

type hit struct {
	id      string
	region  drag.Region
	control control
}

func toolZoneID(toolID string) string { return "tool:" + toolID }

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) desktopRows() int {
	_, h := m.size()
	if h <= chromeRows {
		return 0
	}
	return h - chromeRows
}

func (m *Model) launcherRow() int {
	return m.desktopRows()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// toCell maps desktop units to the terminal cell containing them.
func (m *Model) toCell(p desktop.Position) desktop.Position {
	return desktop.Position{
		X: floorDiv(p.X, m.cfg.Cell.Width),
		Y: floorDiv(p.Y, m.cfg.Cell.Height),
	}
}

// toUnits maps a terminal cell to desktop units.
func (m *Model) toUnits(c desktop.Position) desktop.Position {
	return desktop.Position{X: c.X * m.cfg.Cell.Width, Y: c.Y * m.cfg.Cell.Height}
}

// onScreen clamps a window's top-left cell so its title row and at least
// minGrip cells of its title bar are visible.
func (m *Model) onScreen(c desktop.Position) desktop.Position {
	width, _ := m.size()
	ww := m.cfg.Window.Width
	grip := min(minGrip, ww)
	c.X = clamp(c.X, grip-ww, width-grip)
	c.Y = clamp(c.Y, 0, m.desktopRows()-1)
	return c
}

// constrain is the drag bound: a position whose cell is off screen is
// pulled back onto the nearest reachable cell.
func (m *Model) constrain(p desktop.Position) desktop.Position {
	c := m.toCell(p)
	v := m.onScreen(c)
	if v.X != c.X {
		p.X = v.X * m.cfg.Cell.Width
	}
	if v.Y != c.Y {
		p.Y = v.Y * m.cfg.Cell.Height
	}
	return p
}

// drawnAt is the cell where a window appears: the live candidate while it
// is being dragged, its committed position otherwise.
func (m *Model) drawnAt(w desktop.Window) desktop.Position {
	p := w.Position
	if c, ok := m.drag.Candidate(w.ID); ok {
		p = c
	}
	return m.onScreen(m.toCell(p))
}

// hitTest finds the topmost visible window under cell p.
func (m *Model) hitTest(p desktop.Position) (hit, bool) {
	if p.Y < 0 || p.Y >= m.desktopRows() {
		return hit{}, false
	}
	ww, wh := m.cfg.Window.Width, m.cfg.Window.Height
	vis := m.desk.Snapshot().Visible()
	for i := len(vis) - 1; i >= 0; i-- {
		w := vis[i]
		at := m.drawnAt(w)
		dx, dy := p.X-at.X, p.Y-at.Y
		if dx < 0 || dy < 0 || dx >= ww || dy >= wh {
			continue
		}
		h := hit{id: w.ID, region: drag.RegionBody}
		if dy == 0 {
			switch {
			case dx >= ww-7 && dx <= ww-5:
				h.region, h.control = drag.RegionControl, controlMinimize
			case dx >= ww-4 && dx <= ww-2:
				h.region, h.control = drag.RegionControl, controlClose
			default:
				h.region = drag.RegionHandle
			}
		}
		return h, true
	}
	return hit{}, false
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// canvas is a grid of styled cells painted back to front.
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int, fill rune, style *lipgloss.Style) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: fill, style: style}
		}
		c.cells[y] = row
	}
	return c
}

func (c *canvas) text(x, y int, s string, style *lipgloss.Style) {
	if y < 0 || y >= c.h {
		return
	}
	for _, r := range s {
		if x >= 0 && x < c.w {
			c.cells[y][x] = cell{r: r, style: style}
		}
		x++
	}
}

func (c *canvas) String() string {
	var b strings.Builder
	var run strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var cur *lipgloss.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur != nil {
				b.WriteString(cur.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
	}
	return b.String()
}

func (m *Model) View() string {
	width, _ := m.size()
	rows := m.desktopRows()

	wp := m.wallpaper.Current()
	wpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(wp.Color))
	cv := newCanvas(width, rows, wp.Pattern, &wpStyle)

	snap := m.desk.Snapshot()
	for _, w := range snap.Visible() {
		m.drawWindow(cv, w, w.ID == snap.ActiveID)
	}

	parts := []string{cv.String(), m.renderLauncher(snap, width)}
	if m.status != "" {
		parts = append(parts, statusStyle.Width(width).Render(m.status))
	} else {
		parts = append(parts, m.help.View(m.keys))
	}
	return m.zones.Scan(strings.Join(parts, "\n"))
}

func (m *Model) drawWindow(cv *canvas, w desktop.Window, active bool) {
	ww, wh := m.cfg.Window.Width, m.cfg.Window.Height
	at := m.drawnAt(w)

	frame, title := &frameStyle, &titleStyle
	if active {
		frame, title = &activeFrameStyle, &activeTitleStyle
	}

	titleWidth := ww - 2 - len(controlsLabel)
	name := []rune(" " + w.DisplayName + " ")
	if len(name) > titleWidth {
		name = name[:titleWidth]
	}
	cv.text(at.X, at.Y, "┌", frame)
	cv.text(at.X+1, at.Y, string(name)+strings.Repeat("─", titleWidth-len(name)), title)
	cv.text(at.X+1+titleWidth, at.Y, controlsLabel, frame)
	cv.text(at.X+ww-1, at.Y, "┐", frame)

	inner := ww - 2
	var lines []string
	if r, ok := w.Content.(widgets.Renderer); ok {
		lines = r.Render(inner, wh-2)
	}
	for row := 0; row < wh-2; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		pad := inner - len([]rune(line))
		if pad < 0 {
			pad = 0
		}
		y := at.Y + 1 + row
		cv.text(at.X, y, "│", frame)
		cv.text(at.X+1, y, line+strings.Repeat(" ", pad), &bodyStyle)
		cv.text(at.X+ww-1, y, "│", frame)
	}
	cv.text(at.X, at.Y+wh-1, "└"+strings.Repeat("─", inner)+"┘", frame)
}

func (m *Model) renderLauncher(snap desktop.Snapshot, width int) string {
	var b strings.Builder
	for i, t := range m.launcher.Registry().Tools() {
		style := toolStyle
		marker := " "
		switch launcher.StateOf(t.ID, snap) {
		case launcher.ToolActive:
			style = activeToolStyle
		case launcher.ToolOpen:
			style = openToolStyle
		case launcher.ToolMinimized:
			marker = "•"
		}
		label := fmt.Sprintf(" %d %s%s", i+1, t.DisplayName, marker)
		b.WriteString(m.zones.Mark(toolZoneID(t.ID), style.Render(label)))
		b.WriteString(barStyle.Render(" "))
	}
	return barStyle.Width(width).Render(b.String())
}
