package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/geometry"
	"go-pianoroll/surface"
	"go-pianoroll/theme"
)

type cell struct {
	ch rune
	fg string
	bg string
}

// renderRoll rasterizes the visible part of the canvas into w x h cells,
// with a pitch gutter on the left
func (m Model) renderRoll(w, h int) string {
	grid := m.Editor.Grid()
	v := m.Editor.Viewport()
	sym := m.Theme.Symbols
	bgWhite, bgBlack := m.Theme.Hex(theme.RoleBG), m.Theme.Hex(theme.RoleSurface)
	lineColor := m.Theme.Hex(theme.RoleGrid)
	selectColor := m.Theme.Hex(theme.RoleSelect)

	cells := make([][]cell, h)
	pitches := make([]int, h)
	z := v.Zoom()
	for r := range cells {
		_, y := v.ToSurface(0, float64(r)+0.5)
		pitch := grid.MaxPitch - int(math.Floor(y/grid.RowHeight))
		pitches[r] = pitch
		bg := bgWhite
		if geometry.IsBlackKey(pitch) {
			bg = bgBlack
		}
		cells[r] = make([]cell, w)
		for c := range cells[r] {
			cells[r][c] = cell{ch: sym.Empty, fg: lineColor, bg: bg}
			x0, _ := v.ToSurface(float64(c), 0)
			pos0, pos1 := grid.PositionOf(x0), grid.PositionOf(x0+1/z)
			if beat := math.Ceil(pos0); beat < pos1 {
				cells[r][c].ch = sym.Beat
				if int(beat)%4 == 0 {
					cells[r][c].ch = sym.Measure
				}
			}
		}
	}

	for _, s := range m.Canvas.Shapes() {
		if !s.Visible() {
			continue
		}
		sx0, sy0 := v.ToScreen(s.X(), s.Y())
		sx1, sy1 := v.ToScreen(s.X()+s.Width(), s.Y()+s.Height())
		c0, r0 := int(math.Floor(sx0)), int(math.Floor(sy0))
		c1, r1 := int(math.Ceil(sx1)), int(math.Ceil(sy1))

		switch s.Kind() {
		case surface.KindRect:
			if c1 <= c0 {
				c1 = c0 + 1
			}
			for r := max(r0, 0); r < min(r1, h); r++ {
				for c := max(c0, 0); c < min(c1, w); c++ {
					if s.Color() == selectColor {
						cells[r][c].ch = sym.SelectArea
						cells[r][c].fg = selectColor
						continue
					}
					cells[r][c] = cell{ch: ' ', fg: s.Color(), bg: s.Color()}
					if c == c0 {
						cells[r][c].ch = sym.NoteEdge
						cells[r][c].fg = bgBlack
					}
				}
			}
		case surface.KindLine:
			if c0 < 0 || c0 >= w {
				continue
			}
			for r := max(r0, 0); r < min(r1, h); r++ {
				cells[r][c0].ch = sym.Cursor
				cells[r][c0].fg = s.Color()
			}
		case surface.KindText:
			label, ok := s.(surface.Label)
			if !ok || r0 < 0 || r0 >= h {
				continue
			}
			col := c0 + 1
			if col < 0 || col >= w {
				continue
			}
			bg := cells[r0][col].bg
			for _, ch := range label.Text() {
				if col >= w || cells[r0][col].bg != bg {
					break
				}
				cells[r0][col].ch = ch
				cells[r0][col].fg = string(theme.Contrast(bg))
				col++
			}
		}
	}

	lines := make([]string, h)
	for r, row := range cells {
		lines[r] = m.renderGutter(pitches, r) + renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// renderGutter names a pitch on the first row it occupies
func (m Model) renderGutter(pitches []int, r int) string {
	p := pitches[r]
	style := lipgloss.NewStyle().Foreground(m.Theme.FG())
	if geometry.IsBlackKey(p) {
		style = style.Foreground(m.Theme.Muted())
	}
	if p < 0 || p > 127 || (r > 0 && pitches[r-1] == p) {
		return strings.Repeat(" ", gutterWidth)
	}
	return style.Render(fmt.Sprintf("%-*s", gutterWidth, geometry.PitchName(p)))
}

// renderRow styles runs of cells that share colors
func renderRow(row []cell) string {
	var out strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].fg == row[start].fg && row[i].bg == row[start].bg {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.ch)
		}
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(row[start].fg)).
			Background(lipgloss.Color(row[start].bg))
		out.WriteString(style.Render(run.String()))
		start = i
	}
	return out.String()
}
