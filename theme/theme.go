package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Note       rune // █ note body
	NoteEdge   rune // ▌ start of a note
	Cursor     rune // │ edit cursor
	Beat       rune // ┊ beat line
	Measure    rune // │ measure line
	Empty      rune // background cell
	SelectArea rune // ░ rectangle selection
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Note:       '█',
			NoteEdge:   '▌',
			Cursor:     '│',
			Beat:       '┊',
			Measure:    '│',
			Empty:      ' ',
			SelectArea: '░',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0  // white-key rows
	RoleSurface  = 0.1  // black-key rows
	RoleGrid     = 0.25 // beat and measure lines
	RoleFG       = 0.45 // readable text
	RoleSelect   = 0.35 // selection rectangle
	RoleCursor   = 0.9  // edit cursor
	RoleNote     = 0.6  // unselected notes
	RoleSelected = 1.0  // selected notes
	RoleAccent   = 0.7  // header
)

// Hex returns the color at a role as "#rrggbb"
func (t *Theme) Hex(norm float64) string {
	return t.Palette.Lookup(norm).Hex()
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Hex(norm))
}

func (t *Theme) BG() lipgloss.Color { return t.Color(RoleBG) }

func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }

func (t *Theme) Grid() lipgloss.Color { return t.Color(RoleGrid) }

func (t *Theme) FG() lipgloss.Color { return t.Color(RoleFG) }

func (t *Theme) Accent() lipgloss.Color { return t.Color(RoleAccent) }

func (t *Theme) Muted() lipgloss.Color { return t.Color(RoleGrid) }

// Contrast picks black or white text, whichever reads better on bg
func Contrast(bg string) lipgloss.Color {
	c, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color("#ffffff")
	}
	_, _, l := c.Hsl()
	if l > 0.55 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}
