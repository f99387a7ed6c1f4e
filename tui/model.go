package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/debug"
	"go-pianoroll/roll"
	"go-pianoroll/surface"
	"go-pianoroll/theme"
	"go-pianoroll/widgets"
)

const (
	gutterWidth = 5 // pitch names left of the roll
	headerRows  = 1
	footerRows  = 1

	doubleClickWindow = 400 * time.Millisecond
	scrollStep        = 3
	tickInterval      = 100 * time.Millisecond
)

// Status is fixed information shown in the header
type Status struct {
	Port    string
	Tempo   int
	Session string
	Warning error // replaces the header until the first edit
}

type Model struct {
	Editor *roll.Editor
	Canvas *surface.Canvas
	Theme  *theme.Theme
	Status Status

	keys     keyMap
	help     help.Model
	showHelp bool
	quitting bool
	width    int
	height   int

	pressed   bool
	lastClick time.Time
	clickX    int
	clickY    int
	now       func() time.Time
}

type tickMsg struct{}

func NewModel(editor *roll.Editor, canvas *surface.Canvas, th *theme.Theme, status Status) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(th.Accent())
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(th.Muted())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(th.Muted())
	return Model{
		Editor: editor,
		Canvas: canvas,
		Theme:  th,
		Status: status,
		keys:   defaultKeyMap(),
		help:   h,
		now:    time.Now,
	}
}

// EditorColors maps theme roles to editor shape fills
func EditorColors(th *theme.Theme) roll.Colors {
	return roll.Colors{
		Note:     th.Hex(theme.RoleNote),
		Selected: th.Hex(theme.RoleSelected),
		Cursor:   th.Hex(theme.RoleCursor),
		Select:   th.Hex(theme.RoleSelect),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		w, h := m.rollSize()
		m.Editor.Resize(float64(w), float64(h))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.Editor.Playing() {
				m.Editor.TogglePlayback()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		default:
			m.Editor.HandleKey(msg.String())
		}

	case tea.MouseMsg:
		m.mouse(msg)

	case tickMsg:
		return m, tick()
	}

	return m, nil
}

func (m *Model) rollSize() (int, int) {
	return max(m.width-gutterWidth, 1), max(m.height-headerRows-footerRows, 1)
}

func (m *Model) pointer(msg tea.MouseMsg) roll.Pointer {
	return roll.Pointer{
		X:     float64(msg.X-gutterWidth) + 0.5,
		Y:     float64(msg.Y-headerRows) + 0.5,
		Shift: msg.Shift,
		Ctrl:  msg.Ctrl,
		Alt:   msg.Alt,
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	p := m.pointer(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			now := m.now()
			if now.Sub(m.lastClick) < doubleClickWindow && msg.X == m.clickX && msg.Y == m.clickY {
				m.lastClick = time.Time{}
				m.Editor.DoubleClick(p)
				return
			}
			m.lastClick, m.clickX, m.clickY = now, msg.X, msg.Y
			m.pressed = true
			m.Editor.PointerDown(p)
		case tea.MouseButtonWheelUp:
			m.scroll(0, scrollStep)
		case tea.MouseButtonWheelDown:
			m.scroll(0, -scrollStep)
		case tea.MouseButtonWheelLeft:
			m.scroll(scrollStep, 0)
		case tea.MouseButtonWheelRight:
			m.scroll(-scrollStep, 0)
		}

	case tea.MouseActionMotion:
		if m.pressed {
			m.Editor.PointerMove(p)
		} else {
			m.Editor.SetPointer(p)
		}

	case tea.MouseActionRelease:
		if m.pressed {
			m.pressed = false
			m.Editor.PointerUp(p)
		}
	}
}

// scroll pans by whole cells, as if the roll was dragged by dx, dy
func (m *Model) scroll(dx, dy float64) {
	v := m.Editor.Viewport()
	v.Begin(0, 0)
	v.Pan(dx, dy)
	debug.LogEvery(10, "tui", "scroll to (%.1f, %.1f)", v.X, v.Y)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())

	playState := "STOP"
	if m.Editor.Playing() {
		playState = "PLAY"
	}
	port := m.Status.Port
	if port == "" {
		port = "no midi"
	}
	colors := EditorColors(m.Theme)
	header := headerStyle.Render(fmt.Sprintf("go-pianoroll  %s  %3dbpm  %s  cursor:%.2f  notes:%d  sel:%d  %s  ",
		playState, m.Status.Tempo, port, m.Editor.Cursor(), m.Editor.Len(),
		m.Editor.Selection().Len(), m.Editor.State())) +
		widgets.RenderLegend(
			widgets.RenderLegendItem(colors.Note, "note"),
			widgets.RenderLegendItem(colors.Selected, "selected"),
		)

	if debug.Enabled() {
		header += dimStyle.Render("  log:" + m.Status.Session)
	}

	if m.Status.Warning != nil && m.Editor.History().Len() == 1 {
		warnStyle := lipgloss.NewStyle().Foreground(m.Theme.Color(theme.RoleCursor))
		header = warnStyle.Render("! " + issue(m.Status.Warning))
	}

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n")
	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(m.keys.sections()))
		out.WriteString("\n")
		out.WriteString(dimStyle.Render("? to close"))
		return out.String()
	}
	w, h := m.rollSize()
	out.WriteString(m.renderRoll(w, h))
	out.WriteString("\n")
	out.WriteString(m.help.View(m.keys))
	return out.String()
}

// issue is the user-facing message of a wrapped error
func issue(err error) string {
	if msg := fmsg.GetIssue(err); msg != "" {
		return msg
	}
	if chain := fault.Flatten(err); len(chain) > 0 && chain[0].Message != "" {
		return chain[0].Message
	}
	return err.Error()
}
