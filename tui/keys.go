package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"go-pianoroll/widgets"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

// keyMap lists the bindings shown in help. Only Quit and Help are handled
// here; everything else is passed to the editor by name.
type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Delete key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Copy   key.Binding
	Paste  key.Binding
	Pitch  key.Binding
	Nudge  key.Binding
	Insert key.Binding
	Double key.Binding
	Play   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:   Key("quit", "ctrl+q", "q"),
		Help:   Key("toggle help", "?"),
		Delete: Key("delete selection", "backspace", "delete"),
		Undo:   Key("undo", "ctrl+z"),
		Redo:   Key("redo", "ctrl+shift+z", "ctrl+y"),
		Copy:   Key("copy", "ctrl+c"),
		Paste:  Key("paste at cursor", "ctrl+v"),
		Pitch:  key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "selection up/down a semitone")),
		Nudge:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "selection by a sixteenth")),
		Insert: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "insert 1/16 1/8 1/4 1/2 note")),
		Double: key.NewBinding(key.WithKeys("!", "@", "#", "$"), key.WithHelp("shift+1-4", "insert twice as long")),
		Play:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/stop from cursor")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Undo, k.Delete, k.Insert, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Delete, k.Undo, k.Redo, k.Copy, k.Paste},
		{k.Pitch, k.Nudge, k.Insert, k.Double},
		{k.Play, k.Help, k.Quit},
	}
}

// sections is the full help screen, mouse gestures included
func (k keyMap) sections() []widgets.KeySection {
	return []widgets.KeySection{
		{Title: "Mouse", Keys: []key.Binding{
			key.NewBinding(key.WithKeys("click"), key.WithHelp("click", "select note / move cursor")),
			key.NewBinding(key.WithKeys("drag"), key.WithHelp("drag", "move notes, resize at edges, box select")),
			key.NewBinding(key.WithKeys("shift"), key.WithHelp("shift+click", "add to selection")),
			key.NewBinding(key.WithKeys("double"), key.WithHelp("double-click", "add / delete note")),
			key.NewBinding(key.WithKeys("ctrl"), key.WithHelp("ctrl+drag", "pan")),
			key.NewBinding(key.WithKeys("alt"), key.WithHelp("alt+drag", "zoom")),
			key.NewBinding(key.WithKeys("wheel"), key.WithHelp("wheel", "scroll")),
		}},
		{Title: "Edit", Keys: []key.Binding{k.Delete, k.Undo, k.Redo, k.Copy, k.Paste, k.Pitch, k.Nudge}},
		{Title: "Insert", Keys: []key.Binding{k.Insert, k.Double}},
		{Title: "Transport", Keys: []key.Binding{k.Play, k.Help, k.Quit}},
	}
}
