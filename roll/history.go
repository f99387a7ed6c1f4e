package roll

import "go-pianoroll/debug"

// History is a linear undo list of full snapshots. Entry 0 is the empty
// roll; Index points at the current state.
type History struct {
	entries [][]Info
	index   int
}

func NewHistory() *History {
	return &History{entries: [][]Info{{}}}
}

// Snapshot discards any redo entries and appends state
func (h *History) Snapshot(state []Info) {
	entry := make([]Info, len(state))
	copy(entry, state)
	h.entries = append(h.entries[:h.index+1], entry)
	h.index = len(h.entries) - 1
}

// Undo steps back; false at the first entry
func (h *History) Undo() ([]Info, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.At(h.index), true
}

// Redo steps forward; false at the last entry
func (h *History) Redo() ([]Info, bool) {
	if h.index >= len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return h.At(h.index), true
}

// At copies an entry
func (h *History) At(i int) []Info {
	out := make([]Info, len(h.entries[i]))
	copy(out, h.entries[i])
	return out
}

func (h *History) Index() int { return h.index }

func (h *History) Len() int { return len(h.entries) }

func (e *Editor) snapshot() {
	e.hist.Snapshot(e.store.Infos())
	debug.Log("history", "snapshot %d (%d notes)", e.hist.Index(), e.store.Len())
}

// Undo restores the previous snapshot. Ignored mid-gesture.
func (e *Editor) Undo() bool {
	if e.state != Idle {
		return false
	}
	state, ok := e.hist.Undo()
	if ok {
		e.restore(state)
	}
	return ok
}

// Redo restores the next snapshot. Ignored mid-gesture.
func (e *Editor) Redo() bool {
	if e.state != Idle {
		return false
	}
	state, ok := e.hist.Redo()
	if ok {
		e.restore(state)
	}
	return ok
}

// restore clears the selection and rebuilds the store from a snapshot
// without previews or new snapshots. Notes get fresh ids.
func (e *Editor) restore(state []Info) {
	e.sel.Clear()
	e.store.clear()
	for _, info := range state {
		e.addNote(info, false)
	}
	debug.Log("history", "restored %d (%d notes)", e.hist.Index(), len(state))
}
