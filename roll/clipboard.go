package roll

import (
	"math"

	"go-pianoroll/debug"
)

// Clipboard holds copied notes
type Clipboard interface {
	WriteNotes(notes []Info) error
	ReadNotes() ([]Info, error)
}

// MemoryClipboard is a process-local Clipboard
type MemoryClipboard struct {
	notes []Info
}

func (m *MemoryClipboard) WriteNotes(notes []Info) error {
	m.notes = append([]Info(nil), notes...)
	return nil
}

func (m *MemoryClipboard) ReadNotes() ([]Info, error) {
	return append([]Info(nil), m.notes...), nil
}

// Copy puts the selected notes on the clipboard
func (e *Editor) Copy() error {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return nil
	}
	notes := make([]Info, 0, len(ids))
	for _, id := range ids {
		n, _ := e.store.Get(id)
		notes = append(notes, n.Info)
	}
	if err := e.clipboard.WriteNotes(notes); err != nil {
		debug.Log("clipboard", "copy failed: %v", err)
		return err
	}
	debug.Log("clipboard", "copied %d notes", len(notes))
	return nil
}

// Paste inserts the clipboard notes with the earliest one at the cursor and
// selects them. Overlaps are resolved and one snapshot is recorded.
func (e *Editor) Paste() error {
	notes, err := e.clipboard.ReadNotes()
	if err != nil {
		debug.Log("clipboard", "paste failed: %v", err)
		return err
	}
	if len(notes) == 0 {
		return nil
	}

	earliest := math.Inf(1)
	for _, n := range notes {
		earliest = math.Min(earliest, n.Position)
	}

	r := e.newResolver()
	e.sel.Clear()
	ids := make([]int, 0, len(notes))
	for _, info := range notes {
		info.Position = roundFine(e.cursor + info.Position - earliest)
		n := e.addNote(info, false)
		e.sel.Select(n.ID)
		ids = append(ids, n.ID)
	}
	e.resolveOverlaps(r)
	e.commit(ids, r)
	debug.Log("clipboard", "pasted %d notes at %.2f", len(ids), e.cursor)
	return nil
}
