package roll

import (
	"math"

	"go-pianoroll/debug"
)

// nudge is how far left/right arrows move the selection, in beats
const nudge = 0.25

// HandleKey applies a keyboard command. Keys use bubbletea's names
// ("ctrl+z", "backspace", "up", " "). Commands are ignored while a pointer
// gesture is active. Returns whether the key was a command.
func (e *Editor) HandleKey(key string) bool {
	if e.state != Idle {
		return false
	}
	switch key {
	case "backspace", "delete":
		e.DeleteNotes(e.sel.IDs())
	case "ctrl+z", "cmd+z", "super+z":
		e.Undo()
	case "ctrl+shift+z", "cmd+shift+z", "super+shift+z", "ctrl+y":
		e.Redo()
	case "ctrl+c", "cmd+c", "super+c":
		e.Copy()
	case "ctrl+v", "cmd+v", "super+v":
		e.Paste()
	case "up":
		e.ShiftSelection(1, 0)
	case "down":
		e.ShiftSelection(-1, 0)
	case "left":
		e.ShiftSelection(0, -nudge)
	case "right":
		e.ShiftSelection(0, nudge)
	case "1", "2", "3", "4":
		e.InsertNote(int(key[0]-'0'), false)
	case "!", "@", "#", "$":
		e.InsertNote(shiftedDigit(key), true)
	case "shift+1", "shift+2", "shift+3", "shift+4":
		e.InsertNote(int(key[len(key)-1]-'0'), true)
	case " ", "space":
		e.TogglePlayback()
	default:
		return false
	}
	debug.Log("keys", "%q", key)
	return true
}

func shiftedDigit(key string) int {
	switch key {
	case "!":
		return 1
	case "@":
		return 2
	case "#":
		return 3
	}
	return 4
}

// ShiftSelection moves every selected note by whole rows and beats. A shift
// that would push any note off the roll is refused. Overlaps are resolved
// and the result recorded as one snapshot.
func (e *Editor) ShiftSelection(pitches int, beats float64) bool {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		n, _ := e.store.Get(id)
		p := n.Info.Pitch + pitches
		if p < 0 || p > e.grid.MaxPitch || n.Info.Position+beats < 0 {
			return false
		}
		if beats > 0 && roundFine(n.Info.End()+beats) > e.Beats() {
			return false
		}
	}

	r := e.newResolver()
	for _, id := range ids {
		n, _ := e.store.Get(id)
		n.Info.Pitch += pitches
		n.Info.Position = roundFine(n.Info.Position + beats)
		e.store.writeVisual(n)
		if pitches != 0 {
			e.audio.PlayPreview(n.Info.Pitch)
		}
	}
	e.resolveOverlaps(r)
	e.commit(ids, r)
	return true
}

// InsertNote adds a note under the last pointer position, snapped to the
// grid. digit 1..4 picks a sixteenth, eighth, quarter or half note; doubled
// makes it twice as long.
func (e *Editor) InsertNote(digit int, doubled bool) (int, bool) {
	if digit < 1 || digit > 4 {
		return 0, false
	}
	duration := math.Pow(2, float64(digit-1)) / 4
	if doubled {
		duration *= 2
	}
	x, y := e.view.ToSurface(e.pointer.X, e.pointer.Y)
	pp := e.grid.PitchPosQuant(x, y)
	if pp.Pitch < 0 || pp.Pitch > e.grid.MaxPitch {
		return 0, false
	}
	return e.AddNote(pp.Pitch, pp.Position, duration, true), true
}

// TogglePlayback starts playback from the cursor, or stops it
func (e *Editor) TogglePlayback() {
	if e.transport == nil {
		return
	}
	if e.transport.Playing() {
		e.transport.Stop()
		debug.Log("playback", "stopped")
		return
	}
	events := PlaybackEvents(e.store.Infos(), e.cursor, e.opts.Tempo, e.opts.Velocity)
	e.transport.Play(events)
	debug.Log("playback", "playing %d events from %.2f at %d bpm", len(events), e.cursor, e.opts.Tempo)
}

// SetPointer records the pointer without driving a gesture, so hover
// positions reach note insertion
func (e *Editor) SetPointer(p Pointer) { e.pointer = p }

// Playing reports whether the transport is running
func (e *Editor) Playing() bool {
	return e.transport != nil && e.transport.Playing()
}
