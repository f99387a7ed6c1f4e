package roll

import (
	"sort"
	"time"

	"go-pianoroll/midi"
)

// PlaybackEvents schedules the notes that end after cursor, relative to the
// cursor. Notes already sounding at the cursor are clipped to start at 0.
// At equal times note-offs come first so repeated notes retrigger.
func PlaybackEvents(notes []Info, cursor float64, bpm int, velocity uint8) []midi.Event {
	if bpm <= 0 {
		bpm = 120
	}
	beat := float64(time.Minute) / float64(bpm)

	events := make([]midi.Event, 0, len(notes)*2)
	for _, n := range notes {
		if n.Pitch < 0 || n.Pitch > 127 || n.End() <= cursor {
			continue
		}
		start, dur := n.Position-cursor, n.Duration
		if start < 0 {
			dur += start
			start = 0
		}
		on := time.Duration(start * beat)
		off := time.Duration((start + dur) * beat)
		key := uint8(n.Pitch)
		events = append(events,
			midi.Event{At: on, Type: midi.NoteOn, Note: key, Velocity: velocity},
			midi.Event{At: off, Type: midi.NoteOff, Note: key},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].At != events[j].At {
			return events[i].At < events[j].At
		}
		return events[i].Type == midi.NoteOff && events[j].Type != midi.NoteOff
	})
	return events
}
