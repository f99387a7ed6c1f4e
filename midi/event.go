package midi

import "time"

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a scheduled note message, timed from the start of playback
type Event struct {
	At       time.Duration
	Type     uint8 // NoteOn, NoteOff
	Note     uint8
	Velocity uint8
}
