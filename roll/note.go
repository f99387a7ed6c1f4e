package roll

import (
	"math"

	"go-pianoroll/surface"
)

// MinDuration is the shortest note, in beats (a 64th note)
const MinDuration = 0.0625

// fine is the precision attributes are rounded to when read back from the
// surface, so x -> position -> x round trips never accumulate float error
const fine = 1e9

// Info is a note's logical attributes
type Info struct {
	Pitch    int     `json:"pitch"`
	Position float64 `json:"position"` // beats from the start
	Duration float64 `json:"duration"` // beats
}

// End is the beat at which the note stops
func (i Info) End() float64 { return i.Position + i.Duration }

// clamped corrects out-of-range attributes locally
func (i Info) clamped() Info {
	if !(i.Position >= 0) {
		i.Position = 0
	}
	if !(i.Duration >= MinDuration) {
		i.Duration = MinDuration
	}
	return i
}

func roundFine(v float64) float64 {
	return math.Round(v*fine) / fine
}

// Note is a store entry: the logical attributes plus the visual handle
// that projects them onto the surface
type Note struct {
	ID    int
	Info  Info
	Shape surface.Shape
	Label surface.Label
}
