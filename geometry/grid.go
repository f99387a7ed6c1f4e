package geometry

import (
	"math"
	"strconv"
)

// NumPitches is the number of MIDI pitches drawn on the roll
const NumPitches = 128

// quantEpsilon absorbs float error so that flooring an on-grid value is stable
const quantEpsilon = 1e-9

var pitchNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Grid maps between surface coordinates and musical coordinates.
// Row 0 is the highest pitch; x grows with time.
type Grid struct {
	QuarterWidth    float64 // surface units per quarter-note beat
	RowHeight       float64 // surface units per semitone row
	StepsPerQuarter int     // snap divisions per beat (4 = sixteenths)
	MaxPitch        int     // pitch drawn on row 0
}

// DefaultGrid suits a terminal: one cell per row, four cells per sixteenth
func DefaultGrid() Grid {
	return Grid{
		QuarterWidth:    16,
		RowHeight:       1,
		StepsPerQuarter: 4,
		MaxPitch:        NumPitches - 1,
	}
}

// PitchPos is a point in musical coordinates
type PitchPos struct {
	Pitch    int
	Position float64
}

func (g Grid) PositionOf(x float64) float64 { return x / g.QuarterWidth }

func (g Grid) XOf(position float64) float64 { return position * g.QuarterWidth }

// PitchOf returns the pitch of the row whose top edge is at y
func (g Grid) PitchOf(y float64) int {
	return g.MaxPitch - int(math.Round(y/g.RowHeight))
}

// YOf returns the top edge of the pitch's row
func (g Grid) YOf(pitch int) float64 {
	return float64(g.MaxPitch-pitch) * g.RowHeight
}

// PitchPos converts without quantization
func (g Grid) PitchPos(x, y float64) PitchPos {
	return PitchPos{Pitch: g.PitchOf(y), Position: g.PositionOf(x)}
}

// PitchPosQuant floors pitch to the row under y and position to the grid
func (g Grid) PitchPosQuant(x, y float64) PitchPos {
	return PitchPos{
		Pitch:    g.MaxPitch - int(math.Floor(y/g.RowHeight)),
		Position: g.Quantize(g.PositionOf(x)),
	}
}

// Quantize floors a beat position to the nearest lower grid line
func (g Grid) Quantize(position float64) float64 {
	steps := float64(g.StepsPerQuarter)
	return math.Floor(position*steps+quantEpsilon) / steps
}

// StepBeats is the length in beats of one grid step
func (g Grid) StepBeats() float64 { return 1 / float64(g.StepsPerQuarter) }

// StepWidth is the width in surface units of one grid step
func (g Grid) StepWidth() float64 { return g.QuarterWidth / float64(g.StepsPerQuarter) }

// SnapRow floors y to the top edge of its row
func (g Grid) SnapRow(y float64) float64 {
	return math.Floor(y/g.RowHeight) * g.RowHeight
}

// Height is the height of the whole pitch range
func (g Grid) Height() float64 { return float64(g.MaxPitch+1) * g.RowHeight }

// PitchName formats a pitch like "C3" (octave = pitch/12 - 2)
func PitchName(pitch int) string {
	idx := ((pitch % 12) + 12) % 12
	octave := int(math.Floor(float64(pitch)/12)) - 2
	return pitchNames[idx] + strconv.Itoa(octave)
}

// IsBlackKey reports whether the pitch is an accidental
func IsBlackKey(pitch int) bool {
	switch ((pitch % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}
