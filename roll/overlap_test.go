package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDragTruncatesEarlierNote(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 0, 2, true)
	a := f.AddNote(60, 4, 1, true)
	bn, _ := f.store.Get(b)

	f.PointerDown(at(60, 4.5))
	f.PointerMove(at(60, 1.5))

	assert.Equal(t, 120.0, bn.Shape.Width(), "previewed on the surface")
	assert.Equal(t, 2.0, bn.Info.Duration, "attributes untouched until release")

	f.PointerUp(at(60, 1.5))

	info, _ := f.Note(b)
	assert.Equal(t, Info{Pitch: 60, Position: 0, Duration: 1}, info)
	info, _ = f.Note(a)
	assert.Equal(t, Info{Pitch: 60, Position: 1, Duration: 1}, info)
	assert.Equal(t, 4, f.History().Len())
	requireInSync(t, f.Editor)
}

func TestDragHidesAndDeletesCoveredNote(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 1.5, 0.25, true)
	a := f.AddNote(60, 4, 1, true)
	bn, _ := f.store.Get(b)

	f.PointerDown(at(60, 4.5))
	f.PointerMove(at(60, 1.75))
	assert.False(t, bn.Shape.Visible())
	f.PointerUp(at(60, 1.75))

	_, ok := f.Note(b)
	assert.False(t, ok, "hidden note is deleted on commit")
	info, _ := f.Note(a)
	assert.Equal(t, 1.25, info.Position)
	requireInSync(t, f.Editor)
}

func TestDragAwayRestoresNote(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 0, 2, true)
	f.AddNote(60, 4, 1, true)
	bn, _ := f.store.Get(b)

	f.PointerDown(at(60, 4.5))
	f.PointerMove(at(60, 1.5))
	require.Equal(t, 120.0, bn.Shape.Width())
	f.PointerMove(at(60, 6.5))
	assert.Equal(t, 240.0, bn.Shape.Width())
	f.PointerMove(at(60, 1.75))
	assert.Equal(t, 150.0, bn.Shape.Width())
	f.PointerMove(at(58, 1.75))
	assert.True(t, bn.Shape.Visible())
	assert.Equal(t, 240.0, bn.Shape.Width(), "moving to another pitch restores it")
	f.PointerUp(at(58, 1.75))

	info, _ := f.Note(b)
	assert.Equal(t, Info{Pitch: 60, Position: 0, Duration: 2}, info)
	requireInSync(t, f.Editor)
}

func TestBelowThresholdDragRestoresTouchedNotes(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 0, 1.02, true)
	f.AddNote(60, 1, 1, true)
	bn, _ := f.store.Get(b)

	// the selected note already overlaps b, so the first frame truncates it
	f.PointerDown(at(60, 1.5))
	f.PointerMove(Pointer{X: at(60, 1.5).X + 2, Y: at(60, 1.5).Y})
	require.InDelta(t, 122.0, bn.Shape.Width(), 1e-6)
	f.PointerUp(Pointer{X: at(60, 1.5).X + 2, Y: at(60, 1.5).Y})

	info, _ := f.Note(b)
	assert.Equal(t, 1.02, info.Duration)
	assert.Equal(t, 3, f.History().Len())
	requireInSync(t, f.Editor)
}

func TestShortestTruncationWins(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 0, 4, false)
	s1 := f.AddNote(61, 3, 0.5, false)
	s2 := f.AddNote(61, 1, 0.5, false)
	f.Selection().Select(s1)
	f.Selection().Select(s2)

	require.True(t, f.ShiftSelection(-1, 0))

	info, _ := f.Note(b)
	assert.Equal(t, 1.0, info.Duration)
	requireInSync(t, f.Editor)
}

func TestHideWinsOverTruncation(t *testing.T) {
	f := newFixture()
	b := f.AddNote(60, 0, 4, false)
	s1 := f.AddNote(61, 2, 0.5, false)
	s2 := f.AddNote(61, 0, 0.5, false)
	f.Selection().Select(s1)
	f.Selection().Select(s2)

	require.True(t, f.ShiftSelection(-1, 0))

	_, ok := f.Note(b)
	assert.False(t, ok)
	assert.Equal(t, 2, f.Len())
}

func TestSelectedNotesDoNotResolveEachOther(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 2, false)
	b := f.AddNote(60, 1, 2, false)
	f.Selection().Select(a)
	f.Selection().Select(b)

	require.True(t, f.ShiftSelection(1, 0))

	assert.Equal(t, 2, f.Len())
	info, _ := f.Note(a)
	assert.Equal(t, Info{Pitch: 61, Position: 0, Duration: 2}, info)
}
