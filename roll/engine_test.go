package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func offset(p Pointer, dx, dy float64) Pointer {
	p.X += dx
	p.Y += dy
	return p
}

func TestClickSelectsWithoutEditing(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)

	f.PointerDown(at(60, 1.5))
	assert.Equal(t, Dragging, f.State())
	f.PointerUp(at(60, 1.5))

	assert.Equal(t, Idle, f.State())
	assert.Equal(t, []int{id}, f.Selection().IDs())
	assert.Equal(t, 2, f.History().Len())
	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 1, Duration: 1}, info)
}

func TestSubThresholdDragReverts(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	n, _ := f.store.Get(id)

	f.PointerDown(at(60, 1.5))
	f.PointerMove(offset(at(60, 1.5), 2, 0))
	assert.Equal(t, 122.0, n.Shape.X())
	f.PointerUp(offset(at(60, 1.5), 2, 0))

	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 1, Duration: 1}, info)
	assert.Equal(t, 2, f.History().Len())
	requireInSync(t, f.Editor)
}

func TestDragQuantizationIsSticky(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	n, _ := f.store.Get(id)
	start := at(60, 1.25)

	f.PointerDown(start)
	f.PointerMove(offset(start, 20, 0))
	assert.Equal(t, 140.0, n.Shape.X(), "free below most of a step")
	f.PointerMove(offset(start, 40, 0))
	assert.Equal(t, 150.0, n.Shape.X(), "snaps once past it")
	f.PointerMove(offset(start, 10, 0))
	assert.Equal(t, 120.0, n.Shape.X(), "stays snapped for the gesture")
	f.PointerMove(offset(start, 65, 0))
	f.PointerUp(offset(start, 65, 0))

	info, _ := f.Note(id)
	assert.Equal(t, 1.5, info.Position)
	assert.Equal(t, 3, f.History().Len())
}

func TestDragChangesPitchByRows(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	start := at(60, 1.5)

	f.PointerDown(start)
	f.PointerMove(offset(start, 0, -12))
	f.PointerMove(offset(start, 0, -32))
	f.PointerUp(offset(start, 0, -32))

	info, _ := f.Note(id)
	assert.Equal(t, 62, info.Pitch)
	assert.Equal(t, 1.0, info.Position)
	assert.Equal(t, []int{60, 61, 62}, f.audio.ons)
	assert.Equal(t, []int{60, 61, 62}, f.audio.offs)
	requireInSync(t, f.Editor)
}

func TestGroupDragKeepsNotesOnTheRoll(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0.5, 1, false)
	b := f.AddNote(126, 2, 1, false)
	f.Selection().Select(a)
	f.Selection().Select(b)

	start := at(126, 2.5)
	f.PointerDown(start)
	f.PointerMove(offset(start, -240, -100))
	f.PointerUp(offset(start, -240, -100))

	ai, _ := f.Note(a)
	bi, _ := f.Note(b)
	assert.Equal(t, Info{Pitch: 61, Position: 0, Duration: 1}, ai)
	assert.Equal(t, Info{Pitch: 127, Position: 1.5, Duration: 1}, bi)
	requireInSync(t, f.Editor)
}

func TestPressOnUnselectedNoteReplacesSelection(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(64, 0, 1, false)
	f.Selection().Select(a)

	f.PointerDown(at(64, 0.5))
	f.PointerUp(at(64, 0.5))
	assert.Equal(t, []int{b}, f.Selection().IDs())

	shift := at(60, 0.5)
	shift.Shift = true
	f.PointerDown(shift)
	f.PointerUp(shift)
	assert.Equal(t, []int{a, b}, f.Selection().IDs())
}

func TestPressOnSelectedNoteKeepsGroup(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(64, 0, 1, false)
	f.Selection().Select(a)
	f.Selection().Select(b)

	f.PointerDown(at(64, 0.5))
	f.PointerMove(at(64, 1.5))
	f.PointerUp(at(64, 1.5))

	ai, _ := f.Note(a)
	bi, _ := f.Note(b)
	assert.Equal(t, 1.0, ai.Position)
	assert.Equal(t, 1.0, bi.Position)
}

func TestTopmostNoteIsHit(t *testing.T) {
	f := newFixture()
	f.AddNote(60, 0, 2, false)
	top := f.AddNote(60, 1, 2, false)

	f.PointerDown(at(60, 1.5))
	f.PointerUp(at(60, 1.5))

	assert.Equal(t, []int{top}, f.Selection().IDs())
}

func TestResizeEnd(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	grab := offset(at(60, 2), -0.5, 0)

	f.PointerDown(grab)
	require.Equal(t, Resizing, f.State())
	f.PointerMove(offset(grab, 60, 0))
	f.PointerUp(offset(grab, 60, 0))

	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 1, Duration: 1.5}, info)
	assert.Equal(t, 3, f.History().Len())
	requireInSync(t, f.Editor)
}

func TestResizeEndStopsAtRollEnd(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 78, 1, true)
	grab := offset(at(60, 79), -0.5, 0)

	f.PointerDown(grab)
	f.PointerMove(offset(grab, testGrid.XOf(200), 0))
	f.PointerUp(offset(grab, testGrid.XOf(200), 0))

	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 78, Duration: 2}, info)
	assert.Equal(t, f.Beats(), info.End())
}

func TestDragStopsAtRollEnd(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 0, 1, true)
	start := at(60, 0.5)

	f.PointerDown(start)
	f.PointerMove(offset(start, testGrid.XOf(500), 0))
	f.PointerUp(offset(start, testGrid.XOf(500), 0))

	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 79, Duration: 1}, info)
	requireInSync(t, f.Editor)
}

func TestResizeEndKeepsMinimumDuration(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	grab := offset(at(60, 2), -0.5, 0)

	f.PointerDown(grab)
	f.PointerMove(offset(grab, -500, 0))
	f.PointerUp(offset(grab, -500, 0))

	info, _ := f.Note(id)
	assert.Equal(t, MinDuration, info.Duration)
	assert.Equal(t, 1.0, info.Position)
}

func TestResizeStart(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)
	n, _ := f.store.Get(id)
	grab := offset(at(60, 1), 0.5, 0)

	f.PointerDown(grab)
	f.PointerMove(offset(grab, -60, 0))
	assert.Equal(t, 60.0, n.Shape.X())
	assert.Equal(t, 180.0, n.Shape.Width())
	f.PointerMove(offset(grab, -500, 0))
	assert.Equal(t, 0.0, n.Shape.X(), "start stays on the roll")
	f.PointerMove(offset(grab, 500, 0))
	assert.InDelta(t, 240-testGrid.XOf(MinDuration), n.Shape.X(), 1e-9)
	f.PointerMove(offset(grab, -60, 0))
	f.PointerUp(offset(grab, -60, 0))

	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 0.5, Duration: 1.5}, info)
}

func TestResizeStopsAtSelectedNeighbor(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(60, 2, 1, false)
	f.Selection().Select(a)
	f.Selection().Select(b)
	grab := offset(at(60, 1), -0.5, 0)

	f.PointerDown(grab)
	f.PointerMove(offset(grab, 300, 0))
	f.PointerUp(offset(grab, 300, 0))

	ai, _ := f.Note(a)
	bi, _ := f.Note(b)
	assert.Equal(t, 2.0, ai.Duration)
	assert.Equal(t, 3.5, bi.Duration)
	assert.Equal(t, 2, f.Len())
}

func TestResizeTruncatesStationaryNote(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(60, 2, 1, false)
	grab := offset(at(60, 2), 0.5, 0)

	f.PointerDown(grab)
	f.PointerMove(offset(grab, -150, 0))
	f.PointerUp(offset(grab, -150, 0))

	ai, _ := f.Note(a)
	bi, _ := f.Note(b)
	assert.Equal(t, 0.75, ai.Duration)
	assert.Equal(t, Info{Pitch: 60, Position: 0.75, Duration: 2.25}, bi)
}

func TestRectSelect(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	f.AddNote(70, 4, 1, false)
	shapes := f.canvas.Len()
	start := Pointer{X: 130, Y: testGrid.YOf(59) + 10}

	f.PointerDown(start)
	require.Equal(t, RectSelecting, f.State())
	assert.Equal(t, 1.0, f.Cursor(), "cursor moves to the quantized press")
	assert.Equal(t, shapes+1, f.canvas.Len())

	f.PointerMove(Pointer{X: 60, Y: testGrid.YOf(62)})
	assert.Equal(t, []int{a}, f.Selection().IDs())
	f.PointerMove(Pointer{X: 60, Y: testGrid.YOf(59) + 15})
	assert.Zero(t, f.Selection().Len(), "shrinking the box deselects")
	f.PointerMove(Pointer{X: 60, Y: testGrid.YOf(61)})
	f.PointerUp(Pointer{X: 60, Y: testGrid.YOf(61)})

	assert.Equal(t, []int{a}, f.Selection().IDs())
	assert.Equal(t, shapes, f.canvas.Len(), "selection box removed")
	assert.Equal(t, 1, f.History().Len())
}

func TestBackgroundPressClearsSelectionUnlessShift(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	f.Selection().Select(a)
	empty := at(50, 8)

	shift := empty
	shift.Shift = true
	f.PointerDown(shift)
	f.PointerUp(shift)
	assert.Equal(t, []int{a}, f.Selection().IDs())

	f.PointerDown(empty)
	f.PointerUp(empty)
	assert.Zero(t, f.Selection().Len())
}

func TestShiftRectangleAddsToSelection(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(50, 2, 1, false)
	f.Selection().Select(a)

	press := at(55, 4)
	press.Shift = true
	f.PointerDown(press)
	overB := at(49, 2.5)
	overB.Shift = true
	f.PointerMove(overB)
	assert.Equal(t, []int{a, b}, f.Selection().IDs())

	f.PointerMove(offset(press, 10, 0))
	assert.Equal(t, []int{a}, f.Selection().IDs(), "b leaves with the rectangle, a stays")

	f.PointerMove(overB)
	f.PointerUp(overB)
	assert.Equal(t, []int{a, b}, f.Selection().IDs())
}

func TestDoubleClick(t *testing.T) {
	f := newFixture()

	f.DoubleClick(Pointer{X: 130, Y: testGrid.YOf(60) + 5})

	require.Equal(t, 1, f.Len())
	id := f.IDs()[0]
	info, _ := f.Note(id)
	assert.Equal(t, Info{Pitch: 60, Position: 1, Duration: 0.25}, info)
	assert.Equal(t, 2, f.History().Len())

	f.DoubleClick(Pointer{X: 135, Y: testGrid.YOf(60) + 5})

	assert.Zero(t, f.Len())
	assert.Equal(t, 3, f.History().Len())
}

func TestPan(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 0, 1, true)
	p := Pointer{X: 500, Y: 300, Ctrl: true}

	f.PointerDown(p)
	require.Equal(t, Panning, f.State())
	f.PointerMove(offset(p, -100, -50))
	f.PointerUp(offset(p, -100, -50))

	assert.Equal(t, 100.0, f.Viewport().X)
	assert.Equal(t, 50.0, f.Viewport().Y)
	info, _ := f.Note(id)
	assert.Equal(t, 0.0, info.Position)
	assert.Equal(t, 2, f.History().Len())
}

func TestZoom(t *testing.T) {
	f := newFixture()
	p := Pointer{X: 500, Y: 300, Alt: true}

	f.PointerDown(p)
	require.Equal(t, Zooming, f.State())
	f.PointerMove(offset(p, 0, 200))
	f.PointerUp(offset(p, 0, 200))

	assert.Greater(t, f.Viewport().Zoom(), 1.0)
}

func TestPressDuringGestureEndsIt(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 1, 1, true)

	f.PointerDown(at(60, 1.5))
	f.PointerMove(at(60, 2.5))
	f.PointerDown(at(40, 8))

	assert.Equal(t, RectSelecting, f.State())
	info, _ := f.Note(id)
	assert.Equal(t, 2.0, info.Position)
	assert.Equal(t, 3, f.History().Len())
}

func TestKeysIgnoredMidGesture(t *testing.T) {
	f := newFixture()
	f.AddNote(60, 1, 1, true)

	f.PointerDown(at(60, 1.5))
	assert.False(t, f.HandleKey("backspace"))
	assert.False(t, f.Undo())
	f.PointerUp(at(60, 1.5))

	assert.Equal(t, 1, f.Len())
}

func TestDragNeverLeavesTheRoll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		f := newFixture()
		count := rapid.IntRange(1, 5).Draw(t, "count")
		for i := 0; i < count; i++ {
			pitch := rapid.IntRange(0, 127).Draw(t, "pitch")
			pos := float64(rapid.IntRange(0, 32).Draw(t, "pos")) / 4
			dur := float64(rapid.IntRange(1, 8).Draw(t, "dur")) / 4
			f.Selection().Select(f.AddNote(pitch, pos, dur, false))
		}
		ids := f.IDs()
		top, _ := f.Note(ids[len(ids)-1])
		start := at(top.Pitch, top.Position+top.Duration/2)

		f.PointerDown(start)
		moves := rapid.IntRange(1, 5).Draw(t, "moves")
		var p Pointer
		for i := 0; i < moves; i++ {
			p = offset(start,
				rapid.Float64Range(-12000, 12000).Draw(t, "dx"),
				rapid.Float64Range(-3000, 3000).Draw(t, "dy"))
			f.PointerMove(p)
		}
		f.PointerUp(p)

		require.Equal(t, count, f.Len())
		for _, info := range f.Notes() {
			require.GreaterOrEqual(t, info.Pitch, 0)
			require.LessOrEqual(t, info.Pitch, 127)
			require.LessOrEqual(t, info.End(), f.Beats()+1e-6)
		}
		requireInSync(t, f.Editor)
	})
}
