package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-pianoroll/surface"
)

func TestSelectIsIdempotent(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 0, 1, false)
	f.audio.previews = nil

	f.Selection().Select(id)
	f.Selection().Select(id)

	assert.Equal(t, []int{id}, f.Selection().IDs())
	assert.Equal(t, []int{60}, f.audio.previews)
	n, _ := f.store.Get(id)
	assert.Equal(t, DefaultColors().Selected, n.Shape.Color())
}

func TestDeselectRestoresColor(t *testing.T) {
	f := newFixture()
	id := f.AddNote(60, 0, 1, false)
	f.Selection().Select(id)

	f.Selection().Deselect(id)
	f.Selection().Deselect(id)

	assert.False(t, f.Selection().Has(id))
	n, _ := f.store.Get(id)
	assert.Equal(t, DefaultColors().Note, n.Shape.Color())
}

func TestSelectUnknownID(t *testing.T) {
	f := newFixture()

	f.Selection().Select(42)

	assert.Zero(t, f.Selection().Len())
}

func TestClearSelection(t *testing.T) {
	f := newFixture()
	for i := 0; i < 4; i++ {
		f.Selection().Select(f.AddNote(60+i, 0, 1, false))
	}

	f.Selection().Clear()

	assert.Zero(t, f.Selection().Len())
}

func TestSelectBox(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	b := f.AddNote(60, 4, 1, false)
	c := f.AddNote(70, 0, 1, false)
	f.Selection().Select(b)

	f.Selection().SelectBox(surface.Span(60, testGrid.YOf(59), 10, testGrid.YOf(62)))

	assert.Equal(t, []int{a}, f.Selection().IDs())
	_ = c
}

func TestSelectBoxCountsTouchingEdges(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 1, 1, false)

	// the box ends exactly where the note starts
	f.Selection().SelectBox(surface.Span(0, testGrid.YOf(60), 120, testGrid.YOf(60)+5))

	assert.Equal(t, []int{a}, f.Selection().IDs())
}

func TestSelectBoxSkipsHiddenNotes(t *testing.T) {
	f := newFixture()
	a := f.AddNote(60, 0, 1, false)
	n, _ := f.store.Get(a)
	n.Shape.Hide()

	f.Selection().SelectBox(surface.Span(0, 0, 1000, testGrid.Height()))

	assert.Zero(t, f.Selection().Len())
}
