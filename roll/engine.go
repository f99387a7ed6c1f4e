package roll

import (
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/surface"
)

// State is the interaction state machine's current mode
type State int

const (
	Idle State = iota
	RectSelecting
	Dragging
	Resizing
	Panning
	Zooming
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RectSelecting:
		return "select"
	case Dragging:
		return "drag"
	case Resizing:
		return "resize"
	case Panning:
		return "pan"
	case Zooming:
		return "zoom"
	}
	return "unknown"
}

// quantizeAfter is the fraction of a grid step a drag may travel freely
// before it snaps to whole steps for the rest of the gesture
const quantizeAfter = 0.9

// Pointer is a pointer event in screen coordinates
type Pointer struct {
	X, Y  float64
	Shift bool
	Ctrl  bool // pan
	Alt   bool // zoom
}

type part int

const (
	partBody part = iota
	partStart
	partEnd
)

// ref is a note as it was when the gesture started
type ref struct {
	x, y, width float64
	info        Info
}

type gesture struct {
	x, y      float64 // surface point of the press
	target    int
	handle    part
	quantized bool
	held      int // pitch sounding for the drag target, -1 for none
	refs      map[int]ref
	ids       []int // selected notes being modified
	base      []int // selection kept by a shift rectangle
	overlap   *resolver
	rect      surface.Shape
}

// PointerDown starts a gesture. A press while another gesture is active ends
// that gesture first.
func (e *Editor) PointerDown(p Pointer) {
	if e.state != Idle {
		e.PointerUp(e.pointer)
	}
	e.pointer = p
	x, y := e.view.ToSurface(p.X, p.Y)

	switch {
	case p.Ctrl:
		e.view.Begin(p.X, p.Y)
		e.state = Panning
	case p.Alt:
		e.view.Begin(p.X, p.Y)
		e.state = Zooming
	default:
		n, at := e.hitTest(x, y)
		if n == nil {
			e.beginRectSelect(x, y, p.Shift)
			return
		}
		e.beginModification(n, at, p.Shift, x, y)
	}
	debug.Log("gesture", "down %s at (%.2f, %.2f)", e.state, x, y)
}

// PointerMove advances the active gesture
func (e *Editor) PointerMove(p Pointer) {
	e.pointer = p
	x, y := e.view.ToSurface(p.X, p.Y)

	switch e.state {
	case Panning:
		e.view.Pan(p.X, p.Y)
	case Zooming:
		e.view.ZoomDrag(p.X, p.Y)
	case RectSelecting:
		e.updateRectSelect(x, y)
	case Dragging:
		e.drag(x, y)
		e.resolveOverlaps(e.g.overlap)
	case Resizing:
		e.resize(x)
		e.resolveOverlaps(e.g.overlap)
	}
}

// PointerUp ends the active gesture
func (e *Editor) PointerUp(p Pointer) {
	e.pointer = p
	switch e.state {
	case RectSelecting:
		e.g.rect.Remove()
	case Dragging, Resizing:
		e.endModification()
	}
	if e.state != Idle {
		debug.Log("gesture", "up %s", e.state)
	}
	e.state = Idle
	e.g = gesture{}
}

// DoubleClick deletes the note under the pointer, or adds a one-step note
// at the quantized point on empty background
func (e *Editor) DoubleClick(p Pointer) {
	if e.state != Idle {
		e.PointerUp(p)
	}
	e.pointer = p
	x, y := e.view.ToSurface(p.X, p.Y)
	if n, _ := e.hitTest(x, y); n != nil {
		e.DeleteNotes([]int{n.ID})
		return
	}
	pp := e.grid.PitchPosQuant(x, y)
	if pp.Pitch < 0 || pp.Pitch > e.grid.MaxPitch {
		return
	}
	e.AddNote(pp.Pitch, pp.Position, e.grid.StepBeats(), true)
}

// hitTest finds the topmost visible note under a surface point and which
// part of it was hit. Later notes draw on top.
func (e *Editor) hitTest(x, y float64) (*Note, part) {
	ids := e.store.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		n, _ := e.store.Get(ids[i])
		if !n.Shape.Visible() {
			continue
		}
		box := surface.BoxOf(n.Shape)
		if !box.Contains(x, y) {
			continue
		}
		zone := math.Min(e.opts.HandleSize/e.view.Zoom(), n.Shape.Width()/3)
		switch {
		case x < box.X1+zone:
			return n, partStart
		case x >= box.X2-zone:
			return n, partEnd
		}
		return n, partBody
	}
	return nil, partBody
}

func (e *Editor) beginRectSelect(x, y float64, shift bool) {
	if !shift {
		e.sel.Clear()
	}
	pp := e.grid.PitchPosQuant(x, y)
	e.SetCursor(pp.Position)

	e.state = RectSelecting
	e.g = gesture{x: x, y: y, held: -1}
	if shift {
		e.g.base = e.sel.IDs()
	}
	e.g.rect = e.surf.Rect(x, y, 0, 0)
	e.g.rect.Fill(e.opts.Colors.Select)
}

func (e *Editor) updateRectSelect(x, y float64) {
	box := surface.Span(e.g.x, e.g.y, x, y)
	e.g.rect.Move(box.X1, box.Y1)
	e.g.rect.SetWidth(box.X2 - box.X1)
	e.g.rect.SetHeight(box.Y2 - box.Y1)
	e.sel.SelectBox(box, e.g.base...)
}

// beginModification starts a drag or resize on n. Pressing an unselected
// note selects it, replacing the selection unless shift is held.
func (e *Editor) beginModification(n *Note, at part, shift bool, x, y float64) {
	if !e.sel.Has(n.ID) {
		if !shift {
			e.sel.Clear()
		}
		e.sel.Select(n.ID)
	}

	e.g = gesture{
		x:      x,
		y:      y,
		target: n.ID,
		handle: at,
		held:   -1,
		refs:   make(map[int]ref),
		ids:    e.sel.IDs(),
	}
	for _, id := range e.g.ids {
		s, _ := e.store.Get(id)
		e.g.refs[id] = ref{x: s.Shape.X(), y: s.Shape.Y(), width: s.Shape.Width(), info: s.Info}
	}
	e.g.overlap = e.newResolver()

	if at == partBody {
		e.state = Dragging
		e.g.held = n.Info.Pitch
		e.audio.NoteOn(n.Info.Pitch)
	} else {
		e.state = Resizing
	}
}

// drag moves every selected note by the same offset from its reference.
// Horizontal motion is free until it passes most of a step, then snaps to
// whole steps. Vertical motion is in whole rows. The offset is limited so
// no note leaves the roll.
func (e *Editor) drag(x, y float64) {
	g := e.grid
	step := g.StepWidth()

	dx := x - e.g.x
	if e.g.quantized || math.Abs(dx) >= quantizeAfter*step {
		e.g.quantized = true
		dx = math.Round(dx/step) * step
	}
	dy := g.SnapRow(y) - g.SnapRow(e.g.y)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, r := range e.g.refs {
		minX = math.Min(minX, r.x)
		maxX = math.Max(maxX, r.x+r.width)
		minY = math.Min(minY, r.y)
		maxY = math.Max(maxY, r.y)
	}
	dx = clampf(dx, -minX, math.Max(e.Width()-maxX, 0))
	dy = clampf(dy, -minY, g.YOf(0)-maxY)

	for _, id := range e.g.ids {
		n, _ := e.store.Get(id)
		r := e.g.refs[id]
		n.Shape.Move(r.x+dx, r.y+dy)
		e.store.syncLabel(n)
		n.Info = e.store.readVisual(n)
	}

	if t, ok := e.store.Get(e.g.target); ok && t.Info.Pitch != e.g.held {
		if e.g.held >= 0 {
			e.audio.NoteOff(e.g.held)
		}
		e.g.held = t.Info.Pitch
		e.audio.NoteOn(e.g.held)
	}
	debug.LogEvery(20, "gesture", "drag dx=%.2f dy=%.2f quantized=%v", dx, dy, e.g.quantized)
}

// resize moves the grabbed edge of every selected note by the raw pointer
// offset. Notes keep the minimum duration, stay inside the roll, and do not
// grow into another selected note on the same pitch.
func (e *Editor) resize(x float64) {
	dx := x - e.g.x
	minW := e.grid.XOf(MinDuration)

	for _, id := range e.g.ids {
		n, _ := e.store.Get(id)
		r := e.g.refs[id]
		if e.g.handle == partEnd {
			w := math.Min(r.width+dx, math.Max(e.Width()-r.x, r.width))
			if limit, ok := e.nextSelectedStart(id); ok {
				w = math.Min(w, math.Max(limit-r.x, r.width))
			}
			n.Shape.SetWidth(math.Max(w, minW))
		} else {
			end := r.x + r.width
			nx := math.Min(r.x+dx, end-minW)
			if limit, ok := e.prevSelectedEnd(id); ok {
				nx = math.Max(nx, math.Min(limit, r.x))
			}
			nx = math.Max(nx, 0)
			n.Shape.SetX(nx)
			n.Shape.SetWidth(end - nx)
		}
		e.store.syncLabel(n)
		n.Info = e.store.readVisual(n)
	}
	debug.LogEvery(20, "gesture", "resize dx=%.2f", dx)
}

// nextSelectedStart is the reference start of the nearest selected note
// after id on the same pitch
func (e *Editor) nextSelectedStart(id int) (float64, bool) {
	self := e.g.refs[id]
	best, found := math.Inf(1), false
	for other, r := range e.g.refs {
		if other == id || r.info.Pitch != self.info.Pitch || r.x <= self.x {
			continue
		}
		if r.x < best {
			best, found = r.x, true
		}
	}
	return best, found
}

// prevSelectedEnd is the reference end of the nearest selected note before
// id on the same pitch
func (e *Editor) prevSelectedEnd(id int) (float64, bool) {
	self := e.g.refs[id]
	best, found := math.Inf(-1), false
	for other, r := range e.g.refs {
		if other == id || r.info.Pitch != self.info.Pitch || r.x >= self.x {
			continue
		}
		if end := r.x + r.width; end > best {
			best, found = end, true
		}
	}
	return best, found
}

// endModification commits a drag or resize, or reverts it exactly when the
// target barely moved
func (e *Editor) endModification() {
	if e.g.held >= 0 {
		e.audio.NoteOff(e.g.held)
	}

	if !e.significant() {
		for _, id := range e.g.ids {
			n, ok := e.store.Get(id)
			if !ok {
				continue
			}
			n.Info = e.g.refs[id].info
			e.store.writeVisual(n)
		}
		e.revert(e.g.overlap)
		debug.Log("gesture", "%s below threshold, reverted", e.state)
		return
	}
	e.commit(e.g.ids, e.g.overlap)
}

func (e *Editor) significant() bool {
	t, ok := e.store.Get(e.g.target)
	if !ok {
		return false
	}
	r := e.g.refs[e.g.target]
	limit := e.opts.ClickThreshold
	if e.state == Resizing {
		return math.Abs(t.Shape.Width()-r.width) > limit ||
			math.Abs(t.Shape.X()-r.x) > limit
	}
	return math.Abs(t.Shape.X()-r.x) > limit || math.Abs(t.Shape.Y()-r.y) > limit
}

func clampf(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(n, hi))
}
