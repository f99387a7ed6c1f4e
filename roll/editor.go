package roll

import (
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/geometry"
	"go-pianoroll/midi"
	"go-pianoroll/surface"
	"go-pianoroll/viewport"
)

// Audio is the preview sink for notes being edited
type Audio interface {
	PlayPreview(pitch int)
	NoteOn(pitch int)
	NoteOff(pitch int)
}

// Transport plays the roll from the edit cursor
type Transport interface {
	Play(events []midi.Event)
	Stop()
	Playing() bool
}

type nopAudio struct{}

func (nopAudio) PlayPreview(int) {}
func (nopAudio) NoteOn(int)      {}
func (nopAudio) NoteOff(int)     {}

// Options configure an Editor. Zero fields take defaults.
type Options struct {
	Grid     geometry.Grid
	Measures int // length of the roll in 4/4 measures

	ScreenWidth, ScreenHeight float64

	// HandleSize is the width in screen units of the resize zones at
	// either end of a note
	HandleSize float64
	// ClickThreshold is the surface distance below which a drag or resize
	// counts as a click and is reverted
	ClickThreshold float64
	LabelOffset    float64

	Colors    Colors
	Audio     Audio
	Transport Transport
	Clipboard Clipboard

	Tempo    int
	Velocity uint8
}

func (o Options) withDefaults() Options {
	if o.Grid.QuarterWidth == 0 {
		o.Grid = geometry.DefaultGrid()
	}
	if o.Measures <= 0 {
		o.Measures = 20
	}
	if o.ScreenWidth <= 0 {
		o.ScreenWidth = 80
	}
	if o.ScreenHeight <= 0 {
		o.ScreenHeight = 24
	}
	if o.HandleSize <= 0 {
		o.HandleSize = 1
	}
	if o.ClickThreshold <= 0 {
		o.ClickThreshold = o.Grid.StepWidth() / 10
	}
	if o.Colors == (Colors{}) {
		o.Colors = DefaultColors()
	}
	if o.Audio == nil {
		o.Audio = nopAudio{}
	}
	if o.Clipboard == nil {
		o.Clipboard = &MemoryClipboard{}
	}
	if o.Tempo <= 0 {
		o.Tempo = 120
	}
	if o.Velocity == 0 {
		o.Velocity = 100
	}
	return o
}

// Editor owns the note store, selection, history and gesture state of one
// piano roll. It is not safe for concurrent use; drive it from one loop.
type Editor struct {
	opts  Options
	grid  geometry.Grid
	surf  surface.Surface
	view  *viewport.Viewport
	store *Store
	sel   *Selection
	hist  *History

	audio     Audio
	transport Transport
	clipboard Clipboard

	cursor     float64
	cursorLine surface.Shape
	pointer    Pointer

	state State
	g     gesture
}

// NewEditor creates an empty roll drawing onto surf
func NewEditor(surf surface.Surface, opts Options) *Editor {
	opts = opts.withDefaults()
	g := opts.Grid
	width := g.XOf(float64(opts.Measures * 4))

	e := &Editor{
		opts:      opts,
		grid:      g,
		surf:      surf,
		view:      viewport.New(opts.ScreenWidth, opts.ScreenHeight, width, g.Height()),
		store:     newStore(surf, g, opts.Colors, opts.LabelOffset),
		hist:      NewHistory(),
		audio:     opts.Audio,
		transport: opts.Transport,
		clipboard: opts.Clipboard,
	}
	e.sel = newSelection(e.store, e.audio)
	e.cursorLine = surf.Line(0, 0, 0, g.Height())
	e.cursorLine.Fill(opts.Colors.Cursor)
	return e
}

func (e *Editor) Grid() geometry.Grid { return e.grid }

func (e *Editor) Viewport() *viewport.Viewport { return e.view }

func (e *Editor) Selection() *Selection { return e.sel }

func (e *Editor) History() *History { return e.hist }

func (e *Editor) State() State { return e.state }

// Resize follows a change of screen size
func (e *Editor) Resize(w, h float64) { e.view.Resize(w, h) }

// Width is the surface width of the roll
func (e *Editor) Width() float64 { return e.view.SurfaceWidth }

// Beats is the length of the roll in beats
func (e *Editor) Beats() float64 { return e.grid.PositionOf(e.Width()) }

// Len is the number of notes
func (e *Editor) Len() int { return e.store.Len() }

// Note returns the attributes of a note
func (e *Editor) Note(id int) (Info, bool) {
	n, ok := e.store.Get(id)
	if !ok {
		return Info{}, false
	}
	return n.Info, true
}

// IDs lists note ids in creation order
func (e *Editor) IDs() []int { return e.store.IDs() }

// Notes copies every note's attributes in creation order
func (e *Editor) Notes() []Info { return e.store.Infos() }

// Cursor is the beat playback starts from and paste anchors at
func (e *Editor) Cursor() float64 { return e.cursor }

// SetCursor moves the edit cursor and its line
func (e *Editor) SetCursor(position float64) {
	if position < 0 {
		position = 0
	}
	e.cursor = position
	x := e.grid.XOf(position)
	e.cursorLine.Move(x, 0)
}

// AddNote creates a note, previews it, and records a snapshot when record is
// set. Out-of-range attributes are corrected. Returns the new id.
func (e *Editor) AddNote(pitch int, position, duration float64, record bool) int {
	n := e.addNote(Info{Pitch: pitch, Position: position, Duration: duration}, true)
	if record {
		e.snapshot()
	}
	return n.ID
}

func (e *Editor) addNote(info Info, preview bool) *Note {
	info = e.fit(info.clamped())
	if info.Pitch < 0 {
		info.Pitch = 0
	}
	if info.Pitch > e.grid.MaxPitch {
		info.Pitch = e.grid.MaxPitch
	}
	n := e.store.create(info)
	if preview {
		e.audio.PlayPreview(info.Pitch)
	}
	debug.Log("roll", "add note %d pitch=%d pos=%.4f dur=%.4f", n.ID, info.Pitch, info.Position, info.Duration)
	return n
}

// fit keeps a note inside the roll's length, shortening it at the end
func (e *Editor) fit(info Info) Info {
	beats := e.Beats()
	info.Position = math.Min(info.Position, beats-MinDuration)
	info.Duration = math.Min(info.Duration, beats-info.Position)
	return info
}

// DeleteNotes removes notes and drops them from the selection. Unknown ids
// are ignored. One snapshot is recorded if anything was deleted.
func (e *Editor) DeleteNotes(ids []int) int {
	deleted := 0
	for _, id := range ids {
		e.sel.forget(id)
		if e.store.destroy(id) {
			deleted++
		}
	}
	if deleted > 0 {
		debug.Log("roll", "deleted %d notes", deleted)
		e.snapshot()
	}
	return deleted
}

// SyncInfoFromVisual re-derives a note's attributes from its handle. A hidden
// handle means the note was swallowed by an overlap and it is deleted.
// Unless batched, a snapshot is recorded.
func (e *Editor) SyncInfoFromVisual(id int, batched bool) {
	n, ok := e.store.Get(id)
	if !ok {
		return
	}
	if !n.Shape.Visible() {
		e.sel.forget(id)
		e.store.destroy(id)
	} else {
		n.Info = e.store.readVisual(n)
		e.store.writeVisual(n)
	}
	if !batched {
		e.snapshot()
	}
}

// SyncVisualFromInfo redraws a note's handle from its attributes
func (e *Editor) SyncVisualFromInfo(id int) {
	if n, ok := e.store.Get(id); ok {
		e.store.writeVisual(n)
	}
}
