package roll

import (
	"sort"

	"go-pianoroll/geometry"
	"go-pianoroll/surface"
)

// Colors are the fills used for editor shapes
type Colors struct {
	Note     string
	Selected string
	Cursor   string
	Select   string // rectangle-selection area
}

// DefaultColors mirrors the original roll's palette
func DefaultColors() Colors {
	return Colors{
		Note:     "#ff2233",
		Selected: "#22eeee",
		Cursor:   "#2d2d2d",
		Select:   "#000088",
	}
}

// Store maps note ids to notes. Ids are never reused.
type Store struct {
	notes       map[int]*Note
	nextID      int
	surf        surface.Surface
	grid        geometry.Grid
	colors      Colors
	labelOffset float64
}

func newStore(surf surface.Surface, grid geometry.Grid, colors Colors, labelOffset float64) *Store {
	return &Store{
		notes:       make(map[int]*Note),
		surf:        surf,
		grid:        grid,
		colors:      colors,
		labelOffset: labelOffset,
	}
}

// create adds a note and draws its handle
func (s *Store) create(info Info) *Note {
	n := &Note{ID: s.nextID, Info: info}
	s.nextID++

	g := s.grid
	n.Shape = s.surf.Rect(g.XOf(info.Position), g.YOf(info.Pitch), g.XOf(info.Duration), g.RowHeight)
	n.Shape.Fill(s.colors.Note)
	n.Label = s.surf.Text(n.Shape.X()+s.labelOffset, n.Shape.Y(), geometry.PitchName(info.Pitch))

	s.notes[n.ID] = n
	return n
}

// destroy removes the handle and the entry
func (s *Store) destroy(id int) bool {
	n, ok := s.notes[id]
	if !ok {
		return false
	}
	n.Shape.Remove()
	n.Label.Remove()
	delete(s.notes, id)
	return true
}

// clear destroys every note; ids keep counting up
func (s *Store) clear() {
	for id := range s.notes {
		s.destroy(id)
	}
}

// Get returns the note with the given id
func (s *Store) Get(id int) (*Note, bool) {
	n, ok := s.notes[id]
	return n, ok
}

// Len is the number of notes
func (s *Store) Len() int { return len(s.notes) }

// IDs returns all ids in ascending (creation) order
func (s *Store) IDs() []int {
	ids := make([]int, 0, len(s.notes))
	for id := range s.notes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Infos copies all attributes in creation order
func (s *Store) Infos() []Info {
	ids := s.IDs()
	out := make([]Info, len(ids))
	for i, id := range ids {
		out[i] = s.notes[id].Info
	}
	return out
}

// readVisual derives attributes from the handle's geometry
func (s *Store) readVisual(n *Note) Info {
	g := s.grid
	return Info{
		Pitch:    g.PitchOf(n.Shape.Y()),
		Position: roundFine(g.PositionOf(n.Shape.X())),
		Duration: roundFine(g.PositionOf(n.Shape.Width())),
	}.clamped()
}

// writeVisual projects attributes onto the handle and shows it
func (s *Store) writeVisual(n *Note) {
	g := s.grid
	n.Shape.Show()
	n.Shape.Move(g.XOf(n.Info.Position), g.YOf(n.Info.Pitch))
	n.Shape.SetWidth(g.XOf(n.Info.Duration))
	n.Label.Show()
	s.syncLabel(n)
}

// syncLabel moves the label with its rectangle and renames it
func (s *Store) syncLabel(n *Note) {
	n.Label.Move(n.Shape.X()+s.labelOffset, n.Shape.Y())
	n.Label.SetText(geometry.PitchName(s.grid.PitchOf(n.Shape.Y())))
}

// hide hides the handle without touching the attributes
func (s *Store) hide(n *Note) {
	n.Shape.Hide()
	n.Label.Hide()
}

// byPitch builds the spatial index: pitch -> notes ordered by position
func (s *Store) byPitch() spatialIndex {
	idx := make(spatialIndex)
	for _, id := range s.IDs() {
		n := s.notes[id]
		idx[n.Info.Pitch] = append(idx[n.Info.Pitch], n)
	}
	for _, list := range idx {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Info.Position < list[j].Info.Position
		})
	}
	return idx
}
