package roll

import (
	"sort"

	"go-pianoroll/surface"
)

// Selection is the set of selected note ids. Selected notes are drawn in
// the selected color.
type Selection struct {
	store *Store
	audio Audio
	ids   map[int]struct{}
}

func newSelection(store *Store, audio Audio) *Selection {
	return &Selection{store: store, audio: audio, ids: make(map[int]struct{})}
}

// Select adds a note, recolors it and previews its pitch. Selecting a
// selected note does nothing.
func (s *Selection) Select(id int) {
	if s.Has(id) {
		return
	}
	n, ok := s.store.Get(id)
	if !ok {
		return
	}
	s.ids[id] = struct{}{}
	n.Shape.Fill(s.store.colors.Selected)
	s.audio.PlayPreview(n.Info.Pitch)
}

// Deselect removes a note and restores its color
func (s *Selection) Deselect(id int) {
	if !s.Has(id) {
		return
	}
	delete(s.ids, id)
	if n, ok := s.store.Get(id); ok {
		n.Shape.Fill(s.store.colors.Note)
	}
}

// Clear deselects everything
func (s *Selection) Clear() {
	for id := range s.ids {
		s.Deselect(id)
	}
}

func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in ascending order
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SelectBox makes the selection exactly the visible notes whose bounding
// boxes intersect box, plus the notes in keep
func (s *Selection) SelectBox(box surface.Box, keep ...int) {
	kept := make(map[int]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for _, id := range s.store.IDs() {
		n, _ := s.store.Get(id)
		if kept[id] || n.Shape.Visible() && surface.Intersects(box, surface.BoxOf(n.Shape)) {
			s.Select(id)
		} else {
			s.Deselect(id)
		}
	}
}

// forget drops an id without touching the note, for notes being destroyed
func (s *Selection) forget(id int) {
	delete(s.ids, id)
}
