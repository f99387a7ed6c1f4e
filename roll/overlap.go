package roll

// spatialIndex groups notes by pitch, each list ordered by position. It is
// built from logical attributes when a modification starts; stationary notes
// keep those attributes until the modification is committed.
type spatialIndex map[int][]*Note

// resolver tracks which stationary notes the current modification has
// truncated or hidden so they can be restored when it moves on
type resolver struct {
	index    spatialIndex
	modified map[int]struct{}
}

func (e *Editor) newResolver() *resolver {
	return &resolver{index: e.store.byPitch(), modified: make(map[int]struct{})}
}

// resolveOverlaps previews the effect of the selected notes on the notes
// they overlap. A stationary note that starts before a selected note and
// runs into it is truncated to the selected note's start, using the
// shortest truncation when several apply. A stationary note that starts
// inside a selected note is hidden; hiding wins over truncation. Notes
// modified by the previous pass but not this one get their visuals back.
func (e *Editor) resolveOverlaps(r *resolver) {
	truncate := make(map[int]float64)
	hide := make(map[int]struct{})

	for _, sid := range e.sel.IDs() {
		s, ok := e.store.Get(sid)
		if !ok {
			continue
		}
		for _, n := range r.index[s.Info.Pitch] {
			if n.ID == sid || e.sel.Has(n.ID) {
				continue
			}
			if _, ok := e.store.Get(n.ID); !ok {
				continue
			}
			ni := n.Info
			switch {
			case ni.Position < s.Info.Position && s.Info.Position < ni.End():
				if end, ok := truncate[n.ID]; !ok || s.Info.Position < end {
					truncate[n.ID] = s.Info.Position
				}
			case s.Info.Position <= ni.Position && ni.Position < s.Info.End():
				hide[n.ID] = struct{}{}
			}
		}
	}

	current := make(map[int]struct{}, len(truncate)+len(hide))
	for id := range hide {
		n, _ := e.store.Get(id)
		e.store.hide(n)
		current[id] = struct{}{}
	}
	for id, end := range truncate {
		if _, hidden := hide[id]; hidden {
			continue
		}
		n, _ := e.store.Get(id)
		n.Shape.Show()
		n.Label.Show()
		n.Shape.SetWidth(e.grid.XOf(end - n.Info.Position))
		current[id] = struct{}{}
	}
	for id := range r.modified {
		if _, still := current[id]; !still {
			e.SyncVisualFromInfo(id)
		}
	}
	r.modified = current
}

// commit re-derives attributes from the final visuals of the given notes and
// everything the resolver touched, then records one snapshot
func (e *Editor) commit(ids []int, r *resolver) {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
		e.SyncInfoFromVisual(id, true)
	}
	for id := range r.modified {
		if _, ok := seen[id]; !ok {
			e.SyncInfoFromVisual(id, true)
		}
	}
	r.modified = nil
	e.snapshot()
}

// revert puts every touched stationary note back as it was
func (e *Editor) revert(r *resolver) {
	for id := range r.modified {
		e.SyncVisualFromInfo(id)
	}
	r.modified = nil
}
