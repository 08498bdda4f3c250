package guide

import "sort"

// Record is the registry entry for one callout id: where its anchor is, how
// it should be placed and, once measured, where its bubble ended up.
type Record struct {
	ID         string
	SourceRect Rect // anchor rectangle in screen space, offset applied
	Placement  Placement
	Offset     Vec2
	Content    Content

	// Written back by the presenter after measuring and placing the bubble.
	CalloutRect Rect
	ArrowOffset float64
	Measured    bool
}

// Same reports whether r and other describe the same callout. Records are
// identified by id alone; geometry and content changes do not matter.
func (r Record) Same(other Record) bool {
	return r.ID == other.ID
}

// Registry maps callout ids to records. It is the single source of truth for
// anchor geometry. Removing a record also clears it from the display state.
type Registry struct {
	records map[string]*Record
	display *displayState
}

func newRegistry(display *displayState) *Registry {
	return &Registry{
		records: make(map[string]*Record),
		display: display,
	}
}

// Upsert creates the record for id or updates its anchor fields. A previously
// computed CalloutRect and ArrowOffset are kept so re-renders start from the
// last known bubble size.
func (reg *Registry) Upsert(id string, sourceRect Rect, placement Placement, content Content) Record {
	rec, ok := reg.records[id]
	if !ok {
		rec = &Record{ID: id}
		reg.records[id] = rec
	}
	rec.SourceRect = sourceRect
	rec.Placement = placement
	rec.Content = content
	return *rec
}

// Get returns a copy of the record for id.
func (reg *Registry) Get(id string) (Record, bool) {
	rec, ok := reg.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Remove deletes the record for id. If id is the current or pending callout
// it is cleared from the display state as well. Unknown ids are ignored.
func (reg *Registry) Remove(id string) {
	if reg.display != nil {
		reg.display.forget(id)
	}
	delete(reg.records, id)
}

// Len returns the number of tracked callouts.
func (reg *Registry) Len() int {
	return len(reg.records)
}

// IDs returns the tracked ids in sorted order.
func (reg *Registry) IDs() []string {
	ids := make([]string, 0, len(reg.records))
	for id := range reg.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// setPlacement stores the presenter's computed bubble rectangle.
func (reg *Registry) setPlacement(id string, rect Rect, arrowOffset float64) {
	rec, ok := reg.records[id]
	if !ok {
		return
	}
	rec.CalloutRect = rect
	rec.ArrowOffset = arrowOffset
	rec.Measured = true
}

// setOffset records the callout offset on an existing record.
func (reg *Registry) setOffset(id string, offset Vec2) {
	if rec, ok := reg.records[id]; ok {
		rec.Offset = offset
	}
}
