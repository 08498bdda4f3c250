package guide

import "testing"

func TestRegistryUpsertPreservesPlacement(t *testing.T) {
	reg := newRegistry(newDisplayState())
	reg.Upsert("a", Rect{Width: 10, Height: 10}, PlacementBelow, Content{Title: "t"})
	reg.setPlacement("a", Rect{X: 1, Y: 2, Width: 3, Height: 4}, -5)

	rec := reg.Upsert("a", Rect{X: 50, Width: 10, Height: 10}, PlacementAbove, Content{Message: "m"})
	if rec.CalloutRect != (Rect{X: 1, Y: 2, Width: 3, Height: 4}) || rec.ArrowOffset != -5 || !rec.Measured {
		t.Errorf("computed fields lost: %+v", rec)
	}
	if rec.SourceRect.X != 50 || rec.Placement != PlacementAbove || rec.Content.Message != "m" {
		t.Errorf("anchor fields not updated: %+v", rec)
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}

func TestRegistrySameByID(t *testing.T) {
	a := Record{ID: "a", SourceRect: Rect{X: 1}}
	b := Record{ID: "a", Content: Content{Title: "different"}}
	if !a.Same(b) {
		t.Error("records with the same id should be the same")
	}
	if a.Same(Record{ID: "b"}) {
		t.Error("records with different ids should differ")
	}
}

func TestRegistryRemoveClearsDisplay(t *testing.T) {
	d := newDisplayState()
	reg := newRegistry(d)
	reg.Upsert("a", Rect{}, PlacementBelow, Content{})
	d.show("a", 0, nil)

	reg.Remove("a")
	if d.state() != StateIdle {
		t.Errorf("display state = %v, want idle", d.state())
	}
	if _, ok := reg.Get("a"); ok {
		t.Error("record not removed")
	}
	reg.Remove("missing")
}

func TestRegistryIDsSorted(t *testing.T) {
	reg := newRegistry(nil)
	for _, id := range []string{"c", "a", "b"} {
		reg.Upsert(id, Rect{}, PlacementBelow, Content{})
	}
	ids := reg.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("IDs = %v", ids)
	}
	reg.Remove("b")
	if reg.Len() != 2 {
		t.Errorf("Len = %d", reg.Len())
	}
}

func TestDisplayStateTimer(t *testing.T) {
	d := newDisplayState()
	d.show("a", 2*frame, nil)
	if d.advance(frame) {
		t.Fatal("fired early")
	}
	if !d.advance(frame) {
		t.Fatal("did not fire at deadline")
	}
	if d.advance(frame) {
		t.Error("one-shot timer fired twice")
	}
	if !d.awaitingAnchor() {
		t.Error("fired timer with pending id should await anchor")
	}
	if id := d.promote(); id != "a" || d.state() != StateVisible {
		t.Errorf("promote = %q, state %v", id, d.state())
	}
	if !d.reshow() || d.state() != StatePending {
		t.Errorf("reshow failed, state %v", d.state())
	}
	if d.reshow() {
		t.Error("reshow of a pending callout should be refused")
	}
}
