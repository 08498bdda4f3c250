package guide

// Anchor ties a callout definition to one host element. The host reports the
// element's screen rectangle on every layout pass and detaches the anchor
// when the element is torn down. The guide never influences the element's
// layout; it only observes it.
type Anchor struct {
	guide    *Guide
	callout  Callout
	detached bool
}

// Attach registers c as a callout anchored to a host element. The record is
// created lazily on the first Layout call.
func (g *Guide) Attach(c Callout) *Anchor {
	return &Anchor{guide: g, callout: g.Bind(c)}
}

// Callout returns the bound callout, ready for Show and friends.
func (a *Anchor) Callout() Callout {
	return a.callout
}

// Layout reports the element's current rectangle in screen coordinates.
func (a *Anchor) Layout(globalRect Rect) {
	if a.detached {
		return
	}
	a.guide.Track(a.callout, globalRect)
}

// LayoutLocal reports the element's bounds in its own coordinate space
// together with its local-to-screen transform.
func (a *Anchor) LayoutLocal(local Rect, world Affine) {
	a.Layout(world.ApplyRect(local))
}

// Detach removes the anchor. If its callout is visible or pending it closes
// without dismissal. Further Layout calls are ignored.
func (a *Anchor) Detach() {
	if a.detached {
		return
	}
	a.detached = true
	a.guide.Remove(a.callout.id)
}

// Track records the anchor rectangle for c, shifted by the callout's offset.
// If c is the visible callout the bubble follows the anchor; if c was due
// but waiting for its anchor it becomes visible on the next Update.
func (g *Guide) Track(c Callout, globalRect Rect) {
	rect := globalRect
	rect.X += c.offset.X
	rect.Y += c.offset.Y

	prev, existed := g.registry.Get(c.id)
	rec := g.registry.Upsert(c.id, rect, c.placement, c.Content())
	g.registry.setOffset(c.id, c.offset)

	if !existed {
		g.logger.Debug("anchor tracked", "id", c.id, "rect", rect)
		return
	}
	if g.display.currentID != c.id || !g.presenter.pres.Ready {
		return
	}
	if prev.SourceRect != rec.SourceRect || prev.Placement != rec.Placement || prev.Content != rec.Content {
		rec, _ = g.registry.Get(c.id)
		g.measureAndPlace(rec, false)
	}
}
