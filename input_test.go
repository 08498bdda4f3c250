package guide

import "testing"

// newTestOverlay builds an overlay without loading fonts so input can be
// exercised headless.
func newTestOverlay(g *Guide) *Overlay {
	return &Overlay{guide: g, scale: 1, screenshotDir: "screenshots"}
}

// visibleGuide returns a guide showing callout "a" below an anchor at
// (100, 100): bubble at {8, 123, 330, 72}, close button centered at
// (325.5, 143.5).
func visibleGuide(t *testing.T) (*Guide, *int) {
	t.Helper()
	g := newTestGuide(t)
	attach(g, "a", Rect{X: 100, Y: 100, Width: 50, Height: 20})
	calls := new(int)
	g.Callout("a").Show(OnDismiss(func() { *calls++ }))
	settle(g)
	return g, calls
}

func TestHitTest(t *testing.T) {
	g, _ := visibleGuide(t)
	tests := []struct {
		name string
		x, y float64
		want hitTarget
	}{
		{"close", 325.5, 143.5, hitClose},
		{"close slop", 335, 143.5, hitClose},
		{"body", 50, 170, hitBubble},
		{"outside", 500, 500, hitNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, id := g.hitTest(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("hitTest(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
			if got != hitNone && id != "a" {
				t.Errorf("id = %q, want a", id)
			}
		})
	}
}

func TestHitTestNothingVisible(t *testing.T) {
	g := newTestGuide(t)
	if got, _ := g.hitTest(10, 10); got != hitNone {
		t.Errorf("hitTest with no callout = %v", got)
	}
}

func TestClickCloseButtonDismisses(t *testing.T) {
	g, calls := visibleGuide(t)
	o := newTestOverlay(g)

	if !o.processPointer(&o.mouse, 325.5, 143.5, true) {
		t.Error("press on close button not consumed")
	}
	if g.State() != StateVisible {
		t.Fatal("press alone should not dismiss")
	}
	o.processPointer(&o.mouse, 325.5, 143.5, false)
	if g.State() != StateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
	if *calls != 1 || !g.Callout("a").HasBeenDismissed() {
		t.Errorf("calls = %d dismissed = %v", *calls, g.Callout("a").HasBeenDismissed())
	}
}

func TestReleaseOutsideCloseButtonCancels(t *testing.T) {
	g, calls := visibleGuide(t)
	o := newTestOverlay(g)
	o.processPointer(&o.mouse, 325.5, 143.5, true)
	o.processPointer(&o.mouse, 325.5, 143.5, true)
	o.processPointer(&o.mouse, 50, 170, false)
	if g.State() != StateVisible || *calls != 0 {
		t.Errorf("state %v calls %d, want visible and 0", g.State(), *calls)
	}
}

func TestPressOutsideNotConsumed(t *testing.T) {
	g, _ := visibleGuide(t)
	o := newTestOverlay(g)
	if o.processPointer(&o.mouse, 600, 500, true) {
		t.Error("press outside the bubble consumed")
	}
	o.processPointer(&o.mouse, 600, 500, false)
	if !o.processPointer(&o.mouse, 50, 170, true) {
		t.Error("press on the bubble body not consumed")
	}
	if g.State() != StateVisible {
		t.Error("press on the body changed state")
	}
}

func TestInjectClick(t *testing.T) {
	g, calls := visibleGuide(t)
	o := newTestOverlay(g)
	o.InjectClick(325.5, 143.5)
	if o.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", o.PendingInput())
	}
	if !o.processInjectedInput() {
		t.Fatal("press not consumed")
	}
	if g.State() != StateVisible {
		t.Fatal("dismissed on press")
	}
	o.processInjectedInput()
	if g.State() != StateIdle || *calls != 1 {
		t.Errorf("state %v calls %d after injected click", g.State(), *calls)
	}
	if o.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
	if !o.ConsumedInput() {
		t.Error("injected click over the bubble should mark input consumed")
	}
}

func TestOverlayScaleConvertsCoordinates(t *testing.T) {
	g, calls := visibleGuide(t)
	o := newTestOverlay(g)
	o.scale = 2
	o.InjectPress(651, 287)
	o.InjectRelease(651, 287)
	o.processInjectedInput()
	o.processInjectedInput()
	if *calls != 1 {
		t.Errorf("scaled click missed the close button")
	}
}

func TestLayoutSetsViewport(t *testing.T) {
	g := newTestGuide(t)
	o := newTestOverlay(g)
	o.scale = 2
	w, h := o.Layout(1280, 720)
	if w != 1280 || h != 720 {
		t.Errorf("Layout = %d x %d", w, h)
	}
	vp, _ := g.Viewport()
	if vp.Width != 640 || vp.Height != 360 {
		t.Errorf("viewport = %+v, want 640x360", vp)
	}
}

func TestScriptClickThroughOverlay(t *testing.T) {
	g, calls := visibleGuide(t)
	o := newTestOverlay(g)
	r, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 325.5, "y": 143.5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5 && !r.Done(); i++ {
		r.Step(g, o)
		o.processInjectedInput()
	}
	if !r.Done() || *calls != 1 {
		t.Errorf("done %v calls %d", r.Done(), *calls)
	}
}
