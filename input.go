package guide

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// hitTarget is the part of the overlay under a pointer.
type hitTarget uint8

const (
	hitNone hitTarget = iota
	hitBubble
	hitClose
)

// closeHitSlop widens the close button's hit area beyond its drawn circle.
const closeHitSlop = 6.0

// pointerState tracks a single pointer between press and release.
type pointerState struct {
	down   bool
	lastX  float64
	lastY  float64
	target hitTarget
	id     string // callout under the pointer at press time
}

// syntheticPointerEvent is one injected pointer event in overlay coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// hitTest reports what the visible callout has under (x, y). Overlay
// coordinates are the guide's viewport coordinates.
func (g *Guide) hitTest(x, y float64) (hitTarget, string) {
	p, ok := g.Presentation()
	if !ok || !p.Ready || p.Opacity <= 0 || p.Scale <= 0 {
		return hitNone, ""
	}
	b := p.Bounds()
	if !b.Contains(x, y) {
		return hitNone, ""
	}
	// Back into bubble-local coordinates at full scale.
	lx := (x - b.X) / p.Scale
	ly := (y - b.Y) / p.Scale
	cb := CloseButtonRect(p.Rect.Size(), p.Placement, g.appearance.OutlineSize)
	if cb.Inset(Insets{-closeHitSlop, -closeHitSlop, -closeHitSlop, -closeHitSlop}).Contains(lx, ly) {
		return hitClose, p.ID
	}
	return hitBubble, p.ID
}

// processPointer runs the press/release state machine for one pointer. A
// click is a press and release over the close button of the same callout; it
// dismisses that callout. It reports whether the overlay consumed the event
// so hosts can stop it reaching the elements underneath.
func (o *Overlay) processPointer(ps *pointerState, x, y float64, pressed bool) bool {
	target, id := o.guide.hitTest(x, y)

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.target = target
		ps.id = id
	case !pressed && ps.down:
		if ps.target == hitClose && target == hitClose && ps.id == id {
			o.guide.logger.Debug("close button clicked", "id", id)
			o.guide.Callout(id).Dismiss()
		}
		target = ps.target
		ps.down = false
		ps.target = hitNone
		ps.id = ""
	case pressed && ps.down:
		target = ps.target
	}
	ps.lastX = x
	ps.lastY = y
	return target != hitNone
}

// processInput feeds one frame of pointer input. Injected events take
// precedence: while any are queued real input is ignored.
func (o *Overlay) processInput() {
	if o.processInjectedInput() {
		return
	}
	o.processMousePointer()
	o.processTouchPointer()
}

// processMousePointer handles the left mouse button.
func (o *Overlay) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	x, y := o.toOverlay(float64(mx), float64(my))
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	o.consumed = o.processPointer(&o.mouse, x, y, pressed) || o.consumed
}

// processTouchPointer follows the first touch only; callouts have a single
// button and no gestures.
func (o *Overlay) processTouchPointer() {
	o.touchIDs = ebiten.AppendTouchIDs(o.touchIDs[:0])
	if len(o.touchIDs) == 0 {
		if o.touch.down {
			o.consumed = o.processPointer(&o.touch, o.touch.lastX, o.touch.lastY, false) || o.consumed
		}
		o.touchHeld = false
		return
	}
	tid := o.touchIDs[0]
	if o.touchHeld && tid != o.touchID && o.touch.down {
		// The tracked finger lifted while another stayed down.
		o.consumed = o.processPointer(&o.touch, o.touch.lastX, o.touch.lastY, false) || o.consumed
	}
	o.touchID = tid
	o.touchHeld = true
	tx, ty := ebiten.TouchPosition(tid)
	x, y := o.toOverlay(float64(tx), float64(ty))
	o.consumed = o.processPointer(&o.touch, x, y, true) || o.consumed
}

// --- Injection ---

// InjectPress queues a pointer press at the given screen coordinates. Queued
// events are consumed one per Update.
func (o *Overlay) InjectPress(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (o *Overlay) InjectRelease(x, y float64) {
	o.injectQueue = append(o.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (o *Overlay) InjectClick(x, y float64) {
	o.InjectPress(x, y)
	o.InjectRelease(x, y)
}

// PendingInput reports how many injected events have not been consumed yet.
func (o *Overlay) PendingInput() int {
	return len(o.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the mouse pointer. Returns true if an event was consumed.
func (o *Overlay) processInjectedInput() bool {
	if len(o.injectQueue) == 0 {
		return false
	}
	evt := o.injectQueue[0]
	copy(o.injectQueue, o.injectQueue[1:])
	o.injectQueue = o.injectQueue[:len(o.injectQueue)-1]

	x, y := o.toOverlay(evt.x, evt.y)
	o.consumed = o.processPointer(&o.mouse, x, y, evt.pressed) || o.consumed
	return true
}
