package guide

import "time"

// State is the visibility state of the guide's display.
type State uint8

const (
	StateIdle    State = iota // nothing pending, nothing visible
	StatePending              // a callout is waiting for its delay or its anchor
	StateVisible              // a callout is on screen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateVisible:
		return "visible"
	default:
		return "unknown"
	}
}

// displayState holds the at-most-one visible callout, the pending callout and
// its one-shot delay timer, and the viewport geometry. Exactly one of
// pendingID and currentID may be non-empty at a time.
type displayState struct {
	pendingID string
	currentID string

	delay      time.Duration // delay requested by the last show
	remaining  time.Duration // time left on the one-shot timer
	timerArmed bool

	viewport Rect
	safeArea Insets

	// Single global slot; each show replaces it.
	onDismiss func()
}

func newDisplayState() *displayState {
	return &displayState{onDismiss: func() {}}
}

func (d *displayState) state() State {
	switch {
	case d.currentID != "":
		return StateVisible
	case d.pendingID != "":
		return StatePending
	default:
		return StateIdle
	}
}

// show queues id for display after delay, dropping whatever was visible or
// pending. Any running timer is replaced.
func (d *displayState) show(id string, delay time.Duration, onDismiss func()) {
	d.currentID = ""
	d.pendingID = id
	d.delay = delay
	d.remaining = delay
	d.timerArmed = true
	d.onDismiss = onDismiss
}

// advance counts the timer down by dt and reports whether it fired during
// this call. A zero-delay timer fires on the first advance. Negative dt is
// treated as zero.
func (d *displayState) advance(dt time.Duration) bool {
	if !d.timerArmed {
		return false
	}
	if dt < 0 {
		dt = 0
	}
	d.remaining -= dt
	if d.remaining > 0 {
		return false
	}
	d.remaining = 0
	d.timerArmed = false
	return true
}

// awaitingAnchor reports whether the timer has fired but the pending callout
// could not be promoted yet because its anchor was never measured.
func (d *displayState) awaitingAnchor() bool {
	return d.pendingID != "" && !d.timerArmed
}

// promote moves the pending callout to current. Callers must have checked
// that the pending id has a registry record.
func (d *displayState) promote() string {
	id := d.pendingID
	if id == "" {
		return ""
	}
	d.currentID = id
	d.pendingID = ""
	d.delay = 0
	return id
}

// clear drops both the current and pending callout and cancels the timer.
func (d *displayState) clear() {
	d.currentID = ""
	d.pendingID = ""
	d.remaining = 0
	d.timerArmed = false
}

// matches reports whether id is the current or pending callout.
func (d *displayState) matches(id string) bool {
	return id != "" && (d.currentID == id || d.pendingID == id)
}

// forget clears the display if it refers to id.
func (d *displayState) forget(id string) bool {
	if !d.matches(id) {
		return false
	}
	d.clear()
	return true
}

// reshow turns the visible callout back into an immediately due pending one
// so it is measured and placed again. The dismiss handler is kept.
func (d *displayState) reshow() bool {
	if d.currentID == "" || d.pendingID != "" {
		return false
	}
	d.pendingID = d.currentID
	d.currentID = ""
	d.delay = 0
	d.remaining = 0
	d.timerArmed = true
	return true
}
