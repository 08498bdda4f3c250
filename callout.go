package guide

import "time"

// Placement selects which side of its anchor a callout bubble renders on.
type Placement uint8

const (
	PlacementBelow Placement = iota // bubble under the anchor, arrow pointing up (default)
	PlacementAbove                  // bubble over the anchor, arrow pointing down
)

// String returns the placement name.
func (p Placement) String() string {
	switch p {
	case PlacementBelow:
		return "below"
	case PlacementAbove:
		return "above"
	default:
		return "unknown"
	}
}

// Content is the text shown inside a callout bubble. Empty fields are not
// rendered.
type Content struct {
	Title   string
	Message string
}

// Callout is an immutable description of a named callout. The With* builders
// return modified copies, so a Callout stored in a variable can be shared
// without one caller's changes leaking into another's.
//
// A Callout obtained from Guide.Callout is bound to that guide and its
// Show/Close family of methods act on it. A Callout from NewCallout is only a
// definition (for Guide.Attach); its lifecycle methods are no-ops.
type Callout struct {
	id        string
	placement Placement
	title     string
	message   string
	offset    Vec2
	guide     *Guide
}

// NewCallout returns an unbound callout definition with the given id.
// Panics if id is empty.
func NewCallout(id string) Callout {
	if id == "" {
		panic("guide: callout id must not be empty")
	}
	return Callout{id: id}
}

// ID returns the callout's unique, stable key.
func (c Callout) ID() string { return c.id }

// Placement returns the side of the anchor the bubble renders on.
func (c Callout) Placement() Placement { return c.placement }

// Title returns the bubble title.
func (c Callout) Title() string { return c.title }

// Message returns the bubble message.
func (c Callout) Message() string { return c.message }

// Offset returns the offset applied to the anchor's rectangle.
func (c Callout) Offset() Vec2 { return c.offset }

// Content returns the title and message as a Content value.
func (c Callout) Content() Content {
	return Content{Title: c.title, Message: c.message}
}

// WithPlacement returns a copy with the placement replaced.
func (c Callout) WithPlacement(p Placement) Callout {
	c.placement = p
	return c
}

// WithTitle returns a copy with the title replaced.
func (c Callout) WithTitle(title string) Callout {
	c.title = title
	return c
}

// WithMessage returns a copy with the message replaced.
func (c Callout) WithMessage(message string) Callout {
	c.message = message
	return c
}

// WithOffset returns a copy with the anchor offset replaced.
func (c Callout) WithOffset(offset Vec2) Callout {
	c.offset = offset
	return c
}

// --- Show options ---

type showConfig struct {
	delay     time.Duration
	onDismiss func()
}

// ShowOption configures a Show call.
type ShowOption func(*showConfig)

// AfterDelay waits d before the callout becomes visible. Useful for letting
// host animations settle first.
func AfterDelay(d time.Duration) ShowOption {
	return func(c *showConfig) {
		if d < 0 {
			d = 0
		}
		c.delay = d
	}
}

// OnDismiss registers fn to run when the callout is dismissed by the user or
// closed with dismissal. Only one handler is live at a time across all
// callouts; each Show replaces it.
func OnDismiss(fn func()) ShowOption {
	return func(c *showConfig) {
		c.onDismiss = fn
	}
}

func buildShowConfig(opts []ShowOption) showConfig {
	cfg := showConfig{onDismiss: func() {}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.onDismiss == nil {
		cfg.onDismiss = func() {}
	}
	return cfg
}

// --- Lifecycle ---

// Show queues the callout to appear after the configured delay, replacing
// any visible or pending callout.
func (c Callout) Show(opts ...ShowOption) {
	if c.guide == nil {
		return
	}
	c.guide.show(c.id, buildShowConfig(opts))
}

// ShowUntilDismissed shows the callout unless it has been dismissed before.
// A previously dismissed callout is closed with dismissal instead of shown.
func (c Callout) ShowUntilDismissed(opts ...ShowOption) {
	if c.guide == nil {
		return
	}
	if c.guide.counters.Count(DismissedKey(c.id)) > 0 {
		c.guide.close(c.id, true)
		return
	}
	c.guide.show(c.id, buildShowConfig(opts))
}

// ShowUntilActedUpon shows the callout unless ActUpon has been called for it.
func (c Callout) ShowUntilActedUpon(opts ...ShowOption) {
	if c.guide == nil {
		return
	}
	if c.guide.counters.Count(ActedUponKey(c.id)) > 0 {
		c.guide.logger.Debug("callout suppressed", "id", c.id, "reason", "acted upon")
		return
	}
	c.guide.show(c.id, buildShowConfig(opts))
}

// ActUpon records that the user performed the guided action and closes the
// callout without firing its dismiss handler.
func (c Callout) ActUpon() {
	if c.guide == nil {
		return
	}
	c.guide.counters.Increment(ActedUponKey(c.id))
	c.guide.close(c.id, false)
}

// HasBeenActedUpon reports whether ActUpon has ever been called for this id.
func (c Callout) HasBeenActedUpon() bool {
	if c.guide == nil {
		return false
	}
	return c.guide.counters.Count(ActedUponKey(c.id)) > 0
}

// HasBeenDismissed reports whether the callout has ever been dismissed.
func (c Callout) HasBeenDismissed() bool {
	if c.guide == nil {
		return false
	}
	return c.guide.counters.Count(DismissedKey(c.id)) > 0
}

// Dismiss closes the callout as if the user dismissed it: the dismissal is
// recorded and the dismiss handler runs.
func (c Callout) Dismiss() {
	if c.guide == nil {
		return
	}
	c.guide.close(c.id, true)
}

// Close closes the callout without recording a dismissal. Closing a callout
// that is neither visible nor pending does nothing.
func (c Callout) Close() {
	if c.guide == nil {
		return
	}
	c.guide.close(c.id, false)
}
