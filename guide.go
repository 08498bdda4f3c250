package guide

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Guide owns all callout state for one application root: the registry of
// anchors, the display state machine, the appearance and the persistent
// counters. Create one with New near the top of the application and pass it
// to whatever attaches or shows callouts.
//
// A Guide is single-threaded. Every method except Post must be called from
// the goroutine that runs the game loop (Ebitengine's Update).
type Guide struct {
	registry   *Registry
	display    *displayState
	counters   *Counters
	presenter  presenter
	appearance Appearance
	scheme     ColorScheme
	margins    Margins
	measurer   Measurer
	logger     *log.Logger

	store KeyValueStore

	mu      sync.Mutex
	mailbox []func()
}

// Option configures a Guide.
type Option func(*Guide)

// WithStore sets the key-value store backing the dismissal and act-upon
// counters. The default is an empty MemoryStore.
func WithStore(store KeyValueStore) Option {
	return func(g *Guide) { g.store = store }
}

// WithAppearance sets the initial appearance.
func WithAppearance(a Appearance) Option {
	return func(g *Guide) { g.appearance = a }
}

// WithLogger sets the logger. The default is the charmbracelet default
// logger with a "guide" prefix.
func WithLogger(l *log.Logger) Option {
	return func(g *Guide) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMeasurer sets how callout content is measured. Overlay sets itself as
// the measurer; headless users may supply their own.
func WithMeasurer(m Measurer) Option {
	return func(g *Guide) { g.measurer = m }
}

// WithMargins selects the placement margin family.
func WithMargins(m Margins) Option {
	return func(g *Guide) { g.margins = m }
}

// WithColorScheme sets the initial color scheme.
func WithColorScheme(s ColorScheme) Option {
	return func(g *Guide) { g.scheme = s }
}

// New creates a Guide.
func New(opts ...Option) *Guide {
	g := &Guide{
		appearance: DefaultAppearance(),
		margins:    DefaultMargins,
		logger:     log.Default().WithPrefix("guide"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.measurer == nil {
		g.measurer = EstimateMeasurer{}
	}
	g.display = newDisplayState()
	g.registry = newRegistry(g.display)
	g.counters = newCounters(g.store, g.logger)
	return g
}

// Callout returns a callout definition bound to this guide.
func (g *Guide) Callout(id string) Callout {
	c := NewCallout(id)
	c.guide = g
	return c
}

// Bind returns a copy of c bound to this guide.
func (g *Guide) Bind(c Callout) Callout {
	c.guide = g
	return c
}

// --- Lifecycle ---

func (g *Guide) show(id string, cfg showConfig) {
	g.display.show(id, cfg.delay, cfg.onDismiss)
	g.presenter.end()
	g.logger.Debug("callout pending", "id", id, "delay", cfg.delay)
}

// close closes id if it is the current or pending callout.
func (g *Guide) close(id string, withDismissal bool) {
	if !g.display.matches(id) {
		return
	}
	handler := g.display.onDismiss
	g.display.clear()
	g.presenter.end()
	g.logger.Debug("callout closed", "id", id, "dismissed", withDismissal)
	if withDismissal {
		g.counters.Increment(DismissedKey(id))
		if handler != nil {
			handler()
		}
	}
}

// CloseCurrent closes whatever callout is visible or pending, without
// recording a dismissal.
func (g *Guide) CloseCurrent() {
	if g.display.state() == StateIdle {
		return
	}
	g.display.clear()
	g.presenter.end()
	g.logger.Debug("current callout closed")
}

// ResetAll clears every dismissal and act-upon counter so suppressed
// callouts show again.
func (g *Guide) ResetAll() {
	g.counters.ResetAll()
	g.logger.Debug("counters reset")
}

// Remove forgets the anchor for id. If it is the current or pending callout
// it is closed without dismissal.
func (g *Guide) Remove(id string) {
	g.registry.Remove(id)
	if g.presenter.active && g.presenter.pres.ID == id {
		g.presenter.end()
	}
}

// --- Geometry ---

// SetViewport records the overlay frame and safe-area insets. The visible
// callout, if any, is placed again immediately; its state does not change.
func (g *Guide) SetViewport(frame Rect, safeArea Insets) {
	if g.display.viewport == frame && g.display.safeArea == safeArea {
		return
	}
	g.display.viewport = frame
	g.display.safeArea = safeArea
	if g.presenter.active && g.presenter.pres.Ready {
		if rec, ok := g.registry.Get(g.display.currentID); ok {
			g.measureAndPlace(rec, false)
		}
	}
}

// Viewport returns the current overlay frame and safe-area insets.
func (g *Guide) Viewport() (Rect, Insets) {
	return g.display.viewport, g.display.safeArea
}

// --- Appearance ---

// SetAppearance replaces the appearance and re-shows the current callout so
// it is measured again.
func (g *Guide) SetAppearance(a Appearance) {
	g.appearance = a
	if g.display.reshow() {
		g.presenter.end()
		g.logger.Debug("callout reshown", "id", g.display.pendingID)
	}
}

// Appearance returns the active appearance.
func (g *Guide) Appearance() Appearance {
	return g.appearance
}

// SetColorScheme switches between the light and dark palettes.
func (g *Guide) SetColorScheme(s ColorScheme) {
	g.scheme = s
}

// ColorScheme returns the active color scheme.
func (g *Guide) ColorScheme() ColorScheme {
	return g.scheme
}

// --- Introspection ---

// State returns the display state.
func (g *Guide) State() State {
	return g.display.state()
}

// CurrentID returns the id of the visible callout, or "".
func (g *Guide) CurrentID() string {
	return g.display.currentID
}

// PendingID returns the id of the callout waiting to appear, or "".
func (g *Guide) PendingID() string {
	return g.display.pendingID
}

// Presentation returns the render state of the visible callout.
func (g *Guide) Presentation() (Presentation, bool) {
	if !g.presenter.active || g.presenter.pres.ID != g.display.currentID {
		return Presentation{}, false
	}
	return g.presenter.pres, true
}

// Registry returns the anchor registry.
func (g *Guide) Registry() *Registry {
	return g.registry
}

// Counters returns the persistent counters.
func (g *Guide) Counters() *Counters {
	return g.counters
}

// Logger returns the guide's logger.
func (g *Guide) Logger() *log.Logger {
	return g.logger
}

// --- Frame loop ---

// Post queues fn to run on the next Update. It is the only method that may be
// called from other goroutines, e.g. file watchers.
func (g *Guide) Post(fn func()) {
	if fn == nil {
		return
	}
	g.mu.Lock()
	g.mailbox = append(g.mailbox, fn)
	g.mu.Unlock()
}

// Update advances the guide by one frame of dt: posted work runs, the delay
// timer counts down, a due callout becomes visible and the appear animation
// steps. Call once per tick. A negative dt counts as zero.
func (g *Guide) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	g.drainMailbox()

	if g.display.advance(dt) {
		g.logger.Debug("callout delay elapsed", "id", g.display.pendingID)
	}
	if g.promote() {
		// The first frame of a new callout is drawn invisible; measuring
		// happens on the next one.
		return
	}
	g.present(dt)
}

func (g *Guide) drainMailbox() {
	g.mu.Lock()
	jobs := g.mailbox
	g.mailbox = nil
	g.mu.Unlock()
	for _, fn := range jobs {
		fn()
	}
}

// promote makes a due pending callout current once its anchor is known.
func (g *Guide) promote() bool {
	if !g.display.awaitingAnchor() {
		return false
	}
	rec, ok := g.registry.Get(g.display.pendingID)
	if !ok {
		return false
	}
	id := g.display.promote()
	g.presenter.begin(rec)
	g.logger.Debug("callout visible", "id", id)
	return true
}

func (g *Guide) present(dt time.Duration) {
	id := g.display.currentID
	if id == "" {
		if g.presenter.active {
			g.presenter.end()
		}
		return
	}
	rec, ok := g.registry.Get(id)
	if !ok {
		// Dangling current callout: treat as no callout.
		g.display.clear()
		g.presenter.end()
		return
	}
	if !g.presenter.active || g.presenter.pres.ID != id {
		g.presenter.begin(rec)
		return
	}
	if !g.presenter.pres.Ready {
		g.measureAndPlace(rec, true)
		return
	}
	g.presenter.animate(dt)
}

// measureAndPlace sizes the content, runs the placement engine and writes the
// result back into the registry.
func (g *Guide) measureAndPlace(rec Record, animate bool) {
	vp := g.display.viewport
	content := g.measurer.MeasureContent(rec.Content, ContentWidth(vp.Width))
	res := Place(PlacementInput{
		SourceRect:    rec.SourceRect,
		Placement:     rec.Placement,
		BubbleSize:    BubbleSize(content, vp.Width, rec.Placement),
		ViewportWidth: vp.Width,
		SafeAreaTop:   g.display.safeArea.Top,
		OutlineSize:   g.appearance.OutlineSize,
		Margins:       g.margins,
	})
	g.registry.setPlacement(rec.ID, res.CalloutRect, res.ArrowOffset)
	g.presenter.place(rec, res, animate)
}
