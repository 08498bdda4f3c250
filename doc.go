// Package guide is a callout (coach-mark) overlay for [Ebitengine].
//
// A callout is a small bubble with an arrow that points at an element of the
// host UI and explains it: "Tap here to add a friend". The guide decides
// which callout is visible, positions its bubble next to the element, keeps
// it on screen, and remembers across runs which callouts the user has
// dismissed or acted upon so they are not shown again.
//
// # Quick start
//
// Create one [Guide] for the application and an [Overlay] to draw it. Forward
// the ebiten.Game methods to the overlay after drawing your own content:
//
//	g := guide.New(guide.WithStore(store))
//	overlay, err := guide.NewOverlay(g, guide.OverlayOptions{})
//
//	func (a *App) Update() error              { a.ui.Update(); return a.overlay.Update() }
//	func (a *App) Draw(s *ebiten.Image)       { a.ui.Draw(s); a.overlay.Draw(s) }
//	func (a *App) Layout(w, h int) (int, int) { return a.overlay.Layout(w, h) }
//
// # Anchors
//
// Each callout is tied to an element through an [Anchor]. The host reports
// the element's screen rectangle whenever it lays out, and detaches the
// anchor when the element goes away:
//
//	addFriend := guide.NewCallout("add-friend").
//		WithTitle("Add a friend").
//		WithMessage("Tap here to invite someone.").
//		WithPlacement(guide.PlacementBelow)
//	anchor := g.Attach(addFriend)
//
//	// every layout pass
//	anchor.Layout(guide.Rect{X: 40, Y: 80, Width: 120, Height: 32})
//
// The guide never moves or resizes the element; it only observes it.
//
// # Showing callouts
//
// At most one callout is visible at a time. Showing a callout replaces the
// current one:
//
//	c := anchor.Callout()
//	c.ShowUntilDismissed(guide.AfterDelay(500 * time.Millisecond))
//
//	// when the user performs the action the callout points at
//	c.ActUpon()
//
// [Callout.ShowUntilDismissed] and [Callout.ShowUntilActedUpon] consult the
// persistent counters held in a [KeyValueStore]. The kvstore/filestore and
// kvstore/sqlitestore packages provide durable stores; [MemoryStore] is the
// in-process default.
//
// # Appearance
//
// Colors, outline and shadow come from an [Appearance], optionally loaded
// from a TOML, YAML or JSON file with [LoadAppearance] and kept in sync with
// [WatchAppearance].
//
// # Threading
//
// A Guide belongs to the goroutine running the game loop. Other goroutines
// hand work to it with [Guide.Post].
//
// [Ebitengine]: https://ebitengine.org
package guide
