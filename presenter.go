package guide

import "time"

// Measurer sizes callout content. maxWidth is the width available to text
// inside the bubble; the returned size is the text block's size. The overlay
// implements it with real font metrics.
type Measurer interface {
	MeasureContent(content Content, maxWidth float64) Size
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(content Content, maxWidth float64) Size

// MeasureContent calls f.
func (f MeasurerFunc) MeasureContent(content Content, maxWidth float64) Size {
	return f(content, maxWidth)
}

// Presentation is the render state of the visible callout. X, Y, Scale and
// Opacity are animated; Rect is the bubble's final placed rectangle.
type Presentation struct {
	ID          string
	Placement   Placement
	Content     Content
	Rect        Rect
	ArrowOffset float64

	X, Y    float64 // animated bubble origin
	Scale   float64
	Opacity float64

	// Ready is false until the content has been measured and placed. A
	// presentation that is not ready must be drawn fully transparent.
	Ready bool
}

// Bounds returns the bubble's on-screen rectangle at the current animation
// step, scaled about its center.
func (p Presentation) Bounds() Rect {
	w := p.Rect.Width * p.Scale
	h := p.Rect.Height * p.Scale
	return Rect{
		X:      p.X + (p.Rect.Width-w)/2,
		Y:      p.Y + (p.Rect.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// presenter runs the measure-then-place protocol for the current callout and
// owns its appear animation.
type presenter struct {
	active bool
	pres   Presentation
	tween  *tweenGroup
}

// begin starts presenting rec. The bubble starts invisible, centered on its
// anchor with the last known size, and waits for measurement.
func (p *presenter) begin(rec Record) {
	size := rec.CalloutRect.Size()
	center := rec.SourceRect.Center()
	p.active = true
	p.tween = nil
	p.pres = Presentation{
		ID:          rec.ID,
		Placement:   rec.Placement,
		Content:     rec.Content,
		Rect:        rec.CalloutRect,
		ArrowOffset: rec.ArrowOffset,
		X:           center.X - size.Width/2,
		Y:           center.Y - size.Height/2,
		Scale:       0,
		Opacity:     0,
	}
}

// end stops presenting.
func (p *presenter) end() {
	p.active = false
	p.tween = nil
	p.pres = Presentation{}
}

// place applies a placement result. When animate is set the bubble grows and
// fades in from wherever it currently is; otherwise it snaps into place.
func (p *presenter) place(rec Record, res PlacementResult, animate bool) {
	p.pres.Placement = rec.Placement
	p.pres.Content = rec.Content
	p.pres.Rect = res.CalloutRect
	p.pres.ArrowOffset = res.ArrowOffset
	p.pres.Ready = true

	if !animate {
		if p.tween != nil {
			p.tween.finish()
			p.tween = nil
		}
		p.pres.X = res.CalloutRect.X
		p.pres.Y = res.CalloutRect.Y
		p.pres.Scale = 1
		p.pres.Opacity = 1
		return
	}

	g := &tweenGroup{}
	g.add(&p.pres.X, res.CalloutRect.X, appearDuration, appearEase)
	g.add(&p.pres.Y, res.CalloutRect.Y, appearDuration, appearEase)
	g.add(&p.pres.Scale, 1, appearDuration, appearEase)
	g.add(&p.pres.Opacity, 1, appearDuration, appearEase)
	p.tween = g
}

// animate advances the appear animation.
func (p *presenter) animate(dt time.Duration) {
	if p.tween == nil {
		return
	}
	if p.tween.update(float32(dt.Seconds())) {
		p.tween = nil
	}
	// Overshooting easings may push opacity past 1.
	p.pres.Opacity = clamp01(p.pres.Opacity)
}

// animating reports whether the appear animation is still running.
func (p *presenter) animating() bool {
	return p.tween != nil
}
