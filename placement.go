package guide

import "math"

// Margins are the distances the placement engine keeps between the bubble,
// its anchor and the viewport edges. Two families exist: DefaultMargins for
// touch platforms and DesktopMargins, which hug the window's top edge more
// tightly.
type Margins struct {
	Edge     float64 // horizontal gap to the viewport edges
	BelowGap float64 // gap between anchor bottom and a below bubble
	AboveGap float64 // gap between anchor top and an above bubble
	BelowTop float64 // minimum distance from the safe-area top for below bubbles (plus half the outline)
	AboveTop float64 // minimum distance from the safe-area top for above bubbles
}

var (
	DefaultMargins = Margins{Edge: 8, BelowGap: 3, AboveGap: 8, BelowTop: 8, AboveTop: 8}
	DesktopMargins = Margins{Edge: 8, BelowGap: 3, AboveGap: 8, BelowTop: 4, AboveTop: 3}
)

// Bubble sizing.
const (
	MinBubbleWidth      = 330.0
	bubbleWidthFraction = 0.35
	contentSidePadding  = 12.0
)

// PlacementInput is everything Place needs to position one bubble.
type PlacementInput struct {
	SourceRect    Rect
	Placement     Placement
	BubbleSize    Size
	ViewportWidth float64
	SafeAreaTop   float64
	OutlineSize   float64
	Margins       Margins
}

// PlacementResult is the bubble's screen rectangle and the horizontal shift
// of its arrow from the bubble's center.
type PlacementResult struct {
	CalloutRect Rect
	ArrowOffset float64
}

// Place centers the bubble horizontally on the anchor, clamps it to the
// viewport and shifts the arrow so it still points at the anchor's center.
// Vertically the bubble sits below or above the anchor, but never closer to
// the top of the safe area than the configured minimum.
//
// When the viewport is narrower than the bubble plus both edge margins, both
// clamps apply and the right clamp, computed last, wins.
func Place(in PlacementInput) PlacementResult {
	m := in.Margins
	w := in.BubbleSize.Width
	h := in.BubbleSize.Height

	center := in.SourceRect.CenterX()
	x := center - w/2
	var arrowOffset float64

	if x < m.Edge {
		arrowOffset = x - m.Edge
		x = m.Edge
	}
	if x+w > in.ViewportWidth-m.Edge {
		x = in.ViewportWidth - m.Edge - w
		arrowOffset = center - (x + w/2)
	}

	var y float64
	switch in.Placement {
	case PlacementAbove:
		y = in.SourceRect.Y - h - m.AboveGap
		if minY := in.SafeAreaTop + m.AboveTop; y < minY {
			y = minY
		}
	default:
		y = in.SourceRect.Bottom() + m.BelowGap
		if minY := in.SafeAreaTop + m.BelowTop + in.OutlineSize/2; y < minY {
			y = minY
		}
	}

	return PlacementResult{
		CalloutRect: Rect{X: x, Y: y, Width: w, Height: h},
		ArrowOffset: arrowOffset,
	}
}

// BubbleWidth returns the bubble width used for a viewport: a third-ish of
// the usable width, but never less than MinBubbleWidth.
func BubbleWidth(viewportWidth float64) float64 {
	return math.Max(MinBubbleWidth, (viewportWidth-16)*bubbleWidthFraction)
}

// ContentPadding returns the padding between the bubble outline and its text.
// The arrow side gets the extra room the notch takes up.
func ContentPadding(p Placement) Insets {
	if p == PlacementAbove {
		return Insets{Top: 12, Left: contentSidePadding, Bottom: 25, Right: contentSidePadding}
	}
	return Insets{Top: 17, Left: contentSidePadding, Bottom: 15, Right: contentSidePadding}
}

// ContentWidth returns the width available to text inside a bubble.
func ContentWidth(viewportWidth float64) float64 {
	return BubbleWidth(viewportWidth) - 2*contentSidePadding
}

// BubbleSize wraps a measured content size in the bubble's padding. The
// width is always BubbleWidth; only the height depends on the content.
func BubbleSize(content Size, viewportWidth float64, p Placement) Size {
	pad := ContentPadding(p)
	return Size{
		Width:  BubbleWidth(viewportWidth),
		Height: content.Height + pad.Top + pad.Bottom,
	}
}
