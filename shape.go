package guide

// Bubble outline constants. These are part of the visual contract shared with
// every other rendering of a callout and are not configurable.
const (
	ArrowWidth   = 12.0
	ArrowHeight  = 8.0
	CornerRadius = 8.0

	closeButtonSize = 18.0
)

// PathOp identifies a path segment kind.
type PathOp uint8

const (
	PathMoveTo PathOp = iota // start a new sub-path at To
	PathLineTo               // straight line to To
	PathQuadTo               // quadratic Bézier to To through Control
)

// PathSegment is one step of an outline path in bubble-local coordinates.
type PathSegment struct {
	Op      PathOp
	To      Vec2
	Control Vec2 // PathQuadTo only
}

// OutlinePath returns the bubble outline for a bubble of the given size: a
// rounded rectangle with a triangular notch on the anchor side. Below bubbles
// get the notch on the top edge pointing up; above bubbles on the bottom edge
// pointing down. The notch is centered at size.Width/2 + arrowOffset.
func OutlinePath(size Size, p Placement, arrowOffset float64) []PathSegment {
	w, h := size.Width, size.Height
	r := CornerRadius
	ah := ArrowHeight
	ac := w/2 + arrowOffset

	move := func(x, y float64) PathSegment { return PathSegment{Op: PathMoveTo, To: Vec2{x, y}} }
	line := func(x, y float64) PathSegment { return PathSegment{Op: PathLineTo, To: Vec2{x, y}} }
	quad := func(x, y, cx, cy float64) PathSegment {
		return PathSegment{Op: PathQuadTo, To: Vec2{x, y}, Control: Vec2{cx, cy}}
	}

	if p == PlacementAbove {
		return []PathSegment{
			move(r, h-ah),
			line(ac-ArrowWidth/2, h-ah),
			line(ac, h),
			line(ac+ArrowWidth/2, h-ah),
			line(w-r, h-ah),
			quad(w, h-ah-r, w, h-ah),
			line(w, r),
			quad(w-r, 0, w, 0),
			line(r, 0),
			quad(0, r, 0, 0),
			line(0, h-r-ah),
			quad(r, h-ah, 0, h-ah),
		}
	}
	return []PathSegment{
		move(r, ah),
		line(ac-ArrowWidth/2, ah),
		line(ac, 0),
		line(ac+ArrowWidth/2, ah),
		line(w-r, ah),
		quad(w, ah+r, w, ah),
		line(w, h-r),
		quad(w-r, h, w, h),
		line(r, h),
		quad(0, h-r, 0, h),
		line(0, r+ah),
		quad(r, ah, 0, ah),
	}
}

// FlattenPath converts a path into a closed polygon, subdividing each
// quadratic segment into the given number of straight pieces (default 6).
// The final point is dropped when it coincides with the first.
func FlattenPath(path []PathSegment, curveSegments int) []Vec2 {
	if curveSegments <= 0 {
		curveSegments = 6
	}
	pts := make([]Vec2, 0, len(path)*curveSegments)
	var cur Vec2
	for _, seg := range path {
		switch seg.Op {
		case PathMoveTo, PathLineTo:
			pts = append(pts, seg.To)
		case PathQuadTo:
			a, c, b := cur, seg.Control, seg.To
			for i := 1; i <= curveSegments; i++ {
				t := float64(i) / float64(curveSegments)
				u := 1 - t
				pts = append(pts, Vec2{
					X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
					Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
				})
			}
		}
		cur = seg.To
	}
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// BodyRect returns the rectangular part of the bubble, excluding the arrow
// notch, in bubble-local coordinates.
func BodyRect(size Size, p Placement) Rect {
	if p == PlacementAbove {
		return Rect{Width: size.Width, Height: size.Height - ArrowHeight}
	}
	return Rect{Y: ArrowHeight, Width: size.Width, Height: size.Height - ArrowHeight}
}

// CloseButtonRect returns the close button's hit area in bubble-local
// coordinates. It sits in the top-right corner, padded by the outline.
func CloseButtonRect(size Size, p Placement, outlineSize float64) Rect {
	pad := 3 + outlineSize/2
	top := 3.0
	if p == PlacementBelow {
		top = 11
	}
	top += outlineSize / 2
	return Rect{
		X:      size.Width - pad - closeButtonSize,
		Y:      top,
		Width:  closeButtonSize,
		Height: closeButtonSize,
	}
}
