package guide

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// meshBuffer accumulates triangles for one DrawTriangles call. Vertex colors
// are premultiplied and the source is a white pixel, so every triangle is a
// flat color.
type meshBuffer struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (m *meshBuffer) reset() {
	m.verts = m.verts[:0]
	m.inds = m.inds[:0]
}

func (m *meshBuffer) vertex(x, y float64, r, g, b, a float32) uint16 {
	m.verts = append(m.verts, ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: r, ColorG: g, ColorB: b, ColorA: a,
	})
	return uint16(len(m.verts) - 1)
}

// fan fills a star-shaped polygon by fanning triangles out from hub. Unlike a
// fan from the first vertex this handles the bubble's notch, which makes the
// outline non-convex.
func (m *meshBuffer) fan(points []Vec2, hub Vec2, xf Affine, c Color, opacity float64) {
	n := len(points)
	if n < 3 {
		return
	}
	r, g, b, a := c.premultiplied(opacity)
	hx, hy := xf.Apply(hub.X, hub.Y)
	h := m.vertex(hx, hy, r, g, b, a)
	first := uint16(len(m.verts))
	for _, p := range points {
		x, y := xf.Apply(p.X, p.Y)
		m.vertex(x, y, r, g, b, a)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.inds = append(m.inds, h, first+uint16(i), first+uint16(j))
	}
}

// stroke draws a closed polyline of the given width as one quad per edge.
func (m *meshBuffer) stroke(points []Vec2, width float64, xf Affine, c Color, opacity float64) {
	n := len(points)
	if n < 2 || width <= 0 {
		return
	}
	r, g, b, a := c.premultiplied(opacity)
	half := width / 2
	for i := 0; i < n; i++ {
		p0 := points[i]
		p1 := points[(i+1)%n]
		px, py := perpendicular(p0, p1)
		ox, oy := px*half, py*half

		x0, y0 := xf.Apply(p0.X+ox, p0.Y+oy)
		x1, y1 := xf.Apply(p0.X-ox, p0.Y-oy)
		x2, y2 := xf.Apply(p1.X+ox, p1.Y+oy)
		x3, y3 := xf.Apply(p1.X-ox, p1.Y-oy)
		v0 := m.vertex(x0, y0, r, g, b, a)
		v1 := m.vertex(x1, y1, r, g, b, a)
		v2 := m.vertex(x2, y2, r, g, b, a)
		v3 := m.vertex(x3, y3, r, g, b, a)
		m.inds = append(m.inds, v0, v1, v2, v1, v3, v2)
	}
}

// segment draws a single line of the given width.
func (m *meshBuffer) segment(a, b Vec2, width float64, xf Affine, c Color, opacity float64) {
	px, py := perpendicular(a, b)
	ox, oy := px*width/2, py*width/2
	cr, cg, cb, ca := c.premultiplied(opacity)
	x0, y0 := xf.Apply(a.X+ox, a.Y+oy)
	x1, y1 := xf.Apply(a.X-ox, a.Y-oy)
	x2, y2 := xf.Apply(b.X+ox, b.Y+oy)
	x3, y3 := xf.Apply(b.X-ox, b.Y-oy)
	v0 := m.vertex(x0, y0, cr, cg, cb, ca)
	v1 := m.vertex(x1, y1, cr, cg, cb, ca)
	v2 := m.vertex(x2, y2, cr, cg, cb, ca)
	v3 := m.vertex(x3, y3, cr, cg, cb, ca)
	m.inds = append(m.inds, v0, v1, v2, v1, v3, v2)
}

// perpendicular returns the unit normal of the segment a→b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 0
	}
	return -dy / ln, dx / ln
}

// circlePoints approximates a circle with the given number of segments.
func circlePoints(center Vec2, radius float64, segments int) []Vec2 {
	pts := make([]Vec2, segments)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Vec2{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return pts
}

// expandPolygon pushes every point of a star-shaped polygon away from hub by
// d pixels. Used to build the soft shadow rings.
func expandPolygon(points []Vec2, hub Vec2, d float64) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		dx := p.X - hub.X
		dy := p.Y - hub.Y
		ln := math.Sqrt(dx*dx + dy*dy)
		if ln < 1e-10 {
			out[i] = p
			continue
		}
		out[i] = Vec2{X: p.X + dx/ln*d, Y: p.Y + dy/ln*d}
	}
	return out
}
