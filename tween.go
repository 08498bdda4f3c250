package guide

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Appear animation parameters.
const (
	appearDuration = float32(0.35)
)

var appearEase ease.TweenFunc = ease.OutBack

// tweenGroup animates up to 4 float64 fields at once and writes the values
// through the stored pointers on every update.
type tweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	ends   [4]float64
	count  int
	done   bool
}

// add registers a field to animate from its current value to `to`.
// Calls beyond the fourth field are ignored.
func (g *tweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	if g.count >= len(g.tweens) {
		return
	}
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.ends[g.count] = to
	g.count++
}

// update advances all tweens by dt seconds. Returns true once every tween has
// finished.
func (g *tweenGroup) update(dt float32) bool {
	if g.done {
		return true
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			// float32 round-trip would otherwise leave the field slightly off.
			*g.fields[i] = g.ends[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.done = allDone
	return allDone
}

// finish jumps every field to its end value.
func (g *tweenGroup) finish() {
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.done = true
}
