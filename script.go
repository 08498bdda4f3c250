package guide

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	ID     string  `json:"id,omitempty"`
	Delay  float64 `json:"delay,omitempty"` // seconds
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure of a script file.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Injector receives synthetic pointer events. Overlay implements it.
type Injector interface {
	InjectClick(x, y float64)
	PendingInput() int
}

// Screenshotter captures labeled frames. Overlay implements it.
type Screenshotter interface {
	Screenshot(label string)
}

// ScriptRunner drives a guide from a JSON script, one step per frame. It is
// used by the demo for reproducible walkthroughs and by tests.
//
//	{"steps": [
//	  {"action": "showUntilDismissed", "id": "welcome", "delay": 0.5},
//	  {"action": "wait", "frames": 60},
//	  {"action": "click", "x": 512, "y": 140},
//	  {"action": "screenshot", "label": "after-dismiss"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var scriptActions = map[string]bool{
	"show":               true,
	"showUntilDismissed": true,
	"showUntilActedUpon": true,
	"actUpon":            true,
	"dismiss":            true,
	"close":              true,
	"closeCurrent":       true,
	"resetAll":           true,
	"click":              true,
	"resize":             true,
	"screenshot":         true,
	"wait":               true,
}

// LoadScript parses a JSON script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("guide: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("guide: parse script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("guide: parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.ID == "" && needsID(st.Action) {
			return nil, fmt.Errorf("guide: parse script: step %d: %s requires an id", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func needsID(action string) bool {
	switch action {
	case "show", "showUntilDismissed", "showUntilActedUpon", "actUpon", "dismiss", "close":
		return true
	}
	return false
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the script by one frame. in may be nil when the script has
// no click or screenshot steps. Call before the guide's own Update.
func (r *ScriptRunner) Step(g *Guide, in Injector) {
	if r.done {
		return
	}
	// Wait for injected input to drain before advancing.
	if in != nil && in.PendingInput() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.run(g, in, st)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && (in == nil || in.PendingInput() == 0) {
		r.done = true
	}
}

func (r *ScriptRunner) run(g *Guide, in Injector, st scriptStep) {
	delay := AfterDelay(time.Duration(st.Delay * float64(time.Second)))
	c := func() Callout { return g.Callout(st.ID) }

	switch st.Action {
	case "show":
		c().Show(delay)
	case "showUntilDismissed":
		c().ShowUntilDismissed(delay)
	case "showUntilActedUpon":
		c().ShowUntilActedUpon(delay)
	case "actUpon":
		c().ActUpon()
	case "dismiss":
		c().Dismiss()
	case "close":
		c().Close()
	case "closeCurrent":
		g.CloseCurrent()
	case "resetAll":
		g.ResetAll()
	case "click":
		if in != nil {
			in.InjectClick(st.X, st.Y)
		}
	case "resize":
		_, safe := g.Viewport()
		g.SetViewport(Rect{Width: st.Width, Height: st.Height}, safe)
	case "screenshot":
		if s, ok := in.(Screenshotter); ok {
			s.Screenshot(st.Label)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	g.logger.Debug("script step", "action", st.Action, "id", st.ID)
}
