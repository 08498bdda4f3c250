package guide

import (
	"strings"
	"testing"
)

type fakeInjector struct {
	clicks  []Vec2
	pending int
	shots   []string
}

func (f *fakeInjector) InjectClick(x, y float64) {
	f.clicks = append(f.clicks, Vec2{X: x, Y: y})
	f.pending += 2
}

func (f *fakeInjector) PendingInput() int { return f.pending }

func (f *fakeInjector) Screenshot(label string) { f.shots = append(f.shots, label) }

func runScript(t *testing.T, g *Guide, in Injector, src string, maxFrames int) *ScriptRunner {
	t.Helper()
	r, err := LoadScript([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < maxFrames && !r.Done(); i++ {
		r.Step(g, in)
		if f, ok := in.(*fakeInjector); ok && f.pending > 0 {
			f.pending--
		}
		g.Update(frame)
	}
	if !r.Done() {
		t.Fatalf("script not done after %d frames", maxFrames)
	}
	return r
}

func TestScriptShowWaitDismiss(t *testing.T) {
	g := newTestGuide(t)
	attach(g, "a", Rect{X: 100, Y: 100, Width: 50, Height: 20})
	runScript(t, g, nil, `{"steps": [
		{"action": "showUntilDismissed", "id": "a"},
		{"action": "wait", "frames": 3},
		{"action": "dismiss", "id": "a"}
	]}`, 20)

	if g.State() != StateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
	if !g.Callout("a").HasBeenDismissed() {
		t.Error("dismissal not recorded")
	}
}

func TestScriptWaitCountsFrames(t *testing.T) {
	g := newTestGuide(t)
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}
	frames := 0
	for !r.Done() && frames < 10 {
		r.Step(g, nil)
		frames++
	}
	if frames != 4 {
		t.Errorf("wait 3 took %d Step calls, want 4", frames)
	}
}

func TestScriptActionsDriveGuide(t *testing.T) {
	g := newTestGuide(t)
	attach(g, "a", Rect{X: 100, Y: 100, Width: 50, Height: 20})
	attach(g, "b", Rect{X: 300, Y: 100, Width: 50, Height: 20})
	in := &fakeInjector{}
	runScript(t, g, in, `{"steps": [
		{"action": "actUpon", "id": "a"},
		{"action": "showUntilActedUpon", "id": "a"},
		{"action": "show", "id": "b", "delay": 0.05},
		{"action": "wait", "frames": 10},
		{"action": "resize", "width": 1000, "height": 700},
		{"action": "click", "x": 12, "y": 34},
		{"action": "screenshot", "label": "b-visible"},
		{"action": "close", "id": "b"},
		{"action": "resetAll"},
		{"action": "show", "id": "a"},
		{"action": "closeCurrent"}
	]}`, 100)

	if len(in.clicks) != 1 || in.clicks[0] != (Vec2{12, 34}) {
		t.Errorf("clicks = %v", in.clicks)
	}
	if len(in.shots) != 1 || in.shots[0] != "b-visible" {
		t.Errorf("screenshots = %v", in.shots)
	}
	vp, _ := g.Viewport()
	if vp.Width != 1000 || vp.Height != 700 {
		t.Errorf("viewport = %+v", vp)
	}
	if g.Callout("a").HasBeenActedUpon() {
		t.Error("resetAll did not clear counters")
	}
	if g.State() != StateIdle {
		t.Errorf("state = %v, want idle", g.State())
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"bad json", `{`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "explode"}]}`, "unknown action"},
		{"missing id", `{"steps": [{"action": "show"}]}`, "requires an id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}
