package guide

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultAppearance(t *testing.T) {
	a := DefaultAppearance()
	if a.OutlineSize != 1 || a.ShadowSize != 10 {
		t.Errorf("sizes = %v, %v", a.OutlineSize, a.ShadowSize)
	}
	if a.ShadowColor(ColorSchemeLight) != ColorBlack.WithAlpha(0.2) {
		t.Errorf("light shadow = %+v", a.ShadowColor(ColorSchemeLight))
	}
	if a.ShadowColor(ColorSchemeDark) != ColorWhite.WithAlpha(0.35) {
		t.Errorf("dark shadow = %+v", a.ShadowColor(ColorSchemeDark))
	}
	if a.ForegroundColor(ColorSchemeDark) == a.ForegroundColor(ColorSchemeLight) {
		t.Error("light and dark foregrounds should differ")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestAppearanceValidate(t *testing.T) {
	a := DefaultAppearance()
	a.OutlineSize = -1
	if a.Validate() == nil {
		t.Error("negative outline accepted")
	}
	a = DefaultAppearance()
	a.ShadowSize = -1
	if a.Validate() == nil {
		t.Error("negative shadow accepted")
	}
}

func TestColorSchemeString(t *testing.T) {
	if ColorSchemeLight.String() != "light" || ColorSchemeDark.String() != "dark" {
		t.Error("unexpected scheme names")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppearanceTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "appearance.toml", `
outline_size = 2
shadow_size = 4

[light]
background = "#ff0000"
`)
	a, err := LoadAppearance(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.OutlineSize != 2 || a.ShadowSize != 4 {
		t.Errorf("sizes = %v, %v", a.OutlineSize, a.ShadowSize)
	}
	if a.Light.Background != (Color{1, 0, 0, 1}) {
		t.Errorf("light background = %+v", a.Light.Background)
	}
	if a.Light.Foreground != DefaultAppearance().Light.Foreground {
		t.Error("unset field lost its default")
	}
}

func TestLoadAppearanceYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "appearance.yml", `
shadow_size: 0
dark:
  foreground: "#00ff00"
`)
	a, err := LoadAppearance(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.ShadowSize != 0 || a.OutlineSize != 1 {
		t.Errorf("sizes = %v, %v", a.OutlineSize, a.ShadowSize)
	}
	if a.Dark.Foreground != (Color{0, 1, 0, 1}) {
		t.Errorf("dark foreground = %+v", a.Dark.Foreground)
	}
}

func TestLoadAppearanceJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "appearance.json", `{"outline_size": 3, "dark": {"outline": "#00ff0080"}}`)
	a, err := LoadAppearance(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.OutlineSize != 3 {
		t.Errorf("outline = %v", a.OutlineSize)
	}
	if a.Dark.Outline.Hex() != "#00ff0080" {
		t.Errorf("dark outline = %s", a.Dark.Outline.Hex())
	}
}

func TestLoadAppearanceMissingFile(t *testing.T) {
	a, err := LoadAppearance(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if a != DefaultAppearance() {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadAppearanceErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadAppearance(filepath.Join(dir, "appearance.xml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("xml: err = %v, want ErrUnsupportedFormat", err)
	}
	bad := writeFile(t, dir, "neg.toml", "outline_size = -2\n")
	if _, err := LoadAppearance(bad); err == nil {
		t.Error("negative outline accepted")
	}
	badColor := writeFile(t, dir, "color.json", `{"light": {"background": "red"}}`)
	if _, err := LoadAppearance(badColor); err == nil {
		t.Error("invalid color accepted")
	}
	broken := writeFile(t, dir, "broken.yaml", "outline_size: [\n")
	if _, err := LoadAppearance(broken); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestWatchAppearanceReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "appearance.toml", "outline_size = 1\n")

	g := newTestGuide(t)
	w, err := WatchAppearance(g, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })

	writeFile(t, dir, "appearance.toml", "outline_size = 5\n")
	writeFile(t, dir, "unrelated.toml", "outline_size = 9\n")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		g.Update(frame)
		if g.Appearance().OutlineSize == 5 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("appearance not reloaded, outline = %v", g.Appearance().OutlineSize)
}

func TestWatchAppearanceReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "appearance.json", `{}`)
	g := newTestGuide(t)
	w, err := WatchAppearance(g, path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { w.Close() })

	writeFile(t, dir, "appearance.json", `{"outline_size": -1}`)
	select {
	case err := <-w.Errors():
		if err == nil {
			t.Error("nil error reported")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no error reported for invalid appearance")
	}
	g.Update(frame)
	if g.Appearance().OutlineSize != 1 {
		t.Errorf("invalid reload applied: outline = %v", g.Appearance().OutlineSize)
	}
}
