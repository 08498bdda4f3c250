package guide

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestScreenshotSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"after-dismiss", "after-dismiss"},
		{"frame.01", "frame.01"},
		{"Has Spaces", "has-spaces"},
		{"path/to//thing", "path-to-thing"},
		{"  padded!  ", "padded"},
		{"", "frame"},
		{"!!!", "frame"},
	}
	for _, tt := range tests {
		if got := screenshotSlug(tt.in); got != tt.want {
			t.Errorf("screenshotSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	o := newTestOverlay(newTestGuide(t))
	o.Screenshot("a")
	o.Screenshot("b")
	if len(o.screenshotQueue) != 2 || o.screenshotQueue[0] != "a" || o.screenshotQueue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", o.screenshotQueue)
	}
}

func TestSaveScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := saveScreenshot(dir, "After Dismiss", img, at)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "20260304_050607_after-dismiss.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	if r, _, _, a := got.At(0, 0).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel (0,0) r=%x a=%x, want opaque red", r, a)
	}
}

func TestSaveScreenshotBadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := saveScreenshot(filepath.Join(file, "sub"), "x", image.NewRGBA(image.Rect(0, 0, 1, 1)), time.Now()); err == nil {
		t.Error("saveScreenshot under a regular file succeeded")
	}
}
