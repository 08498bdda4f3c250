package guide

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled capture of the next frame. It is taken at the
// end of Draw, so it shows the host's content with the callout on top.
func (o *Overlay) Screenshot(label string) {
	o.screenshotQueue = append(o.screenshotQueue, label)
}

// flushScreenshots writes one PNG per queued label and empties the queue.
func (o *Overlay) flushScreenshots(screen *ebiten.Image) {
	if len(o.screenshotQueue) == 0 {
		return
	}
	labels := o.screenshotQueue
	o.screenshotQueue = o.screenshotQueue[:0]

	frame := captureFrame(screen)
	now := time.Now()
	for _, label := range labels {
		path, err := saveScreenshot(o.screenshotDir, label, frame, now)
		if err != nil {
			o.guide.logger.Warn("screenshot failed", "label", label, "dir", o.screenshotDir, "err", err)
			continue
		}
		o.guide.logger.Info("screenshot saved", "label", label, "callout", o.guide.CurrentID(), "path", path)
	}
}

// captureFrame copies the screen into an image.RGBA. Ebitengine's pixels are
// premultiplied, which is the layout image.RGBA expects.
func captureFrame(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}

// saveScreenshot encodes img as dir/<time>_<label>.png and returns the path.
func saveScreenshot(dir, label string, img image.Image, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("guide: screenshot dir: %w", err)
	}
	name := at.Format("20060102_150405") + "_" + screenshotSlug(label) + ".png"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("guide: screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("guide: encode screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("guide: screenshot: %w", err)
	}
	return path, nil
}

// screenshotSlug lowercases label and collapses every run of characters other
// than letters, digits, '.' and '-' into one '-'.
func screenshotSlug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' || r == '-' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if slug == "" {
		return "frame"
	}
	return slug
}
