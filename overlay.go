package guide

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	shadowRings      = 5
	curveSegments    = 6
	closeCircleSegs  = 20
	closeGlyphInset  = 5.5
	closeGlyphStroke = 1.5

	defaultTPS = 60
)

// whitePixelImage is the source texture for all overlay triangles.
var whitePixelImage *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// OverlayOptions configures an Overlay. Zero values select defaults.
type OverlayOptions struct {
	// TitleFace and MessageFace override the bundled Go fonts.
	TitleFace   *text.GoTextFace
	MessageFace *text.GoTextFace

	// Scale is the ratio of screen pixels to overlay units, e.g. the device
	// scale factor. Defaults to 1.
	Scale float64

	// ScreenshotDir is where Screenshot writes PNGs. Defaults to
	// "screenshots".
	ScreenshotDir string

	// Debug logs per-frame draw stats at debug level.
	Debug bool
}

// Overlay draws the guide's visible callout above the host's own content and
// turns clicks on its close button into dismissals. Call Update, Draw and
// Layout from the matching ebiten.Game methods.
type Overlay struct {
	guide *Guide
	fonts Fonts
	scale float64

	mesh meshBuffer

	mouse       pointerState
	touch       pointerState
	touchIDs    []ebiten.TouchID
	touchID     ebiten.TouchID
	touchHeld   bool
	injectQueue []syntheticPointerEvent
	consumed    bool

	script          *ScriptRunner
	screenshotDir   string
	screenshotQueue []string
	debug           bool
}

// NewOverlay creates an overlay for g and makes it g's measurer.
func NewOverlay(g *Guide, opts OverlayOptions) (*Overlay, error) {
	fonts := Fonts{Title: opts.TitleFace, Message: opts.MessageFace}
	if fonts.Title == nil || fonts.Message == nil {
		def, err := DefaultFonts()
		if err != nil {
			return nil, fmt.Errorf("guide: new overlay: %w", err)
		}
		if fonts.Title == nil {
			fonts.Title = def.Title
		}
		if fonts.Message == nil {
			fonts.Message = def.Message
		}
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	o := &Overlay{guide: g, fonts: fonts, scale: scale, screenshotDir: dir, debug: opts.Debug}
	g.measurer = fonts
	return o, nil
}

// Guide returns the guide the overlay draws.
func (o *Overlay) Guide() *Guide {
	return o.guide
}

// SetScript attaches a script. Its steps run at the start of each Update,
// before pointer input is read.
func (o *Overlay) SetScript(r *ScriptRunner) {
	o.script = r
}

// Update runs the attached script, processes pointer input and advances the
// guide by one tick.
func (o *Overlay) Update() error {
	o.consumed = false
	if o.script != nil {
		o.script.Step(o.guide, o)
	}
	o.processInput()
	o.guide.Update(frameDuration())
	return nil
}

// frameDuration returns the length of one tick. With ebiten.SyncWithFPS
// TPS reports a negative value, so the measured rate is used instead.
func frameDuration() time.Duration {
	tps := float64(ebiten.TPS())
	if tps <= 0 {
		tps = ebiten.ActualTPS()
	}
	if tps <= 0 {
		tps = defaultTPS
	}
	return time.Duration(float64(time.Second) / tps)
}

// ConsumedInput reports whether the pointer was over the callout during the
// last Update. Hosts use it to keep clicks from reaching elements beneath.
func (o *Overlay) ConsumedInput() bool {
	return o.consumed
}

// Layout sets the guide's viewport to the outside size in overlay units and
// returns the screen size unchanged.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	o.guide.SetViewport(Rect{
		Width:  float64(outsideWidth) / o.scale,
		Height: float64(outsideHeight) / o.scale,
	}, Insets{})
	return outsideWidth, outsideHeight
}

// toOverlay converts screen coordinates to overlay units.
func (o *Overlay) toOverlay(x, y float64) (float64, float64) {
	return x / o.scale, y / o.scale
}

// bubbleTransform maps bubble-local coordinates to screen pixels for p.
func (o *Overlay) bubbleTransform(p Presentation) Affine {
	b := p.Bounds()
	return Scale(o.scale, o.scale).
		Multiply(Translate(b.X, b.Y)).
		Multiply(Scale(p.Scale, p.Scale))
}

// Draw renders the visible callout onto screen. Nothing is drawn until the
// callout has been measured and placed.
func (o *Overlay) Draw(screen *ebiten.Image) {
	defer o.flushScreenshots(screen)

	p, ok := o.guide.Presentation()
	if !ok || !p.Ready || p.Opacity <= 0 || p.Scale <= 0 || p.Rect.IsEmpty() {
		return
	}
	a := o.guide.appearance
	scheme := o.guide.scheme
	size := p.Rect.Size()
	xf := o.bubbleTransform(p)

	outline := FlattenPath(OutlinePath(size, p.Placement, p.ArrowOffset), curveSegments)
	hub := BodyRect(size, p.Placement).Center()

	start := time.Now()
	o.mesh.reset()
	o.buildShadow(outline, hub, xf, a.ShadowSize, a.ShadowColor(scheme), p.Opacity)
	o.mesh.fan(outline, hub, xf, a.BackgroundColor(scheme), p.Opacity)
	o.mesh.stroke(outline, a.OutlineSize, xf, a.OutlineColor(scheme), p.Opacity)
	o.buildCloseButton(size, p.Placement, xf, a, scheme, p.Opacity)

	screen.DrawTriangles(o.mesh.verts, o.mesh.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
	lines := o.drawText(screen, p, xf, a.ForegroundColor(scheme))

	o.debugLog(drawStats{
		id:            p.ID,
		vertexCount:   len(o.mesh.verts),
		triangleCount: len(o.mesh.inds) / 3,
		lineCount:     lines,
		drawTime:      time.Since(start),
	})
}

// buildShadow approximates a blurred shadow with concentric translucent rings
// whose alpha falls off linearly with distance.
func (o *Overlay) buildShadow(outline []Vec2, hub Vec2, xf Affine, size float64, c Color, opacity float64) {
	if size <= 0 || c.A <= 0 {
		return
	}
	step := size / shadowRings
	ringAlpha := c.A / shadowRings
	for i := shadowRings; i >= 1; i-- {
		ring := expandPolygon(outline, hub, step*float64(i))
		o.mesh.fan(ring, hub, xf, c.WithAlpha(ringAlpha), opacity)
	}
}

// buildCloseButton draws the circular close button and its cross.
func (o *Overlay) buildCloseButton(size Size, p Placement, xf Affine, a Appearance, scheme ColorScheme, opacity float64) {
	r := CloseButtonRect(size, p, a.OutlineSize)
	center := r.Center()
	fg := a.ForegroundColor(scheme)
	o.mesh.fan(circlePoints(center, r.Width/2, closeCircleSegs), center, xf, fg.WithAlpha(fg.A*0.12), opacity)

	in := r.Inset(Insets{closeGlyphInset, closeGlyphInset, closeGlyphInset, closeGlyphInset})
	o.mesh.segment(Vec2{in.X, in.Y}, Vec2{in.Right(), in.Bottom()}, closeGlyphStroke, xf, fg, opacity)
	o.mesh.segment(Vec2{in.Right(), in.Y}, Vec2{in.X, in.Bottom()}, closeGlyphStroke, xf, fg, opacity)
}

// drawText draws the title and message lines inside the content padding and
// returns the number of lines drawn.
func (o *Overlay) drawText(screen *ebiten.Image, p Presentation, xf Affine, fg Color) int {
	l := o.fonts.layout(p.Content, ContentWidth(o.guide.display.viewport.Width))
	pad := ContentPadding(p.Placement)
	sx := xf[0]
	y := pad.Top

	draw := func(line string, face *text.GoTextFace, y float64) {
		op := &text.DrawOptions{}
		op.GeoM.Scale(sx, sx)
		x, ty := xf.Apply(pad.Left, y)
		op.GeoM.Translate(x, ty)
		op.ColorScale.ScaleWithColor(fg.RGBA())
		op.ColorScale.ScaleAlpha(float32(p.Opacity))
		text.Draw(screen, line, face, op)
	}

	for _, line := range l.titleLines {
		draw(line, o.fonts.Title, y)
		y += l.titleLH
	}
	if len(l.titleLines) > 0 && len(l.messageLines) > 0 {
		y += titleSpacing
	}
	for _, line := range l.messageLines {
		draw(line, o.fonts.Message, y)
		y += l.messageLH
	}
	return len(l.titleLines) + len(l.messageLines)
}
