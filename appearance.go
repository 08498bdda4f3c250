package guide

import "fmt"

// ColorScheme selects the light or dark palette.
type ColorScheme uint8

const (
	ColorSchemeLight ColorScheme = iota
	ColorSchemeDark
)

// String returns the scheme name.
func (s ColorScheme) String() string {
	if s == ColorSchemeDark {
		return "dark"
	}
	return "light"
}

// Palette is the set of colors used to draw a callout in one color scheme.
type Palette struct {
	Background Color `toml:"background" yaml:"background" json:"background"`
	Foreground Color `toml:"foreground" yaml:"foreground" json:"foreground"`
	Outline    Color `toml:"outline" yaml:"outline" json:"outline"`
	Shadow     Color `toml:"shadow" yaml:"shadow" json:"shadow"`
}

// Appearance controls how callouts are drawn. It is read by the overlay
// renderer only; the positioning engine uses OutlineSize alone.
//
// Changing the appearance of a running Guide re-shows the current callout so
// it is measured and placed with the new outline.
type Appearance struct {
	OutlineSize float64 `toml:"outline_size" yaml:"outline_size" json:"outline_size"`
	ShadowSize  float64 `toml:"shadow_size" yaml:"shadow_size" json:"shadow_size"`
	Light       Palette `toml:"light" yaml:"light" json:"light"`
	Dark        Palette `toml:"dark" yaml:"dark" json:"dark"`
}

// DefaultAppearance returns the stock appearance: a one pixel outline, a ten
// pixel shadow, and system-like light and dark palettes.
func DefaultAppearance() Appearance {
	return Appearance{
		OutlineSize: 1,
		ShadowSize:  10,
		Light: Palette{
			Background: Color{0.95, 0.95, 0.97, 1},
			Foreground: Color{0, 0, 0, 1},
			Outline:    Color{0.24, 0.24, 0.26, 0.6},
			Shadow:     ColorBlack.WithAlpha(0.2),
		},
		Dark: Palette{
			Background: Color{0.11, 0.11, 0.12, 1},
			Foreground: Color{1, 1, 1, 1},
			Outline:    Color{0.92, 0.92, 0.96, 0.6},
			Shadow:     ColorWhite.WithAlpha(0.35),
		},
	}
}

// Palette returns the palette for the scheme.
func (a Appearance) Palette(scheme ColorScheme) Palette {
	if scheme == ColorSchemeDark {
		return a.Dark
	}
	return a.Light
}

// BackgroundColor returns the bubble fill color.
func (a Appearance) BackgroundColor(scheme ColorScheme) Color {
	return a.Palette(scheme).Background
}

// ForegroundColor returns the text color.
func (a Appearance) ForegroundColor(scheme ColorScheme) Color {
	return a.Palette(scheme).Foreground
}

// OutlineColor returns the outline and close button color.
func (a Appearance) OutlineColor(scheme ColorScheme) Color {
	return a.Palette(scheme).Outline
}

// ShadowColor returns the shadow color, including its opacity.
func (a Appearance) ShadowColor(scheme ColorScheme) Color {
	return a.Palette(scheme).Shadow
}

// Validate rejects negative sizes.
func (a Appearance) Validate() error {
	if a.OutlineSize < 0 {
		return fmt.Errorf("guide: outline_size must be >= 0, got %v", a.OutlineSize)
	}
	if a.ShadowSize < 0 {
		return fmt.Errorf("guide: shadow_size must be >= 0, got %v", a.ShadowSize)
	}
	return nil
}
