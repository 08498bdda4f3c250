package guide

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// titleSpacing is the gap between the title and the message.
const titleSpacing = 2.0

// contentLayout is callout content broken into lines.
type contentLayout struct {
	titleLines   []string
	messageLines []string
	titleLH      float64
	messageLH    float64
	size         Size
}

// layoutContent wraps title and message to maxWidth. The measure functions
// return the advance width of a single line.
func layoutContent(c Content, maxWidth float64,
	measureTitle func(string) float64, titleLH float64,
	measureMessage func(string) float64, messageLH float64,
) contentLayout {
	l := contentLayout{titleLH: titleLH, messageLH: messageLH}
	var w float64
	if c.Title != "" {
		l.titleLines = wrapText(c.Title, maxWidth, measureTitle)
		for _, line := range l.titleLines {
			w = math.Max(w, measureTitle(line))
		}
		l.size.Height += float64(len(l.titleLines)) * titleLH
	}
	if c.Message != "" {
		l.messageLines = wrapText(c.Message, maxWidth, measureMessage)
		for _, line := range l.messageLines {
			w = math.Max(w, measureMessage(line))
		}
		if c.Title != "" {
			l.size.Height += titleSpacing
		}
		l.size.Height += float64(len(l.messageLines)) * messageLH
	}
	l.size.Width = math.Min(w, maxWidth)
	return l
}

// wrapText breaks s into lines no wider than maxWidth, splitting on spaces.
// Explicit newlines start new lines. A single word wider than maxWidth gets a
// line of its own rather than being broken.
func wrapText(s string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			candidate := cur + " " + word
			if measure(candidate) <= maxWidth {
				cur = candidate
				continue
			}
			lines = append(lines, cur)
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// EstimateMeasurer measures content with fixed per-character advances. It is
// the default for headless use where no fonts are loaded. Zero fields fall
// back to defaults sized like the overlay's Go fonts.
type EstimateMeasurer struct {
	TitleCharWidth    float64
	TitleLineHeight   float64
	MessageCharWidth  float64
	MessageLineHeight float64
}

// MeasureContent implements Measurer.
func (m EstimateMeasurer) MeasureContent(c Content, maxWidth float64) Size {
	tcw := orDefault(m.TitleCharWidth, 10)
	tlh := orDefault(m.TitleLineHeight, 24)
	mcw := orDefault(m.MessageCharWidth, 8)
	mlh := orDefault(m.MessageLineHeight, 20)
	perChar := func(cw float64) func(string) float64 {
		return func(s string) float64 { return float64(utf8.RuneCountInString(s)) * cw }
	}
	return layoutContent(c, maxWidth, perChar(tcw), tlh, perChar(mcw), mlh).size
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// --- Fonts ---

// Fonts holds the faces used to render callout text.
type Fonts struct {
	Title   *text.GoTextFace
	Message *text.GoTextFace
}

// DefaultFonts loads the bundled Go fonts: bold for titles, regular for
// messages.
func DefaultFonts() (Fonts, error) {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return Fonts{}, fmt.Errorf("guide: parse title font: %w", err)
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return Fonts{}, fmt.Errorf("guide: parse message font: %w", err)
	}
	return Fonts{
		Title:   &text.GoTextFace{Source: bold, Size: 20},
		Message: &text.GoTextFace{Source: regular, Size: 16},
	}, nil
}

// MeasureContent implements Measurer with real font metrics.
func (f Fonts) MeasureContent(c Content, maxWidth float64) Size {
	return f.layout(c, maxWidth).size
}

func (f Fonts) layout(c Content, maxWidth float64) contentLayout {
	return layoutContent(c, maxWidth,
		advanceFunc(f.Title), faceLineHeight(f.Title),
		advanceFunc(f.Message), faceLineHeight(f.Message))
}

func advanceFunc(face *text.GoTextFace) func(string) float64 {
	return func(s string) float64 { return text.Advance(s, face) }
}

// faceLineHeight returns the vertical distance between baselines.
func faceLineHeight(face *text.GoTextFace) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
