package artwork

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"

	"hark-back/internal/world"
)

const (
	// DefaultWidth and DefaultHeight are the canvas texture size; frames are 4:3.
	DefaultWidth  = 256
	DefaultHeight = 192

	softenRadius    = 3
	highlightAmount = 0.25
)

// ParseHex parses #RGB or #RRGGBB.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("artwork: color %q: missing #", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("artwork: color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("artwork: color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("artwork: color %q: want 3 or 6 hex digits", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// Render paints the canvas for e: a vertical gradient from Color to AccentColor with an
// accent band across the lower third, softened with a Gaussian blur.
func Render(e world.Exhibit, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("artwork: invalid size %dx%d", w, h)
	}
	base, err := ParseHex(e.Color)
	if err != nil {
		return nil, err
	}
	accent, err := ParseHex(e.AccentColor)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bandTop, bandBottom := h*2/3, h*2/3+h/10
	for y := 0; y < h; y++ {
		c := mix(base, accent, float64(y)/float64(max(h-1, 1)))
		if y >= bandTop && y < bandBottom {
			c = accent
		}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return blur.Gaussian(img, softenRadius), nil
}

// Highlight brightens a canvas for the "you are standing here" state.
func Highlight(img image.Image) image.Image {
	return adjust.Brightness(img, highlightAmount)
}
