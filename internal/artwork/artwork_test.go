package artwork

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hark-back/internal/world"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#e94560")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xe9, G: 0x45, B: 0x60, A: 255}, c)

	c, err = ParseHex("#fff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, c)

	for _, bad := range []string{"", "e94560", "#12", "#zzzzzz"} {
		_, err := ParseHex(bad)
		assert.Error(t, err, bad)
	}
}

func luminance(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return r + g + b
}

func TestRenderGradient(t *testing.T) {
	e := world.Exhibit{Color: "#000000", AccentColor: "#ffffff"}
	img, err := Render(e, 64, 48)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())

	top := luminance(img.At(32, 2))
	bottom := luminance(img.At(32, 45))
	assert.Less(t, top, bottom, "gradient runs from Color to AccentColor")
}

func TestRenderDefaultExhibits(t *testing.T) {
	for _, e := range world.DefaultExhibits() {
		_, err := Render(e, DefaultWidth, DefaultHeight)
		assert.NoError(t, err, e.ID)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render(world.Exhibit{Color: "#000", AccentColor: "#fff"}, 0, 10)
	assert.Error(t, err)
	_, err = Render(world.Exhibit{Color: "black", AccentColor: "#fff"}, 10, 10)
	assert.Error(t, err)
}

func TestHighlightBrightens(t *testing.T) {
	img, err := Render(world.Exhibit{Color: "#404040", AccentColor: "#404040"}, 16, 16)
	require.NoError(t, err)
	hi := Highlight(img)
	assert.Greater(t, luminance(hi.At(8, 8)), luminance(img.At(8, 8)))
}
