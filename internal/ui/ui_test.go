package ui

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hark-back/internal/gallery"
	"hark-back/internal/interaction"
	"hark-back/internal/proximity"
	"hark-back/internal/world"
)

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(`
/* comment */
.a, #b { color: #fff; border: 1px solid #333; }
@media (max-width: 100px) { .a { color: #000; } }
.a .nested { color: #123; }
.pad { padding: 6px !important; background: rgba(0, 0, 0, 0.5); }
`)
	require.NoError(t, err)

	var sels []string
	for _, r := range sheet.Rules {
		sels = append(sels, r.Selector)
	}
	assert.Equal(t, []string{".a", "#b", ".pad"}, sels)
	assert.Equal(t, "#fff", sheet.Rules[0].Props["color"])
	assert.Equal(t, "1px solid #333", sheet.Rules[1].Props["border"])
	assert.Equal(t, "6px", sheet.Rules[2].Props["padding"])
	assert.Equal(t, "rgba(0,0,0,0.5)", strings.ReplaceAll(sheet.Rules[2].Props["background"], " ", ""))
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"#fff":                  {R: 255, G: 255, B: 255, A: 255},
		"#e94560":               {R: 0xe9, G: 0x45, B: 0x60, A: 255},
		"#00000080":             {A: 0x80},
		"rgba(10, 20, 30, 0.5)": {R: 10, G: 20, B: 30, A: 128},
	}
	for in, want := range cases {
		got, ok := ParseColor(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "red", "#12", "rgba(1,2,3)", "rgba(300,0,0,1)"} {
		_, ok := ParseColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestResolveProps(t *testing.T) {
	st := ResolveProps(map[string]string{
		"width":      "50%",
		"height":     "40px",
		"left":       "10",
		"top":        "-12px",
		"font-size":  "18px",
		"text-align": "center",
		"border":     "2px solid #ff0000",
	})
	assert.Equal(t, int32(50), st.WidthPct)
	assert.Equal(t, int32(40), st.Height)
	assert.Equal(t, int32(10), st.Left)
	assert.Equal(t, int32(-12), st.Top)
	assert.Equal(t, int32(18), st.FontSize)
	assert.True(t, st.Center)
	assert.True(t, st.HasBorder)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, st.Border)
}

func TestDefaultStylesheet(t *testing.T) {
	s := NewStyler(DefaultStylesheet())

	key := NewNode("label", "hud-key-active", "hud-enter-key", "ENTER")
	st := s.Style(key)
	assert.Equal(t, int32(420), st.Left, "id rule positions the key")
	assert.Equal(t, int32(30), st.Top, "grouped rule applies to the active key")
	assert.Equal(t, color.RGBA{R: 0xe9, G: 0x45, B: 0x60, A: 255}, st.Background)
}

func TestLoadStylesheetFallsBack(t *testing.T) {
	sheet, err := LoadStylesheet("")
	require.NoError(t, err)
	assert.NotEmpty(t, sheet.Rules)

	sheet, err = LoadStylesheet(t.TempDir() + "/missing.css")
	require.NoError(t, err)
	assert.NotEmpty(t, sheet.Rules)
}

func TestLayoutNestsAndCenters(t *testing.T) {
	sheet, err := ParseCSS(`
.outer { left: 50%; top: 50%; width: 200px; height: 100px; }
.inner { left: 100%; top: 10px; width: 20px; height: 20px; }
`)
	require.NoError(t, err)
	outer := NewNode("panel", "outer", "", "")
	inner := outer.Child("panel", "inner", "")
	inner.Offset = [2]float32{0, 5}

	boxes := NewStyler(sheet).Layout([]*Node{outer, inner}, 800, 600)
	require.Len(t, boxes, 2)
	assert.Equal(t, Rect{X: 300, Y: 250, Width: 200, Height: 100}, boxes[0].Rect)
	assert.Equal(t, Rect{X: 480, Y: 265, Width: 20, Height: 20}, boxes[1].Rect)
}

func TestHitTestTopmostWins(t *testing.T) {
	back := &Node{Action: ActionCloseDetail}
	panel := &Node{Action: ActionSwallow}
	label := &Node{}
	boxes := []Box{
		{Node: back, Rect: Rect{Width: 100, Height: 100}},
		{Node: panel, Rect: Rect{X: 25, Y: 25, Width: 50, Height: 50}},
		{Node: label, Rect: Rect{X: 30, Y: 30, Width: 10, Height: 10}},
	}
	assert.Equal(t, ActionCloseDetail, HitTest(boxes, 5, 5))
	assert.Equal(t, ActionNone, HitTest(boxes, 35, 35), "panel swallows; label is not clickable")
	assert.Equal(t, ActionNone, HitTest(boxes, 200, 200))
}

func nodeTexts(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		if n.Text != "" {
			out = append(out, n.Text)
		}
	}
	return out
}

func TestOverlayExploring(t *testing.T) {
	o := NewOverlay()
	nodes := o.Nodes(gallery.Snapshot{Mode: interaction.Exploring, Nearby: proximity.None()})
	texts := nodeTexts(nodes)
	assert.Contains(t, texts, "MENU")
	assert.Contains(t, texts, "ENTER")
	assert.NotContains(t, texts, "Resume Exploring")
	assert.Equal(t, "hud-key", o.enterKey.Class)

	boxes := NewStyler(DefaultStylesheet()).Layout(nodes, 1280, 720)
	assert.Equal(t, ActionToggleMenu, HitTest(boxes, 50, 30))
	assert.Equal(t, ActionNone, HitTest(boxes, 640, 300))
}

func TestOverlayNearbyHint(t *testing.T) {
	exhibits := world.DefaultExhibits()
	o := NewOverlay()
	nodes := o.Nodes(gallery.Snapshot{
		Mode:   interaction.Exploring,
		Nearby: proximity.NearbyState{Index: 0, Exhibit: &exhibits[0]},
	})
	assert.Contains(t, nodeTexts(nodes), exhibits[0].Title)
	assert.Equal(t, "hud-key-active", o.enterKey.Class)
}

func TestOverlayMenu(t *testing.T) {
	o := NewOverlay()
	nodes := o.Nodes(gallery.Snapshot{Mode: interaction.MenuOpen, Nearby: proximity.None()})
	assert.Contains(t, nodeTexts(nodes), "Resume Exploring")

	boxes := NewStyler(DefaultStylesheet()).Layout(nodes, 1280, 720)
	assert.Equal(t, ActionCloseMenu, HitTest(boxes, 600, 320), "resume button")
	assert.Equal(t, ActionCloseMenu, HitTest(boxes, 640, 515), "close button")
	assert.Equal(t, ActionNone, HitTest(boxes, 400, 170), "panel body")
	assert.Equal(t, ActionNone, HitTest(boxes, 50, 30), "menu button is under the backdrop")
}

func TestOverlayDetail(t *testing.T) {
	e := world.DefaultExhibits()[1]
	e.Description = strings.Repeat("word ", 200)
	e.Tech = []string{"Go", "SQLite"}
	e.GitHub = "github.com/example/repo"
	e.URL = ""

	o := NewOverlay()
	nodes := o.Nodes(gallery.Snapshot{Mode: interaction.DetailOpen, Nearby: proximity.None(), Detail: &e})
	texts := nodeTexts(nodes)
	assert.Contains(t, texts, e.Title)
	assert.Contains(t, texts, "Go · SQLite")
	assert.Contains(t, texts, "GitHub → github.com/example/repo")
	for _, s := range texts {
		assert.NotContains(t, s, "Live Demo")
	}

	desc := 0
	for _, n := range nodes {
		if n.Class == "detail-description" {
			desc++
			assert.LessOrEqual(t, len([]rune(n.Text)), descWrap+3)
		}
	}
	assert.Equal(t, maxDescLines, desc)
	require.NotNil(t, o.swatch.Fill)

	boxes := NewStyler(DefaultStylesheet()).Layout(nodes, 1280, 720)
	assert.Equal(t, ActionCloseDetail, HitTest(boxes, 5, 5), "backdrop")
	assert.Equal(t, ActionNone, HitTest(boxes, 600, 400), "panel body")
	assert.Equal(t, ActionCloseDetail, HitTest(boxes, 930, 90), "close button")
}

func TestOverlayDetailWithoutExhibit(t *testing.T) {
	o := NewOverlay()
	nodes := o.Nodes(gallery.Snapshot{Mode: interaction.DetailOpen, Nearby: proximity.None()})
	assert.NotContains(t, nodeTexts(nodes), "X")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, Wrap("one two three", 8))
	assert.Equal(t, []string{"a", "verylongword", "b"}, Wrap("a verylongword b", 4))
	assert.Nil(t, Wrap("   ", 10))
}
