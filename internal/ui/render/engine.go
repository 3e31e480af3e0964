// Package render draws ui boxes with raylib and turns mouse clicks into overlay actions.
package render

import (
	"image/color"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"hark-back/internal/ui"
)

// Engine lays out overlay nodes with a Styler and draws them. The boxes from the last Draw are
// kept for hit testing, so Click answers for what is on screen.
// If a font is loaded (LoadFont), text is drawn with it; otherwise raylib's default font is used.
type Engine struct {
	styler *ui.Styler
	boxes  []ui.Box
	font   rl.Font
}

// New creates an engine over sheet.
func New(sheet *ui.Stylesheet) *Engine {
	return &Engine{styler: ui.NewStyler(sheet)}
}

// Styler exposes the style resolver (hot-swapping the stylesheet).
func (e *Engine) Styler() *ui.Styler {
	return e.styler
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font (zero texture ID when none).
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload frees the font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

func rlColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func (e *Engine) measure(text string, size int32) float32 {
	if e.font.Texture.ID != 0 {
		return rl.MeasureTextEx(e.font, text, float32(size), 1).X
	}
	return float32(rl.MeasureText(text, size))
}

func (e *Engine) text(text string, x, y float32, size int32, c rl.Color) {
	if e.font.Texture.ID != 0 {
		rl.DrawTextEx(e.font, text, rl.NewVector2(x, y), float32(size), 1, c)
		return
	}
	rl.DrawText(text, int32(x), int32(y), size, c)
}

// Draw lays out nodes for the current screen and draws background, border and text of each in order.
func (e *Engine) Draw(nodes []*ui.Node) {
	screenW := float32(rl.GetScreenWidth())
	screenH := float32(rl.GetScreenHeight())
	e.boxes = e.styler.Layout(nodes, screenW, screenH)

	for _, b := range e.boxes {
		st, r := b.Style, b.Rect
		x, y, w, h := int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height)

		bg := st.Background
		if b.Node.Fill != nil {
			bg = *b.Node.Fill
		}
		if bg.A > 0 && w > 0 && h > 0 {
			rl.DrawRectangle(x, y, w, h, rlColor(bg))
		}
		if st.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, rlColor(st.Border))
		}
		if b.Node.Text == "" {
			continue
		}
		tx := r.X + float32(st.Padding)
		if st.Center && w > 0 {
			tx = r.X + (r.Width-e.measure(b.Node.Text, st.FontSize))/2
		}
		e.text(b.Node.Text, tx, r.Y+float32(st.Padding), st.FontSize, rlColor(st.Color))
	}
}

// Click returns the action for a left click this frame, or ActionNone.
func (e *Engine) Click() ui.Action {
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return ui.ActionNone
	}
	pos := rl.GetMousePosition()
	return ui.HitTest(e.boxes, pos.X, pos.Y)
}
