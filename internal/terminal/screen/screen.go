// Package screen polls raylib for the terminal's keys and draws the chat bar.
package screen

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"hark-back/internal/logger"
	"hark-back/internal/terminal"
)

const (
	BarHeight = 40
	// When windowed, move bar up by this many pixels so it stays visible.
	WindowedBarOffset = 16
	prompt            = "> "
	fontSize          = 20
	padding           = 8
	// Number of chat/log lines drawn above the input bar when the terminal is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineRunes     = 160
)

var (
	// Reused every frame to avoid per-frame color allocations.
	barColor    = rl.NewColor(40, 40, 40, 255)
	lineColor   = rl.NewColor(80, 80, 80, 255)
	chatBgColor = rl.NewColor(24, 24, 24, 230)
	hintColor   = rl.NewColor(233, 69, 96, 255)
)

// Screen connects a Terminal to the raylib window.
type Screen struct {
	term *terminal.Terminal
	log  *logger.Logger
	font rl.Font
}

// New returns a screen for term that draws the transcript from log.
func New(term *terminal.Terminal, log *logger.Logger) *Screen {
	return &Screen{term: term, log: log}
}

// SetFont sets the font used to draw the bar. Zero texture ID = use raylib default.
func (s *Screen) SetFont(font rl.Font) {
	s.font = font
}

// Update handles the backquote toggle and, when open, typing, paste, backspace and enter.
// Call once per frame before the gallery polls its keys.
func (s *Screen) Update() {
	if rl.IsKeyPressed(rl.KeyGrave) {
		s.term.Toggle()
		// Drain the backquote so it is not typed into the bar.
		for rl.GetCharPressed() != 0 {
		}
		return
	}
	if !s.term.IsOpen() {
		return
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		s.term.Type(rl.GetClipboardText())
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			s.term.Type(string(rune(c)))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		s.term.Backspace()
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		s.term.Submit()
	}
}

func (s *Screen) text(text string, x, y int32, c rl.Color) {
	if s.font.Texture.ID != 0 {
		rl.DrawTextEx(s.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
}

func clip(line string) string {
	r := []rune(line)
	if len(r) > maxLineRunes {
		return string(r[:maxLineRunes-3]) + "..."
	}
	return line
}

// Draw draws the bar at the bottom when open, with the recent transcript above it.
func (s *Screen) Draw() {
	if !s.term.IsOpen() {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	barY := screenH - BarHeight
	if !rl.IsWindowFullscreen() {
		barY -= WindowedBarOffset
	}

	chatHeight := int32(maxLinesOnScreen * lineHeight)
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, chatY, screenW, chatHeight, chatBgColor)
	}
	lines := s.log.Lines()
	start := 0
	if len(lines) > maxLinesOnScreen {
		start = len(lines) - maxLinesOnScreen
	}
	for i := start; i < len(lines); i++ {
		y := chatY + int32(i-start)*lineHeight + padding
		s.text(clip(lines[i]), padding, y, rl.LightGray)
	}

	rl.DrawRectangle(0, barY, screenW, BarHeight, barColor)
	rl.DrawRectangle(0, barY, screenW, 1, lineColor)
	s.text(prompt+s.term.Input()+"|", padding, barY+padding, rl.White)
	if s.term.Waiting() {
		const hint = "guide is thinking..."
		w := rl.MeasureText(hint, fontSize)
		rl.DrawText(hint, screenW-w-padding, barY+padding, fontSize, hintColor)
	}
}
