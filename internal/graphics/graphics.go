// Package graphics owns the raylib window, the frame loop and keyboard polling.
package graphics

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"hark-back/internal/config"
	"hark-back/internal/input"
)

var background = rl.NewColor(20, 20, 28, 255)

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// with the frame time in seconds, then clears the screen and calls draw. unload, if set, runs
// after the last frame while the GL context is still alive.
// ESC is handled by the gallery, so the window closes only through the close button.
func Run(cfg config.WindowConfig, update func(dt float32), draw func(), unload func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	width, height := int32(cfg.Width), int32(cfg.Height)
	if cfg.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, cfg.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background)
		draw()
		rl.EndDrawing()
	}
	if unload != nil {
		unload()
	}
}

// polledKeys are the raylib key codes the gallery listens to.
var polledKeys = []input.Key{
	input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight,
	input.KeyW, input.KeyA, input.KeyS, input.KeyD,
	input.KeyEscape, input.KeyEnter, input.KeyKpEnter,
}

// KeySource polls raylib once per frame and dispatches press/release transitions to its
// listeners. Polling is suspended while another surface (the terminal) owns the keyboard.
type KeySource struct {
	input.Dispatcher
	suspended atomic.Bool
}

// NewKeySource returns a source polling the gallery keys.
func NewKeySource() *KeySource {
	return &KeySource{}
}

// Suspend stops delivering key events until Resume.
func (k *KeySource) Suspend() {
	k.suspended.Store(true)
}

// Resume restarts delivery.
func (k *KeySource) Resume() {
	k.suspended.Store(false)
}

// Poll delivers this frame's transitions. Call once per frame on the window thread.
func (k *KeySource) Poll() {
	if k.suspended.Load() {
		return
	}
	for _, key := range polledKeys {
		if rl.IsKeyPressed(int32(key)) {
			k.KeyDown(key)
		}
		if rl.IsKeyReleased(int32(key)) {
			k.KeyUp(key)
		}
	}
}
