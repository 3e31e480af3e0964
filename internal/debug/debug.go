package debug

import (
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"hark-back/internal/motion"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the runtime overlays (FPS, heap, character pose). All are off by default.
// The toggles are atomic because terminal commands may flip them from the guide's goroutine.
type Debug struct {
	showFPS      atomic.Bool
	showMemAlloc atomic.Bool
	showPose     atomic.Bool

	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) { d.showFPS.Store(show) }

// SetShowMemAlloc sets whether the heap counter is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) { d.showMemAlloc.Store(show) }

// SetShowPose sets whether the character position and heading are drawn.
func (d *Debug) SetShowPose(show bool) { d.showPose.Store(show) }

// Overlays reports which overlays are on.
func (d *Debug) Overlays() (fps, mem, pose bool) {
	return d.showFPS.Load(), d.showMemAlloc.Load(), d.showPose.Load()
}

// SetFont sets the font used to draw the overlays. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.font = font
}

// PoseText formats a pose for the overlay: position to two decimals and heading in degrees.
func PoseText(p motion.Pose) string {
	deg := float64(p.Heading) * 180 / math.Pi
	return fmt.Sprintf("Pos: %.2f, %.2f, %.2f  Heading: %.0f°", p.Position[0], p.Position[1], p.Position[2], deg)
}

func (d *Debug) drawRight(text string, y int32, screenW int32) {
	if d.font.Texture.ID != 0 {
		sz := float32(fpsFontSize)
		pos := rl.NewVector2(float32(screenW)-rl.MeasureTextEx(d.font, text, sz, 1).X-float32(fpsPadding), float32(y))
		rl.DrawTextEx(d.font, text, pos, sz, 1, rl.Green)
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}

// Draw renders any enabled overlays at the top-right. Call last in the draw loop.
// FPS and memory text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw(pose motion.Pose) {
	showFPS, showMem, showPose := d.Overlays()
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if showFPS && d.lastFpsText == "" {
		update = true
	}
	if showMem && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)

	if showFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, y, screenW)
		y += fpsLineHeight
	}
	if showMem {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, y, screenW)
		y += fpsLineHeight
	}
	if showPose {
		d.drawRight(PoseText(pose), y, screenW)
	}
}
