package motion

import (
	"github.com/chewxy/math32"

	"hark-back/internal/input"
	"hark-back/internal/world"
)

// Pose is the character's position and heading (radians about +Y). Heading is never wrapped.
type Pose struct {
	Position [3]float32
	Heading  float32
}

// Params holds the movement tuning. Speeds are per reference frame: at ReferenceFPS the
// character moves MoveSpeed units and turns RotateSpeed radians each frame.
// When FrameRateIndependent is false, every Step is treated as exactly one reference frame
// regardless of dt, which reproduces the frame-locked feel the constants were tuned for.
type Params struct {
	MoveSpeed            float32 `mapstructure:"move_speed"`
	RotateSpeed          float32 `mapstructure:"rotate_speed"`
	ReferenceFPS         float32 `mapstructure:"reference_fps"`
	FrameRateIndependent bool    `mapstructure:"frame_rate_independent"`
}

// DefaultParams returns the tuned walk: 0.06 units and 0.035 rad per frame at 60 FPS, frame-locked.
func DefaultParams() Params {
	return Params{
		MoveSpeed:    0.06,
		RotateSpeed:  0.035,
		ReferenceFPS: 60,
	}
}

// Facing returns the unit forward vector for heading: (0,0,-1) rotated about +Y.
func Facing(heading float32) [3]float32 {
	s, c := math32.Sincos(heading)
	return [3]float32{-s, 0, -c}
}

// Integrator advances a pose from held keys and clamps it to the room.
type Integrator struct {
	Params Params
	Room   world.Room
}

// NewIntegrator returns an integrator for the given tuning and room bounds.
func NewIntegrator(p Params, room world.Room) *Integrator {
	return &Integrator{Params: p, Room: room}
}

func (it *Integrator) scale(dt float32) float32 {
	if !it.Params.FrameRateIndependent || it.Params.ReferenceFPS <= 0 {
		return 1
	}
	return dt * it.Params.ReferenceFPS
}

// Step applies one frame: rotate, then translate along the new facing, then clamp.
// Left and right (and forward and backward) are not mutually exclusive; held together they cancel.
func (it *Integrator) Step(p Pose, in input.State, dt float32) Pose {
	k := it.scale(dt)
	if in.Left {
		p.Heading += it.Params.RotateSpeed * k
	}
	if in.Right {
		p.Heading -= it.Params.RotateSpeed * k
	}

	dir := Facing(p.Heading)
	step := it.Params.MoveSpeed * k
	if in.Forward {
		p.Position[0] += dir[0] * step
		p.Position[2] += dir[2] * step
	}
	if in.Backward {
		p.Position[0] -= dir[0] * step
		p.Position[2] -= dir[2] * step
	}

	p.Position = it.Room.Clamp(p.Position)
	return p
}
