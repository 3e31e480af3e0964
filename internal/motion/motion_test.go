package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hark-back/internal/input"
	"hark-back/internal/world"
)

const frame = float32(1.0 / 60)

func newIntegrator() *Integrator {
	return NewIntegrator(DefaultParams(), world.DefaultRoom())
}

func TestIdleFramesDoNotMovePose(t *testing.T) {
	it := newIntegrator()
	start := Pose{Position: [3]float32{1, 0, 2}, Heading: 0.7}
	p := start
	for i := 0; i < 500; i++ {
		p = it.Step(p, input.State{}, frame)
	}
	assert.Equal(t, start, p)
}

func TestForwardMovesAlongFacing(t *testing.T) {
	it := newIntegrator()
	p := Pose{Position: [3]float32{0, 0, 10}}
	const n = 50
	for i := 0; i < n; i++ {
		p = it.Step(p, input.State{Forward: true}, frame)
	}
	// Heading 0 faces -Z.
	assert.InDelta(t, 0, p.Position[0], 1e-5)
	assert.InDelta(t, 10-n*0.06, p.Position[2], 1e-4)
}

func TestForwardClampsAtHalfWidth(t *testing.T) {
	it := newIntegrator()
	// Heading -pi/2 turns the -Z forward vector toward +X.
	p := Pose{Heading: -math.Pi / 2}
	require.InDelta(t, 1, Facing(p.Heading)[0], 1e-6)

	for i := 0; i < 200; i++ {
		p = it.Step(p, input.State{Forward: true}, frame)
		require.LessOrEqual(t, p.Position[0], float32(3.2))
	}
	assert.Equal(t, float32(3.2), p.Position[0])
}

func TestZClampedToRoom(t *testing.T) {
	it := newIntegrator()
	p := Pose{Position: [3]float32{0, 0, 12.9}}
	for i := 0; i < 100; i++ {
		p = it.Step(p, input.State{Backward: true}, frame)
	}
	assert.Equal(t, float32(13), p.Position[2])

	for i := 0; i < 1000; i++ {
		p = it.Step(p, input.State{Forward: true}, frame)
	}
	assert.Equal(t, float32(-13), p.Position[2])
}

func TestLeftAndRightCancel(t *testing.T) {
	it := newIntegrator()
	p := Pose{Heading: 0.25}
	for i := 0; i < 100; i++ {
		p = it.Step(p, input.State{Left: true, Right: true}, frame)
	}
	assert.InDelta(t, 0.25, p.Heading, 1e-5)
}

func TestForwardAndBackwardCancel(t *testing.T) {
	it := newIntegrator()
	start := Pose{Position: [3]float32{0.5, 0, 1}}
	p := it.Step(start, input.State{Forward: true, Backward: true}, frame)
	assert.InDelta(t, start.Position[0], p.Position[0], 1e-6)
	assert.InDelta(t, start.Position[2], p.Position[2], 1e-6)
}

func TestRotationAppliesBeforeTranslation(t *testing.T) {
	it := newIntegrator()
	p := it.Step(Pose{}, input.State{Left: true, Forward: true}, frame)
	assert.InDelta(t, 0.035, p.Heading, 1e-7)
	dir := Facing(0.035)
	assert.InDelta(t, dir[0]*0.06, p.Position[0], 1e-7)
	assert.InDelta(t, dir[2]*0.06, p.Position[2], 1e-7)
}

func TestHeadingIsUnbounded(t *testing.T) {
	it := newIntegrator()
	p := Pose{}
	for i := 0; i < 1000; i++ {
		p = it.Step(p, input.State{Left: true}, frame)
	}
	assert.Greater(t, p.Heading, float32(2*math.Pi))
}

func TestFrameLockedIgnoresDt(t *testing.T) {
	it := newIntegrator()
	a := it.Step(Pose{}, input.State{Forward: true}, 1.0/30)
	b := it.Step(Pose{}, input.State{Forward: true}, 1.0/144)
	assert.Equal(t, a, b)
}

func TestFrameRateIndependentScalesByDt(t *testing.T) {
	params := DefaultParams()
	params.FrameRateIndependent = true
	it := NewIntegrator(params, world.DefaultRoom())

	p30 := it.Step(Pose{}, input.State{Forward: true}, 1.0/30)
	p60 := Pose{}
	for i := 0; i < 2; i++ {
		p60 = it.Step(p60, input.State{Forward: true}, 1.0/60)
	}
	assert.InDelta(t, p60.Position[2], p30.Position[2], 1e-5)
	assert.InDelta(t, -0.12, p30.Position[2], 1e-5)
}

func TestFollowerSmoothsTowardDesired(t *testing.T) {
	f := NewFollower()
	p := Pose{Position: [3]float32{0, 0, 10}}
	cam := f.Snap(p)
	assert.Equal(t, [3]float32{0, 2.5, 14}, cam.Position)
	assert.InDelta(t, 1.5, cam.Target[1], 1e-6)

	moved := Pose{Position: [3]float32{0, 0, 9}}
	cam = f.Follow(moved)
	// 8% of the remaining 1 unit.
	assert.InDelta(t, 14-0.08, cam.Position[2], 1e-5)

	for i := 0; i < 400; i++ {
		cam = f.Follow(moved)
	}
	assert.InDelta(t, 13, cam.Position[2], 1e-3)
}

func TestFollowerOffsetRotatesWithHeading(t *testing.T) {
	f := NewFollower()
	// Facing +X: the camera sits behind, on -X.
	p := Pose{Heading: -math.Pi / 2}
	want := f.Desired(p)
	assert.InDelta(t, -4, want[0], 1e-5)
	assert.InDelta(t, 2.5, want[1], 1e-6)
	assert.InDelta(t, 0, want[2], 1e-5)
}
