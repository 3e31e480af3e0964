package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hark-back/internal/input"
	"hark-back/internal/interaction"
	"hark-back/internal/world"
)

const dt = float32(1.0 / 60)

func newController(t *testing.T) (*Controller, *input.Dispatcher) {
	t.Helper()
	c := New(DefaultConfig(), world.Default(), zaptest.NewLogger(t))
	d := &input.Dispatcher{}
	release := c.Mount(d)
	t.Cleanup(release)
	return c, d
}

// walkToEntranceExhibit turns a quarter left from spawn and walks to the left wall,
// ending beside the exhibit hung at z=10.
func walkToEntranceExhibit(c *Controller, d *input.Dispatcher) {
	d.KeyDown(input.KeyA)
	for i := 0; i < 45; i++ { // 45 * 0.035 ≈ pi/2
		c.Frame(dt)
	}
	d.KeyUp(input.KeyA)
	d.KeyDown(input.KeyW)
	for i := 0; i < 100; i++ {
		c.Frame(dt)
	}
	d.KeyUp(input.KeyW)
}

func TestSpawnState(t *testing.T) {
	c, _ := newController(t)
	s := c.Snapshot()
	assert.Equal(t, [3]float32{0, 0, 10}, s.Pose.Position)
	assert.Equal(t, interaction.Exploring, s.Mode)
	assert.False(t, s.Nearby.Ok())
	assert.Nil(t, s.Detail)
}

func TestNoKeysNoMovement(t *testing.T) {
	c, _ := newController(t)
	before := c.Pose()
	for i := 0; i < 120; i++ {
		c.Frame(dt)
	}
	assert.Equal(t, before, c.Pose())
}

func TestSpawnIsNearNothingUntilWalking(t *testing.T) {
	c, d := newController(t)
	c.Frame(dt)
	assert.False(t, c.Nearby().Ok())

	// From (0,0,10), the left-wall exhibit at z=10 is 3.85 away: out of range.
	walkToEntranceExhibit(c, d)

	n := c.Nearby()
	require.True(t, n.Ok())
	assert.Equal(t, 3, n.Index)
	assert.Equal(t, "project-gamma", n.Exhibit.ID)
}

func TestEnterWithNothingNearbyStaysExploring(t *testing.T) {
	c, d := newController(t)
	c.Frame(dt)
	d.KeyDown(input.KeyEnter)
	assert.Equal(t, interaction.Exploring, c.Mode())
}

func TestEscapeTogglesMenuAndFreezesMovement(t *testing.T) {
	c, d := newController(t)
	d.KeyDown(input.KeyEscape)
	require.Equal(t, interaction.MenuOpen, c.Mode())

	frozen := c.Pose()
	frozenCam := c.Camera()
	d.KeyDown(input.KeyW)
	for i := 0; i < 60; i++ {
		c.Frame(dt)
	}
	assert.Equal(t, frozen, c.Pose(), "menu suppresses movement")
	assert.Equal(t, frozenCam, c.Camera(), "menu suppresses camera follow")

	d.KeyDown(input.KeyEscape)
	require.Equal(t, interaction.Exploring, c.Mode())
	c.Frame(dt)
	moved := c.Pose()
	assert.InDelta(t, frozen.Position[2]-0.06, moved.Position[2], 1e-5, "resumes from the frozen pose")
}

func TestReturningFromDetailKeepsNearby(t *testing.T) {
	c, d := newController(t)
	walkToEntranceExhibit(c, d)
	before := c.Nearby()
	require.True(t, before.Ok())

	d.KeyDown(input.KeyEnter)
	require.Equal(t, interaction.DetailOpen, c.Mode())
	detail, ok := c.Detail()
	require.True(t, ok)
	assert.Equal(t, before.Exhibit.ID, detail.ID)

	c.Frame(dt)
	d.KeyDown(input.KeyEscape)
	require.Equal(t, interaction.Exploring, c.Mode())
	assert.Equal(t, before.Index, c.Nearby().Index)

	c.Frame(dt)
	after := c.Nearby()
	assert.Equal(t, before.Index, after.Index, "no spurious none after closing the panel")
	assert.Equal(t, before.Exhibit.ID, after.Exhibit.ID)
}

func TestWalkDownTheHallReportsLeftWallInOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Room.Spawn = [3]float32{-3.2, 0, 13}
	c := New(cfg, world.Default(), zaptest.NewLogger(t))
	d := &input.Dispatcher{}
	t.Cleanup(c.Mount(d))

	var seen []int
	last := -1
	d.KeyDown(input.KeyUp)
	for i := 0; i < 500; i++ {
		c.Frame(dt)
		if n := c.Nearby(); n.Index != last {
			last = n.Index
			if n.Index >= 0 {
				seen = append(seen, n.Index)
			}
		}
	}
	// At x=-3.2 the left wall (x=-3.85) is 0.65 away; the right wall never qualifies.
	assert.Equal(t, []int{3, 2, 1, 0}, seen)
}

func TestPointerPaths(t *testing.T) {
	c, d := newController(t)
	c.ToggleMenu()
	assert.Equal(t, interaction.MenuOpen, c.Mode())
	d.KeyDown(input.KeyEscape)
	assert.Equal(t, interaction.Exploring, c.Mode(), "keyboard closes a menu opened by pointer")
	d.KeyDown(input.KeyEscape)
	c.CloseMenu()
	assert.Equal(t, interaction.Exploring, c.Mode())
	c.CloseDetail()
	assert.Equal(t, interaction.Exploring, c.Mode())
}

func TestReleaseUnmountsKeys(t *testing.T) {
	c := New(DefaultConfig(), world.Default(), nil)
	d := &input.Dispatcher{}
	release := c.Mount(d)
	d.KeyDown(input.KeyW)
	release()
	assert.Equal(t, 0, d.Listeners())
	before := c.Pose()
	c.Frame(dt)
	assert.Equal(t, before, c.Pose())
}
