package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hark-back/internal/world"
)

func TestNearestPlanarIgnoresHeight(t *testing.T) {
	pts := world.Default().Points()
	// Exhibit 0 hangs at y=2.2; the character walks at y=0.
	assert.Equal(t, 0, Nearest([3]float32{-3.85, 0, -8}, pts, DefaultThreshold))
	assert.Equal(t, 0, Nearest([3]float32{-3.85, 100, -8}, pts, DefaultThreshold))
}

func TestNearestOutsideThreshold(t *testing.T) {
	pts := world.Default().Points()
	assert.Equal(t, -1, Nearest([3]float32{0, 0, 12.9}, pts, DefaultThreshold))
	// Exactly at the threshold does not qualify.
	assert.Equal(t, -1, Nearest([3]float32{-3.85, 0, -8 + 2.5}, []world.PointOfInterest{pts[0]}, DefaultThreshold))
}

func TestNearestFirstMinimumWins(t *testing.T) {
	twin := world.PointOfInterest{Placement: world.Placement{Position: [3]float32{1, 0, 0}}}
	pts := []world.PointOfInterest{twin, twin}
	assert.Equal(t, 0, Nearest([3]float32{0, 0, 0}, pts, DefaultThreshold))
}

func TestNearestPicksClosest(t *testing.T) {
	pts := []world.PointOfInterest{
		{Placement: world.Placement{Position: [3]float32{2, 0, 0}}},
		{Placement: world.Placement{Position: [3]float32{1, 0, 0}}},
	}
	assert.Equal(t, 1, Nearest([3]float32{0, 0, 0}, pts, DefaultThreshold))
}

// Walking along the left wall from the back of the room to the entrance, the tracker must
// report exactly enter/leave for the four left-wall exhibits, in order, and nothing else.
func TestTrackerWalkAlongLeftWall(t *testing.T) {
	g := world.Default()
	tr := NewTracker(g, DefaultThreshold)

	type change struct {
		index int
		z     float32
	}
	var changes []change
	const step = float32(0.01)
	for z := float32(-13); z <= 13; z += step {
		s, changed := tr.Update([3]float32{-3.85, 0, z})
		if changed {
			changes = append(changes, change{index: s.Index, z: z})
		}
	}

	wantIdx := []int{0, -1, 1, -1, 2, -1, 3, -1}
	wantZ := []float32{-10.5, -5.5, -4.5, 0.5, 1.5, 6.5, 7.5, 12.5}
	require.Len(t, changes, len(wantIdx))
	for i, c := range changes {
		assert.Equal(t, wantIdx[i], c.index, "change %d", i)
		assert.InDelta(t, float64(wantZ[i]), float64(c.z), float64(2*step), "change %d at z=%v", i, c.z)
	}
}

func TestTrackerIsEdgeTriggered(t *testing.T) {
	tr := NewTracker(world.Default(), DefaultThreshold)
	s, changed := tr.Update([3]float32{-3.85, 0, -8})
	require.True(t, changed)
	require.True(t, s.Ok())
	assert.Equal(t, "harken", s.Exhibit.ID)

	for i := 0; i < 10; i++ {
		s, changed = tr.Update([3]float32{-3.85, 0, -8 + float32(i)*0.01})
		assert.False(t, changed)
		assert.Equal(t, 0, s.Index)
	}
	assert.Equal(t, 0, tr.Current().Index)

	s, changed = tr.Update([3]float32{0, 0, 13})
	assert.True(t, changed)
	assert.False(t, s.Ok())
	assert.Equal(t, -1, s.Index)
}

func TestTrackerStartsAtNone(t *testing.T) {
	tr := NewTracker(world.Default(), 0)
	assert.Equal(t, float32(DefaultThreshold), tr.Threshold())
	assert.Equal(t, None(), tr.Current())
	_, changed := tr.Update([3]float32{0, 0, 13})
	assert.False(t, changed, "none to none is not a transition")
}
