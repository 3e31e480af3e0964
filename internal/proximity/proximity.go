package proximity

import (
	"github.com/chewxy/math32"

	"hark-back/internal/world"
)

// DefaultThreshold is the planar distance inside which an exhibit counts as nearby.
const DefaultThreshold = 2.5

// Nearest scans points in order and returns the index of the closest one whose planar (x,z)
// distance to pos is strictly below threshold, or -1. The running best starts at threshold,
// so anything at or beyond it never qualifies, and the first of equal minima wins.
func Nearest(pos [3]float32, points []world.PointOfInterest, threshold float32) int {
	best := -1
	bestDist := threshold
	for i := range points {
		dx := pos[0] - points[i].Position[0]
		dz := pos[2] - points[i].Position[2]
		d := math32.Sqrt(dx*dx + dz*dz)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// NearbyState is the exhibit the character currently stands by, if any.
type NearbyState struct {
	Index   int
	Exhibit *world.Exhibit
}

// None is the state with no exhibit nearby.
func None() NearbyState {
	return NearbyState{Index: -1}
}

// Ok reports whether an exhibit is nearby.
func (s NearbyState) Ok() bool {
	return s.Index >= 0 && s.Exhibit != nil
}

// Tracker recomputes Nearest every frame and reports only transitions of the index.
// It is deliberately never reset: closing an overlay keeps the last known neighbour.
type Tracker struct {
	gallery   *world.Gallery
	points    []world.PointOfInterest
	threshold float32
	current   NearbyState
}

// NewTracker builds a tracker over g's points.
func NewTracker(g *world.Gallery, threshold float32) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{
		gallery:   g,
		points:    g.Points(),
		threshold: threshold,
		current:   None(),
	}
}

// Threshold returns the proximity radius in use.
func (t *Tracker) Threshold() float32 {
	return t.threshold
}

// Update recomputes the nearest exhibit for pos. changed is true only when the index differs
// from the previous call.
func (t *Tracker) Update(pos [3]float32) (state NearbyState, changed bool) {
	i := Nearest(pos, t.points, t.threshold)
	if i == t.current.Index {
		return t.current, false
	}
	next := None()
	if e, ok := t.gallery.Exhibit(i); ok {
		next = NearbyState{Index: i, Exhibit: &e}
	}
	t.current = next
	return next, true
}

// Current returns the last reported state.
func (t *Tracker) Current() NearbyState {
	return t.current
}
