package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixturesByPrefix(fs []Fixture, prefix string) []Fixture {
	var out []Fixture
	for _, f := range fs {
		if strings.HasPrefix(f.Name, prefix) {
			out = append(out, f)
		}
	}
	return out
}

func TestFixturesLeaveRightWallOpening(t *testing.T) {
	r := DefaultRoom()
	from, to := r.RightWallGap()
	assert.Equal(t, float32(4), from)
	assert.Equal(t, float32(6), to)

	walls := fixturesByPrefix(r.Fixtures(), "wall-right")
	require.Len(t, walls, 2)
	var covered float32
	for _, w := range walls {
		lo, hi := w.Center[2]-w.Size[2]/2, w.Center[2]+w.Size[2]/2
		assert.False(t, lo < 5 && 5 < hi, "%s covers the opening", w.Name)
		covered += w.Size[2]
	}
	assert.InDelta(t, r.Length-(to-from), covered, 1e-4)
}

func TestFixturesStanchions(t *testing.T) {
	fs := DefaultRoom().Fixtures()
	assert.Len(t, fixturesByPrefix(fs, "stanchion-left-post"), 6)
	assert.Len(t, fixturesByPrefix(fs, "stanchion-right-post"), 5)
	assert.Len(t, fixturesByPrefix(fs, "stanchion-left-rail"), 5)

	for _, p := range fixturesByPrefix(fs, "stanchion-") {
		assert.InDelta(t, 2.8, abs32(p.Center[0]), 1e-4, p.Name)
	}
	assert.Nil(t, stanchion("x", 0, 0, 1, 1))
}

func TestFixturesHaveColorsAndNames(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range DefaultRoom().Fixtures() {
		assert.False(t, seen[f.Name], "duplicate %s", f.Name)
		seen[f.Name] = true
		assert.Len(t, f.Color, 7, f.Name)
		assert.True(t, f.Size[0] > 0 && f.Size[1] > 0 && f.Size[2] > 0, f.Name)
	}
	assert.True(t, seen["sky"])
	assert.Len(t, fixturesByPrefix(DefaultRoom().Fixtures(), "light-"), 3)
	assert.Len(t, fixturesByPrefix(DefaultRoom().Fixtures(), "marker-"), 7)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestLampsMatchLightPanels(t *testing.T) {
	r := DefaultRoom()
	lamps := r.Lamps()
	panels := fixturesByPrefix(r.Fixtures(), "light-")
	require.Len(t, panels, len(lamps))
	for i, p := range panels {
		assert.Equal(t, lamps[i], p.Center)
		assert.True(t, p.Unlit)
		assert.Less(t, p.Center[1], r.Height)
	}
}
