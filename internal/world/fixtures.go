package world

import "fmt"

// Shape is the mesh a fixture is drawn with.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
	ShapeDisc     Shape = "disc"
)

// Fixture is a decorative piece of the hall: surfaces, lights, floor markers and stanchions.
// Center and Size are in world units; Color is #rrggbb. Unlit fixtures ignore scene lighting.
type Fixture struct {
	Name   string
	Shape  Shape
	Center [3]float32
	Size   [3]float32
	Color  string
	Unlit  bool
}

const (
	wallThickness = 0.1
	wallColor     = "#ece8e1"
	postColor     = "#1a1a1a"
	railHeight    = 0.7
	postHeight    = 0.8
)

// RightWallGap returns the z range of the opening in the right wall that shows the sky.
func (r Room) RightWallGap() (from, to float32) {
	return r.Length/2 - 10, r.Length/2 - 8
}

// Lamps returns the centers of the ceiling light panels. The scene lights from them.
func (r Room) Lamps() [][3]float32 {
	zs := []float32{-8, -1, 6}
	out := make([][3]float32, len(zs))
	for i, z := range zs {
		out[i] = [3]float32{0, r.Height - 0.05, z}
	}
	return out
}

// Fixtures lays out the hall for r. Navigation never consults them.
func (r Room) Fixtures() []Fixture {
	w, h, l := r.Width, r.Height, r.Length
	gapFrom, gapTo := r.RightWallGap()
	backLen := gapFrom + l/2
	frontLen := l/2 - gapTo

	out := []Fixture{
		{Name: "floor", Shape: ShapeBox, Center: [3]float32{0, -wallThickness / 2, 0}, Size: [3]float32{w, wallThickness, l}, Color: "#e8e4de"},
		{Name: "ceiling", Shape: ShapeBox, Center: [3]float32{0, h + wallThickness/2, 0}, Size: [3]float32{w, wallThickness, l}, Color: "#d4d0ca"},
		{Name: "wall-left", Shape: ShapeBox, Center: [3]float32{-w/2 - wallThickness/2, h / 2, 0}, Size: [3]float32{wallThickness, h, l}, Color: wallColor},
		{Name: "wall-right-back", Shape: ShapeBox, Center: [3]float32{w/2 + wallThickness/2, h / 2, -l/2 + backLen/2}, Size: [3]float32{wallThickness, h, backLen}, Color: wallColor},
		{Name: "wall-right-front", Shape: ShapeBox, Center: [3]float32{w/2 + wallThickness/2, h / 2, gapTo + frontLen/2}, Size: [3]float32{wallThickness, h, frontLen}, Color: wallColor},
		{Name: "wall-back", Shape: ShapeBox, Center: [3]float32{0, h / 2, -l/2 - wallThickness/2}, Size: [3]float32{w, h, wallThickness}, Color: "#f0ece6"},
		{Name: "wall-front-left", Shape: ShapeBox, Center: [3]float32{-2.5, h / 2, l/2 + wallThickness/2}, Size: [3]float32{3, h, wallThickness}, Color: wallColor},
		{Name: "wall-front-right", Shape: ShapeBox, Center: [3]float32{2.5, h / 2, l/2 + wallThickness/2}, Size: [3]float32{3, h, wallThickness}, Color: wallColor},
		{Name: "sky", Shape: ShapeBox, Center: [3]float32{w/2 + 2, h / 2, (gapFrom + gapTo) / 2}, Size: [3]float32{0.05, h + 2, 12}, Color: "#87ceeb", Unlit: true},
	}

	for i, c := range r.Lamps() {
		out = append(out, Fixture{
			Name:   fmt.Sprintf("light-%d", i),
			Shape:  ShapeBox,
			Center: c,
			Size:   [3]float32{1.5, 0.08, 0.6},
			Color:  "#ffffff",
			Unlit:  true,
		})
	}

	markers := [][2]float32{{0, -8}, {0, -2}, {0, 4}, {0, 10}, {-1.5, -5}, {1.5, 1}, {-1.5, 7}}
	for i, m := range markers {
		out = append(out, Fixture{
			Name:   fmt.Sprintf("marker-%d", i),
			Shape:  ShapeDisc,
			Center: [3]float32{m[0], 0.01, m[1]},
			Size:   [3]float32{0.6, 0.01, 0.6},
			Color:  "#d0d0d0",
		})
	}

	x := r.HalfWidth - 0.4
	out = append(out, stanchion("stanchion-left", -x, r.MinZ+2, r.MaxZ, 6)...)
	out = append(out, stanchion("stanchion-right", x, r.MinZ+5, r.MaxZ-3, 5)...)
	return out
}

// stanchion places posts evenly from z0 to z1 at x, with a rail between neighbours.
func stanchion(name string, x, z0, z1 float32, posts int) []Fixture {
	if posts < 2 {
		return nil
	}
	var out []Fixture
	step := (z1 - z0) / float32(posts-1)
	for i := 0; i < posts; i++ {
		z := z0 + step*float32(i)
		out = append(out,
			Fixture{Name: fmt.Sprintf("%s-post-%d", name, i), Shape: ShapeCylinder, Center: [3]float32{x, postHeight / 2, z}, Size: [3]float32{0.08, postHeight, 0.08}, Color: postColor},
			Fixture{Name: fmt.Sprintf("%s-cap-%d", name, i), Shape: ShapeSphere, Center: [3]float32{x, postHeight + 0.02, z}, Size: [3]float32{0.1, 0.1, 0.1}, Color: postColor},
		)
		if i > 0 {
			out = append(out, Fixture{
				Name:   fmt.Sprintf("%s-rail-%d", name, i),
				Shape:  ShapeBox,
				Center: [3]float32{x, railHeight, z - step/2},
				Size:   [3]float32{0.03, 0.03, step},
				Color:  "#2a2a2a",
			})
		}
	}
	return out
}
