package world

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
)

var (
	// ErrEmptyGallery is returned when a gallery is built with no points of interest.
	ErrEmptyGallery = errors.New("world: gallery has no points of interest")
	// ErrMisaligned is returned by Zip when placements and exhibits differ in length.
	ErrMisaligned = errors.New("world: placements and exhibits are not index-aligned")
)

// Exhibit is the descriptive content shown for a point of interest.
// Color and AccentColor are hex strings (#rrggbb) used for the canvas and the detail swatch.
type Exhibit struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Subtitle    string   `yaml:"subtitle"`
	Description string   `yaml:"description"`
	Color       string   `yaml:"color"`
	AccentColor string   `yaml:"accent_color"`
	Tech        []string `yaml:"tech,omitempty"`
	URL         string   `yaml:"url,omitempty"`
	GitHub      string   `yaml:"github,omitempty"`
}

// Wall names which wall a point of interest hangs on.
type Wall string

const (
	WallLeft  Wall = "left"
	WallRight Wall = "right"
)

// Placement is where an exhibit hangs: world position and facing (Euler radians, Y-up).
type Placement struct {
	Position [3]float32 `yaml:"position"`
	Facing   [3]float32 `yaml:"facing"`
	Wall     Wall       `yaml:"wall"`
}

// PointOfInterest is one exhibit placement in the room. Position, facing and exhibit
// live in a single record so entry i always describes exhibit i.
type PointOfInterest struct {
	Placement
	Exhibit Exhibit
}

// Gallery is the immutable, ordered table of points of interest for a session.
type Gallery struct {
	points []PointOfInterest
	byID   map[string]int
}

// New builds a gallery from points. It fails on an empty table and on empty or duplicate exhibit IDs.
func New(points []PointOfInterest) (*Gallery, error) {
	if len(points) == 0 {
		return nil, ErrEmptyGallery
	}
	g := &Gallery{
		points: make([]PointOfInterest, len(points)),
		byID:   make(map[string]int, len(points)),
	}
	for i, p := range points {
		if p.Exhibit.ID == "" {
			return nil, fmt.Errorf("world: point %d has no exhibit id", i)
		}
		if j, dup := g.byID[p.Exhibit.ID]; dup {
			return nil, fmt.Errorf("world: exhibit %q at %d duplicates entry %d", p.Exhibit.ID, i, j)
		}
		g.byID[p.Exhibit.ID] = i
		if err := copier.CopyWithOption(&g.points[i], &p, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("world: copy point %d: %w", i, err)
		}
	}
	return g, nil
}

// Zip pairs placements with exhibits by index. Lengths must match exactly; nothing is truncated.
func Zip(placements []Placement, exhibits []Exhibit) (*Gallery, error) {
	if len(placements) != len(exhibits) {
		return nil, fmt.Errorf("%w: %d placements, %d exhibits", ErrMisaligned, len(placements), len(exhibits))
	}
	points := make([]PointOfInterest, len(placements))
	for i := range placements {
		points[i] = PointOfInterest{Placement: placements[i], Exhibit: exhibits[i]}
	}
	return New(points)
}

// Len returns the number of points of interest.
func (g *Gallery) Len() int {
	return len(g.points)
}

// At returns point i. ok is false when i is out of range.
func (g *Gallery) At(i int) (p PointOfInterest, ok bool) {
	if i < 0 || i >= len(g.points) {
		return PointOfInterest{}, false
	}
	return g.points[i], true
}

// Points returns a copy of the table in order. Tech slices are shared; use Exhibit for an owned copy.
func (g *Gallery) Points() []PointOfInterest {
	out := make([]PointOfInterest, len(g.points))
	copy(out, g.points)
	return out
}

// Exhibit returns a deep copy of exhibit i so callers cannot mutate the session table.
func (g *Gallery) Exhibit(i int) (Exhibit, bool) {
	if i < 0 || i >= len(g.points) {
		return Exhibit{}, false
	}
	var out Exhibit
	if err := copier.CopyWithOption(&out, &g.points[i].Exhibit, copier.Option{DeepCopy: true}); err != nil {
		return Exhibit{}, false
	}
	return out, true
}

// ByID returns the index of the exhibit with the given id, or -1.
func (g *Gallery) ByID(id string) int {
	if i, ok := g.byID[id]; ok {
		return i
	}
	return -1
}
