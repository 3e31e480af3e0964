package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the on-disk form of a gallery (e.g. assets/exhibits.yaml).
// Exhibits and placements are listed separately so curators can reorder content
// without touching coordinates; Zip enforces that both lists have the same length.
type Catalog struct {
	Exhibits   []Exhibit   `yaml:"exhibits"`
	Placements []Placement `yaml:"placements"`
}

// ParseCatalog decodes a YAML catalog. Missing placements fall back to DefaultPlacements.
func ParseCatalog(data []byte) (*Gallery, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("world: parse catalog: %w", err)
	}
	if len(c.Placements) == 0 {
		c.Placements = DefaultPlacements()
	}
	return Zip(c.Placements, c.Exhibits)
}

// LoadCatalog reads and parses the catalog at path.
func LoadCatalog(path string) (*Gallery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	return ParseCatalog(data)
}

// MarshalCatalog encodes g back to YAML, used by `gallery exhibits --export`.
func MarshalCatalog(g *Gallery) ([]byte, error) {
	c := Catalog{
		Exhibits:   make([]Exhibit, 0, g.Len()),
		Placements: make([]Placement, 0, g.Len()),
	}
	for i := 0; i < g.Len(); i++ {
		p, _ := g.At(i)
		e, _ := g.Exhibit(i)
		c.Exhibits = append(c.Exhibits, e)
		c.Placements = append(c.Placements, p.Placement)
	}
	return yaml.Marshal(&c)
}
