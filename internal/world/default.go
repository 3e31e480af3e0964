package world

import "math"

// Room holds the walkable bounds and the presentational dimensions of the gallery hall.
// Only the bounds take part in navigation; there is no collision against frames or stanchions.
type Room struct {
	HalfWidth float32 `yaml:"half_width" mapstructure:"half_width"`
	MinZ      float32 `yaml:"min_z" mapstructure:"min_z"`
	MaxZ      float32 `yaml:"max_z" mapstructure:"max_z"`

	Width  float32    `yaml:"width" mapstructure:"width"`
	Height float32    `yaml:"height" mapstructure:"height"`
	Length float32    `yaml:"length" mapstructure:"length"`
	Spawn  [3]float32 `yaml:"spawn" mapstructure:"spawn"`
}

// DefaultRoom is an 8 x 5 x 28 hall; the character may walk x in [-3.2, 3.2] and z in [-13, 13].
func DefaultRoom() Room {
	return Room{
		HalfWidth: 3.2,
		MinZ:      -13,
		MaxZ:      13,
		Width:     8,
		Height:    5,
		Length:    28,
		Spawn:     [3]float32{0, 0, 10},
	}
}

// Clamp limits x and z to the walkable bounds independently. Y is untouched.
func (r Room) Clamp(p [3]float32) [3]float32 {
	p[0] = min(max(p[0], -r.HalfWidth), r.HalfWidth)
	p[2] = min(max(p[2], r.MinZ), r.MaxZ)
	return p
}

const (
	artworkHeight = 2.2
	wallOffset    = 3.85
)

var (
	faceRight = [3]float32{0, math.Pi / 2, 0}
	faceLeft  = [3]float32{0, -math.Pi / 2, 0}
)

// DefaultPlacements are the seven hanging spots: four on the left wall, three on the right.
func DefaultPlacements() []Placement {
	return []Placement{
		{Position: [3]float32{-wallOffset, artworkHeight, -8}, Facing: faceRight, Wall: WallLeft},
		{Position: [3]float32{-wallOffset, artworkHeight, -2}, Facing: faceRight, Wall: WallLeft},
		{Position: [3]float32{-wallOffset, artworkHeight, 4}, Facing: faceRight, Wall: WallLeft},
		{Position: [3]float32{-wallOffset, artworkHeight, 10}, Facing: faceRight, Wall: WallLeft},
		{Position: [3]float32{wallOffset, artworkHeight, -5}, Facing: faceLeft, Wall: WallRight},
		{Position: [3]float32{wallOffset, artworkHeight, 1}, Facing: faceLeft, Wall: WallRight},
		{Position: [3]float32{wallOffset, artworkHeight, 7}, Facing: faceLeft, Wall: WallRight},
	}
}

// DefaultExhibits is the built-in project list, in hanging order.
func DefaultExhibits() []Exhibit {
	return []Exhibit{
		{
			ID:          "harken",
			Title:       "Harken",
			Subtitle:    "AI Chatbot",
			Description: "An AI-powered chatbot with perspective-checking capabilities. Features multimodal input, rich text editing, document artifacts, and real-time streaming responses.",
			Color:       "#1a1a2e",
			AccentColor: "#e94560",
			Tech:        []string{"Next.js", "React", "TypeScript", "Vercel AI SDK", "PostgreSQL"},
			GitHub:      "https://github.com/harineek24/harken",
		},
		{
			ID:          "project-alpha",
			Title:       "Project Alpha",
			Subtitle:    "Web Application",
			Description: "A modern web application showcasing responsive design and dynamic interactions. Full-stack development with real-time features.",
			Color:       "#0f3460",
			AccentColor: "#16213e",
			Tech:        []string{"React", "Node.js", "MongoDB"},
		},
		{
			ID:          "project-beta",
			Title:       "Project Beta",
			Subtitle:    "Mobile App",
			Description: "Cross-platform mobile application with native performance. Intuitive user experience with offline-first architecture.",
			Color:       "#533483",
			AccentColor: "#2b1055",
			Tech:        []string{"React Native", "Firebase", "TypeScript"},
		},
		{
			ID:          "project-gamma",
			Title:       "Project Gamma",
			Subtitle:    "Data Visualization",
			Description: "Interactive data visualization dashboard for complex datasets. Real-time charts and dynamic filtering capabilities.",
			Color:       "#1b4332",
			AccentColor: "#2d6a4f",
			Tech:        []string{"D3.js", "Python", "Flask"},
		},
		{
			ID:          "project-delta",
			Title:       "Project Delta",
			Subtitle:    "API Platform",
			Description: "Scalable RESTful API platform with comprehensive documentation. Microservices architecture with automated testing.",
			Color:       "#3c1642",
			AccentColor: "#7b2d8e",
			Tech:        []string{"Go", "Docker", "PostgreSQL"},
		},
		{
			ID:          "project-epsilon",
			Title:       "Project Epsilon",
			Subtitle:    "Design System",
			Description: "A comprehensive design system and component library. Accessible, themeable, and well-documented UI components.",
			Color:       "#1a1a1a",
			AccentColor: "#4a4a4a",
			Tech:        []string{"Figma", "Storybook", "CSS"},
		},
		{
			ID:          "project-zeta",
			Title:       "Project Zeta",
			Subtitle:    "Machine Learning",
			Description: "Machine learning pipeline for natural language processing. Model training, evaluation, and deployment infrastructure.",
			Color:       "#2c2c54",
			AccentColor: "#474787",
			Tech:        []string{"Python", "PyTorch", "AWS"},
		},
	}
}

// Default returns the built-in gallery. The tables are fixed and aligned, so an error here is a programming bug.
func Default() *Gallery {
	g, err := Zip(DefaultPlacements(), DefaultExhibits())
	if err != nil {
		panic(err)
	}
	return g
}
