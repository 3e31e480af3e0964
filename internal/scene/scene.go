// Package scene draws the gallery hall, the framed exhibits and the character with raylib.
package scene

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"hark-back/internal/artwork"
	"hark-back/internal/gallery"
	"hark-back/internal/motion"
	"hark-back/internal/world"
)

const (
	fovy = 60

	frameWidth  = 1.8
	frameHeight = 1.4
	frameDepth  = 0.08
	frameBorder = 0.1
)

var (
	frameColor     = rl.NewColor(17, 17, 17, 255)
	matColor       = rl.NewColor(245, 245, 240, 255)
	characterColor = rl.NewColor(26, 26, 26, 255)
	headColor      = rl.NewColor(42, 42, 42, 255)
	lightDir       = [3]float32{5, 8, 5}
)

type canvas struct {
	plain, highlight rl.Texture2D
	fallback         rl.Color
}

// Scene holds the hall layout and the GPU resources for it. Draw renders between BeginMode3D
// and EndMode3D with the controller's chase camera.
type Scene struct {
	gallery  *world.Gallery
	fixtures []world.Fixture
	tints    []rl.Color
	meshes   *meshCache
	canvases []canvas
	loaded   bool
	log      *zap.Logger

	Camera rl.Camera3D
}

// New lays out the hall for room and g. No GPU work happens until the first Draw.
func New(room world.Room, g *world.Gallery, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		gallery:  g,
		fixtures: room.Fixtures(),
		meshes:   newMeshCache(room.Lamps()),
		log:      log,
	}
	s.tints = make([]rl.Color, len(s.fixtures))
	for i, f := range s.fixtures {
		c, err := artwork.ParseHex(f.Color)
		if err != nil {
			log.Warn("fixture color", zap.String("fixture", f.Name), zap.Error(err))
		}
		s.tints[i] = rl.NewColor(c.R, c.G, c.B, c.A)
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = fovy
	s.Camera.Projection = rl.CameraPerspective
	return s
}

func loadTexture(img image.Image) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	return tex
}

// ensureCanvases renders each exhibit's artwork once, plain and highlighted.
func (s *Scene) ensureCanvases() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.canvases = make([]canvas, s.gallery.Len())
	for i, p := range s.gallery.Points() {
		c := canvas{fallback: matColor}
		if col, err := artwork.ParseHex(p.Exhibit.Color); err == nil {
			c.fallback = rl.NewColor(col.R, col.G, col.B, col.A)
		}
		img, err := artwork.Render(p.Exhibit, artwork.DefaultWidth, artwork.DefaultHeight)
		if err != nil {
			s.log.Warn("artwork render failed", zap.String("exhibit", p.Exhibit.ID), zap.Error(err))
			s.canvases[i] = c
			continue
		}
		c.plain = loadTexture(img)
		c.highlight = loadTexture(artwork.Highlight(img))
		s.canvases[i] = c
	}
}

// Unload frees textures, meshes and shaders. Call before the window closes.
func (s *Scene) Unload() {
	for _, c := range s.canvases {
		if rl.IsTextureValid(c.plain) {
			rl.UnloadTexture(c.plain)
		}
		if rl.IsTextureValid(c.highlight) {
			rl.UnloadTexture(c.highlight)
		}
	}
	s.canvases = nil
	s.loaded = false
	s.meshes.unload()
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

// Draw renders the hall for one frame snapshot.
func (s *Scene) Draw(snap gallery.Snapshot) {
	s.ensureCanvases()
	s.Camera.Position = vec3(snap.Camera.Position)
	s.Camera.Target = vec3(snap.Camera.Target)

	rl.BeginMode3D(s.Camera)
	s.meshes.setView(snap.Camera.Position, lightDir)
	for i, f := range s.fixtures {
		s.meshes.draw(f.Shape, f.Center, f.Size, s.tints[i], f.Unlit)
	}
	for i, p := range s.gallery.Points() {
		s.drawFrame(i, p, snap.Nearby.Index == i)
	}
	s.drawCharacter(snap.Pose)
	rl.EndMode3D()
}

// drawFrame draws the black frame, the white mat and the canvas, stacked out from the wall.
func (s *Scene) drawFrame(i int, p world.PointOfInterest, nearby bool) {
	// Frames hang on the side walls, so depth runs along X and width along Z.
	normal := float32(1)
	if p.Wall == world.WallRight {
		normal = -1
	}
	at := func(out float32) [3]float32 {
		return [3]float32{p.Position[0] + normal*out, p.Position[1], p.Position[2]}
	}
	s.meshes.draw(world.ShapeBox, at(0), [3]float32{frameDepth, frameHeight + frameBorder*2, frameWidth + frameBorder*2}, frameColor, false)
	s.meshes.draw(world.ShapeBox, at(0.01), [3]float32{frameDepth, frameHeight + 0.04, frameWidth + 0.04}, matColor, false)

	if i >= len(s.canvases) {
		return
	}
	c := s.canvases[i]
	tex := c.plain
	if nearby {
		tex = c.highlight
	}
	s.meshes.drawTextured(at(0.03), [3]float32{frameDepth, frameHeight - 0.1, frameWidth - 0.1}, tex, c.fallback)
}

// drawCharacter draws the capsule body, head and a nose marking the heading.
func (s *Scene) drawCharacter(p motion.Pose) {
	base := p.Position
	rl.DrawCapsule(
		rl.NewVector3(base[0], base[1]+0.3, base[2]),
		rl.NewVector3(base[0], base[1]+0.6, base[2]),
		0.15, 8, 4, characterColor)
	rl.DrawSphere(rl.NewVector3(base[0], base[1]+0.85, base[2]), 0.14, headColor)

	dir := motion.Facing(p.Heading)
	rl.DrawSphere(rl.NewVector3(base[0]+dir[0]*0.14, base[1]+0.85, base[2]+dir[2]*0.14), 0.04, frameColor)
}
