package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"hark-back/internal/world"
)

const (
	sphereRings     = 12
	sphereSlices    = 12
	cylinderSlices  = 12
	discSlices      = 24
	planeResolution = 1
)

type cachedMesh struct {
	mesh rl.Mesh
	// offset shifts the mesh in model space so Center is its middle (raylib cylinders sit on Y=0).
	offset [3]float32
}

// meshCache maps shapes to unit meshes plus three shared materials: lit, lit+textured and flat.
// Everything is created on first draw so GPU resources are allocated after the window exists.
type meshCache struct {
	meshes   map[world.Shape]cachedMesh
	lit      rl.Material
	textured rl.Material
	flat     rl.Material
	ready    bool

	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to the key light
	lamps    [][3]float32
}

// newMeshCache lights the hall from lamps; only the first maxLamps are used.
func newMeshCache(lamps [][3]float32) *meshCache {
	if len(lamps) > maxLamps {
		lamps = lamps[:maxLamps]
	}
	return &meshCache{
		meshes:   make(map[world.Shape]cachedMesh),
		lightDir: [3]float32{0.5, 1, 0.5},
		lamps:    lamps,
	}
}

// setView sets camera position and direction-to-light for this frame.
func (m *meshCache) setView(viewPos, lightDir [3]float32) {
	m.viewPos = viewPos
	m.lightDir = lightDir
}

func (m *meshCache) ensure() {
	if m.ready {
		return
	}
	m.meshes[world.ShapeBox] = cachedMesh{mesh: rl.GenMeshCube(1, 1, 1)}
	// Radius 0.5 so the diameter matches the unit cube.
	m.meshes[world.ShapeSphere] = cachedMesh{mesh: rl.GenMeshSphere(0.5, sphereRings, sphereSlices)}
	m.meshes[world.ShapeCylinder] = cachedMesh{mesh: rl.GenMeshCylinder(0.5, 1, cylinderSlices), offset: [3]float32{0, -0.5, 0}}
	m.meshes[world.ShapeDisc] = cachedMesh{mesh: rl.GenMeshCylinder(0.5, 1, discSlices), offset: [3]float32{0, -0.5, 0}}

	m.lit = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		m.lit.Shader = s
	}
	m.textured = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		m.textured.Shader = s
	}
	m.flat = rl.LoadMaterialDefault()
	m.ready = true
}

func (m *meshCache) unload() {
	if !m.ready {
		return
	}
	for _, c := range m.meshes {
		rl.UnloadMesh(&c.mesh)
	}
	m.meshes = make(map[world.Shape]cachedMesh)
	if rl.IsShaderValid(m.lit.Shader) {
		rl.UnloadShader(m.lit.Shader)
	}
	if rl.IsShaderValid(m.textured.Shader) {
		rl.UnloadShader(m.textured.Shader)
	}
	m.ready = false
}

// setLitShaderUniforms uploads this frame's lighting to shader. Values are copied into local
// arrays before crossing cgo.
func (m *meshCache) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	setVec3 := func(name string, v [3]float32) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
		}
	}
	setFloat := func(name string, v float32) {
		if loc := rl.GetShaderLocation(shader, name); loc >= 0 {
			rl.SetShaderValue(shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}

	setVec3("viewPos", m.viewPos)
	setVec3("lightDir", m.lightDir)
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		amb := ambientColor
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	setVec3("lightColor", keyColor)
	setFloat("lightIntensity", keyIntensity)
	setFloat("specularPower", specularPower)
	setFloat("specularStrength", specularStrength)

	if n := len(m.lamps); n > 0 {
		if loc := rl.GetShaderLocation(shader, "lampPos"); loc >= 0 {
			flat := make([]float32, 0, 3*n)
			for _, p := range m.lamps {
				flat = append(flat, p[0], p[1], p[2])
			}
			rl.SetShaderValueV(shader, loc, flat, rl.ShaderUniformVec3, int32(n))
		}
	}
	setFloat("lampCount", float32(len(m.lamps)))
	setVec3("lampColor", lampColor)
	setFloat("lampRange", lampRange)
}

// transform builds offset, then scale, then translate.
func transform(c cachedMesh, center, size [3]float32) rl.Matrix {
	scaleM := rl.MatrixScale(size[0], size[1], size[2])
	transM := rl.MatrixTranslate(center[0], center[1], center[2])
	if c.offset == ([3]float32{}) {
		return rl.MatrixMultiply(scaleM, transM)
	}
	offsetM := rl.MatrixTranslate(c.offset[0], c.offset[1], c.offset[2])
	return rl.MatrixMultiply(rl.MatrixMultiply(offsetM, scaleM), transM)
}

// draw draws shape centered at center with the given size and tint. Must be called between
// BeginMode3D and EndMode3D, after setView.
func (m *meshCache) draw(shape world.Shape, center, size [3]float32, tint rl.Color, unlit bool) {
	m.ensure()
	c, ok := m.meshes[shape]
	if !ok {
		return
	}
	mtl := m.lit
	if unlit {
		mtl = m.flat
	} else {
		m.setLitShaderUniforms(mtl.Shader)
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	rl.DrawMesh(c.mesh, mtl, transform(c, center, size))
}

// drawTextured draws a box with tex as albedo. An invalid texture falls back to a plain lit box.
func (m *meshCache) drawTextured(center, size [3]float32, tex rl.Texture2D, fallback rl.Color) {
	if !rl.IsTextureValid(tex) {
		m.draw(world.ShapeBox, center, size, fallback, false)
		return
	}
	m.ensure()
	c := m.meshes[world.ShapeBox]
	rl.SetMaterialTexture(&m.textured, rl.MapAlbedo, tex)
	if albedo := m.textured.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	m.setLitShaderUniforms(m.textured.Shader)
	rl.DrawMesh(c.mesh, m.textured, transform(c, center, size))
}
