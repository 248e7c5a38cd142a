package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
	"playground/internal/shape"
)

// cached holds the unit mesh and lit material for one shape kind.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// MeshCache maps shape kinds to GPU meshes. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists. Every mesh is unit sized
// and scaled to the geometry's extent when drawn.
type MeshCache struct {
	cache    map[shape.Kind]cached
	shader   rl.Shader
	loaded   bool
	flat     rl.Material // default material for unlit mask drawing
	flatOK   bool
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewMeshCache returns an empty cache.
func NewMeshCache() *MeshCache {
	return &MeshCache{
		cache:    make(map[shape.Kind]cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so solids get correct shading.
func (c *MeshCache) SetView(viewPos, lightDir mgl32.Vec3) {
	c.viewPos = viewPos
	c.lightDir = lightDir
}

func (c *MeshCache) litShader() rl.Shader {
	if !c.loaded {
		c.shader = rl.LoadShaderFromMemory(litVS, litFS)
		c.loaded = true
	}
	return c.shader
}

// unitMesh generates the raylib mesh for kind. Cube, sphere and cylinder are 1 across;
// the plane is 1x1 in XZ.
func unitMesh(kind shape.Kind) (rl.Mesh, bool) {
	switch kind {
	case shape.KindBox:
		return rl.GenMeshCube(1, 1, 1), true
	case shape.KindSphere:
		return rl.GenMeshSphere(0.5, shape.DefaultSphereHeightSegments, shape.DefaultSphereWidthSegments), true
	case shape.KindCylinder:
		return rl.GenMeshCylinder(0.5, 1, shape.DefaultCylinderSegments), true
	case shape.KindPlane:
		return rl.GenMeshPlane(1, 1, 1, 1), true
	}
	return rl.Mesh{}, false
}

// modelOffset centers meshes whose raylib origin is not their center. The raylib cylinder
// has its base at Y=0.
func modelOffset(kind shape.Kind) mgl32.Mat4 {
	if kind == shape.KindCylinder {
		return mgl32.Translate3D(0, -0.5, 0)
	}
	return mgl32.Ident4()
}

func (c *MeshCache) ensure(kind shape.Kind) (cached, bool) {
	if m, ok := c.cache[kind]; ok {
		return m, true
	}
	mesh, ok := unitMesh(kind)
	if !ok {
		return cached{}, false
	}
	mtl := rl.LoadMaterialDefault()
	if sh := c.litShader(); rl.IsShaderValid(sh) {
		mtl.Shader = sh
	}
	m := cached{mesh: mesh, mtl: mtl}
	c.cache[kind] = m
	return m, true
}

// meshTransform is the model matrix for drawing the unit mesh of a solid node.
func meshTransform(n *graph.Node, g *shape.Geometry) mgl32.Mat4 {
	e := g.Extent
	scale := mgl32.Scale3D(nonZero(e[0]), nonZero(e[1]), nonZero(e[2]))
	return n.WorldMatrix().Mul4(scale).Mul4(modelOffset(g.Kind))
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

// DrawSolid draws a Solid node lit with its mesh color. Must be called between
// BeginMode3D and EndMode3D.
func (c *MeshCache) DrawSolid(n *graph.Node) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return
	}
	c.draw(n, toColor(n.Mesh.Color), true)
}

// DrawFlat draws a Solid node unlit in a single color (used for the outline mask).
func (c *MeshCache) DrawFlat(n *graph.Node, col rl.Color) {
	if n.Mesh == nil || n.Mesh.Geometry == nil {
		return
	}
	c.draw(n, col, false)
}

func (c *MeshCache) draw(n *graph.Node, col rl.Color, lit bool) {
	m, ok := c.ensure(n.Mesh.Geometry.Kind)
	if !ok {
		return
	}
	mtl := m.mtl
	if lit {
		c.setLitShaderUniforms(mtl.Shader)
	} else {
		if !c.flatOK {
			c.flat = rl.LoadMaterialDefault()
			c.flatOK = true
		}
		mtl = c.flat
	}
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = col
	}
	rl.DrawMesh(m.mesh, mtl, toMatrix(meshTransform(n, n.Mesh.Geometry)))
}

// DrawLines draws a Lines node's segments in world space.
func DrawLines(n *graph.Node) {
	if n.Mesh == nil {
		return
	}
	world := n.WorldMatrix()
	col := toColor(n.Mesh.Color)
	for _, s := range n.Mesh.Segments {
		rl.DrawLine3D(
			toVector3(mgl32.TransformCoordinate(s.A, world)),
			toVector3(mgl32.TransformCoordinate(s.B, world)),
			col)
	}
}

// Unload releases every mesh and the shared shader.
func (c *MeshCache) Unload() {
	for k, m := range c.cache {
		rl.UnloadMesh(&m.mesh)
		delete(c.cache, k)
	}
	if c.loaded && rl.IsShaderValid(c.shader) {
		rl.UnloadShader(c.shader)
	}
	c.loaded = false
	c.flatOK = false
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(transpose(inverse(matModel))) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

var (
	defaultAmbient    = [4]float32{0.35, 0.35, 0.38, 1.0}
	defaultLightColor = [3]float32{1.0, 0.98, 0.95}
)

const (
	defaultLightIntensity   = float32(0.75)
	defaultSpecularPower    = float32(48.0)
	defaultSpecularStrength = float32(0.25)
)

// setLitShaderUniforms sets the lighting uniforms (cgo-safe: local arrays).
func (c *MeshCache) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := c.viewPos
	lightDir := c.lightDir
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
