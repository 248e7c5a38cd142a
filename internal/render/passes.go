package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/config"
	"playground/internal/graph"
	"playground/internal/viewport"
)

// Target is an offscreen color buffer shared between passes. It is (re)allocated lazily at
// the size last given to Resize.
type Target struct {
	rt            rl.RenderTexture2D
	loaded        bool
	width, height int
}

// Resize records the size; the buffer is reallocated on next use.
func (t *Target) Resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.Unload()
	t.width, t.height = width, height
}

func (t *Target) ensure() bool {
	if t.width <= 0 || t.height <= 0 {
		return false
	}
	if !t.loaded {
		t.rt = rl.LoadRenderTexture(int32(t.width), int32(t.height))
		t.loaded = true
	}
	return true
}

// Unload frees the GPU buffer.
func (t *Target) Unload() {
	if t.loaded {
		rl.UnloadRenderTexture(t.rt)
		t.loaded = false
	}
}

// drawFlipped draws the target's texture over the current framebuffer. Render textures are
// stored bottom-up, hence the negative source height.
func (t *Target) drawFlipped(tint rl.Color) {
	src := rl.NewRectangle(0, 0, float32(t.width), -float32(t.height))
	rl.DrawTextureRec(t.rt.Texture, src, rl.NewVector2(0, 0), tint)
}

// lightDir is the direction to the key light, fixed above and in front of the scene.
var lightDir = mgl32.Vec3{0.5, 1, 0.75}.Normalize()

// RenderPass draws the scene graph and the transform widget into Out.
type RenderPass struct {
	Meshes *MeshCache
	Out    *Target
}

func (p *RenderPass) SetSize(width, height int) { p.Out.Resize(width, height) }

func (p *RenderPass) Render(f viewport.Frame) {
	if !p.Out.ensure() {
		return
	}
	p.Meshes.SetView(f.Camera.Position, lightDir)
	rl.BeginTextureMode(p.Out.rt)
	rl.ClearBackground(toColor(f.Scene.Background()))
	rl.BeginMode3D(toCamera3D(f.Camera))
	f.Scene.Root().Walk(func(n *graph.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh != nil {
			switch n.Mesh.Kind {
			case graph.Solid:
				p.Meshes.DrawSolid(n)
			case graph.Lines:
				DrawLines(n)
			}
		}
		return true
	})
	if handles := f.Widget.Handles(); len(handles) > 0 {
		// Handles stay on top of the geometry they manipulate.
		rl.DrawRenderBatchActive()
		rl.DisableDepthTest()
		for _, h := range handles {
			col := toColor(h.Color)
			for _, s := range h.Segments {
				rl.DrawLine3D(toVector3(s.A), toVector3(s.B), col)
			}
		}
		rl.DrawRenderBatchActive()
		rl.EnableDepthTest()
	}
	rl.EndMode3D()
	rl.EndTextureMode()
}

// OutlinePass edges the selected objects. It draws a mask where red marks the visible parts
// of the selection and green its whole silhouette, then composites In plus the edge
// shader's output into Out.
type OutlinePass struct {
	Meshes *MeshCache
	In     *Target
	Out    *Target
	Style  config.Outline

	mask     Target
	shader   rl.Shader
	loaded   bool
	selected map[*graph.Node]bool
	roots    []*graph.Node
}

// SetSelectedObjects sets the roots whose subtrees are outlined.
func (p *OutlinePass) SetSelectedObjects(nodes []*graph.Node) {
	p.roots = nodes
	if p.selected == nil {
		p.selected = make(map[*graph.Node]bool)
	}
	clear(p.selected)
	for _, n := range nodes {
		p.selected[n] = true
	}
}

func (p *OutlinePass) SetSize(width, height int) {
	p.mask.Resize(width, height)
	p.Out.Resize(width, height)
}

func (p *OutlinePass) edgeShader() rl.Shader {
	if !p.loaded {
		p.shader = rl.LoadShaderFromMemory(edgeVS, edgeFS)
		p.loaded = true
	}
	return p.shader
}

var (
	maskVisible = rl.NewColor(255, 0, 0, 255)
	maskCovered = rl.NewColor(0, 255, 0, 255)
)

func (p *OutlinePass) Render(f viewport.Frame) {
	if !p.Out.ensure() || !p.In.loaded {
		return
	}
	rl.BeginTextureMode(p.Out.rt)
	rl.ClearBackground(rl.Blank)
	p.In.drawFlipped(rl.White)
	rl.EndTextureMode()
	if len(p.roots) == 0 || !p.mask.ensure() {
		return
	}

	rl.BeginTextureMode(p.mask.rt)
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(toCamera3D(f.Camera))
	// Occluders fill depth in black so only the visible parts of the selection pass.
	f.Scene.Root().Walk(func(n *graph.Node) bool {
		if !n.Visible || p.selected[n] {
			return false
		}
		if n.Mesh != nil && n.Mesh.Kind == graph.Solid {
			p.Meshes.DrawFlat(n, rl.Black)
		}
		return true
	})
	p.drawSelected(maskVisible)
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()
	rl.BeginBlendMode(rl.BlendAdditive)
	p.drawSelected(maskCovered)
	rl.EndBlendMode()
	rl.EnableDepthTest()
	rl.EndMode3D()
	rl.EndTextureMode()

	sh := p.edgeShader()
	if !rl.IsShaderValid(sh) {
		return
	}
	p.setEdgeUniforms(sh)
	rl.BeginTextureMode(p.Out.rt)
	rl.BeginShaderMode(sh)
	p.mask.drawFlipped(rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

func (p *OutlinePass) drawSelected(col rl.Color) {
	for _, root := range p.roots {
		root.Walk(func(n *graph.Node) bool {
			if !n.Visible {
				return false
			}
			if n.Mesh != nil && n.Mesh.Kind == graph.Solid {
				p.Meshes.DrawFlat(n, col)
			}
			return true
		})
	}
}

func (p *OutlinePass) setEdgeUniforms(sh rl.Shader) {
	texel := []float32{1 / float32(p.mask.width), 1 / float32(p.mask.height)}
	visible := colorVec4(p.Style.VisibleEdgeColor)
	hidden := colorVec4(p.Style.HiddenEdgeColor)
	thickness := []float32{max(p.Style.EdgeThickness, 1)}
	strength := []float32{max(p.Style.EdgeStrength, 0)}
	if loc := rl.GetShaderLocation(sh, "texel"); loc >= 0 {
		rl.SetShaderValue(sh, loc, texel, rl.ShaderUniformVec2)
	}
	if loc := rl.GetShaderLocation(sh, "visibleColor"); loc >= 0 {
		rl.SetShaderValue(sh, loc, visible[:], rl.ShaderUniformVec4)
	}
	if loc := rl.GetShaderLocation(sh, "hiddenColor"); loc >= 0 {
		rl.SetShaderValue(sh, loc, hidden[:], rl.ShaderUniformVec4)
	}
	if loc := rl.GetShaderLocation(sh, "thickness"); loc >= 0 {
		rl.SetShaderValue(sh, loc, thickness, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(sh, "strength"); loc >= 0 {
		rl.SetShaderValue(sh, loc, strength, rl.ShaderUniformFloat)
	}
}

func colorVec4(c config.Color) [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// Unload frees the mask buffer and the edge shader.
func (p *OutlinePass) Unload() {
	p.mask.Unload()
	if p.loaded && rl.IsShaderValid(p.shader) {
		rl.UnloadShader(p.shader)
	}
	p.loaded = false
}

// CopyPass puts In on the screen. It must run inside BeginDrawing.
type CopyPass struct {
	In *Target
}

func (p *CopyPass) SetSize(width, height int) {}

func (p *CopyPass) Render(viewport.Frame) {
	if p.In.loaded {
		p.In.drawFlipped(rl.White)
	}
}

const (
	edgeVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
void main() {
  fragTexCoord = vertexTexCoord;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// edgeFS turns the mask into an outline around the green silhouette. Pixels near any
	// red (visible) sample use the visible color, the rest the hidden color.
	edgeFS = `#version 330
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec2 texel;
uniform vec4 visibleColor;
uniform vec4 hiddenColor;
uniform float thickness;
uniform float strength;
out vec4 finalColor;
void main() {
  vec4 center = texture(texture0, fragTexCoord);
  float covered = 0.0;
  float visible = 0.0;
  for (int i = 0; i < 8; i++) {
    float a = 0.785398 * float(i);
    vec2 dir = vec2(cos(a), sin(a));
    for (float d = 1.0; d <= thickness; d += 1.0) {
      vec4 s = texture(texture0, fragTexCoord + dir * texel * d);
      covered = max(covered, s.g);
      visible = max(visible, s.r);
    }
  }
  float edge = covered * (1.0 - center.g);
  vec4 col = mix(hiddenColor, visibleColor, visible);
  finalColor = vec4(col.rgb, clamp(edge * strength / 10.0, 0.0, 1.0) * col.a);
}
`
)

// Pipeline bundles the passes the playground renders through, in order: scene, outline,
// copy to screen.
type Pipeline struct {
	Meshes  *MeshCache
	Render  *RenderPass
	Outline *OutlinePass
	Copy    *CopyPass

	color, composite Target
}

// NewPipeline builds the three passes around shared targets. The outline takes its colors
// and widths from style.
func NewPipeline(style config.Outline) *Pipeline {
	p := &Pipeline{Meshes: NewMeshCache()}
	p.Render = &RenderPass{Meshes: p.Meshes, Out: &p.color}
	p.Outline = &OutlinePass{Meshes: p.Meshes, In: &p.color, Out: &p.composite, Style: style}
	p.Copy = &CopyPass{In: &p.composite}
	return p
}

// Viewport returns the pipeline in the form the viewport runs it.
func (p *Pipeline) Viewport() viewport.Pipeline {
	return viewport.Pipeline{
		Passes:  []viewport.Pass{p.Render, p.Outline, p.Copy},
		Outline: p.Outline,
	}
}

// Unload frees every GPU resource the passes created.
func (p *Pipeline) Unload() {
	p.Outline.Unload()
	p.color.Unload()
	p.composite.Unload()
	p.Meshes.Unload()
}
