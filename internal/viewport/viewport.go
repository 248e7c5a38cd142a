// Package viewport connects the scene to the screen. A Viewport owns the camera, the orbit
// controls, the transform widget and the render pipeline; it turns window events into
// selection changes and widget drags and drives each frame.
//
// All methods must be called from the thread that runs the frame loop.
package viewport

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/camera"
	"playground/internal/gizmo"
	"playground/internal/graph"
	"playground/internal/scene"
)

// Click is a primary-button click in window pixels, origin at the top left.
type Click struct {
	X, Y float32
}

// Options configures New. Zero fields take defaults.
type Options struct {
	Fov, Near, Far float32
	// CameraPosition and CameraTarget place the camera; a zero position means (0, 0, 5).
	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3
	// ClickSlop is how far, in pixels, the pointer may travel between press and release and
	// still count as a click.
	ClickSlop   float32
	RotateSpeed float32
	ZoomStep    float32
	Logger      *slog.Logger
}

// Viewport renders one Scene through a perspective camera.
type Viewport struct {
	scene    *scene.Scene
	camera   *camera.Perspective
	orbit    *camera.Orbit
	widget   *gizmo.Widget
	pipeline Pipeline
	log      *slog.Logger

	width, height int

	clickSlop   float32
	rotateSpeed float32
	zoomStep    float32
	gesture     gesture
}

// New returns a viewport over scn. Call Resize before the first Animate.
func New(scn *scene.Scene, pipeline Pipeline, opts Options) *Viewport {
	if opts.Fov <= 0 {
		opts.Fov = camera.DefaultFov
	}
	if opts.Near <= 0 {
		opts.Near = camera.DefaultNear
	}
	if opts.Far <= opts.Near {
		opts.Far = camera.DefaultFar
	}
	if opts.ClickSlop <= 0 {
		opts.ClickSlop = 4
	}
	if opts.RotateSpeed <= 0 {
		opts.RotateSpeed = 1
	}
	if opts.ZoomStep <= 0 || opts.ZoomStep >= 1 {
		opts.ZoomStep = 0.95
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	cam := camera.NewPerspective(opts.Fov, 1, opts.Near, opts.Far)
	if opts.CameraPosition != (mgl32.Vec3{}) {
		cam.Position = opts.CameraPosition
	}
	cam.Target = opts.CameraTarget

	return &Viewport{
		scene:       scn,
		camera:      cam,
		orbit:       camera.NewOrbit(),
		widget:      gizmo.New(),
		pipeline:    pipeline,
		log:         opts.Logger,
		clickSlop:   opts.ClickSlop,
		rotateSpeed: opts.RotateSpeed,
		zoomStep:    opts.ZoomStep,
	}
}

func (v *Viewport) Scene() *scene.Scene { return v.scene }
func (v *Viewport) Camera() *camera.Perspective { return v.camera }
func (v *Viewport) Orbit() *camera.Orbit { return v.orbit }
func (v *Viewport) Widget() *gizmo.Widget { return v.widget }
func (v *Viewport) Pipeline() Pipeline { return v.pipeline }
func (v *Viewport) Size() (width, height int) { return v.width, v.height }

// Resize records the new drawing size and applies it to the camera aspect and every pass
// in one step. Non-positive sizes (a minimized window) are ignored.
func (v *Viewport) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		v.log.Debug("resize ignored", "width", width, "height", height)
		return
	}
	v.width, v.height = width, height
	v.camera.SetAspect(float32(width) / float32(height))
	for _, p := range v.pipeline.Passes {
		p.SetSize(width, height)
	}
	v.log.Debug("viewport resized", "width", width, "height", height)
}

// PickRay returns the camera ray under the window pixel (x, y).
func (v *Viewport) PickRay(x, y float32) graph.Ray {
	nx, ny := camera.NDC(x, y, float32(v.width), float32(v.height))
	return v.camera.RayFromNDC(nx, ny)
}

// SelectSceneObject hit-tests the click and replaces the selection with the object struck,
// or clears it when nothing is. Modifier keys are not consulted: a click always selects a
// single object.
func (v *Viewport) SelectSceneObject(c Click) (*scene.Object, bool) {
	ray := v.PickRay(c.X, c.Y)
	obj, ok := v.scene.RaycastSceneObject(ray.Origin, ray.Direction)
	sel := v.scene.Selection()
	sel.Clear()
	if !ok {
		v.log.Debug("click missed", "x", c.X, "y", c.Y)
		return nil, false
	}
	sel.Add(obj)
	v.log.Debug("object selected", "name", obj.Name(), "pivot", sel.Pivot())
	return obj, true
}

// UpdateTransformWidget shows the widget on the selection group while something is
// selected and detaches and hides it otherwise.
func (v *Viewport) UpdateTransformWidget() {
	sel := v.scene.Selection()
	v.widget.SetVisible(!sel.Empty())
	if sel.Empty() {
		v.widget.Detach()
		return
	}
	v.widget.Attach(sel.Group())
}

// UpdateOutlinePass hands the outline stage the roots currently under the selection group.
func (v *Viewport) UpdateOutlinePass() {
	if v.pipeline.Outline == nil {
		return
	}
	v.pipeline.Outline.SetSelectedObjects(v.scene.Selection().Group().Children())
}

// Animate advances one frame: camera controls, widget sizing, outline targets, then every
// pass in order.
func (v *Viewport) Animate() {
	v.orbit.Update(v.camera)
	v.widget.Update(v.camera)
	v.UpdateOutlinePass()
	f := Frame{
		Scene:  v.scene,
		Camera: v.camera,
		Widget: v.widget,
		Width:  v.width,
		Height: v.height,
	}
	for _, p := range v.pipeline.Passes {
		p.Render(f)
	}
}
