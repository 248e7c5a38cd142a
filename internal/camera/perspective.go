// Package camera provides the perspective camera used by the viewport, the pick rays cast
// through it and orbit controls that move it around a target.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
)

const (
	DefaultFov  = 75
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// Perspective is a look-at perspective camera. Fov is the vertical field of view in degrees.
type Perspective struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Fov      float32
	Aspect   float32
	Near     float32
	Far      float32
}

// NewPerspective returns a camera at (0, 0, 5) looking at the origin.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		Position: mgl32.Vec3{0, 0, 5},
		Up:       mgl32.Vec3{0, 1, 0},
		Fov:      fov,
		Near:     near,
		Far:      far,
	}
	c.SetAspect(aspect)
	return c
}

// SetAspect sets width / height. Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// View returns the world-to-camera matrix.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix.
func (c *Perspective) Projection() mgl32.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

// Forward returns the unit view direction.
func (c *Perspective) Forward() mgl32.Vec3 {
	d := c.Target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// Right returns the camera's horizontal screen axis in world space.
func (c *Perspective) Right() mgl32.Vec3 {
	r := c.Forward().Cross(c.Up)
	if r.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// CameraUp returns the camera's vertical screen axis in world space.
func (c *Perspective) CameraUp() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// NDC converts a pixel position inside a w x h viewport to normalized device coordinates:
// x grows right and y grows up, both in [-1, 1].
func NDC(px, py, w, h float32) (x, y float32) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return 2*px/w - 1, 1 - 2*py/h
}

// RayFromNDC returns the pick ray from the camera through the NDC point (x, y).
func (c *Perspective) RayFromNDC(x, y float32) graph.Ray {
	inv := c.Projection().Mul4(c.View()).Inv()
	p := mgl32.TransformCoordinate(mgl32.Vec3{x, y, 0.5}, inv)
	return graph.NewRay(c.Position, p.Sub(c.Position))
}

// Project maps a world point to NDC. The z component is the clip-space depth.
func (c *Perspective) Project(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, c.Projection().Mul4(c.View()))
}

// WorldPerPixel returns the world-space length that covers one pixel at point p on a
// viewport height pixels tall.
func (c *Perspective) WorldPerPixel(p mgl32.Vec3, height float32) float32 {
	if height <= 0 {
		return 0
	}
	depth := p.Sub(c.Position).Dot(c.Forward())
	return 2 * depth * math32.Tan(mgl32.DegToRad(c.Fov)/2) / height
}
