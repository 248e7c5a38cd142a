package camera

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-4

// Orbit moves a camera on a sphere around its target. Input handlers queue deltas with
// Rotate, Dolly and Pan; Update applies them to the camera once per frame.
//
// The polar angle is measured from +Y and kept inside [MinPolar, MaxPolar]. The distance to
// the target is kept inside [MinDistance, MaxDistance].
type Orbit struct {
	MinDistance, MaxDistance float32
	MinPolar, MaxPolar       float32

	dAzimuth, dPolar float32
	scale            float32
	panX, panY       float32
}

// NewOrbit returns controls with no distance limit and the full polar range.
func NewOrbit() *Orbit {
	return &Orbit{
		MaxDistance: math.MaxFloat32,
		MaxPolar:    math32.Pi,
		scale:       1,
	}
}

// Rotate queues a change of azimuth (around +Y) and polar angle, in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float32) {
	o.dAzimuth += dAzimuth
	o.dPolar += dPolar
}

// Dolly queues a multiplication of the camera distance by factor. Values below 1 move the
// camera closer. Non-positive factors are ignored.
func (o *Orbit) Dolly(factor float32) {
	if factor > 0 {
		o.scale *= factor
	}
}

// Pan queues a sideways move of camera and target. dx and dy are screen deltas as fractions
// of the viewport height, y growing downwards; the scene follows the pointer.
func (o *Orbit) Pan(dx, dy float32) {
	o.panX += dx
	o.panY += dy
}

// Pending reports whether Update has anything to apply.
func (o *Orbit) Pending() bool {
	return o.dAzimuth != 0 || o.dPolar != 0 || o.scale != 1 || o.panX != 0 || o.panY != 0
}

// Update applies the queued deltas to cam and reports whether it moved. With nothing
// queued the camera is left untouched.
func (o *Orbit) Update(cam *Perspective) bool {
	if !o.Pending() {
		return false
	}
	defer o.reset()

	if o.panX != 0 || o.panY != 0 {
		dist := cam.Position.Sub(cam.Target).Len()
		extent := 2 * dist * math32.Tan(mgl32.DegToRad(cam.Fov)/2)
		move := cam.Right().Mul(-o.panX * extent).Add(cam.CameraUp().Mul(o.panY * extent))
		cam.Position = cam.Position.Add(move)
		cam.Target = cam.Target.Add(move)
	}

	offset := cam.Position.Sub(cam.Target)
	radius := offset.Len()
	azimuth := math32.Atan2(offset.X(), offset.Z())
	polar := math32.Atan2(math32.Sqrt(offset.X()*offset.X()+offset.Z()*offset.Z()), offset.Y())

	azimuth += o.dAzimuth
	polar += o.dPolar
	polar = max(o.MinPolar, min(o.MaxPolar, polar))
	polar = max(polarEpsilon, min(math32.Pi-polarEpsilon, polar))
	radius = max(o.MinDistance, min(o.MaxDistance, radius*o.scale))

	sinPolar := math32.Sin(polar)
	cam.Position = cam.Target.Add(mgl32.Vec3{
		radius * sinPolar * math32.Sin(azimuth),
		radius * math32.Cos(polar),
		radius * sinPolar * math32.Cos(azimuth),
	})
	return true
}

func (o *Orbit) reset() {
	o.dAzimuth, o.dPolar = 0, 0
	o.scale = 1
	o.panX, o.panY = 0, 0
}
