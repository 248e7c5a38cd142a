package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-3

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v vs %v", i, want, got)
	}
}

func TestNDC(t *testing.T) {
	x, y := NDC(400, 300, 800, 600)
	assert.InDelta(t, 0, x, tol)
	assert.InDelta(t, 0, y, tol)

	x, y = NDC(0, 0, 800, 600)
	assert.InDelta(t, -1, x, tol)
	assert.InDelta(t, 1, y, tol)

	x, y = NDC(800, 600, 800, 600)
	assert.InDelta(t, 1, x, tol)
	assert.InDelta(t, -1, y, tol)

	x, y = NDC(10, 10, 0, 600)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestRayThroughCenterPointsAtTarget(t *testing.T) {
	cam := NewPerspective(DefaultFov, 800.0/600.0, DefaultNear, DefaultFar)
	cam.Position = mgl32.Vec3{3, 2, 4}
	cam.Target = mgl32.Vec3{1, 0, -1}

	ray := cam.RayFromNDC(0, 0)
	assertVec(t, cam.Position, ray.Origin)
	assertVec(t, cam.Target.Sub(cam.Position).Normalize(), ray.Direction)
}

func TestRayThroughEdge(t *testing.T) {
	cam := NewPerspective(90, 1, DefaultNear, DefaultFar)
	ray := cam.RayFromNDC(1, 0)
	assertVec(t, mgl32.Vec3{1, 0, -1}.Normalize(), ray.Direction)

	// Top of the screen is +Y.
	ray = cam.RayFromNDC(0, 1)
	assertVec(t, mgl32.Vec3{0, 1, -1}.Normalize(), ray.Direction)
}

func TestProjectInvertsRay(t *testing.T) {
	cam := NewPerspective(DefaultFov, 1.5, DefaultNear, DefaultFar)
	cam.Position = mgl32.Vec3{0, 3, 6}
	ray := cam.RayFromNDC(0.25, -0.5)
	p := cam.Project(ray.At(4))
	assert.InDelta(t, 0.25, p.X(), tol)
	assert.InDelta(t, -0.5, p.Y(), tol)
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	cam := NewPerspective(DefaultFov, 2, DefaultNear, DefaultFar)
	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect)
	cam.SetAspect(-1)
	assert.Equal(t, float32(2), cam.Aspect)
	cam.SetAspect(0.5)
	assert.Equal(t, float32(0.5), cam.Aspect)
}

func TestWorldPerPixel(t *testing.T) {
	cam := NewPerspective(90, 1, DefaultNear, DefaultFar)
	// At depth 5 with a 90 degree fov the view is 10 units tall.
	assert.InDelta(t, 10.0/500.0, cam.WorldPerPixel(mgl32.Vec3{}, 500), tol)
	assert.Zero(t, cam.WorldPerPixel(mgl32.Vec3{}, 0))
}

func TestOrbitUpdateWithoutInput(t *testing.T) {
	cam := NewPerspective(DefaultFov, 1, DefaultNear, DefaultFar)
	cam.Position = mgl32.Vec3{1, 2, 3}
	o := NewOrbit()
	assert.False(t, o.Pending())
	assert.False(t, o.Update(cam))
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position)
}

func TestOrbitRotateKeepsDistance(t *testing.T) {
	cam := NewPerspective(DefaultFov, 1, DefaultNear, DefaultFar)
	o := NewOrbit()

	o.Rotate(math32.Pi/2, 0)
	assert.True(t, o.Update(cam))
	assertVec(t, mgl32.Vec3{5, 0, 0}, cam.Position)
	assert.False(t, o.Pending())

	o.Rotate(0.3, -0.7)
	o.Update(cam)
	assert.InDelta(t, 5, cam.Position.Len(), tol)
	assert.Greater(t, cam.Position.Y(), float32(0))
}

func TestOrbitClampsPolar(t *testing.T) {
	cam := NewPerspective(DefaultFov, 1, DefaultNear, DefaultFar)
	o := NewOrbit()
	o.Rotate(0, -10)
	o.Update(cam)
	assert.InDelta(t, 5, cam.Position.Y(), tol)
	assert.InDelta(t, 5, cam.Position.Len(), tol)

	o.MaxPolar = math32.Pi / 2
	o.Rotate(0, 10)
	o.Update(cam)
	assert.InDelta(t, 0, cam.Position.Y(), tol)
}

func TestOrbitDolly(t *testing.T) {
	cam := NewPerspective(DefaultFov, 1, DefaultNear, DefaultFar)
	o := NewOrbit()
	o.Dolly(0.5)
	o.Update(cam)
	assertVec(t, mgl32.Vec3{0, 0, 2.5}, cam.Position)

	o.MinDistance = 2
	o.Dolly(0.1)
	o.Dolly(0)
	o.Update(cam)
	assertVec(t, mgl32.Vec3{0, 0, 2}, cam.Position)
}

func TestOrbitPan(t *testing.T) {
	cam := NewPerspective(90, 1, DefaultNear, DefaultFar)
	o := NewOrbit()
	// Pointer moves right by a tenth of the viewport height: the view is 10 units tall at the
	// target, so the camera slides one unit left.
	o.Pan(0.1, 0)
	o.Update(cam)
	assertVec(t, mgl32.Vec3{-1, 0, 5}, cam.Position)
	assertVec(t, mgl32.Vec3{-1, 0, 0}, cam.Target)

	o.Pan(0, 0.2)
	o.Update(cam)
	assertVec(t, mgl32.Vec3{-1, 2, 5}, cam.Position)
	assertVec(t, mgl32.Vec3{-1, 2, 0}, cam.Target)
}
