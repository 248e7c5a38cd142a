package graph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line from Origin along Direction. Direction is expected to be unit length
// for distances to be in world units; NewRay normalizes it.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns the ray mapped by m. The direction is not renormalized, so parameters
// along the transformed ray equal parameters along the original one.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: mgl32.TransformNormal(r.Direction, m),
	}
}

// IntersectTriangle returns the ray parameter of the hit with triangle abc. Both faces
// count as hits. The boolean is false when the ray misses or runs parallel to the plane.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < 1e-12 {
		return 0, false
	}
	inv := 1 / det
	tv := r.Origin.Sub(a)
	u := tv.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := tv.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := edge2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// ClosestToSegment returns the squared distance between the ray and segment v0-v1, the ray
// parameter of the closest point and the closest point on the segment.
func (r Ray) ClosestToSegment(v0, v1 mgl32.Vec3) (distSq, s float32, onSegment mgl32.Vec3) {
	d := r.Direction
	e := v1.Sub(v0)
	w := r.Origin.Sub(v0)
	a := d.Dot(d)
	ee := e.Dot(e)
	f := e.Dot(w)
	c := d.Dot(w)

	var t float32
	switch {
	case a == 0:
		s = 0
		t = clamp01(safeDiv(f, ee))
	case ee < 1e-12:
		t = 0
		s = max(0, -c/a)
	default:
		b := d.Dot(e)
		denom := a*ee - b*b
		if denom != 0 {
			s = max(0, (b*f-c*ee)/denom)
		}
		t = (b*s + f) / ee
		if t < 0 {
			t = 0
			s = max(0, -c/a)
		} else if t > 1 {
			t = 1
			s = max(0, (b-c)/a)
		}
	}
	onRay := r.At(s)
	onSegment = v0.Add(e.Mul(t))
	diff := onRay.Sub(onSegment)
	return diff.Dot(diff), s, onSegment
}

// ClosestToLine returns the ray parameter s and the line parameter t of the closest points
// between the ray and the infinite line p + t*dir. The boolean is false when the two are
// parallel. s is not clamped, so callers can tell when the closest point is behind the origin.
func (r Ray) ClosestToLine(p, dir mgl32.Vec3) (s, t float32, ok bool) {
	d := r.Direction
	w := r.Origin.Sub(p)
	a := d.Dot(d)
	b := d.Dot(dir)
	c := dir.Dot(dir)
	dd := d.Dot(w)
	e := dir.Dot(w)
	denom := a*c - b*b
	if math32.Abs(denom) < 1e-10 {
		return 0, 0, false
	}
	s = (b*e - c*dd) / denom
	t = (a*e - b*dd) / denom
	return s, t, true
}

// IntersectPlane returns the parameter where the ray crosses the plane through point with
// the given normal. The boolean is false for parallel rays or hits behind the origin.
func (r Ray) IntersectPlane(point, normal mgl32.Vec3) (float32, bool) {
	denom := normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-10 {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
