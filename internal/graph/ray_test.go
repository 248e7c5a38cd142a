package graph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectTriangle(t *testing.T) {
	r := NewRay(mgl32.Vec3{0.2, 0.2, 5}, mgl32.Vec3{0, 0, -1})
	a, b, c := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	d, ok := r.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 5, d, tol)

	// Back face counts too.
	d, ok = r.IntersectTriangle(a, c, b)
	require.True(t, ok)
	assert.InDelta(t, 5, d, tol)

	_, ok = NewRay(mgl32.Vec3{2, 2, 5}, mgl32.Vec3{0, 0, -1}).IntersectTriangle(a, b, c)
	assert.False(t, ok)
	_, ok = NewRay(mgl32.Vec3{0.2, 0.2, 5}, mgl32.Vec3{0, 0, 1}).IntersectTriangle(a, b, c)
	assert.False(t, ok, "triangle behind the origin")
}

func TestRayTransformKeepsParameter(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	m := mgl32.Translate3D(0, 0, 2).Mul4(mgl32.Scale3D(2, 2, 2))
	local := r.Transform(m.Inv())
	// A unit-square at local z=0 sits at world z=2, eight units from the origin.
	d, ok := local.IntersectTriangle(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}, mgl32.Vec3{0, 1, 0})
	require.True(t, ok)
	assert.InDelta(t, 8, d, tol)
}

func TestClosestToSegment(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	distSq, s, p := r.ClosestToSegment(mgl32.Vec3{-1, 0.5, 0}, mgl32.Vec3{1, 0.5, 0})
	assert.InDelta(t, 0.25, distSq, tol)
	assert.InDelta(t, 5, s, tol)
	assertVec(t, mgl32.Vec3{0, 0.5, 0}, p)

	// Segment entirely to the side: closest to an endpoint.
	distSq, _, p = r.ClosestToSegment(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{3, 0, 0})
	assert.InDelta(t, 4, distSq, tol)
	assertVec(t, mgl32.Vec3{2, 0, 0}, p)

	// Segment behind the origin: closest ray point is the origin itself.
	_, s, _ = r.ClosestToSegment(mgl32.Vec3{-1, 0, 9}, mgl32.Vec3{1, 0, 9})
	assert.InDelta(t, 0, s, tol)
}

func TestClosestToLineAndPlane(t *testing.T) {
	r := NewRay(mgl32.Vec3{3, 1, 5}, mgl32.Vec3{0, 0, -1})
	s, lt, ok := r.ClosestToLine(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 5, s, tol)
	assert.InDelta(t, 3, lt, tol)

	_, _, ok = r.ClosestToLine(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok)

	d, ok := r.IntersectPlane(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1})
	require.True(t, ok)
	assert.InDelta(t, 4, d, tol)
	_, ok = r.IntersectPlane(mgl32.Vec3{0, 0, 9}, mgl32.Vec3{0, 0, 1})
	assert.False(t, ok)
}
