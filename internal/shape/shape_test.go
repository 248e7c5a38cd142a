package shape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBox(t *testing.T) {
	g := Box(1, 2, 3)
	assert.Equal(t, 12, g.TriangleCount())
	lo, hi := g.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -1, -1.5}, lo)
	assert.Equal(t, mgl32.Vec3{0.5, 1, 1.5}, hi)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, g.Extent)
}

func TestBoxEdges(t *testing.T) {
	edges := Edges(Box(1, 1, 1), DefaultEdgeThreshold)
	require.Len(t, edges, 12)
	for _, e := range edges {
		// Every box edge runs along one axis and has unit length.
		assert.InDelta(t, 1, e.B.Sub(e.A).Len(), 1e-5)
	}
}

func TestPlaneEdges(t *testing.T) {
	// No neighbours: the four border edges stay, the diagonal is shared by coplanar faces.
	assert.Len(t, Edges(Plane(2, 2), DefaultEdgeThreshold), 4)
}

func TestSphere(t *testing.T) {
	g := Sphere(0.5, 8, 6)
	for _, p := range g.Positions {
		assert.InDelta(t, 0.5, p.Len(), 1e-5)
	}
	// Two pole rows emit one triangle per segment, the rest two.
	assert.Equal(t, 8*(2*6-2), g.TriangleCount())
	edges := Edges(g, DefaultEdgeThreshold)
	assert.NotEmpty(t, edges)
	for _, e := range edges {
		assert.NotEqual(t, keyOf(e.A), keyOf(e.B))
	}
}

func TestCylinderEdgesIncludeRims(t *testing.T) {
	g := Cylinder(0.5, 1, 8)
	edges := Edges(g, DefaultEdgeThreshold)
	// 8 segments on each rim and 8 vertical creases.
	assert.Len(t, edges, 24)
}

func TestEdgesNil(t *testing.T) {
	assert.Nil(t, Edges(nil, 1))
}

func TestBuild(t *testing.T) {
	g, err := Build(Def{Type: "cube"})
	require.NoError(t, err)
	assert.Equal(t, KindBox, g.Kind)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, g.Extent)

	g, err = Build(Def{Type: "Sphere", Size: [3]float32{2}})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, g.Extent)

	g, err = Build(Def{Type: "cylinder", Segments: 5})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, g.Extent)

	_, err = Build(Def{Type: "torus"})
	assert.Error(t, err)
}
