package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind names a shape family. The names match the console and config vocabulary.
type Kind string

const (
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindCylinder Kind = "cylinder"
	KindPlane    Kind = "plane"
)

// Default tessellation, matching the mesh resolution used for drawing so picking and
// rendering agree on the silhouette.
const (
	DefaultSphereWidthSegments  = 16
	DefaultSphereHeightSegments = 16
	DefaultCylinderSegments     = 16
)

// Segment is a line segment in a node's local space.
type Segment struct {
	A, B mgl32.Vec3
}

// Geometry is an indexed triangle list centered on the origin. Extent is the full size of
// the shape along X, Y and Z (e.g. 2r for a sphere), used to scale unit GPU meshes.
type Geometry struct {
	Kind      Kind
	Extent    mgl32.Vec3
	Positions []mgl32.Vec3
	Indices   []uint32
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c mgl32.Vec3) {
	return g.Positions[g.Indices[3*i]], g.Positions[g.Indices[3*i+1]], g.Positions[g.Indices[3*i+2]]
}

// Bounds returns the axis-aligned bounding box of the positions.
func (g *Geometry) Bounds() (lo, hi mgl32.Vec3) {
	if len(g.Positions) == 0 {
		return
	}
	lo, hi = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

// Box returns a box of the given width (X), height (Y) and depth (Z). Each face has its own
// four vertices so face normals stay flat.
func Box(w, h, d float32) *Geometry {
	g := &Geometry{Kind: KindBox, Extent: mgl32.Vec3{w, h, d}}
	hx, hy, hz := w/2, h/2, d/2
	faces := [6][4]mgl32.Vec3{
		{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}},     // +X
		{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}, // -X
		{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}},     // +Y
		{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}, // -Y
		{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}},     // +Z
		{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}, // -Z
	}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		g.Positions = append(g.Positions, f[:]...)
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Sphere returns a UV sphere. widthSegments runs around the Y axis, heightSegments from
// pole to pole. The seam and pole vertices are duplicated; degenerate pole triangles are
// not emitted.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	g := &Geometry{Kind: KindSphere, Extent: mgl32.Vec3{2 * radius, 2 * radius, 2 * radius}}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			p := mgl32.Vec3{
				-radius * math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				radius * math32.Cos(v*math32.Pi),
				radius * math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			row[ix] = uint32(len(g.Positions))
			g.Positions = append(g.Positions, p)
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// Cylinder returns a closed cylinder along Y, centered on the origin.
func Cylinder(radius, height float32, radialSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	g := &Geometry{Kind: KindCylinder, Extent: mgl32.Vec3{2 * radius, height, 2 * radius}}
	hy := height / 2
	ring := func(y float32) []uint32 {
		idx := make([]uint32, radialSegments+1)
		for i := 0; i <= radialSegments; i++ {
			theta := float32(i) / float32(radialSegments) * 2 * math32.Pi
			idx[i] = uint32(len(g.Positions))
			g.Positions = append(g.Positions, mgl32.Vec3{radius * math32.Sin(theta), y, radius * math32.Cos(theta)})
		}
		return idx
	}
	top, bottom := ring(hy), ring(-hy)
	for i := 0; i < radialSegments; i++ {
		a, b, c, d := top[i], bottom[i], bottom[i+1], top[i+1]
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}
	// Caps get their own rim vertices so the side normals don't bleed into them.
	for _, lid := range []struct {
		y    float32
		flip bool
	}{{hy, false}, {-hy, true}} {
		center := uint32(len(g.Positions))
		g.Positions = append(g.Positions, mgl32.Vec3{0, lid.y, 0})
		rim := ring(lid.y)
		for i := 0; i < radialSegments; i++ {
			if lid.flip {
				g.Indices = append(g.Indices, center, rim[i+1], rim[i])
			} else {
				g.Indices = append(g.Indices, center, rim[i], rim[i+1])
			}
		}
	}
	return g
}

// Plane returns a single quad in the XZ plane facing +Y.
func Plane(w, d float32) *Geometry {
	hx, hz := w/2, d/2
	return &Geometry{
		Kind:   KindPlane,
		Extent: mgl32.Vec3{w, 0, d},
		Positions: []mgl32.Vec3{
			{-hx, 0, -hz}, {-hx, 0, hz}, {hx, 0, hz}, {hx, 0, -hz},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
