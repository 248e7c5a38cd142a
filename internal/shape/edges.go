package shape

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultEdgeThreshold is the crease angle, in degrees, above which a shared edge is kept.
const DefaultEdgeThreshold = 1

// hashPrecision merges vertices closer than 1e-4 so seams and duplicated rims count as shared.
const hashPrecision = 1e4

type vertexKey [3]int32

func keyOf(p mgl32.Vec3) vertexKey {
	return vertexKey{
		int32(math32.Floor(p[0]*hashPrecision + 0.5)),
		int32(math32.Floor(p[1]*hashPrecision + 0.5)),
		int32(math32.Floor(p[2]*hashPrecision + 0.5)),
	}
}

type edgeKey [2]vertexKey

type halfEdge struct {
	a, b   mgl32.Vec3
	normal mgl32.Vec3
	open   bool
}

// Edges returns the outline segments of g for wireframe display: every boundary edge plus
// every edge shared by two faces whose normals differ by more than thresholdDeg degrees.
// Flat faces split into triangles therefore show no diagonals. Output order follows the
// triangle order of g.
func Edges(g *Geometry, thresholdDeg float32) []Segment {
	if g == nil {
		return nil
	}
	thresholdDot := math32.Cos(mgl32.DegToRad(thresholdDeg))

	index := make(map[edgeKey]int)
	var edges []halfEdge
	var out []Segment

	for t := 0; t < g.TriangleCount(); t++ {
		a, b, c := g.Triangle(t)
		corners := [3]mgl32.Vec3{a, b, c}
		keys := [3]vertexKey{keyOf(a), keyOf(b), keyOf(c)}
		if keys[0] == keys[1] || keys[1] == keys[2] || keys[2] == keys[0] {
			continue
		}
		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()

		for j := 0; j < 3; j++ {
			next := (j + 1) % 3
			fwd := edgeKey{keys[j], keys[next]}
			rev := edgeKey{keys[next], keys[j]}
			if i, ok := index[rev]; ok && edges[i].open {
				if normal.Dot(edges[i].normal) <= thresholdDot {
					out = append(out, Segment{A: edges[i].a, B: edges[i].b})
				}
				edges[i].open = false
				continue
			}
			if _, ok := index[fwd]; ok {
				continue
			}
			index[fwd] = len(edges)
			edges = append(edges, halfEdge{a: corners[j], b: corners[next], normal: normal, open: true})
		}
	}
	for _, e := range edges {
		if e.open {
			out = append(out, Segment{A: e.a, B: e.b})
		}
	}
	return out
}
