package scene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
)

// DefaultLineThreshold is how close, in world units, a ray must pass to a line segment to
// count as hitting it.
const DefaultLineThreshold = 0.05

// Intersection is one ray hit. Distance is measured from the ray origin in world units.
// Index is the triangle index for solid meshes and the segment index for line meshes.
type Intersection struct {
	Distance float32
	Point    mgl32.Vec3
	Node     *graph.Node
	Index    int
}

// Raycaster intersects a ray with mesh nodes. Hits closer than Near or farther than Far are
// dropped.
type Raycaster struct {
	Ray           graph.Ray
	Near, Far     float32
	LineThreshold float32
}

// NewRaycaster returns a raycaster with an unbounded range.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math.MaxFloat32, LineThreshold: DefaultLineThreshold}
}

// Set aims the raycaster. direction is normalized.
func (rc *Raycaster) Set(origin, direction mgl32.Vec3) {
	rc.Ray = graph.NewRay(origin, direction)
}

// IntersectNodes tests the given nodes (and their descendants when recursive) and returns
// every hit sorted nearest first. Hits at equal distance keep traversal order. A solid mesh
// reports only its nearest triangle; a line mesh reports every segment passing within
// LineThreshold. Invisible nodes and everything beneath them are skipped.
func (rc *Raycaster) IntersectNodes(nodes []*graph.Node, recursive bool) []Intersection {
	var hits []Intersection
	for _, n := range nodes {
		if recursive {
			n.Walk(func(c *graph.Node) bool {
				if !c.Visible {
					return false
				}
				hits = rc.intersect(c, hits)
				return true
			})
		} else if n.Visible {
			hits = rc.intersect(n, hits)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (rc *Raycaster) intersect(n *graph.Node, hits []Intersection) []Intersection {
	if n.Mesh == nil {
		return hits
	}
	world := n.WorldMatrix()
	switch n.Mesh.Kind {
	case graph.Solid:
		if n.Mesh.Geometry == nil {
			return hits
		}
		// Unnormalized local direction keeps the local parameter equal to world distance.
		local := rc.Ray.Transform(world.Inv())
		g := n.Mesh.Geometry
		best := Intersection{Distance: math.MaxFloat32, Index: -1}
		for i := 0; i < g.TriangleCount(); i++ {
			a, b, c := g.Triangle(i)
			t, ok := local.IntersectTriangle(a, b, c)
			if !ok || t < rc.Near || t > rc.Far || t >= best.Distance {
				continue
			}
			best = Intersection{Distance: t, Point: rc.Ray.At(t), Node: n, Index: i}
		}
		if best.Index >= 0 {
			hits = append(hits, best)
		}
	case graph.Lines:
		threshSq := rc.LineThreshold * rc.LineThreshold
		for i, seg := range n.Mesh.Segments {
			a := mgl32.TransformCoordinate(seg.A, world)
			b := mgl32.TransformCoordinate(seg.B, world)
			distSq, s, _ := rc.Ray.ClosestToSegment(a, b)
			if distSq > threshSq || s < rc.Near || s > rc.Far {
				continue
			}
			hits = append(hits, Intersection{Distance: s, Point: rc.Ray.At(s), Node: n, Index: i})
		}
	}
	return hits
}
