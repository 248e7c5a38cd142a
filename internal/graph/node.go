package graph

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/shape"
)

// MeshKind says how a Mesh is drawn and picked: as filled triangles or as line segments.
type MeshKind int

const (
	// Solid meshes are drawn shaded and picked by ray/triangle tests.
	Solid MeshKind = iota
	// Lines meshes are drawn as segments and picked by ray/segment distance.
	Lines
)

// Mesh is the drawable payload of a Node. For Solid meshes Geometry holds the triangles;
// for Lines meshes Segments holds the line list in the node's local space.
type Mesh struct {
	Kind     MeshKind
	Geometry *shape.Geometry
	Segments []shape.Segment
	Color    color.RGBA
}

// Node is one element of the scene graph: a TRS transform, an optional mesh and an ordered
// list of children. A node has at most one parent; adding it to another node moves it.
// The zero value is not ready to use; call NewNode.
type Node struct {
	Name     string
	Tag      string // marker used by FindTagged, e.g. the selectable-root tag
	Visible  bool
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Mesh     *Mesh

	parent   *Node
	children []*Node
}

// NewNode returns a visible node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Visible:  true,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Parent returns the node's parent, or nil for a detached node or a graph root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Add appends child to n's children. If child already has a parent it is removed from it
// first, so a node is never listed under two parents. Adding a node to itself is ignored.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// LocalMatrix returns the node transform relative to its parent, composed as T * R * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := n.Rotation.Normalize().Mat4()
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the node transform relative to the graph root.
// World matrices are not cached; graphs here are a few dozen nodes deep at most.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in root space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// SetFromMatrix sets Position, Rotation and Scale from an affine matrix. Shear, which can
// appear when a rotated child sits under a non-uniformly scaled parent, is discarded.
func (n *Node) SetFromMatrix(m mgl32.Mat4) {
	n.Position, n.Rotation, n.Scale = Decompose(m)
}

// Walk visits n and its descendants in pre-order. When fn returns false the children of the
// visited node are skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
