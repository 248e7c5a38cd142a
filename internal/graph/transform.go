package graph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Decompose splits an affine matrix into translation, rotation and scale such that
// m == T * R * S (up to shear). A negative determinant is folded into the X scale.
func Decompose(m mgl32.Mat4) (pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	pos = m.Col(3).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Mat3().Det() < 0 {
		sx = -sx
	}
	scale = mgl32.Vec3{sx, sy, sz}

	const eps = 1e-8
	if math32.Abs(sx) < eps || math32.Abs(sy) < eps || math32.Abs(sz) < eps {
		return pos, mgl32.QuatIdent(), scale
	}
	var r mgl32.Mat4
	r.SetCol(0, m.Col(0).Mul(1/sx))
	r.SetCol(1, m.Col(1).Mul(1/sy))
	r.SetCol(2, m.Col(2).Mul(1/sz))
	r.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	rot = mgl32.Mat4ToQuat(r).Normalize()
	return pos, rot, scale
}

// Reparent moves node from one parent to another while keeping its world transform, the
// attach/detach pattern used to group and ungroup selected objects. The node's world matrix
// is captured before removal and converted to the new parent's local space after insertion.
//
// from is the expected current parent; when node is parented elsewhere it is still moved.
// A nil to leaves the node where it is.
func Reparent(node, from, to *Node) {
	if node == nil || to == nil || node == to {
		return
	}
	world := node.WorldMatrix()
	if from != nil && node.parent == from {
		from.Remove(node)
	}
	to.Add(node)
	local := to.WorldMatrix().Inv().Mul4(world)
	node.SetFromMatrix(local)
}
