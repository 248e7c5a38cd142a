package graph

import "github.com/go-gl/mathgl/mgl32"

// FindTagged walks the ownership chain upward from node (node, its parent, and so on) and
// returns the first node whose Tag equals tag. The boolean is false when the chain ends
// without a match; that is an ordinary outcome, not an error.
func FindTagged(node *Node, tag string) (*Node, bool) {
	for n := node; n != nil; n = n.parent {
		if n.Tag == tag {
			return n, true
		}
	}
	return nil, false
}

// Centroid returns the arithmetic mean of the positions of container's children, expressed
// in container's local space. A container with no children yields the zero vector.
func Centroid(container *Node) mgl32.Vec3 {
	if container == nil {
		return mgl32.Vec3{}
	}
	return CentroidOf(container.children...)
}

// CentroidOf returns the mean of the given nodes' local positions, or the zero vector for
// an empty list.
func CentroidOf(nodes ...*Node) mgl32.Vec3 {
	var sum mgl32.Vec3
	if len(nodes) == 0 {
		return sum
	}
	for _, n := range nodes {
		sum = sum.Add(n.Position)
	}
	return sum.Mul(1 / float32(len(nodes)))
}
