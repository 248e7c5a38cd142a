package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
)

// Selection is the set of currently selected Objects plus the group node that holds them.
// Selected roots are re-parented under the group, whose origin is kept at the centroid of
// the members so a transform widget attached to the group pivots around their center.
//
// Members are ordered by selection time and never repeat. The group is visible exactly when
// the selection is non-empty.
type Selection struct {
	space   *graph.Node // scene-space parent members return to
	group   *graph.Node
	objects []*Object
}

func newSelection(space *graph.Node) *Selection {
	s := &Selection{space: space, group: graph.NewNode("selection")}
	space.Add(s.group)
	s.updateDisplay()
	return s
}

// Contains reports whether obj is selected.
func (s *Selection) Contains(obj *Object) bool {
	return s.indexOf(obj) >= 0
}

func (s *Selection) indexOf(obj *Object) int {
	for i, o := range s.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Add selects obj. Adding an already selected object changes nothing. The object's root
// moves under the group with its world transform preserved.
func (s *Selection) Add(obj *Object) {
	if obj == nil || s.Contains(obj) {
		return
	}
	s.objects = append(s.objects, obj)
	graph.Reparent(obj.root, obj.root.Parent(), s.group)
	s.updateDisplay()
}

// Remove deselects obj, returning its root to scene space with its world transform
// preserved. Removing an object that is not selected changes nothing.
func (s *Selection) Remove(obj *Object) {
	i := s.indexOf(obj)
	if i < 0 {
		return
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	graph.Reparent(obj.root, s.group, s.space)
	s.updateDisplay()
}

// Toggle selects obj if it is not selected and deselects it otherwise.
func (s *Selection) Toggle(obj *Object) {
	if s.Contains(obj) {
		s.Remove(obj)
		return
	}
	s.Add(obj)
}

// Clear deselects every object, one at a time in selection order.
func (s *Selection) Clear() {
	for len(s.objects) > 0 {
		s.Remove(s.objects[0])
	}
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.objects) == 0
}

// Len returns the number of selected objects.
func (s *Selection) Len() int {
	return len(s.objects)
}

// Objects returns the selected objects in selection order.
func (s *Selection) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Group returns the node the selected roots are parented to.
func (s *Selection) Group() *graph.Node {
	return s.group
}

// Pivot returns the group origin. While the selection is non-empty this is the centroid
// of the members; once emptied it keeps its last value.
func (s *Selection) Pivot() mgl32.Vec3 {
	return s.group.Position
}

// Visible reports whether the group is shown.
func (s *Selection) Visible() bool {
	return s.group.Visible
}

// updateDisplay syncs group visibility with membership and moves the pivot to the members'
// centroid. Members are detached to scene space, the centroid of their scene-space positions
// is taken, the group is reset to that point, and the members are attached again. Each
// member keeps its world transform throughout. The group's own rotation and scale (left by
// a rotate or scale drag) are reset to identity here.
func (s *Selection) updateDisplay() {
	s.group.Visible = !s.Empty()
	if s.Empty() {
		return
	}
	roots := make([]*graph.Node, len(s.objects))
	for i, o := range s.objects {
		roots[i] = o.root
		graph.Reparent(o.root, s.group, s.space)
	}
	s.group.Position = graph.CentroidOf(roots...)
	s.group.Rotation = mgl32.QuatIdent()
	s.group.Scale = mgl32.Vec3{1, 1, 1}
	for _, r := range roots {
		graph.Reparent(r, s.space, s.group)
	}
}
