// Package gizmo implements the transform widget: axis handles drawn around an attached node
// that translate, rotate or scale it when dragged.
//
// The widget is pure geometry. Callers feed it pick rays from the camera (Pick, Begin, Drag)
// and draw the segments returned by Handles; it never touches the GPU.
package gizmo

import (
	"fmt"
	"image/color"
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/camera"
	"playground/internal/graph"
	"playground/internal/shape"
)

// Mode selects which transform a drag applies.
type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range []Mode{Translate, Rotate, Scale} {
		if m.String() == name {
			return m, nil
		}
	}
	return Translate, fmt.Errorf("unknown gizmo mode %q (want translate, rotate or scale)", name)
}

// Axis identifies a handle.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

var axes = [...]Axis{AxisX, AxisY, AxisZ}

// Vector returns the unit vector of the axis, or zero for AxisNone.
func (a Axis) Vector() mgl32.Vec3 {
	switch a {
	case AxisX:
		return mgl32.Vec3{1, 0, 0}
	case AxisY:
		return mgl32.Vec3{0, 1, 0}
	case AxisZ:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "none"
}

var (
	axisColors = map[Axis]color.RGBA{
		AxisX: {R: 0xff, G: 0x30, B: 0x30, A: 0xff},
		AxisY: {R: 0x30, G: 0xd0, B: 0x30, A: 0xff},
		AxisZ: {R: 0x30, G: 0x60, B: 0xff, A: 0xff},
	}
	activeColor = color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff}
)

const (
	// DefaultSize scales the handles; 1 gives roughly a quarter of the view height.
	DefaultSize = 1
	// DefaultPickTolerance is the pick distance as a fraction of the handle length.
	DefaultPickTolerance = 0.08

	circleSegments = 48
	minScale       = 1e-3
)

// Handle is one drawable axis handle in world space.
type Handle struct {
	Axis     Axis
	Segments []shape.Segment
	Color    color.RGBA
	Active   bool
}

type dragState struct {
	axis       Axis
	dir        mgl32.Vec3 // world axis the drag works along or around
	pivot      mgl32.Vec3
	startParam float32
	startVec   mgl32.Vec3
	startRot   mgl32.Quat
	startScale mgl32.Vec3
}

// Widget is the transform widget. The zero value is not usable; call New.
type Widget struct {
	Size          float32
	PickTolerance float32

	mode    Mode
	visible bool
	node    *graph.Node
	length  float32
	hover   Axis

	dragging bool
	drag     dragState
}

// New returns a hidden, detached widget in translate mode.
func New() *Widget {
	return &Widget{
		Size:          DefaultSize,
		PickTolerance: DefaultPickTolerance,
		length:        1,
	}
}

// Attach makes the widget manipulate node. A drag on a previously attached node ends.
func (w *Widget) Attach(node *graph.Node) {
	if w.node != node {
		w.End()
	}
	w.node = node
}

// Detach releases the attached node and ends any drag.
func (w *Widget) Detach() {
	w.End()
	w.node = nil
	w.hover = AxisNone
}

// Attached returns the node being manipulated, or nil.
func (w *Widget) Attached() *graph.Node { return w.node }

func (w *Widget) Visible() bool { return w.visible }

func (w *Widget) SetVisible(v bool) {
	w.visible = v
	if !v {
		w.End()
	}
}

func (w *Widget) Mode() Mode { return w.mode }

// SetMode switches the transform mode. It is ignored while dragging.
func (w *Widget) SetMode(m Mode) {
	if !w.dragging {
		w.mode = m
	}
}

// HandleLength returns the current world length of the axis handles (and the radius of the
// rotate rings).
func (w *Widget) HandleLength() float32 { return w.length }

// Update resizes the handles so they keep a constant size on screen as seen from cam.
func (w *Widget) Update(cam *camera.Perspective) {
	if w.node == nil || cam == nil {
		return
	}
	dist := w.node.WorldPosition().Sub(cam.Position).Len()
	factor := dist * min(1.9*math32.Tan(mgl32.DegToRad(cam.Fov)/2), 7)
	if factor <= 0 {
		return
	}
	w.length = factor * w.Size / 4
}

func (w *Widget) active() bool {
	return w.visible && w.node != nil
}

// Pick returns the handle the ray passes over, or AxisNone. Translate and scale handles are
// segments from the pivot; rotate handles are rings around it.
func (w *Widget) Pick(ray graph.Ray) Axis {
	if !w.active() {
		return AxisNone
	}
	pivot := w.node.WorldPosition()
	tol := w.PickTolerance * w.length
	best, bestScore := AxisNone, float32(math.MaxFloat32)
	for _, a := range axes {
		dir := w.axisDir(a)
		switch w.mode {
		case Translate, Scale:
			distSq, _, _ := ray.ClosestToSegment(pivot, pivot.Add(dir.Mul(w.length)))
			if distSq <= tol*tol && distSq < bestScore {
				best, bestScore = a, distSq
			}
		case Rotate:
			t, ok := ray.IntersectPlane(pivot, dir)
			if !ok {
				continue
			}
			off := math32.Abs(ray.At(t).Sub(pivot).Len() - w.length)
			if off <= tol && t < bestScore {
				best, bestScore = a, t
			}
		}
	}
	return best
}

// SetHover highlights the given handle when drawn.
func (w *Widget) SetHover(a Axis) { w.hover = a }

// Hover returns the highlighted handle.
func (w *Widget) Hover() Axis { return w.hover }

// axisDir returns the world direction of a handle. Translate and rotate work on world axes,
// scale on the node's own axes.
func (w *Widget) axisDir(a Axis) mgl32.Vec3 {
	v := a.Vector()
	if w.mode != Scale || w.node == nil {
		return v
	}
	d := mgl32.TransformNormal(v, w.node.WorldMatrix())
	if d.Len() == 0 {
		return v
	}
	return d.Normalize()
}

// Begin starts dragging handle a with the pointer ray. It reports false when the drag
// cannot start: nothing attached, no axis, or a ray that does not meet the handle.
func (w *Widget) Begin(a Axis, ray graph.Ray) bool {
	if !w.active() || a == AxisNone {
		return false
	}
	d := dragState{
		axis:       a,
		dir:        w.axisDir(a),
		pivot:      w.node.WorldPosition(),
		startRot:   w.node.Rotation,
		startScale: w.node.Scale,
	}
	switch w.mode {
	case Translate, Scale:
		s, t, ok := ray.ClosestToLine(d.pivot, d.dir)
		if !ok || s < 0 {
			return false
		}
		if w.mode == Scale && math32.Abs(t) < 1e-6 {
			return false
		}
		d.startParam = t
	case Rotate:
		t, ok := ray.IntersectPlane(d.pivot, d.dir)
		if !ok {
			return false
		}
		d.startVec = ray.At(t).Sub(d.pivot)
		if d.startVec.Len() == 0 {
			return false
		}
	}
	w.drag = d
	w.dragging = true
	w.hover = a
	return true
}

// Drag applies the transform implied by the new pointer ray. It reports whether the node
// changed; rays that miss the drag line or plane leave it as is.
func (w *Widget) Drag(ray graph.Ray) bool {
	if !w.dragging || w.node == nil {
		return false
	}
	d := &w.drag
	switch w.mode {
	case Translate:
		s, t, ok := ray.ClosestToLine(d.pivot, d.dir)
		if !ok || s < 0 {
			return false
		}
		world := d.pivot.Add(d.dir.Mul(t - d.startParam))
		w.node.Position = w.toParent(world)
	case Scale:
		s, t, ok := ray.ClosestToLine(d.pivot, d.dir)
		if !ok || s < 0 {
			return false
		}
		i := int(d.axis) - 1
		v := d.startScale[i] * t / d.startParam
		switch {
		case v >= 0 && v < minScale:
			v = minScale
		case v < 0 && v > -minScale:
			v = -minScale
		}
		scale := d.startScale
		scale[i] = v
		w.node.Scale = scale
	case Rotate:
		t, ok := ray.IntersectPlane(d.pivot, d.dir)
		if !ok {
			return false
		}
		cur := ray.At(t).Sub(d.pivot)
		if cur.Len() == 0 {
			return false
		}
		angle := math32.Atan2(d.dir.Dot(d.startVec.Cross(cur)), d.startVec.Dot(cur))
		axis := d.dir
		if p := w.node.Parent(); p != nil {
			axis = mgl32.TransformNormal(axis, p.WorldMatrix().Inv())
			if axis.Len() == 0 {
				return false
			}
			axis = axis.Normalize()
		}
		w.node.Rotation = mgl32.QuatRotate(angle, axis).Mul(d.startRot).Normalize()
	}
	return true
}

// toParent maps a world position of the node's origin into its parent's space.
func (w *Widget) toParent(world mgl32.Vec3) mgl32.Vec3 {
	p := w.node.Parent()
	if p == nil {
		return world
	}
	return mgl32.TransformCoordinate(world, p.WorldMatrix().Inv())
}

// End finishes the current drag, if any.
func (w *Widget) End() {
	w.dragging = false
	w.drag = dragState{}
}

// Dragging reports whether a drag is in progress.
func (w *Widget) Dragging() bool { return w.dragging }

// DragAxis returns the axis being dragged, or AxisNone.
func (w *Widget) DragAxis() Axis {
	if !w.dragging {
		return AxisNone
	}
	return w.drag.axis
}

// Handles returns the world-space segments to draw for the current mode. It returns nil
// while the widget is hidden or detached.
func (w *Widget) Handles() []Handle {
	if !w.active() {
		return nil
	}
	pivot := w.node.WorldPosition()
	out := make([]Handle, 0, len(axes))
	for _, a := range axes {
		dir := w.axisDir(a)
		h := Handle{Axis: a, Color: axisColors[a]}
		if a == w.hover || a == w.DragAxis() {
			h.Active = true
			h.Color = activeColor
		}
		switch w.mode {
		case Translate:
			h.Segments = w.arrow(pivot, dir)
		case Scale:
			h.Segments = w.knob(pivot, dir)
		case Rotate:
			h.Segments = w.ring(pivot, dir)
		}
		out = append(out, h)
	}
	return out
}

// perpendiculars returns two unit vectors orthogonal to dir and to each other.
func perpendiculars(dir mgl32.Vec3) (u, v mgl32.Vec3) {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(ref)) > 0.9 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u = dir.Cross(ref).Normalize()
	v = dir.Cross(u).Normalize()
	return u, v
}

func (w *Widget) arrow(pivot, dir mgl32.Vec3) []shape.Segment {
	tip := pivot.Add(dir.Mul(w.length))
	base := pivot.Add(dir.Mul(w.length * 0.85))
	u, v := perpendiculars(dir)
	r := w.length * 0.05
	segs := []shape.Segment{{A: pivot, B: tip}}
	for _, side := range []mgl32.Vec3{u, u.Mul(-1), v, v.Mul(-1)} {
		segs = append(segs, shape.Segment{A: tip, B: base.Add(side.Mul(r))})
	}
	return segs
}

func (w *Widget) knob(pivot, dir mgl32.Vec3) []shape.Segment {
	end := pivot.Add(dir.Mul(w.length))
	u, v := perpendiculars(dir)
	r := w.length * 0.05
	c := [4]mgl32.Vec3{
		end.Add(u.Mul(r)).Add(v.Mul(r)),
		end.Add(u.Mul(r)).Sub(v.Mul(r)),
		end.Sub(u.Mul(r)).Sub(v.Mul(r)),
		end.Sub(u.Mul(r)).Add(v.Mul(r)),
	}
	segs := []shape.Segment{{A: pivot, B: end}}
	for i := range c {
		segs = append(segs, shape.Segment{A: c[i], B: c[(i+1)%len(c)]})
	}
	return segs
}

func (w *Widget) ring(pivot, dir mgl32.Vec3) []shape.Segment {
	u, v := perpendiculars(dir)
	segs := make([]shape.Segment, 0, circleSegments)
	point := func(i int) mgl32.Vec3 {
		a := 2 * math32.Pi * float32(i) / circleSegments
		return pivot.Add(u.Mul(w.length * math32.Cos(a))).Add(v.Mul(w.length * math32.Sin(a)))
	}
	for i := 0; i < circleSegments; i++ {
		segs = append(segs, shape.Segment{A: point(i), B: point(i + 1)})
	}
	return segs
}
