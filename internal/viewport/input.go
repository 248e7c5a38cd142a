package viewport

import (
	"github.com/chewxy/math32"

	"playground/internal/gizmo"
)

// Button is a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type gestureState int

const (
	idle gestureState = iota
	pressed
	orbiting
	panning
	widgetDrag
)

// gesture tracks one press-move-release sequence. Only the button that started it can end
// it; presses of other buttons meanwhile are ignored.
type gesture struct {
	state          gestureState
	button         Button
	startX, startY float32
	lastX, lastY   float32
}

// PointerDown starts a gesture. A left press over a widget handle begins a widget drag;
// any other press waits to see whether it becomes a click or a camera move.
func (v *Viewport) PointerDown(x, y float32, b Button) {
	if v.gesture.state != idle {
		return
	}
	v.gesture = gesture{state: pressed, button: b, startX: x, startY: y, lastX: x, lastY: y}
	if b != ButtonLeft || !v.widget.Visible() {
		return
	}
	ray := v.PickRay(x, y)
	if axis := v.widget.Pick(ray); axis != gizmo.AxisNone && v.widget.Begin(axis, ray) {
		v.gesture.state = widgetDrag
		v.log.Debug("widget drag started", "mode", v.widget.Mode(), "axis", axis)
	}
}

// PointerMove advances the current gesture. With no button held it updates the widget's
// hover highlight.
func (v *Viewport) PointerMove(x, y float32) {
	g := &v.gesture
	switch g.state {
	case idle:
		v.widget.SetHover(v.widget.Pick(v.PickRay(x, y)))
		return
	case widgetDrag:
		v.widget.Drag(v.PickRay(x, y))
	case pressed:
		dx, dy := x-g.startX, y-g.startY
		if math32.Sqrt(dx*dx+dy*dy) <= v.clickSlop {
			return
		}
		if g.button == ButtonLeft {
			g.state = orbiting
		} else {
			g.state = panning
		}
		v.moveCamera(x-g.lastX, y-g.lastY)
	case orbiting, panning:
		v.moveCamera(x-g.lastX, y-g.lastY)
	}
	g.lastX, g.lastY = x, y
}

func (v *Viewport) moveCamera(dx, dy float32) {
	if v.height <= 0 {
		return
	}
	h := float32(v.height)
	switch v.gesture.state {
	case orbiting:
		v.orbit.Rotate(-2*math32.Pi*dx/h*v.rotateSpeed, -2*math32.Pi*dy/h*v.rotateSpeed)
	case panning:
		v.orbit.Pan(dx/h, dy/h)
	}
}

// PointerUp ends the gesture started by b. A press released without moving is a click: the
// selection follows the click and the widget follows the selection.
func (v *Viewport) PointerUp(x, y float32, b Button) {
	g := v.gesture
	if g.state == idle || g.button != b {
		return
	}
	v.gesture = gesture{}
	switch g.state {
	case widgetDrag:
		v.widget.End()
		v.log.Debug("widget drag ended", "pivot", v.scene.Selection().Pivot())
	case pressed:
		if b == ButtonLeft {
			v.SelectSceneObject(Click{X: x, Y: y})
			v.UpdateTransformWidget()
		}
	}
}

// Wheel dollies the camera. Positive deltas (wheel forward) move it closer.
func (v *Viewport) Wheel(delta float32) {
	switch {
	case delta > 0:
		v.orbit.Dolly(v.zoomStep)
	case delta < 0:
		v.orbit.Dolly(1 / v.zoomStep)
	}
}
