package viewport

import (
	"playground/internal/camera"
	"playground/internal/gizmo"
	"playground/internal/graph"
	"playground/internal/scene"
)

// Frame is what a pass sees when asked to render: the scene, the camera it is viewed
// through, the transform widget and the current drawing size.
type Frame struct {
	Scene  *scene.Scene
	Camera *camera.Perspective
	Widget *gizmo.Widget
	Width  int
	Height int
}

// Pass is one stage of the post-processing pipeline. Passes that own buffers size them in
// SetSize; every pass of a pipeline is resized in the same call.
type Pass interface {
	SetSize(width, height int)
	Render(f Frame)
}

// OutlineStage receives the nodes to outline. The viewport sets it once per frame.
type OutlineStage interface {
	SetSelectedObjects(nodes []*graph.Node)
}

// Pipeline is the ordered list of passes run each frame. Outline, when set, is usually one
// of the passes as well.
type Pipeline struct {
	Passes  []Pass
	Outline OutlineStage
}
