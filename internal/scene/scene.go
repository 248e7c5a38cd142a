package scene

import (
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
)

const (
	// DefaultGridSize and DefaultGridDivisions describe the helper grid on the XZ plane.
	DefaultGridSize      = 5
	DefaultGridDivisions = 10
)

// DefaultBackground is the clear color of the viewport.
var DefaultBackground = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff}

// Scene owns every Object in the playground, the Selection and the helper grid. Its root
// node is scene space: object roots live directly under it unless selected, in which case
// they live under the selection group (itself a child of the root).
//
// A Scene is not safe for concurrent use. It is mutated from input handling and read by
// the frame loop, both on the same thread.
type Scene struct {
	root       *graph.Node
	grid       *graph.Node
	selection  *Selection
	objects    []*Object
	byRoot     map[*graph.Node]*Object
	raycaster  *Raycaster
	background color.RGBA
	log        *slog.Logger
}

// Options configures New. Zero fields take the package defaults.
type Options struct {
	GridSize      float32
	GridDivisions int
	Background    color.RGBA
	Logger        *slog.Logger
}

// New returns an empty scene with its grid and an empty selection.
func New(opts Options) *Scene {
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	if opts.GridDivisions <= 0 {
		opts.GridDivisions = DefaultGridDivisions
	}
	if opts.Background == (color.RGBA{}) {
		opts.Background = DefaultBackground
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Scene{
		root:       graph.NewNode("scene"),
		byRoot:     make(map[*graph.Node]*Object),
		raycaster:  NewRaycaster(),
		background: opts.Background,
		log:        opts.Logger,
	}
	s.grid = NewGrid(opts.GridSize, opts.GridDivisions)
	s.root.Add(s.grid)
	s.selection = newSelection(s.root)
	return s
}

// Root returns the scene-space node.
func (s *Scene) Root() *graph.Node { return s.root }

// Grid returns the helper grid node.
func (s *Scene) Grid() *graph.Node { return s.grid }

// Selection returns the scene's selection.
func (s *Scene) Selection() *Selection { return s.selection }

// Raycaster returns the raycaster used for hit-testing, e.g. to adjust LineThreshold.
func (s *Scene) Raycaster() *Raycaster { return s.raycaster }

// Background returns the clear color.
func (s *Scene) Background() color.RGBA { return s.background }

// SetBackground sets the clear color.
func (s *Scene) SetBackground(c color.RGBA) { s.background = c }

// SetGridVisible shows or hides the helper grid.
func (s *Scene) SetGridVisible(visible bool) { s.grid.Visible = visible }

// GridVisible reports whether the helper grid is shown.
func (s *Scene) GridVisible() bool { return s.grid.Visible }

// Add appends obj to the scene and puts its root in scene space. Adding an object that is
// already part of the scene does nothing.
func (s *Scene) Add(obj *Object) {
	if obj == nil || s.Contains(obj) {
		return
	}
	s.objects = append(s.objects, obj)
	s.byRoot[obj.root] = obj
	s.root.Add(obj.root)
	s.log.Debug("object added", "name", obj.Name(), "count", len(s.objects))
}

// Remove takes obj out of the scene. It is deselected first so the selection never refers
// to an object the scene no longer owns.
func (s *Scene) Remove(obj *Object) {
	i := s.indexOf(obj)
	if i < 0 {
		return
	}
	s.selection.Remove(obj)
	s.root.Remove(obj.root)
	delete(s.byRoot, obj.root)
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	s.log.Debug("object removed", "name", obj.Name(), "count", len(s.objects))
}

// Clear empties the selection and then removes every object.
func (s *Scene) Clear() {
	s.selection.Clear()
	for _, obj := range s.objects {
		s.root.Remove(obj.root)
	}
	s.objects = nil
	s.byRoot = make(map[*graph.Node]*Object)
}

// Contains reports whether obj is part of the scene.
func (s *Scene) Contains(obj *Object) bool {
	return s.indexOf(obj) >= 0
}

func (s *Scene) indexOf(obj *Object) int {
	for i, o := range s.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Objects returns the scene's objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// Object returns the i-th object in insertion order.
func (s *Scene) Object(i int) (*Object, bool) {
	if i < 0 || i >= len(s.objects) {
		return nil, false
	}
	return s.objects[i], true
}

// RaycastSceneObject returns the nearest Object struck by the ray from origin along
// direction. Every intersected node is resolved to its tagged root, so hitting an object's
// wireframe or solid both yield the object. Hits that resolve to no object of this scene
// (the grid, stray nodes) are passed over. The boolean is false when nothing resolves.
func (s *Scene) RaycastSceneObject(origin, direction mgl32.Vec3) (*Object, bool) {
	s.raycaster.Set(origin, direction)
	for _, hit := range s.raycaster.IntersectNodes(s.root.Children(), true) {
		root, ok := graph.FindTagged(hit.Node, RootTag)
		if !ok {
			continue
		}
		if obj, ok := s.byRoot[root]; ok {
			return obj, true
		}
	}
	return nil, false
}
