package scene

import (
	"errors"
	"fmt"
	"image/color"

	"playground/internal/graph"
	"playground/internal/shape"
)

// RootTag marks the root node of every Object so hit-testing can climb from whichever part
// was struck (solid or wire) to the selectable unit.
const RootTag = "playground-root"

// ErrInvalidArgument is returned when an Object is constructed without a shape.
var ErrInvalidArgument = errors.New("scene: invalid argument")

var (
	// DefaultSolidColor is the teal used for solids when no color is given.
	DefaultSolidColor = color.RGBA{R: 0x00, G: 0x99, B: 0x99, A: 0xff}
	// DefaultWireColor is the black used for wireframe overlays.
	DefaultWireColor = color.RGBA{A: 0xff}
)

// Object is a visible, selectable entity: a solid-shaded mesh and a wireframe overlay of the
// same shape, grouped under one root node. The root is the object's identity; callers place
// the object by setting the root's Position, Rotation and Scale directly.
type Object struct {
	root  *graph.Node
	solid *graph.Node
	wire  *graph.Node
	geom  *shape.Geometry
}

type objectOptions struct {
	name       string
	solidColor color.RGBA
	wireColor  color.RGBA
}

// Option configures NewObject.
type Option func(*objectOptions)

// WithSolidColor sets the solid mesh color.
func WithSolidColor(c color.RGBA) Option {
	return func(o *objectOptions) { o.solidColor = c }
}

// WithWireColor sets the wireframe color.
func WithWireColor(c color.RGBA) Option {
	return func(o *objectOptions) { o.wireColor = c }
}

// WithName names the root node (shown by the console's list command).
func WithName(name string) Option {
	return func(o *objectOptions) { o.name = name }
}

// NewObject builds an Object for geom. A nil geom is a precondition violation and returns
// ErrInvalidArgument; nothing is built in that case.
func NewObject(geom *shape.Geometry, opts ...Option) (*Object, error) {
	if geom == nil {
		return nil, fmt.Errorf("%w: shape geometry not provided", ErrInvalidArgument)
	}
	o := objectOptions{
		name:       string(geom.Kind),
		solidColor: DefaultSolidColor,
		wireColor:  DefaultWireColor,
	}
	for _, opt := range opts {
		opt(&o)
	}

	root := graph.NewNode(o.name)
	root.Tag = RootTag

	solid := graph.NewNode("solid")
	solid.Mesh = &graph.Mesh{Kind: graph.Solid, Geometry: geom, Color: o.solidColor}

	wire := graph.NewNode("wire")
	wire.Mesh = &graph.Mesh{
		Kind:     graph.Lines,
		Geometry: geom,
		Segments: shape.Edges(geom, shape.DefaultEdgeThreshold),
		Color:    o.wireColor,
	}

	root.Add(solid)
	root.Add(wire)
	return &Object{root: root, solid: solid, wire: wire, geom: geom}, nil
}

// Root returns the node that owns the solid and wire parts.
func (o *Object) Root() *graph.Node { return o.root }

// Solid returns the solid-shaded part.
func (o *Object) Solid() *graph.Node { return o.solid }

// Wire returns the wireframe part.
func (o *Object) Wire() *graph.Node { return o.wire }

// Geometry returns the shape the object was built from.
func (o *Object) Geometry() *shape.Geometry { return o.geom }

// Name returns the root node's name.
func (o *Object) Name() string { return o.root.Name }
