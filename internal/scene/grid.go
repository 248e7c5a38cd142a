package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/graph"
	"playground/internal/shape"
)

var gridColor = color.RGBA{R: 0x70, G: 0x70, B: 0x70, A: 0xff}

// NewGrid returns a line node drawing a size x size grid on the XZ plane (Y=0) with the
// given number of divisions. The grid is not tagged, so rays striking it never resolve to
// an Object.
func NewGrid(size float32, divisions int) *graph.Node {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)
	var segs []shape.Segment
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		segs = append(segs,
			shape.Segment{A: mgl32.Vec3{-half, 0, k}, B: mgl32.Vec3{half, 0, k}},
			shape.Segment{A: mgl32.Vec3{k, 0, -half}, B: mgl32.Vec3{k, 0, half}},
		)
	}
	n := graph.NewNode("grid")
	n.Mesh = &graph.Mesh{Kind: graph.Lines, Segments: segs, Color: gridColor}
	return n
}
