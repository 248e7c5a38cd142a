// Package render draws the playground with raylib. It implements the viewport's pass
// pipeline: a scene pass into an offscreen color target, an outline pass that edges the
// selection, and a copy pass that puts the result on screen.
//
// Everything here needs a live OpenGL context: create passes after the window is open and
// call Unload before it closes.
package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"playground/internal/camera"
)

// toMatrix converts a column-major mgl32 matrix to raylib's layout (also column-major).
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// toCamera3D returns the raylib camera matching cam. raylib derives the aspect from the
// current render target, so only position, target, up and fov carry over.
func toCamera3D(cam *camera.Perspective) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(cam.Position),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.Up),
		Fovy:       cam.Fov,
		Projection: rl.CameraPerspective,
	}
}
