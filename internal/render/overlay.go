package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"playground/internal/gizmo"
	"playground/internal/scene"
)

const (
	overlayFontSize   = 20
	overlayPadding    = 12
	overlayLineHeight = overlayFontSize + 4
	// updateInterval: only refresh the FPS text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws the 2D status text over the viewport: the FPS counter (top-right, green)
// when enabled, and the selection summary (top-left) whenever something is selected.
type Overlay struct {
	ShowFPS bool

	frameCount  uint32
	lastFPSText string
	lastSelText string
	lastSelKey  selKey
}

// selKey identifies what the selection text was built from.
type selKey struct {
	n       int
	x, y, z float32
	mode    gizmo.Mode
}

// NewOverlay returns an overlay with the FPS counter hidden.
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Draw renders the overlay. Call after the copy pass and before the console.
func (o *Overlay) Draw(scn *scene.Scene, w *gizmo.Widget) {
	o.frameCount++
	if o.ShowFPS {
		if o.lastFPSText == "" || o.frameCount%updateInterval == 0 {
			o.lastFPSText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		screenW := int32(rl.GetScreenWidth())
		x := screenW - rl.MeasureText(o.lastFPSText, overlayFontSize) - overlayPadding
		rl.DrawText(o.lastFPSText, x, overlayPadding, overlayFontSize, rl.Green)
	}

	sel := scn.Selection()
	if sel.Empty() {
		return
	}
	p := sel.Pivot()
	key := selKey{n: sel.Len(), x: p.X(), y: p.Y(), z: p.Z(), mode: w.Mode()}
	if key != o.lastSelKey || o.lastSelText == "" {
		o.lastSelKey = key
		o.lastSelText = fmt.Sprintf("%d selected  pivot (%.2f, %.2f, %.2f)  %s",
			key.n, key.x, key.y, key.z, key.mode)
	}
	rl.DrawText(o.lastSelText, overlayPadding, overlayPadding, overlayFontSize, rl.White)
	rl.DrawText("W/E/R: translate/rotate/scale", overlayPadding, overlayPadding+overlayLineHeight, overlayFontSize-4, rl.LightGray)
}
