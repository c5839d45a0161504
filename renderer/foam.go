// Package renderer draws foam geometry and debug overlays with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swash/contour"
	"github.com/pthm-cable/swash/foam"
)

// FoamRenderer strokes extracted foam geometry, scaling normalized
// [0,1] coordinates into pixel space. Implements foam.StrokeTarget.
type FoamRenderer struct {
	width  float32
	height float32
}

// NewFoamRenderer creates a renderer for the given draw surface size.
func NewFoamRenderer(width, height int32) *FoamRenderer {
	return &FoamRenderer{
		width:  float32(width),
		height: float32(height),
	}
}

// Segments strokes unconnected line pieces.
func (r *FoamRenderer) Segments(segs []contour.LineSegment, style foam.StrokeStyle) {
	col := rl.Color{R: style.R, G: style.G, B: style.B, A: style.A}
	for _, s := range segs {
		rl.DrawLineEx(
			rl.Vector2{X: s.X1 * r.width, Y: s.Y1 * r.height},
			rl.Vector2{X: s.X2 * r.width, Y: s.Y2 * r.height},
			style.Width, col,
		)
	}
}

// Loop strokes one closed polygon outline, connecting the last point
// back to the first.
func (r *FoamRenderer) Loop(points contour.Contour, style foam.StrokeStyle) {
	if len(points) < 2 {
		return
	}
	col := rl.Color{R: style.R, G: style.G, B: style.B, A: style.A}
	for i := 0; i < len(points); i++ {
		a := points[i]
		b := points[(i+1)%len(points)]
		rl.DrawLineEx(
			rl.Vector2{X: a.X * r.width, Y: a.Y * r.height},
			rl.Vector2{X: b.X * r.width, Y: b.Y * r.height},
			style.Width, col,
		)
	}
}

// DrawFieldOverlay renders the raw density field as a translucent
// heatmap for debugging.
func (r *FoamRenderer) DrawFieldOverlay(f *foam.Field) {
	if f.W < 1 || f.H < 1 {
		return
	}
	cellW := r.width / float32(f.W)
	cellH := r.height / float32(f.H)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := f.At(x, y)
			if v <= 0.01 {
				continue
			}
			if v > 1 {
				v = 1
			}
			col := rl.Color{R: 120, G: 200, B: 255, A: uint8(v * 160)}
			rl.DrawRectangle(
				int32(float32(x)*cellW), int32(float32(y)*cellH),
				int32(cellW)+1, int32(cellH)+1, col,
			)
		}
	}
}
