// Package main provides an interactive preview of the foam density
// field and its contour rings: fixed synthetic bands, live sliders for
// age, threshold and smoothing, and a heatmap of the raw field.
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swash/contour"
	"github.com/pthm-cable/swash/foam"
)

const (
	previewSize = 640
	panelWidth  = 360
	gridW       = 80
	gridH       = 80
)

// previewParams are the slider-tunable inputs.
type previewParams struct {
	Age       float32
	Threshold float32
	Passes    int
	Variant   foam.Variant
}

func main() {
	rl.InitWindow(previewSize+panelWidth+40, previewSize+60, "Foam Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := previewParams{
		Age:       1.0,
		Threshold: 0.3,
		Passes:    2,
		Variant:   foam.VariantExpanding,
	}

	bands := syntheticBands()
	builder := foam.NewBuilder(gridW, gridH)
	var smoother foam.Smoother
	var extractor contour.Extractor

	for !rl.WindowShouldClose() {
		// Bands were deposited at time 0; the slider picks how old
		// they appear.
		now := float64(params.Age)

		field, hint := builder.Build(bands, previewSize, now, params.Variant)
		passes := params.Passes
		if params.Variant == foam.VariantAgeBlur && hint > 0 {
			passes = hint
		}
		smoothed := smoother.Smooth(field, passes)
		segs := extractor.Segments(smoothed.Cells, smoothed.W, smoothed.H, params.Threshold)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 12, G: 32, B: 48, A: 255})

		drawHeatmap(smoothed)
		for _, s := range segs {
			rl.DrawLineEx(
				rl.Vector2{X: 10 + s.X1*previewSize, Y: 10 + s.Y1*previewSize},
				rl.Vector2{X: 10 + s.X2*previewSize, Y: 10 + s.Y2*previewSize},
				2, rl.White,
			)
		}

		rl.DrawText(fmt.Sprintf("segments: %d", len(segs)), 15, previewSize+25, 16, rl.DarkGray)

		drawPanel(&params)
		rl.EndDrawing()
	}
}

// syntheticBands builds a fixed set of test bands across the preview.
func syntheticBands() []foam.Band {
	return []foam.Band{
		{
			Y: 0.3 * previewSize, Opacity: 1.0, SpawnTime: 0,
			Segments: []foam.Segment{
				{StartX: 0.15, EndX: 0.45, Intensity: 0.9},
				{StartX: 0.6, EndX: 0.8, Intensity: 0.6},
			},
		},
		{
			Y: 0.5 * previewSize, Opacity: 0.8, SpawnTime: 0,
			Segments: []foam.Segment{
				{StartX: 0.3, EndX: 0.7, Intensity: 1.0},
			},
		},
		{
			Y: 0.65 * previewSize, Opacity: 0.6, SpawnTime: 0,
			Segments: []foam.Segment{
				{StartX: 0.1, EndX: 0.35, Intensity: -1}, // default intensity
				{StartX: 0.55, EndX: 0.9, Intensity: 0.7},
			},
		},
	}
}

// drawHeatmap renders the smoothed field into the preview square.
func drawHeatmap(f *foam.Field) {
	cellW := float32(previewSize) / float32(f.W)
	cellH := float32(previewSize) / float32(f.H)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := f.At(x, y)
			if v <= 0.005 {
				continue
			}
			if v > 1 {
				v = 1
			}
			col := rl.Color{R: 60, G: 140, B: 200, A: uint8(40 + v*180)}
			rl.DrawRectangle(
				int32(10+float32(x)*cellW), int32(10+float32(y)*cellH),
				int32(cellW)+1, int32(cellH)+1, col,
			)
		}
	}
}

// drawPanel renders the parameter sliders.
func drawPanel(params *previewParams) {
	panelX := float32(previewSize + 30)
	panelY := float32(10)

	rl.DrawText("Foam Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 35

	rl.DrawText("Band age (seconds)", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	params.Age = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"0", "8",
		params.Age, 0, 8,
	)
	rl.DrawText(fmt.Sprintf("%.1f", params.Age), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	panelY += 35

	rl.DrawText("Threshold", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	params.Threshold = gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"0.01", "1.0",
		params.Threshold, 0.01, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", params.Threshold), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	panelY += 35

	rl.DrawText("Blur passes", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	passes := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"0", "8",
		float32(params.Passes), 0, 8,
	)
	params.Passes = int(passes)
	rl.DrawText(fmt.Sprintf("%d", params.Passes), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
	panelY += 45

	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, "Variant: "+params.Variant.String()) {
		params.Variant = (params.Variant + 1) % 4
	}
}
