package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OceanBackground renders a simple depth gradient behind the foam.
type OceanBackground struct {
	width  int32
	height int32
	top    rl.Color
	bottom rl.Color
}

// NewOceanBackground creates a background for the given surface size.
func NewOceanBackground(width, height int32) *OceanBackground {
	return &OceanBackground{
		width:  width,
		height: height,
		top:    rl.Color{R: 8, G: 44, B: 77, A: 255},
		bottom: rl.Color{R: 18, G: 86, B: 120, A: 255},
	}
}

// Draw fills the surface with the ocean gradient.
func (b *OceanBackground) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, b.top, b.bottom)
}
