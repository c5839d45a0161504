// Package ui provides the raygui control panel for the foam demo.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/swash/foam"
)

// Settings are the live-tunable foam parameters the panel edits.
type Settings struct {
	Variant     foam.Variant
	BlurPasses  int
	ClosedLoops bool
	ShowField   bool
}

// ControlsPanel renders the tuning panel and applies edits to a
// Settings value.
type ControlsPanel struct {
	x, y    float32
	width   float32
	visible bool
}

// NewControlsPanel creates a panel anchored at (x, y).
func NewControlsPanel(x, y, width float32) *ControlsPanel {
	return &ControlsPanel{x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool { return c.visible }

// Draw renders the panel and returns true when a setting changed.
func (c *ControlsPanel) Draw(s *Settings, stats []foam.RingStats) bool {
	if !c.visible {
		return false
	}

	changed := false
	x := c.x
	y := c.y
	w := c.width

	rl.DrawRectangle(int32(x-10), int32(y-10), int32(w+20), 220, rl.Color{R: 0, G: 0, B: 0, A: 170})
	rl.DrawText("Foam", int32(x), int32(y), 20, rl.White)
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 140, Height: 24}, "Variant: "+s.Variant.String()) {
		s.Variant = (s.Variant + 1) % 4
		changed = true
	}
	y += 32

	rl.DrawText("Blur passes", int32(x), int32(y), 14, rl.Gray)
	y += 18
	passes := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: w - 60, Height: 20},
		"0", "8",
		float32(s.BlurPasses), 0, 8,
	)
	rl.DrawText(fmt.Sprintf("%d", s.BlurPasses), int32(x+w-50), int32(y+2), 16, rl.White)
	if int(passes) != s.BlurPasses {
		s.BlurPasses = int(passes)
		changed = true
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 140, Height: 24}, toggleText(s.ClosedLoops, "Loops", "Segments")) {
		s.ClosedLoops = !s.ClosedLoops
		changed = true
	}
	if gui.Button(rl.Rectangle{X: x + 150, Y: y, Width: 140, Height: 24}, toggleText(s.ShowField, "Field: on", "Field: off")) {
		s.ShowField = !s.ShowField
		changed = true
	}
	y += 34

	for _, st := range stats {
		rl.DrawText(
			fmt.Sprintf("iso %.2f  segs %d  pts %d", st.Threshold, st.Segments, st.Points),
			int32(x), int32(y), 14, rl.LightGray,
		)
		y += 18
	}

	return changed
}

func toggleText(cond bool, on, off string) string {
	if cond {
		return on
	}
	return off
}
