package foam

import (
	"testing"

	"github.com/pthm-cable/swash/contour"
)

// recordingTarget captures draw calls for assertions.
type recordingTarget struct {
	segCalls  []StrokeStyle
	loopCalls []StrokeStyle
	segTotal  int
}

func (r *recordingTarget) Segments(segs []contour.LineSegment, style StrokeStyle) {
	r.segCalls = append(r.segCalls, style)
	r.segTotal += len(segs)
}

func (r *recordingTarget) Loop(points contour.Contour, style StrokeStyle) {
	r.loopCalls = append(r.loopCalls, style)
}

func testBands() []Band {
	return []Band{{
		Y: 50, Opacity: 1,
		Segments: []Segment{{StartX: 0.3, EndX: 0.7, Intensity: 0.9}},
	}}
}

func TestPipelineDrawsAscendingThresholds(t *testing.T) {
	// Thresholds supplied out of order must be drawn faintest first.
	thresholds := []Threshold{
		{Value: 0.6, Style: StrokeStyle{Width: 3}},
		{Value: 0.2, Style: StrokeStyle{Width: 1}},
	}
	p := NewPipeline(20, 20, thresholds)

	var target recordingTarget
	stats := p.Render(testBands(), 100, 0, &target)

	if len(stats) != 2 {
		t.Fatalf("expected 2 threshold results, got %d", len(stats))
	}
	if stats[0].Threshold != 0.2 || stats[1].Threshold != 0.6 {
		t.Errorf("expected ascending thresholds, got %f then %f",
			stats[0].Threshold, stats[1].Threshold)
	}
	if len(target.segCalls) != 2 {
		t.Fatalf("expected 2 draw calls, got %d", len(target.segCalls))
	}
	if target.segCalls[0].Width != 1 || target.segCalls[1].Width != 3 {
		t.Error("draw calls not issued in ascending threshold order")
	}
}

func TestPipelineZeroSegmentsIsNormal(t *testing.T) {
	thresholds := []Threshold{
		{Value: 0.2},
		{Value: 5}, // above any possible density
	}
	p := NewPipeline(20, 20, thresholds)

	var target recordingTarget
	stats := p.Render(testBands(), 100, 0, &target)

	if len(stats) != 2 {
		t.Fatalf("expected stats for every threshold, got %d", len(stats))
	}
	if stats[1].Segments != 0 {
		t.Errorf("expected 0 segments above max density, got %d", stats[1].Segments)
	}
	// No draw call for the empty threshold.
	if len(target.segCalls) != 1 {
		t.Errorf("expected 1 draw call, got %d", len(target.segCalls))
	}
}

func TestPipelineClosedLoops(t *testing.T) {
	p := NewPipeline(20, 20, []Threshold{{Value: 0.2}})
	p.ClosedLoops = true

	var target recordingTarget
	stats := p.Render(testBands(), 100, 0, &target)

	if stats[0].Segments == 0 {
		t.Fatal("expected at least one loop")
	}
	if len(target.loopCalls) == 0 {
		t.Error("expected loop draw calls")
	}
	if len(target.segCalls) != 0 {
		t.Error("closed-loop mode must not emit segment calls")
	}
}

func TestPipelineSimplifyReducesPoints(t *testing.T) {
	p := NewPipeline(40, 40, []Threshold{{Value: 0.2}})
	p.ClosedLoops = true

	full := p.Render(testBands(), 100, 0, nil)
	fullPoints := full[0].Points

	p.SimplifyTolerance = 0.05
	reduced := p.Render(testBands(), 100, 0, nil)

	if reduced[0].Points >= fullPoints {
		t.Errorf("expected simplification to reduce points, %d -> %d",
			fullPoints, reduced[0].Points)
	}
}

func TestPipelineNilTarget(t *testing.T) {
	// Headless callers pass a nil target and still get stats.
	p := NewPipeline(20, 20, []Threshold{{Value: 0.2}})
	stats := p.Render(testBands(), 100, 0, nil)
	if len(stats) != 1 || stats[0].Segments == 0 {
		t.Error("expected stats without a draw target")
	}
}

func TestPipelineDeterministicStats(t *testing.T) {
	p := NewPipeline(20, 20, []Threshold{{Value: 0.2}, {Value: 0.4}})
	first := append([]RingStats(nil), p.Render(testBands(), 100, 0, nil)...)
	second := p.Render(testBands(), 100, 0, nil)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("stats %d changed between identical renders: %+v vs %+v",
				i, first[i], second[i])
		}
	}
}
