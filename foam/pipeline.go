package foam

import (
	"sort"

	"github.com/pthm-cable/swash/contour"
)

// StrokeStyle describes how one threshold's rings are drawn. Color is
// plain RGBA so the core stays independent of the render backend.
type StrokeStyle struct {
	R, G, B, A uint8
	Width      float32
}

// Threshold pairs a density cutoff with the style its rings are
// stroked in.
type Threshold struct {
	Value float32
	Style StrokeStyle
}

// StrokeTarget consumes extracted geometry. Implemented by the raylib
// renderer in production and by recording fakes in tests.
type StrokeTarget interface {
	// Segments strokes unconnected line pieces.
	Segments(segs []contour.LineSegment, style StrokeStyle)
	// Loop strokes one closed polygon outline.
	Loop(points contour.Contour, style StrokeStyle)
}

// RingStats reports the geometry resolved for one threshold. Zero
// segments is a normal result, not a failure.
type RingStats struct {
	Threshold float32
	Segments  int
	Points    int
}

// Pipeline runs the full per-frame foam pass: rasterize bands, smooth,
// then extract and stroke rings at each threshold in ascending value
// order so denser rings draw on top of sparser ones. All buffers are
// owned by the pipeline and reused across frames.
type Pipeline struct {
	builder   *Builder
	smoother  Smoother
	extractor contour.Extractor

	// Variant selects the dispersion model applied each frame.
	Variant Variant
	// Passes is the smoothing pass count. VariantAgeBlur overrides it
	// with its own recommendation when that is larger than zero.
	Passes int
	// ClosedLoops switches extraction from independent segments (the
	// production stroke path) to connected polygons.
	ClosedLoops bool
	// SimplifyTolerance reduces loop point counts when ClosedLoops is
	// set. Zero disables simplification.
	SimplifyTolerance float32
	// PhaseHook, when set, is called with "field", "smooth" and
	// "extract" as each stage of a Render begins. Used for perf
	// instrumentation.
	PhaseHook func(name string)

	thresholds []Threshold
	stats      []RingStats
}

// NewPipeline creates a pipeline for a fixed grid resolution.
// Thresholds are copied and kept sorted ascending by value.
func NewPipeline(gridW, gridH int, thresholds []Threshold) *Pipeline {
	p := &Pipeline{builder: NewBuilder(gridW, gridH)}
	p.SetThresholds(thresholds)
	return p
}

// SetThresholds replaces the threshold set, re-sorting ascending.
func (p *Pipeline) SetThresholds(thresholds []Threshold) {
	p.thresholds = append(p.thresholds[:0], thresholds...)
	sort.Slice(p.thresholds, func(i, j int) bool {
		return p.thresholds[i].Value < p.thresholds[j].Value
	})
}

// Thresholds returns the active threshold set, ascending.
func (p *Pipeline) Thresholds() []Threshold {
	return p.thresholds
}

// Render runs one frame. canvasHeight is the pixel height of the band
// coordinate space and now the current animation time in seconds. The
// returned stats slice is reused across frames.
func (p *Pipeline) Render(bands []Band, canvasHeight float32, now float64, target StrokeTarget) []RingStats {
	p.phase("field")
	field, hint := p.builder.Build(bands, canvasHeight, now, p.Variant)

	passes := p.Passes
	if p.Variant == VariantAgeBlur && hint > 0 {
		passes = hint
	}
	p.phase("smooth")
	smoothed := p.smoother.Smooth(field, passes)

	p.phase("extract")
	p.stats = p.stats[:0]
	for _, th := range p.thresholds {
		st := RingStats{Threshold: th.Value}
		if p.ClosedLoops {
			loops := p.extractor.Contours(smoothed.Cells, smoothed.W, smoothed.H, th.Value)
			for _, loop := range loops {
				if p.SimplifyTolerance > 0 {
					loop = contour.Simplify(loop, p.SimplifyTolerance)
				}
				st.Points += len(loop)
				if target != nil {
					target.Loop(loop, th.Style)
				}
			}
			st.Segments = len(loops)
		} else {
			segs := p.extractor.Segments(smoothed.Cells, smoothed.W, smoothed.H, th.Value)
			st.Segments = len(segs)
			st.Points = len(segs) * 2
			if target != nil && len(segs) > 0 {
				target.Segments(segs, th.Style)
			}
		}
		p.stats = append(p.stats, st)
	}
	return p.stats
}

func (p *Pipeline) phase(name string) {
	if p.PhaseHook != nil {
		p.PhaseHook(name)
	}
}

// Field exposes the most recently built raw density field for debug
// overlays.
func (p *Pipeline) Field() *Field {
	return &p.builder.field
}
