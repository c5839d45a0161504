// Package telemetry collects frame statistics and performance timing
// for the foam demo, and writes them to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowEnd  int64   `csv:"window_end"` // frame index at window close
	SimTimeSec float64 `csv:"sim_time"`

	// State at window end
	Bands  int `csv:"bands"`
	Crests int `csv:"crests"`

	// Per-frame distributions over the window
	FieldMassMean float64 `csv:"field_mass_mean"`
	SegmentsMean  float64 `csv:"segments_mean"`
	SegmentsP50   float64 `csv:"segments_p50"`
	SegmentsP90   float64 `csv:"segments_p90"`
	FrameMsMean   float64 `csv:"frame_ms_mean"`
	FrameMsP90    float64 `csv:"frame_ms_p90"`
}

// Collector accumulates per-frame samples and closes them into
// WindowStats every windowSec seconds of sim time.
type Collector struct {
	windowSec   float64
	windowStart float64

	frame     int64
	segments  []float64
	frameMs   []float64
	fieldMass []float64

	output *OutputManager
}

// NewCollector creates a stats collector. output may be nil (CSV
// disabled).
func NewCollector(windowSec float64, output *OutputManager) *Collector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &Collector{windowSec: windowSec, output: output}
}

// RecordFrame adds one frame's sample. segments is the total segment
// count across all thresholds, frameMs the frame duration in
// milliseconds and fieldMass the raw density field total.
func (c *Collector) RecordFrame(segments int, frameMs, fieldMass float64) {
	c.frame++
	c.segments = append(c.segments, float64(segments))
	c.frameMs = append(c.frameMs, frameMs)
	c.fieldMass = append(c.fieldMass, fieldMass)
}

// Tick closes the window if enough sim time has passed, logging the
// stats and writing them to CSV. bands and crests are the current
// simulation state counts.
func (c *Collector) Tick(simTime float64, bands, crests int) {
	if simTime-c.windowStart < c.windowSec || len(c.frameMs) == 0 {
		return
	}

	stats := WindowStats{
		WindowEnd:     c.frame,
		SimTimeSec:    simTime,
		Bands:         bands,
		Crests:        crests,
		FieldMassMean: stat.Mean(c.fieldMass, nil),
		SegmentsMean:  stat.Mean(c.segments, nil),
		SegmentsP50:   percentile(c.segments, 0.5),
		SegmentsP90:   percentile(c.segments, 0.9),
		FrameMsMean:   stat.Mean(c.frameMs, nil),
		FrameMsP90:    percentile(c.frameMs, 0.9),
	}

	slog.Info("window stats",
		"sim_time", stats.SimTimeSec,
		"bands", stats.Bands,
		"crests", stats.Crests,
		"segments_mean", stats.SegmentsMean,
		"frame_ms_mean", stats.FrameMsMean,
	)

	if c.output != nil {
		if err := c.output.WriteStats(stats); err != nil {
			slog.Error("writing stats", "error", err)
		}
	}

	c.windowStart = simTime
	c.segments = c.segments[:0]
	c.frameMs = c.frameMs[:0]
	c.fieldMass = c.fieldMass[:0]
}

// percentile returns the p-th quantile of xs. xs is sorted in place.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sort.Float64s(xs)
	return stat.Quantile(p, stat.Empirical, xs, nil)
}
