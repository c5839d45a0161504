package telemetry

import (
	"sort"
	"time"
)

// Phase names for the frame pipeline. Field, smooth and extract are
// reported by the foam pipeline through its phase hook.
const (
	PhaseSwell   = "swell"
	PhaseField   = "field"
	PhaseSmooth  = "smooth"
	PhaseExtract = "extract"
)

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks per-phase frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string
	lastFrame     time.Duration
}

// NewPerfCollector creates a new performance collector. windowSize is
// the number of frames to average over (e.g. 120 for 2 seconds at
// 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 120
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame finishes timing the current frame and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.lastFrame = now.Sub(p.frameStart)
	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: p.lastFrame,
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// LastFrame returns the duration of the most recently ended frame.
func (p *PerfCollector) LastFrame() time.Duration {
	return p.lastFrame
}

// Avg returns the average duration of one phase over the window.
func (p *PerfCollector) Avg(phase string) time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].Phases[phase]
	}
	return total / time.Duration(p.sampleCount)
}

// AvgFrame returns the average whole-frame duration over the window.
func (p *PerfCollector) AvgFrame() time.Duration {
	if p.sampleCount == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < p.sampleCount; i++ {
		total += p.samples[i].FrameDuration
	}
	return total / time.Duration(p.sampleCount)
}

// SortedPhases returns phase names seen in the window, sorted by
// average duration descending.
func (p *PerfCollector) SortedPhases() []string {
	seen := make(map[string]bool)
	for i := 0; i < p.sampleCount; i++ {
		for name := range p.samples[i].Phases {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
