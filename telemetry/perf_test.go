package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorRecordsPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartFrame()
	p.StartPhase(PhaseSwell)
	time.Sleep(time.Millisecond)
	p.StartPhase(PhaseExtract)
	time.Sleep(time.Millisecond)
	p.EndFrame()

	if p.Avg(PhaseSwell) <= 0 {
		t.Error("expected non-zero swell phase time")
	}
	if p.Avg(PhaseExtract) <= 0 {
		t.Error("expected non-zero extract phase time")
	}
	if p.AvgFrame() < p.Avg(PhaseSwell) {
		t.Error("frame time should cover its phases")
	}
	if p.LastFrame() <= 0 {
		t.Error("expected a recorded frame duration")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	p := NewPerfCollector(4)

	for i := 0; i < 10; i++ {
		p.StartFrame()
		p.StartPhase(PhaseField)
		p.EndFrame()
	}

	if p.sampleCount != 4 {
		t.Errorf("expected window capped at 4 samples, got %d", p.sampleCount)
	}
}

func TestPerfCollectorSortedPhases(t *testing.T) {
	p := NewPerfCollector(10)

	p.StartFrame()
	p.StartPhase(PhaseField)
	time.Sleep(2 * time.Millisecond)
	p.StartPhase(PhaseSmooth)
	p.EndFrame()

	names := p.SortedPhases()
	if len(names) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(names))
	}
	if names[0] != PhaseField {
		t.Errorf("expected slowest phase first, got %s", names[0])
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	p := NewPerfCollector(10)
	if p.Avg(PhaseField) != 0 || p.AvgFrame() != 0 {
		t.Error("expected zero averages before any frames")
	}
}
