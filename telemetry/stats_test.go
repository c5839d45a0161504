package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPercentile(t *testing.T) {
	xs := []float64{10, 1, 5, 3, 8, 2, 9, 4, 7, 6}
	if p := percentile(xs, 0.5); p != 5 {
		t.Errorf("expected p50 = 5, got %f", p)
	}
	if p := percentile(xs, 0.9); p != 9 {
		t.Errorf("expected p90 = 9, got %f", p)
	}
	if p := percentile(nil, 0.5); p != 0 {
		t.Errorf("expected 0 for empty input, got %f", p)
	}
}

func TestCollectorWindowClose(t *testing.T) {
	c := NewCollector(1.0, nil)

	for i := 0; i < 10; i++ {
		c.RecordFrame(20+i, 2.5, 100)
	}
	// Not enough sim time yet: buffers keep accumulating.
	c.Tick(0.5, 3, 2)
	if len(c.frameMs) != 10 {
		t.Errorf("expected samples retained before window close, got %d", len(c.frameMs))
	}

	c.Tick(1.5, 3, 2)
	if len(c.frameMs) != 0 {
		t.Errorf("expected samples flushed at window close, got %d", len(c.frameMs))
	}
}

func TestCollectorEmptyWindowSkipped(t *testing.T) {
	c := NewCollector(1.0, nil)
	// No frames recorded: Tick must not close an empty window.
	c.Tick(5, 0, 0)
	if c.windowStart != 0 {
		t.Error("expected empty window to stay open")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("creating output manager: %v", err)
	}

	stats := WindowStats{WindowEnd: 60, SimTimeSec: 1, Bands: 4, SegmentsMean: 12.5}
	if err := om.WriteStats(stats); err != nil {
		t.Fatalf("writing stats: %v", err)
	}
	if err := om.WriteStats(stats); err != nil {
		t.Fatalf("writing second record: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing output: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	if err != nil {
		t.Fatalf("reading stats.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "segments_mean") {
		t.Errorf("expected csv header, got %q", lines[0])
	}
}

func TestNilOutputManagerIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// All methods must be safe on the nil manager.
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Errorf("nil manager WriteStats: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager Close: %v", err)
	}
}
