package foam

import (
	"math"
	"testing"
)

func TestSmoothZeroFieldStaysZero(t *testing.T) {
	f := &Field{W: 8, H: 8, Cells: make([]float32, 64)}
	var s Smoother
	out := s.Smooth(f, 5)
	for i, v := range out.Cells {
		if v != 0 {
			t.Fatalf("cell %d: expected 0, got %f", i, v)
		}
	}
}

func TestSmoothConservesInteriorMass(t *testing.T) {
	// A hot cell far from the edges spreads into its 3x3 neighborhood
	// without losing mass.
	f := &Field{W: 11, H: 11, Cells: make([]float32, 121)}
	f.Cells[5*11+5] = 9

	var s Smoother
	out := s.Smooth(f, 1)

	if math.Abs(out.Mass()-9) > 1e-3 {
		t.Errorf("expected mass 9 conserved, got %f", out.Mass())
	}
	if v := out.At(5, 5); math.Abs(float64(v)-1) > 1e-5 {
		t.Errorf("expected center averaged to 1, got %f", v)
	}
	if v := out.At(4, 4); math.Abs(float64(v)-1) > 1e-5 {
		t.Errorf("expected diagonal neighbor averaged to 1, got %f", v)
	}
}

func TestSmoothDoesNotMutateInput(t *testing.T) {
	f := &Field{W: 4, H: 4, Cells: make([]float32, 16)}
	f.Cells[5] = 2

	var s Smoother
	out := s.Smooth(f, 3)

	if f.Cells[5] != 2 {
		t.Errorf("input mutated: expected 2, got %f", f.Cells[5])
	}
	if &out.Cells[0] == &f.Cells[0] {
		t.Error("expected a separate output buffer")
	}
}

func TestSmoothZeroPassesCopies(t *testing.T) {
	f := &Field{W: 3, H: 3, Cells: []float32{0, 1, 2, 3, 4, 5, 6, 7, 8}}

	var s Smoother
	out := s.Smooth(f, 0)

	for i := range f.Cells {
		if out.Cells[i] != f.Cells[i] {
			t.Errorf("cell %d: expected %f, got %f", i, f.Cells[i], out.Cells[i])
		}
	}
	if &out.Cells[0] == &f.Cells[0] {
		t.Error("expected a copy, not the input buffer")
	}
}

func TestSmoothEdgeCellsAverageInBounds(t *testing.T) {
	// A lit corner averages over its 4-cell window only; no
	// wraparound contribution appears on the opposite side.
	f := &Field{W: 5, H: 5, Cells: make([]float32, 25)}
	f.Cells[0] = 4

	var s Smoother
	out := s.Smooth(f, 1)

	if v := out.At(0, 0); math.Abs(float64(v)-1) > 1e-5 {
		t.Errorf("corner: expected 4/4 = 1, got %f", v)
	}
	if v := out.At(4, 4); v != 0 {
		t.Errorf("opposite corner: expected 0, got %f", v)
	}
	if v := out.At(4, 0); v != 0 {
		t.Errorf("no wraparound expected, got %f", v)
	}
}
