package foam

import (
	"math"
	"testing"
)

func TestBasicSingleBand(t *testing.T) {
	// One concentrated band at mid-screen must light exactly the
	// mapped row and column span, full strength, nothing else.
	bands := []Band{{
		Y: 50, Opacity: 1,
		Segments: []Segment{{StartX: 0.5, EndX: 0.6, Intensity: 1}},
	}}

	b := NewBuilder(10, 10)
	f, _ := b.Build(bands, 100, 0, VariantBasic)

	wantRow := 4 // floor(0.5 * 9)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := f.At(x, y)
			if y == wantRow && x >= 4 && x <= 6 {
				if math.Abs(float64(v)-1) > 1e-6 {
					t.Errorf("cell (%d,%d): expected 1.0, got %f", x, y, v)
				}
			} else if v != 0 {
				t.Errorf("cell (%d,%d): expected 0, got %f", x, y, v)
			}
		}
	}
}

func TestOverlapTakesMaxNotSum(t *testing.T) {
	bands := []Band{{
		Y: 50, Opacity: 1,
		Segments: []Segment{
			{StartX: 0.5, EndX: 0.6, Intensity: 0.3},
			{StartX: 0.5, EndX: 0.6, Intensity: 0.8},
		},
	}}

	b := NewBuilder(10, 10)
	f, _ := b.Build(bands, 100, 0, VariantBasic)

	if v := f.At(5, 4); math.Abs(float64(v)-0.8) > 1e-6 {
		t.Errorf("expected max(0.3, 0.8) = 0.8, got %f", v)
	}
}

func TestMalformedBandsSkipped(t *testing.T) {
	bands := []Band{
		// dissipated
		{Y: 50, Opacity: 0, Segments: []Segment{{StartX: 0.1, EndX: 0.9, Intensity: 1}}},
		// off-grid
		{Y: 150, Opacity: 1, Segments: []Segment{{StartX: 0.1, EndX: 0.9, Intensity: 1}}},
		{Y: -10, Opacity: 1, Segments: []Segment{{StartX: 0.1, EndX: 0.9, Intensity: 1}}},
		// degenerate segment
		{Y: 50, Opacity: 1, Segments: []Segment{{StartX: 0.4, EndX: 0.4, Intensity: 1}}},
	}

	b := NewBuilder(10, 10)
	f, _ := b.Build(bands, 100, 0, VariantBasic)

	if mass := f.Mass(); mass != 0 {
		t.Errorf("expected empty field, got mass %f", mass)
	}
}

func TestEmptyBandListYieldsZeroField(t *testing.T) {
	b := NewBuilder(8, 8)
	f, passes := b.Build(nil, 100, 0, VariantAgeBlur)
	if mass := f.Mass(); mass != 0 {
		t.Errorf("expected zero field, got mass %f", mass)
	}
	if passes != 0 {
		t.Errorf("expected no blur recommendation for empty input, got %d", passes)
	}
}

func TestDefaultIntensity(t *testing.T) {
	bands := []Band{{
		Y: 50, Opacity: 1,
		Segments: []Segment{{StartX: 0.5, EndX: 0.6, Intensity: -1}},
	}}

	b := NewBuilder(10, 10)
	f, _ := b.Build(bands, 100, 0, VariantBasic)

	if v := f.At(5, 4); math.Abs(float64(v)-DefaultIntensity) > 1e-6 {
		t.Errorf("expected default intensity %f, got %f", DefaultIntensity, v)
	}
}

func TestExpandingCoreFadesAndHaloAppears(t *testing.T) {
	bands := []Band{{
		Y: 50, Opacity: 1, SpawnTime: 0,
		Segments: []Segment{{StartX: 0.4, EndX: 0.6, Intensity: 1}},
	}}

	b := NewBuilder(40, 10)
	fresh, _ := b.Build(bands, 100, 0, VariantExpanding)
	freshCore := fresh.At(19, 4) // inside the original extent

	aged, _ := b.Build(bands, 100, 3, VariantExpanding)
	agedCore := aged.At(19, 4)

	// Core fades over 6 seconds: at age 3 it is half strength.
	if math.Abs(float64(freshCore)-1) > 1e-5 {
		t.Errorf("expected full core at age 0, got %f", freshCore)
	}
	if math.Abs(float64(agedCore)-0.5) > 1e-5 {
		t.Errorf("expected half core at age 3, got %f", agedCore)
	}

	// Halo cells outside the original extent appear with age and are
	// capped by the 0.4 halo base.
	haloFound := false
	for x := 0; x < 40; x++ {
		fx := float32(x)
		if fx >= 0.4*39-1 && fx <= 0.6*39+1 {
			continue
		}
		if v := aged.At(x, 4); v > 0 {
			haloFound = true
			if v > 0.4 {
				t.Errorf("halo cell %d exceeds base 0.4: %f", x, v)
			}
		}
	}
	if !haloFound {
		t.Error("expected halo cells outside the original extent at age 3")
	}
}

func TestRowSpreadBleedsIntoNeighborRows(t *testing.T) {
	bands := []Band{{
		Y: 50, Opacity: 1, SpawnTime: 0,
		Segments: []Segment{{StartX: 0.4, EndX: 0.6, Intensity: 1}},
	}}

	b := NewBuilder(20, 20)

	// Fresh band: single row only.
	f, _ := b.Build(bands, 100, 0, VariantRowSpread)
	row := 9 // floor(0.5 * 19)
	if f.At(10, row) == 0 {
		t.Fatal("expected center row to be lit")
	}
	if f.At(10, row-1) != 0 || f.At(10, row+1) != 0 {
		t.Error("fresh band must not bleed into neighbor rows")
	}

	// Age 2: rowSpread = 1, neighbors attenuated to a quarter.
	f, _ = b.Build(bands, 100, 2, VariantRowSpread)
	center := f.At(10, row)
	above := f.At(10, row-1)
	below := f.At(10, row+1)
	if above == 0 || below == 0 {
		t.Fatal("aged band must bleed into adjacent rows")
	}
	if math.Abs(float64(above/center)-0.25) > 1e-4 {
		t.Errorf("expected adjacent row at 0.25x center, got ratio %f", above/center)
	}
	if above != below {
		t.Errorf("expected symmetric bleed, got %f above vs %f below", above, below)
	}
}

func TestAgeBlurRecommendation(t *testing.T) {
	cases := []struct {
		age  float64
		want int
	}{
		{0, 2},
		{2.5, 4},
		{5, 6},
		{20, 8}, // capped
	}
	b := NewBuilder(8, 8)
	for _, tc := range cases {
		bands := []Band{{Y: 50, Opacity: 1, SpawnTime: 0,
			Segments: []Segment{{StartX: 0.2, EndX: 0.4, Intensity: 1}}}}
		_, passes := b.Build(bands, 100, tc.age, VariantAgeBlur)
		if passes != tc.want {
			t.Errorf("avg age %.1f: expected %d passes, got %d", tc.age, tc.want, passes)
		}
	}
}

func TestBuilderReusesBuffer(t *testing.T) {
	b := NewBuilder(8, 8)
	f1, _ := b.Build(nil, 100, 0, VariantBasic)
	f2, _ := b.Build(nil, 100, 0, VariantBasic)
	if &f1.Cells[0] != &f2.Cells[0] {
		t.Error("expected the builder to reuse its field buffer")
	}
}
