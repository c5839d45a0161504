package foam

import "math"

// Field is a row-major grid of non-negative foam intensity samples.
// Overlapping contributions combine by maximum, never by sum, which
// caps visual saturation where bands overlap.
type Field struct {
	W, H  int
	Cells []float32
}

// At returns the sample at (x, y). No bounds check.
func (f *Field) At(x, y int) float32 {
	return f.Cells[y*f.W+x]
}

// Mass returns the total of all samples. Used for diagnostics and
// conservation checks.
func (f *Field) Mass() float64 {
	var total float64
	for _, v := range f.Cells {
		total += float64(v)
	}
	return total
}

// bump raises a cell to v if v is larger. Out-of-range columns are
// ignored.
func (f *Field) bump(row, col int, v float32) {
	if col < 0 || col >= f.W || v <= 0 {
		return
	}
	i := row*f.W + col
	if v > f.Cells[i] {
		f.Cells[i] = v
	}
}

// Builder rasterizes band lists into a density field. It owns one
// field buffer sized to a fixed grid resolution and reuses it across
// frames; the returned field is valid until the next Build call.
type Builder struct {
	field Field
}

// NewBuilder creates a builder for the given grid resolution.
func NewBuilder(w, h int) *Builder {
	return &Builder{field: Field{W: w, H: h, Cells: make([]float32, w*h)}}
}

// Build rasterizes the bands into the builder's field. canvasHeight is
// the pixel height of the source coordinate space and now the current
// animation time in seconds (only age-aware variants read it).
//
// The second result is the recommended smoothing pass count; it is
// zero for every variant except VariantAgeBlur, which defers its
// dispersion to the smoother.
func (b *Builder) Build(bands []Band, canvasHeight float32, now float64, variant Variant) (*Field, int) {
	f := &b.field
	for i := range f.Cells {
		f.Cells[i] = 0
	}
	if f.W < 2 || f.H < 2 || canvasHeight <= 0 {
		return f, 0
	}

	for i := range bands {
		band := &bands[i]
		if band.Opacity <= 0 {
			continue // fully dissipated
		}
		row := int(math.Floor(float64(band.Y / canvasHeight * float32(f.H-1))))
		if row < 0 || row >= f.H {
			continue // off-grid bands are skipped, not clamped
		}

		switch variant {
		case VariantExpanding:
			age := band.Age(now)
			coreFade := clampUnit(1 - age/6)
			b.spreadBand(band, row, 1+age*0.15, coreFade, 0.4, 1, 1)
		case VariantRowSpread:
			age := band.Age(now)
			coreFade := clampUnit(1 - age/3)
			haloFade := clampUnit(1 - age/6)
			scale := 1 + age*0.25
			rowSpread := int(age * 0.5)
			for off := -rowSpread; off <= rowSpread; off++ {
				r := row + off
				if r < 0 || r >= f.H {
					continue
				}
				atten := float32(1)
				if off != 0 {
					atten = 0.5 / float32(absInt(off)+1)
				}
				b.spreadBand(band, r, scale, coreFade, 0.35, haloFade, atten)
			}
		default: // VariantBasic and VariantAgeBlur
			b.basicBand(band, row)
		}
	}

	if variant == VariantAgeBlur {
		return f, blurHint(bands, now)
	}
	return f, 0
}

// basicBand rasterizes segments with no time dependency.
func (b *Builder) basicBand(band *Band, row int) {
	f := &b.field
	for _, seg := range band.Segments {
		if seg.EndX <= seg.StartX {
			continue
		}
		v := band.Opacity * seg.intensity()
		c0 := int(math.Floor(float64(seg.StartX * float32(f.W-1))))
		c1 := int(math.Ceil(float64(seg.EndX * float32(f.W-1))))
		for c := c0; c <= c1; c++ {
			f.bump(row, c, v)
		}
	}
}

// spreadBand rasterizes segments widened symmetrically about their
// center by scale. Cells inside the original extent receive the faded
// core value; cells between the original and expanded extent receive a
// quadratically falling halo.
func (b *Builder) spreadBand(band *Band, row int, scale, coreFade, haloBase, haloFade, atten float32) {
	f := &b.field
	for _, seg := range band.Segments {
		if seg.EndX <= seg.StartX {
			continue
		}
		orig0 := seg.StartX * float32(f.W-1)
		orig1 := seg.EndX * float32(f.W-1)
		center := (orig0 + orig1) / 2
		half := (orig1 - orig0) / 2
		expHalf := half * scale
		haloW := expHalf - half

		coreVal := band.Opacity * seg.intensity() * coreFade * atten

		// Cells the unexpanded segment would cover, matching basicBand.
		core0 := int(math.Floor(float64(orig0)))
		core1 := int(math.Ceil(float64(orig1)))

		c0 := int(math.Floor(float64(center - expHalf)))
		c1 := int(math.Ceil(float64(center + expHalf)))
		for c := c0; c <= c1; c++ {
			fc := float32(c)
			if c >= core0 && c <= core1 {
				f.bump(row, c, coreVal)
				continue
			}
			var d float32
			if fc < orig0 {
				d = orig0 - fc
			} else {
				d = fc - orig1
			}
			p := float32(1)
			if haloW > 0 {
				p = d / haloW
			}
			if p > 1 {
				p = 1
			}
			halo := haloBase * (1 - p*p)
			if halo <= 0 {
				continue
			}
			f.bump(row, c, band.Opacity*halo*haloFade*atten)
		}
	}
}

// blurHint derives the smoothing pass count that VariantAgeBlur
// recommends from the average band age.
func blurHint(bands []Band, now float64) int {
	if len(bands) == 0 {
		return 0
	}
	var total float64
	for i := range bands {
		total += float64(bands[i].Age(now))
	}
	avg := total / float64(len(bands))
	passes := 2 + int(avg*0.8)
	if passes > 8 {
		passes = 8
	}
	return passes
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
