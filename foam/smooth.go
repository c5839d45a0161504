package foam

// Smoother applies repeated 3x3 box averaging to a field to remove
// rasterization blockiness before contouring. It owns two scratch
// buffers reused across frames; the returned field is valid until the
// next Smooth call. The input field is never mutated.
type Smoother struct {
	out     Field
	scratch []float32
}

// Smooth averages the field passes times. Edge cells average over
// their in-bounds neighbors only, so there is no wraparound and no
// zero-padding darkening at the border (at the cost of exact mass
// conservation along edges). passes <= 0 returns an equivalent copy.
func (s *Smoother) Smooth(f *Field, passes int) *Field {
	n := f.W * f.H
	if cap(s.out.Cells) < n {
		s.out.Cells = make([]float32, n)
		s.scratch = make([]float32, n)
	}
	s.out.W, s.out.H = f.W, f.H
	s.out.Cells = s.out.Cells[:n]
	s.scratch = s.scratch[:n]

	copy(s.out.Cells, f.Cells)
	for p := 0; p < passes; p++ {
		boxBlur(s.scratch, s.out.Cells, f.W, f.H)
		s.out.Cells, s.scratch = s.scratch, s.out.Cells
	}
	return &s.out
}

// boxBlur writes one 3x3 in-bounds box average of src into dst.
func boxBlur(dst, src []float32, w, h int) {
	for y := 0; y < h; y++ {
		y0, y1 := y-1, y+1
		if y0 < 0 {
			y0 = 0
		}
		if y1 >= h {
			y1 = h - 1
		}
		for x := 0; x < w; x++ {
			x0, x1 := x-1, x+1
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			var sum float32
			var count int
			for ny := y0; ny <= y1; ny++ {
				base := ny * w
				for nx := x0; nx <= x1; nx++ {
					sum += src[base+nx]
					count++
				}
			}
			dst[y*w+x] = sum / float32(count)
		}
	}
}
