package contour

import "math"

// Simplify reduces the point count of a closed loop by dropping points
// that lie within tolerance of the line between their neighbors. The
// first and last points are always kept. This is a cheap single
// forward pass, not a full Douglas-Peucker: the surviving predecessor
// becomes the anchor for subsequent distance tests, so the result is
// order-dependent.
//
// A tolerance <= 0 returns an unmodified copy.
func Simplify(loop Contour, tolerance float32) Contour {
	out := make(Contour, 0, len(loop))
	if tolerance <= 0 || len(loop) <= 2 {
		return append(out, loop...)
	}

	out = append(out, loop[0])
	anchor := loop[0]
	for i := 1; i < len(loop)-1; i++ {
		if perpDistance(loop[i], anchor, loop[i+1]) <= tolerance {
			continue
		}
		out = append(out, loop[i])
		anchor = loop[i]
	}
	out = append(out, loop[len(loop)-1])
	return out
}

// perpDistance is the perpendicular distance from p to the line
// through a and b. Degenerates to point distance when a and b
// coincide.
func perpDistance(p, a, b Point) float32 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return float32(math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y)))
	}
	area := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return float32(math.Abs(area) / length)
}
