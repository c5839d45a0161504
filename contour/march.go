// Package contour extracts isolines from dense scalar grids using
// marching squares. Two traversal strategies are provided: independent
// per-cell line segments (the cheap path used for stroking) and
// connected closed loops (for callers that need polygons to fill or
// simplify).
package contour

import (
	"log/slog"
)

// Point is a position in normalized [0,1]x[0,1] coordinates.
type Point struct {
	X, Y float32
}

// LineSegment is a single unconnected isoline piece in normalized
// coordinates. A cell emits 0, 1 or 2 of these.
type LineSegment struct {
	X1, Y1 float32
	X2, Y2 float32
}

// Contour is an ordered polygon loop. The last point connects
// implicitly back to the first.
type Contour []Point

// Cell edges, clockwise from the top.
const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
	edgeNone
)

// interpEpsilon guards the edge interpolation against division by a
// near-zero corner difference.
const interpEpsilon = 1e-6

// cellEdges maps a 4-bit corner classification (tl<<3 | tr<<2 | br<<1
// | bl) onto the edge pairs its isoline crosses. The saddle codes 5
// (tr+bl) and 10 (tl+br) carry two pairs; the pairing is a fixed
// choice that hugs each inside corner rather than a data-dependent
// center test.
var cellEdges = [16][4]uint8{
	0:  {edgeNone, edgeNone, edgeNone, edgeNone},
	1:  {edgeLeft, edgeBottom, edgeNone, edgeNone},
	2:  {edgeBottom, edgeRight, edgeNone, edgeNone},
	3:  {edgeLeft, edgeRight, edgeNone, edgeNone},
	4:  {edgeTop, edgeRight, edgeNone, edgeNone},
	5:  {edgeTop, edgeRight, edgeBottom, edgeLeft},
	6:  {edgeTop, edgeBottom, edgeNone, edgeNone},
	7:  {edgeLeft, edgeTop, edgeNone, edgeNone},
	8:  {edgeTop, edgeLeft, edgeNone, edgeNone},
	9:  {edgeTop, edgeBottom, edgeNone, edgeNone},
	10: {edgeTop, edgeLeft, edgeBottom, edgeRight},
	11: {edgeTop, edgeRight, edgeNone, edgeNone},
	12: {edgeLeft, edgeRight, edgeNone, edgeNone},
	13: {edgeBottom, edgeRight, edgeNone, edgeNone},
	14: {edgeLeft, edgeBottom, edgeNone, edgeNone},
	15: {edgeNone, edgeNone, edgeNone, edgeNone},
}

// cellSegments is the number of segments each classification emits.
var cellSegments = [16]int{0, 1, 1, 1, 1, 2, 1, 1, 1, 1, 2, 1, 1, 1, 1, 0}

// Extractor runs marching squares over a grid. The zero value is
// ready to use; reusing one Extractor across frames reuses its
// visited bitmap and segment buffer instead of reallocating.
type Extractor struct {
	visited []bool
	segs    []LineSegment
}

// classify builds the 4-bit corner code for the cell whose top-left
// sample is (cx, cy). Samples >= iso count as inside.
func classify(cells []float32, w, cx, cy int, iso float32) int {
	i := cy*w + cx
	code := 0
	if cells[i] >= iso {
		code |= 8 // top-left
	}
	if cells[i+1] >= iso {
		code |= 4 // top-right
	}
	if cells[i+w+1] >= iso {
		code |= 2 // bottom-right
	}
	if cells[i+w] >= iso {
		code |= 1 // bottom-left
	}
	return code
}

// crossT returns the fraction along an edge at which the isoline
// crosses, given the two corner values. Falls back to the midpoint
// when the corners are nearly equal.
func crossT(v1, v2, iso float32) float32 {
	d := v2 - v1
	if d > -interpEpsilon && d < interpEpsilon {
		return 0.5
	}
	return (iso - v1) / d
}

// edgePoint computes the normalized crossing point on one edge of the
// cell at (cx, cy).
func edgePoint(cells []float32, w, h, cx, cy, edge int, iso float32) Point {
	i := cy*w + cx
	sx := 1 / float32(w-1)
	sy := 1 / float32(h-1)
	switch edge {
	case edgeTop:
		t := crossT(cells[i], cells[i+1], iso)
		return Point{(float32(cx) + t) * sx, float32(cy) * sy}
	case edgeRight:
		t := crossT(cells[i+1], cells[i+w+1], iso)
		return Point{float32(cx+1) * sx, (float32(cy) + t) * sy}
	case edgeBottom:
		t := crossT(cells[i+w], cells[i+w+1], iso)
		return Point{(float32(cx) + t) * sx, float32(cy+1) * sy}
	default: // edgeLeft
		t := crossT(cells[i], cells[i+w], iso)
		return Point{float32(cx) * sx, (float32(cy) + t) * sy}
	}
}

// Segments extracts unconnected isoline segments at the given
// threshold. Each cell is handled independently: saddle cells emit
// both diagonal segments instead of guessing connectivity, so the
// result can never loop. The returned slice is owned by the Extractor
// and valid until the next call.
func (e *Extractor) Segments(cells []float32, w, h int, iso float32) []LineSegment {
	e.segs = e.segs[:0]
	if w < 2 || h < 2 || len(cells) < w*h {
		return e.segs
	}
	for cy := 0; cy < h-1; cy++ {
		for cx := 0; cx < w-1; cx++ {
			code := classify(cells, w, cx, cy, iso)
			n := cellSegments[code]
			for s := 0; s < n; s++ {
				p1 := edgePoint(cells, w, h, cx, cy, int(cellEdges[code][s*2]), iso)
				p2 := edgePoint(cells, w, h, cx, cy, int(cellEdges[code][s*2+1]), iso)
				e.segs = append(e.segs, LineSegment{p1.X, p1.Y, p2.X, p2.Y})
			}
		}
	}
	return e.segs
}

// exitEdge picks the edge to leave a cell through, given the edge it
// was entered through. Saddle cells resolve to whichever fixed pair
// contains the entry edge.
func exitEdge(code, entry int) int {
	n := cellSegments[code]
	for s := 0; s < n; s++ {
		a := int(cellEdges[code][s*2])
		b := int(cellEdges[code][s*2+1])
		if entry == a {
			return b
		}
		if entry == b {
			return a
		}
	}
	if entry == edgeNone && n > 0 {
		return int(cellEdges[code][1])
	}
	return edgeNone
}

// opposite translates an exit edge into the entry edge of the
// neighboring cell across it.
func opposite(edge int) int {
	switch edge {
	case edgeTop:
		return edgeBottom
	case edgeBottom:
		return edgeTop
	case edgeLeft:
		return edgeRight
	default:
		return edgeLeft
	}
}

// Contours extracts connected isoline loops at the given threshold.
// Loops that run off the grid are returned open if they collected at
// least three points. The walk is capped at 2*w*h steps per loop; a
// cap hit indicates an inconsistently resolved saddle and is logged
// at debug level rather than surfaced as an error.
func (e *Extractor) Contours(cells []float32, w, h int, iso float32) []Contour {
	if w < 2 || h < 2 || len(cells) < w*h {
		return nil
	}
	cw := w - 1
	ch := h - 1
	if cap(e.visited) < cw*ch {
		e.visited = make([]bool, cw*ch)
	}
	e.visited = e.visited[:cw*ch]
	for i := range e.visited {
		e.visited[i] = false
	}

	var result []Contour
	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			if e.visited[cy*cw+cx] {
				continue
			}
			code := classify(cells, w, cx, cy, iso)
			if code == 0 || code == 15 {
				continue
			}
			loop := e.trace(cells, w, h, cx, cy, iso)
			if len(loop) >= 3 {
				result = append(result, loop)
			}
		}
	}
	return result
}

// trace walks one loop starting from the given cell, marking cells
// visited as it consumes them.
func (e *Extractor) trace(cells []float32, w, h, startX, startY int, iso float32) Contour {
	cw := w - 1
	ch := h - 1
	maxSteps := 2 * w * h

	var loop Contour
	cx, cy := startX, startY
	entry := edgeNone
	for step := 0; ; step++ {
		if step >= maxSteps {
			slog.Debug("contour trace hit step cap, saddle resolution inconsistency",
				"start_x", startX, "start_y", startY, "steps", step)
			break
		}
		if cx < 0 || cy < 0 || cx >= cw || cy >= ch {
			break // ran off the grid, open loop
		}
		code := classify(cells, w, cx, cy, iso)
		if code == 0 || code == 15 {
			break
		}
		idx := cy*cw + cx
		if e.visited[idx] && !(cx == startX && cy == startY) {
			break
		}
		e.visited[idx] = true

		exit := exitEdge(code, entry)
		if exit == edgeNone {
			break
		}
		loop = append(loop, edgePoint(cells, w, h, cx, cy, exit, iso))

		switch exit {
		case edgeTop:
			cy--
		case edgeBottom:
			cy++
		case edgeLeft:
			cx--
		default:
			cx++
		}
		entry = opposite(exit)

		if cx == startX && cy == startY {
			break // closed
		}
	}
	return loop
}

// ExtractSegments is a convenience wrapper around Extractor.Segments
// for one-shot callers. The result is freshly allocated.
func ExtractSegments(cells []float32, w, h int, iso float32) []LineSegment {
	var e Extractor
	segs := e.Segments(cells, w, h, iso)
	out := make([]LineSegment, len(segs))
	copy(out, segs)
	return out
}

// ExtractContours is a convenience wrapper around Extractor.Contours
// for one-shot callers.
func ExtractContours(cells []float32, w, h int, iso float32) []Contour {
	var e Extractor
	return e.Contours(cells, w, h, iso)
}
