package shadow

import (
	"math"

	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/raster"
)

// concaveHull refines a projected point cloud into an alpha-shape-like
// outline: rasterize the points into a uniform grid, close small gaps
// with one dilation and one erosion, trace the 0/1 boundary with
// marching squares and simplify. Returns nil when the input is too
// sparse or degenerate; the caller falls back to the convex hull.
func concaveHull(pts []geom.Point2D) []geom.Point2D {
	if len(pts) < concaveMinPoints {
		return nil
	}
	bounds := geom.BoundsOf(pts)
	w, d := bounds.Width(), bounds.Depth()
	if w <= 0 || d <= 0 {
		return nil
	}

	cell := math.Max(1.5, math.Min(w, d)/60)

	// Two cells of padding keep the closing and the contour walk away
	// from the grid edge.
	gb := bounds.Expand(2 * cell)
	cols := int(math.Ceil(gb.Width()/cell)) + 1
	rows := int(math.Ceil(gb.Depth()/cell)) + 1
	g := raster.NewGrid(gb, cols, rows)
	for _, p := range pts {
		c, r := g.CellOf(p)
		g.Set(c, r, true)
	}

	closed := g.Dilate().Erode()
	if closed.Count() == 0 {
		// Closing ate a too-sparse cloud; trace the dilated grid instead.
		closed = g.Dilate()
	}

	outline := marchingSquares(closed)
	if len(outline) < 3 {
		return nil
	}
	simplified := geom.SimplifyDouglasPeucker(outline, cell/2)
	if len(simplified) < 3 {
		return nil
	}
	return simplified
}

// marchingSquares walks the boundary between occupied and empty cells and
// returns the contour as world-space points at cell corners. Only the
// first (outer) contour is traced.
func marchingSquares(g *raster.Grid) []geom.Point2D {
	startC, startR, ok := firstOccupied(g)
	if !ok {
		return nil
	}

	cw, ch := g.CellSize()
	corner := func(c, r int) geom.Point2D {
		return geom.Point2D{
			X: g.Bounds.MinX + float64(c)*cw,
			Z: g.Bounds.MinZ + float64(r)*ch,
		}
	}

	// The 2x2 window at (c, r) looks at cells (c-1,r-1), (c,r-1),
	// (c-1,r), (c,r). Bit layout: 1=top-left, 2=top-right, 4=bottom-left,
	// 8=bottom-right, where "top" is the lower row index.
	state := func(c, r int) int {
		s := 0
		if g.At(c-1, r-1) {
			s |= 1
		}
		if g.At(c, r-1) {
			s |= 2
		}
		if g.At(c-1, r) {
			s |= 4
		}
		if g.At(c, r) {
			s |= 8
		}
		return s
	}

	type dir int
	const (
		none dir = iota
		up       // row-1
		down     // row+1
		left     // col-1
		right    // col+1
	)

	c, r := startC, startR
	prev := none
	var out []geom.Point2D
	limit := 4 * (g.W + 2) * (g.H + 2)

	for i := 0; i < limit; i++ {
		var next dir
		switch state(c, r) {
		case 1:
			next = up
		case 2:
			next = right
		case 3:
			next = right
		case 4:
			next = left
		case 5:
			next = up
		case 6:
			if prev == up {
				next = left
			} else {
				next = right
			}
		case 7:
			next = right
		case 8:
			next = down
		case 9:
			if prev == right {
				next = up
			} else {
				next = down
			}
		case 10:
			next = down
		case 11:
			next = down
		case 12:
			next = left
		case 13:
			next = up
		case 14:
			next = left
		default:
			return out // 0 or 15: walked off the contour
		}

		out = append(out, corner(c, r))
		switch next {
		case up:
			r--
		case down:
			r++
		case left:
			c--
		case right:
			c++
		}
		prev = next

		if c == startC && r == startR {
			return out
		}
	}
	return out
}

// firstOccupied returns the window position of the first occupied cell in
// row-major order. The window starts at the cell itself so its top-left
// neighborhood is empty.
func firstOccupied(g *raster.Grid) (c, r int, ok bool) {
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.At(c, r) {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}
