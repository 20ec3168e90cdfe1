package shadow

import (
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/raster"
)

// mooreOffsets is the 8-neighborhood in clockwise order starting west.
var mooreOffsets = [8][2]int{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// mooreTrace extracts the outer boundary of the occupied region by
// Moore-neighbor tracing: an 8-connected clockwise walk that keeps the
// backtrack direction to know where to resume scanning. Returns
// cell-center world points, collinear runs removed.
func mooreTrace(g *raster.Grid) []geom.Point2D {
	sc, sr, ok := firstOccupied(g)
	if !ok {
		return nil
	}

	var pts []geom.Point2D
	add := func(c, r int) {
		p := g.CellCenter(c, r)
		n := len(pts)
		if n >= 2 {
			a, b := pts[n-2], pts[n-1]
			crossZ := (b.X-a.X)*(p.Z-b.Z) - (b.Z-a.Z)*(p.X-b.X)
			if crossZ == 0 {
				pts = pts[:n-1] // drop the collinear middle point
			}
		}
		pts = append(pts, p)
	}

	cc, cr := sc, sr
	// Backtrack starts one cell west of the start, which is empty by the
	// row-major scan.
	bc, br := sc-1, sr
	add(cc, cr)

	limit := 4 * g.W * g.H
	for i := 0; i < limit; i++ {
		// Index of the backtrack cell in the neighborhood of the current.
		start := 0
		for k, off := range mooreOffsets {
			if cc+off[0] == bc && cr+off[1] == br {
				start = k
				break
			}
		}

		found := false
		for k := 1; k <= 8; k++ {
			off := mooreOffsets[(start+k)%8]
			nc, nr := cc+off[0], cr+off[1]
			if g.At(nc, nr) {
				// Backtrack becomes the last empty cell visited.
				prev := mooreOffsets[(start+k-1)%8]
				bc, br = cc+prev[0], cr+prev[1]
				cc, cr = nc, nr
				found = true
				break
			}
		}
		if !found {
			return pts // isolated cell
		}
		if cc == sc && cr == sr {
			return pts
		}
		add(cc, cr)
	}
	return pts
}

// rowScan builds a coarse perimeter from the leftmost and rightmost
// occupied column of every scanline, stitched into a closed loop. Used
// when Moore tracing fails.
func rowScan(g *raster.Grid) []geom.Point2D {
	type span struct {
		row, lo, hi int
	}
	var spans []span
	for r := 0; r < g.H; r++ {
		lo, hi := -1, -1
		for c := 0; c < g.W; c++ {
			if g.At(c, r) {
				if lo < 0 {
					lo = c
				}
				hi = c
			}
		}
		if lo >= 0 {
			spans = append(spans, span{row: r, lo: lo, hi: hi})
		}
	}
	if len(spans) == 0 {
		return nil
	}

	var pts []geom.Point2D
	for _, s := range spans {
		pts = append(pts, g.CellCenter(s.lo, s.row))
	}
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		pts = append(pts, g.CellCenter(s.hi, s.row))
	}
	return pts
}
