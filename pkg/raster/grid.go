// Package raster provides the top-down rasterization collaborator used
// for accurate silhouette extraction, and the binary occupancy grid the
// contour tracers walk. The rasterizer sits behind a narrow interface so
// tracing logic stays testable with synthetic grids.
package raster

import "github.com/chazu/strut/pkg/geom"

// Grid is a binary occupancy grid over a rectangular region of the plate
// plane. Column 0 is at MinX, row 0 at MinZ.
type Grid struct {
	W, H   int
	Bounds geom.Bounds
	cells  []bool
}

// NewGrid returns an empty w x h grid covering bounds.
func NewGrid(bounds geom.Bounds, w, h int) *Grid {
	return &Grid{W: w, H: h, Bounds: bounds, cells: make([]bool, w*h)}
}

// At reports whether cell (c, r) is occupied. Out-of-range cells are empty.
func (g *Grid) At(c, r int) bool {
	if c < 0 || r < 0 || c >= g.W || r >= g.H {
		return false
	}
	return g.cells[r*g.W+c]
}

// Set marks cell (c, r). Out-of-range cells are ignored.
func (g *Grid) Set(c, r int, v bool) {
	if c < 0 || r < 0 || c >= g.W || r >= g.H {
		return
	}
	g.cells[r*g.W+c] = v
}

// CellSize returns the world size of one cell.
func (g *Grid) CellSize() (w, h float64) {
	return g.Bounds.Width() / float64(g.W), g.Bounds.Depth() / float64(g.H)
}

// CellCenter returns the world coordinates of the center of cell (c, r).
func (g *Grid) CellCenter(c, r int) geom.Point2D {
	cw, ch := g.CellSize()
	return geom.Point2D{
		X: g.Bounds.MinX + (float64(c)+0.5)*cw,
		Z: g.Bounds.MinZ + (float64(r)+0.5)*ch,
	}
}

// CellOf returns the cell containing the world point p. The result may be
// out of range for points outside the bounds.
func (g *Grid) CellOf(p geom.Point2D) (c, r int) {
	cw, ch := g.CellSize()
	if cw == 0 || ch == 0 {
		return 0, 0
	}
	c = int((p.X - g.Bounds.MinX) / cw)
	r = int((p.Z - g.Bounds.MinZ) / ch)
	if c == g.W && p.X == g.Bounds.MaxX {
		c = g.W - 1
	}
	if r == g.H && p.Z == g.Bounds.MaxZ {
		r = g.H - 1
	}
	return c, r
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Dilate returns a new grid where every cell with an occupied
// 8-neighborhood becomes occupied.
func (g *Grid) Dilate() *Grid {
	out := NewGrid(g.Bounds, g.W, g.H)
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.anyNeighbor(c, r) {
				out.cells[r*g.W+c] = true
			}
		}
	}
	return out
}

// Erode returns a new grid keeping only cells whose full 8-neighborhood
// is occupied.
func (g *Grid) Erode() *Grid {
	out := NewGrid(g.Bounds, g.W, g.H)
	for r := 0; r < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if g.allNeighbors(c, r) {
				out.cells[r*g.W+c] = true
			}
		}
	}
	return out
}

func (g *Grid) anyNeighbor(c, r int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if g.At(c+dc, r+dr) {
				return true
			}
		}
	}
	return false
}

func (g *Grid) allNeighbors(c, r int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if !g.At(c+dc, r+dr) {
				return false
			}
		}
	}
	return true
}
