package shadow

import (
	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/mesh"
	"github.com/chazu/strut/pkg/raster"
)

// frameMargin is the world-space margin around the part bounds in the
// top-down render frame.
const frameMargin = 5

// Source is one perimeter extraction stage. It reports false when it
// cannot produce at least 3 points, sending the pipeline to the next
// stage.
type Source func() ([]geom.Point2D, bool)

// firstSuccess runs sources in order and returns the first usable
// perimeter. Fallback order is policy, not control flow buried in
// conditionals.
func firstSuccess(sources ...Source) ([]geom.Point2D, bool) {
	for _, src := range sources {
		if pts, ok := src(); ok {
			return pts, true
		}
	}
	return nil, false
}

// Perimeter returns the highest-fidelity part outline available: a
// Moore-traced boundary of a top-down render, then a row-scan of the
// same render, then the concave hull from a. td may be nil to skip the
// render path entirely. The result always has >=3 points because a.Hull
// does.
func Perimeter(objs []mesh.Object, a *Analysis, td raster.TopDown, resolution int, sink diag.Sink) []geom.Point2D {
	if resolution <= 0 {
		resolution = raster.DefaultResolution
	}

	var grid *raster.Grid
	if td != nil {
		frame := a.Bounds.Expand(frameMargin)
		img, err := td.RasterizeTopDown(objs, frame, resolution)
		if err != nil {
			sink.Emit("shadow", "top-down render failed: %v", err)
		} else {
			grid = raster.BinaryGrid(img, frame)
		}
	}

	cellTol := 0.5
	if grid != nil {
		cw, ch := grid.CellSize()
		cellTol = (cw + ch) / 4
	}

	pts, _ := firstSuccess(
		func() ([]geom.Point2D, bool) {
			if grid == nil {
				return nil, false
			}
			out := geom.SimplifyDouglasPeucker(mooreTrace(grid), cellTol)
			if len(out) < 3 {
				sink.Emit("shadow", "moore trace insufficient (%d points)", len(out))
				return nil, false
			}
			return out, true
		},
		func() ([]geom.Point2D, bool) {
			if grid == nil {
				return nil, false
			}
			out := geom.SimplifyDouglasPeucker(rowScan(grid), cellTol)
			if len(out) < 3 {
				sink.Emit("shadow", "row scan insufficient (%d points)", len(out))
				return nil, false
			}
			return out, true
		},
		func() ([]geom.Point2D, bool) {
			return a.Hull, len(a.Hull) >= 3
		},
	)
	return pts
}
