package support

import (
	"math"
	"testing"

	"github.com/chazu/strut/pkg/geom"
)

// boundaryFootprint takes an arc fraction, not an arc length: a support
// at f=0.5 of a square must straddle the corner opposite vertex 0, not
// sit at vertex 0.
func TestBoundaryFootprintAtHalfPerimeter(t *testing.T) {
	per := []geom.Point2D{
		{X: 0, Z: 0}, {X: 100, Z: 0}, {X: 100, Z: 100}, {X: 0, Z: 100},
	}
	center := geom.Point2D{X: 50, Z: 50}

	world := boundaryFootprint(per, center, 0.5, 40, 400, 10, 5)
	if len(world) < 3 {
		t.Fatalf("degenerate footprint: %d vertices", len(world))
	}

	c := geom.VertexCentroid(world)
	far := geom.Point2D{X: 100, Z: 100}
	if c.Dist(far) > 15 {
		t.Errorf("footprint centroid %+v, want within 15 of the half-arc corner %+v", c, far)
	}
	if c.Dist(per[0]) < 100 {
		t.Errorf("footprint centroid %+v sits near vertex 0, not at the half-arc point", c)
	}
}

func TestBoundaryFootprintStraddlesPerimeter(t *testing.T) {
	per := []geom.Point2D{
		{X: 0, Z: 0}, {X: 100, Z: 0}, {X: 100, Z: 100}, {X: 0, Z: 100},
	}
	center := geom.Point2D{X: 50, Z: 50}

	// Mid bottom edge, away from corners: the hull must extend both
	// outward (below z=0) and inward (above z=0).
	world := boundaryFootprint(per, center, 0.125, 40, 400, 10, 5)
	b := geom.BoundsOf(world)
	if b.MinZ > -4 {
		t.Errorf("footprint min z = %v, want outward reach below the edge", b.MinZ)
	}
	if b.MaxZ < 8 {
		t.Errorf("footprint max z = %v, want inward reach above the edge", b.MaxZ)
	}
	if b.MinX > 35 || b.MaxX < 65 {
		t.Errorf("footprint x span [%v, %v] does not cover the arc span around (50, 0)", b.MinX, b.MaxX)
	}
}

func TestOutwardNormalPointsAwayFromCenter(t *testing.T) {
	per := []geom.Point2D{
		{X: 0, Z: 0}, {X: 100, Z: 0}, {X: 100, Z: 100}, {X: 0, Z: 100},
	}
	center := geom.Point2D{X: 50, Z: 50}

	tests := []struct {
		name string
		frac float64
		want geom.Point2D
	}{
		{"bottom edge", 0.125, geom.Point2D{X: 0, Z: -1}},
		{"right edge", 0.375, geom.Point2D{X: 1, Z: 0}},
		{"top edge", 0.625, geom.Point2D{X: 0, Z: 1}},
		{"left edge", 0.875, geom.Point2D{X: -1, Z: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := outwardNormal(per, center, tt.frac, 400)
			if math.Abs(n.X-tt.want.X) > 1e-9 || math.Abs(n.Z-tt.want.Z) > 1e-9 {
				t.Errorf("outwardNormal(%v) = %+v, want %+v", tt.frac, n, tt.want)
			}
		})
	}
}
