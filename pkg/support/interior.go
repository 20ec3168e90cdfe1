package support

import (
	"math"

	"github.com/chazu/strut/pkg/cluster"
	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/shadow"
)

const (
	// Clusters below this footprint area never get their own support.
	significantClusterArea = 30.0

	// Extra clearance beyond the boundary support depth that an
	// interior cluster must keep from the perimeter.
	perimeterClearance = 15.0

	// Interior supports never exceed this fraction of the boundary
	// inward depth, so they cannot outgrow boundary supports.
	interiorDepthRatio = 0.6

	minInteriorHeight = 1.0
)

// interiorSupports places independent supports under significant
// overhang clusters that sit far enough from the perimeter to avoid
// colliding with boundary supports. Clusters arrive area-descending;
// at most budget supports are produced.
func interiorSupports(clusters []*cluster.Cluster, perimeter []geom.Point2D, a *shadow.Analysis, plateTop float64, budget int, opts Options, sink diag.Sink) []*Support {
	if budget <= 0 || len(clusters) == 0 {
		return nil
	}

	minDim := math.Min(a.Bounds.Width(), a.Bounds.Depth())
	inward := math.Min(inwardRatio*minDim, inwardMax)
	outward := clamp(outwardRatio*minDim, outwardMin, outwardMax)
	clearance := inward + outward + perimeterClearance
	maxDim := interiorDepthRatio * inward

	var supports []*Support
	for _, c := range clusters {
		if len(supports) >= budget {
			break
		}
		if c.TotalArea < significantClusterArea {
			continue
		}
		if d := geom.DistanceToPolygon(c.Centroid(), perimeter); d <= clearance {
			sink.Emit("interior", "cluster at (%.1f, %.1f) too close to perimeter (%.1f <= %.1f)", c.CentroidX, c.CentroidZ, d, clearance)
			continue
		}

		world := interiorFootprint(c, maxDim, opts)
		height := math.Max(c.MinY-plateTop-opts.ContactOffset, minInteriorHeight)
		supports = append(supports, newSupport(world, height, plateTop, opts))
	}
	return supports
}

// interiorFootprint inflates the cluster's own convex hull by the
// support padding, capped so its largest dimension stays within maxDim.
// Degenerate clusters fall back to a centered square.
func interiorFootprint(c *cluster.Cluster, maxDim float64, opts Options) []geom.Point2D {
	centroid := c.Centroid()

	hullPts := make([]geom.Point2D, len(c.Points))
	for i, p := range c.Points {
		hullPts[i] = geom.Point2D{X: p.X, Z: p.Z}
	}
	hull := geom.ConvexHull(hullPts)

	if len(hull) < 3 {
		side := clamp(c.MaxDimension()+2*opts.SupportPadding, opts.MinSupportSize, opts.MaxSupportSize)
		return squareAt(centroid, side)
	}

	poly := geom.InflateAbout(hull, centroid, opts.SupportPadding)
	if dim := maxDimension(poly); maxDim > 0 && dim > maxDim {
		poly = geom.ScaleAbout(poly, centroid, maxDim/dim)
	}
	return simplifyFootprint(poly)
}

func squareAt(center geom.Point2D, side float64) []geom.Point2D {
	h := side / 2
	return []geom.Point2D{
		{X: center.X - h, Z: center.Z - h},
		{X: center.X + h, Z: center.Z - h},
		{X: center.X + h, Z: center.Z + h},
		{X: center.X - h, Z: center.Z + h},
	}
}

func maxDimension(poly []geom.Point2D) float64 {
	b := geom.BoundsOf(poly)
	return math.Max(b.Width(), b.Depth())
}
