package support

import (
	"math"

	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/shadow"
	"github.com/chazu/strut/pkg/symmetry"
)

const (
	// Fraction of each perimeter segment a boundary support occupies;
	// the rest becomes the gap to its neighbors.
	segmentFill = 0.4

	// Arc step between sampled inward/outward point pairs.
	sampleStep = 10.0

	// Arc distance for the finite-difference tangent.
	tangentStep = 1.0

	inwardRatio  = 0.35
	inwardMax    = 50.0
	outwardRatio = 0.10
	outwardMin   = 5.0
	outwardMax   = 20.0

	minBoundaryHeight   = 5.0
	boundaryHeightRatio = 0.3
)

// boundarySupports places the target count of supports straddling the
// silhouette perimeter at symmetry-derived arc positions.
func boundarySupports(perimeter []geom.Point2D, a *shadow.Analysis, sym symmetry.Analysis, partTop, plateTop float64, opts Options, sink diag.Sink) []*Support {
	total := geom.PerimeterLength(perimeter)
	if total <= 0 {
		return nil
	}

	fracs := symmetry.Positions(perimeter, sym, opts.BoundaryTarget)
	sink.Emit("boundary", "placing %d supports at arc fractions %v", len(fracs), fracs)

	minDim := math.Min(a.Bounds.Width(), a.Bounds.Depth())
	arcSpan := segmentFill * total / float64(len(fracs))

	inward := math.Min(inwardRatio*minDim, inwardMax)
	inward = math.Min(inward, arcSpan/2)
	outward := clamp(outwardRatio*minDim, outwardMin, outwardMax)

	height := math.Max(minBoundaryHeight, boundaryHeightRatio*(partTop-plateTop))

	var supports []*Support
	for _, f := range fracs {
		world := boundaryFootprint(perimeter, a.Center, f, arcSpan, total, inward, outward)
		if len(world) < 3 {
			sink.Emit("boundary", "degenerate footprint at frac %.3f, skipping", f)
			continue
		}
		supports = append(supports, newSupport(world, height, plateTop, opts))
	}
	return supports
}

// boundaryFootprint builds one support polygon centered at arc fraction
// f: the convex hull of inward and outward offset points sampled along
// the support's arc span, simplified for printing.
func boundaryFootprint(perimeter []geom.Point2D, center geom.Point2D, f, arcSpan, total, inward, outward float64) []geom.Point2D {
	halfFrac := arcSpan / 2 / total

	var pts []geom.Point2D
	addPair := func(frac float64) {
		p := geom.PointAtFrac(perimeter, frac)
		n := outwardNormal(perimeter, center, frac, total)
		pts = append(pts, p.Add(n.Scale(outward)), p.Sub(n.Scale(inward)))
	}

	// Endpoints straddle the boundary on the perimeter itself.
	pts = append(pts,
		geom.PointAtFrac(perimeter, wrap(f-halfFrac)),
		geom.PointAtFrac(perimeter, wrap(f+halfFrac)))

	steps := int(math.Ceil(arcSpan / sampleStep))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := -halfFrac + 2*halfFrac*float64(i)/float64(steps)
		addPair(wrap(f + t))
	}

	return simplifyFootprint(geom.ConvexHull(pts))
}

// outwardNormal derives the perimeter normal at an arc fraction from a
// finite-difference tangent, oriented away from the silhouette center.
func outwardNormal(perimeter []geom.Point2D, center geom.Point2D, frac, total float64) geom.Point2D {
	df := tangentStep / total
	prev := geom.PointAtFrac(perimeter, wrap(frac-df))
	next := geom.PointAtFrac(perimeter, wrap(frac+df))

	tangent := next.Sub(prev)
	if tangent.Norm() == 0 {
		tangent = geom.Point2D{X: 1}
	}
	n := tangent.Perp().Unit()

	at := geom.PointAtFrac(perimeter, frac)
	if n.Dot(at.Sub(center)) < 0 {
		n = n.Scale(-1)
	}
	return n
}

// simplifyFootprint reduces a raw hull to a printable polygon: filter
// near-duplicate vertices, Douglas-Peucker, a second coarser pass when
// still over 12 vertices, then cap edge lengths at 5mm.
func simplifyFootprint(poly []geom.Point2D) []geom.Point2D {
	if len(poly) < 3 {
		return poly
	}
	out := geom.FilterMinSpacing(poly, 1.0)
	out = geom.SimplifyDouglasPeucker(out, 0.5)
	if len(out) > 12 {
		out = geom.SimplifyDouglasPeucker(out, 1.0)
	}
	return geom.SubdivideMaxEdge(out, 5.0)
}

func wrap(f float64) float64 {
	f = math.Mod(f, 1)
	if f < 0 {
		f += 1
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
