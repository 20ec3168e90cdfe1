package support

import (
	"math"

	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
)

const (
	// Buffer applied to both overlap tests: bounds grow by it, the
	// radius criterion shrinks by it.
	mergeDistance = 2.0

	// Supports thinner than this in their narrowest sampled direction
	// are dropped.
	minSupportWidth = 8.0
)

// MergeOverlapping collapses groups of mutually overlapping supports
// into single supports. Overlap is a graph relation: connected
// components are merged by taking the convex hull over every member's
// world vertices, re-simplifying, and recentering. Non-overlapping
// supports pass through unchanged, so the operation is idempotent.
func MergeOverlapping(supports []*Support, plateTop float64, opts Options) []*Support {
	if len(supports) < 2 {
		return supports
	}

	bounds := make([]geom.Bounds, len(supports))
	for i, s := range supports {
		bounds[i] = s.WorldBounds()
	}

	visited := make([]bool, len(supports))
	var out []*Support
	for i := range supports {
		if visited[i] {
			continue
		}
		visited[i] = true
		member := []int{i}

		for head := 0; head < len(member); head++ {
			cur := member[head]
			for j := range supports {
				if visited[j] {
					continue
				}
				if overlaps(bounds[cur], bounds[j]) {
					visited[j] = true
					member = append(member, j)
				}
			}
		}

		if len(member) == 1 {
			out = append(out, supports[i])
			continue
		}
		out = append(out, mergeGroup(supports, member, plateTop, opts))
	}
	return out
}

// overlaps reports whether two supports should merge: buffered bounds
// intersection, or center distance under the sum of half-diagonal radii
// minus the merge distance.
func overlaps(a, b geom.Bounds) bool {
	if a.Expand(mergeDistance).Intersects(b) {
		return true
	}
	ca, cb := a.Center(), b.Center()
	ra := a.Diagonal() / 2
	rb := b.Diagonal() / 2
	return ca.Dist(cb) < ra+rb-mergeDistance
}

func mergeGroup(supports []*Support, member []int, plateTop float64, opts Options) *Support {
	var pts []geom.Point2D
	height := 0.0
	for _, idx := range member {
		s := supports[idx]
		pts = append(pts, s.WorldPolygon()...)
		height = math.Max(height, s.Height)
	}
	world := simplifyFootprint(geom.ConvexHull(pts))
	return newSupport(world, height, plateTop, opts)
}

// mergeToFixpoint repeats merge passes until the support set is stable.
// Each pass can create hulls that newly overlap their neighbors, so a
// single pass is not always enough.
func mergeToFixpoint(supports []*Support, plateTop float64, opts Options, sink diag.Sink) []*Support {
	for {
		merged := MergeOverlapping(supports, plateTop, opts)
		if len(merged) == len(supports) {
			return merged
		}
		sink.Emit("merge", "%d supports merged into %d", len(supports), len(merged))
		supports = merged
	}
}

// filterThin drops supports whose minimum width, approximated by the
// bounding-box width and depth plus the 45 and 135 degree projected
// widths, falls below the floor. The four-direction sample is a
// deliberate approximation of rotating calipers.
func filterThin(supports []*Support, sink diag.Sink) []*Support {
	var out []*Support
	for _, s := range supports {
		if w := minWidth(s.WorldPolygon()); w < minSupportWidth {
			sink.Emit("filter", "dropping support at (%.1f, %.1f): min width %.1f", s.CenterX, s.CenterZ, w)
			continue
		}
		out = append(out, s)
	}
	return out
}

func minWidth(poly []geom.Point2D) float64 {
	if len(poly) == 0 {
		return 0
	}
	b := geom.BoundsOf(poly)
	w := math.Min(b.Width(), b.Depth())

	inv := 1 / math.Sqrt2
	for _, dir := range []geom.Point2D{{X: inv, Z: inv}, {X: -inv, Z: inv}} {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, p := range poly {
			d := p.Dot(dir)
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
		w = math.Min(w, hi-lo)
	}
	return w
}
