// Package symmetry scores reflection symmetry of a silhouette perimeter
// about the two horizontal axes and derives perimeter arc positions that
// respect the detected symmetry.
package symmetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/chazu/strut/pkg/geom"
)

const (
	// An axis counts as symmetric when at least this fraction of
	// reflected perimeter points land back on the perimeter.
	scoreThreshold = 0.70

	// Match tolerance as a fraction of the average in-plane dimension.
	toleranceRatio = 0.15
)

// Analysis holds per-axis reflection symmetry results. XSymmetric means
// the perimeter mirrors across the line z = Center.Z, ZSymmetric across
// x = Center.X.
type Analysis struct {
	XSymmetric bool
	ZSymmetric bool
	Center     geom.Point2D
	XScore     float64
	ZScore     float64
}

// Detect reflects every perimeter point across the silhouette center,
// one axis at a time, and scores the fraction of reflected points whose
// nearest unreflected perimeter point lies within tolerance.
func Detect(perimeter []geom.Point2D, center geom.Point2D, width, depth float64) Analysis {
	a := Analysis{Center: center}
	if len(perimeter) == 0 {
		return a
	}

	pts := make(kdtree.Points, len(perimeter))
	for i, p := range perimeter {
		pts[i] = kdtree.Point{p.X, p.Z}
	}
	tree := kdtree.New(pts, false)

	tol := toleranceRatio * (width + depth) / 2
	tolSq := tol * tol // kdtree distances are squared euclidean

	var xMatch, zMatch int
	for _, p := range perimeter {
		if _, d := tree.Nearest(kdtree.Point{p.X, 2*center.Z - p.Z}); d <= tolSq {
			xMatch++
		}
		if _, d := tree.Nearest(kdtree.Point{2*center.X - p.X, p.Z}); d <= tolSq {
			zMatch++
		}
	}

	n := float64(len(perimeter))
	a.XScore = float64(xMatch) / n
	a.ZScore = float64(zMatch) / n
	a.XSymmetric = a.XScore >= scoreThreshold
	a.ZSymmetric = a.ZScore >= scoreThreshold
	return a
}

// Positions returns count arc-length fractions in [0,1) along the
// perimeter, sorted ascending, chosen to respect the detected symmetry:
// mirrored pairs about a single symmetric axis, phase-optimized even
// spacing when both axes are symmetric, plain uniform spacing otherwise.
func Positions(perimeter []geom.Point2D, a Analysis, count int) []float64 {
	if count <= 0 || len(perimeter) < 2 {
		return nil
	}

	var fracs []float64
	switch {
	case a.XSymmetric && a.ZSymmetric:
		fracs = dualAxisPositions(perimeter, a.Center, count)
	case a.XSymmetric:
		fracs = singleAxisPositions(perimeter, a.Center, count, true)
	case a.ZSymmetric:
		fracs = singleAxisPositions(perimeter, a.Center, count, false)
	default:
		fracs = uniformPositions(count)
	}

	for i := range fracs {
		fracs[i] = wrapFrac(fracs[i])
	}
	sort.Float64s(fracs)
	return fracs
}

func uniformPositions(count int) []float64 {
	fracs := make([]float64, count)
	for i := range fracs {
		fracs[i] = float64(i) / float64(count)
	}
	return fracs
}

// singleAxisPositions anchors mirrored support pairs at the two arc
// positions where the perimeter crosses the symmetric axis. xAxis
// selects the mirror line z = center.Z; otherwise x = center.X.
func singleAxisPositions(perimeter []geom.Point2D, center geom.Point2D, count int, xAxis bool) []float64 {
	crossings := axisCrossings(perimeter, center, xAxis)
	if len(crossings) < 2 {
		return uniformPositions(count)
	}

	// The first two crossings split the loop into two mirrored halves.
	c1, c2 := crossings[0], crossings[1]
	span := c2 - c1
	if span <= 0 {
		span += 1
	}

	var halfFracs []float64
	switch count {
	case 4:
		halfFracs = []float64{0.25, 0.75}
	case 5:
		halfFracs = []float64{0.25, 0.75}
	case 6:
		halfFracs = []float64{0.25, 0.5, 0.75}
	default:
		k := count / 2
		for i := 0; i < k; i++ {
			halfFracs = append(halfFracs, float64(i+1)/float64(k+1))
		}
	}

	var fracs []float64
	for _, h := range halfFracs {
		// A support at h along the first half mirrors to 1-h along
		// the second (the mirror reverses arc orientation).
		fracs = append(fracs, c1+h*span, c2+(1-h)*(1-span))
	}
	if count%2 != 0 {
		// Odd counts anchor the extra support on the axis itself.
		fracs = append(fracs, c1)
	}
	return fracs
}

// dualAxisPositions spaces supports evenly, then phase-shifts them by
// the offset that maximizes the mean distance from center so supports
// prefer corners over edge midpoints. The scan keeps the first strict
// maximum.
func dualAxisPositions(perimeter []geom.Point2D, center geom.Point2D, count int) []float64 {
	base := uniformPositions(count)

	bestOffset, bestScore := 0.0, -1.0
	for step := 0; step < 100; step++ {
		offset := float64(step) * 0.01
		var sum float64
		for _, f := range base {
			p := geom.PointAtFrac(perimeter, wrapFrac(f+offset))
			sum += p.Dist(center)
		}
		if sum > bestScore {
			bestScore = sum
			bestOffset = offset
		}
	}

	fracs := make([]float64, count)
	for i, f := range base {
		fracs[i] = f + bestOffset
	}
	return fracs
}

// axisCrossings returns the sorted arc fractions at which perimeter
// edges cross the mirror line.
func axisCrossings(perimeter []geom.Point2D, center geom.Point2D, xAxis bool) []float64 {
	total := geom.PerimeterLength(perimeter)
	if total <= 0 {
		return nil
	}

	side := func(p geom.Point2D) float64 {
		if xAxis {
			return p.Z - center.Z
		}
		return p.X - center.X
	}

	var crossings []float64
	arc := 0.0
	for i := range perimeter {
		a := perimeter[i]
		b := perimeter[(i+1)%len(perimeter)]
		segLen := a.Dist(b)
		sa, sb := side(a), side(b)
		if (sa <= 0 && sb > 0) || (sa > 0 && sb <= 0) {
			t := 0.0
			if sb != sa {
				t = sa / (sa - sb)
			}
			crossings = append(crossings, (arc+t*segLen)/total)
		}
		arc += segLen
	}
	sort.Float64s(crossings)
	return crossings
}

func wrapFrac(f float64) float64 {
	f = math.Mod(f, 1)
	if f < 0 {
		f += 1
	}
	return f
}
