package geom

import "sort"

// cross returns the z-component of (b-a) x (c-a). Positive means the turn
// a->b->c is counterclockwise in the XZ plane.
func cross(a, b, c Point2D) float64 {
	return (b.X-a.X)*(c.Z-a.Z) - (b.Z-a.Z)*(c.X-a.X)
}

// ConvexHull computes the convex hull of pts using the monotone chain
// algorithm: sort by (X, Z), build the lower and upper chains dropping
// points that do not make a left turn. The result is counterclockwise
// without a repeated closing point. Inputs with fewer than 3 points are
// returned as a sorted copy.
func ConvexHull(pts []Point2D) []Point2D {
	if len(pts) < 3 {
		out := make([]Point2D, len(pts))
		copy(out, pts)
		sortPoints(out)
		return out
	}

	sorted := make([]Point2D, len(pts))
	copy(sorted, pts)
	sortPoints(sorted)

	var lower []Point2D
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []Point2D
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	// Each chain ends with the starting point of the other; drop them.
	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return hull
}

func sortPoints(pts []Point2D) {
	sort.SliceStable(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Z < pts[j].Z
	})
}
