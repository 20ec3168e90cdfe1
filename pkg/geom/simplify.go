package geom

// SimplifyDouglasPeucker reduces a polyline to the vertices that deviate
// from the chords by more than epsilon. The first and last points are
// always kept.
func SimplifyDouglasPeucker(pts []Point2D, epsilon float64) []Point2D {
	if len(pts) <= 2 {
		out := make([]Point2D, len(pts))
		copy(out, pts)
		return out
	}

	maxDist := 0.0
	maxIdx := 0
	first, last := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		if d := PointSegmentDistance(pts[i], first, last); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return []Point2D{first, last}
	}

	left := SimplifyDouglasPeucker(pts[:maxIdx+1], epsilon)
	right := SimplifyDouglasPeucker(pts[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// FilterMinSpacing drops points closer than minDist to the previously
// kept point. The first point is always kept.
func FilterMinSpacing(pts []Point2D, minDist float64) []Point2D {
	if len(pts) == 0 {
		return nil
	}
	out := []Point2D{pts[0]}
	for _, p := range pts[1:] {
		if p.Dist(out[len(out)-1]) >= minDist {
			out = append(out, p)
		}
	}
	return out
}

// SubdivideMaxEdge inserts vertices along polygon edges so that no edge
// exceeds maxEdge. The polygon is treated as closed.
func SubdivideMaxEdge(poly []Point2D, maxEdge float64) []Point2D {
	if len(poly) < 2 || maxEdge <= 0 {
		out := make([]Point2D, len(poly))
		copy(out, poly)
		return out
	}
	var out []Point2D
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		out = append(out, a)
		seg := a.Dist(b)
		if seg <= maxEdge {
			continue
		}
		n := int(seg / maxEdge)
		for j := 1; j <= n; j++ {
			t := float64(j) / float64(n+1)
			out = append(out, a.Add(b.Sub(a).Scale(t)))
		}
	}
	return out
}
