package geom

import "math"

// PolygonArea returns the unsigned area of a closed polygon given as a
// vertex ring without a repeated end point. Fewer than 3 vertices yield 0.
func PolygonArea(poly []Point2D) float64 {
	if len(poly) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		sum += p.X*q.Z - q.X*p.Z
	}
	return math.Abs(sum) / 2
}

// VertexCentroid returns the mean of the polygon vertices. This is the
// hull-vertex centroid, deliberately not the area centroid.
func VertexCentroid(poly []Point2D) Point2D {
	if len(poly) == 0 {
		return Point2D{}
	}
	var c Point2D
	for _, p := range poly {
		c.X += p.X
		c.Z += p.Z
	}
	return c.Scale(1 / float64(len(poly)))
}

// ScaleAbout returns poly scaled by factor about the given center.
func ScaleAbout(poly []Point2D, center Point2D, factor float64) []Point2D {
	out := make([]Point2D, len(poly))
	for i, p := range poly {
		out[i] = center.Add(p.Sub(center).Scale(factor))
	}
	return out
}

// InflateAbout pushes every vertex of poly outward from center by amount.
// For convex polygons this is a cheap approximation of a true offset.
func InflateAbout(poly []Point2D, center Point2D, amount float64) []Point2D {
	out := make([]Point2D, len(poly))
	for i, p := range poly {
		d := p.Sub(center)
		n := d.Norm()
		if n == 0 {
			out[i] = p
			continue
		}
		out[i] = center.Add(d.Scale((n + amount) / n))
	}
	return out
}

// PointSegmentDistance returns the distance from p to the segment ab.
func PointSegmentDistance(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}

// DistanceToPolygon returns the minimum distance from p to the closed
// polygon boundary.
func DistanceToPolygon(p Point2D, poly []Point2D) float64 {
	if len(poly) == 0 {
		return math.Inf(1)
	}
	if len(poly) == 1 {
		return p.Dist(poly[0])
	}
	min := math.Inf(1)
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		if d := PointSegmentDistance(p, a, b); d < min {
			min = d
		}
	}
	return min
}

// PerimeterLength returns the total arc length of the closed polygon.
func PerimeterLength(poly []Point2D) float64 {
	if len(poly) < 2 {
		return 0
	}
	sum := 0.0
	for i, p := range poly {
		sum += p.Dist(poly[(i+1)%len(poly)])
	}
	return sum
}

// PointAtFrac returns the point at fraction f in [0,1) of the closed
// polygon's total arc length, measured from vertex 0.
func PointAtFrac(poly []Point2D, f float64) Point2D {
	return PointAtArc(poly, f*PerimeterLength(poly))
}

// PointAtArc returns the point at arc length s along the closed polygon,
// measured from vertex 0. s wraps modulo the perimeter length.
func PointAtArc(poly []Point2D, s float64) Point2D {
	if len(poly) == 0 {
		return Point2D{}
	}
	if len(poly) == 1 {
		return poly[0]
	}
	total := PerimeterLength(poly)
	if total == 0 {
		return poly[0]
	}
	s = math.Mod(s, total)
	if s < 0 {
		s += total
	}
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		seg := a.Dist(b)
		if s <= seg {
			if seg == 0 {
				return a
			}
			return a.Add(b.Sub(a).Scale(s / seg))
		}
		s -= seg
	}
	return poly[0]
}
