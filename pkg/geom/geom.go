// Package geom provides the 2D primitives shared by the support placement
// pipeline: points on the horizontal plane, bounds, convex hulls, polygon
// measurement and simplification. All coordinates are millimeters. The
// horizontal plane is spanned by X and Z; Y is up and never appears here.
package geom

import "math"

// Point2D is a coordinate on the horizontal (plate) plane.
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Z: p.Z - q.Z}
}

// Scale returns p scaled by f.
func (p Point2D) Scale(f float64) Point2D {
	return Point2D{X: p.X * f, Z: p.Z * f}
}

// Dist returns the Euclidean distance between p and q.
func (p Point2D) Dist(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Z-q.Z)
}

// Norm returns the length of p treated as a vector.
func (p Point2D) Norm() float64 {
	return math.Hypot(p.X, p.Z)
}

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point2D) Unit() Point2D {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1 / n)
}

// Perp returns p rotated 90 degrees counterclockwise in the XZ plane.
func (p Point2D) Perp() Point2D {
	return Point2D{X: -p.Z, Z: p.X}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point2D) Dot(q Point2D) float64 {
	return p.X*q.X + p.Z*q.Z
}

// Bounds is an axis-aligned rectangle on the plate plane.
type Bounds struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// BoundsOf returns the tight bounds of pts. An empty slice yields the
// zero Bounds.
func BoundsOf(pts []Point2D) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MinZ: pts[0].Z, MaxX: pts[0].X, MaxZ: pts[0].Z}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinZ = math.Min(b.MinZ, p.Z)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxZ = math.Max(b.MaxZ, p.Z)
	}
	return b
}

// Width returns the X extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the Z extent.
func (b Bounds) Depth() float64 { return b.MaxZ - b.MinZ }

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point2D {
	return Point2D{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}
}

// Diagonal returns the length of the bounds diagonal.
func (b Bounds) Diagonal() float64 {
	return math.Hypot(b.Width(), b.Depth())
}

// Expand returns the bounds grown by d on every side.
func (b Bounds) Expand(d float64) Bounds {
	return Bounds{MinX: b.MinX - d, MinZ: b.MinZ - d, MaxX: b.MaxX + d, MaxZ: b.MaxZ + d}
}

// Intersects reports whether b and o overlap.
func (b Bounds) Intersects(o Bounds) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinZ <= o.MaxZ && o.MinZ <= b.MaxZ
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p Point2D) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}
