// Package overhang classifies mesh faces that cannot be manufactured
// without support from below: faces whose normal points steeply enough
// downward. The visible-only variant additionally discards undercuts,
// faces occluded from straight below by other part geometry.
package overhang

import (
	"math"

	"github.com/chazu/strut/pkg/mesh"
)

// Point is the footprint of one overhanging face: its centroid, height,
// downward-facing-ness and area. Immutable once created.
type Point struct {
	X, Y, Z float64
	NormalY float64
	Area    float64
}

// rayLift is how far below the face centroid the undercut ray starts, so
// the ray does not immediately hit the face it was cast from.
const rayLift = 0.1

// Raycaster answers whether any mesh geometry blocks a ray. "No
// intersection" straight down means a face is supportable by a simple
// vertical post.
type Raycaster interface {
	IntersectsAny(origin, dir mesh.Vec3, far float64) bool
}

// meshSetRaycaster casts against the full mesh set, transformed to
// world space once up front.
type meshSetRaycaster struct {
	tris []mesh.Triangle
}

func (m meshSetRaycaster) IntersectsAny(origin, dir mesh.Vec3, far float64) bool {
	return mesh.RayIntersectsTriangles(m.tris, origin, dir, far)
}

// Detect returns one Point per overhanging face: centroid above
// plateTop+tolerance and normal.Y below -cos(angle), with angle in
// degrees from vertical. No visibility filtering.
func Detect(objs []mesh.Object, plateTop, angleDeg, tolerance float64) []Point {
	return detect(objs, plateTop, angleDeg, tolerance, nil)
}

// DetectVisible is the stricter variant: faces whose downward ray hits
// any mesh geometry are undercuts and are discarded. rc may be nil to
// cast against objs themselves.
func DetectVisible(objs []mesh.Object, plateTop, angleDeg, tolerance float64, rc Raycaster) []Point {
	if rc == nil {
		rc = meshSetRaycaster{tris: mesh.WorldTriangles(objs)}
	}
	return detect(objs, plateTop, angleDeg, tolerance, rc)
}

func detect(objs []mesh.Object, plateTop, angleDeg, tolerance float64, rc Raycaster) []Point {
	threshold := -math.Cos(angleDeg * math.Pi / 180)
	down := mesh.Vec3{Y: -1}

	var pts []Point
	for _, o := range objs {
		for _, tri := range o.Triangles() {
			c := tri.Centroid()
			if c.Y <= plateTop+tolerance {
				continue
			}
			n := tri.Normal()
			if n.Y >= threshold {
				continue
			}
			if rc != nil {
				origin := mesh.Vec3{X: c.X, Y: c.Y - rayLift, Z: c.Z}
				far := origin.Y - plateTop
				if far > 0 && rc.IntersectsAny(origin, down, far) {
					continue // undercut
				}
			}
			pts = append(pts, Point{
				X:       c.X,
				Y:       c.Y,
				Z:       c.Z,
				NormalY: n.Y,
				Area:    tri.Area(),
			})
		}
	}
	return pts
}

// TotalArea sums the face areas of pts.
func TotalArea(pts []Point) float64 {
	sum := 0.0
	for _, p := range pts {
		sum += p.Area
	}
	return sum
}
