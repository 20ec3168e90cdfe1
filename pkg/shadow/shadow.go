// Package shadow extracts the 2D footprint of a part resting on the
// plate: the convex hull of its projected vertices, a tighter concave
// hull, and optionally a high-fidelity perimeter traced from a top-down
// render. Placement runs on this footprint.
package shadow

import (
	"errors"

	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/mesh"
)

// ErrNoSilhouette is returned when fewer than 3 silhouette points can be
// produced by any method. It is the only fatal condition in a placement
// run.
var ErrNoSilhouette = errors.New("shadow: fewer than 3 silhouette points")

// expandFactor scales the shadow hull for legacy wall-effect sizing.
const expandFactor = 1.20

// projectSlack admits vertices sitting exactly on the plate top despite
// float32 mesh storage.
const projectSlack = 0.01

// concaveMinPoints is the projected-point count below which the concave
// hull refinement is skipped in favor of the convex hull.
const concaveMinPoints = 10

// Analysis is the part's 2D footprint.
type Analysis struct {
	Hull     []geom.Point2D // simple polygon, >=3 vertices when valid
	Expanded []geom.Point2D // Hull scaled 1.20x about Center
	Bounds   geom.Bounds
	Center   geom.Point2D // centroid of hull vertices, not area centroid
	Area     float64
}

// Analyze projects every mesh vertex above plateTop onto the plate plane
// and builds the footprint. Returns ErrNoSilhouette when the meshes give
// fewer than 3 projected points.
func Analyze(objs []mesh.Object, plateTop float64, sink diag.Sink) (*Analysis, error) {
	pts := projectVertices(objs, plateTop)
	if len(pts) < 3 {
		return nil, ErrNoSilhouette
	}

	hull := geom.ConvexHull(pts)
	if len(hull) < 3 {
		return nil, ErrNoSilhouette
	}

	// Sparse clouds (coarse meshes) leave disconnected blobs in the
	// grid; a traced outline much smaller than the convex hull means the
	// closing failed, so keep the convex hull.
	refined := concaveHull(pts)
	if len(refined) >= 3 && geom.PolygonArea(refined) < geom.PolygonArea(hull)/2 {
		sink.Emit("shadow", "concave hull collapsed (area %.1f of %.1f), using convex hull",
			geom.PolygonArea(refined), geom.PolygonArea(hull))
		refined = nil
	}
	if len(refined) >= 3 {
		sink.Emit("shadow", "concave hull: %d vertices (convex %d)", len(refined), len(hull))
		hull = refined
	} else {
		sink.Emit("shadow", "concave hull unavailable, using convex hull")
	}

	center := geom.VertexCentroid(hull)
	return &Analysis{
		Hull:     hull,
		Expanded: geom.ScaleAbout(hull, center, expandFactor),
		Bounds:   geom.BoundsOf(hull),
		Center:   center,
		Area:     geom.PolygonArea(hull),
	}, nil
}

// projectVertices flattens every world-space triangle vertex at or above
// the plate top onto the XZ plane.
func projectVertices(objs []mesh.Object, plateTop float64) []geom.Point2D {
	var pts []geom.Point2D
	for _, o := range objs {
		for _, tri := range o.Triangles() {
			for _, v := range []mesh.Vec3{tri.A, tri.B, tri.C} {
				if v.Y >= plateTop-projectSlack {
					pts = append(pts, geom.Point2D{X: v.X, Z: v.Z})
				}
			}
		}
	}
	return pts
}
