// Package support places printable support polygons for a part resting
// on a flat plate: symmetric boundary supports straddling the silhouette
// perimeter plus inflated interior supports under significant overhang
// clusters, merged and filtered into a final non-overlapping set.
package support

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chazu/strut/pkg/cluster"
	"github.com/chazu/strut/pkg/diag"
	"github.com/chazu/strut/pkg/geom"
	"github.com/chazu/strut/pkg/mesh"
	"github.com/chazu/strut/pkg/overhang"
	"github.com/chazu/strut/pkg/raster"
	"github.com/chazu/strut/pkg/shadow"
	"github.com/chazu/strut/pkg/symmetry"
)

// Options configures a placement run. Zero values fall back to the
// corresponding DefaultOptions value, so callers can set only the
// fields they care about.
type Options struct {
	OverhangAngle       float64 // degrees from vertical
	BuildplateTolerance float64 // mm above plate top ignored as seated
	ClusterDistance     float64 // mm, planar clustering radius
	MinClusterArea      float64 // mm^2, smaller clusters are dropped
	SupportPadding      float64 // mm inflation around interior clusters
	MinSupportSize      float64 // mm, floor for fallback footprints
	MaxSupportSize      float64 // mm, cap for fallback footprints
	CornerRadius        float64 // mm, carried onto every support
	ContactOffset       float64 // mm gap below the supported face
	MaxSupportSpan      float64 // mm, cluster subdivision threshold
	BoundaryTarget      int     // boundary support count, clamped to [4,6]

	// Rasterizer, when set, enables the image-based silhouette path.
	Rasterizer raster.TopDown
	Resolution int

	Diag diag.Sink
}

// DefaultOptions returns the standard placement configuration.
func DefaultOptions() Options {
	return Options{
		OverhangAngle:       60,
		BuildplateTolerance: 2,
		ClusterDistance:     15,
		MinClusterArea:      25,
		SupportPadding:      3,
		MinSupportSize:      5,
		MaxSupportSize:      40,
		CornerRadius:        2,
		ContactOffset:       0,
		MaxSupportSpan:      50,
		BoundaryTarget:      5,
		Resolution:          raster.DefaultResolution,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.OverhangAngle == 0 {
		o.OverhangAngle = d.OverhangAngle
	}
	if o.BuildplateTolerance == 0 {
		o.BuildplateTolerance = d.BuildplateTolerance
	}
	if o.ClusterDistance == 0 {
		o.ClusterDistance = d.ClusterDistance
	}
	if o.MinClusterArea == 0 {
		o.MinClusterArea = d.MinClusterArea
	}
	if o.SupportPadding == 0 {
		o.SupportPadding = d.SupportPadding
	}
	if o.MinSupportSize == 0 {
		o.MinSupportSize = d.MinSupportSize
	}
	if o.MaxSupportSize == 0 {
		o.MaxSupportSize = d.MaxSupportSize
	}
	if o.CornerRadius == 0 {
		o.CornerRadius = d.CornerRadius
	}
	if o.MaxSupportSpan == 0 {
		o.MaxSupportSpan = d.MaxSupportSpan
	}
	if o.BoundaryTarget == 0 {
		o.BoundaryTarget = d.BoundaryTarget
	}
	if o.BoundaryTarget < 4 {
		o.BoundaryTarget = 4
	}
	if o.BoundaryTarget > 6 {
		o.BoundaryTarget = 6
	}
	if o.Resolution == 0 {
		o.Resolution = d.Resolution
	}
	return o
}

// Support is one placed support post. Polygon vertices are local to
// (CenterX, CenterZ) on the plate plane; the solid spans Height upward
// from BaseY. Supports are immutable once created.
type Support struct {
	ID            string
	Type          string // always "custom"
	CenterX       float64
	CenterZ       float64
	Height        float64
	BaseY         float64
	ContactOffset float64
	Polygon       []geom.Point2D
	CornerRadius  float64
}

func newSupport(world []geom.Point2D, height, baseY float64, opts Options) *Support {
	c := geom.VertexCentroid(world)
	local := make([]geom.Point2D, len(world))
	for i, p := range world {
		local[i] = p.Sub(c)
	}
	return &Support{
		ID:            uuid.NewString(),
		Type:          "custom",
		CenterX:       c.X,
		CenterZ:       c.Z,
		Height:        height,
		BaseY:         baseY,
		ContactOffset: opts.ContactOffset,
		Polygon:       local,
		CornerRadius:  opts.CornerRadius,
	}
}

// WorldPolygon returns the footprint in plate-plane world coordinates.
func (s *Support) WorldPolygon() []geom.Point2D {
	c := geom.Point2D{X: s.CenterX, Z: s.CenterZ}
	world := make([]geom.Point2D, len(s.Polygon))
	for i, p := range s.Polygon {
		world[i] = p.Add(c)
	}
	return world
}

// WorldBounds returns the axis-aligned bounds of the world footprint.
func (s *Support) WorldBounds() geom.Bounds {
	return geom.BoundsOf(s.WorldPolygon())
}

// Result is the output of one placement run. Message is non-empty only
// when the run failed outright (no silhouette); all other degradations
// still yield a best-effort support set.
type Result struct {
	Supports          []*Support
	Clusters          []*cluster.Cluster
	Message           string
	TotalOverhangArea float64
	DebugPerimeter    []geom.Point2D
}

// PlaceOverhangSupports runs the full placement pipeline: silhouette,
// overhang detection, clustering, symmetry-aware boundary placement,
// interior supports, overlap merging, and the thin-support filter. The
// call is pure given its inputs; every run allocates fresh state.
func PlaceOverhangSupports(objs []mesh.Object, plateTop float64, opts Options) *Result {
	opts = opts.withDefaults()
	sink := opts.Diag

	analysis, err := shadow.Analyze(objs, plateTop, sink)
	if err != nil {
		return &Result{Message: fmt.Sprintf("silhouette extraction failed: %v", err)}
	}

	perimeter := shadow.Perimeter(objs, analysis, opts.Rasterizer, opts.Resolution, sink)
	if len(perimeter) < 3 {
		return &Result{Message: "silhouette perimeter has fewer than 3 points"}
	}

	points := overhang.Detect(objs, plateTop, opts.OverhangAngle, opts.BuildplateTolerance)
	totalArea := overhang.TotalArea(points)
	sink.Emit("overhang", "%d overhang faces, %.1f mm^2", len(points), totalArea)

	var clusters []*cluster.Cluster
	for _, c := range cluster.Build(points, opts.ClusterDistance) {
		if c.TotalArea < opts.MinClusterArea {
			sink.Emit("cluster", "dropping cluster at (%.1f, %.1f): area %.1f below minimum", c.CentroidX, c.CentroidZ, c.TotalArea)
			continue
		}
		clusters = append(clusters, cluster.Subdivide(c, opts.MaxSupportSpan)...)
	}
	cluster.SortByAreaDesc(clusters)

	sym := symmetry.Detect(perimeter, analysis.Center, analysis.Bounds.Width(), analysis.Bounds.Depth())
	sink.Emit("symmetry", "x=%.2f z=%.2f", sym.XScore, sym.ZScore)

	partTop := topOf(objs, plateTop)
	boundary := boundarySupports(perimeter, analysis, sym, partTop, plateTop, opts, sink)

	interiorBudget := 6 - len(boundary)
	interior := interiorSupports(clusters, perimeter, analysis, plateTop, interiorBudget, opts, sink)

	supports := append(boundary, interior...)
	supports = mergeToFixpoint(supports, plateTop, opts, sink)
	supports = filterThin(supports, sink)

	return &Result{
		Supports:          supports,
		Clusters:          clusters,
		TotalOverhangArea: totalArea,
		DebugPerimeter:    perimeter,
	}
}

// topOf returns the highest vertex over all objects, floored at the
// plate top.
func topOf(objs []mesh.Object, plateTop float64) float64 {
	top := plateTop
	for _, o := range objs {
		for _, t := range o.Triangles() {
			for _, v := range []mesh.Vec3{t.A, t.B, t.C} {
				if v.Y > top {
					top = v.Y
				}
			}
		}
	}
	return top
}
