// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx today, others later) provide solid modeling and
// boolean operations behind this interface, so the fixture pipeline can
// swap backends without changing callers.
package kernel

import "github.com/chazu/strut/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// ExtrudePolygon extrudes a simple polygon (plate-plane coordinates)
	// along the kernel Z axis. The solid is centered on z=0; callers
	// translate it to its base height.
	ExtrudePolygon(profile []geom.Point2D, height float64) (Solid, error)

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
