package mesh_test

import (
	"math"
	"testing"

	"github.com/chazu/strut/pkg/mesh"
	"github.com/chazu/strut/pkg/mesh/meshtest"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestBoxTriangles(t *testing.T) {
	obj := meshtest.Object(meshtest.Box(10, 20, 30))
	tris := obj.Triangles()
	if len(tris) != 12 {
		t.Fatalf("box has %d triangles, want 12", len(tris))
	}

	// Total surface area: 2*(10*20 + 20*30 + 10*30) = 2200.
	area := 0.0
	for _, tri := range tris {
		area += tri.Area()
	}
	if !approx(area, 2200) {
		t.Errorf("surface area = %v, want 2200", area)
	}

	// Exactly two triangles face straight down.
	down := 0
	for _, tri := range tris {
		if approx(tri.Normal().Y, -1) {
			down++
		}
	}
	if down != 2 {
		t.Errorf("%d downward triangles, want 2", down)
	}
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		tr   mesh.Transform
		in   mesh.Vec3
		want mesh.Vec3
	}{
		{"identity", mesh.Identity(), mesh.Vec3{X: 1, Y: 2, Z: 3}, mesh.Vec3{X: 1, Y: 2, Z: 3}},
		{"translation", mesh.Translation(5, -1, 2), mesh.Vec3{X: 1, Y: 1, Z: 1}, mesh.Vec3{X: 6, Y: 0, Z: 3}},
		{"rotate y 90", mesh.RotationY(90), mesh.Vec3{X: 1, Y: 0, Z: 0}, mesh.Vec3{X: 0, Y: 0, Z: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(tt.in)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
				t.Errorf("Apply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestObjectTransformMovesTriangles(t *testing.T) {
	obj := meshtest.ObjectAt(meshtest.Box(10, 10, 10), 100, 50, -20)
	tris := obj.Triangles()
	for _, tri := range tris {
		c := tri.Centroid()
		if c.X < 100 || c.X > 110 || c.Y < 50 || c.Y > 60 || c.Z < -20 || c.Z > -10 {
			t.Fatalf("centroid %+v outside translated box", c)
		}
	}
}

func TestWorldTriangles(t *testing.T) {
	objs := []mesh.Object{
		meshtest.Object(meshtest.Box(10, 10, 10)),
		meshtest.ObjectAt(meshtest.Box(10, 10, 10), 100, 0, 0),
	}
	tris := mesh.WorldTriangles(objs)
	if len(tris) != 24 {
		t.Fatalf("got %d triangles, want 24", len(tris))
	}

	// The second object's transform must be baked in. Casting against
	// the flattened slice sees the translated box.
	down := mesh.Vec3{Y: -1}
	if !mesh.RayIntersectsTriangles(tris, mesh.Vec3{X: 105, Y: 20, Z: 5}, down, 100) {
		t.Error("ray over the translated box missed the flattened triangles")
	}
	if mesh.RayIntersectsTriangles(tris, mesh.Vec3{X: 50, Y: 20, Z: 5}, down, 100) {
		t.Error("ray between the boxes hit a flattened triangle")
	}
}

func TestRayIntersectsAny(t *testing.T) {
	objs := []mesh.Object{meshtest.Object(meshtest.Box(10, 10, 10))}
	down := mesh.Vec3{Y: -1}
	tests := []struct {
		name   string
		origin mesh.Vec3
		far    float64
		want   bool
	}{
		{"through the box", mesh.Vec3{X: 5, Y: 20, Z: 5}, 100, true},
		{"beside the box", mesh.Vec3{X: 50, Y: 20, Z: 5}, 100, false},
		{"too short to reach", mesh.Vec3{X: 5, Y: 20, Z: 5}, 5, false},
		{"inside, exits bottom", mesh.Vec3{X: 5, Y: 5, Z: 5}, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mesh.RayIntersectsAny(objs, tt.origin, down, tt.far); got != tt.want {
				t.Errorf("RayIntersectsAny() = %v, want %v", got, tt.want)
			}
		})
	}
}
