package overhang_test

import (
	"math"
	"testing"

	"github.com/chazu/strut/pkg/mesh"
	"github.com/chazu/strut/pkg/mesh/meshtest"
	"github.com/chazu/strut/pkg/overhang"
)

// slopedQuad builds a quad tilted 45 degrees whose normal points down
// and sideways: normalY = -cos(45).
func slopedQuad() mesh.Object {
	var b meshtest.Builder
	b.Quad(
		mesh.Vec3{X: 0, Y: 10, Z: 0},
		mesh.Vec3{X: 10, Y: 10, Z: 0},
		mesh.Vec3{X: 10, Y: 20, Z: 10},
		mesh.Vec3{X: 0, Y: 20, Z: 10},
	)
	return meshtest.Object(b.Mesh("sloped"))
}

func TestDetectBoxHasNoOverhangs(t *testing.T) {
	// All walls vertical, bottom at the plate: nothing qualifies.
	objs := []mesh.Object{meshtest.Object(meshtest.Box(20, 20, 20))}
	pts := overhang.Detect(objs, 0, 60, 2)
	if len(pts) != 0 {
		t.Fatalf("box produced %d overhang points, want 0", len(pts))
	}
}

func TestDetectElevatedFace(t *testing.T) {
	objs := []mesh.Object{meshtest.Object(meshtest.DownQuad(0, 0, 20, 20, 30))}
	pts := overhang.Detect(objs, 0, 60, 2)
	if len(pts) != 2 {
		t.Fatalf("detected %d overhang points, want 2 (one per triangle)", len(pts))
	}
	for _, p := range pts {
		if p.Y != 30 {
			t.Errorf("point height = %v, want 30", p.Y)
		}
		if math.Abs(p.NormalY+1) > 1e-6 {
			t.Errorf("normalY = %v, want -1", p.NormalY)
		}
	}
	if a := overhang.TotalArea(pts); math.Abs(a-400) > 1e-6 {
		t.Errorf("total area = %v, want 400", a)
	}
}

func TestDetectAngleThreshold(t *testing.T) {
	objs := []mesh.Object{slopedQuad()}
	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"60 degrees catches 45-degree slope", 60, 2},
		{"30 degrees does not", 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overhang.Detect(objs, 0, tt.angle, 2); len(got) != tt.want {
				t.Errorf("Detect() found %d points, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDetectBuildplateTolerance(t *testing.T) {
	// A downward face sitting just above the plate is within tolerance
	// and needs no support.
	objs := []mesh.Object{meshtest.Object(meshtest.DownQuad(0, 0, 20, 20, 1.5))}
	if pts := overhang.Detect(objs, 0, 60, 2); len(pts) != 0 {
		t.Fatalf("face within buildplate tolerance produced %d points", len(pts))
	}
	if pts := overhang.Detect(objs, 0, 60, 1); len(pts) != 2 {
		t.Fatalf("face above tighter tolerance produced %d points, want 2", len(pts))
	}
}

func TestDetectVisibleDropsUndercuts(t *testing.T) {
	// An elevated downward face with a pillar directly underneath: every
	// downward ray hits the pillar, so the visible-only variant drops it.
	objs := []mesh.Object{
		meshtest.Object(meshtest.DownQuad(0, 0, 20, 20, 30)),
		meshtest.ObjectAt(meshtest.Box(10, 28, 10), 5, 0, 5),
	}

	all := overhang.Detect(objs, 0, 60, 2)
	if len(all) < 2 {
		t.Fatalf("all-overhangs found %d points, want >= 2", len(all))
	}

	visible := overhang.DetectVisible(objs, 0, 60, 2, nil)
	for _, p := range visible {
		if p.Y == 30 {
			t.Errorf("occluded face at y=30 survived the visibility filter: %+v", p)
		}
	}
}

func TestDetectVisibleKeepsClearFaces(t *testing.T) {
	objs := []mesh.Object{meshtest.Object(meshtest.DownQuad(0, 0, 20, 20, 30))}
	visible := overhang.DetectVisible(objs, 0, 60, 2, nil)
	if len(visible) != 2 {
		t.Fatalf("clear overhang gave %d visible points, want 2", len(visible))
	}
}
