package engine

import (
	"fmt"

	"github.com/chazu/strut/pkg/kernel"
	"github.com/chazu/strut/pkg/mesh"
)

// cylinderSegments controls the tessellation of cylinder parts.
const cylinderSegments = 64

// Build realizes every placement in the request as a world-space mesh
// object: each part is solid-modeled through the kernel, meshed, and
// positioned on the plate plane. Part meshes sit with their base at
// y=0, centered on the placement point.
func Build(req *Request, k kernel.Kernel) ([]mesh.Object, error) {
	objs := make([]mesh.Object, 0, len(req.Placements))
	for _, pl := range req.Placements {
		p, ok := req.Parts[pl.PartName]
		if !ok {
			return nil, fmt.Errorf("build: placement references unknown part %q", pl.PartName)
		}

		solid, err := partSolid(p, k)
		if err != nil {
			return nil, fmt.Errorf("build: part %q: %w", pl.PartName, err)
		}

		m, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("build: meshing part %q: %w", pl.PartName, err)
		}
		m.PartName = pl.PartName

		t := mesh.Translation(pl.X, 0, pl.Z)
		if pl.RotateY != 0 {
			t = t.Mul(mesh.RotationY(pl.RotateY))
		}
		objs = append(objs, mesh.Object{Mesh: mesh.FromZUp(m), Transform: t})
	}
	return objs, nil
}

// partSolid models one part in kernel coordinates (Z up), centered on
// the plan origin with its base at z=0.
func partSolid(p *Part, k kernel.Kernel) (kernel.Solid, error) {
	switch p.Kind {
	case PrimBox:
		box := k.Box(p.Width, p.Depth, p.Height)
		return k.Translate(box, -p.Width/2, -p.Depth/2, 0), nil
	case PrimCylinder:
		// Cylinders are centered on the origin; lift to base at z=0.
		cyl := k.Cylinder(p.Height, p.Diameter/2, cylinderSegments)
		return k.Translate(cyl, 0, 0, p.Height/2), nil
	}
	return nil, fmt.Errorf("unknown primitive kind %d", p.Kind)
}
