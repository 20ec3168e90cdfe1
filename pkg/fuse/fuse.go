// Package fuse turns placed supports into kernel solids: each support
// polygon is extruded to its height and unioned onto a baseplate, ready
// for meshing and export.
//
// Kernel axes differ from world axes: the kernel is Z-up, the world is
// Y-up. World (x, y, z) maps to kernel (x, z, y).
package fuse

import (
	"fmt"

	"github.com/chazu/strut/pkg/kernel"
	"github.com/chazu/strut/pkg/support"
)

// Baseplate returns a width x depth plate of the given thickness,
// centered on the origin in plan, with its top face at kernel z=0 so
// parts and supports with baseY=0 rest directly on it.
func Baseplate(k kernel.Kernel, width, depth, thickness float64) kernel.Solid {
	plate := k.Box(width, depth, thickness)
	return k.Translate(plate, -width/2, -depth/2, -thickness)
}

// SupportSolid extrudes one support footprint to its height and moves
// it to its world position.
func SupportSolid(k kernel.Kernel, s *support.Support) (kernel.Solid, error) {
	solid, err := k.ExtrudePolygon(s.Polygon, s.Height)
	if err != nil {
		return nil, fmt.Errorf("support %s: %w", s.ID, err)
	}
	// The extrusion is centered on z=0; lift it so its base sits at
	// the support's base height.
	return k.Translate(solid, s.CenterX, s.CenterZ, s.BaseY+s.Height/2), nil
}

// Assemble unions every support onto the base solid. Supports that fail
// to extrude abort the assembly rather than silently disappearing.
func Assemble(k kernel.Kernel, base kernel.Solid, supports []*support.Support) (kernel.Solid, error) {
	out := base
	for _, s := range supports {
		solid, err := SupportSolid(k, s)
		if err != nil {
			return nil, err
		}
		out = k.Union(out, solid)
	}
	return out, nil
}
