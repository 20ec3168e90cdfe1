// Package meshtest builds small triangle meshes with exact normals for
// tests. Marching-cubes output from the kernel is too noisy to assert
// face classifications against, so these fixtures are built by hand.
package meshtest

import (
	"github.com/chazu/strut/pkg/kernel"
	"github.com/chazu/strut/pkg/mesh"
)

// Builder accumulates triangles into a kernel.Mesh.
type Builder struct {
	verts []float32
	idx   []uint32
}

// Tri appends one triangle. Winding determines the face normal
// (right-hand rule).
func (b *Builder) Tri(p, q, r mesh.Vec3) {
	for _, v := range []mesh.Vec3{p, q, r} {
		b.idx = append(b.idx, uint32(len(b.verts)/3))
		b.verts = append(b.verts, float32(v.X), float32(v.Y), float32(v.Z))
	}
}

// Quad appends a quad as two triangles sharing the winding of (p,q,r,s).
func (b *Builder) Quad(p, q, r, s mesh.Vec3) {
	b.Tri(p, q, r)
	b.Tri(p, r, s)
}

// Mesh returns the accumulated mesh.
func (b *Builder) Mesh(name string) *kernel.Mesh {
	return &kernel.Mesh{Vertices: b.verts, Indices: b.idx, PartName: name}
}

// Box returns a closed box with its minimum corner at the origin and
// outward-facing normals. Y is up.
func Box(w, h, d float64) *kernel.Mesh {
	var b Builder
	v := func(x, y, z float64) mesh.Vec3 { return mesh.Vec3{X: x, Y: y, Z: z} }
	b.Quad(v(0, 0, 0), v(w, 0, 0), v(w, 0, d), v(0, 0, d)) // bottom, -Y
	b.Quad(v(0, h, 0), v(0, h, d), v(w, h, d), v(w, h, 0)) // top, +Y
	b.Quad(v(0, 0, 0), v(0, 0, d), v(0, h, d), v(0, h, 0)) // -X
	b.Quad(v(w, 0, 0), v(w, h, 0), v(w, h, d), v(w, 0, d)) // +X
	b.Quad(v(0, 0, 0), v(0, h, 0), v(w, h, 0), v(w, 0, 0)) // -Z
	b.Quad(v(0, 0, d), v(w, 0, d), v(w, h, d), v(0, h, d)) // +Z
	return b.Mesh("box")
}

// DownQuad returns a single horizontal quad at height y whose normal
// points straight down. Useful as a synthetic overhang face.
func DownQuad(minX, minZ, maxX, maxZ, y float64) *kernel.Mesh {
	var b Builder
	b.Quad(
		mesh.Vec3{X: minX, Y: y, Z: minZ},
		mesh.Vec3{X: maxX, Y: y, Z: minZ},
		mesh.Vec3{X: maxX, Y: y, Z: maxZ},
		mesh.Vec3{X: minX, Y: y, Z: maxZ},
	)
	return b.Mesh("downquad")
}

// Object wraps m with an identity transform.
func Object(m *kernel.Mesh) mesh.Object {
	return mesh.Object{Mesh: m, Transform: mesh.Identity()}
}

// ObjectAt wraps m with a translation transform.
func ObjectAt(m *kernel.Mesh, x, y, z float64) mesh.Object {
	return mesh.Object{Mesh: m, Transform: mesh.Translation(x, y, z)}
}
