package mesh

import "github.com/chazu/strut/pkg/kernel"

// FromZUp converts a kernel mesh, whose vertical axis is Z, into the
// world convention with Y up. The axis swap is a reflection, so each
// triangle's winding is reversed to keep normals pointing outward.
func FromZUp(m *kernel.Mesh) *kernel.Mesh {
	out := &kernel.Mesh{
		Vertices: make([]float32, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		PartName: m.PartName,
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		out.Vertices[i] = m.Vertices[i]
		out.Vertices[i+1] = m.Vertices[i+2]
		out.Vertices[i+2] = m.Vertices[i+1]
	}
	if len(m.Normals) == len(m.Vertices) {
		out.Normals = make([]float32, len(m.Normals))
		for i := 0; i+2 < len(m.Normals); i += 3 {
			out.Normals[i] = m.Normals[i]
			out.Normals[i+1] = m.Normals[i+2]
			out.Normals[i+2] = m.Normals[i+1]
		}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		out.Indices[i] = m.Indices[i]
		out.Indices[i+1] = m.Indices[i+2]
		out.Indices[i+2] = m.Indices[i+1]
	}
	return out
}
