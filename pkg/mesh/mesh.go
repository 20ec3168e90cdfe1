// Package mesh provides the immutable world-space triangle view the
// placement engine reads. An Object pairs a kernel triangle mesh with a
// 4x4 world transform; the engine only ever iterates world-space
// triangles and never mutates the underlying mesh.
package mesh

import (
	"math"

	"github.com/chazu/strut/pkg/kernel"
)

// Vec3 is a 3D point or vector in world space. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to length 1. The zero vector is returned unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Transform is a row-major 4x4 homogeneous transform.
type Transform [16]float64

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a transform that moves points by (x, y, z).
func Translation(x, y, z float64) Transform {
	t := Identity()
	t[3], t[7], t[11] = x, y, z
	return t
}

// RotationY returns a transform that rotates points about the Y axis by
// the given angle in degrees.
func RotationY(degrees float64) Transform {
	r := degrees * math.Pi / 180
	s, c := math.Sin(r), math.Cos(r)
	t := Identity()
	t[0], t[2] = c, s
	t[8], t[10] = -s, c
	return t
}

// Mul returns t * o (o applied first).
func (t Transform) Mul(o Transform) Transform {
	var out Transform
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += t[r*4+k] * o[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Apply transforms the point v.
func (t Transform) Apply(v Vec3) Vec3 {
	return Vec3{
		X: t[0]*v.X + t[1]*v.Y + t[2]*v.Z + t[3],
		Y: t[4]*v.X + t[5]*v.Y + t[6]*v.Z + t[7],
		Z: t[8]*v.X + t[9]*v.Y + t[10]*v.Z + t[11],
	}
}

// Object is one mesh instance in the scene snapshot: an object-space
// triangle mesh plus its world transform.
type Object struct {
	Mesh      *kernel.Mesh
	Transform Transform
}

// Triangle is a world-space triangle.
type Triangle struct {
	A, B, C Vec3
}

// Normal returns the unit face normal following right-hand winding.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Unit()
}

// Centroid returns the triangle centroid.
func (t Triangle) Centroid() Vec3 {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3.0)
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Norm() / 2
}

// Triangles returns the object's triangles in world space.
func (o Object) Triangles() []Triangle {
	m := o.Mesh
	if m == nil {
		return nil
	}
	tris := make([]Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, Triangle{
			A: o.vertex(m.Indices[i]),
			B: o.vertex(m.Indices[i+1]),
			C: o.vertex(m.Indices[i+2]),
		})
	}
	return tris
}

func (o Object) vertex(idx uint32) Vec3 {
	i := int(idx) * 3
	v := Vec3{
		X: float64(o.Mesh.Vertices[i]),
		Y: float64(o.Mesh.Vertices[i+1]),
		Z: float64(o.Mesh.Vertices[i+2]),
	}
	return o.Transform.Apply(v)
}

// TriangleCount returns the total triangle count across objects.
func TriangleCount(objs []Object) int {
	n := 0
	for _, o := range objs {
		if o.Mesh != nil {
			n += o.Mesh.TriangleCount()
		}
	}
	return n
}
