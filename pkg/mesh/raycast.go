package mesh

const rayEpsilon = 1e-9

// rayTriangle reports whether the ray origin+t*dir hits the triangle for
// some t in (rayEpsilon, far). Standard Moeller-Trumbore.
func rayTriangle(origin, dir Vec3, tri Triangle, far float64) bool {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return false // ray parallel to triangle plane
	}
	inv := 1 / det
	s := origin.Sub(tri.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return false
	}
	t := e2.Dot(q) * inv
	return t > rayEpsilon && t < far
}

// WorldTriangles flattens every object into one world-space triangle
// slice. Callers that cast many rays against the same scene transform
// the meshes once instead of once per ray.
func WorldTriangles(objs []Object) []Triangle {
	var tris []Triangle
	for _, o := range objs {
		tris = append(tris, o.Triangles()...)
	}
	return tris
}

// RayIntersectsTriangles reports whether the ray hits any of tris
// within far units.
func RayIntersectsTriangles(tris []Triangle, origin, dir Vec3, far float64) bool {
	for _, tri := range tris {
		if rayTriangle(origin, dir, tri, far) {
			return true
		}
	}
	return false
}

// RayIntersectsAny reports whether the ray hits any triangle of any
// object within far units. Used as the undercut visibility query: no
// intersection straight down means the face is reachable from below.
func RayIntersectsAny(objs []Object, origin, dir Vec3, far float64) bool {
	return RayIntersectsTriangles(WorldTriangles(objs), origin, dir, far)
}
