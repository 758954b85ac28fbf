// Package mesh provides indexed triangle meshes and the solid
// primitives the evaluator instantiates.
package mesh

import (
	"github.com/meshcad-xyz/go-meshcad/geom"
)

// Triangle indexes three vertices in counter-clockwise winding when
// viewed from outside the solid.
type Triangle [3]int

// Mesh is an indexed triangle mesh. FaceNormals is optional: when nil,
// consumers derive normals from the triangle edge cross product in
// winding order.
type Mesh struct {
	Vertices    []geom.Vec3
	Triangles   []Triangle
	FaceNormals []geom.Vec3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices:  make([]geom.Vec3, len(m.Vertices)),
		Triangles: make([]Triangle, len(m.Triangles)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Triangles, m.Triangles)
	if m.FaceNormals != nil {
		out.FaceNormals = make([]geom.Vec3, len(m.FaceNormals))
		copy(out.FaceNormals, m.FaceNormals)
	}
	return out
}

// Transform applies an affine transform to every vertex in place.
// Carried face normals are transformed by the linear part and
// renormalized.
func (m *Mesh) Transform(t geom.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.TransformPoint(v)
	}
	for i, n := range m.FaceNormals {
		m.FaceNormals[i] = t.TransformDirection(n).Normalize()
	}
}

// FaceNormal returns the normal for triangle i: the carried per-face
// normal when present, otherwise the normalized edge cross product.
func (m *Mesh) FaceNormal(i int) geom.Vec3 {
	if i < len(m.FaceNormals) {
		return m.FaceNormals[i]
	}
	tri := m.Triangles[i]
	a := m.Vertices[tri[0]]
	b := m.Vertices[tri[1]]
	c := m.Vertices[tri[2]]
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max geom.Vec3) {
	if len(m.Vertices) == 0 {
		return geom.Vec3{}, geom.Vec3{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}
