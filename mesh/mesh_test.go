package mesh

import (
	"math"
	"testing"

	"github.com/meshcad-xyz/go-meshcad/geom"
)

const tol = 1e-9

func TestCube_BoundsAndOrigin(t *testing.T) {
	m := Cube(10, 20, 30)

	min, max := m.Bounds()
	if min != (geom.Vec3{}) {
		t.Errorf("minimum corner must sit at the local origin, got %+v", min)
	}
	if max != (geom.Vec3{X: 10, Y: 20, Z: 30}) {
		t.Errorf("expected extents [10 20 30], got %+v", max)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
}

func TestCube_NormalsPointOutward(t *testing.T) {
	m := Cube(2, 2, 2)
	center := geom.Vec3{X: 1, Y: 1, Z: 1}

	for i, tri := range m.Triangles {
		n := m.FaceNormal(i)
		// Derived and carried normals must agree.
		derived := m.Vertices[tri[1]].Sub(m.Vertices[tri[0]]).
			Cross(m.Vertices[tri[2]].Sub(m.Vertices[tri[0]])).Normalize()
		if derived.Sub(n).Length() > tol {
			t.Errorf("triangle %d: carried normal %+v disagrees with winding %+v", i, n, derived)
		}
		// And point away from the center.
		centroid := m.Vertices[tri[0]].Add(m.Vertices[tri[1]]).Add(m.Vertices[tri[2]]).Scale(1.0 / 3)
		if n.Dot(centroid.Sub(center)) <= 0 {
			t.Errorf("triangle %d: normal %+v points inward", i, n)
		}
	}
}

func TestSphere_VertexRadius(t *testing.T) {
	const r = 5.0
	m := Sphere(r)

	for i, v := range m.Vertices {
		if math.Abs(v.Length()-r) > 1e-9 {
			t.Errorf("vertex %d at distance %v, expected %v", i, v.Length(), r)
		}
	}
}

func TestSphere_NormalsPointOutward(t *testing.T) {
	m := Sphere(3)
	for i := range m.Triangles {
		tri := m.Triangles[i]
		centroid := m.Vertices[tri[0]].Add(m.Vertices[tri[1]]).Add(m.Vertices[tri[2]]).Scale(1.0 / 3)
		if m.FaceNormal(i).Dot(centroid) <= 0 {
			t.Errorf("triangle %d: normal points inward", i)
		}
	}
}

func TestSphere_Deterministic(t *testing.T) {
	a := Sphere(4)
	b := Sphere(4)
	if len(a.Vertices) != len(b.Vertices) || len(a.Triangles) != len(b.Triangles) {
		t.Fatalf("tessellation differs between runs")
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between runs", i)
		}
	}
}

func TestCylinder_Bounds(t *testing.T) {
	m := Cylinder(10, 3, 3)

	min, max := m.Bounds()
	if math.Abs(min.Z) > tol || math.Abs(max.Z-10) > tol {
		t.Errorf("cylinder must span z=[0,10], got [%v, %v]", min.Z, max.Z)
	}
	if math.Abs(max.X-3) > tol || math.Abs(min.X+3) > tol {
		t.Errorf("cylinder must span x=[-3,3], got [%v, %v]", min.X, max.X)
	}
}

func TestCylinder_Frustum(t *testing.T) {
	m := Cylinder(10, 3, 6)

	for _, v := range m.Vertices {
		radial := math.Hypot(v.X, v.Y)
		switch {
		case math.Abs(v.Z) < tol:
			if radial > 3+tol {
				t.Errorf("base vertex outside r1: %+v", v)
			}
		case math.Abs(v.Z-10) < tol:
			if radial > 6+tol {
				t.Errorf("top vertex outside r2: %+v", v)
			}
		default:
			t.Errorf("unexpected vertex between caps: %+v", v)
		}
	}
}

func TestCylinder_Cone(t *testing.T) {
	m := Cylinder(8, 4, 0)
	if m.TriangleCount() == 0 {
		t.Fatal("cone produced no triangles")
	}
	_, max := m.Bounds()
	if math.Abs(max.Z-8) > tol {
		t.Errorf("cone apex must be at z=8, got %v", max.Z)
	}
}

func TestMesh_Transform(t *testing.T) {
	m := Cube(2, 2, 2)
	m.Transform(geom.Translation(geom.Vec3{X: 5, Y: -1, Z: 3}))

	min, max := m.Bounds()
	if min != (geom.Vec3{X: 5, Y: -1, Z: 3}) {
		t.Errorf("expected min {5 -1 3}, got %+v", min)
	}
	if max != (geom.Vec3{X: 7, Y: 1, Z: 5}) {
		t.Errorf("expected max {7 1 5}, got %+v", max)
	}
}

func TestMesh_TransformRotatesNormals(t *testing.T) {
	m := Cube(1, 1, 1)
	m.Transform(geom.RotationZ(90))

	for i := range m.Triangles {
		n := m.FaceNormal(i)
		if math.Abs(n.Length()-1) > 1e-9 {
			t.Errorf("triangle %d: normal not unit after rotation: %v", i, n.Length())
		}
	}
}

func TestMesh_Clone(t *testing.T) {
	a := Cube(1, 2, 3)
	b := a.Clone()
	b.Transform(geom.Translation(geom.Vec3{X: 100}))

	min, _ := a.Bounds()
	if min.X != 0 {
		t.Errorf("clone mutation leaked into original: min.X=%v", min.X)
	}
}
