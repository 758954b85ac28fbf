package mesh

import (
	"math"

	"github.com/meshcad-xyz/go-meshcad/geom"
)

// Tessellation policy. Density is fixed, never derived from the shape's
// dimensions, so identical source always produces identical meshes.
const (
	sphereLonSegments = 24
	sphereLatSegments = 16
	cylinderSegments  = 32
)

// Cube returns an axis-aligned box with extents [x, y, z] and its
// minimum corner at the local origin, matching the OpenSCAD convention
// that the origin is a corner rather than the center.
func Cube(x, y, z float64) *Mesh {
	m := &Mesh{}
	for i := 0; i < 8; i++ {
		m.Vertices = append(m.Vertices, geom.Vec3{
			X: float64(i&1) * x,
			Y: float64(i>>1&1) * y,
			Z: float64(i>>2&1) * z,
		})
	}

	faces := []struct {
		quad   [4]int
		normal geom.Vec3
	}{
		{[4]int{0, 2, 3, 1}, geom.Vec3{Z: -1}},
		{[4]int{4, 5, 7, 6}, geom.Vec3{Z: 1}},
		{[4]int{0, 1, 5, 4}, geom.Vec3{Y: -1}},
		{[4]int{2, 6, 7, 3}, geom.Vec3{Y: 1}},
		{[4]int{0, 4, 6, 2}, geom.Vec3{X: -1}},
		{[4]int{1, 3, 7, 5}, geom.Vec3{X: 1}},
	}
	for _, f := range faces {
		m.Triangles = append(m.Triangles,
			Triangle{f.quad[0], f.quad[1], f.quad[2]},
			Triangle{f.quad[0], f.quad[2], f.quad[3]},
		)
		m.FaceNormals = append(m.FaceNormals, f.normal, f.normal)
	}
	return m
}

// Sphere returns a polyhedral sphere of radius r centered at the
// origin, tessellated at the fixed longitude/latitude density.
func Sphere(r float64) *Mesh {
	m := &Mesh{}

	top := len(m.Vertices)
	m.Vertices = append(m.Vertices, geom.Vec3{Z: r})

	// Interior latitude rings, pole to pole.
	ringStart := len(m.Vertices)
	for i := 1; i < sphereLatSegments; i++ {
		theta := math.Pi * float64(i) / sphereLatSegments
		z := r * math.Cos(theta)
		ringR := r * math.Sin(theta)
		for j := 0; j < sphereLonSegments; j++ {
			phi := 2 * math.Pi * float64(j) / sphereLonSegments
			m.Vertices = append(m.Vertices, geom.Vec3{
				X: ringR * math.Cos(phi),
				Y: ringR * math.Sin(phi),
				Z: z,
			})
		}
	}

	bottom := len(m.Vertices)
	m.Vertices = append(m.Vertices, geom.Vec3{Z: -r})

	ring := func(i, j int) int {
		return ringStart + i*sphereLonSegments + j%sphereLonSegments
	}

	for j := 0; j < sphereLonSegments; j++ {
		m.Triangles = append(m.Triangles, Triangle{top, ring(0, j), ring(0, j+1)})
	}
	for i := 0; i < sphereLatSegments-2; i++ {
		for j := 0; j < sphereLonSegments; j++ {
			m.Triangles = append(m.Triangles,
				Triangle{ring(i, j), ring(i+1, j), ring(i+1, j+1)},
				Triangle{ring(i, j), ring(i+1, j+1), ring(i, j+1)},
			)
		}
	}
	last := sphereLatSegments - 2
	for j := 0; j < sphereLonSegments; j++ {
		m.Triangles = append(m.Triangles, Triangle{bottom, ring(last, j+1), ring(last, j)})
	}
	return m
}

// Cylinder returns a Z-up cylinder or frustum with its base cap at z=0
// and its top at z=h. r1 is the base radius, r2 the top radius; a zero
// radius collapses that end to an apex.
func Cylinder(h, r1, r2 float64) *Mesh {
	m := &Mesh{}

	circle := func(radius, z float64) []int {
		idx := make([]int, cylinderSegments)
		for j := 0; j < cylinderSegments; j++ {
			phi := 2 * math.Pi * float64(j) / cylinderSegments
			idx[j] = len(m.Vertices)
			m.Vertices = append(m.Vertices, geom.Vec3{
				X: radius * math.Cos(phi),
				Y: radius * math.Sin(phi),
				Z: z,
			})
		}
		return idx
	}
	wrap := func(ring []int, j int) int {
		return ring[j%cylinderSegments]
	}

	switch {
	case r1 == 0 && r2 == 0:
		return m
	case r1 == 0:
		apex := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{})
		topRing := circle(r2, h)
		topCenter := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{Z: h})
		for j := 0; j < cylinderSegments; j++ {
			m.Triangles = append(m.Triangles,
				Triangle{apex, wrap(topRing, j+1), wrap(topRing, j)},
				Triangle{topCenter, wrap(topRing, j), wrap(topRing, j+1)},
			)
		}
	case r2 == 0:
		baseRing := circle(r1, 0)
		baseCenter := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{})
		apex := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{Z: h})
		for j := 0; j < cylinderSegments; j++ {
			m.Triangles = append(m.Triangles,
				Triangle{baseCenter, wrap(baseRing, j+1), wrap(baseRing, j)},
				Triangle{wrap(baseRing, j), wrap(baseRing, j+1), apex},
			)
		}
	default:
		baseRing := circle(r1, 0)
		topRing := circle(r2, h)
		baseCenter := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{})
		topCenter := len(m.Vertices)
		m.Vertices = append(m.Vertices, geom.Vec3{Z: h})
		for j := 0; j < cylinderSegments; j++ {
			m.Triangles = append(m.Triangles,
				Triangle{baseCenter, wrap(baseRing, j+1), wrap(baseRing, j)},
				Triangle{topCenter, wrap(topRing, j), wrap(topRing, j+1)},
				Triangle{wrap(baseRing, j), wrap(baseRing, j+1), wrap(topRing, j+1)},
				Triangle{wrap(baseRing, j), wrap(topRing, j+1), wrap(topRing, j)},
			)
		}
	}
	return m
}
