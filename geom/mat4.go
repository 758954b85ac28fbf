package geom

import "math"

// Mat4 is a 4x4 affine transform in row-major order. Points are
// treated as column vectors: transformed = M * p.
type Mat4 [4][4]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform moving points by v.
func Translation(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, v.X},
		{0, 1, 0, v.Y},
		{0, 0, 1, v.Z},
		{0, 0, 0, 1},
	}
}

// RotationX returns a rotation about the X axis by deg degrees.
func RotationX(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationY returns a rotation about the Y axis by deg degrees.
func RotationY(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotationZ returns a rotation about the Z axis by deg degrees.
func RotationZ(deg float64) Mat4 {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotation returns the OpenSCAD rotate([x,y,z]) transform: rotation
// about X, then Y, then Z, i.e. Rz * Ry * Rx.
func Rotation(deg Vec3) Mat4 {
	return RotationZ(deg.Z).Mul(RotationY(deg.Y)).Mul(RotationX(deg.X))
}

// ZUpToYUp returns the fixed -90 degree X rotation converting the Z-up
// modeling convention into a Y-up rendering convention.
func ZUpToYUp() Mat4 {
	return RotationX(-90)
}

// Mul returns m * o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// TransformPoint applies the full affine transform to a point.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// TransformDirection applies only the linear part of the transform,
// ignoring translation. Used for normals; callers renormalize.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*d.X + m[0][1]*d.Y + m[0][2]*d.Z,
		Y: m[1][0]*d.X + m[1][1]*d.Y + m[1][2]*d.Z,
		Z: m[2][0]*d.X + m[2][1]*d.Y + m[2][2]*d.Z,
	}
}
