package math

import "math"

type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

func QuaternionNew(x, y, z, w float32) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	c := float32(math.Cos(float64(halfAngle)))

	normalized := axis.Normalize()
	return Quaternion{
		X: normalized.X * s,
		Y: normalized.Y * s,
		Z: normalized.Z * s,
		W: c,
	}
}

// QuaternionFromEuler builds a rotation from pitch (X), yaw (Y), roll (Z)
// applied in ZYX order.
func QuaternionFromEuler(pitch, yaw, roll float32) Quaternion {
	cy := float32(math.Cos(float64(yaw) / 2))
	sy := float32(math.Sin(float64(yaw) / 2))
	cp := float32(math.Cos(float64(pitch) / 2))
	sp := float32(math.Sin(float64(pitch) / 2))
	cr := float32(math.Cos(float64(roll) / 2))
	sr := float32(math.Sin(float64(roll) / 2))

	return Quaternion{
		X: sp*cy*cr - cp*sy*sr,
		Y: cp*sy*cr + sp*cy*sr,
		Z: cp*cy*sr - sp*sy*cr,
		W: cp*cy*cr + sp*sy*sr,
	}
}

func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Normalize() Quaternion {
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if length == 0 {
		return QuaternionIdentity()
	}
	return Quaternion{
		X: q.X / length,
		Y: q.Y / length,
		Z: q.Z / length,
		W: q.W / length,
	}
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := qv.Cross(v)
	uuv := qv.Cross(uv)
	return v.Add(uv.Mul(2 * q.W)).Add(uuv.Mul(2))
}

func (q Quaternion) ToMat4() Mat4 {
	n := q.Normalize()
	x, y, z, w := n.X, n.Y, n.Z, n.W

	xx := x * x
	yy := y * y
	zz := z * z
	xy := x * y
	xz := x * z
	yz := y * z
	wx := w * x
	wy := w * y
	wz := w * z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}
