package math

// Vec4 is the homogeneous-coordinate companion to Vec3, used for matrix
// transforms.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
