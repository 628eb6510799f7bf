package math

import (
	"math"
	"testing"
)

const epsilon = 1e-5

func almostEqual(a, b float32) bool {
	return float32(math.Abs(float64(a-b))) < epsilon
}

func vec3AlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestVec3Operations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	sum := a.Add(b)
	if !vec3AlmostEqual(sum, NewVec3(5, 7, 9)) {
		t.Errorf("Add: got %v, want (5,7,9)", sum)
	}

	diff := b.Sub(a)
	if !vec3AlmostEqual(diff, NewVec3(3, 3, 3)) {
		t.Errorf("Sub: got %v, want (3,3,3)", diff)
	}

	dot := a.Dot(b)
	if !almostEqual(dot, 32) {
		t.Errorf("Dot: got %f, want 32", dot)
	}

	cross := NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0))
	if !vec3AlmostEqual(cross, NewVec3(0, 0, 1)) {
		t.Errorf("Cross: got %v, want (0,0,1)", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0)
	n := v.Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Errorf("Normalize: length %f, want 1", n.Length())
	}
	if !vec3AlmostEqual(n, NewVec3(0.6, 0.8, 0)) {
		t.Errorf("Normalize: got %v, want (0.6,0.8,0)", n)
	}

	zero := Vec3Zero.Normalize()
	if !vec3AlmostEqual(zero, Vec3Zero) {
		t.Errorf("Normalize of zero vector: got %v, want zero", zero)
	}
}

func TestMat4Identity(t *testing.T) {
	id := Mat4Identity()
	v := NewVec3(1, 2, 3)
	out := id.MulVec3(v)
	if !vec3AlmostEqual(out, v) {
		t.Errorf("Identity transform: got %v, want %v", out, v)
	}
}

func TestMat4Multiplication(t *testing.T) {
	id := Mat4Identity()
	trans := Mat4Translation(NewVec3(1, 2, 3))

	result := id.Mul(trans)
	if result != trans {
		t.Errorf("Identity * M != M")
	}

	// Translate then scale: point (1,1,1) -> (2,3,4) -> (4,6,8).
	scale := Mat4Scale(NewVec3(2, 2, 2))
	combined := trans.Mul(scale)
	out := combined.MulVec3(NewVec3(1, 1, 1))
	if !vec3AlmostEqual(out, NewVec3(4, 6, 8)) {
		t.Errorf("Combined transform: got %v, want (4,6,8)", out)
	}
}

func TestMat4Translation(t *testing.T) {
	m := Mat4Translation(NewVec3(5, -3, 2))
	out := m.MulVec3(Vec3Zero)
	if !vec3AlmostEqual(out, NewVec3(5, -3, 2)) {
		t.Errorf("Translation: got %v, want (5,-3,2)", out)
	}
}

func TestMat4RotationY(t *testing.T) {
	m := Mat4RotationY(float32(math.Pi / 2))
	out := m.MulVec3(NewVec3(1, 0, 0))
	if !vec3AlmostEqual(out, NewVec3(0, 0, -1)) {
		t.Errorf("RotationY 90deg: got %v, want (0,0,-1)", out)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(math.Pi/4), 16.0/9.0, 0.1, 100)
	if m[2][3] != -1 {
		t.Errorf("Perspective: m[2][3] = %f, want -1", m[2][3])
	}
	if m[3][3] != 0 {
		t.Errorf("Perspective: m[3][3] = %f, want 0", m[3][3])
	}
}

func TestMat4LookAt(t *testing.T) {
	// Camera at origin looking down -Z keeps view space aligned with world.
	view := Mat4LookAt(Vec3Zero, NewVec3(0, 0, -1), Vec3Up)
	out := view.MulVec3(NewVec3(0, 0, -5))
	if !vec3AlmostEqual(out, NewVec3(0, 0, -5)) {
		t.Errorf("LookAt down -Z: got %v, want (0,0,-5)", out)
	}

	// Camera offset on X translates world points the opposite way.
	view = Mat4LookAt(NewVec3(2, 0, 0), NewVec3(2, 0, -1), Vec3Up)
	out = view.MulVec3(NewVec3(2, 0, -5))
	if !vec3AlmostEqual(out, NewVec3(0, 0, -5)) {
		t.Errorf("LookAt offset camera: got %v, want (0,0,-5)", out)
	}
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	v := NewVec3(1, 2, 3)
	out := q.RotateVector(v)
	if !vec3AlmostEqual(out, v) {
		t.Errorf("Identity rotation: got %v, want %v", out, v)
	}
}

func TestQuaternionRotation(t *testing.T) {
	// 90 degrees around Y takes +X to -Z.
	q := QuaternionFromAxisAngle(Vec3Up, float32(math.Pi/2))
	out := q.RotateVector(NewVec3(1, 0, 0))
	if !vec3AlmostEqual(out, NewVec3(0, 0, -1)) {
		t.Errorf("AxisAngle rotation: got %v, want (0,0,-1)", out)
	}

	// Matrix form must agree with direct rotation.
	m := q.ToMat4()
	outM := m.MulVec3(NewVec3(1, 0, 0))
	if !vec3AlmostEqual(out, outM) {
		t.Errorf("ToMat4 disagrees with RotateVector: %v vs %v", out, outM)
	}
}

func TestQuaternionFromEuler(t *testing.T) {
	// Yaw-only Euler matches axis-angle around Y.
	angle := float32(0.7)
	fromEuler := QuaternionFromEuler(0, angle, 0)
	fromAxis := QuaternionFromAxisAngle(Vec3Up, angle)

	v := NewVec3(1, 0, 2)
	a := fromEuler.RotateVector(v)
	b := fromAxis.RotateVector(v)
	if !vec3AlmostEqual(a, b) {
		t.Errorf("FromEuler yaw: got %v, want %v", a, b)
	}

	// Rotation must preserve length.
	q := QuaternionFromEuler(0.3, 0.5, 0.1)
	rotated := q.RotateVector(v)
	if !almostEqual(rotated.Length(), v.Length()) {
		t.Errorf("FromEuler changed length: %f vs %f", rotated.Length(), v.Length())
	}
}
