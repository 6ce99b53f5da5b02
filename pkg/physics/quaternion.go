// pkg/physics/quaternion.go
package physics

import "math"

// Quaternion represents a rotation in 3D space.
// The zero value is not a valid rotation; use QuaternionIdentity.
type Quaternion struct {
	W float64
	X float64
	Y float64
	Z float64
}

// QuaternionIdentity returns the identity rotation
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}

// QuaternionFromAxisAngle builds a rotation of angle radians around axis.
// The axis does not need to be normalized.
func QuaternionFromAxisAngle(axis Vector3, angle float64) Quaternion {
	axis = axis.Normalize()
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{
		W: math.Cos(half),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuaternionFromEuler composes a rotation from yaw (about +Y), pitch
// (nose-up positive) and roll (about the forward axis), in radians.
func QuaternionFromEuler(yaw, pitch, roll float64) Quaternion {
	qy := QuaternionFromAxisAngle(Vector3{Y: 1}, yaw)
	qx := QuaternionFromAxisAngle(Vector3{X: 1}, -pitch)
	qz := QuaternionFromAxisAngle(Vector3{Z: 1}, roll)
	return qy.Mul(qx).Mul(qz)
}

// Mul returns the composition q * other (other applied first)
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// Conjugate returns the inverse rotation for a unit quaternion
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Dot returns the quaternion dot product. For unit quaternions the
// absolute value approaches 1 as the rotations converge.
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.W*other.W + q.X*other.X + q.Y*other.Y + q.Z*other.Z
}

// Normalize returns a unit-length quaternion.
// A degenerate zero quaternion normalizes to the identity.
func (q Quaternion) Normalize() Quaternion {
	length := math.Sqrt(q.Dot(q))
	if length == 0 {
		return QuaternionIdentity()
	}
	return Quaternion{W: q.W / length, X: q.X / length, Y: q.Y / length, Z: q.Z / length}
}

// Rotate applies the rotation to a vector
func (q Quaternion) Rotate(v Vector3) Vector3 {
	// v' = q * (0,v) * q^-1, expanded
	u := Vector3{X: q.X, Y: q.Y, Z: q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Forward returns the rotated forward axis (+Z in ship-local space)
func (q Quaternion) Forward() Vector3 {
	return q.Rotate(Vector3{Z: 1})
}

// Slerp spherically interpolates from q to other by t in [0,1]
func (q Quaternion) Slerp(other Quaternion, t float64) Quaternion {
	t = Clamp(t, 0, 1)

	dot := q.Dot(other)
	// Take the short way around
	if dot < 0 {
		other = Quaternion{W: -other.W, X: -other.X, Y: -other.Y, Z: -other.Z}
		dot = -dot
	}

	// Nearly parallel rotations degrade to lerp to avoid division by
	// a vanishing sine
	if dot > 0.9995 {
		result := Quaternion{
			W: q.W + (other.W-q.W)*t,
			X: q.X + (other.X-q.X)*t,
			Y: q.Y + (other.Y-q.Y)*t,
			Z: q.Z + (other.Z-q.Z)*t,
		}
		return result.Normalize()
	}

	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return Quaternion{
		W: q.W*wa + other.W*wb,
		X: q.X*wa + other.X*wb,
		Y: q.Y*wa + other.Y*wb,
		Z: q.Z*wa + other.Z*wb,
	}.Normalize()
}

// LookRotation returns the rotation that points the forward axis along
// direction. Returns identity and false for a zero-length direction.
func LookRotation(direction Vector3) (Quaternion, bool) {
	if direction.LengthSquared() == 0 {
		return QuaternionIdentity(), false
	}
	d := direction.Normalize()
	yaw := math.Atan2(d.X, d.Z)
	pitch := math.Asin(Clamp(d.Y, -1, 1))
	return QuaternionFromEuler(yaw, pitch, 0), true
}

// EulerFromDirection extracts the yaw and pitch angles that aim the
// forward axis along direction. The zero vector yields zero angles.
func EulerFromDirection(direction Vector3) (yaw, pitch float64) {
	if direction.LengthSquared() == 0 {
		return 0, 0
	}
	d := direction.Normalize()
	return math.Atan2(d.X, d.Z), math.Asin(Clamp(d.Y, -1, 1))
}
