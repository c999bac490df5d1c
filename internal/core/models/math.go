package models

// Vector2 is a two component vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three component vector.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a four component vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Quaternion represents a rotation. It is inspected like a Vector4.
type Quaternion struct {
	X, Y, Z, W float32
}

// IdentityQuaternion is the rotation that leaves vectors unchanged.
var IdentityQuaternion = Quaternion{W: 1}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{A: 1}
)
