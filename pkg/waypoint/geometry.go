package waypoint

import "math"

// Vec3 is a position in session space, in meters
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Length returns the Euclidean norm of v
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Distance returns the Euclidean distance between v and o
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Quaternion is a unit rotation
type Quaternion struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

// Identity is the zero rotation
var Identity = Quaternion{W: 1}

// Pose is a position with an orientation
type Pose struct {
	Position Vec3       `json:"position" yaml:"position"`
	Rotation Quaternion `json:"rotation" yaml:"rotation"`
}

// At returns a pose at p with identity rotation
func At(p Vec3) Pose {
	return Pose{Position: p, Rotation: Identity}
}

// LookRotation returns the rotation that points the forward axis (+Z) from
// one position toward another, keeping +Y up. Coincident positions yield
// Identity.
func LookRotation(from, to Vec3) Quaternion {
	dir := to.Sub(from)
	n := dir.Length()
	if n == 0 {
		return Identity
	}
	dir = Vec3{X: dir.X / n, Y: dir.Y / n, Z: dir.Z / n}

	yaw := math.Atan2(dir.X, dir.Z)
	pitch := -math.Asin(dir.Y)

	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)

	// yaw about Y applied after pitch about X
	return Quaternion{
		X: cy * sp,
		Y: sy * cp,
		Z: -sy * sp,
		W: cy * cp,
	}
}

// Heading returns the compass-style yaw in degrees from one position toward
// another, measured from +Z toward +X in [0, 360).
func Heading(from, to Vec3) float64 {
	d := to.Sub(from)
	deg := math.Atan2(d.X, d.Z) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
