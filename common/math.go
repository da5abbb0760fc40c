package common

import "math"

// Vec3 is a world-space position or direction. Y is up; the ground plane is XZ.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vec3) Dist(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Flat drops the vertical component.
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Yaw returns the heading of the flattened direction in radians. Yaw 0 faces
// +Z and positive yaw turns toward +X.
func Yaw(dir Vec3) float64 {
	return math.Atan2(dir.X, dir.Z)
}

// Forward returns the unit ground-plane direction for a yaw.
func Forward(yaw float64) Vec3 {
	return Vec3{X: math.Sin(yaw), Z: math.Cos(yaw)}
}

// Bearing is the yaw an observer at from needs to face to.
func Bearing(from, to Vec3) float64 {
	return Yaw(to.Sub(from).Flat())
}

// AngleDiff returns the shortest signed rotation from a to b, in (-Pi, Pi].
func AngleDiff(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// TurnToward interpolates current toward target along the shorter arc. t is
// clamped to [0, 1].
func TurnToward(current, target, t float64) float64 {
	return WrapAngle(current + AngleDiff(current, target)*Clamp(t, 0, 1))
}

// WrapAngle maps an angle into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	return AngleDiff(0, a)
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}

func Rad2Deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
