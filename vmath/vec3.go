package vmath

import "math"

// Vec3 is a 3-D vector in world units
type Vec3 struct {
	X, Y, Z float64
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func LengthSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func Length(v Vec3) float64 {
	return math.Sqrt(LengthSq(v))
}

func DistanceSq(a, b Vec3) float64 {
	return LengthSq(Sub(a, b))
}

func Distance(a, b Vec3) float64 {
	return math.Sqrt(DistanceSq(a, b))
}

// Normalize returns the unit vector; zero input yields zero
// Optimization: one division, three multiplies
func Normalize(v Vec3) Vec3 {
	mag := Length(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Neg returns the component-wise negation
func Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Lerp interpolates from a to b by t in [0,1]
func Lerp(a, b Vec3, t float64) Vec3 {
	return Add(a, Scale(Sub(b, a), t))
}

// ClampMagnitude limits vector magnitude
func ClampMagnitude(v Vec3, maxMag float64) Vec3 {
	if LengthSq(v) <= maxMag*maxMag {
		return v
	}
	return Scale(Normalize(v), maxMag)
}

// Flatten zeroes the Y component for ground-plane steering
func Flatten(v Vec3) Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// IsZero reports whether all components are exactly zero
func IsZero(v Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
