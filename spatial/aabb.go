package spatial

import "github.com/Looking-Fresh-Games/Freshynoid/vmath"

// AABB is an axis-aligned bounding box
type AABB struct {
	Min, Max vmath.Vec3
}

func (b AABB) Contains(p vmath.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB) Center() vmath.Vec3 {
	return vmath.Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

func (b AABB) Size() vmath.Vec3 {
	return vmath.Sub(b.Max, b.Min)
}

// DistanceSq returns the squared distance from p to the nearest point of the box
// Zero when p is inside
func (b AABB) DistanceSq(p vmath.Vec3) float64 {
	d := 0.0
	d += axisDistSq(p.X, b.Min.X, b.Max.X)
	d += axisDistSq(p.Y, b.Min.Y, b.Max.Y)
	d += axisDistSq(p.Z, b.Min.Z, b.Max.Z)
	return d
}

func axisDistSq(v, lo, hi float64) float64 {
	if v < lo {
		return (lo - v) * (lo - v)
	}
	if v > hi {
		return (v - hi) * (v - hi)
	}
	return 0
}

// Expand grows the box by margin on all sides
func (b AABB) Expand(margin float64) AABB {
	m := vmath.Vec3{X: margin, Y: margin, Z: margin}
	return AABB{Min: vmath.Sub(b.Min, m), Max: vmath.Add(b.Max, m)}
}

// BoundsOf computes the AABB enclosing the given points
// Returns a zero box when the slice is empty
func BoundsOf(points []vmath.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < b.Min.X {
			b.Min.X = p.X
		}
		if p.Y < b.Min.Y {
			b.Min.Y = p.Y
		}
		if p.Z < b.Min.Z {
			b.Min.Z = p.Z
		}
		if p.X > b.Max.X {
			b.Max.X = p.X
		}
		if p.Y > b.Max.Y {
			b.Max.Y = p.Y
		}
		if p.Z > b.Max.Z {
			b.Max.Z = p.Z
		}
	}
	return b
}
