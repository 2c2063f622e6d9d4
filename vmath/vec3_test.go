package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -2, 1}

	assert.Equal(t, Vec3{5, 0, 4}, Add(a, b))
	assert.Equal(t, Vec3{-3, 4, 2}, Sub(a, b))
}

func TestLengthDistance(t *testing.T) {
	v := Vec3{3, 4, 0}
	assert.Equal(t, 5.0, Length(v))
	assert.Equal(t, 25.0, LengthSq(v))

	a := Vec3{1, 0, 0}
	b := Vec3{4, 4, 0}
	assert.Equal(t, 5.0, Distance(a, b))
}

func TestNormalize(t *testing.T) {
	v := Normalize(Vec3{10, 0, 0})
	assert.Equal(t, Vec3{1, 0, 0}, v)

	// Zero input must not divide by zero
	assert.Equal(t, Vec3{}, Normalize(Vec3{}))

	n := Normalize(Vec3{1, 2, 2})
	assert.InDelta(t, 1.0, Length(n), 1e-12)
}

func TestDotCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	assert.Equal(t, 0.0, Dot(x, y))
	assert.Equal(t, Vec3{0, 0, 1}, Cross(x, y))
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, -10}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, Vec3{5, 10, -5}, Lerp(a, b, 0.5))
}

func TestClampMagnitude(t *testing.T) {
	v := Vec3{10, 0, 0}
	assert.Equal(t, v, ClampMagnitude(v, 20))

	c := ClampMagnitude(v, 2)
	assert.InDelta(t, 2.0, Length(c), 1e-12)
}

func TestFlatten(t *testing.T) {
	v := Flatten(Vec3{1, 5, 2})
	assert.Equal(t, Vec3{1, 0, 2}, v)
	assert.True(t, math.Abs(v.Y) == 0)
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(Vec3{}))
	assert.False(t, IsZero(Vec3{0, 1e-9, 0}))
}
