package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAngleDiff(t *testing.T) {
	cases := []struct {
		name string
		a, b float64
		want float64
	}{
		{"zero", 0, 0, 0},
		{"quarter_left", 0, math.Pi / 2, math.Pi / 2},
		{"quarter_right", 0, -math.Pi / 2, -math.Pi / 2},
		{"wrap_positive", Deg2Rad(170), Deg2Rad(-170), Deg2Rad(20)},
		{"wrap_negative", Deg2Rad(-170), Deg2Rad(170), Deg2Rad(-20)},
		{"half_turn", 0, math.Pi, math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, AngleDiff(tc.a, tc.b), 1e-9)
		})
	}
}

func TestTurnTowardTakesShortArc(t *testing.T) {
	got := TurnToward(Deg2Rad(170), Deg2Rad(-170), 0.5)
	assert.InDelta(t, math.Pi, math.Abs(got), 1e-9)

	assert.InDelta(t, 1.0, TurnToward(0, 1, 3), 1e-9, "t is clamped")
	assert.InDelta(t, 0.0, TurnToward(0, 1, -1), 1e-9)
}

func TestYawAndBearing(t *testing.T) {
	assert.InDelta(t, 0, Yaw(Vec3{Z: 1}), 1e-9)
	assert.InDelta(t, math.Pi/2, Yaw(Vec3{X: 1}), 1e-9)
	assert.InDelta(t, math.Pi/2, Bearing(Vec3{Y: 4}, Vec3{X: 3, Y: -2}), 1e-9)

	f := Forward(math.Pi / 2)
	assert.InDelta(t, 1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)
}

func TestVec3(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 2}
	assert.InDelta(t, 3, a.Len(), 1e-9)
	assert.Equal(t, Vec3{X: 1, Z: 2}, a.Flat())
	assert.InDelta(t, 3, a.Dist(Vec3{}), 1e-9)
	assert.Equal(t, Vec3{X: 2, Y: 4, Z: 4}, a.Add(a))
	assert.Equal(t, Vec3{X: 0.5, Y: 1, Z: 1}, a.Scale(0.5))
	assert.True(t, a.Sub(a).IsZero())
	assert.Equal(t, 2.5, Lerp(0, 10, 0.25))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
}
