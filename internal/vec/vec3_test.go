package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Float_RoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   Vec3Float
		want Vec3
	}{
		{Vec3Float{X: 0.4, Y: 0.5, Z: 0.6}, Vec3{X: 0, Y: 1, Z: 1}},
		{Vec3Float{X: -0.4, Y: -0.5, Z: -0.6}, Vec3{X: 0, Y: -1, Z: -1}},
		{Vec3Float{X: 2.5, Y: -2.5, Z: 3.49}, Vec3{X: 3, Y: -3, Z: 3}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.Round(), "вход %+v", tc.in)
	}
}

func TestVec3_ClampAxesIndependently(t *testing.T) {
	v := Vec3{X: -5, Y: 4, Z: 17}
	assert.Equal(t, Vec3{X: 0, Y: 4, Z: 9}, v.Clamp(0, 9))
}

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Vec3{X: 5, Y: 7, Z: 9}, a.Add(b))
	assert.Equal(t, Vec3{X: 3, Y: 3, Z: 3}, b.Sub(a))
	assert.True(t, a.Equals(Vec3{X: 1, Y: 2, Z: 3}))
	assert.False(t, a.Equals(b))
}

func TestVec3Float_Normalized(t *testing.T) {
	v := Vec3Float{X: 3, Y: 0, Z: 4}
	n := v.Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)

	// Нулевой вектор не даёт NaN
	assert.Equal(t, Vec3Float{}, Vec3Float{}.Normalized())
}
