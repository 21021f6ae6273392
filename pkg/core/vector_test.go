package core

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func TestNewVector_RejectsZero(t *testing.T) {
	_, err := NewVector(0, 0, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrZeroVector))

	var invalid *InvalidVectorError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "new vector", invalid.Op)

	_, err = NewVector(1e-12, -1e-12, 0)
	assert.ErrorIs(t, err, ErrZeroVector, "components within epsilon count as zero")
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Must(NewVector(1, 2, 3))
	v2 := Must(NewVector(-2, -4, -6))
	v3 := Must(NewVector(0, 3, -2))

	t.Run("add", func(t *testing.T) {
		sum, err := v1.Add(v2)
		require.NoError(t, err)
		assert.True(t, sum.Equal(Must(NewVector(-1, -2, -3))))

		_, err = v1.Add(v1.Negate())
		assert.ErrorIs(t, err, ErrZeroVector)
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := v1.Subtract(v3)
		require.NoError(t, err)
		assert.True(t, diff.Equal(Must(NewVector(1, -1, 5))))

		_, err = v1.Subtract(v1)
		assert.ErrorIs(t, err, ErrZeroVector)
	})

	t.Run("scale", func(t *testing.T) {
		scaled, err := v1.Scale(2)
		require.NoError(t, err)
		assert.True(t, scaled.Equal(Must(NewVector(2, 4, 6))))

		_, err = v1.Scale(0)
		assert.ErrorIs(t, err, ErrZeroVector)
	})

	t.Run("dot", func(t *testing.T) {
		assert.InDelta(t, -28, v1.Dot(v2), delta)
		assert.InDelta(t, 0, v1.Dot(v3), delta, "orthogonal vectors")
	})

	t.Run("cross", func(t *testing.T) {
		cross, err := v1.Cross(v3)
		require.NoError(t, err)
		assert.InDelta(t, v1.Length()*v3.Length(), cross.Length(), delta)
		assert.InDelta(t, 0, cross.Dot(v1), delta)
		assert.InDelta(t, 0, cross.Dot(v3), delta)

		_, err = v1.Cross(v2)
		assert.ErrorIs(t, err, ErrZeroVector, "parallel vectors")
	})

	t.Run("length", func(t *testing.T) {
		assert.InDelta(t, 14, v1.LengthSquared(), delta)
		assert.InDelta(t, 5, Must(NewVector(0, 3, 4)).Length(), delta)
	})
}

func TestVector_Normalize(t *testing.T) {
	vectors := []Vector{
		Must(NewVector(1, 2, 3)),
		Must(NewVector(-0.001, 0, 0)),
		Must(NewVector(100, -30, 4.2)),
	}
	for _, v := range vectors {
		t.Run(v.String(), func(t *testing.T) {
			u, err := v.Normalize()
			require.NoError(t, err)
			assert.InDelta(t, 1, u.Length(), delta)

			_, err = v.Cross(u)
			assert.ErrorIs(t, err, ErrZeroVector, "normalized vector must stay parallel")
			assert.Greater(t, v.Dot(u), 0.0, "normalized vector must keep its orientation")
		})
	}

	_, err := Vector{}.Normalize()
	assert.ErrorIs(t, err, ErrZeroVector)
}

func TestVector_Perpendicular(t *testing.T) {
	for _, v := range []Vector{AxisX(), AxisY(), AxisZ(), Must(NewVector(1, 1, 1)), Must(NewVector(2, -1, 5))} {
		p := v.Perpendicular()
		assert.InDelta(t, 0, p.Dot(v), delta, "perpendicular of %v", v)
		assert.InDelta(t, 1, p.Length(), delta)
	}
}

func TestVector_Rotate(t *testing.T) {
	assert.True(t, AxisY().Equal(AxisX().RotateZ(90)))
	assert.True(t, AxisZ().Equal(AxisY().RotateX(90)))
	assert.True(t, AxisX().Equal(AxisZ().RotateY(90)))

	v := Must(NewVector(1, 2, 3)).RotateY(37)
	assert.InDelta(t, math.Sqrt(14), v.Length(), delta, "rotation preserves length")
}
