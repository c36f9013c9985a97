// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spatialacc/matrix"
	"github.com/stretchr/testify/require"
)

func TestMatVec(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	x := []float64{1, 0, -1}

	yf, err := matrix.MatVec(X, x)
	require.NoError(t, err)
	ys, err := matrix.MatVec(hide{X}, x)
	require.NoError(t, err)
	sliceClose(t, yf, []float64{-2, -2}, 0, 0)
	sliceClose(t, ys, yf, 0, 0)

	_, err = matrix.MatVec(X, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(X, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMatVec_PropagatesNaN guards against skipping zero weights: 0·NaN is NaN.
func TestMatVec_PropagatesNaN(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 2, []float64{math.NaN(), 1, 2, 3}, matrix.WithNoValidateNaNInf())
	y, err := matrix.MatVec(X, []float64{0, 1})
	require.NoError(t, err)
	require.True(t, math.IsNaN(y[0]))
	require.Equal(t, 3.0, y[1])
}

func TestVecMat(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 3, 2, []float64{0.5, 1.5, 2.25, 3, 4.125, 5})
	x := []float64{10, 20, 30}

	got, err := matrix.VecMat(x, X)
	require.NoError(t, err)
	gotSlow, err := matrix.VecMat(x, hide{X})
	require.NoError(t, err)

	want := []float64{173.75, 225}
	require.Equal(t, want, got)
	require.Equal(t, want, gotSlow)

	_, err = matrix.VecMat([]float64{1, 2}, X)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestReplaceNonFinite(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 1, 4, []float64{math.NaN(), 1, math.Inf(-1), math.Inf(1)}, matrix.WithNoValidateNaNInf())
	Y, n, err := matrix.ReplaceNonFinite(X, 0)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.NoError(t, matrix.ValidateFinite(Y))
	require.Equal(t, 1.0, MustAt(t, Y, 0, 1))

	// source untouched
	require.ErrorIs(t, matrix.ValidateFinite(X), matrix.ErrNaNInf)

	_, _, err = matrix.ReplaceNonFinite(X, math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestValidators(t *testing.T) {
	t.Parallel()

	var nilDense *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(nilDense), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 0), matrix.ErrNilMatrix)

	a := NewFilledDense(t, 1, 2, []float64{1, math.Inf(1)}, matrix.WithNoValidateNaNInf())
	require.ErrorIs(t, matrix.ValidateFinite(a), matrix.ErrNaNInf)
}
