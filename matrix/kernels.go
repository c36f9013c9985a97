// SPDX-License-Identifier: MIT
// Package matrix: kernels used by accessibility scoring. MatVec produces
// scores, VecMat the demand balance check, ReplaceNonFinite the zeroed grid.
// Arguments are validated up front and dimension mismatches are errors.
//
// Notes:
//   - Kernels never mutate their inputs; results are freshly allocated.
//   - IEEE semantics are preserved: NaN and ±Inf propagate through products.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial value for dot-product accumulators.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMatVec           = "MatVec"
	opVecMat           = "VecMat"
	opReplaceNonFinite = "ReplaceNonFinite"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
//
// Zero entries of x are multiplied, not skipped: 0·NaN must stay NaN.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum  // reset accumulator per row
			base = i * d.c // flat base offset for row i
			for j = 0; j < d.c; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// VecMat computes the row vector y = xᵀ * m, i.e. y[j] = Σ_i x[i]·m[i,j].
//
// Contract: m non-nil; x non-nil; len(x) == m.Rows().
// Determinism: fixed i→j accumulation order.
// Complexity: Time O(r*c), Space O(c) for y.
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, cols)

	var i, j int
	if d, ok := m.(*Dense); ok {
		var base int
		var xv float64
		for i = 0; i < rows; i++ {
			xv = x[i]
			base = i * cols
			for j = 0; j < cols; j++ {
				y[j] += xv * d.data[base+j]
			}
		}

		return y, nil
	}

	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opVecMat, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[j] += x[i] * mv
		}
	}

	return y, nil
}

// ReplaceNonFinite returns a copy of m where any {±Inf, NaN} are replaced by
// val, together with the number of replaced cells.
// Policy: val must be finite; otherwise ErrNaNInf is returned.
// Time: O(r*c). Space: O(r*c). Deterministic.
func ReplaceNonFinite(m Matrix, val float64) (*Dense, int, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, 0, matrixErrorf(opReplaceNonFinite, err)
	}
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return nil, 0, matrixErrorf(opReplaceNonFinite, ErrNaNInf)
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, 0, matrixErrorf(opReplaceNonFinite, err)
	}

	var i, j, replaced int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, 0, matrixErrorf(opReplaceNonFinite, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = val
				replaced++
			}
			out.data[i*c+j] = v
		}
	}

	return out, replaced, nil
}
