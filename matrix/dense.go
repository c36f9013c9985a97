// SPDX-License-Identifier: MIT

// Package matrix - Dense origin×destination grid.
//
// Purpose:
//   - Hold one float64 per (origin, destination) cell in a flat row-major
//     buffer; row i is origin i, column j is destination j (offset i*cols + j).
//   - Report bounds and numeric-policy violations as errors, never panics.
//   - Carry the finite-only policy with the grid so kernels and sanitizers
//     know whether undefined cells may be present.
//
// AI-Hints:
//   - Kernels (kernels.go) take the *Dense fast-path and read data directly.
//   - Row(i) is the full balancing-factor profile of one demand location.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Row: O(c); String: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	ctxAt  = "At"
	ctxSet = "Set"
	ctxRow = "Row"
)

// denseErrorf tags err with the Dense method and the cell it was called on.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major origin×destination grid.
type Dense struct {
	r, c           int       // origins, destinations
	data           []float64 // len == r*c
	validateNaNInf bool      // reject NaN/±Inf in Set when true
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero grid under the default finite-only policy.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive.
func NewDense(rows, cols int) (*Dense, error) {
	return NewDenseWithOptions(rows, cols)
}

// NewDenseWithOptions creates an r×c zero grid whose numeric policy is
// resolved from opts (see options.go). Assemble uses
// WithNoValidateNaNInf to let undefined balancing factors through.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseWithOptions(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%d×%d grid: %w", rows, cols, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// Rows returns the number of origins.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of destinations.
func (m *Dense) Cols() int { return m.c }

// Shape returns (origins, destinations).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// AllowsUndefined reports whether the grid accepts NaN/±Inf cells.
func (m *Dense) AllowsUndefined() bool { return !m.validateNaNInf }

func (m *Dense) offset(row, col int) (int, bool) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, false
	}

	return row*m.c + col, true
}

// At returns cell (row, col) or a wrapped ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, ok := m.offset(row, col)
	if !ok {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for bad indices.
//   - ErrNaNInf when v is not finite and the grid is finite-only.
func (m *Dense) Set(row, col int, v float64) error {
	off, ok := m.offset(row, col)
	if !ok {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Row returns a copy of origin i's cells.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// String renders one bracketed line per origin, for logs and test failures.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteString("]\n")
	}

	return b.String()
}
