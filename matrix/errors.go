// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinels are prefixed "matrix: " and are always returned wrapped with the
// operation or cell that failed; match them with errors.Is.
var (
	// ErrOutOfRange: a row or column index outside the grid.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch: a vector whose length differs from the grid side
	// it multiplies.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf: a non-finite value where the numeric policy requires a
	// finite one.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix: a nil grid or vector argument.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions: a requested grid with no origins or no
	// destinations.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")
)
