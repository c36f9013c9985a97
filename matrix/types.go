// SPDX-License-Identifier: MIT

package matrix

// Matrix is the read/write surface the kernels need from an
// origin×destination grid. *Dense is the only implementation in this module;
// kernels fall back to At/Set for anything else.
type Matrix interface {
	// Rows returns the number of origins.
	Rows() int

	// Cols returns the number of destinations.
	Cols() int

	// At returns cell (i, j), or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set stores v at (i, j). Returns ErrOutOfRange for bad indices and
	// ErrNaNInf when the grid's numeric policy rejects v.
	Set(i, j int, v float64) error
}
