// SPDX-License-Identifier: MIT

package od

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the od package. Callers match them with
// errors.Is; call sites wrap them with row or key context.
var (
	// ErrEmptyTable is returned when no records are supplied.
	ErrEmptyTable = errors.New("od: empty OD table")

	// ErrInvalidRecord indicates an empty identifier or a NaN, infinite or
	// negative cost, demand or supply.
	ErrInvalidRecord = errors.New("od: invalid record")

	// ErrInconsistentDemand indicates one origin carrying two different demand values.
	ErrInconsistentDemand = errors.New("od: inconsistent origin demand")

	// ErrInconsistentSupply indicates one destination carrying two different supply values.
	ErrInconsistentSupply = errors.New("od: inconsistent destination supply")

	// ErrZeroDemand is returned when total demand is zero and the average
	// accessibility (total supply / total demand) is undefined.
	ErrZeroDemand = errors.New("od: total demand is zero")

	// ErrIncompleteODMatrix indicates a missing or duplicated (origin, destination) pair.
	ErrIncompleteODMatrix = errors.New("od: incomplete OD matrix")

	// ErrNilIndex is returned when a nil *Index is passed in.
	ErrNilIndex = errors.New("od: nil index")
)

// odErrorf wraps err with an operation tag, preserving the sentinel via %w.
func odErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
