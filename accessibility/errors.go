// SPDX-License-Identifier: MIT

package accessibility

import (
	"errors"
	"fmt"
)

var (
	// ErrUndefinedWeight is returned under UndefinedFail when a balancing
	// factor is NaN or infinite.
	ErrUndefinedWeight = errors.New("accessibility: undefined balancing factor")

	// ErrWeightCount indicates a weight slice whose length differs from the records.
	ErrWeightCount = errors.New("accessibility: weights and records differ in length")

	// ErrBadPolicy indicates an unknown undefined-weight policy name.
	ErrBadPolicy = errors.New("accessibility: unknown undefined-weight policy")
)

const (
	opCompute  = "Compute"
	opBalance  = "Balance"
	opAssemble = "Assemble"
	opScores   = "Scores"
)

// accessErrorf wraps err with an operation tag, preserving the sentinel via %w.
func accessErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
