// SPDX-License-Identifier: MIT

package accessibility

import (
	"fmt"

	"github.com/katalvlaran/spatialacc/matrix"
	"github.com/katalvlaran/spatialacc/od"
)

// Scores aggregates supply through F: A = supplyᵀ·Fᵀ, that is
// A[i] = Σ_j supply[j]·F[i,j], computed as matrix.MatVec(F, supply).
//
// supply must be in destination sort order and origins in origin sort
// order, matching the layout produced by Assemble. A score is Defined when
// its value is finite.
//
// Complexity:
//   - Time O(|O|·|D|), Space O(|O|).
func Scores(F matrix.Matrix, supply []float64, origins []od.ID) ([]Score, error) {
	if err := matrix.ValidateNotNil(F); err != nil {
		return nil, accessErrorf(opScores, err)
	}
	if len(origins) != F.Rows() {
		return nil, accessErrorf(opScores, fmt.Errorf("%d origins for %d rows: %w",
			len(origins), F.Rows(), matrix.ErrDimensionMismatch))
	}
	a, err := matrix.MatVec(F, supply)
	if err != nil {
		return nil, accessErrorf(opScores, err)
	}

	out := make([]Score, len(a))
	for i := range a {
		out[i] = Score{Origin: origins[i], Value: a[i], Defined: finite(a[i])}
	}

	return out, nil
}
