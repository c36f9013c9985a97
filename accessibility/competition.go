// SPDX-License-Identifier: MIT

package accessibility

import (
	"fmt"

	"github.com/katalvlaran/spatialacc/od"
)

// Balance divides each decayed weight by the demand-weighted decay sum of
// its destination, accounting for competition among origins:
//
//	Dfdkj      = Demand_k · fdkj
//	Dfdkj_sum  = Σ_k Dfdkj           (per destination j)
//	Fij        = fdij / Dfdkj_sum[j]
//
// weights[i] is fdij of records[i]. The returned pairs keep record order;
// the map holds Dfdkj_sum per destination. For every destination with a
// finite non-zero sum, Σ_i Demand_i·Fij = 1. A zero sum yields Fij = 0/0
// (NaN) for each of that destination's pairs; callers decide what to do
// with such cells.
//
// Complexity:
//   - Time O(n), Space O(n + |D|).
func Balance(records []od.Record, weights []float64) ([]PairWeight, map[od.ID]float64, error) {
	if len(records) != len(weights) {
		return nil, nil, accessErrorf(opBalance,
			fmt.Errorf("%d records, %d weights: %w", len(records), len(weights), ErrWeightCount))
	}

	sums := make(map[od.ID]float64)
	var i int
	for i = range records {
		sums[records[i].Destination] += records[i].Demand * weights[i] // Dfdkj
	}

	pairs := make([]PairWeight, len(records))
	for i = range records {
		pairs[i] = PairWeight{
			Origin:      records[i].Origin,
			Destination: records[i].Destination,
			Fdij:        weights[i],
			Fij:         weights[i] / sums[records[i].Destination],
		}
	}

	return pairs, sums, nil
}
