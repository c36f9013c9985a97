// SPDX-License-Identifier: MIT

package od

import (
	"fmt"
	"math"
	"slices"
)

const (
	opNormalize        = "Normalize"
	opValidateComplete = "ValidateComplete"
	opNewIndex         = "NewIndex"
)

// ValidateRecord checks a single record in isolation.
// Returns ErrInvalidRecord for an empty ID or a NaN, infinite or negative
// cost, demand or supply.
func ValidateRecord(r Record) error {
	if r.Origin == "" {
		return fmt.Errorf("empty origin id: %w", ErrInvalidRecord)
	}
	if r.Destination == "" {
		return fmt.Errorf("empty destination id: %w", ErrInvalidRecord)
	}
	if !nonNegativeFinite(r.TravelCost) {
		return fmt.Errorf("travel cost %v: %w", r.TravelCost, ErrInvalidRecord)
	}
	if !nonNegativeFinite(r.Demand) {
		return fmt.Errorf("demand %v: %w", r.Demand, ErrInvalidRecord)
	}
	if !nonNegativeFinite(r.Supply) {
		return fmt.Errorf("supply %v: %w", r.Supply, ErrInvalidRecord)
	}

	return nil
}

// Normalize derives the unique demand and supply locations of an OD table.
//
// Implementation:
//   - Stage 1: validate each record (ValidateRecord), wrapping failures with
//     the 0-based row number.
//   - Stage 2: deduplicate origins by (OriginID, Demand) and destinations by
//     (DestinationID, Supply); a repeated ID with a different value is
//     rejected with ErrInconsistentDemand / ErrInconsistentSupply.
//   - Stage 3: sort both key sets with Less and accumulate totals in sorted
//     order, so the floating-point sums do not depend on row order.
//   - Stage 4: AverageAccessibility = TotalSupply / TotalDemand.
//
// Errors:
//   - ErrEmptyTable, ErrInvalidRecord, ErrInconsistentDemand,
//     ErrInconsistentSupply, ErrZeroDemand.
//
// Complexity:
//   - Time O(n + |O| log |O| + |D| log |D|), Space O(|O| + |D|).
func Normalize(records []Record) (*Summary, error) {
	if len(records) == 0 {
		return nil, odErrorf(opNormalize, ErrEmptyTable)
	}

	demand := make(map[ID]float64)
	supply := make(map[ID]float64)
	var (
		r    Record
		row  int
		prev float64
		seen bool
	)
	for row, r = range records {
		if err := ValidateRecord(r); err != nil {
			return nil, odErrorf(opNormalize, fmt.Errorf("row %d: %w", row, err))
		}
		if prev, seen = demand[r.Origin]; seen && prev != r.Demand {
			return nil, odErrorf(opNormalize, fmt.Errorf("row %d: origin %q has demand %v and %v: %w",
				row, r.Origin, prev, r.Demand, ErrInconsistentDemand))
		}
		demand[r.Origin] = r.Demand
		if prev, seen = supply[r.Destination]; seen && prev != r.Supply {
			return nil, odErrorf(opNormalize, fmt.Errorf("row %d: destination %q has supply %v and %v: %w",
				row, r.Destination, prev, r.Supply, ErrInconsistentSupply))
		}
		supply[r.Destination] = r.Supply
	}

	s := &Summary{
		Origins:      make([]Origin, 0, len(demand)),
		Destinations: make([]Destination, 0, len(supply)),
	}
	for _, id := range sortedKeys(demand) {
		s.Origins = append(s.Origins, Origin{ID: id, Demand: demand[id]})
		s.TotalDemand += demand[id]
	}
	for _, id := range sortedKeys(supply) {
		s.Destinations = append(s.Destinations, Destination{ID: id, Supply: supply[id]})
		s.TotalSupply += supply[id]
	}

	if s.TotalDemand == 0 {
		return nil, odErrorf(opNormalize, ErrZeroDemand)
	}
	s.AverageAccessibility = s.TotalSupply / s.TotalDemand

	return s, nil
}

// sortedKeys returns the keys of m ordered by Compare.
func sortedKeys(m map[ID]float64) []ID {
	keys := make([]ID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Compare)

	return keys
}

func nonNegativeFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
