// SPDX-License-Identifier: MIT

package accessibility_test

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spatialacc/od"
)

// grid2x2 is a complete table with shuffled rows:
//
//	origins 1 (demand 100), 2 (demand 50); destinations a (supply 10), b (supply 5)
func grid2x2() []od.Record {
	return []od.Record{
		{Origin: "2", Destination: "b", TravelCost: 4, Demand: 50, Supply: 5},
		{Origin: "1", Destination: "a", TravelCost: 1, Demand: 100, Supply: 10},
		{Origin: "2", Destination: "a", TravelCost: 2, Demand: 50, Supply: 10},
		{Origin: "1", Destination: "b", TravelCost: 3, Demand: 100, Supply: 5},
	}
}

// grid3x4 builds a complete 3-origin × 4-destination table with numeric
// origin ids that would misorder under plain string sorting.
func grid3x4() []od.Record {
	origins := []struct {
		id     od.ID
		demand float64
	}{{"10", 30}, {"2", 120}, {"9", 75}}
	dests := []struct {
		id     od.ID
		supply float64
	}{{"d", 4}, {"a", 12}, {"c", 0}, {"b", 7}}

	var out []od.Record
	for i, o := range origins {
		for j, d := range dests {
			out = append(out, od.Record{
				Origin:      o.id,
				Destination: d.id,
				TravelCost:  float64(1+i*3+j*2) * 0.75,
				Demand:      o.demand,
				Supply:      d.supply,
			})
		}
	}

	return out
}

// sortReshapeReference lays out Fij the way a sort-then-reshape pipeline
// does: sort pairs by (origin, destination), reshape the flat vector into
// (|D|, |O|) column-major, then transpose. Returns rows of F.
func sortReshapeReference(t *testing.T, records []od.Record, fij []float64) [][]float64 {
	t.Helper()
	require.Len(t, fij, len(records))

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := od.Compare(records[a].Origin, records[b].Origin); c != 0 {
			return c
		}
		return od.Compare(records[a].Destination, records[b].Destination)
	})
	vec := make([]float64, len(order))
	for k, i := range order {
		vec[k] = fij[i]
	}

	s, err := od.Normalize(records)
	require.NoError(t, err)
	nO, nD := s.OriginCount(), s.DestinationCount()

	// reshape (nD, nO) order F: M[s][d] = vec[s + d*nD]; transpose: F[d][s] = M[s][d].
	out := make([][]float64, nO)
	for d := 0; d < nO; d++ {
		out[d] = make([]float64, nD)
		for sp := 0; sp < nD; sp++ {
			out[d][sp] = vec[sp+d*nD]
		}
	}

	return out
}

func isUndefined(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
