// SPDX-License-Identifier: MIT

// Package accessibility computes spatial accessibility scores for demand
// locations (origins) relative to supply locations (destinations) from a
// long-form origin-destination travel-cost table.
//
// Pipeline:
//
//	od.Normalize            unique origins / destinations, totals
//	decay.Weights           fdij = f(TravelCost)
//	Balance                 Fij  = fdij / Σ_k Demand_k·fdkj
//	Assemble                dense F (origins × destinations), scattered by key
//	Scores                  A[i] = Σ_j Supply_j · F[i,j]
//	stats.Describe          count, mean, std, min, quartiles, max
//
// Compute runs the whole pipeline and is the entry point most callers need.
// It is a pure function: no state survives between calls and caller records
// are never mutated, so concurrent calls are safe.
//
// Undefined weights (NaN or ±Inf Fij, e.g. a destination whose weighted
// demand sums to zero, or a zero cost under Gravity) are handled by the
// configured UndefinedPolicy.
package accessibility
