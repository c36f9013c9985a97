// SPDX-License-Identifier: MIT

// Package spatialacc scores how well demand locations are served by supply
// locations, given a table of travel costs between them.
//
// What is spatial accessibility?
//
//	For every origin (a neighbourhood with some population) and every
//	destination (a clinic, school or park with some capacity) we know the
//	travel cost between them. A distance-decay function turns each cost into
//	an interaction weight, competing demand at each destination is factored
//	in, and the supply reachable from each origin is summed into one score.
//
// Decay models:
//
//   - 2SFCA       binary catchment: 1 within Threshold (inclusive), else 0
//   - Gravity     cost^(-beta)
//   - Exponential exp(-cost·expon); also the fallback for unknown names
//
// Packages:
//
//	accessibility/   Compute facade: balancing, matrix assembly, scores, summary
//	decay/           distance-decay models and parameters
//	od/              OD records, id ordering, normalization, completeness checks
//	matrix/          dense row-major matrix and the kernels used for scoring
//	stats/           descriptive statistics and reporting precision
//	odsource/        CSV / YAML / SQLite readers with zstd and lz4 support
//	cmd/spatialacc/  command-line interface and HTTP server entry point
//
// Quick start:
//
//	res, err := accessibility.Compute(records,
//		accessibility.WithModel(decay.Threshold),
//		accessibility.WithThreshold(1800),
//	)
//	if err != nil {
//		return err
//	}
//	for _, s := range res.Scores {
//		fmt.Println(s.Origin, s.Value)
//	}
//
// Every score is an amount of supply per unit of demand. Weighted by
// demand, the scores add back up to the total supply whenever all
// balancing factors are defined.
package spatialacc
