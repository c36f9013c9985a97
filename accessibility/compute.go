// SPDX-License-Identifier: MIT

package accessibility

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/internal/logging"
	"github.com/katalvlaran/spatialacc/matrix"
	"github.com/katalvlaran/spatialacc/od"
	"github.com/katalvlaran/spatialacc/stats"
)

// Compute scores every origin of an OD table.
//
// Implementation:
//   - Stage 1: resolve options; validate decay parameters and ddof.
//   - Stage 2: od.Normalize, od.NewIndex and od.ValidateComplete.
//   - Stage 3: fdij = decay.Weights(model, params, costs); Balance.
//   - Stage 4: Assemble F under the undefined-weight policy.
//   - Stage 5: Scores = F·supply; summary statistics over defined scores,
//     rounded to stats.ReportPlaces decimals.
//
// When verbose, the logger receives the input totals, the model parameter,
// the F shape, the current standard deviation and the summary. An unknown
// model name (WithModelName) and undefined cells are always logged.
//
// Errors (match with errors.Is):
//   - od.ErrEmptyTable, od.ErrInvalidRecord, od.ErrInconsistentDemand,
//     od.ErrInconsistentSupply, od.ErrZeroDemand, decay.ErrBadParam,
//     stats.ErrBadDDOF: invalid input.
//   - od.ErrIncompleteODMatrix: missing or duplicated pair.
//   - ErrUndefinedWeight: undefined cell under UndefinedFail.
//
// Complexity:
//   - Time O(n log n + |O|·|D|), Space O(n + |O|·|D|).
func Compute(records []od.Record, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	log := o.logger

	if err := o.params.Validate(); err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	if o.ddof < 0 {
		return nil, accessErrorf(opCompute, fmt.Errorf("ddof %d: %w", o.ddof, stats.ErrBadDDOF))
	}
	if o.modelName != "" && !decay.IsKnownModel(o.modelName) {
		log.Info("Unrecognized accessibility model, falling back", "requested", o.modelName, "model", o.model.String())
	}

	summary, err := od.Normalize(records)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	idx, err := od.NewIndex(summary)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	if err = od.ValidateComplete(records, idx); err != nil {
		return nil, accessErrorf(opCompute, err)
	}

	if o.verbose {
		log.Info("Demand locations", "count", summary.OriginCount(), "totalPopulation", summary.TotalDemand)
		log.Info("Facilities", "count", summary.DestinationCount(), "totalCapacity", stats.Round(summary.TotalSupply, stats.ReportPlaces))
		log.Info("Average accessibility score", "value", summary.AverageAccessibility)
		logModel(o)
	}

	costs := make([]float64, len(records))
	for i := range records {
		costs[i] = records[i].TravelCost
	}
	fdij := decay.Weights(o.model, o.params, costs)

	pairs, sums, err := Balance(records, fdij)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	log.V(logging.DEBUG).Info("Balanced pair weights", "pairs", len(pairs), "destinations", len(sums))

	F, undefined, err := Assemble(pairs, idx, o.undefined)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	if log.V(logging.DEBUG).Enabled() {
		logBalance(log, F, summary.DemandVector())
	}
	if o.verbose {
		r, c := F.Shape()
		log.Info("Fij shape", "rows", r, "cols", c)
	}
	if len(undefined) > 0 {
		log.Info("Undefined balancing factors", "cells", len(undefined), "policy", o.undefined.String(),
			"firstOrigin", undefined[0].Origin, "firstDestination", undefined[0].Destination)
	}

	scores, err := Scores(F, summary.SupplyVector(), idx.Origins)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	values := make([]float64, len(scores))
	for i := range scores {
		values[i] = scores[i].Value
	}
	desc, err := stats.Describe(values, o.ddof)
	if err != nil {
		return nil, accessErrorf(opCompute, err)
	}
	desc = desc.Round(stats.ReportPlaces)

	if o.verbose {
		log.Info("Current standard deviation", "std", desc.Std, "ddof", o.ddof)
		log.Info("Current accessibility", "count", desc.Count, "mean", desc.Mean, "std", desc.Std,
			"min", desc.Min, "p25", desc.P25, "p50", desc.P50, "p75", desc.P75, "max", desc.Max)
	}

	return &Result{
		Model:     o.model,
		Params:    o.params,
		Inputs:    summary,
		Scores:    scores,
		Summary:   desc,
		Undefined: undefined,
		Weights:   F,
	}, nil
}

// logModel emits the model-specific parameter line.
func logModel(o Options) {
	switch o.model {
	case decay.Gravity:
		o.logger.Info("Gravity method applied", "beta", o.params.Beta)
	case decay.Threshold:
		o.logger.Info("2SFCA method applied", "threshold", o.params.Threshold)
	default:
		o.logger.Info("Exponential method applied", "expon", o.params.Expon)
	}
}

// logBalance reports how far Σ_i Demand_i·F[i,j] strays from 1 over the
// destinations whose column is finite. A correct balance keeps it at
// rounding noise.
func logBalance(log logr.Logger, F *matrix.Dense, demand []float64) {
	cols, err := matrix.VecMat(demand, F)
	if err != nil {
		log.V(logging.DEBUG).Info("Balance check skipped", "error", err.Error())
		return
	}
	var worst float64
	var checked int
	for _, c := range cols {
		if !finite(c) || c == 0 {
			continue
		}
		worst = math.Max(worst, math.Abs(c-1))
		checked++
	}
	log.V(logging.DEBUG).Info("Demand balance", "destinations", checked, "maxDeviation", worst)
}
