// SPDX-License-Identifier: MIT

// Package stats computes the descriptive summary reported next to
// accessibility scores: count, mean, standard deviation, minimum, the
// 25/50/75 percentiles and maximum.
//
// Semantics follow the usual data-frame "describe" conventions:
//   - NaN and ±Inf values are skipped and do not count;
//   - the standard deviation uses a configurable delta degrees of freedom
//     (ddof=1 gives the sample deviation) and is NaN when n-ddof <= 0;
//   - percentiles interpolate linearly between closest ranks, h = (n-1)·p.
//
// Mean, central moment, minimum and maximum are delegated to gonum.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ReportPlaces is the precision used when summaries are reported.
const ReportPlaces = 3

// ErrBadDDOF is returned for a negative ddof.
var ErrBadDDOF = errors.New("stats: ddof must be >= 0")

// Summary is the descriptive summary of a sample.
type Summary struct {
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Std   float64 `json:"std" yaml:"std"`
	Min   float64 `json:"min" yaml:"min"`
	P25   float64 `json:"p25" yaml:"p25"`
	P50   float64 `json:"p50" yaml:"p50"`
	P75   float64 `json:"p75" yaml:"p75"`
	Max   float64 `json:"max" yaml:"max"`
}

// Describe summarizes the finite entries of values.
//
// Implementation:
//   - Stage 1: copy finite values and sort them ascending.
//   - Stage 2: mean via stat.Mean; variance = MomentAbout(2, mean)·n/(n-ddof).
//   - Stage 3: min/max via floats.Min/Max; quartiles via Quantile.
//
// An empty (or all non-finite) sample yields Count=0 and NaN elsewhere.
//
// Complexity:
//   - Time O(n log n), Space O(n).
func Describe(values []float64, ddof int) (Summary, error) {
	if ddof < 0 {
		return Summary{}, fmt.Errorf("Describe: ddof %d: %w", ddof, ErrBadDDOF)
	}

	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}, nil
	}
	slices.Sort(x)

	n := len(x)
	mean := stat.Mean(x, nil)

	return Summary{
		Count: n,
		Mean:  mean,
		Std:   stdDev(x, mean, ddof),
		Min:   floats.Min(x),
		P25:   Quantile(x, 0.25),
		P50:   Quantile(x, 0.50),
		P75:   Quantile(x, 0.75),
		Max:   floats.Max(x),
	}, nil
}

// StdDev returns the ddof-adjusted standard deviation of the finite entries
// of values, or NaN when fewer than ddof+1 remain.
func StdDev(values []float64, ddof int) float64 {
	s, err := Describe(values, ddof)
	if err != nil {
		return math.NaN()
	}

	return s.Std
}

func stdDev(x []float64, mean float64, ddof int) float64 {
	n := len(x)
	if n-ddof <= 0 {
		return math.NaN()
	}
	m2 := stat.MomentAbout(2, x, mean, nil) // Σ(x-mean)²/n

	return math.Sqrt(m2 * float64(n) / float64(n-ddof))
}

// Quantile returns the p-quantile of an ascending sample using linear
// interpolation between closest ranks: h = (n-1)·p,
// q = x[⌊h⌋] + (h-⌊h⌋)·(x[⌊h⌋+1] - x[⌊h⌋]).
// p is clamped to [0,1]; an empty sample yields NaN.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || math.IsNaN(p) {
		return math.NaN()
	}
	p = math.Max(0, math.Min(1, p))

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Round rounds v to places decimals, half to even. Non-finite values pass through.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(places))

	return math.RoundToEven(v*scale) / scale
}

// Round returns a copy of s with every float field rounded to places decimals.
func (s Summary) Round(places int) Summary {
	return Summary{
		Count: s.Count,
		Mean:  Round(s.Mean, places),
		Std:   Round(s.Std, places),
		Min:   Round(s.Min, places),
		P25:   Round(s.P25, places),
		P50:   Round(s.P50, places),
		P75:   Round(s.P75, places),
		Max:   Round(s.Max, places),
	}
}

// summaryJSON mirrors Summary with nullable fields.
type summaryJSON struct {
	Count int      `json:"count"`
	Mean  *float64 `json:"mean"`
	Std   *float64 `json:"std"`
	Min   *float64 `json:"min"`
	P25   *float64 `json:"p25"`
	P50   *float64 `json:"p50"`
	P75   *float64 `json:"p75"`
	Max   *float64 `json:"max"`
}

// MarshalJSON encodes non-finite fields as null; encoding/json rejects NaN.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(summaryJSON{
		Count: s.Count,
		Mean:  nullable(s.Mean),
		Std:   nullable(s.Std),
		Min:   nullable(s.Min),
		P25:   nullable(s.P25),
		P50:   nullable(s.P50),
		P75:   nullable(s.P75),
		Max:   nullable(s.Max),
	})
}

// UnmarshalJSON accepts null fields as NaN.
func (s *Summary) UnmarshalJSON(b []byte) error {
	var aux summaryJSON
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*s = Summary{
		Count: aux.Count,
		Mean:  deref(aux.Mean),
		Std:   deref(aux.Std),
		Min:   deref(aux.Min),
		P25:   deref(aux.P25),
		P50:   deref(aux.P50),
		P75:   deref(aux.P75),
		Max:   deref(aux.Max),
	}

	return nil
}

// Nullable returns nil for NaN/±Inf and &v otherwise.
func Nullable(v float64) *float64 { return nullable(v) }

func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func deref(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}

	return *p
}
