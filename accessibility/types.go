// SPDX-License-Identifier: MIT

package accessibility

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/matrix"
	"github.com/katalvlaran/spatialacc/od"
	"github.com/katalvlaran/spatialacc/stats"
)

// UndefinedPolicy selects how NaN/±Inf balancing factors are treated.
type UndefinedPolicy int

const (
	// UndefinedPropagate lets undefined cells flow into the scores: affected
	// origins get a non-finite value and Defined=false, and the summary
	// statistics skip them.
	UndefinedPropagate UndefinedPolicy = iota
	// UndefinedZero replaces undefined cells with 0.
	UndefinedZero
	// UndefinedFail aborts with ErrUndefinedWeight.
	UndefinedFail
)

// String returns "propagate", "zero" or "fail".
func (p UndefinedPolicy) String() string {
	switch p {
	case UndefinedZero:
		return "zero"
	case UndefinedFail:
		return "fail"
	default:
		return "propagate"
	}
}

// ParseUndefinedPolicy maps a policy name to an UndefinedPolicy; "" means propagate.
func ParseUndefinedPolicy(name string) (UndefinedPolicy, error) {
	switch name {
	case "", "propagate":
		return UndefinedPropagate, nil
	case "zero":
		return UndefinedZero, nil
	case "fail":
		return UndefinedFail, nil
	default:
		return UndefinedPropagate, fmt.Errorf("%q: %w", name, ErrBadPolicy)
	}
}

// PairWeight is the balanced weight of one (origin, destination) pair.
//   - Fdij: decayed interaction f(TravelCost).
//   - Fij:  Fdij divided by the destination's demand-weighted decay sum.
type PairWeight struct {
	Origin      od.ID   `json:"origin" yaml:"origin"`
	Destination od.ID   `json:"destination" yaml:"destination"`
	Fdij        float64 `json:"fdij" yaml:"fdij"`
	Fij         float64 `json:"fij" yaml:"fij"`
}

// Defined reports whether Fij is finite.
func (w PairWeight) Defined() bool { return finite(w.Fij) }

// Score is the accessibility of one origin.
type Score struct {
	Origin  od.ID   `json:"origin" yaml:"origin"`
	Value   float64 `json:"value" yaml:"value"`
	Defined bool    `json:"defined" yaml:"defined"`
}

// Result is the output of Compute.
//
// Scores are in origin sort order (od.Less). Summary is rounded to
// stats.ReportPlaces decimals and covers defined scores only. Undefined
// lists the pairs whose balancing factor was NaN/±Inf before the policy
// applied, in origin-then-destination order.
type Result struct {
	Model     decay.Model   `json:"model" yaml:"model"`
	Params    decay.Params  `json:"params" yaml:"params"`
	Inputs    *od.Summary   `json:"inputs" yaml:"inputs"`
	Scores    []Score       `json:"scores" yaml:"scores"`
	Summary   stats.Summary `json:"summary" yaml:"summary"`
	Undefined []PairWeight  `json:"undefined,omitempty" yaml:"undefined,omitempty"`
	Weights   *matrix.Dense `json:"-" yaml:"-"` // F, origins × destinations
}

// ScoreOf returns the score of origin id.
func (r *Result) ScoreOf(id od.ID) (Score, bool) {
	for _, s := range r.Scores {
		if s.Origin == id {
			return s, true
		}
	}

	return Score{}, false
}

// Values returns the score values in origin sort order.
func (r *Result) Values() []float64 {
	out := make([]float64, len(r.Scores))
	for i := range r.Scores {
		out[i] = r.Scores[i].Value
	}

	return out
}

// DefinedCount returns the number of scores with Defined=true.
func (r *Result) DefinedCount() int {
	var n int
	for i := range r.Scores {
		if r.Scores[i].Defined {
			n++
		}
	}

	return n
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

type scoreJSON struct {
	Origin  od.ID    `json:"origin"`
	Value   *float64 `json:"value"`
	Defined bool     `json:"defined"`
}

// MarshalJSON encodes a non-finite value as null.
func (s Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(scoreJSON{Origin: s.Origin, Value: stats.Nullable(s.Value), Defined: s.Defined})
}

type pairWeightJSON struct {
	Origin      od.ID    `json:"origin"`
	Destination od.ID    `json:"destination"`
	Fdij        *float64 `json:"fdij"`
	Fij         *float64 `json:"fij"`
}

// MarshalJSON encodes non-finite weights as null.
func (w PairWeight) MarshalJSON() ([]byte, error) {
	return json.Marshal(pairWeightJSON{
		Origin:      w.Origin,
		Destination: w.Destination,
		Fdij:        stats.Nullable(w.Fdij),
		Fij:         stats.Nullable(w.Fij),
	})
}
