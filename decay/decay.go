// SPDX-License-Identifier: MIT

// Package decay implements the distance-decay functions f(d) that turn a
// travel cost into an interaction weight.
//
// Models:
//   - Threshold ("2SFCA"):  f(d) = 1 if d <= Threshold, else 0.
//   - Gravity ("Gravity"):  f(d) = d^(-Beta). f(0) = +Inf and is left to the
//     caller's undefined-weight policy.
//   - Exponential:          f(d) = exp(-d·Expon).
//
// Model names are matched exactly and case-sensitively by ParseModel. Any
// other name selects Exponential; ParseModelStrict is the rejecting variant
// for input boundaries.
package decay

import (
	"errors"
	"fmt"
	"math"
)

// Model tags a distance-decay function.
type Model int

const (
	// Exponential is the fallback model: exp(-cost·expon).
	Exponential Model = iota
	// Threshold is the binary catchment model of the two-step floating catchment area method.
	Threshold
	// Gravity is the inverse power model: cost^(-beta).
	Gravity
)

// Canonical model names.
const (
	NameThreshold   = "2SFCA"
	NameGravity     = "Gravity"
	NameExponential = "Exponential"
)

// Default parameter values.
const (
	DefaultBeta      = 1.0
	DefaultThreshold = 5000.0
	DefaultExpon     = 0.8
)

var (
	// ErrUnknownModel is returned by ParseModelStrict for unrecognized names.
	ErrUnknownModel = errors.New("decay: unknown model")

	// ErrBadParam indicates a NaN or infinite parameter, or a negative threshold.
	ErrBadParam = errors.New("decay: invalid parameter")
)

// String returns the canonical name of m.
func (m Model) String() string {
	switch m {
	case Threshold:
		return NameThreshold
	case Gravity:
		return NameGravity
	default:
		return NameExponential
	}
}

// MarshalText encodes m by its canonical name.
func (m Model) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes a canonical name, rejecting unknown names.
func (m *Model) UnmarshalText(b []byte) error {
	v, err := ParseModelStrict(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

// ParseModel maps a model name to a Model: "2SFCA" and "Gravity" select
// their models, everything else (including "" and "Exponential") selects
// Exponential.
func ParseModel(name string) Model {
	switch name {
	case NameThreshold:
		return Threshold
	case NameGravity:
		return Gravity
	default:
		return Exponential
	}
}

// IsKnownModel reports whether name is one of the three canonical names.
// ParseModel(name) falls back to Exponential whenever this returns false.
func IsKnownModel(name string) bool {
	return name == NameThreshold || name == NameGravity || name == NameExponential
}

// ParseModelStrict is ParseModel without the fallback.
func ParseModelStrict(name string) (Model, error) {
	if !IsKnownModel(name) {
		return Exponential, fmt.Errorf("%q: %w", name, ErrUnknownModel)
	}

	return ParseModel(name), nil
}

// Params carries the parameters of all models; each model reads only its own.
type Params struct {
	Beta      float64 `json:"beta" yaml:"beta"`           // Gravity exponent
	Threshold float64 `json:"threshold" yaml:"threshold"` // 2SFCA catchment size, inclusive
	Expon     float64 `json:"expon" yaml:"expon"`         // Exponential rate
}

// DefaultParams returns Beta=1, Threshold=5000, Expon=0.8.
func DefaultParams() Params {
	return Params{Beta: DefaultBeta, Threshold: DefaultThreshold, Expon: DefaultExpon}
}

// Validate rejects NaN/±Inf values and a negative threshold.
func (p Params) Validate() error {
	if !finite(p.Beta) {
		return fmt.Errorf("beta %v: %w", p.Beta, ErrBadParam)
	}
	if !finite(p.Threshold) || p.Threshold < 0 {
		return fmt.Errorf("threshold %v: %w", p.Threshold, ErrBadParam)
	}
	if !finite(p.Expon) {
		return fmt.Errorf("expon %v: %w", p.Expon, ErrBadParam)
	}

	return nil
}

// Func returns the decay function of m bound to p.
func Func(m Model, p Params) func(cost float64) float64 {
	switch m {
	case Threshold:
		limit := p.Threshold
		return func(cost float64) float64 {
			if cost <= limit {
				return 1
			}
			return 0
		}
	case Gravity:
		negBeta := -p.Beta
		return func(cost float64) float64 { return math.Pow(cost, negBeta) }
	default:
		rate := p.Expon
		return func(cost float64) float64 { return math.Exp(-cost * rate) }
	}
}

// Weights applies Func(m, p) to every cost. The result has len(costs)
// entries in the same order.
// Complexity: O(n).
func Weights(m Model, p Params, costs []float64) []float64 {
	f := Func(m, p)
	out := make([]float64, len(costs))
	for i, c := range costs {
		out[i] = f(c)
	}

	return out
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
