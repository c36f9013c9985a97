// SPDX-License-Identifier: MIT

// Package matrix: functional options for the Dense numeric policy.
//
// A grid that must carry undefined balancing factors (0/0 for a destination
// without weighted demand) is allocated with WithNoValidateNaNInf; the
// caller's undefined-weight policy decides what happens to those cells.
package matrix

// DefaultValidateNaNInf makes new grids finite-only.
const DefaultValidateNaNInf = true

// Option configures a Dense at construction time.
type Option func(*options)

type options struct {
	validateNaNInf bool
}

// WithNoValidateNaNInf lets Set store NaN and ±Inf.
func WithNoValidateNaNInf() Option {
	return func(o *options) {
		o.validateNaNInf = false
	}
}

// gatherOptions applies opts over the defaults; nil setters are skipped.
func gatherOptions(opts ...Option) options {
	o := options{validateNaNInf: DefaultValidateNaNInf}
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}

	return o
}
