// SPDX-License-Identifier: MIT

package accessibility

import (
	"github.com/go-logr/logr"

	"github.com/katalvlaran/spatialacc/decay"
)

// Default option values.
const (
	DefaultModel   = decay.Gravity
	DefaultDDOF    = 1
	DefaultVerbose = true
)

// Option configures Compute.
type Option func(*Options)

// Options is the resolved configuration of one Compute call.
type Options struct {
	model     decay.Model
	modelName string // raw name from WithModelName, kept for the fallback warning
	params    decay.Params
	ddof      int
	verbose   bool
	logger    logr.Logger
	undefined UndefinedPolicy
}

// Model returns the configured decay model.
func (o Options) Model() decay.Model { return o.model }

// Params returns the configured decay parameters.
func (o Options) Params() decay.Params { return o.params }

// DDOF returns the delta degrees of freedom used for the standard deviation.
func (o Options) DDOF() int { return o.ddof }

// Verbose reports whether diagnostics are logged.
func (o Options) Verbose() bool { return o.verbose }

// Undefined returns the undefined-weight policy.
func (o Options) Undefined() UndefinedPolicy { return o.undefined }

// WithModel selects the decay model.
func WithModel(m decay.Model) Option {
	return func(o *Options) {
		o.model = m
		o.modelName = ""
	}
}

// WithModelName selects the decay model by name with decay.ParseModel
// semantics: unknown names fall back to Exponential and a warning is logged.
func WithModelName(name string) Option {
	return func(o *Options) {
		o.model = decay.ParseModel(name)
		o.modelName = name
	}
}

// WithBeta sets the Gravity exponent.
func WithBeta(beta float64) Option { return func(o *Options) { o.params.Beta = beta } }

// WithThreshold sets the 2SFCA catchment size (inclusive).
func WithThreshold(th float64) Option { return func(o *Options) { o.params.Threshold = th } }

// WithExpon sets the Exponential decay rate.
func WithExpon(e float64) Option { return func(o *Options) { o.params.Expon = e } }

// WithParams replaces all decay parameters at once.
func WithParams(p decay.Params) Option { return func(o *Options) { o.params = p } }

// WithDDOF sets the delta degrees of freedom of the reported standard deviation.
func WithDDOF(ddof int) Option { return func(o *Options) { o.ddof = ddof } }

// WithVerbose toggles diagnostic logging.
func WithVerbose(v bool) Option { return func(o *Options) { o.verbose = v } }

// WithLogger sets the diagnostics sink.
func WithLogger(l logr.Logger) Option { return func(o *Options) { o.logger = l } }

// WithUndefinedPolicy selects how undefined balancing factors are treated.
func WithUndefinedPolicy(p UndefinedPolicy) Option { return func(o *Options) { o.undefined = p } }

// NewOptions resolves opts over the defaults.
func NewOptions(opts ...Option) Options { return gatherOptions(opts...) }

// gatherOptions applies opts over the defaults; nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{
		model:     DefaultModel,
		params:    decay.DefaultParams(),
		ddof:      DefaultDDOF,
		verbose:   DefaultVerbose,
		logger:    logr.Discard(),
		undefined: UndefinedPropagate,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
