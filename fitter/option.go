package fitter

import (
	"github.com/sgostarter/histfit/optimizer"
	"github.com/sgostarter/i/l"
)

type Options struct {
	extended           bool
	requireConvergence bool
	init               []float64
	optimizer          optimizer.Optimizer
	logger             l.Wrapper
}

type Option func(o *Options)

func optionNew(option ...Option) *Options {
	opts := &Options{}
	for _, o := range option {
		o(opts)
	}

	if opts.logger == nil {
		opts.logger = l.NewNopLoggerWrapper()
	}

	return opts
}

// ExtendedOption asks for a fit of the total yield as well as the shape.
// Extended fits are not supported and Fit always refuses them.
func ExtendedOption(extended bool) Option {
	return func(o *Options) {
		o.extended = extended
	}
}

// RequireConvergenceOption makes Fit fail with ErrNotConverged when the
// minimizer stops without converging. By default the result is returned as is.
func RequireConvergenceOption() Option {
	return func(o *Options) {
		o.requireConvergence = true
	}
}

// InitOption seeds the minimizer at init instead of the model's own guess.
func InitOption(init []float64) Option {
	return func(o *Options) {
		o.init = append([]float64(nil), init...)
	}
}

func OptimizerOption(opt optimizer.Optimizer) Option {
	return func(o *Options) {
		o.optimizer = opt
	}
}

func LoggerOption(logger l.Wrapper) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
