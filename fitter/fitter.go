// Package fitter fits a model.Model to a one dimensional histogram by
// maximizing the Poisson likelihood of the observed bin counts.
//
// The fit is not extended: the model only describes the shape, and the
// expected count of bin i is total * (CDF(e[i+1]) - CDF(e[i])) where total is
// the observed sum of counts.
package fitter

import (
	"fmt"
	"math"

	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/histfit/model"
	"github.com/sgostarter/histfit/optimizer"
	"github.com/sgostarter/i/l"
	"github.com/spf13/cast"
)

type Result struct {
	Params      []float64
	Expectation []float64
	NLL         float64

	Converged       bool
	Status          string
	Iterations      int
	FuncEvaluations int
}

func Fit(m model.Model, h *histogram.Histogram, opts ...Option) (*Result, error) {
	o := optionNew(opts...)

	if m == nil {
		return nil, fmt.Errorf("%w: nil model", ErrInvalidInput)
	}

	if err := checkHistogram(h); err != nil {
		return nil, err
	}

	if o.extended {
		return nil, fmt.Errorf("%w: extended fit", ErrNotImplemented)
	}

	seed := o.init
	if len(seed) == 0 {
		seed = m.Init()
	}

	if err := checkSeed(m, seed); err != nil {
		return nil, err
	}

	opt := o.optimizer
	if opt == nil {
		var err error

		opt, err = optimizer.NewGonum()
		if err != nil {
			return nil, err
		}
	}

	logger := o.logger.WithFields(l.StringField(l.ClsKey, "fitter"))

	b := newBinned(h)

	logger.WithFields(l.IntField("bins", len(b.counts)), l.StringField("total", cast.ToString(b.total)),
		l.StringField("init", fmt.Sprint(seed))).Debug("fit start")

	r, err := opt.Minimize(func(params []float64) float64 {
		v := b.nll(m, params)
		if math.IsNaN(v) {
			return math.Inf(1)
		}

		return v
	}, seed)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Error("minimize failed")

		return nil, fmt.Errorf("%w: %w", ErrNumericalFailure, err)
	}

	result := &Result{
		Params:          r.X,
		Expectation:     b.expectation(m, r.X),
		NLL:             b.nll(m, r.X),
		Converged:       r.Converged,
		Status:          r.Status,
		Iterations:      r.Iterations,
		FuncEvaluations: r.FuncEvaluations,
	}

	logger = logger.WithFields(l.StringField("params", fmt.Sprint(result.Params)),
		l.StringField("nll", cast.ToString(result.NLL)), l.StringField("status", result.Status),
		l.IntField("iterations", result.Iterations))

	if math.IsNaN(result.NLL) || math.IsInf(result.NLL, 0) {
		logger.Error("non finite likelihood at optimum")

		return result, fmt.Errorf("%w: nll %v at %v", ErrNumericalFailure, result.NLL, result.Params)
	}

	if !result.Converged {
		if o.requireConvergence {
			logger.Error("minimizer did not converge")

			return result, fmt.Errorf("%w: %s", ErrNotConverged, result.Status)
		}

		logger.Warn("minimizer did not converge")
	}

	logger.Debug("fit done")

	return result, nil
}

// Expectation returns the expected count per bin of h under m at params.
func Expectation(m model.Model, h *histogram.Histogram, params []float64) ([]float64, error) {
	if err := checkHistogram(h); err != nil {
		return nil, err
	}

	return newBinned(h).expectation(m, params), nil
}

// NegLogLikelihood is the objective minimized by Fit.
func NegLogLikelihood(m model.Model, h *histogram.Histogram, params []float64) (float64, error) {
	if err := checkHistogram(h); err != nil {
		return 0, err
	}

	return newBinned(h).nll(m, params), nil
}

func checkHistogram(h *histogram.Histogram) error {
	if h == nil {
		return fmt.Errorf("%w: nil histogram", ErrInvalidInput)
	}

	if h.Dim() != 1 {
		return fmt.Errorf("%w: histogram has %d axes, want 1", ErrInvalidInput, h.Dim())
	}

	return nil
}

// checkSeed rejects starting points the model cannot be evaluated at. Named
// models declare their arity; any model is evaluated once at the seed so a
// panic surfaces here instead of inside the minimizer.
func checkSeed(m model.Model, seed []float64) (err error) {
	if len(seed) == 0 {
		return fmt.Errorf("%w: empty initial parameters", ErrInvalidInput)
	}

	if name, paramNames := model.NameOf(m); len(paramNames) > 0 && len(seed) != len(paramNames) {
		return fmt.Errorf("%w: %s model takes %d parameters %v, got %d", ErrInvalidInput,
			name, len(paramNames), paramNames, len(seed))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: model failed at %v: %v", ErrInvalidInput, seed, r)
		}
	}()

	m.CDF(append([]float64(nil), seed...), 0)

	return
}

type binned struct {
	edges  []float64
	counts []float64
	total  float64
}

func newBinned(h *histogram.Histogram) *binned {
	return &binned{
		edges:  h.Edges(),
		counts: h.Counts(),
		total:  h.Total(),
	}
}

func (b *binned) expectation(m model.Model, params []float64) []float64 {
	ex := make([]float64, len(b.counts))

	lo := m.CDF(params, b.edges[0])

	for idx := range ex {
		hi := m.CDF(params, b.edges[idx+1])
		ex[idx] = b.total * (hi - lo)
		lo = hi
	}

	return ex
}

func (b *binned) nll(m model.Model, params []float64) float64 {
	var ll float64

	for idx, rate := range b.expectation(m, params) {
		ll += poissonLogPMF(b.counts[idx], rate)
	}

	return -ll
}
