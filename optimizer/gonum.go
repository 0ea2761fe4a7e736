package optimizer

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

func NewGonum(opts ...Option) (Optimizer, error) {
	o := optionNew(opts...)

	switch o.method {
	case MethodNelderMead, MethodBFGS:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, o.method)
	}

	return &gonumImpl{
		opts: o,
	}, nil
}

type gonumImpl struct {
	opts *Options
}

func (impl *gonumImpl) method() optimize.Method {
	if impl.opts.method == MethodBFGS {
		return &optimize.BFGS{}
	}

	return &optimize.NelderMead{}
}

func (impl *gonumImpl) Minimize(obj Objective, init []float64) (*Result, error) {
	if len(init) == 0 {
		return nil, ErrEmptyInit
	}

	problem := optimize.Problem{
		Func: obj,
	}

	if impl.opts.method == MethodBFGS {
		problem.Grad = func(grad, x []float64) {
			fd.Gradient(grad, obj, x, &fd.Settings{
				Formula: fd.Central,
			})
		}
	}

	settings := &optimize.Settings{
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 100,
		},
		MajorIterations: impl.opts.majorIterations,
		FuncEvaluations: impl.opts.funcEvaluations,
	}

	r, err := optimize.Minimize(problem, append([]float64(nil), init...), settings, impl.method())
	if r == nil || len(r.X) == 0 {
		if err == nil {
			err = fmt.Errorf("optimize: no location, status %v", statusOf(r))
		}

		return nil, err
	}

	return &Result{
		X:               append([]float64(nil), r.X...),
		F:               r.F,
		Converged:       err == nil && converged(r.Status),
		Status:          r.Status.String(),
		Iterations:      r.MajorIterations,
		FuncEvaluations: r.FuncEvaluations,
	}, nil
}

func statusOf(r *optimize.Result) optimize.Status {
	if r == nil {
		return optimize.NotTerminated
	}

	return r.Status
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}

	return false
}
