package optimizer

import "errors"

var (
	ErrEmptyInit     = errors.New("empty initial point")
	ErrUnknownMethod = errors.New("unknown method")
)

type Objective func(x []float64) float64

type Result struct {
	X []float64
	F float64

	Converged bool
	Status    string

	Iterations      int
	FuncEvaluations int
}

// Optimizer finds a local minimum of an objective starting from init.
// Failing to converge is reported through Result.Converged, an error means no
// usable location was produced.
type Optimizer interface {
	Minimize(obj Objective, init []float64) (*Result, error)
}
