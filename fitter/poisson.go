package fitter

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// poissonLogPMF is log P(N = n) for N ~ Poisson(rate). A zero rate is the
// distribution concentrated at 0; negative or NaN rates give NaN.
func poissonLogPMF(n, rate float64) float64 {
	switch {
	case math.IsNaN(rate) || rate < 0:
		return math.NaN()
	case rate == 0:
		if n == 0 {
			return 0
		}

		return math.Inf(-1)
	case math.IsInf(rate, 1):
		return math.Inf(-1)
	}

	return distuv.Poisson{Lambda: rate}.LogProb(n)
}
