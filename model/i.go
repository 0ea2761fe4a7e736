// Package model holds the parametric distribution families that can be fit
// to a binned histogram.
package model

// Model is anything exposing a cumulative distribution function over a
// parameter vector and a starting point for the minimizer.
//
// CDF must be non-decreasing in x for any fixed params; params are not
// validated, a family may return NaN for nonsensical values.
type Model interface {
	CDF(params []float64, x float64) float64
	Init() []float64
}

type Named interface {
	Name() string
	ParamNames() []string
}
