package model

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is parameterized by [mu, sigma].
type Normal struct{}

func (Normal) CDF(params []float64, x float64) float64 {
	return distuv.Normal{Mu: params[0], Sigma: params[1]}.CDF(x)
}

func (Normal) Init() []float64 {
	return []float64{0, 1}
}

func (Normal) Name() string {
	return "normal"
}

func (Normal) ParamNames() []string {
	return []string{"mu", "sigma"}
}

// Laplace is parameterized by [mu, scale].
type Laplace struct{}

func (Laplace) CDF(params []float64, x float64) float64 {
	return distuv.Laplace{Mu: params[0], Scale: params[1]}.CDF(x)
}

func (Laplace) Init() []float64 {
	return []float64{0, 1}
}

func (Laplace) Name() string {
	return "laplace"
}

func (Laplace) ParamNames() []string {
	return []string{"mu", "scale"}
}

// Exponential is parameterized by [rate].
type Exponential struct{}

func (Exponential) CDF(params []float64, x float64) float64 {
	return distuv.Exponential{Rate: params[0]}.CDF(x)
}

func (Exponential) Init() []float64 {
	return []float64{1}
}

func (Exponential) Name() string {
	return "exponential"
}

func (Exponential) ParamNames() []string {
	return []string{"rate"}
}
