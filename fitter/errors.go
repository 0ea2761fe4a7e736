package fitter

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotImplemented   = errors.New("not implemented")
	ErrNumericalFailure = errors.New("numerical failure")
	ErrNotConverged     = errors.New("not converged")
)
