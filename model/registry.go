package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sgostarter/histfit/histogram"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrUnknownModel = errors.New("unknown model")
)

var families = map[string]Model{
	Normal{}.Name():      Normal{},
	Laplace{}.Name():     Laplace{},
	Exponential{}.Name(): Exponential{},
}

func ByName(name string) (Model, error) {
	m, ok := families[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	return m, nil
}

func Names() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// WithInit returns m seeded at init instead of m.Init().
func WithInit(m Model, init []float64) Model {
	return &seeded{
		Model: m,
		init:  append([]float64(nil), init...),
	}
}

type seeded struct {
	Model

	init []float64
}

func (s *seeded) Init() []float64 {
	return append([]float64(nil), s.init...)
}

// GuessNormal estimates [mu, sigma] from the binned data, using bin centers as
// the sample positions. It falls back to Normal{}.Init() when the histogram is
// empty or degenerate.
func GuessNormal(h *histogram.Histogram) []float64 {
	centers := h.Centers()
	if len(centers) == 0 || h.Total() <= 0 {
		return Normal{}.Init()
	}

	counts := h.Counts()

	mu := stat.Mean(centers, counts)
	sigma := stat.StdDev(centers, counts)

	if math.IsNaN(mu) || math.IsNaN(sigma) || sigma <= 0 {
		return Normal{}.Init()
	}

	return []float64{mu, sigma}
}

func (s *seeded) Unwrap() Model {
	return s.Model
}

// NameOf reports the family name and parameter names of m, looking through
// decorators such as WithInit and NewCachedModel.
func NameOf(m Model) (name string, paramNames []string) {
	for m != nil {
		if named, ok := m.(Named); ok {
			return named.Name(), named.ParamNames()
		}

		u, ok := m.(interface{ Unwrap() Model })
		if !ok {
			break
		}

		m = u.Unwrap()
	}

	return
}
