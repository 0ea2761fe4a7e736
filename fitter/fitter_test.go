package fitter

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/histfit/model"
	"github.com/sgostarter/histfit/optimizer"
	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
)

func normalHistogram(t *testing.T, seed uint64) *histogram.Histogram {
	h, err := histogram.NewRegular(40, -3, 3)
	assert.Nil(t, err)

	rnd := rand.New(rand.NewPCG(seed, seed+1))

	for i := 0; i < 1000; i++ {
		h.Fill(rnd.NormFloat64(), 1)
	}

	return h
}

func TestFitRecoversNormal(t *testing.T) {
	h := normalHistogram(t, 42)

	r, err := Fit(model.Normal{}, h, LoggerOption(l.NewConsoleLoggerWrapper()))
	assert.Nil(t, err)
	assert.InDelta(t, 0, r.Params[0], 0.1)
	assert.InDelta(t, 1, r.Params[1], 0.1)
	assert.EqualValues(t, h.NBins(), len(r.Expectation))
	assert.False(t, math.IsInf(r.NLL, 0))

	ex, err := Expectation(model.Normal{}, h, r.Params)
	assert.Nil(t, err)
	assert.Equal(t, ex, r.Expectation)

	nll, err := NegLogLikelihood(model.Normal{}, h, r.Params)
	assert.Nil(t, err)
	assert.Equal(t, nll, r.NLL)

	worse, err := NegLogLikelihood(model.Normal{}, h, []float64{0.5, 1.5})
	assert.Nil(t, err)
	assert.True(t, worse > r.NLL)
}

func TestFitRecoversNormalBFGS(t *testing.T) {
	h := normalHistogram(t, 7)

	opt, err := optimizer.NewGonum(optimizer.MethodOption(optimizer.MethodBFGS))
	assert.Nil(t, err)

	r, err := Fit(model.Normal{}, h, OptimizerOption(opt), InitOption(model.GuessNormal(h)))
	assert.Nil(t, err)
	assert.InDelta(t, 0, r.Params[0], 0.1)
	assert.InDelta(t, 1, r.Params[1], 0.1)
}

func TestFitRecoversExponential(t *testing.T) {
	h, err := histogram.NewRegular(30, 0, 3)
	assert.Nil(t, err)

	rnd := rand.New(rand.NewPCG(3, 4))

	for i := 0; i < 2000; i++ {
		h.Fill(rnd.ExpFloat64()/2, 1)
	}

	r, err := Fit(model.Exponential{}, h)
	assert.Nil(t, err)
	assert.InDelta(t, 2, r.Params[0], 0.2)
}

func TestFitIdempotent(t *testing.T) {
	h := normalHistogram(t, 1)

	r1, err := Fit(model.Normal{}, h)
	assert.Nil(t, err)

	r2, err := Fit(model.Normal{}, h)
	assert.Nil(t, err)

	assert.Equal(t, r1, r2)

	r3, err := Fit(model.NewCachedModel(model.Normal{}, time.Minute), h)
	assert.Nil(t, err)
	assert.Equal(t, r1, r3)
}

func TestFitInvalidInput(t *testing.T) {
	h2, err := histogram.NewMultiAxis([][]float64{{0, 1, 2}, {0, 1, 2}}, []float64{1, 2, 3, 4})
	assert.Nil(t, err)

	_, err = Fit(model.Normal{}, h2)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(model.Normal{}, h2, ExtendedOption(true))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(model.Normal{}, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	h := normalHistogram(t, 1)

	_, err = Fit(nil, h)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Expectation(model.Normal{}, h2, []float64{0, 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NegLogLikelihood(model.Normal{}, h2, []float64{0, 1})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestFitExtendedNotImplemented(t *testing.T) {
	empty, err := histogram.NewRegular(5, 0, 1)
	assert.Nil(t, err)

	for _, h := range []*histogram.Histogram{normalHistogram(t, 1), empty} {
		for _, m := range []model.Model{model.Normal{}, model.Laplace{}, model.Exponential{}} {
			r, err := Fit(m, h, ExtendedOption(true))
			assert.Nil(t, r)
			assert.True(t, errors.Is(err, ErrNotImplemented))
		}
	}
}

func TestExpectationSum(t *testing.T) {
	wide, err := histogram.New([]float64{-50, -1, 0, 1, 50}, []float64{10, 40, 40, 10})
	assert.Nil(t, err)

	narrow, err := histogram.New([]float64{-1, 0, 1}, []float64{50, 50})
	assert.Nil(t, err)

	for _, params := range [][]float64{{0, 1}, {0.3, 0.8}, {-0.5, 2}} {
		ex, err := Expectation(model.Normal{}, wide, params)
		assert.Nil(t, err)

		var sum float64
		for _, v := range ex {
			assert.True(t, v >= 0)
			sum += v
		}

		assert.InDelta(t, wide.Total(), sum, 1e-9)

		ex, err = Expectation(model.Normal{}, narrow, params)
		assert.Nil(t, err)

		sum = 0
		for _, v := range ex {
			assert.True(t, v >= 0)
			sum += v
		}

		assert.True(t, sum < narrow.Total())
	}

	ex, err := Expectation(model.Normal{}, narrow, []float64{0, 1})
	assert.Nil(t, err)
	assert.InDelta(t, 100*0.6826894921370859, ex[0]+ex[1], 1e-6)
	assert.InDelta(t, ex[0], ex[1], 1e-12)
}

func TestFitAllZeroCounts(t *testing.T) {
	h, err := histogram.NewRegular(10, -3, 3)
	assert.Nil(t, err)

	for _, m := range []model.Model{model.Normal{}, model.Laplace{}} {
		r, err := Fit(m, h)
		if err != nil {
			assert.True(t, errors.Is(err, ErrNumericalFailure))

			continue
		}

		assert.EqualValues(t, 0, r.NLL)

		for _, v := range r.Expectation {
			assert.EqualValues(t, 0, v)
		}
	}
}

func TestFitImpossibleCounts(t *testing.T) {
	h, err := histogram.New([]float64{-2, -1, 0, 1}, []float64{3, 0, 2})
	assert.Nil(t, err)

	r, err := Fit(model.Exponential{}, h)
	assert.True(t, errors.Is(err, ErrNumericalFailure))

	if r != nil {
		assert.True(t, math.IsInf(r.NLL, 1))
	}
}

func TestFitRequireConvergence(t *testing.T) {
	h := normalHistogram(t, 5)

	opt, err := optimizer.NewGonum(optimizer.MajorIterationsOption(1))
	assert.Nil(t, err)

	r, err := Fit(model.Normal{}, h, OptimizerOption(opt))
	assert.Nil(t, err)
	assert.False(t, r.Converged)

	r, err = Fit(model.Normal{}, h, OptimizerOption(opt), RequireConvergenceOption())
	assert.True(t, errors.Is(err, ErrNotConverged))
	assert.NotNil(t, r)
}

type fakeOptimizer struct {
	init []float64
	err  error
}

func (f *fakeOptimizer) Minimize(obj optimizer.Objective, init []float64) (*optimizer.Result, error) {
	f.init = init

	if f.err != nil {
		return nil, f.err
	}

	return &optimizer.Result{
		X:         init,
		F:         obj(init),
		Converged: true,
	}, nil
}

func TestFitOptimizerWiring(t *testing.T) {
	h := normalHistogram(t, 9)

	fake := &fakeOptimizer{}

	r, err := Fit(model.Normal{}, h, OptimizerOption(fake), InitOption([]float64{0.2, 1.1}))
	assert.Nil(t, err)
	assert.Equal(t, []float64{0.2, 1.1}, fake.init)
	assert.Equal(t, []float64{0.2, 1.1}, r.Params)

	_, err = Fit(model.WithInit(model.Normal{}, []float64{1, 2}), h, OptimizerOption(fake))
	assert.Nil(t, err)
	assert.Equal(t, []float64{1, 2}, fake.init)

	boom := errors.New("boom")
	fake.err = boom

	_, err = Fit(model.Normal{}, h, OptimizerOption(fake))
	assert.True(t, errors.Is(err, ErrNumericalFailure))
	assert.True(t, errors.Is(err, boom))
}

type shiftModel struct {
	init []float64
}

func (m shiftModel) CDF(params []float64, x float64) float64 {
	return model.Normal{}.CDF([]float64{params[0], 1}, x)
}

func (m shiftModel) Init() []float64 {
	return m.init
}

func TestFitBadSeed(t *testing.T) {
	h := normalHistogram(t, 5)

	fake := &fakeOptimizer{}

	_, err := Fit(model.Normal{}, h, InitOption([]float64{0}), OptimizerOption(fake))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Nil(t, fake.init)

	_, err = Fit(model.Normal{}, h, InitOption([]float64{0}))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(model.Exponential{}, h, InitOption([]float64{1, 2}))
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(model.NewCachedModel(model.WithInit(model.Laplace{}, []float64{1}), time.Minute), h)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(shiftModel{init: []float64{}}, h)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Fit(shiftModel{init: []float64{0}}, h, InitOption([]float64{}), OptimizerOption(fake))
	assert.Nil(t, err)
	assert.Equal(t, []float64{0}, fake.init)

	var panicky model.Model = panicModel{}

	_, err = Fit(panicky, h, InitOption([]float64{0}))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

type panicModel struct{}

func (panicModel) CDF(params []float64, x float64) float64 {
	return model.Normal{}.CDF(params, x)
}

func (panicModel) Init() []float64 {
	return []float64{0, 1}
}

func TestPoissonLogPMF(t *testing.T) {
	assert.EqualValues(t, 0, poissonLogPMF(0, 0))
	assert.True(t, math.IsInf(poissonLogPMF(1, 0), -1))
	assert.True(t, math.IsNaN(poissonLogPMF(2, -1)))
	assert.True(t, math.IsNaN(poissonLogPMF(2, math.NaN())))
	assert.InDelta(t, 3*math.Log(2.5)-2.5-math.Log(6), poissonLogPMF(3, 2.5), 1e-12)
}
