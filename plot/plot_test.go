package plot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgostarter/histfit/fitter"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/histfit/model"
	"github.com/stretchr/testify/assert"
)

type anonymous struct {
	model.Normal
}

func (anonymous) Name() string {
	return ""
}

func TestLabel(t *testing.T) {
	assert.EqualValues(t, "Best fit of normal model mu=0.012, sigma=0.988",
		Label(model.Normal{}, []float64{0.0123, 0.9876}))
	assert.EqualValues(t, "Best fit of custom model mu=1.000",
		Label(anonymous{}, []float64{1}))
}

func TestRenderAndSave(t *testing.T) {
	h, err := histogram.NewRegular(10, -3, 3)
	assert.Nil(t, err)
	h.FillN([]float64{-1, -0.5, 0, 0, 0.2, 0.4, 1, 1.5})

	res, err := fitter.Fit(model.Normal{}, h)
	assert.Nil(t, err)

	p, err := Render(h, model.Normal{}, res, Config{Title: "ut"})
	assert.Nil(t, err)
	assert.EqualValues(t, "Observable", p.X.Label.Text)
	assert.EqualValues(t, "Count", p.Y.Label.Text)

	file := filepath.Join(t.TempDir(), "normal_fit_to_hist.png")
	assert.Nil(t, Save(p, file, 0, 0))

	fi, err := os.Stat(file)
	assert.Nil(t, err)
	assert.True(t, fi.Size() > 0)

	_, err = Render(h, model.Normal{}, &fitter.Result{}, Config{})
	assert.True(t, errors.Is(err, ErrBadFitResult))
}

func TestObservedErrorBars(t *testing.T) {
	h, err := histogram.New([]float64{0, 1, 2, 3}, []float64{4, 0, 1e12})
	assert.Nil(t, err)

	pts, bars, err := observed(h)
	assert.Nil(t, err)
	assert.EqualValues(t, 3, pts.Len())

	x, y := pts.XY(2)
	assert.EqualValues(t, 2.5, x)
	assert.EqualValues(t, 1e12, y)

	lo, hi := bars.YError(0)
	assert.EqualValues(t, 2, lo)
	assert.EqualValues(t, 2, hi)

	lo, _ = bars.YError(1)
	assert.EqualValues(t, 0, lo)

	_, hi = bars.YError(2)
	assert.EqualValues(t, 1e6, hi)
}
