// Package plot renders an observed histogram together with the fitted
// expectation.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/sgostarter/histfit/fitter"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/histfit/model"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ErrBadFitResult = errors.New("fit result does not match histogram")
)

type Config struct {
	Title  string `yaml:"title" json:"title"`
	XLabel string `yaml:"xLabel" json:"xLabel"`
	YLabel string `yaml:"yLabel" json:"yLabel"`
}

func (cfg *Config) fill() {
	if cfg.XLabel == "" {
		cfg.XLabel = "Observable"
	}

	if cfg.YLabel == "" {
		cfg.YLabel = "Count"
	}
}

func Render(h *histogram.Histogram, m model.Model, res *fitter.Result, cfg Config) (*hplot.Plot, error) {
	if h == nil || h.Dim() != 1 || res == nil || len(res.Expectation) != h.NBins() {
		return nil, ErrBadFitResult
	}

	cfg.fill()

	pts, bars, err := observed(h)
	if err != nil {
		return nil, err
	}

	fitted := hbook.NewH1DFromEdges(h.Edges())
	for idx, x := range h.Centers() {
		fitted.Fill(x, res.Expectation[idx])
	}

	p := hplot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel

	pts.GlyphStyle.Color = color.Black
	pts.GlyphStyle.Shape = draw.CircleGlyph{}
	bars.LineStyle.Color = color.Black

	hFit := hplot.NewH1D(fitted)
	hFit.LineStyle.Color = color.NRGBA{R: 31, G: 119, B: 180, A: 255}
	hFit.LineStyle.Width = vg.Points(1.5)

	p.Add(bars, pts, hFit, hplot.NewGrid())

	p.Legend.Add("Observations", pts)
	p.Legend.Add(Label(m, res.Params), hFit)
	p.Legend.Top = true

	return p, nil
}

// observed draws the count of every bin at its center with Poisson sqrt(n)
// error bars.
func observed(h *histogram.Histogram) (*plotter.Scatter, *plotter.YErrorBars, error) {
	var data struct {
		plotter.XYs
		plotter.YErrors
	}

	for idx, x := range h.Centers() {
		n := h.Count(idx)
		e := math.Sqrt(n)

		data.XYs = append(data.XYs, plotter.XY{X: x, Y: n})
		data.YErrors = append(data.YErrors, struct{ Low, High float64 }{Low: e, High: e})
	}

	pts, err := plotter.NewScatter(data.XYs)
	if err != nil {
		return nil, nil, err
	}

	bars, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, nil, err
	}

	return pts, bars, nil
}

// Label is the legend text of a fit, e.g. "Best fit of normal model mu=0.012, sigma=0.987".
func Label(m model.Model, params []float64) string {
	name, paramNames := model.NameOf(m)
	if name == "" {
		name = "custom"
	}

	ps := make([]string, 0, len(params))

	for idx, v := range params {
		pn := fmt.Sprintf("p%d", idx)
		if idx < len(paramNames) {
			pn = paramNames[idx]
		}

		ps = append(ps, fmt.Sprintf("%s=%.3f", pn, v))
	}

	return fmt.Sprintf("Best fit of %s model %s", name, strings.Join(ps, ", "))
}

// Save writes p to file, the format follows the file extension (png, svg, pdf, ...).
func Save(p *hplot.Plot, file string, width, height vg.Length) error {
	if width <= 0 {
		width = 15 * vg.Centimeter
	}

	if height <= 0 {
		height = width * 3 / 4
	}

	return p.Save(width, height, file)
}
