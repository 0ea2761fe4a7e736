package histogram

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

var (
	ErrInvalidHistogram = errors.New("invalid histogram")
)

// Histogram is a binned tally of weighted observations. A histogram built by
// New or NewRegular has exactly one axis; NewMultiAxis exists so callers that
// receive arbitrary binned data can still hold it and let consumers reject it.
type Histogram struct {
	axes   [][]float64
	counts []float64

	underflow float64
	overflow  float64

	bins hbook.Bin1Ds
}

func New(edges, counts []float64) (*Histogram, error) {
	if err := checkEdges(edges); err != nil {
		return nil, err
	}

	if len(counts) != len(edges)-1 {
		return nil, fmt.Errorf("%w: %d edges for %d counts", ErrInvalidHistogram, len(edges), len(counts))
	}

	if err := checkCounts(counts); err != nil {
		return nil, err
	}

	return &Histogram{
		axes:   [][]float64{append([]float64(nil), edges...)},
		counts: append([]float64(nil), counts...),
	}, nil
}

func NewRegular(nBins int, lo, hi float64) (*Histogram, error) {
	if nBins <= 0 {
		return nil, fmt.Errorf("%w: bin count %d", ErrInvalidHistogram, nBins)
	}

	if !(lo < hi) {
		return nil, fmt.Errorf("%w: range [%v, %v)", ErrInvalidHistogram, lo, hi)
	}

	edges := make([]float64, nBins+1)

	width := (hi - lo) / float64(nBins)
	for idx := range edges {
		edges[idx] = lo + float64(idx)*width
	}

	edges[nBins] = hi

	return New(edges, make([]float64, nBins))
}

// NewMultiAxis builds a histogram over the cartesian product of the given axes,
// counts are laid out row-major with the last axis varying fastest.
func NewMultiAxis(axes [][]float64, counts []float64) (*Histogram, error) {
	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidHistogram)
	}

	bins := 1

	cpAxes := make([][]float64, 0, len(axes))

	for _, edges := range axes {
		if err := checkEdges(edges); err != nil {
			return nil, err
		}

		bins *= len(edges) - 1

		cpAxes = append(cpAxes, append([]float64(nil), edges...))
	}

	if len(counts) != bins {
		return nil, fmt.Errorf("%w: %d bins for %d counts", ErrInvalidHistogram, bins, len(counts))
	}

	if err := checkCounts(counts); err != nil {
		return nil, err
	}

	return &Histogram{
		axes:   cpAxes,
		counts: append([]float64(nil), counts...),
	}, nil
}

func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: need at least 2 edges, got %d", ErrInvalidHistogram, len(edges))
	}

	for idx, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: edge %d is %v", ErrInvalidHistogram, idx, e)
		}

		if idx > 0 && !(edges[idx-1] < e) {
			return fmt.Errorf("%w: edges not strictly increasing at %d", ErrInvalidHistogram, idx)
		}
	}

	return nil
}

func checkCounts(counts []float64) error {
	for idx, n := range counts {
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return fmt.Errorf("%w: count %d is %v", ErrInvalidHistogram, idx, n)
		}
	}

	return nil
}

func (h *Histogram) Dim() int {
	return len(h.axes)
}

// Edges returns a copy of the first axis edges.
func (h *Histogram) Edges() []float64 {
	if len(h.axes) == 0 {
		return nil
	}

	return append([]float64(nil), h.axes[0]...)
}

func (h *Histogram) AxisEdges(axis int) []float64 {
	if axis < 0 || axis >= len(h.axes) {
		return nil
	}

	return append([]float64(nil), h.axes[axis]...)
}

func (h *Histogram) Counts() []float64 {
	return append([]float64(nil), h.counts...)
}

func (h *Histogram) NBins() int {
	return len(h.counts)
}

func (h *Histogram) Count(idx int) float64 {
	return h.counts[idx]
}

// Total is the sum of all in-range bin counts; underflow and overflow are excluded.
func (h *Histogram) Total() (total float64) {
	for _, n := range h.counts {
		total += n
	}

	return
}

func (h *Histogram) Underflow() float64 {
	return h.underflow
}

func (h *Histogram) Overflow() float64 {
	return h.overflow
}

func (h *Histogram) Centers() []float64 {
	if h.Dim() != 1 {
		return nil
	}

	edges := h.axes[0]
	centers := make([]float64, len(edges)-1)

	for idx := range centers {
		centers[idx] = (edges[idx] + edges[idx+1]) / 2
	}

	return centers
}

// Fill adds w to the bin holding x. Bins are closed on the left, so x equal to
// the last edge lands in the overflow. ok is false for out of range values,
// for weights that are negative or not finite (nothing is added then) and for
// histograms that are not one dimensional.
func (h *Histogram) Fill(x, w float64) (ok bool) {
	if h.Dim() != 1 || math.IsNaN(x) || !validWeight(w) {
		return
	}

	if h.bins == nil {
		h.bins = binsOf(h.axes[0])
	}

	switch idx := h.bins.IndexOf(x); idx {
	case hbook.UnderflowBin1D:
		h.underflow += w
	case hbook.OverflowBin1D, len(h.bins):
		h.overflow += w
	default:
		h.counts[idx] += w

		ok = true
	}

	return
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}

func binsOf(edges []float64) hbook.Bin1Ds {
	bins := make(hbook.Bin1Ds, len(edges)-1)

	for idx := range bins {
		bins[idx].Range = hbook.Range{Min: edges[idx], Max: edges[idx+1]}
	}

	return bins
}

func (h *Histogram) FillN(xs []float64) (filled int) {
	for _, x := range xs {
		if h.Fill(x, 1) {
			filled++
		}
	}

	return
}

func (h *Histogram) Clone() *Histogram {
	axes := make([][]float64, 0, len(h.axes))
	for _, edges := range h.axes {
		axes = append(axes, append([]float64(nil), edges...))
	}

	return &Histogram{
		axes:      axes,
		counts:    append([]float64(nil), h.counts...),
		underflow: h.underflow,
		overflow:  h.overflow,
	}
}
