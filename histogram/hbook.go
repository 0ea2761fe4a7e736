package histogram

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

func FromH1D(h1 *hbook.H1D) (*Histogram, error) {
	if h1 == nil || len(h1.Binning.Bins) == 0 {
		return nil, fmt.Errorf("%w: empty H1D", ErrInvalidHistogram)
	}

	bins := h1.Binning.Bins

	edges := make([]float64, 0, len(bins)+1)
	counts := make([]float64, 0, len(bins))

	for _, bin := range bins {
		edges = append(edges, bin.XEdges().Min)
		counts = append(counts, bin.SumW())
	}

	edges = append(edges, bins[len(bins)-1].XEdges().Max)

	h, err := New(edges, counts)
	if err != nil {
		return nil, err
	}

	h.underflow = h1.Binning.Outflows[0].SumW()
	h.overflow = h1.Binning.Outflows[1].SumW()

	return h, nil
}

func (h *Histogram) ToH1D() (*hbook.H1D, error) {
	if h.Dim() != 1 {
		return nil, fmt.Errorf("%w: H1D needs one axis, got %d", ErrInvalidHistogram, h.Dim())
	}

	edges := h.axes[0]

	h1 := hbook.NewH1DFromEdges(edges)

	for idx, x := range h.Centers() {
		if h.counts[idx] == 0 {
			continue
		}

		h1.Fill(x, h.counts[idx])
	}

	if h.underflow > 0 {
		h1.Fill(edges[0]-1, h.underflow)
	}

	if h.overflow > 0 {
		h1.Fill(edges[len(edges)-1]+1, h.overflow)
	}

	return h1, nil
}
