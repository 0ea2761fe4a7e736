package histogram

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type wireHistogram struct {
	Axes      [][]float64 `json:"axes" yaml:"axes,flow"`
	Counts    []float64   `json:"counts" yaml:"counts,flow"`
	Underflow float64     `json:"underflow,omitempty" yaml:"underflow,omitempty"`
	Overflow  float64     `json:"overflow,omitempty" yaml:"overflow,omitempty"`
}

func (h *Histogram) toWire() wireHistogram {
	return wireHistogram{
		Axes:      h.axes,
		Counts:    h.counts,
		Underflow: h.underflow,
		Overflow:  h.overflow,
	}
}

func (h *Histogram) fromWire(w wireHistogram) error {
	nh, err := NewMultiAxis(w.Axes, w.Counts)
	if err != nil {
		return err
	}

	nh.underflow = w.Underflow
	nh.overflow = w.Overflow

	*h = *nh

	return nil
}

func (h *Histogram) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.toWire())
}

func (h *Histogram) UnmarshalJSON(d []byte) error {
	var w wireHistogram

	if err := json.Unmarshal(d, &w); err != nil {
		return err
	}

	return h.fromWire(w)
}

func (h *Histogram) MarshalYAML() (interface{}, error) {
	return h.toWire(), nil
}

func (h *Histogram) UnmarshalYAML(value *yaml.Node) error {
	var w wireHistogram

	if err := value.Decode(&w); err != nil {
		return err
	}

	return h.fromWire(w)
}

func Marshal(h *Histogram) ([]byte, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: nil", ErrInvalidHistogram)
	}

	return yaml.Marshal(h)
}

func Unmarshal(d []byte) (*Histogram, error) {
	var h Histogram

	if err := yaml.Unmarshal(d, &h); err != nil {
		return nil, err
	}

	if h.Dim() == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidHistogram)
	}

	return &h, nil
}
