package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sgostarter/histfit/model"
	"github.com/sgostarter/histfit/plot"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	storeFormatJSON = "json"
	storeFormatYAML = "yaml"
)

type Config struct {
	Samples int     `yaml:"samples" json:"samples"`
	Seed    uint64  `yaml:"seed" json:"seed"`
	Mean    float64 `yaml:"mean" json:"mean"`
	Sigma   float64 `yaml:"sigma" json:"sigma"`

	Bins int     `yaml:"bins" json:"bins"`
	Lo   float64 `yaml:"lo" json:"lo"`
	Hi   float64 `yaml:"hi" json:"hi"`

	Model              string    `yaml:"model" json:"model"`
	Method             string    `yaml:"method" json:"method"`
	Init               []float64 `yaml:"init,omitempty,flow" json:"init,omitempty"`
	RequireConvergence bool      `yaml:"requireConvergence" json:"requireConvergence"`

	Out         string      `yaml:"out" json:"out"`
	StoreRoot   string      `yaml:"storeRoot,omitempty" json:"storeRoot,omitempty"`
	StoreFormat string      `yaml:"storeFormat,omitempty" json:"storeFormat,omitempty"`
	Plot        plot.Config `yaml:"plot" json:"plot"`
}

func defaultConfig() *Config {
	return &Config{
		Samples: 1000,
		Seed:    1,
		Mean:    0,
		Sigma:   1,
		Bins:    40,
		Lo:      -3,
		Hi:      3,
		Model:   "normal",
		Method:  "nelder-mead",
		Out:     "normal_fit_to_hist.png",
	}
}

func loadConfig(file string) (*Config, error) {
	cfg := defaultConfig()

	if file == "" {
		return cfg, nil
	}

	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(d, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) check() error {
	if cfg.Samples <= 0 {
		return fmt.Errorf("invalid samples: %d", cfg.Samples)
	}

	if cfg.Sigma <= 0 {
		return fmt.Errorf("invalid sigma: %v", cfg.Sigma)
	}

	m, err := model.ByName(cfg.Model)
	if err != nil {
		return err
	}

	if _, paramNames := model.NameOf(m); len(cfg.Init) > 0 && len(cfg.Init) != len(paramNames) {
		return fmt.Errorf("invalid init %v: %s model takes %v", cfg.Init, cfg.Model, paramNames)
	}

	switch cfg.StoreFormat {
	case "", storeFormatJSON, storeFormatYAML:
	default:
		return fmt.Errorf("invalid store format: %q", cfg.StoreFormat)
	}

	return nil
}

// parseFloats parses a comma separated list such as "0,1".
func parseFloats(s string) (vs []float64, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}

	for _, p := range strings.Split(s, ",") {
		v, e := cast.ToFloat64E(strings.TrimSpace(p))
		if e != nil {
			err = fmt.Errorf("bad number %q: %w", p, e)

			return
		}

		vs = append(vs, v)
	}

	return
}
