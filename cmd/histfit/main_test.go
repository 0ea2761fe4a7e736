package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sgostarter/histfit/histogram/impls/fmstorage"
	"github.com/sgostarter/histfit/histogram/impls/yamlfs"
	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	assert.Nil(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	file := filepath.Join(t.TempDir(), "histfit.yaml")
	assert.Nil(t, os.WriteFile(file, []byte("samples: 500\nmodel: laplace\ninit: [0.5, 2]\nplot:\n  title: demo\n"), 0600))

	cfg, err = loadConfig(file)
	assert.Nil(t, err)
	assert.EqualValues(t, 500, cfg.Samples)
	assert.EqualValues(t, "laplace", cfg.Model)
	assert.Equal(t, []float64{0.5, 2}, cfg.Init)
	assert.EqualValues(t, "demo", cfg.Plot.Title)
	assert.EqualValues(t, 40, cfg.Bins)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestParseFloats(t *testing.T) {
	vs, err := parseFloats(" 0, 1.5 ,-2")
	assert.Nil(t, err)
	assert.Equal(t, []float64{0, 1.5, -2}, vs)

	vs, err = parseFloats("")
	assert.Nil(t, err)
	assert.Nil(t, vs)

	_, err = parseFloats("1,x")
	assert.NotNil(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	cfg := defaultConfig()
	cfg.Seed = 42
	cfg.Out = filepath.Join(dir, "normal_fit_to_hist.png")
	cfg.StoreRoot = filepath.Join(dir, "store")

	res, err := run(context.Background(), cfg, l.NewConsoleLoggerWrapper())
	assert.Nil(t, err)
	assert.InDelta(t, 0, res.Params[0], 0.1)
	assert.InDelta(t, 1, res.Params[1], 0.1)

	fi, err := os.Stat(cfg.Out)
	assert.Nil(t, err)
	assert.True(t, fi.Size() > 0)

	infos, err := fmstorage.NewFMStorage(cfg.StoreRoot, nil).List(context.Background())
	assert.Nil(t, err)
	assert.EqualValues(t, 1, len(infos))
	assert.EqualValues(t, "seed-42", infos[0].Name)
}

func TestRunYAMLStore(t *testing.T) {
	cfg := defaultConfig()
	cfg.Out = ""
	cfg.Model = "laplace"
	cfg.StoreRoot = filepath.Join(t.TempDir(), "store")
	cfg.StoreFormat = storeFormatYAML

	res, err := run(context.Background(), cfg, nil)
	assert.Nil(t, err)
	assert.EqualValues(t, 2, len(res.Params))

	infos, err := yamlfs.NewYAMLStorage(cfg.StoreRoot).List(context.Background())
	assert.Nil(t, err)
	assert.EqualValues(t, 1, len(infos))
	assert.EqualValues(t, cfg.Samples, infos[0].Histogram.Total()+infos[0].Histogram.Underflow()+infos[0].Histogram.Overflow())
}

func TestRunBadConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Out = ""

	cfg.Model = "gamma"
	_, err := run(context.Background(), cfg, nil)
	assert.NotNil(t, err)

	cfg.Model = "normal"
	cfg.Method = "simplex"
	_, err = run(context.Background(), cfg, nil)
	assert.NotNil(t, err)

	cfg.Method = "bfgs"
	cfg.StoreFormat = "xml"
	_, err = run(context.Background(), cfg, nil)
	assert.NotNil(t, err)

	cfg.StoreFormat = ""
	cfg.Init = []float64{0}
	_, err = run(context.Background(), cfg, nil)
	assert.NotNil(t, err)

	cfg.Model = "exponential"
	cfg.Init = []float64{0.5}
	assert.Nil(t, cfg.check())

	cfg.Model = "normal"
	cfg.Init = nil
	cfg.Samples = 0
	_, err = run(context.Background(), cfg, nil)
	assert.NotNil(t, err)
}
