// Command histfit draws a normal sample, fills a histogram, fits a model to it
// by binned Poisson maximum likelihood and saves a figure of the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sgostarter/histfit/fitter"
	"github.com/sgostarter/histfit/histogram"
	"github.com/sgostarter/histfit/histogram/impls/fmstorage"
	"github.com/sgostarter/histfit/histogram/impls/yamlfs"
	"github.com/sgostarter/histfit/model"
	"github.com/sgostarter/histfit/optimizer"
	"github.com/sgostarter/histfit/plot"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/pathutils"
)

func main() {
	var (
		configFile = flag.String("config", "", "yaml config file")
		samples    = flag.Int("samples", 0, "number of generated observations")
		seed       = flag.Uint64("seed", 0, "random seed")
		bins       = flag.Int("bins", 0, "number of bins")
		lo         = flag.Float64("lo", 0, "lower edge")
		hi         = flag.Float64("hi", 0, "upper edge")
		modelName  = flag.String("model", "", fmt.Sprintf("model family %v", model.Names()))
		method     = flag.String("method", "", "minimizer: nelder-mead or bfgs")
		initParams = flag.String("init", "", "comma separated initial parameters")
		out        = flag.String("out", "", "figure file")
		storeRoot  = flag.String("store", "", "directory to keep the observed histogram in")
		storeFmt   = flag.String("store-format", "", "json or yaml")
	)

	flag.Parse()

	logger := l.NewConsoleLoggerWrapper()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		logger.WithFields(l.ErrorField(err), l.StringField("file", *configFile)).Fatal("load config failed")

		return
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "samples":
			cfg.Samples = *samples
		case "seed":
			cfg.Seed = *seed
		case "bins":
			cfg.Bins = *bins
		case "lo":
			cfg.Lo = *lo
		case "hi":
			cfg.Hi = *hi
		case "model":
			cfg.Model = *modelName
		case "method":
			cfg.Method = *method
		case "init":
			cfg.Init, err = parseFloats(*initParams)
		case "out":
			cfg.Out = *out
		case "store":
			cfg.StoreRoot = *storeRoot
		case "store-format":
			cfg.StoreFormat = *storeFmt
		}
	})

	if err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("bad flags")

		return
	}

	res, err := run(context.Background(), cfg, logger)
	if err != nil {
		logger.WithFields(l.ErrorField(err)).Fatal("fit failed")

		return
	}

	fmt.Println(plot.Label(mustModel(cfg.Model), res.Params))
	fmt.Printf("nll=%.6g converged=%v status=%s iterations=%d\n", res.NLL, res.Converged, res.Status, res.Iterations)
}

func mustModel(name string) model.Model {
	m, _ := model.ByName(name)

	return m
}

func newStorage(cfg *Config) histogram.Storage {
	if cfg.StoreFormat == storeFormatYAML {
		return yamlfs.NewYAMLStorage(cfg.StoreRoot)
	}

	return fmstorage.NewFMStorage(cfg.StoreRoot, nil)
}

func run(ctx context.Context, cfg *Config, logger l.Wrapper) (*fitter.Result, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if err := cfg.check(); err != nil {
		return nil, err
	}

	m, err := model.ByName(cfg.Model)
	if err != nil {
		return nil, err
	}

	opt, err := optimizer.NewGonum(optimizer.MethodOption(optimizer.Method(cfg.Method)))
	if err != nil {
		return nil, err
	}

	h, err := histogram.NewRegular(cfg.Bins, cfg.Lo, cfg.Hi)
	if err != nil {
		return nil, err
	}

	rnd := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	for i := 0; i < cfg.Samples; i++ {
		h.Fill(cfg.Mean+cfg.Sigma*rnd.NormFloat64(), 1)
	}

	if cfg.StoreRoot != "" {
		if err = pathutils.MustDirExists(cfg.StoreRoot); err != nil {
			return nil, err
		}

		id, e := newStorage(cfg).Add(ctx, fmt.Sprintf("seed-%d", cfg.Seed), h)
		if e != nil {
			return nil, e
		}

		logger.WithFields(l.StringField("root", cfg.StoreRoot), l.UInt64Field("id", id)).Debug("histogram stored")
	}

	opts := []fitter.Option{
		fitter.OptimizerOption(opt),
		fitter.LoggerOption(logger),
	}

	if len(cfg.Init) > 0 {
		opts = append(opts, fitter.InitOption(cfg.Init))
	}

	if cfg.RequireConvergence {
		opts = append(opts, fitter.RequireConvergenceOption())
	}

	res, err := fitter.Fit(model.NewCachedModel(m, time.Minute), h, opts...)
	if err != nil {
		return nil, err
	}

	if cfg.Out == "" {
		return res, nil
	}

	p, err := plot.Render(h, m, res, cfg.Plot)
	if err != nil {
		return nil, err
	}

	if err = plot.Save(p, cfg.Out, 0, 0); err != nil {
		return nil, err
	}

	logger.WithFields(l.StringField("file", cfg.Out)).Debug("figure saved")

	return res, nil
}
