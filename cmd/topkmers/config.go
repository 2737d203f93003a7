package main

import (
	"os"

	"github.com/ledgerwatch/log/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/muratgenctav/topkmers/counting"
)

// Config holds the run settings. It is filled from defaults, then an
// optional TOML file, then any flag given on the command line.
type Config struct {
	Input       string `toml:"input"`
	Format      string `toml:"format"`
	K           int    `toml:"kmerlength"`
	TopK        int    `toml:"topcount"`
	Workers     int    `toml:"numthreads"`
	Capacity    int    `toml:"capacity"`
	HDF5        string `toml:"hdf5"`
	MetricsFile string `toml:"metrics_file"`
	Stats       bool   `toml:"stats"`
	Progress    bool   `toml:"progress"`
	Verbose     bool   `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		Format:   "fastq",
		TopK:     1,
		Workers:  1,
		Capacity: counting.DefaultCapacity,
	}
}

func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// resolve layers the config file and the flags that were set over the
// defaults.
func resolve(flags *pflag.FlagSet, fromFlags Config, configPath string) (Config, error) {
	cfg := defaultConfig()
	if configPath != "" {
		if err := loadConfig(configPath, &cfg); err != nil {
			return cfg, err
		}
	}
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("input", func() { cfg.Input = fromFlags.Input })
	set("format", func() { cfg.Format = fromFlags.Format })
	set("kmerlength", func() { cfg.K = fromFlags.K })
	set("topcount", func() { cfg.TopK = fromFlags.TopK })
	set("numthreads", func() { cfg.Workers = fromFlags.Workers })
	set("capacity", func() { cfg.Capacity = fromFlags.Capacity })
	set("hdf5", func() { cfg.HDF5 = fromFlags.HDF5 })
	set("metrics-file", func() { cfg.MetricsFile = fromFlags.MetricsFile })
	set("stats", func() { cfg.Stats = fromFlags.Stats })
	set("progress", func() { cfg.Progress = fromFlags.Progress })
	set("verbose", func() { cfg.Verbose = fromFlags.Verbose })
	return cfg, nil
}

// options checks the limits, then lowers the top-k count and the worker
// count to the number of distinct k-mers, warning about each change.
func (c Config) options(logger log.Logger) (counting.Options, error) {
	opts := counting.Options{
		K:                c.K,
		TopK:             c.TopK,
		Workers:          c.Workers,
		Capacity:         c.Capacity,
		EstimateDistinct: c.Stats,
		Logger:           logger,
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	if opts.Capacity == 0 {
		return opts, errors.Wrap(counting.ErrInvalidCapacity, "capacity=0")
	}
	domain := opts.Domain()
	if uint64(opts.TopK) > domain {
		logger.Warn("Number of top k-mers cannot exceed the number of distinct k-mers", "k", opts.K, "topcount", opts.TopK, "using", domain)
		opts.TopK = int(domain)
	}
	if uint64(opts.Workers) > domain {
		logger.Warn("Number of threads cannot exceed the number of distinct k-mers", "k", opts.K, "numthreads", opts.Workers, "using", domain)
		opts.Workers = int(domain)
	}
	return opts, nil
}
