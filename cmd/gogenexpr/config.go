package main

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/they4kman/experimentation/machine-learning/genetic-algorithms/bitexpr/genexpr"
)

// Config is everything a run can be configured with, whether from a TOML file or flags
type Config struct {
	genexpr.SamplerParams

	// Target value each Chromosome's expression is scored against
	Target float64 `toml:"target"`

	// Number of workers to utilize when evaluating Chromosomes.
	// Set to 0 to run without goroutines.
	NumEvaluationWorkers int `toml:"num_evaluation_workers"`

	// Number of evaluation results remembered by the Scorer. Set to 0 to disable caching.
	EvaluationCacheSize int `toml:"evaluation_cache_size"`

	Seed       int64  `toml:"seed"`
	Verify     bool   `toml:"verify"`
	Store      string `toml:"store"`
	SQLitePath string `toml:"sqlite_path"`
	LogLevel   string `toml:"log_level"`
	LogJSON    string `toml:"log_json"`

	// Whether Target and Seed were given at all; neither has a usable zero value
	targetSet bool
	seedSet   bool
}

func DefaultConfig() *Config {
	return &Config{
		SamplerParams: *genexpr.DefaultSamplerParams(),

		NumEvaluationWorkers: 0,
		EvaluationCacheSize:  128,

		Store:         "memory",
		SQLitePath:    "gogenexpr.db",
		LogLevel:      "info",
	}
}

// loadConfigFile decodes a TOML file over cfg, leaving unmentioned fields untouched
func loadConfigFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("loading config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("target") {
		cfg.targetSet = true
	}
	if meta.IsDefined("seed") {
		cfg.seedSet = true
	}
	return nil
}

// targetValue is a flag.Value recording whether the target was provided
type targetValue struct {
	cfg *Config
}

func (v targetValue) String() string {
	if v.cfg == nil || !v.cfg.targetSet {
		return ""
	}
	return strconv.FormatFloat(v.cfg.Target, 'g', -1, 64)
}

func (v targetValue) Set(s string) error {
	target, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("malformed number %q", s)
	}

	v.cfg.Target = target
	v.cfg.targetSet = true
	return nil
}
