// This file contains the YAML configuration file layer.

package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/mcarea/internal/errors"
)

// FileConfig is the on-disk YAML representation. Absent keys stay nil and
// leave the corresponding setting alone.
type FileConfig struct {
	Dir         *string  `yaml:"dir"`
	Seed        *uint64  `yaml:"seed"`
	Simulate    *bool    `yaml:"simulate"`
	NoPlots     *bool    `yaml:"no_plots"`
	DPI         *int     `yaml:"dpi"`
	Timeout     *string  `yaml:"timeout"`
	LogLevel    *string  `yaml:"log_level"`
	LogFormat   *string  `yaml:"log_format"`
	MetricsFile *string  `yaml:"metrics_file"`
	NoColor     *bool    `yaml:"no_color"`
	NRange      *struct {
		Start *int `yaml:"start"`
		Stop  *int `yaml:"stop"`
		Step  *int `yaml:"step"`
	} `yaml:"n_range"`
}

// DecodeFile parses a YAML configuration document. Unknown keys are rejected.
func DecodeFile(r io.Reader) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, err
	}
	return fc, nil
}

// applyConfigFile reads path and applies its values to cfg for flags that
// were not set on the command line.
func applyConfigFile(cfg *AppConfig, fs *flag.FlagSet, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("reading config file %s: %v", path, err)
	}
	fc, err := DecodeFile(bytes.NewReader(data))
	if err != nil {
		return apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	return fc.apply(cfg, fs)
}

func (fc FileConfig) apply(cfg *AppConfig, fs *flag.FlagSet) error {
	set := func(names ...string) bool { return isFlagSetAny(fs, names...) }

	if fc.Dir != nil && !set("dir") {
		cfg.Dir = *fc.Dir
	}
	if fc.Seed != nil && !set("seed") {
		seed := *fc.Seed
		cfg.Seed = &seed
	}
	if fc.Simulate != nil && !set("simulate") {
		cfg.Simulate = *fc.Simulate
	}
	if fc.NoPlots != nil && !set("no-plots") {
		cfg.NoPlots = *fc.NoPlots
	}
	if fc.DPI != nil && !set("dpi") {
		cfg.DPI = *fc.DPI
	}
	if fc.Timeout != nil && !set("timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("invalid timeout %q in config file: %v", *fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fc.LogLevel != nil && !set("log-level") {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil && !set("log-format") {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.MetricsFile != nil && !set("metrics-file") {
		cfg.MetricsFile = *fc.MetricsFile
	}
	if fc.NoColor != nil && !set("no-color") {
		cfg.NoColor = *fc.NoColor
	}
	if r := fc.NRange; r != nil {
		if r.Start != nil && !set("n-start") {
			cfg.NRange.Start = *r.Start
		}
		if r.Stop != nil && !set("n-stop") {
			cfg.NRange.Stop = *r.Stop
		}
		if r.Step != nil && !set("n-step") {
			cfg.NRange.Step = *r.Step
		}
	}
	return nil
}
