// Package config parses the application configuration. Values are resolved
// with the priority: CLI flags > MCAREA_* environment variables > YAML config
// file > built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/mcarea/internal/chart"
	"github.com/agbru/mcarea/internal/dataset"
	apperrors "github.com/agbru/mcarea/internal/errors"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "MCAREA_"

// Default values.
const (
	DefaultDir       = "."
	DefaultTimeout   = 10 * time.Minute
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// AppConfig holds the resolved configuration of a run.
type AppConfig struct {
	// Dir holds the CSV inputs/outputs and the images.
	Dir string
	// Seed pins the random source of synthesis and simulation. Nil means unseeded.
	Seed *uint64
	// Simulate regenerates data with a real Monte Carlo run instead of the
	// synthetic error model when the tables are unavailable.
	Simulate bool
	// ForceRegenerate skips loading persisted tables.
	ForceRegenerate bool
	// NoPlots skips image rendering.
	NoPlots bool
	DPI     int
	Timeout time.Duration
	NRange  dataset.NRange

	Quiet       bool
	Verbose     bool
	NoColor     bool
	LogLevel    string
	LogFormat   string
	MetricsFile string
	ConfigFile  string
}

// SeedString renders the seed for display.
func (c AppConfig) SeedString() string {
	if c.Seed == nil {
		return "random"
	}
	return strconv.FormatUint(*c.Seed, 10)
}

// Validate checks the resolved configuration.
func (c AppConfig) Validate() error {
	if c.DPI <= 0 {
		return apperrors.NewConfigError("dpi must be positive, got %d", c.DPI)
	}
	if c.DPI > chart.MaxDPI {
		return apperrors.NewConfigError("dpi must not exceed %d, got %d", chart.MaxDPI, c.DPI)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return apperrors.NewConfigError("unknown log format %q", c.LogFormat)
	}
	return c.NRange.Validate()
}

// seedValue adapts the optional seed to flag.Value.
type seedValue struct{ target **uint64 }

func (s seedValue) String() string {
	if s.target == nil || *s.target == nil {
		return ""
	}
	return strconv.FormatUint(**s.target, 10)
}

func (s seedValue) Set(v string) error {
	parsed, err := parseSeed(v)
	if err != nil {
		return err
	}
	*s.target = parsed
	return nil
}

func parseSeed(v string) (*uint64, error) {
	if v == "" || strings.EqualFold(v, "random") {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", v, err)
	}
	return &n, nil
}

// ParseConfig parses command-line arguments, applies the config file and
// environment overrides, and validates the result. Usage and parse errors
// are written to errWriter; -h returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{NRange: dataset.DefaultNRange}
	fs.StringVar(&cfg.Dir, "dir", DefaultDir, "Directory for the CSV tables and images.")
	fs.Var(seedValue{&cfg.Seed}, "seed", "Seed for the random source (default: unseeded).")
	fs.BoolVar(&cfg.Simulate, "simulate", false, "Regenerate missing data with a real Monte Carlo simulation.")
	fs.BoolVar(&cfg.ForceRegenerate, "force-synthesize", false, "Ignore existing tables and regenerate them.")
	fs.BoolVar(&cfg.NoPlots, "no-plots", false, "Skip image rendering.")
	fs.IntVar(&cfg.DPI, "dpi", chart.DefaultDPI, "Image resolution in dots per inch (whole number, at most 1200).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum run time (e.g. 30s, 5m).")
	fs.IntVar(&cfg.NRange.Start, "n-start", dataset.DefaultNRange.Start, "Smallest sample size.")
	fs.IntVar(&cfg.NRange.Stop, "n-stop", dataset.DefaultNRange.Stop, "Largest sample size (inclusive).")
	fs.IntVar(&cfg.NRange.Step, "n-step", dataset.DefaultNRange.Step, "Sample size increment.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the numeric report.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print configuration, statistics and timings.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.StringVar(&cfg.LogFormat, "log-format", DefaultLogFormat, "Log format on stderr: console or json.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write prometheus metrics to this file.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML configuration file.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		if err := applyConfigFile(&cfg, fs, cfg.ConfigFile); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&cfg, fs)

	cfg = ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// ApplyDefaults fills zero values left by an incomplete config file or
// environment with the built-in defaults.
func ApplyDefaults(cfg AppConfig) AppConfig {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.NRange == (dataset.NRange{}) {
		cfg.NRange = dataset.DefaultNRange
	}
	return cfg
}
