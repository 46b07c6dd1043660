package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/mcarea/internal/config"
	apperrors "github.com/agbru/mcarea/internal/errors"
	"github.com/agbru/mcarea/internal/logging"
	"github.com/agbru/mcarea/internal/metrics"
	"github.com/agbru/mcarea/internal/ui"
)

// Application represents the mcarea application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Pipeline
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithMetrics sets the metric set the run records into.
func WithMetrics(m *metrics.Pipeline) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// New creates a new Application instance by parsing command-line arguments.
// Flag parse errors other than -h are reported as configuration errors.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "mcarea"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		var cfgErr apperrors.ConfigError
		if !IsHelpError(err) && !errors.As(err, &cfgErr) {
			err = apperrors.NewConfigError("%v", err)
		}
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		level := cfg.LogLevel
		if cfg.Verbose && level == config.DefaultLogLevel {
			level = "debug"
		}
		if cfg.LogFormat == "json" {
			app.Logger = logging.NewLogger(errWriter, "mcarea", level)
		} else {
			app.Logger = logging.NewConsoleLogger(errWriter, "mcarea", level, cfg.NoColor)
		}
	}
	if app.Metrics == nil {
		app.Metrics = metrics.NewPipeline()
	}
	return app, nil
}

// Run executes the pipeline and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	err := newRun(a, out).execute(ctx)
	if apperrors.IsContextError(err) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", apperrors.TimeoutError{Operation: "pipeline", Limit: a.Config.Timeout}, err)
	}

	a.Metrics.ObserveMemory(metrics.ReadMemory())
	if path := a.Config.MetricsFile; path != "" {
		if werr := a.Metrics.WriteTextfile(path); werr != nil {
			a.Logger.Error("writing metrics file", werr, logging.String("path", path))
			if err == nil {
				err = apperrors.WrapError(werr, "writing metrics file %s", path)
			}
		}
	}

	if err != nil {
		a.Logger.Error("run failed", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
