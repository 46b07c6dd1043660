package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/mcarea/internal/chart"
	"github.com/agbru/mcarea/internal/cli"
	"github.com/agbru/mcarea/internal/dataset"
	apperrors "github.com/agbru/mcarea/internal/errors"
	"github.com/agbru/mcarea/internal/geometry"
	"github.com/agbru/mcarea/internal/logging"
	"github.com/agbru/mcarea/internal/metrics"
	"github.com/agbru/mcarea/internal/montecarlo"
	"github.com/agbru/mcarea/internal/report"
	"github.com/agbru/mcarea/internal/synth"
)

const tracerName = "github.com/agbru/mcarea/internal/app"

// Pipeline stages, in execution order.
const (
	stageLoad       = "load"
	stageSynthesize = "synthesize"
	stageSimulate   = "simulate"
	stageReport     = "report"
	stageRender     = "render"
)

var stageOrder = []string{stageLoad, stageSynthesize, stageSimulate, stageReport, stageRender}

// Data sources recorded in metrics.
const (
	sourceLoaded    = "loaded"
	sourceSynthetic = "synthetic"
	sourceSimulated = "simulated"
)

// run carries the state of one pipeline execution.
type run struct {
	app     *Application
	out     io.Writer
	tracer  trace.Tracer
	timings map[string]time.Duration
}

func newRun(a *Application, out io.Writer) *run {
	return &run{
		app:     a,
		out:     out,
		tracer:  otel.Tracer(tracerName),
		timings: make(map[string]time.Duration),
	}
}

// execute runs load (or regenerate), report and render.
func (r *run) execute(ctx context.Context) error {
	cfg := r.app.Config
	ctx, span := r.tracer.Start(ctx, "mcarea.run", trace.WithAttributes(
		attribute.String("mcarea.dir", cfg.Dir),
		attribute.Int("mcarea.n_start", cfg.NRange.Start),
		attribute.Int("mcarea.n_stop", cfg.NRange.Stop),
		attribute.Int("mcarea.n_step", cfg.NRange.Step),
	))
	defer span.End()

	if cfg.Verbose {
		cli.DisplayRunConfig(r.out, r.runInfo())
	}

	pair, err := r.acquire(ctx)
	if err != nil {
		return r.fail(span, err)
	}

	exact := geometry.ExactArea()
	opts := report.Options{Quiet: cfg.Quiet, Verbose: cfg.Verbose}
	err = r.stage(ctx, stageReport, func(context.Context) error {
		summary := report.Summarize(pair, exact)
		for _, rg := range summary.Ranges {
			r.app.Metrics.ObserveMaxError(rg.Region, rg.Max)
		}
		report.Print(r.out, summary, opts)
		return nil
	})
	if err != nil {
		return r.fail(span, err)
	}

	scale, lo, hi := chart.Decide(pair)
	r.app.Logger.Debug("error axis decided",
		logging.String("scale", scale.String()), logging.Float64("ymin", lo), logging.Float64("ymax", hi))
	report.PrintScale(r.out, scale.String(), opts)

	if !cfg.NoPlots {
		if err := r.render(ctx, pair, exact); err != nil {
			return r.fail(span, err)
		}
	}

	if cfg.Verbose {
		cli.DisplayStageTimings(r.out, stageOrder, r.timings)
		snap := metrics.ReadMemory()
		fmt.Fprintf(r.out, "Heap in use: %.1f MiB after %d GC cycles\n", snap.HeapAllocMiB(), snap.NumGC)
	}
	return nil
}

// acquire loads the persisted tables, falling back to regeneration when they
// are unavailable or when regeneration is forced.
func (r *run) acquire(ctx context.Context) (dataset.Pair, error) {
	cfg := r.app.Config
	log := r.app.Logger

	if !cfg.ForceRegenerate {
		var pair dataset.Pair
		err := r.stage(ctx, stageLoad, func(context.Context) error {
			var err error
			pair, err = dataset.LoadPair(cfg.Dir)
			return err
		})
		if err == nil {
			r.app.Metrics.ObserveLoad(metrics.LoadOK)
			log.Info("results loaded",
				logging.String("dir", cfg.Dir), logging.Int("wide", pair.Wide.Len()), logging.Int("narrow", pair.Narrow.Len()))
			return pair, nil
		}
		if !apperrors.IsDatasetUnavailable(err) {
			return dataset.Pair{}, err
		}
		r.app.Metrics.ObserveLoad(metrics.LoadUnavailable)
		log.Warn("results unavailable, regenerating", logging.Err(err))
		if !cfg.Quiet {
			report.PrintFallback(r.out, err, r.fallbackAction())
		}
	} else {
		log.Info("regeneration forced, skipping load")
	}

	if cfg.Seed != nil {
		log.Debug("seeded generation", logging.Uint64("seed", *cfg.Seed))
	}
	pair, source, err := r.generate(ctx)
	if err != nil {
		return dataset.Pair{}, err
	}
	for _, d := range pair.Datasets() {
		r.app.Metrics.ObserveSamples(d.Region, source, d.Len())
	}
	if err := dataset.SavePair(cfg.Dir, pair); err != nil {
		return dataset.Pair{}, apperrors.WrapError(err, "saving results")
	}
	wide, narrow := dataset.Paths(cfg.Dir)
	log.Info("results saved", logging.String("wide", wide), logging.String("narrow", narrow))
	return pair, nil
}

func (r *run) fallbackAction() string {
	if r.app.Config.Simulate {
		return "Running a Monte Carlo simulation instead."
	}
	return "Generating synthetic results instead."
}

// generate produces a fresh pair with the synthesizer or the simulator.
func (r *run) generate(ctx context.Context) (dataset.Pair, string, error) {
	cfg := r.app.Config
	var pair dataset.Pair

	if !cfg.Simulate {
		err := r.stage(ctx, stageSynthesize, func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pair = synth.Synthesize(synth.Config{Range: cfg.NRange, Seed: cfg.Seed})
			return nil
		})
		return pair, sourceSynthetic, err
	}

	var reporter montecarlo.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := r.out
	if cfg.Quiet {
		reporter = montecarlo.NullProgressReporter{}
		progressOut = io.Discard
	}
	err := r.stage(ctx, stageSimulate, func(ctx context.Context) error {
		var err error
		pair, err = montecarlo.Run(ctx, montecarlo.Options{
			Range:       cfg.NRange,
			Seed:        cfg.Seed,
			Reporter:    reporter,
			ProgressOut: progressOut,
		})
		return err
	})
	return pair, sourceSimulated, err
}

// render writes the three figures and lists them.
func (r *run) render(ctx context.Context, pair dataset.Pair, exact float64) error {
	cfg := r.app.Config
	var res chart.Result
	err := r.stage(ctx, stageRender, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		res, err = chart.Render(pair, exact, chart.Options{Dir: cfg.Dir, DPI: cfg.DPI})
		return err
	})
	r.app.Metrics.ObserveArtifacts(len(res.Files))
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		cli.DisplayArtifacts(r.out, res.Files, r.timings[stageRender])
	}
	return nil
}

// stage runs fn inside a span and records its duration.
func (r *run) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	r.timings[name] = elapsed
	r.app.Metrics.ObserveStage(name, elapsed)
	r.app.Logger.Debug("stage finished", logging.String("stage", name), logging.Duration("elapsed", elapsed))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *run) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (r *run) runInfo() cli.RunInfo {
	cfg := r.app.Config
	source := "persisted tables, synthetic fallback"
	switch {
	case cfg.ForceRegenerate && cfg.Simulate:
		source = "Monte Carlo simulation"
	case cfg.ForceRegenerate:
		source = "synthetic model"
	case cfg.Simulate:
		source = "persisted tables, simulation fallback"
	}
	return cli.RunInfo{
		Dir:     cfg.Dir,
		Source:  source,
		Seed:    cfg.SeedString(),
		DPI:     cfg.DPI,
		Timeout: cfg.Timeout,
		NRange:  fmt.Sprintf("%d..%d step %d", cfg.NRange.Start, cfg.NRange.Stop, cfg.NRange.Step),
	}
}
