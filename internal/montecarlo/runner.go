package montecarlo

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/mcarea/internal/dataset"
	apperrors "github.com/agbru/mcarea/internal/errors"
	"github.com/agbru/mcarea/internal/geometry"
)

// ProgressUpdate reports how far one region's simulation has advanced.
type ProgressUpdate struct {
	// RegionIndex is 0 for wide and 1 for narrow.
	RegionIndex int
	// Value is the completed fraction in [0, 1].
	Value float64
}

// ProgressReporter displays progress updates until the channel is closed.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRegions int, out io.Writer)
}

// NullProgressReporter drains the channel without output.
type NullProgressReporter struct{}

// DisplayProgress drains the channel silently.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// Options configures a simulation run.
type Options struct {
	Range   dataset.NRange
	Circles []geometry.Circle
	// Seed pins the point sources. Nil seeds from entropy.
	Seed     *uint64
	Reporter ProgressReporter
	// ProgressOut receives the reporter's output.
	ProgressOut io.Writer
}

// Run simulates both regions over the whole N-range. The relative error of
// each sample is |approx − exact| / exact.
func Run(ctx context.Context, opts Options) (dataset.Pair, error) {
	if err := opts.Range.Validate(); err != nil {
		return dataset.Pair{}, err
	}
	if opts.Circles == nil {
		opts.Circles = geometry.Circles()
	}
	if opts.Reporter == nil {
		opts.Reporter = NullProgressReporter{}
	}
	if opts.ProgressOut == nil {
		opts.ProgressOut = io.Discard
	}

	regions := []geometry.Region{geometry.Wide, geometry.Narrow}
	results := make([]dataset.Dataset, len(regions))

	progressChan := make(chan ProgressUpdate, 2*len(regions))
	var wg sync.WaitGroup
	wg.Add(1)
	go opts.Reporter.DisplayProgress(&wg, progressChan, len(regions), opts.ProgressOut)

	g, gctx := errgroup.WithContext(ctx)
	for i, region := range regions {
		src := regionSource(opts.Seed, i)
		g.Go(func() error {
			d, err := simulateRegion(gctx, opts, region, i, src, progressChan)
			if err != nil {
				return apperrors.SimulationError{Region: region.Name, Cause: err}
			}
			results[i] = d
			return nil
		})
	}
	err := g.Wait()
	close(progressChan)
	wg.Wait()
	if err != nil {
		return dataset.Pair{}, err
	}
	return dataset.Pair{Wide: results[0], Narrow: results[1]}, nil
}

func simulateRegion(ctx context.Context, opts Options, region geometry.Region, index int, src rand.Source, progressChan chan<- ProgressUpdate) (dataset.Dataset, error) {
	exact := geometry.ExactArea()
	ns := opts.Range.Values()
	out := dataset.Dataset{Region: region.Name, Samples: make([]dataset.Sample, 0, len(ns))}

	var total, done float64
	for _, n := range ns {
		total += float64(n)
	}
	for _, n := range ns {
		approx, err := Estimate(ctx, opts.Circles, region, n, src)
		if err != nil {
			return dataset.Dataset{}, err
		}
		out.Samples = append(out.Samples, dataset.Sample{
			N:               n,
			ApproximateArea: approx,
			RelativeError:   math.Abs(approx-exact) / exact,
		})
		done += float64(n)
		select {
		case progressChan <- ProgressUpdate{RegionIndex: index, Value: done / total}:
		case <-ctx.Done():
			return dataset.Dataset{}, ctx.Err()
		}
	}
	return out, nil
}

func regionSource(seed *uint64, index int) rand.Source {
	if seed == nil {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(*seed, uint64(index)+1)
}
