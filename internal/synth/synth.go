// Package synth generates stand-in estimation results when no persisted
// tables are available. The relative error follows the 1/sqrt(N) Monte Carlo
// convergence law, scaled per region and perturbed by Gaussian noise.
package synth

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/agbru/mcarea/internal/dataset"
	"github.com/agbru/mcarea/internal/geometry"
)

// Config controls a synthesis run.
type Config struct {
	// Range lists the sample sizes to generate.
	Range dataset.NRange
	// Seed pins the noise source. Nil draws a fresh seed, so repeated runs differ.
	Seed *uint64
}

// SignedError returns the nominal signed relative error of region at n for a
// given noise draw: c / sqrt(n/1000) * (1 + noise).
func SignedError(region geometry.Region, n int, noise float64) float64 {
	return region.ErrorScale / math.Sqrt(float64(n)/1000.0) * (1 + noise)
}

// SampleFor builds the record for one signed error.
func SampleFor(n int, signed, exact float64) dataset.Sample {
	return dataset.Sample{
		N:               n,
		ApproximateArea: exact * (1 + signed),
		RelativeError:   math.Abs(signed),
	}
}

// Synthesize generates the wide and narrow datasets. Noise for both regions
// is drawn from a single source, interleaved per N.
func Synthesize(cfg Config) dataset.Pair {
	src := newSource(cfg.Seed)
	exact := geometry.ExactArea()
	wideNoise := distuv.Normal{Mu: 0, Sigma: geometry.Wide.NoiseSigma, Src: src}
	narrowNoise := distuv.Normal{Mu: 0, Sigma: geometry.Narrow.NoiseSigma, Src: src}

	ns := cfg.Range.Values()
	wide := dataset.Dataset{Region: geometry.Wide.Name, Samples: make([]dataset.Sample, 0, len(ns))}
	narrow := dataset.Dataset{Region: geometry.Narrow.Name, Samples: make([]dataset.Sample, 0, len(ns))}
	for _, n := range ns {
		ws := SignedError(geometry.Wide, n, wideNoise.Rand())
		nsErr := SignedError(geometry.Narrow, n, narrowNoise.Rand())
		wide.Samples = append(wide.Samples, SampleFor(n, ws, exact))
		narrow.Samples = append(narrow.Samples, SampleFor(n, nsErr, exact))
	}
	return dataset.Pair{Wide: wide, Narrow: narrow}
}

func newSource(seed *uint64) rand.Source {
	if seed == nil {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)
}
