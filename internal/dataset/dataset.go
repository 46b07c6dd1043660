// Package dataset defines the per-N sample records of an area estimation run
// and their persisted CSV form.
package dataset

import (
	"fmt"
	"path/filepath"

	apperrors "github.com/agbru/mcarea/internal/errors"
	"github.com/agbru/mcarea/internal/geometry"
)

// File names of the persisted tables, relative to the working directory.
const (
	WideFile   = "wide_area_results.csv"
	NarrowFile = "narrow_area_results.csv"
)

// Sample is the outcome of one estimation with N points.
type Sample struct {
	N               int
	ApproximateArea float64
	RelativeError   float64
}

// Dataset is the ordered series of samples for one sampling region.
type Dataset struct {
	Region  string
	Samples []Sample
}

// Len returns the number of samples.
func (d Dataset) Len() int { return len(d.Samples) }

// Ns returns the sample sizes as float64, ready for plotting.
func (d Dataset) Ns() []float64 {
	out := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = float64(s.N)
	}
	return out
}

// Areas returns the approximate areas.
func (d Dataset) Areas() []float64 {
	out := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.ApproximateArea
	}
	return out
}

// Errors returns the relative errors.
func (d Dataset) Errors() []float64 {
	out := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.RelativeError
	}
	return out
}

// Pair groups the wide and narrow datasets of one run.
type Pair struct {
	Wide   Dataset
	Narrow Dataset
}

// Datasets returns the pair in display order.
func (p Pair) Datasets() []Dataset {
	return []Dataset{p.Wide, p.Narrow}
}

// NRange is an arithmetic progression of sample sizes with an inclusive upper bound.
type NRange struct {
	Start int `yaml:"start"`
	Stop  int `yaml:"stop"`
	Step  int `yaml:"step"`
}

// DefaultNRange is 100, 600, ..., 99600.
var DefaultNRange = NRange{Start: 100, Stop: 100000, Step: 500}

// Validate checks that the range yields at least one positive N.
func (r NRange) Validate() error {
	switch {
	case r.Start <= 0:
		return apperrors.NewConfigError("n-range start must be positive, got %d", r.Start)
	case r.Step <= 0:
		return apperrors.NewConfigError("n-range step must be positive, got %d", r.Step)
	case r.Stop < r.Start:
		return apperrors.NewConfigError("n-range stop %d is below start %d", r.Stop, r.Start)
	}
	return nil
}

// Values expands the range.
func (r NRange) Values() []int {
	if r.Validate() != nil {
		return nil
	}
	out := make([]int, 0, (r.Stop-r.Start)/r.Step+1)
	for n := r.Start; n <= r.Stop; n += r.Step {
		out = append(out, n)
	}
	return out
}

// Paths returns the wide and narrow file paths under dir.
func Paths(dir string) (wide, narrow string) {
	return filepath.Join(dir, WideFile), filepath.Join(dir, NarrowFile)
}

// LoadPair reads both tables from dir. Either both load over the same N
// column or an error carrying apperrors.DatasetUnavailableError is returned.
func LoadPair(dir string) (Pair, error) {
	widePath, narrowPath := Paths(dir)
	wide, err := LoadFile(widePath, geometry.Wide.Name)
	if err != nil {
		return Pair{}, err
	}
	narrow, err := LoadFile(narrowPath, geometry.Narrow.Name)
	if err != nil {
		return Pair{}, err
	}
	if wide.Len() != narrow.Len() {
		return Pair{}, apperrors.DatasetUnavailableError{
			Path:  narrowPath,
			Cause: fmt.Errorf("row count %d does not match %s (%d rows)", narrow.Len(), WideFile, wide.Len()),
		}
	}
	for i := range wide.Samples {
		if wn, nn := wide.Samples[i].N, narrow.Samples[i].N; wn != nn {
			return Pair{}, apperrors.DatasetUnavailableError{
				Path:  narrowPath,
				Cause: fmt.Errorf("row %d has N=%d, %s has N=%d", i+1, nn, WideFile, wn),
			}
		}
	}
	return Pair{Wide: wide, Narrow: narrow}, nil
}

// SavePair writes both tables to dir, overwriting existing files.
func SavePair(dir string, p Pair) error {
	widePath, narrowPath := Paths(dir)
	if err := SaveFile(widePath, p.Wide); err != nil {
		return err
	}
	return SaveFile(narrowPath, p.Narrow)
}
