package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	apperrors "github.com/agbru/mcarea/internal/errors"
)

// Header is the column layout of a results table.
var Header = []string{"N", "ApproximateArea", "RelativeError"}

// ReadCSV parses a results table. The header must match exactly, N must be
// positive and strictly increasing, and both float columns must be finite
// with a non-negative relative error.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range Header {
		if head[i] != col {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i+1, head[i], col)
		}
	}

	var samples []Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if k := len(samples); k > 0 && s.N <= samples[k-1].N {
			return nil, fmt.Errorf("line %d: N %d does not increase (previous %d)", line, s.N, samples[k-1].N)
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return nil, errors.New("table has no rows")
	}
	return samples, nil
}

func parseRecord(rec []string) (Sample, error) {
	n, err := strconv.Atoi(rec[0])
	if err != nil {
		return Sample{}, fmt.Errorf("parse N: %w", err)
	}
	if n <= 0 {
		return Sample{}, fmt.Errorf("N must be positive, got %d", n)
	}
	area, err := strconv.ParseFloat(rec[1], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("parse ApproximateArea: %w", err)
	}
	relErr, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return Sample{}, fmt.Errorf("parse RelativeError: %w", err)
	}
	if !finite(area) {
		return Sample{}, fmt.Errorf("ApproximateArea must be finite, got %g", area)
	}
	if !finite(relErr) || relErr < 0 {
		return Sample{}, fmt.Errorf("RelativeError must be finite and non-negative, got %g", relErr)
	}
	return Sample{N: n, ApproximateArea: area, RelativeError: relErr}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WriteCSV writes samples with the standard header. Floats use the shortest
// representation that parses back to the same value.
func WriteCSV(w io.Writer, samples []Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			strconv.Itoa(s.N),
			strconv.FormatFloat(s.ApproximateArea, 'g', -1, 64),
			strconv.FormatFloat(s.RelativeError, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// LoadFile reads one table. Every failure is reported as a
// DatasetUnavailableError so that callers can fall back to regeneration.
func LoadFile(path, region string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, apperrors.DatasetUnavailableError{Path: path, Cause: err}
	}
	defer f.Close()

	samples, err := ReadCSV(f)
	if err != nil {
		return Dataset{}, apperrors.DatasetUnavailableError{Path: path, Cause: err}
	}
	return Dataset{Region: region, Samples: samples}, nil
}

// SaveFile writes one table, creating parent directories as needed.
func SaveFile(path string, d Dataset) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, d.Samples); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
