package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/agbru/mcarea/internal/dataset"
)

func testPair() dataset.Pair {
	return dataset.Pair{
		Wide: dataset.Dataset{Region: "wide", Samples: []dataset.Sample{
			{N: 100, RelativeError: 0.3},
			{N: 600, RelativeError: 0.1},
			{N: 1100, RelativeError: 0.05},
		}},
		Narrow: dataset.Dataset{Region: "narrow", Samples: []dataset.Sample{
			{N: 100, RelativeError: 0.1},
			{N: 600, RelativeError: 0},
			{N: 1100, RelativeError: 0.02},
		}},
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	s := Summarize(testPair(), 0.9445171858994637)

	if len(s.Ranges) != 2 {
		t.Fatalf("got %d ranges, want 2", len(s.Ranges))
	}
	wide, narrow := s.Ranges[0], s.Ranges[1]
	if wide.Region != "wide" || wide.Min != 0.05 || wide.Max != 0.3 || wide.Samples != 3 {
		t.Errorf("unexpected wide range %+v", wide)
	}
	if math.Abs(wide.Mean-0.15) > 1e-12 {
		t.Errorf("wide mean = %v, want 0.15", wide.Mean)
	}
	if narrow.Min != 0 || narrow.Max != 0.1 {
		t.Errorf("unexpected narrow range %+v", narrow)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()
	s := Summarize(dataset.Pair{}, 1)
	for _, r := range s.Ranges {
		if r.Min != 0 || r.Max != 0 || r.Samples != 0 {
			t.Errorf("empty dataset should give a zero range, got %+v", r)
		}
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()
	s := Summarize(testPair(), 0.9445171858994637)

	t.Run("styled", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		Print(&buf, s, Options{Verbose: true})
		out := buf.String()
		for _, want := range []string{
			"Exact area:", "0.944517",
			"Relative error range (wide):", "0.050000", "0.300000",
			"Relative error range (narrow):", "0.000000", "0.100000",
			"mean 0.150000 over 3 samples",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got:\n%s", want, out)
			}
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		Print(&buf, s, Options{Quiet: true})
		want := "exact 0.944517\nwide 0.050000 0.300000\nnarrow 0.000000 0.100000\n"
		if buf.String() != want {
			t.Errorf("quiet output = %q, want %q", buf.String(), want)
		}
	})
}

func TestPrintScaleAndFallback(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintScale(&buf, "log", Options{})
	if !strings.Contains(buf.String(), "log scale") {
		t.Errorf("missing scale line, got %q", buf.String())
	}

	buf.Reset()
	PrintScale(&buf, "log", Options{Quiet: true})
	if buf.Len() != 0 {
		t.Errorf("quiet mode should not print the scale, got %q", buf.String())
	}

	buf.Reset()
	PrintFallback(&buf, errors.New("file missing"), "Generating synthetic data...")
	if !strings.Contains(buf.String(), "file missing") || !strings.Contains(buf.String(), "Generating synthetic data") {
		t.Errorf("unexpected fallback output %q", buf.String())
	}
}
