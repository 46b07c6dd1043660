// Package report summarizes a results pair and prints it to the console.
//
// # Naming Conventions
//
//   - Summarize computes values without performing I/O.
//   - Print* functions write formatted output to an [io.Writer].
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agbru/mcarea/internal/dataset"
	"github.com/agbru/mcarea/internal/ui"
)

// Range is the spread of relative errors of one dataset.
type Range struct {
	Region   string
	Min, Max float64
	Mean     float64
	Samples  int
}

// Summary is the console report of a run.
type Summary struct {
	Exact  float64
	Ranges []Range
}

// Summarize computes the per-dataset error ranges. Empty datasets yield zero ranges.
func Summarize(pair dataset.Pair, exact float64) Summary {
	s := Summary{Exact: exact}
	for _, d := range pair.Datasets() {
		r := Range{Region: d.Region, Samples: d.Len()}
		if errs := d.Errors(); len(errs) > 0 {
			r.Min = floats.Min(errs)
			r.Max = floats.Max(errs)
			r.Mean = stat.Mean(errs, nil)
		}
		s.Ranges = append(s.Ranges, r)
	}
	return s
}

// Options controls the console layout.
type Options struct {
	// Quiet prints only the numeric lines, without styling.
	Quiet bool
	// Verbose adds the mean error and sample count.
	Verbose bool
}

// Print writes the exact value and the error range of every dataset with six
// decimals.
func Print(out io.Writer, s Summary, opts Options) {
	if opts.Quiet {
		fmt.Fprintf(out, "exact %.6f\n", s.Exact)
		for _, r := range s.Ranges {
			fmt.Fprintf(out, "%s %.6f %.6f\n", r.Region, r.Min, r.Max)
		}
		return
	}

	st := newStyles(out)
	fmt.Fprintln(out, st.title.Render("--- Area Estimation Report ---"))
	fmt.Fprintf(out, "%s %s\n", st.label.Render("Exact area:"), st.exact.Render(fmt.Sprintf("%.6f", s.Exact)))
	for _, r := range s.Ranges {
		label := st.label.Render(fmt.Sprintf("Relative error range (%s):", r.Region))
		fmt.Fprintf(out, "%s %s - %s\n", label,
			st.region(r.Region).Render(fmt.Sprintf("%.6f", r.Min)),
			st.region(r.Region).Render(fmt.Sprintf("%.6f", r.Max)))
		if opts.Verbose {
			fmt.Fprintf(out, "  %s\n", st.dim.Render(fmt.Sprintf("mean %.6f over %d samples", r.Mean, r.Samples)))
		}
	}
}

// PrintScale reports which Y axis the error plots use.
func PrintScale(out io.Writer, scale string, opts Options) {
	if opts.Quiet {
		return
	}
	st := newStyles(out)
	fmt.Fprintf(out, "%s %s\n", st.label.Render("Error plot Y axis:"), st.value.Render(scale+" scale"))
}

// PrintFallback reports that the persisted tables could not be used.
func PrintFallback(out io.Writer, reason error, action string) {
	st := newStyles(out)
	fmt.Fprintf(out, "%s %v\n", st.warn.Render("Could not load data:"), reason)
	fmt.Fprintf(out, "%s\n", st.dim.Render(action))
}

type styles struct {
	title, label, value, exact, dim, warn lipgloss.Style
	wide, narrow                          lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	p := ui.GetCurrentPalette()
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(p.Title),
		label:  r.NewStyle().Foreground(p.Label),
		value:  r.NewStyle().Foreground(p.Value),
		exact:  r.NewStyle().Bold(true).Foreground(p.Exact),
		dim:    r.NewStyle().Foreground(p.Dim),
		warn:   r.NewStyle().Bold(true).Foreground(p.Value),
		wide:   r.NewStyle().Foreground(p.Wide),
		narrow: r.NewStyle().Foreground(p.Narrow),
	}
}

func (s styles) region(name string) lipgloss.Style {
	if name == "narrow" {
		return s.narrow
	}
	return s.wide
}
