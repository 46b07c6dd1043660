//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/mcarea/internal/format"
	"github.com/agbru/mcarea/internal/montecarlo"
	"github.com/agbru/mcarea/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so that progress display can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with an aggregated progress bar until
// progressChan is closed, then prints a completion line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan montecarlo.ProgressUpdate, numRegions int, out io.Writer) {
	defer wg.Done()
	if numRegions <= 0 {
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numRegions)
	s := newSpinner(out)
	s.UpdateSuffix(" " + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	for update := range progressChan {
		avg, eta := state.UpdateWithETA(update.RegionIndex, update.Value)
		s.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}
	s.Stop()
	fmt.Fprintf(out, "%sSimulation finished%s %s\n", ui.ColorGreen(), ui.ColorReset(),
		format.ProgressBar(state.CalculateAverage(), ProgressBarWidth))
}

// CLIProgressReporter implements montecarlo.ProgressReporter with a spinner.
type CLIProgressReporter struct{}

var _ montecarlo.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the running simulation.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan montecarlo.ProgressUpdate, numRegions int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRegions, out)
}
