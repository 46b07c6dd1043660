// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/mcarea/internal/format"
	"github.com/agbru/mcarea/internal/ui"
)

// RunInfo describes a run for the verbose header.
type RunInfo struct {
	Dir     string
	Source  string
	Seed    string
	DPI     int
	Timeout time.Duration
	NRange  string
}

// DisplayRunConfig prints the execution configuration.
func DisplayRunConfig(out io.Writer, info RunInfo) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Working directory %s%s%s, sample sizes %s%s%s.\n",
		ui.ColorCyan(), info.Dir, ui.ColorReset(), ui.ColorYellow(), info.NRange, ui.ColorReset())
	fmt.Fprintf(out, "Data source: %s%s%s, seed %s, %d DPI, timeout %s.\n",
		ui.ColorGreen(), info.Source, ui.ColorReset(), info.Seed, info.DPI, info.Timeout)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// DisplayArtifacts lists the written files.
func DisplayArtifacts(out io.Writer, files []string, elapsed time.Duration) {
	for _, f := range files {
		fmt.Fprintf(out, "%s✓ Saved%s %s%s%s\n", ui.ColorGreen(), ui.ColorReset(), ui.ColorCyan(), f, ui.ColorReset())
	}
	if elapsed > 0 {
		fmt.Fprintf(out, "Rendered in %s\n", format.FormatExecutionDuration(elapsed))
	}
}

// FormatStageTiming renders one stage duration line.
func FormatStageTiming(stage string, d time.Duration) string {
	return fmt.Sprintf("%-10s %s", stage, format.FormatExecutionDuration(d))
}

// DisplayStageTimings prints stage durations in execution order.
func DisplayStageTimings(out io.Writer, stages []string, timings map[string]time.Duration) {
	fmt.Fprintf(out, "\n--- Stage Timings ---\n")
	for _, s := range stages {
		if d, ok := timings[s]; ok {
			fmt.Fprintln(out, FormatStageTiming(s, d))
		}
	}
}
