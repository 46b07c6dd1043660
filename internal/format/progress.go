package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates produced from very small progress values.
const maxETA = 24 * time.Hour

// ProgressState tracks the progress of several concurrent tasks and their average.
type ProgressState struct {
	progresses []float64
	numTasks   int
}

// NewProgressState creates a state for numTasks tasks.
func NewProgressState(numTasks int) *ProgressState {
	if numTasks < 0 {
		numTasks = 0
	}
	return &ProgressState{progresses: make([]float64, numTasks), numTasks: numTasks}
}

// Update records the progress of task index, clamped to [0, 1]. Out of
// range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = min(max(value, 0), 1)
}

// CalculateAverage returns the mean progress over all tasks.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numTasks == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numTasks)
}

// ProgressWithETA extends ProgressState with a time-remaining estimate based
// on the average rate since the first update.
type ProgressWithETA struct {
	*ProgressState
	start time.Time
	now   func() time.Time
}

// NewProgressWithETA creates a tracker for numTasks tasks starting now.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	return &ProgressWithETA{ProgressState: NewProgressState(numTasks), start: time.Now(), now: time.Now}
}

// UpdateWithETA records a progress value and returns the new average and ETA.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	return p.CalculateAverage(), p.GetETA()
}

// GetETA estimates the remaining time. It returns zero until some progress
// has been made.
func (p *ProgressWithETA) GetETA() time.Duration {
	avg := p.CalculateAverage()
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := p.now().Sub(p.start)
	eta := time.Duration(float64(elapsed) * (1 - avg) / avg)
	return min(eta, maxETA)
}

// FormatETA renders an ETA compactly, e.g. "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		m := int(eta.Minutes())
		s := int(eta.Seconds()) % 60
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		h := int(eta.Hours())
		m := int(eta.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
}

// ProgressBar renders progress in [0, 1] as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 1m5s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}
