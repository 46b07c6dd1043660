package format

import (
	"strings"
	"testing"
	"time"
)

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	if avg := ps.CalculateAverage(); avg != 0 {
		t.Errorf("initial average = %v, want 0", avg)
	}
	ps.Update(0, 0.5)
	ps.Update(1, 1.5)
	ps.Update(7, 0.9)
	ps.Update(-1, 0.9)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %v, want 0.75", avg)
	}
	if NewProgressState(0).CalculateAverage() != 0 {
		t.Error("zero tasks should average to 0")
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)
	start := p.start
	p.now = func() time.Time { return start.Add(10 * time.Second) }

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA before progress = %v, want 0", eta)
	}

	avg, eta := p.UpdateWithETA(0, 0.5)
	if avg != 0.25 {
		t.Errorf("average = %v, want 0.25", avg)
	}
	if eta != 30*time.Second {
		t.Errorf("ETA = %v, want 30s", eta)
	}

	p.Update(0, 1)
	p.Update(1, 1)
	if eta := p.GetETA(); eta != 0 {
		t.Errorf("ETA when done = %v, want 0", eta)
	}
}

func TestETACapping(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(1)
	start := p.start
	p.now = func() time.Time { return start.Add(time.Hour) }
	p.Update(0, 0.0001)
	if eta := p.GetETA(); eta != maxETA {
		t.Errorf("ETA = %v, want capped at %v", eta, maxETA)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour, "1h"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},
		{-0.1, 10, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.progress, tt.length); got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.42, 65*time.Second, 10)
	for _, want := range []string{"[", "]", "42.0%", "ETA: 1m5s"} {
		if !strings.Contains(got, want) {
			t.Errorf("result should contain %q, got %q", want, got)
		}
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{2500 * time.Millisecond, "2.5s"},
		{3*time.Second + 1234567*time.Nanosecond, "3.001s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}
