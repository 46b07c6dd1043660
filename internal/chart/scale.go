package chart

import (
	"gonum.org/v1/gonum/floats"
)

// Scale is the kind of Y axis used for the relative error plots.
type Scale int

const (
	// ScaleLinear is a linear axis.
	ScaleLinear Scale = iota
	// ScaleLog is a base-10 logarithmic axis.
	ScaleLog
)

// String returns the scale name.
func (s Scale) String() string {
	if s == ScaleLog {
		return "log"
	}
	return "linear"
}

const (
	// LogRatioThreshold is the max/min ratio above which a series needs a log axis.
	LogRatioThreshold = 100.0
	// ZeroErrorFloor replaces a zero lower bound on the error axis.
	ZeroErrorFloor = 0.0001
)

// positive returns the strictly positive entries of xs.
func positive(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x > 0 {
			out = append(out, x)
		}
	}
	return out
}

// DynamicRange returns max/min over the strictly positive values of xs and
// false when there are none.
func DynamicRange(xs []float64) (float64, bool) {
	p := positive(xs)
	if len(p) == 0 {
		return 0, false
	}
	return floats.Max(p) / floats.Min(p), true
}

// DecideScale picks a log axis when any series spans more than two decades.
// A series without positive values has no dynamic range and never votes
// for log.
func DecideScale(series ...[]float64) Scale {
	for _, s := range series {
		if r, ok := DynamicRange(s); ok && r > LogRatioThreshold {
			return ScaleLog
		}
	}
	return ScaleLinear
}

// ErrorBounds returns the Y range for the error plots: half the global
// minimum to twice the global maximum. A non-positive minimum is replaced by
// ZeroErrorFloor so that the lower bound stays strictly positive.
func ErrorBounds(series ...[]float64) (lo, hi float64) {
	first := true
	for _, s := range series {
		if len(s) == 0 {
			continue
		}
		mn, mx := floats.Min(s), floats.Max(s)
		if first {
			lo, hi, first = mn, mx, false
			continue
		}
		lo = min(lo, mn)
		hi = max(hi, mx)
	}
	if lo <= 0 {
		lo = ZeroErrorFloor
	}
	if hi < lo {
		hi = lo
	}
	return lo * 0.5, hi * 2
}
