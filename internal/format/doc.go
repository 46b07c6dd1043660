// Package format holds pure string formatting helpers shared by the CLI:
// durations, progress bars and ETA estimates.
package format
