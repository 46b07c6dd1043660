// Package ui holds the terminal color themes shared by the console report
// and the progress display. ANSI codes serve the plain fmt output of the cli
// package; the lipgloss palette serves the styled report. Both collapse to
// plain text under --no-color or NO_COLOR.
package ui
