// Package metrics records pipeline telemetry: prometheus counters and stage
// durations that can be dumped to a node_exporter textfile, and runtime memory
// snapshots for the verbose report.
package metrics
