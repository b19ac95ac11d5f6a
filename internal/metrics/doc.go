// Package metrics records dispatcher and sync metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so callers never need nil checks:
//
//	d := &dispatch.Dispatcher{Recorder: metrics.NoopRecorder{}}
//
// When a textfile path is configured the CLI swaps in a PrometheusRecorder
// backed by its own registry and writes the registry after the run with
// WriteTextfile, in the format the node_exporter textfile collector reads.
package metrics
