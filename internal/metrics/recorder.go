package metrics

import "time"

// ResultLabel enumerates command outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultUsage    ResultLabel = "usage"
	ResultCanceled ResultLabel = "canceled"
)

// Sync file result labels.
const (
	SyncCreated   = "created"
	SyncUpdated   = "updated"
	SyncUnchanged = "unchanged"
)

// Recorder defines observability hooks for dispatched commands.
type Recorder interface {
	ObserveCommandDuration(command string, d time.Duration)
	IncCommandOutcome(command string, outcome ResultLabel)
	AddSyncFiles(result string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveCommandDuration(string, time.Duration) {}
func (NoopRecorder) IncCommandOutcome(string, ResultLabel)        {}
func (NoopRecorder) AddSyncFiles(string, int)                     {}
