package metrics

import (
	"testing"
	"time"
)

func TestNoopRecorderSatisfiesInterface(_ *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveCommandDuration("start", time.Second)
	r.IncCommandOutcome("start", ResultCanceled)
	r.AddSyncFiles(SyncUpdated, 4)
}

var _ Recorder = (*PrometheusRecorder)(nil)
