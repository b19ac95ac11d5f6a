package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prom.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveCommandDuration("build", 1500*time.Millisecond)
	pr.IncCommandOutcome("build", ResultSuccess)
	pr.IncCommandOutcome("deploy", ResultFailed)
	pr.IncCommandOutcome("deploy", ResultFailed)
	pr.AddSyncFiles(SyncCreated, 3)
	pr.AddSyncFiles(SyncUnchanged, 0)

	require.InDelta(t, 1, counterValue(t, pr.commandOutcome.WithLabelValues("build", "success")), 0)
	require.InDelta(t, 2, counterValue(t, pr.commandOutcome.WithLabelValues("deploy", "failed")), 0)
	require.InDelta(t, 3, counterValue(t, pr.syncFiles.WithLabelValues(SyncCreated)), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "docsite_commands_total")
	require.Contains(t, names, "docsite_command_duration_seconds")
	require.Contains(t, names, "docsite_sync_files_total")
}

func TestNilRegistryGetsFreshOne(t *testing.T) {
	require.NotPanics(t, func() {
		NewPrometheusRecorder(nil)
		NewPrometheusRecorder(nil)
	})
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncCommandOutcome("clean", ResultSuccess)

	path := filepath.Join(t.TempDir(), "collector", "docsite.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `docsite_commands_total{command="clean",outcome="success"} 1`)
}
