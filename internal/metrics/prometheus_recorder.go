package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	commandDuration *prom.HistogramVec
	commandOutcome  *prom.CounterVec
	syncFiles       *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		commandDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Wall time of dispatched commands, including delegated tools",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 900},
		}, []string{"command"}),
		commandOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Dispatched commands by outcome",
		}, []string{"command", "outcome"}),
		syncFiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sync_files_total",
			Help:      "Files visited by documentation sync, by result",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.commandDuration, pr.commandOutcome, pr.syncFiles)
	return pr
}

func (p *PrometheusRecorder) ObserveCommandDuration(command string, d time.Duration) {
	p.commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCommandOutcome(command string, outcome ResultLabel) {
	p.commandOutcome.WithLabelValues(command, string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddSyncFiles(result string, n int) {
	if n <= 0 {
		return
	}
	p.syncFiles.WithLabelValues(result).Add(float64(n))
}
