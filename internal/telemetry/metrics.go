package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	compilationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_compilations_total",
		Help: "Total workflow compilations by outcome",
	}, []string{"outcome"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_runs_total",
		Help: "Total workflow runs by outcome",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conduit_run_duration_seconds",
		Help:    "Workflow run duration",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	}, []string{"outcome"})

	nodeExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conduit_node_executions_total",
		Help: "Total node executions by node type and status",
	}, []string{"node_type", "status"})

	nodeExecutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conduit_node_execution_duration_seconds",
		Help:    "Node execution duration by node type",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
	}, []string{"node_type"})
)

// ObserveCompilation фиксирует результат компиляции workflow.
// outcome: "success" или "failure".
func ObserveCompilation(outcome string) {
	compilationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRun фиксирует завершённый run workflow.
// outcome: "succeeded" или "failed".
func ObserveRun(outcome string, d time.Duration) {
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveNodeExecution фиксирует завершённое выполнение узла.
// status: "completed" или "error".
func ObserveNodeExecution(nodeType, status string, d time.Duration) {
	nodeExecutionsTotal.WithLabelValues(nodeType, status).Inc()
	if status == "completed" {
		nodeExecutionDuration.WithLabelValues(nodeType).Observe(d.Seconds())
	}
}
