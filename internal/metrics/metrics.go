// Package metrics provides Prometheus collectors for task execution.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TasksStarted counts tasks handed to a worker pool, by category.
var TasksStarted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gauntlet",
	Name:      "tasks_started_total",
	Help:      "Total tasks started.",
}, []string{"category"})

// TasksCompleted counts tasks that produced a non-error result.
var TasksCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gauntlet",
	Name:      "tasks_completed_total",
	Help:      "Total tasks completed without error.",
}, []string{"category"})

// TasksFailed counts tasks that produced an error result, by failure reason.
var TasksFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gauntlet",
	Name:      "tasks_failed_total",
	Help:      "Total failed tasks.",
}, []string{"category", "reason"})

// TasksActive tracks tasks currently holding a worker slot.
var TasksActive = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "gauntlet",
	Name:      "tasks_active",
	Help:      "Number of currently executing tasks.",
})

// TaskDuration tracks per-task wall-clock execution time.
var TaskDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "gauntlet",
	Name:      "task_duration_seconds",
	Help:      "Task wall-clock execution time in seconds.",
	Buckets:   []float64{1, 5, 15, 60, 300, 900, 1800, 3600, 7200},
}, []string{"category"})

// Serve exposes the default registry on addr for the lifetime of the
// process. Used by `run --metrics-addr`.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
