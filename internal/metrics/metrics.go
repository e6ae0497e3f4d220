package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interviewlens",
		Name:      "pipeline_runs_total",
		Help:      "Total pipeline runs by terminal status",
	}, []string{"status"})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interviewlens",
		Name:      "pipeline_run_duration_seconds",
		Help:      "Wall-clock duration of whole pipeline runs",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"status"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interviewlens",
		Name:      "pipeline_stage_duration_seconds",
		Help:      "Duration of individual pipeline stages",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"stage"})
)

func ObserveRun(status string, d time.Duration) {
	pipelineRuns.WithLabelValues(status).Inc()
	runDuration.WithLabelValues(status).Observe(d.Seconds())
}

func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func Handler() http.Handler { return promhttp.Handler() }
