package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agro_jobs_completed_total",
			Help: "Total number of advisory jobs completed per task type",
		},
		[]string{"task_type"},
	)

	JobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agro_jobs_failed_total",
			Help: "Total number of advisory jobs failed per task type and error code",
		},
		[]string{"task_type", "error_code"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agro_job_duration_seconds",
			Help:    "Duration of job processing in seconds, mock latency included",
			Buckets: []float64{.005, .05, .25, .5, 1, 1.5, 2, 2.5, 5, 10},
		},
		[]string{"task_type"},
	)

	JobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agro_jobs_active",
			Help: "Number of jobs currently being processed per task type",
		},
		[]string{"task_type"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agro_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"route", "method", "status"},
	)

	ChatKeywordMatches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agro_chat_keyword_matches_total",
			Help: "Chat replies by matched keyword, \"none\" for fallbacks",
		},
		[]string{"keyword"},
	)
)

// ObserveJob records the outcome of one handler execution. errorCode is empty on success.
func ObserveJob(taskType string, started time.Time, errorCode string) {
	JobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
	if errorCode == "" {
		JobsCompleted.WithLabelValues(taskType).Inc()
		return
	}
	JobsFailed.WithLabelValues(taskType, errorCode).Inc()
}
