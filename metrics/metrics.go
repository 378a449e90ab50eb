// Package metrics exposes Prometheus instrumentation for skillmap under
// the "skillmap" namespace. Collectors are registered on the default
// registry at init and recorded through package-level helpers so callers
// never touch prometheus types directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillmap"

var (
	extractionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_runs_total",
			Help:      "Extraction runs by final result.",
		},
		[]string{"result"},
	)

	sourceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Per-source adapter failures.",
		},
		[]string{"source"},
	)

	mergedSkills = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merged_skills_total",
			Help:      "Skills produced by the merge engine across all runs.",
		},
	)

	oracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_calls_total",
			Help:      "Oracle invocations by operation.",
		},
		[]string{"op"},
	)

	oracleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_errors_total",
			Help:      "Failed oracle invocations by operation.",
		},
		[]string{"op"},
	)

	oracleLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "oracle_latency_seconds",
			Help:      "Oracle call latency by operation.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method, and status code.",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by endpoint and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)
)

// RecordRun counts a finished extraction run. Result is one of
// "completed", "failed".
func RecordRun(result string) {
	extractionRuns.WithLabelValues(result).Inc()
}

// RecordSourceError counts an isolated adapter failure.
func RecordSourceError(source string) {
	sourceErrors.WithLabelValues(source).Inc()
}

// RecordMergedSkills counts skills emitted by one merge pass.
func RecordMergedSkills(n int) {
	mergedSkills.Add(float64(n))
}

// RecordOracleCall counts one oracle invocation and its latency.
func RecordOracleCall(op string, elapsed time.Duration) {
	oracleCalls.WithLabelValues(op).Inc()
	oracleLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// RecordOracleError counts a failed oracle invocation.
func RecordOracleError(op string) {
	oracleErrors.WithLabelValues(op).Inc()
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
	httpDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}
