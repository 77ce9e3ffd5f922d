// Package metrics exposes Prometheus collectors for the benchmark crawler.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	fetchesTotal         *prometheus.CounterVec
	fetchDurationSeconds *prometheus.HistogramVec
	activeFetches        prometheus.Gauge
	runsTotal            prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		fetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crawlbench_fetches_total",
				Help: "Total number of fetches, labeled by status class.",
			},
			[]string{"status_class"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crawlbench_fetch_duration_seconds",
				Help:    "Wall-clock fetch latency, labeled by status class.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status_class"},
		)

		activeFetches = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "crawlbench_active_fetches",
				Help: "Number of fetches currently holding a concurrency slot.",
			},
		)

		runsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "crawlbench_runs_total",
				Help: "Total number of completed crawl runs.",
			},
		)
	})
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch records one completed fetch.
func ObserveFetch(status int, duration time.Duration) {
	if fetchesTotal == nil {
		return
	}
	class := statusClass(status)
	fetchesTotal.WithLabelValues(class).Inc()
	fetchDurationSeconds.WithLabelValues(class).Observe(duration.Seconds())
}

// FetchStarted marks a fetch as holding a concurrency slot.
func FetchStarted() {
	if activeFetches != nil {
		activeFetches.Inc()
	}
}

// FetchFinished releases the active-fetch gauge.
func FetchFinished() {
	if activeFetches != nil {
		activeFetches.Dec()
	}
}

// RunCompleted counts a finished crawl run.
func RunCompleted() {
	if runsTotal != nil {
		runsTotal.Inc()
	}
}

// statusClass groups status codes into coarse labels. The -1 sentinel used
// for timeouts and network failures maps to "error".
func statusClass(status int) string {
	if status < 100 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
