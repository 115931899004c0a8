package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// TourRuns counts pipeline runs by outcome (ok, source_error, solver_error, malformed_solution, invalid_tour, error).
	TourRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tour_runs_total", Help: "Tour pipeline runs by outcome."},
		[]string{"outcome"},
	)
	MatrixBuildSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "distance_matrix_build_seconds", Help: "Distance matrix build duration in seconds.", Buckets: prometheus.ExponentialBuckets(0.001, 4, 8)},
	)
	// MatrixCacheLookups counts matrix cache lookups by result (hit, miss, error).
	MatrixCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "distance_matrix_cache_lookups_total", Help: "Distance matrix cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(TourRuns)
		Registry.MustRegister(MatrixBuildSeconds)
		Registry.MustRegister(MatrixCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
