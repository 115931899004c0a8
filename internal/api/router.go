package api

import (
	"net/http"
	"time"
	"tour-route-service/internal/api/handlers"
	"tour-route-service/internal/platform/metrics"
	"tour-route-service/internal/ports"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the adapters the HTTP API runs against.
type Deps struct {
	Source   ports.PointSource
	Cache    ports.MatrixCache
	Solver   ports.TourSolver
	Exporter ports.RouteExporter

	InstanceName  string
	SolverTimeout time.Duration

	// HealthChecks are probed by /health, keyed by dependency name.
	HealthChecks map[string]handlers.Check
}

// writeSlack covers matrix build, encoding and the response after the solver deadline.
const writeSlack = 30 * time.Second

// WriteTimeout is the server write deadline for a given solver timeout. Requests
// cannot extend the solver timeout, so a full run always fits inside it.
func WriteTimeout(solverTimeout time.Duration) time.Duration {
	return solverTimeout + writeSlack
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	metrics.RegisterDefault()
	mux := http.NewServeMux()

	pointHandler := &handlers.PointHandler{Source: d.Source, Cache: d.Cache}
	tourHandler := &handlers.TourHandler{
		Source:      d.Source,
		Cache:       d.Cache,
		Solver:      d.Solver,
		Exporter:    d.Exporter,
		DefaultName: d.InstanceName,
		Timeout:     d.SolverTimeout,
	}

	healthHandler := &handlers.HealthHandler{Checks: d.HealthChecks}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/points", pointHandler.List)
	mux.HandleFunc("/points/stats", pointHandler.Stats)
	mux.HandleFunc("/points/{name}", pointHandler.Get)
	mux.HandleFunc("/tours", tourHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(metricsMiddleware(mux))
}
