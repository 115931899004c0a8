package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/tsplib"
)

type staticSource []domain.Point

func (s staticSource) ListPoints(ctx context.Context) ([]domain.Point, error) { return s, nil }

type solverFunc func(ctx context.Context, name string, instance []byte) ([]byte, error)

func (f solverFunc) Solve(ctx context.Context, name string, instance []byte) ([]byte, error) {
	return f(ctx, name, instance)
}

type identitySolver struct{}

func (identitySolver) Solve(ctx context.Context, name string, instance []byte) ([]byte, error) {
	return tsplib.EncodeSolution([]int{0, 1}), nil
}

func TestRouterServesEndpointsAndMetrics(t *testing.T) {
	router := NewRouter(Deps{
		Source:       staticSource{{Name: "A", Lat: 1, Lon: 1}, {Name: "B", Lat: 2, Lon: 2}},
		Solver:       identitySolver{},
		InstanceName: "tour",
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	for _, path := range []string{"/health", "/points", "/points/stats", "/points/B"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
	}

	resp, err := http.Post(srv.URL+"/tours", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /tours: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /tours status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{
		`http_requests_total{method="GET",path="/points",status="200"}`,
		`tour_runs_total{outcome="ok"}`,
		`http_requests_total{method="GET",path="/points/{name}",status="200"}`,
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics missing %s", want)
		}
	}
}

func TestRouterLabelsUnknownPaths(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Deps{Source: staticSource{}, Solver: identitySolver{}}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/wp-admin")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(body), "wp-admin") || !strings.Contains(string(body), `path="other"`) {
		t.Fatal("unknown path should be recorded as other")
	}
}

func TestServerDeliversSolverDeadlineBeforeWriteTimeout(t *testing.T) {
	const solverTimeout = 150 * time.Millisecond

	var calls atomic.Int32
	blocking := solverFunc(func(ctx context.Context, name string, instance []byte) ([]byte, error) {
		calls.Add(1)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	srv := httptest.NewUnstartedServer(NewRouter(Deps{
		Source:        staticSource{{Name: "A", Lat: 1, Lon: 1}, {Name: "B", Lat: 2, Lon: 2}},
		Solver:        blocking,
		SolverTimeout: solverTimeout,
	}))
	srv.Config.WriteTimeout = WriteTimeout(solverTimeout)
	srv.Start()
	defer srv.Close()

	// Asking for more than the configured timeout is refused before solving.
	resp, err := http.Post(srv.URL+"/tours", "application/json", strings.NewReader(`{"solver_timeout_seconds":1}`))
	if err != nil {
		t.Fatalf("POST /tours: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if calls.Load() != 0 {
		t.Fatalf("solver calls = %d, want 0", calls.Load())
	}

	// A run that hits the solver deadline still gets its response written.
	resp, err = http.Post(srv.URL+"/tours", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /tours: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
	if calls.Load() != 1 {
		t.Fatalf("solver calls = %d, want 1", calls.Load())
	}
}

func TestWriteTimeoutExceedsSolverTimeout(t *testing.T) {
	for _, d := range []time.Duration{0, time.Second, 10 * time.Minute} {
		if got := WriteTimeout(d); got <= d {
			t.Fatalf("WriteTimeout(%v) = %v, want more than the solver timeout", d, got)
		}
	}
}
