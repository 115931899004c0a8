package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"tour-route-service/internal/adapters/export"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/platform/obs"
	"tour-route-service/internal/ports"
	"tour-route-service/internal/services"
)

const maxSolverTimeout = 6 * time.Hour

type TourHandler struct {
	Source      ports.PointSource
	Cache       ports.MatrixCache
	Solver      ports.TourSolver
	Exporter    ports.RouteExporter
	DefaultName string
	Timeout     time.Duration
}

// Plan runs the full tour pipeline: points, matrix, solver hand-off, route.
// With ?format=geojson the route is returned as GeoJSON instead of stops.
func (h *TourHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// An empty body runs with defaults.
	var req dto.TourRequest
	if err := decodeBody(w, r, &req); err != nil {
		if errors.Is(err, errExtraJSON) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "geojson" {
		writeError(w, r, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = h.DefaultName
	}
	if strings.ContainsAny(name, `/\`) {
		writeError(w, r, http.StatusBadRequest, "name must not contain path separators")
		return
	}

	timeout := h.Timeout
	if req.SolverTimeoutSeconds < 0 {
		writeError(w, r, http.StatusBadRequest, "solver_timeout_seconds must not be negative")
		return
	}
	if req.SolverTimeoutSeconds > 0 {
		// Compared in seconds so huge values cannot overflow the Duration.
		limit := h.maxTimeout()
		if req.SolverTimeoutSeconds > int(limit/time.Second) {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("solver_timeout_seconds exceeds the maximum of %d", int(limit/time.Second)))
			return
		}
		timeout = time.Duration(req.SolverTimeoutSeconds) * time.Second
	}

	if req.Export && h.Exporter == nil {
		writeError(w, r, http.StatusBadRequest, "export is not configured")
		return
	}

	ctx, runID := obs.WithRequestID(r.Context())
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	plan, err := services.PlanTour(ctx, services.PlanTourRequest{Name: name, Comment: req.Comment}, h.Source, h.Cache, h.Solver)
	if err != nil {
		log.Printf("plan tour failed: req_id=%s err=%v", runID, err)
		status := statusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
		writeError(w, r, status, msg)
		return
	}

	if req.Export {
		if err := h.Exporter.Export(ctx, plan.Route, plan.Points); err != nil {
			log.Printf("export route failed: req_id=%s err=%v", runID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	if format == "geojson" {
		fc, err := export.RouteFeatures(plan.Route, plan.Points)
		if err != nil {
			log.Printf("geojson failed: req_id=%s err=%v", runID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		line, err := export.RouteLine(plan.Route, plan.Points)
		if err != nil {
			log.Printf("geojson failed: req_id=%s err=%v", runID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, dto.TourGeoJSONResponse{RunID: runID, Points: fc, Line: line})
		return
	}

	res := dto.TourResponse{
		RunID:              runID,
		Instance:           name,
		PointCount:         plan.Points.Len(),
		TotalDistanceMiles: plan.Route.TotalDistanceMiles,
		Stops:              make([]dto.TourStopResponse, 0, len(plan.Route.Indices)),
	}
	for _, idx := range plan.Route.Indices {
		p, err := plan.Points.At(idx)
		if err != nil {
			log.Printf("route index lookup failed: req_id=%s err=%v", runID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.Stops = append(res.Stops, dto.TourStopResponse{Index: idx, Name: p.Name, Lat: p.Lat, Lon: p.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// maxTimeout is the longest solver run a request may ask for. A configured
// Timeout is the ceiling, so the server write deadline sized from it holds.
func (h *TourHandler) maxTimeout() time.Duration {
	if h.Timeout > 0 && h.Timeout < maxSolverTimeout {
		return h.Timeout
	}
	return maxSolverTimeout
}

// statusFor maps pipeline errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrInvalidPoint), errors.Is(err, domain.ErrNoPoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrMalformedSolution), errors.Is(err, domain.ErrInvalidTour):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
