package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"tour-route-service/internal/api/dto"
	"tour-route-service/internal/domain"
	"tour-route-service/internal/matrix"
	"tour-route-service/internal/ports"
	"tour-route-service/internal/services"
)

// PointHandler exposes read-only point endpoints.
type PointHandler struct {
	Source ports.PointSource
	Cache  ports.MatrixCache
}

func (h *PointHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ps, ok := h.load(w, r)
	if !ok {
		return
	}

	res := dto.ListPointsResponse{Points: make([]dto.PointResponse, 0, ps.Len())}
	for i, p := range ps.Points() {
		res.Points = append(res.Points, dto.PointResponse{Index: i, Name: p.Name, Lat: p.Lat, Lon: p.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns one point by name. Sources with an indexed lookup answer
// directly; others are listed and searched.
func (h *PointHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimSpace(r.PathValue("name"))

	if lookup, ok := h.Source.(ports.PointLookup); ok {
		idx, p, err := lookup.GetPoint(r.Context(), name)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, r, http.StatusNotFound, "point not found")
		case err != nil:
			log.Printf("get point failed: name=%q err=%v", name, err)
			writeError(w, r, http.StatusBadGateway, "point source unavailable")
		default:
			writeJSON(w, r, http.StatusOK, dto.PointResponse{Index: idx, Name: p.Name, Lat: p.Lat, Lon: p.Lon})
		}
		return
	}

	ps, ok := h.load(w, r)
	if !ok {
		return
	}
	idx, err := ps.IndexOf(name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "point not found")
		return
	}
	p, _ := ps.At(idx)
	writeJSON(w, r, http.StatusOK, dto.PointResponse{Index: idx, Name: p.Name, Lat: p.Lat, Lon: p.Lon})
}

// Stats summarizes each point's nearest and farthest neighbour distance.
func (h *PointHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ps, ok := h.load(w, r)
	if !ok {
		return
	}

	dm, err := services.LoadOrBuildMatrix(r.Context(), ps, h.Cache)
	if err != nil {
		log.Printf("build matrix failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.PointStatsResponse{
		Count:    ps.Len(),
		Nearest:  summary(matrix.Summarize(dm.NearestDistances())),
		Farthest: summary(matrix.Summarize(dm.FarthestDistances())),
	})
}

func (h *PointHandler) load(w http.ResponseWriter, r *http.Request) (*domain.PointSet, bool) {
	points, err := h.Source.ListPoints(r.Context())
	if err != nil {
		log.Printf("list points failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "point source unavailable")
		return nil, false
	}

	ps, err := domain.PointSetFromPoints(points)
	if err != nil {
		writeError(w, r, statusFor(err), err.Error())
		return nil, false
	}
	return ps, true
}

func summary(s matrix.Summary) dto.DistanceSummary {
	return dto.DistanceSummary{Min: s.Min, Max: s.Max, Mean: s.Mean}
}
