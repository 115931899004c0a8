package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// Check probes one backing dependency (database, cache).
type Check func(ctx context.Context) error

// HealthHandler reports liveness plus the state of each registered dependency.
// Any failing check turns the response into 503.
type HealthHandler struct {
	Checks map[string]Check
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	res := map[string]any{"status": "ok"}
	if len(names) > 0 {
		checks := make(map[string]string, len(names))
		for _, name := range names {
			if err := h.Checks[name](ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				res["status"] = "degraded"
				continue
			}
			checks[name] = "ok"
		}
		res["checks"] = checks
	}

	writeJSON(w, r, status, res)
}
