package http

import (
	"net/http"

	"car-rental-backend/internal/logger"

	"github.com/gorilla/mux"
)

type HealthHandler struct {
	store Pinger
}

func RegisterHealthRoutes(router *mux.Router, store Pinger) {
	h := &HealthHandler{store: store}
	router.HandleFunc("/health", h.Check).Methods(http.MethodGet)
}

// Check reports liveness and database reachability.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			logger.WarnContext(r.Context(), "Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
				Error:   "unavailable",
				Message: "database unreachable",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
