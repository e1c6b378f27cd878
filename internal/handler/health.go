package handler

import (
	"log/slog"
	"net/http"

	"github.com/mishagordeev/workouts/internal/storage"
)

type HealthHandler struct {
	store storage.Store
}

func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// Healthz reports whether the document store is reachable
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	err := h.store.Ping(r.Context())
	if err != nil {
		slog.Error("health check failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
