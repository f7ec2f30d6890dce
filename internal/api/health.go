package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ashureev/arctic-quest/internal/store"
	"github.com/go-chi/chi/v5"
)

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// RegisterHealth registers the health route on r.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health pings the repository.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "error", err)
		JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
