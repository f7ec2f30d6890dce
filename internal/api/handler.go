// Package api provides HTTP handlers for the quest API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ashureev/arctic-quest/internal/assistant"
	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/ashureev/arctic-quest/internal/identity"
	"github.com/ashureev/arctic-quest/internal/store"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 4 << 10

// Handler provides common handler utilities.
type Handler struct {
	repo      store.Repository
	games     *game.Manager
	assistant *assistant.Responder
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository, games *game.Manager, responder *assistant.Responder) *Handler {
	return &Handler{
		repo:      repo,
		games:     games,
		assistant: responder,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// session returns the caller's game session, creating it on first use.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.games.GetOrCreate(userID), true
}

// pathInt parses a non-negative integer URL parameter.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		Error(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

// decodeJSON reads a small JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
