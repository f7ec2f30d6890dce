// Package middleware provides HTTP middleware for the quest API.
package middleware

import (
	"net/http"
	"slices"

	"github.com/ashureev/arctic-quest/internal/identity"
	"github.com/rs/cors"
)

// CORS returns middleware that handles CORS headers and preflight requests.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	// Credentials are only allowed for explicit origins; a wildcard echoed
	// back with Allow-Credentials would let any site drive the API.
	wildcard := slices.Contains(allowedOrigins, "*")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", identity.SessionHeaderName},
		AllowCredentials: !wildcard,
	})
	return c.Handler
}
