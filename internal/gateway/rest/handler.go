// Package rest exposes the recipe catalog as a JSON HTTP API.
//
// Logical outcomes (not found, invalid credentials, empty results) are
// reported as HTTP 200 with a message body; clients discriminate on the
// payload shape, not the status code. Only unexpected store or runtime
// failures produce HTTP 500.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"recipebox/internal/identity"
	"recipebox/internal/recipes"
	"recipebox/internal/server"
	"recipebox/internal/server/ratelimit"
	"recipebox/internal/storage/types"
)

// Default body size limit
const DefaultMaxBodySize = 1 << 20 // 1MB

// Default request timeout
const DefaultRequestTimeout = 30 * time.Second

type Handler struct {
	catalog recipes.Service
	auth    identity.Service
	decoder *schema.Decoder

	authLimiter ratelimit.Limiter
}

func NewHandler(catalog recipes.Service, auth identity.Service) *Handler {
	if catalog == nil {
		panic("catalog service cannot be nil")
	}
	if auth == nil {
		panic("auth service cannot be nil")
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		catalog: catalog,
		auth:    auth,
		decoder: decoder,
	}
}

// SetAuthRateLimiter installs a stricter limiter for the register and login
// endpoints. A nil limiter disables the extra budget.
func (h *Handler) SetAuthRateLimiter(l ratelimit.Limiter) {
	h.authLimiter = l
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Auth operations
	mux.HandleFunc("POST /recipes/auth/register", withTimeout(maxBodySize(h.authLimited(h.handleRegister), DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("POST /recipes/auth/login", withTimeout(maxBodySize(h.authLimited(h.handleLogin), DefaultMaxBodySize), DefaultRequestTimeout))

	// Catalog views
	mux.HandleFunc("GET /recipes/search", withTimeout(h.handleSearch, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/category/{category}", withTimeout(h.handleByCategory, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/favorites", withTimeout(h.handleFavorites, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/trending", withTimeout(h.handleTrending, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/count", withTimeout(h.handleCount, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/random", withTimeout(h.handleRandom, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes", withTimeout(h.handleList, DefaultRequestTimeout))
	mux.HandleFunc("GET /recipes/{id}", withTimeout(h.handleGet, DefaultRequestTimeout))

	// Catalog mutations
	mux.HandleFunc("POST /recipes", withTimeout(maxBodySize(h.handleCreate, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("POST /recipes/{id}/favorite", withTimeout(h.handleFavorite, DefaultRequestTimeout))
	mux.HandleFunc("DELETE /recipes/{id}/favorite", withTimeout(h.handleUnfavorite, DefaultRequestTimeout))
	mux.HandleFunc("POST /recipes/{id}/like", withTimeout(h.handleLike, DefaultRequestTimeout))
	mux.HandleFunc("POST /recipes/{id}/unlike", withTimeout(h.handleUnlike, DefaultRequestTimeout))
	mux.HandleFunc("PUT /recipes/{id}/tags", withTimeout(maxBodySize(h.handleReplaceTags, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("PUT /recipes/{id}", withTimeout(maxBodySize(h.handleUpdate, DefaultMaxBodySize), DefaultRequestTimeout))
	mux.HandleFunc("DELETE /recipes/{id}", withTimeout(h.handleDelete, DefaultRequestTimeout))

	// Health check (no auth, minimal timeout)
	mux.HandleFunc("GET /health", withTimeout(h.handleHealth, 5*time.Second))

	// Prometheus scrape endpoint
	mux.Handle("GET /metrics", server.MetricsHandler())
}

// Response shapes

type messageResponse struct {
	Message string `json:"message"`
}

type recipeResponse struct {
	Message string        `json:"message"`
	Recipe  *types.Recipe `json:"recipe"`
}

type deleteResponse struct {
	Message string        `json:"message"`
	Deleted *types.Recipe `json:"deleted"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type serverErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// writeMessage reports a logical outcome. Always HTTP 200.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// writeServerError reports an unexpected store or runtime failure.
func writeServerError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
		"request_id", server.GetRequestID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, serverErrorResponse{
		Message: "Server error",
		Error:   err.Error(),
	})
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// withTimeout wraps a handler with a context timeout
func withTimeout(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

// authLimited applies the stricter auth budget when one is configured.
func (h *Handler) authLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.authLimiter != nil && !h.authLimiter.Allow(ratelimit.GetClientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeJSON(w, http.StatusTooManyRequests, messageResponse{Message: "Too many requests"})
			return
		}
		next(w, r)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
