// Package httpx is the HTTP surface of the API: routing, request decoding,
// validation envelopes, and response shaping.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jcmexdev/shoply-api/internal/auth"
	authdomain "github.com/jcmexdev/shoply-api/internal/auth/domain"
	catalogdomain "github.com/jcmexdev/shoply-api/internal/catalog/domain"
	"github.com/jcmexdev/shoply-api/internal/orders"
	ordersdomain "github.com/jcmexdev/shoply-api/internal/orders/domain"
)

const serviceName = "shoply-api"
const apiVersion = "v1"

// Handler holds the services behind the HTTP surface.
type Handler struct {
	catalog   CatalogService
	orders    OrderService
	auth      AuthService
	env       string
	startedAt time.Time
}

func NewHandler(catalog CatalogService, orders OrderService, auth AuthService, env string) *Handler {
	return &Handler{
		catalog:   catalog,
		orders:    orders,
		auth:      auth,
		env:       env,
		startedAt: time.Now(),
	}
}

// Root is a tiny discovery payload on "/".
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": serviceName,
		"tip":     "API health at /api/v1/health",
		"version": apiVersion,
	})
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"service":   serviceName,
		"version":   apiVersion,
		"env":       h.env,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Seconds(),
	})
}

// NotFound is the JSON fallback for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"ok": false,
		"error": map[string]string{
			"code":    "NOT_FOUND",
			"message": "Route not found",
			"path":    r.URL.Path,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{
		OK:    false,
		Error: errorBody{Code: code, Message: message},
	})
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{
		OK:    false,
		Error: errorBody{Code: "VALIDATION_ERROR", Message: "request body failed validation", Details: fields},
	})
}

// respondError maps domain errors onto the API taxonomy. Anything unknown
// is a 500 and gets logged with its trace context.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var orderVErr *orders.ValidationError
	var authVErr *auth.ValidationError

	switch {
	case errors.As(err, &orderVErr):
		writeValidationError(w, orderVErr.Fields)
	case errors.As(err, &authVErr):
		writeValidationError(w, authVErr.Fields)
	case errors.Is(err, catalogdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, ordersdomain.ErrNotFound):
		writeError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, authdomain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error")
	}
}
