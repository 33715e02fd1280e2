// Package handler provides HTTP request handlers for snipsync.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yndnr/snipsync-go/internal/core/domain"
	"github.com/yndnr/snipsync-go/internal/core/service"
)

// Handler is the main HTTP handler that routes requests to appropriate handlers.
type Handler struct {
	engine *service.Engine
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates a new Handler backed by the given engine.
func New(engine *service.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		engine: engine,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all HTTP routes.
func (h *Handler) registerRoutes() {
	// Health endpoints
	h.mux.HandleFunc("GET /health", h.handleHealth)
	h.mux.HandleFunc("GET /ready", h.handleReady)

	// Snippet endpoints
	h.mux.HandleFunc("GET /v1/snippets", h.handleListSnippets)
	h.mux.HandleFunc("POST /v1/snippets", h.handleCreateSnippet)
	h.mux.HandleFunc("GET /v1/snippets/{id}", h.handleGetSnippet)
	h.mux.HandleFunc("PUT /v1/snippets/{id}", h.handleSaveSnippet)
	h.mux.HandleFunc("DELETE /v1/snippets/{id}", h.handleDeleteSnippet)
	h.mux.HandleFunc("GET /v1/snippets/{id}/versions", h.handleListVersions)
	h.mux.HandleFunc("POST /v1/snippets/{id}/restore", h.handleRestoreVersion)

	// Collection endpoints
	h.mux.HandleFunc("GET /v1/export", h.handleExport)
	h.mux.HandleFunc("POST /v1/import", h.handleImport)
}

// writeJSON writes a JSON response with standard envelope format.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	requestID := getRequestID(r)
	response := NewResponse(requestID, data)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error response with standard envelope format.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details any) {
	requestID := getRequestID(r)
	response := NewErrorResponse(requestID, code, message, details)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Error-Code", code)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// getRequestID extracts request ID from the header set by middleware.
func getRequestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}

// handleServiceError converts engine errors to HTTP responses.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsDomainError(err, "") {
		code := domain.GetErrorCode(err)
		status := errorCodeToHTTPStatus(code)
		h.writeError(w, r, status, code, err.Error(), nil)
		return
	}

	// Generic internal error
	h.logger.Error("internal error", "error", err)
	h.writeError(w, r, http.StatusInternalServerError, "SS-SYS-5000", "internal server error", nil)
}

// errorCodeToHTTPStatus maps error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch {
	case strings.HasSuffix(code, "-4040"), strings.HasSuffix(code, "-4041"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "-4000"), strings.HasSuffix(code, "-4001"):
		return http.StatusBadRequest
	case strings.HasSuffix(code, "-5030"), strings.HasSuffix(code, "-5031"):
		return http.StatusBadGateway
	case strings.HasPrefix(code, "SS-ARG-"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "SS-SYS-5"):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
