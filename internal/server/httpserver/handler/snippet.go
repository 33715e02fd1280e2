// Package handler provides HTTP request handlers for snipsync.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// handleListSnippets handles GET /v1/snippets.
func (h *Handler) handleListSnippets(w http.ResponseWriter, r *http.Request) {
	collection, err := h.engine.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	items := make([]SnippetResponse, 0, len(collection))
	for _, s := range collection {
		items = append(items, newSnippetResponse(s, false))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	h.writeJSON(w, r, http.StatusOK, ListSnippetsResponse{
		Items: items,
		Total: len(items),
	})
}

// handleGetSnippet handles GET /v1/snippets/{id}.
func (h *Handler) handleGetSnippet(w http.ResponseWriter, r *http.Request) {
	s, err := h.engine.GetSnippet(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newSnippetResponse(s, true))
}

// handleSaveSnippet handles PUT /v1/snippets/{id}.
func (h *Handler) handleSaveSnippet(w http.ResponseWriter, r *http.Request) {
	var req SaveSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMalformedData.Code, "invalid request body", nil)
		return
	}

	v, err := h.engine.SaveSnippet(r.Context(), r.PathValue("id"), req.Content, req.Author)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newVersionResponse(v))
}

// handleCreateSnippet handles POST /v1/snippets. A fresh snippet ID is
// minted server-side; the body carries only content and author.
func (h *Handler) handleCreateSnippet(w http.ResponseWriter, r *http.Request) {
	var req SaveSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMalformedData.Code, "invalid request body", nil)
		return
	}

	id, err := domain.GenerateSnippetID()
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	v, err := h.engine.SaveSnippet(r.Context(), id, req.Content, req.Author)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, CreateSnippetResponse{
		ID:      id,
		Version: newVersionResponse(v),
	})
}

// handleDeleteSnippet handles DELETE /v1/snippets/{id}.
func (h *Handler) handleDeleteSnippet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.engine.DeleteSnippet(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, DeleteSnippetResponse{ID: id, Deleted: true})
}

// handleListVersions handles GET /v1/snippets/{id}/versions.
func (h *Handler) handleListVersions(w http.ResponseWriter, r *http.Request) {
	s, err := h.engine.GetSnippet(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	versions := make([]VersionResponse, len(s.Versions))
	for i, v := range s.Versions {
		versions[i] = newVersionResponse(v)
	}

	h.writeJSON(w, r, http.StatusOK, ListVersionsResponse{
		SnippetID: s.ID,
		Versions:  versions,
	})
}

// handleRestoreVersion handles POST /v1/snippets/{id}/restore.
func (h *Handler) handleRestoreVersion(w http.ResponseWriter, r *http.Request) {
	var req RestoreVersionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMalformedData.Code, "invalid request body", nil)
		return
	}

	v, err := h.engine.RestoreVersion(r.Context(), r.PathValue("id"), req.VersionIndex)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newVersionResponse(v))
}

// handleExport handles GET /v1/export. The body is the raw collection
// JSON, suitable for re-import.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.engine.ExportJSON(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="snippets.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleImport handles POST /v1/import.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, domain.ErrMalformedData.Code, "failed to read request body", nil)
		return
	}

	incoming, err := domain.DecodeCollectionJSON(body)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	if err := h.engine.ImportMerge(r.Context(), incoming); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, ImportResponse{Imported: len(incoming)})
}
