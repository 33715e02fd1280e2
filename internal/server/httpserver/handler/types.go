// Package handler provides HTTP request handlers for snipsync.
package handler

import (
	"time"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// Response is the standard API response envelope.
// All JSON responses use this format (except /metrics which uses
// Prometheus format and /v1/export which returns the raw collection).
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
	Details   any    `json:"details,omitempty"` // Additional error details
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string, details any) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Details:   details,
	}
}

// SaveSnippetRequest is the request body for PUT /v1/snippets/{id}.
type SaveSnippetRequest struct {
	Content string `json:"content"`
	Author  string `json:"author,omitempty"`
}

// RestoreVersionRequest is the request body for POST /v1/snippets/{id}/restore.
type RestoreVersionRequest struct {
	VersionIndex int `json:"version_index"`
}

// VersionResponse represents one snippet version in API responses.
type VersionResponse struct {
	Number    int       `json:"version_number"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
}

// SnippetResponse represents a snippet in API responses.
type SnippetResponse struct {
	ID                  string            `json:"id"`
	CurrentVersionIndex int               `json:"current_version_index"`
	CurrentContent      string            `json:"current_content"`
	VersionCount        int               `json:"version_count"`
	Versions            []VersionResponse `json:"versions,omitempty"`
}

// ListSnippetsResponse is the response body for GET /v1/snippets.
type ListSnippetsResponse struct {
	Items []SnippetResponse `json:"items"`
	Total int               `json:"total"`
}

// ListVersionsResponse is the response body for GET /v1/snippets/{id}/versions.
type ListVersionsResponse struct {
	SnippetID string            `json:"snippet_id"`
	Versions  []VersionResponse `json:"versions"`
}

// CreateSnippetResponse is the response body for POST /v1/snippets.
type CreateSnippetResponse struct {
	ID      string          `json:"id"`
	Version VersionResponse `json:"version"`
}

// DeleteSnippetResponse is the response body for DELETE /v1/snippets/{id}.
type DeleteSnippetResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ImportResponse is the response body for POST /v1/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// newVersionResponse converts a domain version.
func newVersionResponse(v domain.Version) VersionResponse {
	return VersionResponse{
		Number:    v.Number,
		Content:   v.Content,
		Timestamp: v.Timestamp,
		Author:    v.Author,
	}
}

// newSnippetResponse converts a domain snippet. Versions are included
// only when withVersions is set; list responses stay compact.
func newSnippetResponse(s *domain.Snippet, withVersions bool) SnippetResponse {
	resp := SnippetResponse{
		ID:                  s.ID,
		CurrentVersionIndex: s.CurrentVersionIndex,
		VersionCount:        len(s.Versions),
	}
	if cur, ok := s.CurrentVersion(); ok {
		resp.CurrentContent = cur.Content
	}
	if withVersions {
		resp.Versions = make([]VersionResponse, len(s.Versions))
		for i, v := range s.Versions {
			resp.Versions[i] = newVersionResponse(v)
		}
	}
	return resp
}
