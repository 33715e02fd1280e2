// Package handler provides HTTP request handlers for snipsync.
//
// This package implements the HTTP API endpoints for snippet
// management, version restore, and collection import/export.
package handler
