// Package httpserver provides the HTTP/HTTPS server for snipsync.
//
// This package implements the external API using stdlib net/http:
//
//   - Snippet endpoints: /v1/snippets, /v1/snippets/{id}, restore
//   - Collection endpoints: /v1/export, /v1/import
//   - Health endpoints: /health, /ready, /metrics
//
// Features:
//
//   - TLS support
//   - Middleware chain: Recover, RequestID, RateLimit, CORS, Audit
//   - Graceful shutdown with configurable timeout
//   - Prometheus metrics integration
package httpserver
