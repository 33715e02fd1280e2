// Package metric provides Prometheus metrics for SnipSync.
//
// It exposes metrics in Prometheus format for monitoring snippet
// operations, cache behavior, remote push outcomes, and storage health.
package metric
