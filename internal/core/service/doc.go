// Package service provides the snippet synchronization engine for SnipSync.
//
// The Engine orchestrates the three persistence tiers: it exclusively
// owns the in-memory cached collection, commits synchronously to the
// durable local store, and converges the remote store best-effort with
// at most one push in flight. It defines interfaces for both storage
// dependencies, allowing for dependency injection and testability.
package service
