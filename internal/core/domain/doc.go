// Package domain defines the core domain models for SnipSync.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Snippet: a named unit of shareable content with its version ledger
//   - Version: one immutable recorded revision of a snippet's content
//   - Collection: the full snippet set, the unit of persistence
//   - Errors: domain-specific error definitions
//
// The version ledger is append-only with bounded retention: the oldest
// versions are dropped first once the configured cap is exceeded.
package domain
