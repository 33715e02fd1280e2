// Package storage implements the durable local tier of the snippet
// collection. The whole collection is persisted as a single JSON
// document inside a Badger key-value store, optionally sealed with a
// passphrase-derived key so the on-disk payload is unreadable without
// the passphrase.
package storage
