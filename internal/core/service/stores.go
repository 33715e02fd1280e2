// Package service provides the snippet synchronization engine for SnipSync.
package service

import (
	"context"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// LocalStore is the durable local persistence tier.
//
// Both operations act on the entire collection as one serialized unit;
// there are no partial-key writes. Load treats malformed or absent data
// as an empty collection. The engine treats a Load or Save error as a
// degraded-but-survivable condition: the cache remains authoritative for
// the session.
type LocalStore interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, c domain.Collection) error
}

// RemoteStore is the network-backed authoritative tier.
//
// FetchAll returns domain.ErrRemoteUnavailable when the remote cannot be
// read; PushAll returns domain.ErrRemoteWriteFailed when a write does
// not land. Adapters own the translation between the canonical model and
// the remote wire representation.
type RemoteStore interface {
	FetchAll(ctx context.Context) (domain.Collection, error)
	PushAll(ctx context.Context, c domain.Collection) error
}
