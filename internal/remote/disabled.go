package remote

import (
	"context"

	"github.com/yndnr/snipsync-go/internal/core/domain"
)

// Disabled is a remote store stand-in used when no remote URL is
// configured. Reads report the remote as unavailable so the engine
// falls back to the local store; pushes are accepted and discarded.
type Disabled struct{}

// NewDisabled creates a Disabled remote store.
func NewDisabled() *Disabled {
	return &Disabled{}
}

// FetchAll always reports the remote as unavailable.
func (d *Disabled) FetchAll(_ context.Context) (domain.Collection, error) {
	return nil, domain.ErrRemoteUnavailable.WithDetails("remote store disabled")
}

// PushAll accepts and discards the collection.
func (d *Disabled) PushAll(_ context.Context, _ domain.Collection) error {
	return nil
}
