package services

import (
	"context"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
)

// StoreProvider hands out the connected store, or an error wrapping
// domain.ErrNotConnected while the connection is down
type StoreProvider interface {
	Store() (repositories.Store, error)
}

// ConnectionManager is a StoreProvider that can (re)try connecting
type ConnectionManager interface {
	StoreProvider
	EnsureConnected(ctx context.Context) error
}
