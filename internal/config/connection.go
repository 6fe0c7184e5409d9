package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"github.com/sirupsen/logrus"
)

// connectTimeout bounds one dial + seed attempt
const connectTimeout = 15 * time.Second

// StoreOpener dials a backend; OpenStore is the production implementation
type StoreOpener func(ctx context.Context, cfg *Config) (repositories.Store, error)

// ConnectionStatus is the payload of /api/db-status
type ConnectionStatus struct {
	Connected   bool    `json:"connected"`
	Error       *string `json:"error"`
	URIProvided bool    `json:"uri_provided"`
	Timestamp   string  `json:"timestamp"`
}

// Connection is the process-wide store handle. It connects lazily on the
// first EnsureConnected call and, once connected, is never re-established.
type Connection struct {
	cfg  *Config
	open StoreOpener
	now  func() time.Time

	mu      sync.Mutex
	store   repositories.Store
	lastErr error
}

// ConnectionOption customizes a Connection
type ConnectionOption func(*Connection)

// WithStoreOpener replaces the backend dialer
func WithStoreOpener(open StoreOpener) ConnectionOption {
	return func(c *Connection) { c.open = open }
}

// NewConnection creates an unconnected handle for the configured store
func NewConnection(cfg *Config, opts ...ConnectionOption) *Connection {
	c := &Connection{
		cfg:  cfg,
		open: OpenStore,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureConnected connects and seeds the settings singleton on first use.
// A failure is recorded and returned; callers serving requests carry on and
// let individual store operations fail.
func (c *Connection) EnsureConnected(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return nil
	}

	// A cancelled request must not abort the shared connection attempt
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
	defer cancel()

	log := logrus.WithField("driver", c.cfg.Store.Driver)
	log.Info("🔌 Attempting to connect to store...")

	store, err := c.open(ctx, c.cfg)
	if err != nil {
		c.lastErr = err
		log.WithError(err).Error("❌ Store connection failed")
		return err
	}

	if err := NewSeeder(store).Run(ctx); err != nil {
		_ = store.Close(context.Background())
		c.lastErr = fmt.Errorf("failed to seed system settings: %w", err)
		log.WithError(err).Error("❌ Store connection failed")
		return c.lastErr
	}

	c.store = store
	c.lastErr = nil
	log.Info("✅ Store connected")
	return nil
}

// Store returns the connected repositories or ErrNotConnected
func (c *Connection) Store() (repositories.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		return c.store, nil
	}
	if c.lastErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotConnected, c.lastErr)
	}
	return nil, domain.ErrNotConnected
}

// Status reports the connection state
func (c *Connection) Status() ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := ConnectionStatus{
		Connected:   c.store != nil,
		URIProvided: c.cfg.Store.URIProvided(),
		Timestamp:   c.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if c.lastErr != nil {
		msg := c.lastErr.Error()
		status.Error = &msg
	}
	return status
}

// Close releases the store, if any
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store == nil {
		return nil
	}
	err := c.store.Close(ctx)
	c.store = nil
	return err
}
