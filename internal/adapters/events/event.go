// Package events publishes change notifications after successful sync writes.
package events

import (
	"context"
	"time"
)

// Event types, also used as routing keys
const (
	UsersSynced         = "users.synced"
	LoansSynced         = "loans.synced"
	NotificationsSynced = "notifications.synced"
	UserDeleted         = "user.deleted"
	SettingsUpdated     = "settings.updated"
)

// SyncEvent describes one committed sync operation. It carries identifiers
// only; consumers that need the records read them from the store.
type SyncEvent struct {
	Type       string    `json:"type"`
	IDs        []string  `json:"ids,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Field      string    `json:"field,omitempty"`
	Value      *float64  `json:"value,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers sync events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, event SyncEvent) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SyncEvent) error { return nil }
func (NopPublisher) Close() error                             { return nil }
