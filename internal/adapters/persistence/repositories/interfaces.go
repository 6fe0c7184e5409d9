package repositories

import (
	"context"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"
)

// RecentNotificationsLimit caps the notification feed of the aggregate read
const RecentNotificationsLimit = 200

// UserRepository defines user repository interface
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	UpsertByID(ctx context.Context, user *domain.User) error
	DeleteByID(ctx context.Context, id string) error
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	List(ctx context.Context) ([]domain.Loan, error)
	UpsertByID(ctx context.Context, loan *domain.Loan) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	// ListRecent returns at most limit notifications, newest created first
	ListRecent(ctx context.Context, limit int) ([]domain.Notification, error)
	UpsertByID(ctx context.Context, n *domain.Notification) error
	DeleteByUserID(ctx context.Context, userID string) error
}

// SettingsRepository gives access to the system settings singleton
type SettingsRepository interface {
	// Get returns domain.ErrSettingsMissing when the singleton does not exist
	Get(ctx context.Context) (*domain.SystemSettings, error)
	// EnsureDefaults inserts the default singleton if it is absent
	EnsureDefaults(ctx context.Context) error
	SetBudget(ctx context.Context, budget float64) error
	SetRankProfit(ctx context.Context, rankProfit float64) error
}

// Store bundles the repositories of one backend
type Store interface {
	Users() UserRepository
	Loans() LoanRepository
	Notifications() NotificationRepository
	Settings() SettingsRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
