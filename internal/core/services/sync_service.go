package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SyncService implements the bulk pull/push contract of the client
type SyncService struct {
	stores    StoreProvider
	publisher events.Publisher
	now       func() time.Time
}

// NewSyncService creates a new sync service
func NewSyncService(stores StoreProvider, publisher events.Publisher) *SyncService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SyncService{
		stores:    stores,
		publisher: publisher,
		now:       time.Now,
	}
}

// Snapshot reads users, loans, the most recent notifications and the
// settings concurrently. Any failure fails the whole read.
func (s *SyncService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	store, err := s.stores.Store()
	if err != nil {
		return nil, err
	}

	var (
		users         []domain.User
		loans         []domain.Loan
		notifications []domain.Notification
		settings      domain.SystemSettings
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = store.Users().List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = store.Loans().List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		notifications, err = store.Notifications().ListRecent(gctx, repositories.RecentNotificationsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = currentSettings(gctx, store)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Users:         nonNil(users),
		Loans:         nonNil(loans),
		Notifications: nonNil(notifications),
		Budget:        settings.Budget,
		RankProfit:    settings.RankProfit,
	}, nil
}

// SyncUsers upserts users by id in array order. An empty batch succeeds
// without touching the store.
func (s *SyncService) SyncUsers(ctx context.Context, users []domain.User) error {
	if len(users) == 0 {
		return nil
	}

	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	ids, err := upsertSequentially(ctx, users, "user",
		func(u *domain.User) string { return u.ID },
		func(u *domain.User) { u.ApplyDefaults(s.now()) },
		store.Users().UpsertByID,
	)
	if err != nil {
		return err
	}

	s.publish(ctx, events.SyncEvent{Type: events.UsersSynced, IDs: ids})
	return nil
}

// SyncLoans upserts loans by id in array order
func (s *SyncService) SyncLoans(ctx context.Context, loans []domain.Loan) error {
	if len(loans) == 0 {
		return nil
	}

	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	ids, err := upsertSequentially(ctx, loans, "loan",
		func(l *domain.Loan) string { return l.ID },
		func(l *domain.Loan) { l.ApplyDefaults(s.now()) },
		store.Loans().UpsertByID,
	)
	if err != nil {
		return err
	}

	s.publish(ctx, events.SyncEvent{Type: events.LoansSynced, IDs: ids})
	return nil
}

// SyncNotifications upserts notifications by id in array order
func (s *SyncService) SyncNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	ids, err := upsertSequentially(ctx, notifications, "notification",
		func(n *domain.Notification) string { return n.ID },
		func(n *domain.Notification) { n.ApplyDefaults(s.now()) },
		store.Notifications().UpsertByID,
	)
	if err != nil {
		return err
	}

	s.publish(ctx, events.SyncEvent{Type: events.NotificationsSynced, IDs: ids})
	return nil
}

// DeleteUser removes a user together with its loans and notifications.
// The three deletes run concurrently without a transaction; all of them
// settle before the first error, if any, is returned.
func (s *SyncService) DeleteUser(ctx context.Context, userID string) error {
	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error { return store.Users().DeleteByID(ctx, userID) })
	g.Go(func() error { return store.Loans().DeleteByUserID(ctx, userID) })
	g.Go(func() error { return store.Notifications().DeleteByUserID(ctx, userID) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete user %q: %w", userID, err)
	}

	s.publish(ctx, events.SyncEvent{Type: events.UserDeleted, UserID: userID})
	return nil
}

// upsertSequentially validates the whole batch, then writes it element by
// element. A store error stops the loop; earlier elements stay committed.
func upsertSequentially[T any](
	ctx context.Context,
	items []T,
	kind string,
	id func(*T) string,
	applyDefaults func(*T),
	upsert func(context.Context, *T) error,
) ([]string, error) {
	if err := domain.ValidateBatch(items); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for i := range items {
		item := &items[i]
		applyDefaults(item)
		if err := upsert(ctx, item); err != nil {
			return ids, fmt.Errorf("upsert %s %q (item %d of %d): %w", kind, id(item), i+1, len(items), err)
		}
		ids = append(ids, id(item))
	}
	return ids, nil
}

// currentSettings returns the singleton, falling back to defaults when absent
func currentSettings(ctx context.Context, store repositories.Store) (domain.SystemSettings, error) {
	settings, err := store.Settings().Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsMissing) {
			return domain.DefaultSettings(), nil
		}
		return domain.SystemSettings{}, err
	}
	return *settings, nil
}

func (s *SyncService) publish(ctx context.Context, event events.SyncEvent) {
	publishEvent(ctx, s.publisher, event, s.now())
}

// publishEvent delivers an event; failures are logged and never surface
func publishEvent(ctx context.Context, publisher events.Publisher, event events.SyncEvent, now time.Time) {
	if event.Type != events.UserDeleted && event.Type != events.SettingsUpdated && len(event.IDs) == 0 {
		return
	}
	event.OccurredAt = now.UTC()

	if err := publisher.Publish(ctx, event); err != nil {
		logrus.WithError(err).WithField("event", event.Type).Warn("⚠️ Failed to publish sync event")
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
