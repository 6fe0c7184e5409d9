package services

import (
	"context"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
)

// SettingsService manages the system settings singleton
type SettingsService struct {
	stores    StoreProvider
	publisher events.Publisher
	now       func() time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(stores StoreProvider, publisher events.Publisher) *SettingsService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SettingsService{
		stores:    stores,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetBudget sets the global budget, leaving rank profit untouched
func (s *SettingsService) SetBudget(ctx context.Context, budget float64) error {
	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	if err := store.Settings().SetBudget(ctx, budget); err != nil {
		return err
	}

	s.publish(ctx, "budget", budget)
	return nil
}

// SetRankProfit sets the accumulated rank profit, leaving budget untouched
func (s *SettingsService) SetRankProfit(ctx context.Context, rankProfit float64) error {
	store, err := s.stores.Store()
	if err != nil {
		return err
	}

	if err := store.Settings().SetRankProfit(ctx, rankProfit); err != nil {
		return err
	}

	s.publish(ctx, "rankProfit", rankProfit)
	return nil
}

func (s *SettingsService) publish(ctx context.Context, field string, value float64) {
	publishEvent(ctx, s.publisher, events.SyncEvent{
		Type:  events.SettingsUpdated,
		Field: field,
		Value: &value,
	}, s.now())
}
