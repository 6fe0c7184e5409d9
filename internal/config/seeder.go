package config

import (
	"context"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"

	"github.com/sirupsen/logrus"
)

// Seeder handles database seeding
type Seeder struct {
	store repositories.Store
}

// NewSeeder creates a new seeder instance
func NewSeeder(store repositories.Store) *Seeder {
	return &Seeder{store: store}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	logrus.Debug("🌱 Running store seeders...")

	if err := s.seedSystemSettings(ctx); err != nil {
		return err
	}

	logrus.Debug("✅ Store seeding completed")
	return nil
}

// seedSystemSettings creates the settings singleton with default budget and
// rank profit unless it already exists
func (s *Seeder) seedSystemSettings(ctx context.Context) error {
	return s.store.Settings().EnsureDefaults(ctx)
}
