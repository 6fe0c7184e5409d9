package services

import (
	"context"
	"errors"

	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

var errStoreDown = errors.New("connection reset by peer")

// staticProvider always hands out the same store, or the same error
type staticProvider struct {
	store repositories.Store
	err   error
}

func (p staticProvider) Store() (repositories.Store, error) {
	return p.store, p.err
}

// fakeConnection is a ConnectionManager whose connect outcome is scripted
type fakeConnection struct {
	connectErr error
	store      repositories.Store
	attempts   int
}

func (c *fakeConnection) EnsureConnected(ctx context.Context) error {
	c.attempts++
	return c.connectErr
}

func (c *fakeConnection) Store() (repositories.Store, error) {
	if c.connectErr != nil {
		return nil, domain.ErrNotConnected
	}
	return c.store, nil
}

// MockPublisher is a mock implementation of events.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.SyncEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// failingStore wraps a store and fails chosen operations
type failingStore struct {
	repositories.Store
	failUserID      string
	failLoanDelete  bool
	failSettingsGet bool
	failPing        bool
}

func (s *failingStore) Users() repositories.UserRepository {
	return failingUsers{UserRepository: s.Store.Users(), failID: s.failUserID}
}

func (s *failingStore) Loans() repositories.LoanRepository {
	return failingLoans{LoanRepository: s.Store.Loans(), failDelete: s.failLoanDelete}
}

func (s *failingStore) Settings() repositories.SettingsRepository {
	return failingSettings{SettingsRepository: s.Store.Settings(), failGet: s.failSettingsGet}
}

func (s *failingStore) Ping(ctx context.Context) error {
	if s.failPing {
		return errStoreDown
	}
	return s.Store.Ping(ctx)
}

type failingUsers struct {
	repositories.UserRepository
	failID string
}

func (r failingUsers) UpsertByID(ctx context.Context, user *domain.User) error {
	if user.ID == r.failID {
		return errStoreDown
	}
	return r.UserRepository.UpsertByID(ctx, user)
}

type failingLoans struct {
	repositories.LoanRepository
	failDelete bool
}

func (r failingLoans) DeleteByUserID(ctx context.Context, userID string) error {
	if r.failDelete {
		return errStoreDown
	}
	return r.LoanRepository.DeleteByUserID(ctx, userID)
}

type failingSettings struct {
	repositories.SettingsRepository
	failGet bool
}

func (r failingSettings) Get(ctx context.Context) (*domain.SystemSettings, error) {
	if r.failGet {
		return nil, errStoreDown
	}
	return r.SettingsRepository.Get(ctx)
}

func testUser(id string) domain.User {
	return domain.User{ID: id, Phone: "090" + id, FullName: "User " + id, IDNumber: "ID" + id}
}

func testLoan(id, userID string) domain.Loan {
	return domain.Loan{ID: id, UserID: userID, UserName: "User " + userID, Amount: 1000000, Date: "01/01/2026", CreatedAt: "01/01/2026 08:00", Status: "pending"}
}

func testNotification(id, userID string) domain.Notification {
	return domain.Notification{ID: id, UserID: userID, Title: "Title", Message: "Message", Time: "08:00", Type: "SYSTEM"}
}
