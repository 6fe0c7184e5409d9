package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/ngondo96v1/NDV26V/internal/adapters/events"
	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSeededStore(t *testing.T) repositories.Store {
	t.Helper()
	store := repositories.NewMemoryStore()
	require.NoError(t, store.Settings().EnsureDefaults(context.Background()))
	return store
}

func TestSnapshot_EmptyStore(t *testing.T) {
	svc := NewSyncService(staticProvider{store: newSeededStore(t)}, nil)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, snapshot.Users)
	assert.Empty(t, snapshot.Users)
	assert.NotNil(t, snapshot.Loans)
	assert.NotNil(t, snapshot.Notifications)
	assert.Equal(t, float64(domain.DefaultBudget), snapshot.Budget)
	assert.Equal(t, float64(domain.DefaultRankProfit), snapshot.RankProfit)
}

func TestSnapshot_DefaultsWhenSettingsMissing(t *testing.T) {
	svc := NewSyncService(staticProvider{store: repositories.NewMemoryStore()}, nil)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(domain.DefaultBudget), snapshot.Budget)
}

func TestSnapshot_ZeroBudgetIsReturnedAsIs(t *testing.T) {
	store := newSeededStore(t)
	require.NoError(t, store.Settings().SetBudget(context.Background(), 0))
	svc := NewSyncService(staticProvider{store: store}, nil)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, snapshot.Budget)
}

func TestSnapshot_NotificationsCappedNewestFirst(t *testing.T) {
	store := newSeededStore(t)
	svc := NewSyncService(staticProvider{store: store}, nil)

	batch := make([]domain.Notification, 0, 250)
	for i := 1; i <= 250; i++ {
		batch = append(batch, testNotification(fmt.Sprintf("n%03d", i), "u1"))
	}
	require.NoError(t, svc.SyncNotifications(context.Background(), batch))

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Notifications, repositories.RecentNotificationsLimit)
	assert.Equal(t, "n250", snapshot.Notifications[0].ID)
	assert.Equal(t, "n051", snapshot.Notifications[199].ID)
}

func TestSnapshot_StoreErrors(t *testing.T) {
	t.Run("Not connected", func(t *testing.T) {
		svc := NewSyncService(staticProvider{err: domain.ErrNotConnected}, nil)
		_, err := svc.Snapshot(context.Background())
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("Settings read fails", func(t *testing.T) {
		store := &failingStore{Store: newSeededStore(t), failSettingsGet: true}
		svc := NewSyncService(staticProvider{store: store}, nil)
		_, err := svc.Snapshot(context.Background())
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestSyncUsers_IdempotentAndFullReplace(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	svc := NewSyncService(staticProvider{store: store}, nil)

	u := testUser("u1")
	u.Balance = 2000000
	u.Address = "Ha Noi"
	require.NoError(t, svc.SyncUsers(ctx, []domain.User{u}))
	require.NoError(t, svc.SyncUsers(ctx, []domain.User{u}))

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.DefaultRank, users[0].Rank)
	assert.NotZero(t, users[0].UpdatedAt)

	replacement := testUser("u1")
	require.NoError(t, svc.SyncUsers(ctx, []domain.User{replacement}))

	users, err = store.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Zero(t, users[0].Balance)
	assert.Empty(t, users[0].Address)
}

func TestSyncUsers_EmptyBatch(t *testing.T) {
	pub := &MockPublisher{}
	svc := NewSyncService(staticProvider{store: newSeededStore(t)}, pub)

	require.NoError(t, svc.SyncUsers(context.Background(), []domain.User{}))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSync_EmptyBatchWhileStoreDown(t *testing.T) {
	ctx := context.Background()
	svc := NewSyncService(staticProvider{err: domain.ErrNotConnected}, nil)

	assert.NoError(t, svc.SyncUsers(ctx, []domain.User{}))
	assert.NoError(t, svc.SyncLoans(ctx, []domain.Loan{}))
	assert.NoError(t, svc.SyncNotifications(ctx, []domain.Notification{}))
	assert.ErrorIs(t, svc.SyncUsers(ctx, []domain.User{testUser("u1")}), domain.ErrNotConnected)
}

func TestSyncUsers_InvalidBatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	svc := NewSyncService(staticProvider{store: store}, nil)

	bad := testUser("u2")
	bad.Phone = ""
	err := svc.SyncUsers(ctx, []domain.User{testUser("u1"), bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSyncUsers_MidBatchFailureKeepsEarlierWrites(t *testing.T) {
	ctx := context.Background()
	base := newSeededStore(t)
	pub := &MockPublisher{}
	svc := NewSyncService(staticProvider{store: &failingStore{Store: base, failUserID: "u2"}}, pub)

	err := svc.SyncUsers(ctx, []domain.User{testUser("u1"), testUser("u2"), testUser("u3")})
	require.Error(t, err)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)

	users, err := base.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSyncLoans_NoReferentialCheck(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	svc := NewSyncService(staticProvider{store: store}, nil)

	require.NoError(t, svc.SyncLoans(ctx, []domain.Loan{testLoan("l1", "ghost")}))

	loans, err := store.Loans().List(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "ghost", loans[0].UserID)
}

func TestSyncLoans_PublishesIDs(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e events.SyncEvent) bool {
		return e.Type == events.LoansSynced && assert.ObjectsAreEqual([]string{"l1", "l2"}, e.IDs) && !e.OccurredAt.IsZero()
	})).Return(nil).Once()

	svc := NewSyncService(staticProvider{store: newSeededStore(t)}, pub)
	require.NoError(t, svc.SyncLoans(context.Background(), []domain.Loan{testLoan("l1", "u1"), testLoan("l2", "u1")}))

	pub.AssertExpectations(t)
}

func TestSyncNotifications_PublishFailureIsNotAnError(t *testing.T) {
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(errStoreDown)

	svc := NewSyncService(staticProvider{store: newSeededStore(t)}, pub)
	assert.NoError(t, svc.SyncNotifications(context.Background(), []domain.Notification{testNotification("n1", "u1")}))
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestDeleteUser_CascadesOnlyThatUser(t *testing.T) {
	ctx := context.Background()
	store := newSeededStore(t)
	pub := &MockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil)
	svc := NewSyncService(staticProvider{store: store}, pub)

	require.NoError(t, svc.SyncUsers(ctx, []domain.User{testUser("u1"), testUser("u2")}))
	require.NoError(t, svc.SyncLoans(ctx, []domain.Loan{testLoan("l1", "u1"), testLoan("l2", "u2")}))
	require.NoError(t, svc.SyncNotifications(ctx, []domain.Notification{testNotification("n1", "u1"), testNotification("n2", "u2")}))

	require.NoError(t, svc.DeleteUser(ctx, "u1"))

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, "u2", snapshot.Users[0].ID)
	require.Len(t, snapshot.Loans, 1)
	assert.Equal(t, "l2", snapshot.Loans[0].ID)
	require.Len(t, snapshot.Notifications, 1)
	assert.Equal(t, "n2", snapshot.Notifications[0].ID)

	pub.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.SyncEvent) bool {
		return e.Type == events.UserDeleted && e.UserID == "u1"
	}))
}

func TestDeleteUser_UnknownIDSucceeds(t *testing.T) {
	svc := NewSyncService(staticProvider{store: newSeededStore(t)}, nil)
	assert.NoError(t, svc.DeleteUser(context.Background(), "nobody"))
}

func TestDeleteUser_PartialFailure(t *testing.T) {
	ctx := context.Background()
	base := newSeededStore(t)
	svc := NewSyncService(staticProvider{store: &failingStore{Store: base, failLoanDelete: true}}, nil)

	require.NoError(t, base.Users().UpsertByID(ctx, &domain.User{ID: "u1"}))
	require.NoError(t, base.Notifications().UpsertByID(ctx, &domain.Notification{ID: "n1", UserID: "u1"}))

	err := svc.DeleteUser(ctx, "u1")
	assert.ErrorIs(t, err, errStoreDown)

	// The other deletes still ran
	users, err := base.Users().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	notifications, err := base.Notifications().ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}
