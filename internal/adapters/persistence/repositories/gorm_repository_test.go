package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingMatcher keeps every statement GORM sends so tests can inspect it
type recordingMatcher struct {
	statements []string
}

func (m *recordingMatcher) Match(expectedSQL, actualSQL string) error {
	m.statements = append(m.statements, actualSQL)
	return sqlmock.QueryMatcherRegexp.Match(expectedSQL, actualSQL)
}

func (m *recordingMatcher) last() string {
	if len(m.statements) == 0 {
		return ""
	}
	return m.statements[len(m.statements)-1]
}

func newMockGormStore(t *testing.T) (Store, sqlmock.Sqlmock, *recordingMatcher) {
	t.Helper()

	matcher := &recordingMatcher{}
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	if err != nil {
		t.Fatalf("Failed to create mock DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewGormStore(db), mock, matcher
}

func TestGormUsers_UpsertNeverOverwritesCreatedAt(t *testing.T) {
	store, mock, matcher := newMockGormStore(t)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Users().UpsertByID(context.Background(), &domain.User{
		ID: "u1", Phone: "0900", FullName: "A", IDNumber: "1", Rank: domain.DefaultRank, UpdatedAt: 1700000000000,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	stmt := matcher.last()
	assert.Contains(t, stmt, "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, stmt, "`phone`=")
	assert.Contains(t, stmt, "`updated_at`=")
	assert.NotContains(t, stmt, "`created_at`=")
	assert.NotContains(t, stmt, "`id`=")
}

func TestGormLoans_UpsertReplacesClientCreatedAt(t *testing.T) {
	store, mock, matcher := newMockGormStore(t)

	mock.ExpectExec("INSERT INTO `loans`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Loans().UpsertByID(context.Background(), &domain.Loan{
		ID: "l1", UserID: "u1", UserName: "A", Amount: 5000000, Date: "d", CreatedAt: "c", Status: "pending",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// Loan createdAt is client data and is replaced like any other field
	assert.Contains(t, matcher.last(), "`created_at`=")
}

func TestGormLoans_DeleteByUserID(t *testing.T) {
	store, mock, _ := newMockGormStore(t)

	mock.ExpectExec("DELETE FROM `loans` WHERE user_id = \\?").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.Loans().DeleteByUserID(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUsers_DeleteByID(t *testing.T) {
	store, mock, _ := newMockGormStore(t)

	mock.ExpectExec("DELETE FROM `users` WHERE id = \\?").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Users().DeleteByID(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormNotifications_ListRecent(t *testing.T) {
	store, mock, _ := newMockGormStore(t)

	newer := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "message", "time", "read", "type", "created_at", "updated_at"}).
		AddRow("n2", "u1", "Approved", "Your loan was approved", "10:00", false, "LOAN", newer, newer).
		AddRow("n1", "u1", "Welcome", "Hello", "09:00", true, "SYSTEM", older, older)

	mock.ExpectQuery("SELECT \\* FROM `notifications` ORDER BY created_at DESC LIMIT").
		WillReturnRows(rows)

	notifications, err := store.Notifications().ListRecent(context.Background(), RecentNotificationsLimit)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, notifications, 2)
	assert.Equal(t, "n2", notifications[0].ID)
	assert.Equal(t, newer, notifications[0].CreatedAt)
	assert.True(t, notifications[1].Read)
}

func TestGormSettings_Get(t *testing.T) {
	t.Run("Existing row", func(t *testing.T) {
		store, mock, _ := newMockGormStore(t)

		mock.ExpectQuery("SELECT \\* FROM `system_settings` WHERE setting_key = \\?").
			WillReturnRows(sqlmock.NewRows([]string{"setting_key", "budget", "rank_profit"}).
				AddRow("main", 45000000.0, 250.0))

		settings, err := store.Settings().Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "main", settings.Key)
		assert.Equal(t, float64(45000000), settings.Budget)
		assert.Equal(t, float64(250), settings.RankProfit)
	})

	t.Run("Missing row", func(t *testing.T) {
		store, mock, _ := newMockGormStore(t)

		mock.ExpectQuery("SELECT \\* FROM `system_settings`").
			WillReturnRows(sqlmock.NewRows([]string{"setting_key", "budget", "rank_profit"}))

		_, err := store.Settings().Get(context.Background())
		assert.ErrorIs(t, err, domain.ErrSettingsMissing)
	})
}

func TestGormSettings_SetBudgetUpdatesOnlyBudget(t *testing.T) {
	store, mock, matcher := newMockGormStore(t)

	mock.ExpectExec("INSERT INTO `system_settings`").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, store.Settings().SetBudget(context.Background(), 50000000))
	require.NoError(t, mock.ExpectationsWereMet())

	stmt := matcher.last()
	assert.Contains(t, stmt, "`budget`=")
	assert.NotContains(t, stmt, "`rank_profit`=")
}

func TestGormSettings_EnsureDefaultsKeepsExistingRow(t *testing.T) {
	store, mock, matcher := newMockGormStore(t)

	mock.ExpectExec("INSERT INTO `system_settings`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Settings().EnsureDefaults(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.NotContains(t, matcher.last(), "`budget`=VALUES")
}
