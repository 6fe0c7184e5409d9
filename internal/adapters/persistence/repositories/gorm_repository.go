package repositories

import (
	"context"
	"errors"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/models"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore implements Store on MySQL or Postgres through GORM
type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository                 { return &userRepository{db: s.db} }
func (s *gormStore) Loans() LoanRepository                 { return &loanRepository{db: s.db} }
func (s *gormStore) Notifications() NotificationRepository { return &notificationRepository{db: s.db} }
func (s *gormStore) Settings() SettingsRepository          { return &settingsRepository{db: s.db} }

// Ping checks the underlying connection pool
func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *gormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// upsertClause replaces every column except the primary key and created_at
func upsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// List lists all users in creation order
func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]domain.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

// UpsertByID inserts the user or replaces the existing row with the same ID
func (r *userRepository) UpsertByID(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Clauses(upsertClause()).Create(models.NewUser(user)).Error
}

// DeleteByID deletes a user by external ID
func (r *userRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// List lists all loans
func (r *loanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	var rows []models.Loan
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	loans := make([]domain.Loan, len(rows))
	for i := range rows {
		loans[i] = rows[i].ToDomain()
	}
	return loans, nil
}

// UpsertByID inserts the loan or replaces the existing row with the same ID
func (r *loanRepository) UpsertByID(ctx context.Context, loan *domain.Loan) error {
	return r.db.WithContext(ctx).Clauses(upsertClause()).Create(models.NewLoan(loan)).Error
}

// DeleteByUserID deletes every loan of a user
func (r *loanRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Loan{}).Error
}

// notificationRepository implements NotificationRepository interface
type notificationRepository struct {
	db *gorm.DB
}

// ListRecent lists the newest notifications first
func (r *notificationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Notification, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.Notification
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, len(rows))
	for i := range rows {
		notifications[i] = rows[i].ToDomain()
	}
	return notifications, nil
}

// UpsertByID inserts the notification or replaces the existing row with the same ID
func (r *notificationRepository) UpsertByID(ctx context.Context, n *domain.Notification) error {
	return r.db.WithContext(ctx).Clauses(upsertClause()).Create(models.NewNotification(n)).Error
}

// DeleteByUserID deletes every notification of a user
func (r *notificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}

// settingsRepository implements SettingsRepository interface
type settingsRepository struct {
	db *gorm.DB
}

// Get gets the settings row
func (r *settingsRepository) Get(ctx context.Context) (*domain.SystemSettings, error) {
	var row models.SystemSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", domain.SettingsKey).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettingsMissing
		}
		return nil, err
	}
	settings := row.ToDomain()
	return &settings, nil
}

// EnsureDefaults inserts the default row unless one exists
func (r *settingsRepository) EnsureDefaults(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(defaultSettingRow()).Error
}

// SetBudget upserts the budget column only
func (r *settingsRepository) SetBudget(ctx context.Context, budget float64) error {
	row := defaultSettingRow()
	row.Budget = budget
	return r.upsertColumn(ctx, row, "budget")
}

// SetRankProfit upserts the rank_profit column only
func (r *settingsRepository) SetRankProfit(ctx context.Context, rankProfit float64) error {
	row := defaultSettingRow()
	row.RankProfit = rankProfit
	return r.upsertColumn(ctx, row, "rank_profit")
}

func (r *settingsRepository) upsertColumn(ctx context.Context, row *models.SystemSetting, column string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{column}),
		}).
		Create(row).Error
}

func defaultSettingRow() *models.SystemSetting {
	defaults := domain.DefaultSettings()
	return &models.SystemSetting{
		Key:        defaults.Key,
		Budget:     defaults.Budget,
		RankProfit: defaults.RankProfit,
	}
}
