package models

import (
	"time"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// SQL table mapping for STORE_DRIVER=mysql|postgres
// ============================================================

// User represents users table. Image columns have no size so they map to
// LONGTEXT on MySQL and TEXT on Postgres.
type User struct {
	ID                 string    `gorm:"primaryKey;size:64"`
	Phone              string    `gorm:"size:32;not null"`
	FullName           string    `gorm:"size:255;not null"`
	IDNumber           string    `gorm:"size:64;not null"`
	Balance            float64   `gorm:"not null"`
	TotalLimit         float64   `gorm:"not null"`
	Rank               string    `gorm:"size:32;not null"`
	RankProgress       float64   `gorm:"not null"`
	IsLoggedIn         bool      `gorm:"not null"`
	IsAdmin            bool      `gorm:"not null"`
	PendingUpgradeRank *string   `gorm:"size:32"`
	RankUpgradeBill    string
	Address            string
	JoinDate           string `gorm:"size:64"`
	IDFront            string
	IDBack             string
	RefZalo            string `gorm:"size:255"`
	Relationship       string `gorm:"size:255"`
	LastLoanSeq        *float64
	BankName           string    `gorm:"size:255"`
	BankAccountNumber  string    `gorm:"size:64"`
	BankAccountHolder  string    `gorm:"size:255"`
	UpdatedAt          int64     `gorm:"autoUpdateTime:false"` // client epoch ms
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
}

func (User) TableName() string {
	return "users"
}

// NewUser maps a domain user onto its row; CreatedAt is left to the database
func NewUser(u *domain.User) *User {
	return &User{
		ID:                 u.ID,
		Phone:              u.Phone,
		FullName:           u.FullName,
		IDNumber:           u.IDNumber,
		Balance:            u.Balance,
		TotalLimit:         u.TotalLimit,
		Rank:               u.Rank,
		RankProgress:       u.RankProgress,
		IsLoggedIn:         u.IsLoggedIn,
		IsAdmin:            u.IsAdmin,
		PendingUpgradeRank: u.PendingUpgradeRank,
		RankUpgradeBill:    u.RankUpgradeBill,
		Address:            u.Address,
		JoinDate:           u.JoinDate,
		IDFront:            u.IDFront,
		IDBack:             u.IDBack,
		RefZalo:            u.RefZalo,
		Relationship:       u.Relationship,
		LastLoanSeq:        u.LastLoanSeq,
		BankName:           u.BankName,
		BankAccountNumber:  u.BankAccountNumber,
		BankAccountHolder:  u.BankAccountHolder,
		UpdatedAt:          u.UpdatedAt,
	}
}

// ToDomain converts the row back to a domain user
func (u *User) ToDomain() domain.User {
	return domain.User{
		ID:                 u.ID,
		Phone:              u.Phone,
		FullName:           u.FullName,
		IDNumber:           u.IDNumber,
		Balance:            u.Balance,
		TotalLimit:         u.TotalLimit,
		Rank:               u.Rank,
		RankProgress:       u.RankProgress,
		IsLoggedIn:         u.IsLoggedIn,
		IsAdmin:            u.IsAdmin,
		PendingUpgradeRank: u.PendingUpgradeRank,
		RankUpgradeBill:    u.RankUpgradeBill,
		Address:            u.Address,
		JoinDate:           u.JoinDate,
		IDFront:            u.IDFront,
		IDBack:             u.IDBack,
		RefZalo:            u.RefZalo,
		Relationship:       u.Relationship,
		LastLoanSeq:        u.LastLoanSeq,
		BankName:           u.BankName,
		BankAccountNumber:  u.BankAccountNumber,
		BankAccountHolder:  u.BankAccountHolder,
		UpdatedAt:          u.UpdatedAt,
		CreatedAt:          u.CreatedAt,
	}
}

// Loan represents loans table
type Loan struct {
	ID              string  `gorm:"primaryKey;size:64"`
	UserID          string  `gorm:"size:64;not null;index"`
	UserName        string  `gorm:"size:255;not null"`
	Amount          float64 `gorm:"not null"`
	Date            string  `gorm:"size:64;not null"`
	CreatedAt       string  `gorm:"size:64;not null;autoCreateTime:false"` // client supplied
	Status          string  `gorm:"size:32;not null"`
	Fine            float64 `gorm:"not null"`
	BillImage       string
	Signature       string
	RejectionReason string
	UpdatedAt       int64 `gorm:"autoUpdateTime:false"` // client epoch ms
}

func (Loan) TableName() string {
	return "loans"
}

// NewLoan maps a domain loan onto its row
func NewLoan(l *domain.Loan) *Loan {
	return &Loan{
		ID:              l.ID,
		UserID:          l.UserID,
		UserName:        l.UserName,
		Amount:          l.Amount,
		Date:            l.Date,
		CreatedAt:       l.CreatedAt,
		Status:          l.Status,
		Fine:            l.Fine,
		BillImage:       l.BillImage,
		Signature:       l.Signature,
		RejectionReason: l.RejectionReason,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ToDomain converts the row back to a domain loan
func (l *Loan) ToDomain() domain.Loan {
	return domain.Loan{
		ID:              l.ID,
		UserID:          l.UserID,
		UserName:        l.UserName,
		Amount:          l.Amount,
		Date:            l.Date,
		CreatedAt:       l.CreatedAt,
		Status:          l.Status,
		Fine:            l.Fine,
		BillImage:       l.BillImage,
		Signature:       l.Signature,
		RejectionReason: l.RejectionReason,
		UpdatedAt:       l.UpdatedAt,
	}
}

// Notification represents notifications table
type Notification struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;not null;index"`
	Title     string    `gorm:"size:255;not null"`
	Message   string    `gorm:"not null"`
	Time      string    `gorm:"size:64;not null"`
	Read      bool      `gorm:"not null"`
	Type      string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NewNotification maps a domain notification onto its row
func NewNotification(n *domain.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Time:      n.Time,
		Read:      n.Read,
		Type:      n.Type,
		UpdatedAt: n.UpdatedAt,
	}
}

// ToDomain converts the row back to a domain notification
func (n *Notification) ToDomain() domain.Notification {
	return domain.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Time:      n.Time,
		Read:      n.Read,
		Type:      n.Type,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// SystemSetting represents system_settings table (single row, key "main")
type SystemSetting struct {
	Key        string  `gorm:"column:setting_key;primaryKey;size:32"`
	Budget     float64 `gorm:"not null"`
	RankProfit float64 `gorm:"not null"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// ToDomain converts the row back to domain settings
func (s *SystemSetting) ToDomain() domain.SystemSettings {
	return domain.SystemSettings{
		Key:        s.Key,
		Budget:     s.Budget,
		RankProfit: s.RankProfit,
	}
}

// AutoMigrate creates or updates the sync tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Loan{},
		&Notification{},
		&SystemSetting{},
	)
}
