package domain

import "time"

// Rank assigned to users that have not been upgraded yet
const DefaultRank = "standard"

// User represents a borrower profile synced from the client
type User struct {
	ID                 string   `json:"id" bson:"id" validate:"required"`
	Phone              string   `json:"phone" bson:"phone" validate:"required"`
	FullName           string   `json:"fullName" bson:"fullName" validate:"required"`
	IDNumber           string   `json:"idNumber" bson:"idNumber" validate:"required"`
	Balance            float64  `json:"balance" bson:"balance"`
	TotalLimit         float64  `json:"totalLimit" bson:"totalLimit"`
	Rank               string   `json:"rank" bson:"rank"`
	RankProgress       float64  `json:"rankProgress" bson:"rankProgress"`
	IsLoggedIn         bool     `json:"isLoggedIn" bson:"isLoggedIn"`
	IsAdmin            bool     `json:"isAdmin" bson:"isAdmin"`
	PendingUpgradeRank *string  `json:"pendingUpgradeRank" bson:"pendingUpgradeRank"`
	RankUpgradeBill    string   `json:"rankUpgradeBill,omitempty" bson:"rankUpgradeBill"`
	Address            string   `json:"address,omitempty" bson:"address"`
	JoinDate           string   `json:"joinDate,omitempty" bson:"joinDate"`
	IDFront            string   `json:"idFront,omitempty" bson:"idFront"`
	IDBack             string   `json:"idBack,omitempty" bson:"idBack"`
	RefZalo            string   `json:"refZalo,omitempty" bson:"refZalo"`
	Relationship       string   `json:"relationship,omitempty" bson:"relationship"`
	LastLoanSeq        *float64 `json:"lastLoanSeq,omitempty" bson:"lastLoanSeq"`
	BankName           string   `json:"bankName,omitempty" bson:"bankName"`
	BankAccountNumber  string   `json:"bankAccountNumber,omitempty" bson:"bankAccountNumber"`
	BankAccountHolder  string   `json:"bankAccountHolder,omitempty" bson:"bankAccountHolder"`
	UpdatedAt          int64    `json:"updatedAt" bson:"updatedAt"` // epoch ms

	// Server managed, set on first insert only
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// ApplyDefaults fills schema defaults the client left empty
func (u *User) ApplyDefaults(now time.Time) {
	if u.Rank == "" {
		u.Rank = DefaultRank
	}
	if u.UpdatedAt == 0 {
		u.UpdatedAt = now.UnixMilli()
	}
}

// Loan represents a lending transaction. Status is an open set
// (pending, approved, rejected, repaid, ...) owned by the client.
type Loan struct {
	ID              string  `json:"id" bson:"id" validate:"required"`
	UserID          string  `json:"userId" bson:"userId" validate:"required"`
	UserName        string  `json:"userName" bson:"userName" validate:"required"`
	Amount          float64 `json:"amount" bson:"amount"`
	Date            string  `json:"date" bson:"date" validate:"required"`
	CreatedAt       string  `json:"createdAt" bson:"createdAt" validate:"required"`
	Status          string  `json:"status" bson:"status" validate:"required"`
	Fine            float64 `json:"fine" bson:"fine"`
	BillImage       string  `json:"billImage,omitempty" bson:"billImage"`
	Signature       string  `json:"signature,omitempty" bson:"signature"`
	RejectionReason string  `json:"rejectionReason,omitempty" bson:"rejectionReason"`
	UpdatedAt       int64   `json:"updatedAt" bson:"updatedAt"` // epoch ms
}

// ApplyDefaults fills schema defaults the client left empty
func (l *Loan) ApplyDefaults(now time.Time) {
	if l.UpdatedAt == 0 {
		l.UpdatedAt = now.UnixMilli()
	}
}

// Notification represents a message addressed to a user
type Notification struct {
	ID      string `json:"id" bson:"id" validate:"required"`
	UserID  string `json:"userId" bson:"userId" validate:"required"`
	Title   string `json:"title" bson:"title" validate:"required"`
	Message string `json:"message" bson:"message" validate:"required"`
	Time    string `json:"time" bson:"time" validate:"required"`
	Read    bool   `json:"read" bson:"read"`
	Type    string `json:"type" bson:"type" validate:"required"`

	// Server managed. CreatedAt is set on first insert and orders the feed.
	CreatedAt time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ApplyDefaults stamps the write time
func (n *Notification) ApplyDefaults(now time.Time) {
	n.UpdatedAt = now
}

// Settings singleton
const (
	SettingsKey       = "main"
	DefaultBudget     = 30000000
	DefaultRankProfit = 0
)

// SystemSettings is the single global settings record. Exactly one record
// keyed by SettingsKey exists once the store has been initialized.
type SystemSettings struct {
	Key        string  `json:"key" bson:"key"`
	Budget     float64 `json:"budget" bson:"budget"`
	RankProfit float64 `json:"rankProfit" bson:"rankProfit"`
}

// DefaultSettings returns the settings a fresh store starts with
func DefaultSettings() SystemSettings {
	return SystemSettings{
		Key:        SettingsKey,
		Budget:     DefaultBudget,
		RankProfit: DefaultRankProfit,
	}
}

// Snapshot is the aggregate state returned to the client
type Snapshot struct {
	Users         []User         `json:"users"`
	Loans         []Loan         `json:"loans"`
	Notifications []Notification `json:"notifications"`
	Budget        float64        `json:"budget"`
	RankProfit    float64        `json:"rankProfit"`
}
