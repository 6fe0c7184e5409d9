package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"
)

// memoryStore keeps every collection in process memory.
// It backs STORE_DRIVER=memory for local development and the test suites.
type memoryStore struct {
	mu  sync.RWMutex
	now func() time.Time
	seq uint64

	users         map[string]memoryEntry[domain.User]
	loans         map[string]memoryEntry[domain.Loan]
	notifications map[string]memoryEntry[domain.Notification]
	settings      *domain.SystemSettings
}

type memoryEntry[T any] struct {
	seq    uint64 // insertion order
	record T
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() Store {
	return &memoryStore{
		now:           time.Now,
		users:         map[string]memoryEntry[domain.User]{},
		loans:         map[string]memoryEntry[domain.Loan]{},
		notifications: map[string]memoryEntry[domain.Notification]{},
	}
}

func (s *memoryStore) Users() UserRepository                 { return memoryUsers{s} }
func (s *memoryStore) Loans() LoanRepository                 { return memoryLoans{s} }
func (s *memoryStore) Notifications() NotificationRepository { return memoryNotifications{s} }
func (s *memoryStore) Settings() SettingsRepository          { return memorySettings{s} }

func (s *memoryStore) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *memoryStore) Close(ctx context.Context) error { return nil }

func (s *memoryStore) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// sortedBySeq returns records in insertion order
func sortedBySeq[T any](m map[string]memoryEntry[T]) []T {
	entries := make([]memoryEntry[T], 0, len(m))
	for _, e := range m {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]T, len(entries))
	for i, e := range entries {
		out[i] = e.record
	}
	return out
}

// ============================================================
// Users
// ============================================================

type memoryUsers struct{ s *memoryStore }

func (r memoryUsers) List(ctx context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := sortedBySeq(r.s.users)
	for i := range users {
		users[i] = cloneUser(users[i])
	}
	return users, nil
}

func (r memoryUsers) UpsertByID(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record := cloneUser(*user)
	e, ok := r.s.users[user.ID]
	if ok {
		record.CreatedAt = e.record.CreatedAt
	} else {
		e.seq = r.s.nextSeq()
		record.CreatedAt = r.s.now()
	}
	e.record = record
	r.s.users[user.ID] = e
	return nil
}

func (r memoryUsers) DeleteByID(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	return nil
}

func cloneUser(u domain.User) domain.User {
	if u.PendingUpgradeRank != nil {
		v := *u.PendingUpgradeRank
		u.PendingUpgradeRank = &v
	}
	if u.LastLoanSeq != nil {
		v := *u.LastLoanSeq
		u.LastLoanSeq = &v
	}
	return u
}

// ============================================================
// Loans
// ============================================================

type memoryLoans struct{ s *memoryStore }

func (r memoryLoans) List(ctx context.Context) ([]domain.Loan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return sortedBySeq(r.s.loans), nil
}

func (r memoryLoans) UpsertByID(ctx context.Context, loan *domain.Loan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.loans[loan.ID]
	if !ok {
		e.seq = r.s.nextSeq()
	}
	e.record = *loan
	r.s.loans[loan.ID] = e
	return nil
}

func (r memoryLoans) DeleteByUserID(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.loans {
		if e.record.UserID == userID {
			delete(r.s.loans, id)
		}
	}
	return nil
}

// ============================================================
// Notifications
// ============================================================

type memoryNotifications struct{ s *memoryStore }

func (r memoryNotifications) ListRecent(ctx context.Context, limit int) ([]domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := make([]memoryEntry[domain.Notification], 0, len(r.s.notifications))
	for _, e := range r.s.notifications {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		ci, cj := entries[i].record.CreatedAt, entries[j].record.CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return entries[i].seq > entries[j].seq
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := make([]domain.Notification, len(entries))
	for i, e := range entries {
		out[i] = e.record
	}
	return out, nil
}

func (r memoryNotifications) UpsertByID(ctx context.Context, n *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record := *n
	e, ok := r.s.notifications[n.ID]
	if ok {
		record.CreatedAt = e.record.CreatedAt
	} else {
		e.seq = r.s.nextSeq()
		record.CreatedAt = r.s.now()
	}
	e.record = record
	r.s.notifications[n.ID] = e
	return nil
}

func (r memoryNotifications) DeleteByUserID(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.notifications {
		if e.record.UserID == userID {
			delete(r.s.notifications, id)
		}
	}
	return nil
}

// ============================================================
// Settings
// ============================================================

type memorySettings struct{ s *memoryStore }

func (r memorySettings) Get(ctx context.Context) (*domain.SystemSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.settings == nil {
		return nil, domain.ErrSettingsMissing
	}
	settings := *r.s.settings
	return &settings, nil
}

func (r memorySettings) EnsureDefaults(ctx context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.settings == nil {
		settings := domain.DefaultSettings()
		r.s.settings = &settings
	}
	return nil
}

func (r memorySettings) SetBudget(ctx context.Context, budget float64) error {
	return r.update(func(s *domain.SystemSettings) { s.Budget = budget })
}

func (r memorySettings) SetRankProfit(ctx context.Context, rankProfit float64) error {
	return r.update(func(s *domain.SystemSettings) { s.RankProfit = rankProfit })
}

func (r memorySettings) update(apply func(*domain.SystemSettings)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.settings == nil {
		settings := domain.DefaultSettings()
		r.s.settings = &settings
	}
	apply(r.s.settings)
	return nil
}
