package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names match the ones the existing deployment already holds
const (
	UsersCollection         = "users"
	LoansCollection         = "loans"
	NotificationsCollection = "notifications"
	SettingsCollection      = "systems"
)

// mongoStore implements Store on a MongoDB database
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// NewMongoStore wraps a connected database and makes sure its indexes exist
func NewMongoStore(ctx context.Context, db *mongo.Database) (Store, error) {
	s := &mongoStore{
		client: db.Client(),
		db:     db,
		now:    time.Now,
	}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *mongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		},
		LoansCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		SettingsCollection: {
			{Keys: bson.D{{Key: "key", Value: 1}}, Options: unique},
		},
	}

	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

func (s *mongoStore) Users() UserRepository {
	return &mongoUserRepository{coll: s.db.Collection(UsersCollection), now: s.now}
}

func (s *mongoStore) Loans() LoanRepository {
	return &mongoLoanRepository{coll: s.db.Collection(LoansCollection)}
}

func (s *mongoStore) Notifications() NotificationRepository {
	return &mongoNotificationRepository{coll: s.db.Collection(NotificationsCollection), now: s.now}
}

func (s *mongoStore) Settings() SettingsRepository {
	return &mongoSettingsRepository{coll: s.db.Collection(SettingsCollection)}
}

// Ping checks the primary is reachable
func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// setDocument converts a record into the $set part of an upsert. Every
// schema field is present so an existing document is fully replaced;
// server-managed fields are left to $setOnInsert.
func setDocument(record any, serverManaged ...string) (bson.M, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, err
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for _, field := range serverManaged {
		delete(doc, field)
	}
	return doc, nil
}

// upsertByID replaces the schema fields of the document with the given id,
// inserting it with a creation timestamp when absent
func upsertByID(ctx context.Context, coll *mongo.Collection, id string, set bson.M, onInsert bson.M) error {
	update := bson.M{"$set": set}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}

	_, err := coll.UpdateOne(ctx, bson.M{"id": id}, update, options.Update().SetUpsert(true))
	return err
}

// ============================================================
// Users
// ============================================================

type mongoUserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepository) UpsertByID(ctx context.Context, user *domain.User) error {
	set, err := setDocument(user, "createdAt")
	if err != nil {
		return err
	}
	return upsertByID(ctx, r.coll, user.ID, set, bson.M{"createdAt": r.now()})
}

func (r *mongoUserRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	return err
}

// ============================================================
// Loans
// ============================================================

type mongoLoanRepository struct {
	coll *mongo.Collection
}

func (r *mongoLoanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	loans := []domain.Loan{}
	if err := cursor.All(ctx, &loans); err != nil {
		return nil, err
	}
	return loans, nil
}

// UpsertByID writes the loan as sent; its createdAt is client supplied
func (r *mongoLoanRepository) UpsertByID(ctx context.Context, loan *domain.Loan) error {
	set, err := setDocument(loan)
	if err != nil {
		return err
	}
	return upsertByID(ctx, r.coll, loan.ID, set, nil)
}

func (r *mongoLoanRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// ============================================================
// Notifications
// ============================================================

type mongoNotificationRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func (r *mongoNotificationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []domain.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) UpsertByID(ctx context.Context, n *domain.Notification) error {
	set, err := setDocument(n, "createdAt")
	if err != nil {
		return err
	}
	return upsertByID(ctx, r.coll, n.ID, set, bson.M{"createdAt": r.now()})
}

func (r *mongoNotificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return err
}

// ============================================================
// Settings
// ============================================================

type mongoSettingsRepository struct {
	coll *mongo.Collection
}

func settingsFilter() bson.M {
	return bson.M{"key": domain.SettingsKey}
}

func (r *mongoSettingsRepository) Get(ctx context.Context) (*domain.SystemSettings, error) {
	var settings domain.SystemSettings
	err := r.coll.FindOne(ctx, settingsFilter()).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSettingsMissing
		}
		return nil, err
	}
	return &settings, nil
}

func (r *mongoSettingsRepository) EnsureDefaults(ctx context.Context) error {
	defaults := domain.DefaultSettings()
	update := bson.M{"$setOnInsert": bson.M{
		"budget":     defaults.Budget,
		"rankProfit": defaults.RankProfit,
	}}

	_, err := r.coll.UpdateOne(ctx, settingsFilter(), update, options.Update().SetUpsert(true))
	return err
}

func (r *mongoSettingsRepository) SetBudget(ctx context.Context, budget float64) error {
	return r.setField(ctx, "budget", budget, bson.M{"rankProfit": float64(domain.DefaultRankProfit)})
}

func (r *mongoSettingsRepository) SetRankProfit(ctx context.Context, rankProfit float64) error {
	return r.setField(ctx, "rankProfit", rankProfit, bson.M{"budget": float64(domain.DefaultBudget)})
}

// setField upserts one field of the singleton; the other field only gets its
// default when the document is created by this call
func (r *mongoSettingsRepository) setField(ctx context.Context, field string, value float64, onInsert bson.M) error {
	update := bson.M{
		"$set":         bson.M{field: value},
		"$setOnInsert": onInsert,
	}

	_, err := r.coll.UpdateOne(ctx, settingsFilter(), update, options.Update().SetUpsert(true))
	return err
}
