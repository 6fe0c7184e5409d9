package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/models"
	"github.com/ngondo96v1/NDV26V/internal/adapters/persistence/repositories"
	"github.com/ngondo96v1/NDV26V/internal/core/domain"
	"github.com/ngondo96v1/NDV26V/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// defaultMongoDatabase is used when neither MONGODB_DATABASE nor the URI names one
const defaultMongoDatabase = "ndv261"

// OpenStore dials the configured backend and returns its repositories
func OpenStore(ctx context.Context, cfg *Config) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case DriverMongo:
		db, err := ConnectMongo(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		store, err := repositories.NewMongoStore(ctx, db)
		if err != nil {
			_ = db.Client().Disconnect(context.Background())
			return nil, err
		}
		return store, nil

	case DriverMySQL, DriverPostgres:
		db, err := ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		if err := migrate(db); err != nil {
			return nil, err
		}
		return repositories.NewGormStore(db), nil

	case DriverMemory:
		return repositories.NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedStore, cfg.Store.Driver)
}

// migrate creates or updates the sync tables. The pool is closed when that
// fails, since the caller retries with a fresh connection.
func migrate(db *gorm.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

// ConnectMongo establishes connection to MongoDB and verifies it with a ping
func ConnectMongo(ctx context.Context, store StoreConfig) (*mongo.Database, error) {
	dbName, err := mongoDatabaseName(store)
	if err != nil {
		return nil, err
	}

	clientOpts := options.Client().
		ApplyURI(store.MongoURI).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logrus.WithField("database", dbName).Info("✅ MongoDB connected successfully")
	return client.Database(dbName), nil
}

// mongoDatabaseName picks MONGODB_DATABASE, then the URI path, then the default
func mongoDatabaseName(store StoreConfig) (string, error) {
	if store.MongoDatabase != "" {
		return store.MongoDatabase, nil
	}

	cs, err := connstring.ParseAndValidate(store.MongoURI)
	if err != nil {
		return "", fmt.Errorf("invalid MONGODB_URI: %w", err)
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return defaultMongoDatabase, nil
}

// ConnectDatabase establishes connection to the SQL database
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case DriverPostgres:
		dialector = postgres.Open(buildPostgresDSN(cfg.Store.SQL))
	default:
		dialector = mysql.Open(buildMySQLDSN(cfg.Store.SQL))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.GormLogger(cfg.IsDev()),
		SkipDefaultTransaction: true, // Better performance
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"driver":   cfg.Store.Driver,
		"database": cfg.Store.SQL.DBName,
	}).Info("✅ Database connected successfully")

	return db, nil
}

// buildMySQLDSN returns the MySQL connection string
func buildMySQLDSN(d DatabaseConfig) string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// buildPostgresDSN returns the Postgres connection string
func buildPostgresDSN(d DatabaseConfig) string {
	if d.DSN != "" {
		return d.DSN
	}
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
		"dbname=" + d.DBName,
		"sslmode=disable",
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	return strings.Join(parts, " ")
}
