package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderlifecycle/internal/adapters/out/postgres/migrations"

	"github.com/lib/pq"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Settings selects and addresses the order store. URL, when set, takes
// precedence over the individual connection fields.
type Settings struct {
	Driver     string
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// DSN returns the key/value connection string. postgres:// URLs are converted
// with lib/pq so both forms reach the driver the same way.
func (s Settings) DSN() (string, error) {
	if s.URL != "" {
		dsn, err := pq.ParseURL(s.URL)
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		return dsn + " TimeZone=UTC", nil
	}

	sslMode := s.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		s.Host, s.Port, s.User, s.Password, s.Name, sslMode), nil
}

// Open connects to the configured store and brings its schema up to date.
func Open(ctx context.Context, s Settings, logger *slog.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	switch s.Driver {
	case DriverPostgres, "":
		dsn, err := s.DSN()
		if err != nil {
			return nil, err
		}
		db, err := gorm.Open(gorm_postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.WithContext(ctx)); err != nil {
			return nil, errors.Join(fmt.Errorf("migrate: %w", err), Close(db))
		}
		logger.InfoContext(ctx, "order store connected", "driver", DriverPostgres, "host", s.Host, "database", s.Name)
		return db, nil

	case DriverSQLite:
		path := s.SQLitePath
		if path == "" {
			path = "orders.db"
		}
		db, err := OpenSQLite(path, cfg)
		if err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "order store connected", "driver", DriverSQLite, "path", path)
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.Driver)
	}
}

// OpenSQLite opens path and creates the orders table. A single connection keeps
// SQLite's writer lock from surfacing as "database is locked" under contention.
func OpenSQLite(path string, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{TranslateError: true, Logger: gorm_logger.Default.LogMode(gorm_logger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err = migrations.Run(db); err != nil {
		return nil, errors.Join(err, sqlDB.Close())
	}
	return db, nil
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
