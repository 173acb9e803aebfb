package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DB struct {
	*gorm.DB
	Driver string
}

// Options selects a driver and tunes the connection pool
type Options struct {
	Driver          string
	Path            string // sqlite file, ":memory:" or "" for in-memory
	DSN             string // postgres connection string
	Verbose         bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectRetries  int
}

// Initialize opens a sqlite database at dbPath
func Initialize(dbPath string, verbose bool) (*DB, error) {
	return Open(context.Background(), Options{Driver: DriverSQLite, Path: dbPath, Verbose: verbose})
}

// Open connects using the configured driver. Postgres connections are retried
// with exponential backoff so the service can start before the database does.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if opts.Driver == "" {
		opts.Driver = DriverSQLite
	}

	logLevel := logger.Error
	if opts.Verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverSQLite:
		path := opts.Path
		if path == "" {
			path = ":memory:"
		}
		if path != ":memory:" {
			if dir := filepath.Dir(path); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
		dialector = sqlite.Open(path)
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	tries := opts.ConnectRetries
	if tries <= 0 || opts.Driver == DriverSQLite {
		tries = 1
	}

	attempt := 0
	db, err := backoff.Retry(ctx, func() (*gorm.DB, error) {
		attempt++
		conn, err := gorm.Open(dialector, gormConfig)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("driver", opts.Driver).Msg("database connection failed")
			return nil, err
		}
		return conn, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(tries)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if opts.Driver == DriverSQLite && (opts.Path == "" || opts.Path == ":memory:") {
		// Every pooled connection to ":memory:" is a separate database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(valueOr(opts.MaxOpenConns, 25))
	}
	sqlDB.SetMaxIdleConns(valueOr(opts.MaxIdleConns, 5))
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &DB{DB: db, Driver: opts.Driver}, nil
}

func valueOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Debug().Int("models", len(models)).Msg("database migrated")
	return nil
}

// DropAll drops the tables of the provided models
func (db *DB) DropAll(models ...any) error {
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("dropping table: %w", err)
		}
	}
	return nil
}

// TableStatus reports whether each model's table exists, keyed by table name
func (db *DB) TableStatus(models ...any) (map[string]bool, error) {
	status := make(map[string]bool, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parsing model: %w", err)
		}
		status[stmt.Schema.Table] = db.Migrator().HasTable(m)
	}
	return status, nil
}
