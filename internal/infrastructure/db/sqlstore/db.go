// Package sqlstore persists clients, mobiles and users in a relational
// database through gorm. PostgreSQL is the production dialect; SQLite backs
// local runs and tests.
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultMaxAttempts = 10
	defaultRetryDelay  = 2 * time.Second
)

// Config captures the settings required to open the relational database.
type Config struct {
	Driver      string
	DSN         string
	MaxAttempts int
	RetryDelay  time.Duration
	Logger      zerolog.Logger
}

// Open connects to the database, retrying while it is not reachable yet.
// Unique constraint violations surface as gorm.ErrDuplicatedKey.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	delay := cfg.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(gormWriter{log: cfg.Logger}, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	for i := 1; ; i++ {
		db, err := gorm.Open(dialector, gormCfg)
		if err == nil {
			err = ping(ctx, db, cfg.Driver)
		}
		if err == nil {
			cfg.Logger.Info().Str("driver", cfg.Driver).Int("attempt", i).Msg("connected to database")
			return db, nil
		}
		if i >= attempts {
			return nil, fmt.Errorf("connect %s after %d attempts: %w", cfg.Driver, attempts, err)
		}

		cfg.Logger.Warn().Err(err).Int("attempt", i).Int("max_attempts", attempts).Msg("database not reachable, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(sqliteDSN(dsn)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// sqliteDSN turns foreign key enforcement on unless the DSN sets it already.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=1"
}

func ping(ctx context.Context, db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if driver == DriverSQLite {
		// one connection keeps an in-memory database alive and serialises writers
		sqlDB.SetMaxOpenConns(1)
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter routes gorm's slow-query and error lines into zerolog.
type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}
