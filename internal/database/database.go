package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens PostgreSQL for postgres:// DSNs and the embedded pure-Go
// SQLite driver for anything else.
func Connect(dsn string, opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(opts.LogLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgres(dsn) {
		logrus.Info("[DATABASE] connecting to PostgreSQL")
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		logrus.WithField("dsn", dsn).Info("[DATABASE] using SQLite")
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{
				DriverName: "sqlite",
				DSN:        dsn,
			}),
			cfg,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	if IsPostgres(dsn) {
		if opts.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if opts.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		}
	} else {
		// SQLite allows a single writer; one connection turns lock errors into queueing.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
