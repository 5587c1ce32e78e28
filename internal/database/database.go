package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type Option func(*gorm.Config)

// Silent turns off gorm's SQL logging.
func Silent() Option {
	return func(c *gorm.Config) { c.Logger = logger.Default.LogMode(logger.Silent) }
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func Connect(dsn string, opts ...Option) (*gorm.DB, error) {
	cfg := &gorm.Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if IsPostgres(dsn) {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite:", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection keeps transactions from
	// failing with SQLITE_BUSY under concurrent requests.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}
