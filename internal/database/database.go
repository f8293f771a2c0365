package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver names reported by Database.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrNotConfigured = errors.New("database is not configured")

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase prepares a connection pool for databaseURL without connecting.
// Postgres URLs and DSNs are handled by pgx; sqlite:// URLs, file: URIs and
// *.db paths open a local sqlite file. An unreachable or invalid backend is
// reported by the first statement executed, not here.
func NewDatabase(databaseURL string, logLevel logger.LogLevel) (*Database, error) {
	dialector, driver := Dialector(databaseURL)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logLevel),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	// Every storage call acquires its own connection and gives it back
	// closed; nothing is kept around between calls.
	sqlDB.SetMaxIdleConns(0)

	log.Printf("Database configured (driver: %s)", driver)

	return &Database{DB: db, Driver: driver}, nil
}

// Dialector picks the gorm dialector for a DATABASE_URL value.
func Dialector(databaseURL string) (gorm.Dialector, string) {
	url := strings.TrimSpace(databaseURL)
	lower := strings.ToLower(url)

	switch {
	case strings.HasPrefix(lower, "sqlite://"):
		return sqlite.Open(url[len("sqlite://"):]), DriverSQLite
	case strings.HasPrefix(lower, "sqlite3://"):
		return sqlite.Open(url[len("sqlite3://"):]), DriverSQLite
	case strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return sqlite.Open(url), DriverSQLite
	default:
		return postgres.Open(url), DriverPostgres
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the backend is reachable.
func (d *Database) Ping(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return ErrNotConfigured
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
