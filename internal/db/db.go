package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/dkeller9/contactlens/internal/config"
	"github.com/dkeller9/contactlens/internal/errors"
)

// CurrentSchemaVersion is the latest sqlite schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Open opens the record source selected by cfg.DBDriver.
//
// For sqlite (the default) an empty DSN means baseDir/contacts.db; the
// database file and schema are created on first open. For mysql the DSN is
// required and the contacts table is created if missing, but the server
// itself is assumed to be managed elsewhere.
func Open(cfg *config.Config, baseDir string) (*sql.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite, "":
		return openSQLite(cfg.DBDSN, baseDir)
	case config.DriverMySQL:
		return openMySQL(cfg.DBDSN)
	default:
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown db driver %q", cfg.DBDriver))
	}
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

func openSQLite(dsn, baseDir string) (*sql.DB, error) {
	if dsn == "" {
		if err := os.MkdirAll(baseDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
		dbPath := filepath.Join(baseDir, "contacts.db")
		dsn = dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewSourceUnavailable(err)
	}

	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func openMySQL(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.NewInvalidRequest("mysql driver requires db_dsn (or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME)")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.NewSourceUnavailable(err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewSourceUnavailable(err)
	}

	if _, err := db.Exec(mysqlSchema); err != nil {
		db.Close()
		return nil, errors.NewSourceUnavailable(err)
	}

	return db, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  name       TEXT NOT NULL,
  phone      TEXT NOT NULL,
  category   TEXT,
  email      TEXT,
  notes      TEXT,
  created_at TEXT,
  updated_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_contacts_created_at
ON contacts(created_at DESC);
`

const mysqlSchema = `
CREATE TABLE IF NOT EXISTS contacts (
  id         BIGINT PRIMARY KEY AUTO_INCREMENT,
  name       VARCHAR(255) NOT NULL,
  phone      VARCHAR(64) NOT NULL,
  category   VARCHAR(128),
  email      VARCHAR(255),
  notes      TEXT,
  created_at DATETIME,
  updated_at DATETIME
)`

// migrateSQLite applies schema migrations based on user_version.
func migrateSQLite(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		if _, err := db.Exec(sqliteSchema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
