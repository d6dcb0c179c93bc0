package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// SchemaVersion is the layout version stored in PRAGMA user_version
	SchemaVersion = 1

	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"

	MemoryPath = ":memory:"
)

const (
	tableName = "note"

	createTableSQL = `CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		date INTEGER
	)`
	dropTableSQL = `DROP TABLE IF EXISTS ` + tableName
)

// Config describes where and how the backing database is opened
type Config struct {
	Path          string
	Driver        string
	SchemaVersion int
	Logger        *slog.Logger
}

type DB struct {
	*sql.DB
	logger        *slog.Logger
	schemaVersion int
}

// New opens the database at dbPath with the default driver and schema version
func New(dbPath string) (*DB, error) {
	return Open(Config{Path: dbPath})
}

// Open opens (creating if absent) the database and brings its schema to cfg.SchemaVersion.
// A version mismatch drops and recreates the note table.
func Open(cfg Config) (*DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverCGO
	}
	if cfg.SchemaVersion == 0 {
		cfg.SchemaVersion = SchemaVersion
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: database path is empty", ErrOpen)
	}

	if cfg.Path != MemoryPath {
		// Ensure directory exists
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %w", ErrOpen, err)
		}
	}

	sqlDB, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrOpen, err)
	}

	// One connection: an in-memory database lives and dies with it
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: failed to connect: %w", ErrOpen, err)
	}

	if cfg.Path != MemoryPath {
		if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%w: failed to enable WAL mode: %w", ErrOpen, err)
		}
	}

	db := &DB{
		DB:            sqlDB,
		logger:        cfg.Logger,
		schemaVersion: cfg.SchemaVersion,
	}

	if err := db.Migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return db, nil
}

// Version returns the schema version recorded in the database file
func (db *DB) Version() (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate creates the note table on a fresh database. Any other version
// mismatch rebuilds the table from scratch and discards existing rows.
func (db *DB) Migrate() error {
	current, err := db.Version()
	if err != nil {
		return err
	}
	if current == db.schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	defer tx.Rollback()

	queries := []string{createTableSQL}
	if current != 0 {
		db.logger.Warn("schema version changed, recreating note table",
			"from", current,
			"to", db.schemaVersion,
		)
		queries = []string{dropTableSQL, createTableSQL}
	}

	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// PRAGMA arguments cannot be bound
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", db.schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	db.logger.Info("database schema ready", "version", db.schemaVersion)
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
