package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations are applied in order; the index+1 is the schema version recorded in user_version.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS contact_submission (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		reply_to TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		message_id TEXT NOT NULL DEFAULT '',
		submitted_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contact_submission_submitted_at ON contact_submission(submitted_at)`,
}

// LatestSchemaVersion returns the schema version after all migrations have run.
func LatestSchemaVersion() int {
	return len(migrations)
}

// MigrateDB brings the schema up to LatestSchemaVersion.
// PRE: db is a valid database connection
// POST: All pending migrations applied in a single transaction; user_version updated
func MigrateDB(db *sql.DB) error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current >= len(migrations) {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for i := current; i < len(migrations); i++ {
		if _, err := tx.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	slog.Info("schema_migrated", "from", current, "to", len(migrations))
	return nil
}
