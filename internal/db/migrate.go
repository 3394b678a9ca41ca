package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTicketsSpent(db); err != nil {
		return fmt.Errorf("backfilling tickets_spent: %w", err)
	}
	if err := migrateBackfillNextID(db); err != nil {
		return fmt.Errorf("backfilling next_id: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS progress_state (
		id               INTEGER PRIMARY KEY CHECK(id = 1),
		experience_milli INTEGER NOT NULL DEFAULT 0 CHECK(experience_milli >= 0),
		level            INTEGER NOT NULL DEFAULT 1 CHECK(level >= 1),
		tickets          INTEGER NOT NULL DEFAULT 0 CHECK(tickets >= 0),
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS study_records (
		position     INTEGER PRIMARY KEY,
		id           INTEGER NOT NULL UNIQUE,
		minutes      INTEGER NOT NULL CHECK(minutes > 0),
		category     TEXT NOT NULL,
		earned_milli INTEGER NOT NULL CHECK(earned_milli >= 0),
		timestamp    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_study_records_timestamp ON study_records(timestamp)`,

	// Ticket debit, -1 until backfilled from level and tickets.
	`ALTER TABLE progress_state ADD COLUMN tickets_spent INTEGER NOT NULL DEFAULT -1`,
	// Persisted id counter, 0 until backfilled from the highest record id.
	`ALTER TABLE progress_state ADD COLUMN next_id INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillTicketsSpent derives the ticket debit for rows written before
// it was stored: every level above 1 granted a ticket, so the missing ones
// were spent.
func migrateBackfillTicketsSpent(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE progress_state
		    SET tickets_spent = MAX(0, level - 1 - tickets)
		  WHERE tickets_spent < 0`)
	return err
}

// migrateBackfillNextID seeds the id counter past the highest stored id.
func migrateBackfillNextID(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE progress_state
		    SET next_id = (SELECT COALESCE(MAX(id), 0) + 1 FROM study_records)
		  WHERE next_id <= 0`)
	return err
}
