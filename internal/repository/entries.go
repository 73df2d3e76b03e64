// Package repository provides the PostgreSQL-backed implementation of
// the vault entry store.
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresEntryRepository stores sealed vault entries in PostgreSQL.
// Deletes are soft: rows are tombstoned and purged later, so an
// accidental delete stays recoverable until the purger runs.
type PostgresEntryRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresEntryRepository creates a new PostgresEntryRepository using
// the provided *sql.DB. db must be a valid connection to a PostgreSQL
// instance.
func NewPostgresEntryRepository(db *sql.DB) *PostgresEntryRepository {
	return &PostgresEntryRepository{DB: db}
}

// Put inserts or replaces the value stored under key, reviving a
// tombstoned row if one exists.
//
//	ctx:   context for cancellation and deadlines
//	key:   entry name, unique across the vault
//	value: envelope wire string; stored as JSONB
func (r *PostgresEntryRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vault_entries (key, value, deleted, updated_at)
		VALUES ($1, $2, false, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			deleted = false,
			updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("put entry: %w", err)
	}
	return nil
}

// Get returns the value stored under key. The second return reports
// whether a live (non-tombstoned) row was found.
func (r *PostgresEntryRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, `
		SELECT value FROM vault_entries WHERE key = $1 AND deleted = false
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get entry: %w", err)
	}
	return value, true, nil
}

// Delete tombstones the row under key. Deleting an absent key is not an
// error.
func (r *PostgresEntryRepository) Delete(ctx context.Context, key string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE vault_entries SET deleted = true, updated_at = NOW() WHERE key = $1
	`, key)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Clear tombstones every row in the vault.
func (r *PostgresEntryRepository) Clear(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE vault_entries SET deleted = true, updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}
