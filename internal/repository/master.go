// Package repository provides SQLite persistence for the vault: the single
// master-password record, the encryption-salt config entry, and the
// credential records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// saltKey is the config table key under which the encryption salt lives.
const saltKey = "encryption_salt"

// SQLiteMasterRepository stores the master-password hash and the encryption
// salt. Both are written at most once for the lifetime of a vault.
type SQLiteMasterRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLiteMasterRepository creates a SQLiteMasterRepository using the
// provided database connection.
func NewSQLiteMasterRepository(db *sql.DB) *SQLiteMasterRepository {
	return &SQLiteMasterRepository{DB: db}
}

// GetHash returns the stored master-password hash, or nil if the vault has
// not been initialized yet.
func (r *SQLiteMasterRepository) GetHash(ctx context.Context) ([]byte, error) {
	var hash []byte
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT password_hash FROM master_password WHERE id = 1`,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get master hash: %w", err)
	}
	return hash, nil
}

// SaveHash persists the master-password hash. The single-row table rejects a
// second insert, so a concurrent double enrollment cannot overwrite the first.
func (r *SQLiteMasterRepository) SaveHash(ctx context.Context, hash []byte) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO master_password (id, password_hash) VALUES (1, ?)`,
		hash,
	)
	if err != nil {
		return fmt.Errorf("save master hash: %w", err)
	}
	return nil
}

// GetSalt returns the persisted encryption salt, or nil if it has not been
// generated yet.
func (r *SQLiteMasterRepository) GetSalt(ctx context.Context) ([]byte, error) {
	var salt []byte
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT value FROM config WHERE key = ?`,
		saltKey,
	).Scan(&salt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get encryption salt: %w", err)
	}
	return salt, nil
}

// SaveSalt persists the encryption salt. If a salt already exists the write
// is a no-op, so the first generated salt always wins.
func (r *SQLiteMasterRepository) SaveSalt(ctx context.Context, salt []byte) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`,
		saltKey, salt,
	)
	if err != nil {
		return fmt.Errorf("save encryption salt: %w", err)
	}
	return nil
}
