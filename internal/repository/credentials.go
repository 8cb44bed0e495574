package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mconti/passvault/internal/models"
)

// SQLiteCredentialRepository implements credential persistence against a
// SQLite database.
type SQLiteCredentialRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewSQLiteCredentialRepository creates a SQLiteCredentialRepository using
// the provided database connection.
func NewSQLiteCredentialRepository(db *sql.DB) *SQLiteCredentialRepository {
	return &SQLiteCredentialRepository{DB: db}
}

// InsertIfAbsent inserts cred with a fresh id unless a record with the same
// (app_name, username) pair already exists. The check and the insert run in
// one transaction, so two concurrent creations for the same pair cannot both
// succeed. It returns the existing record when the pair is taken, or the
// inserted record (with its assigned id) otherwise.
func (r *SQLiteCredentialRepository) InsertIfAbsent(ctx context.Context, cred models.Credential) (*models.Credential, *models.Credential, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existing models.Credential
	err = tx.QueryRowContext(ctx, `
		SELECT id, app_name, username, created_by, encrypted_password FROM credentials
		WHERE app_name = ? AND username = ?
	`, cred.AppName, cred.Username).Scan(
		&existing.ID, &existing.AppName, &existing.Username,
		&existing.CreatedBy, &existing.EncryptedPassword,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("check duplicate: %w", err)
	}
	if err == nil {
		return nil, &existing, nil
	}

	cred.ID = uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO credentials (id, app_name, username, created_by, encrypted_password)
		VALUES (?, ?, ?, ?, ?)
	`, cred.ID, cred.AppName, cred.Username, cred.CreatedBy, cred.EncryptedPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("insert credential: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return &cred, nil, nil
}

// UpdatePassword replaces the ciphertext of an existing record in place.
// It reports whether a record with the given id was found.
func (r *SQLiteCredentialRepository) UpdatePassword(ctx context.Context, id string, encrypted []byte) (bool, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE credentials SET encrypted_password = ? WHERE id = ?`,
		encrypted, id,
	)
	if err != nil {
		return false, fmt.Errorf("update credential: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// Delete removes a credential. It reports whether a record with the given id
// was found.
func (r *SQLiteCredentialRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete credential: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
}

// List returns all credentials, or only those for the given app name when
// appName is non-empty.
func (r *SQLiteCredentialRepository) List(ctx context.Context, appName string) ([]models.Credential, error) {
	query := `SELECT id, app_name, username, created_by, encrypted_password FROM credentials`
	args := []any{}
	if appName != "" {
		query += ` WHERE app_name = ?`
		args = append(args, appName)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var creds []models.Credential
	for rows.Next() {
		var cred models.Credential
		if err := rows.Scan(&cred.ID, &cred.AppName, &cred.Username, &cred.CreatedBy, &cred.EncryptedPassword); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}
	return creds, nil
}

// DistinctApps returns the sorted set of distinct app names across all
// credentials.
func (r *SQLiteCredentialRepository) DistinctApps(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT DISTINCT app_name FROM credentials ORDER BY app_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("distinct apps: %w", err)
	}
	defer rows.Close()

	var apps []string
	for rows.Next() {
		var app string
		if err := rows.Scan(&app); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apps: %w", err)
	}
	return apps, nil
}
