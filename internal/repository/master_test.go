package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupMasterMock(t *testing.T) (*SQLiteMasterRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewSQLiteMasterRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestGetHash_Present(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	stored := []byte("salted-hash-bytes")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT password_hash FROM master_password WHERE id = 1`)).
		WillReturnRows(sqlmock.NewRows([]string{"password_hash"}).AddRow(stored))

	hash, err := repo.GetHash(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(hash) != string(stored) {
		t.Errorf("hash = %q; want %q", hash, stored)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetHash_Absent(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT password_hash FROM master_password WHERE id = 1`)).
		WillReturnError(sql.ErrNoRows)

	hash, err := repo.GetHash(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash != nil {
		t.Errorf("expected nil hash for uninitialized vault, got %q", hash)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetHash_Error(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT password_hash FROM master_password WHERE id = 1`)).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.GetHash(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveHash(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	hash := []byte("salted-hash-bytes")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO master_password (id, password_hash) VALUES (1, ?)`)).
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveHash(context.Background(), hash); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetSalt_Present(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	salt := []byte("0123456789abcdef")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM config WHERE key = ?`)).
		WithArgs(saltKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(salt))

	got, err := repo.GetSalt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(salt) {
		t.Errorf("salt = %q; want %q", got, salt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetSalt_Absent(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM config WHERE key = ?`)).
		WithArgs(saltKey).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetSalt(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil salt, got %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveSalt(t *testing.T) {
	repo, mock, cleanup := setupMasterMock(t)
	defer cleanup()

	salt := []byte("0123456789abcdef")
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT (key) DO NOTHING`)).
		WithArgs(saltKey, salt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.SaveSalt(context.Background(), salt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
