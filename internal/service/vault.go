// Package service implements the vault's business logic: master-password
// enrollment and verification, authentication-gated credential CRUD, and the
// duplicate policy. Persistence is delegated to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mconti/passvault/internal/models"
	"github.com/mconti/passvault/internal/security"
)

// MasterRepository defines the persistence operations for the single
// master-password record and the encryption salt.
type MasterRepository interface {
	// GetHash returns the stored master-password hash, or nil if the vault
	// is not initialized.
	GetHash(ctx context.Context) ([]byte, error)
	// SaveHash persists the master-password hash. Must fail if one exists.
	SaveHash(ctx context.Context, hash []byte) error
	// GetSalt returns the persisted encryption salt, or nil if absent.
	GetSalt(ctx context.Context) ([]byte, error)
	// SaveSalt persists the encryption salt, keeping the first write on
	// conflict.
	SaveSalt(ctx context.Context, salt []byte) error
}

// CredentialRepository defines the persistence operations for credential
// records.
type CredentialRepository interface {
	// InsertIfAbsent atomically checks the (app_name, username) pair and
	// inserts when free. Exactly one of the returned records is non-nil.
	InsertIfAbsent(ctx context.Context, cred models.Credential) (inserted, existing *models.Credential, err error)
	// UpdatePassword replaces the ciphertext in place and reports whether
	// the id was found.
	UpdatePassword(ctx context.Context, id string, encrypted []byte) (bool, error)
	// Delete removes a credential and reports whether the id was found.
	Delete(ctx context.Context, id string) (bool, error)
	// List returns all credentials, filtered by app name when non-empty.
	List(ctx context.Context, appName string) ([]models.Credential, error)
	// DistinctApps returns the sorted distinct app names.
	DistinctApps(ctx context.Context) ([]string, error)
}

// VaultService orchestrates all vault operations. Authentication is
// stateless: every operation re-verifies the master password supplied with
// it, and derived keys never outlive a single call.
type VaultService struct {
	master MasterRepository
	creds  CredentialRepository
}

// NewVaultService constructs a VaultService over the given repositories.
func NewVaultService(master MasterRepository, creds CredentialRepository) *VaultService {
	return &VaultService{master: master, creds: creds}
}

// CreateResult is the outcome of CreateCredential. When Existing is non-nil
// the (app, username) pair was already taken and nothing was stored; the
// caller decides between update and cancel.
type CreateResult struct {
	// ID is the assigned id of the newly created record.
	ID string
	// GeneratedPassword is set only when the vault generated the password.
	// It is returned exactly once, here.
	GeneratedPassword string
	// Existing is the record that blocked creation, if any.
	Existing *models.Credential
}

// UpdateResult is the outcome of UpdateCredential.
type UpdateResult struct {
	ID string
	// GeneratedPassword is set only when the vault generated the password.
	GeneratedPassword string
}

// authenticate verifies the supplied master password against the stored
// hash. Absence of the hash means the vault is uninitialized.
func (s *VaultService) authenticate(ctx context.Context, masterPassword string) error {
	hash, err := s.master.GetHash(ctx)
	if err != nil {
		return err
	}
	if hash == nil {
		return ErrNotInitialized
	}
	if !security.VerifyMasterPassword(masterPassword, hash) {
		return ErrAuthentication
	}
	return nil
}

// deriveKey reads the persisted encryption salt and derives the symmetric
// key from it and the master password. The salt is fetched fresh on every
// call; nothing is cached across requests.
func (s *VaultService) deriveKey(ctx context.Context, masterPassword string) ([]byte, error) {
	salt, err := s.master.GetSalt(ctx)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		return nil, fmt.Errorf("encryption salt missing from store")
	}
	return security.DeriveKey(masterPassword, salt), nil
}

// Status reports whether a master password has been enrolled. No
// authentication required.
func (s *VaultService) Status(ctx context.Context) (bool, error) {
	hash, err := s.master.GetHash(ctx)
	if err != nil {
		return false, err
	}
	return hash != nil, nil
}

// Initialize enrolls the master password. It fails with
// ErrAlreadyInitialized on a second call and with ErrWeakPassword when the
// password misses the strength rule. The encryption salt is generated here
// if absent, exactly once per vault, and is persisted before the hash: the
// hash write is what flips the vault to initialized, so a failure anywhere
// earlier leaves it uninitialized and enrollment can simply be retried.
func (s *VaultService) Initialize(ctx context.Context, masterPassword string) error {
	hash, err := s.master.GetHash(ctx)
	if err != nil {
		return err
	}
	if hash != nil {
		return ErrAlreadyInitialized
	}
	if err := security.ValidateStrength(masterPassword); err != nil {
		return ErrWeakPassword
	}

	salt, err := s.master.GetSalt(ctx)
	if err != nil {
		return err
	}
	if salt == nil {
		fresh, err := security.GenerateEncryptionSalt()
		if err != nil {
			return err
		}
		if err := s.master.SaveSalt(ctx, fresh); err != nil {
			return err
		}
	}

	newHash, err := security.HashMasterPassword(masterPassword)
	if err != nil {
		return err
	}
	return s.master.SaveHash(ctx, newHash)
}

// Verify checks the master password.
func (s *VaultService) Verify(ctx context.Context, masterPassword string) error {
	return s.authenticate(ctx, masterPassword)
}

// ListApps returns the sorted set of distinct app names. Requires
// authentication; decrypts nothing.
func (s *VaultService) ListApps(ctx context.Context, masterPassword string) ([]string, error) {
	if err := s.authenticate(ctx, masterPassword); err != nil {
		return nil, err
	}
	return s.creds.DistinctApps(ctx)
}

// CreateCredential stores a new credential. App name and author are
// normalized first; the duplicate check on (app, username) runs atomically
// with the insert. When password is empty a strong one is generated and
// returned in the result; a supplied password must pass the strength rule.
func (s *VaultService) CreateCredential(
	ctx context.Context,
	masterPassword, appName, username, createdBy, password string,
) (*CreateResult, error) {
	if err := s.authenticate(ctx, masterPassword); err != nil {
		return nil, err
	}

	generated := false
	if password == "" {
		var err error
		password, err = security.GenerateStrongPassword(security.GeneratedPasswordLength)
		if err != nil {
			return nil, err
		}
		generated = true
	} else if err := security.ValidateStrength(password); err != nil {
		return nil, ErrWeakPassword
	}

	key, err := s.deriveKey(ctx, masterPassword)
	if err != nil {
		return nil, err
	}
	defer security.Wipe(key)

	encrypted, err := security.Encrypt([]byte(password), key)
	if err != nil {
		return nil, err
	}

	inserted, existing, err := s.creds.InsertIfAbsent(ctx, models.Credential{
		AppName:           models.Normalize(appName),
		Username:          username,
		CreatedBy:         models.Normalize(createdBy),
		EncryptedPassword: encrypted,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &CreateResult{Existing: existing}, nil
	}

	result := &CreateResult{ID: inserted.ID}
	if generated {
		result.GeneratedPassword = password
	}
	return result, nil
}

// UpdateCredential replaces the password ciphertext of an existing record in
// place; id, app name, username, and author stay unchanged. When password is
// empty a strong one is generated and returned.
func (s *VaultService) UpdateCredential(
	ctx context.Context,
	masterPassword, id, password string,
) (*UpdateResult, error) {
	if err := s.authenticate(ctx, masterPassword); err != nil {
		return nil, err
	}

	generated := false
	if password == "" {
		var err error
		password, err = security.GenerateStrongPassword(security.GeneratedPasswordLength)
		if err != nil {
			return nil, err
		}
		generated = true
	} else if err := security.ValidateStrength(password); err != nil {
		return nil, ErrWeakPassword
	}

	key, err := s.deriveKey(ctx, masterPassword)
	if err != nil {
		return nil, err
	}
	defer security.Wipe(key)

	encrypted, err := security.Encrypt([]byte(password), key)
	if err != nil {
		return nil, err
	}

	found, err := s.creds.UpdatePassword(ctx, id, encrypted)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	result := &UpdateResult{ID: id}
	if generated {
		result.GeneratedPassword = password
	}
	return result, nil
}

// ListCredentials returns credentials with their passwords decrypted,
// optionally filtered by exact app name (normalized before matching). The
// key is derived once for the whole listing. A single record failing
// authenticated decryption fails the call with ErrDecryption.
func (s *VaultService) ListCredentials(
	ctx context.Context,
	masterPassword, appName string,
) ([]models.DecryptedCredential, error) {
	if err := s.authenticate(ctx, masterPassword); err != nil {
		return nil, err
	}

	key, err := s.deriveKey(ctx, masterPassword)
	if err != nil {
		return nil, err
	}
	defer security.Wipe(key)

	if appName != "" {
		appName = models.Normalize(appName)
	}
	creds, err := s.creds.List(ctx, appName)
	if err != nil {
		return nil, err
	}

	out := make([]models.DecryptedCredential, 0, len(creds))
	for _, cred := range creds {
		plaintext, err := security.Decrypt(cred.EncryptedPassword, key)
		if err != nil {
			if errors.Is(err, security.ErrDecryptionFailed) {
				return nil, ErrDecryption
			}
			return nil, err
		}
		out = append(out, models.DecryptedCredential{
			ID:        cred.ID,
			AppName:   cred.AppName,
			Username:  cred.Username,
			CreatedBy: cred.CreatedBy,
			Password:  string(plaintext),
		})
	}
	return out, nil
}

// DeleteCredential removes a record. The full authentication gate applies,
// including the NotInitialized check; a failed delete propagates as a
// storage error.
func (s *VaultService) DeleteCredential(ctx context.Context, masterPassword, id string) error {
	if err := s.authenticate(ctx, masterPassword); err != nil {
		return err
	}

	found, err := s.creds.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
