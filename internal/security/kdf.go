// Package security implements the cryptographic core of the vault:
// master-password hashing and verification, encryption-key derivation,
// the authenticated record cipher, and strong password generation.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFIterations is the PBKDF2-HMAC-SHA256 round count for both the
	// authentication hash and the encryption key.
	KDFIterations = 480000

	// KeySize is the derived encryption key length in bytes (AES-256).
	KeySize = 32

	// AuthSaltSize is the length of the random salt prepended to the
	// stored master-password hash.
	AuthSaltSize = 32

	// VerifierSize is the length of the derived verification value stored
	// after the salt in the master-password hash.
	VerifierSize = 64

	// EncryptionSaltSize is the length of the persisted salt used to
	// derive encryption keys. It is generated once per vault.
	EncryptionSaltSize = 16
)

// DeriveKey derives the symmetric encryption key from the master password and
// the vault's persisted encryption salt. The derivation is deterministic:
// the same password and salt always produce the same key.
func DeriveKey(masterPassword string, salt []byte) []byte {
	return pbkdf2.Key([]byte(masterPassword), salt, KDFIterations, KeySize, sha256.New)
}

// HashMasterPassword produces the stored authentication hash for a master
// password: a fresh random salt followed by the PBKDF2 verification value.
// The master password itself is never stored.
func HashMasterPassword(masterPassword string) ([]byte, error) {
	salt := make([]byte, AuthSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate auth salt: %w", err)
	}
	verifier := pbkdf2.Key([]byte(masterPassword), salt, KDFIterations, VerifierSize, sha256.New)
	return append(salt, verifier...), nil
}

// VerifyMasterPassword reports whether candidate is the master password that
// produced storedHash. Malformed input is treated as a mismatch; the function
// never panics and never distinguishes "wrong password" from "corrupt hash".
func VerifyMasterPassword(candidate string, storedHash []byte) bool {
	if len(storedHash) != AuthSaltSize+VerifierSize {
		return false
	}
	salt := storedHash[:AuthSaltSize]
	verifier := storedHash[AuthSaltSize:]
	computed := pbkdf2.Key([]byte(candidate), salt, KDFIterations, VerifierSize, sha256.New)
	return subtle.ConstantTimeCompare(computed, verifier) == 1
}

// GenerateEncryptionSalt returns a fresh random salt for encryption-key
// derivation. Called at most once per vault.
func GenerateEncryptionSalt() ([]byte, error) {
	salt := make([]byte, EncryptionSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate encryption salt: %w", err)
	}
	return salt, nil
}

// Wipe zeroes b. Used to drop key material as soon as an operation completes.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
