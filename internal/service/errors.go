package service

import "errors"

// Typed errors returned by the vault service. The transport layer maps them
// to status codes; messages stay generic so a caller can never tell which
// part of a check failed.
var (
	// ErrNotInitialized means no master password has been enrolled yet.
	ErrNotInitialized = errors.New("vault not initialized")

	// ErrAlreadyInitialized means enrollment was attempted twice.
	ErrAlreadyInitialized = errors.New("vault already initialized")

	// ErrAuthentication means the supplied master password is wrong.
	// A corrupt stored hash produces the same error.
	ErrAuthentication = errors.New("wrong master password")

	// ErrWeakPassword means a password failed the strength rule.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrDecryption means a stored ciphertext could not be authenticated
	// under the derived key.
	ErrDecryption = errors.New("decryption error")

	// ErrNotFound means no credential with the given id exists.
	ErrNotFound = errors.New("credential not found")
)
