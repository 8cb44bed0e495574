// Package models defines the core data structures for vault credentials.
package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Credential represents one stored login as persisted: the password field
// holds ciphertext only.
type Credential struct {
	// ID is the store-assigned, stable unique identifier for the record.
	ID string
	// AppName is the display name of the application, normalized.
	AppName string
	// Username is the login name for the application.
	Username string
	// CreatedBy is the author label, normalized.
	CreatedBy string
	// EncryptedPassword is the authenticated ciphertext of the password.
	EncryptedPassword []byte
}

// DecryptedCredential is a credential with its password decrypted for a
// single response. It is never persisted.
//
// The decrypted plaintext travels under the encrypted_password key; the
// transport contract keeps the stored column name.
type DecryptedCredential struct {
	ID        string `json:"id"`
	AppName   string `json:"app_name"`
	Username  string `json:"username"`
	CreatedBy string `json:"created_by"`
	Password  string `json:"encrypted_password"`
}

// Normalize capitalizes the first letter of s and lowercases the rest.
// It is applied to app names and author labels both before duplicate
// comparison and before storage, so the uniqueness check and the stored
// values can never disagree.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
