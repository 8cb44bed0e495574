package security

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// GeneratedPasswordLength is the default length for generated passwords.
const GeneratedPasswordLength = 16

// passwordCharset covers upper and lower case letters, digits, and the full
// ASCII punctuation range.
const passwordCharset = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// specialChars is the punctuation set the strength rule requires.
const specialChars = "!@#$%^&*(),.?\":{}|<>"

// ErrWeakPassword is returned when a password fails the strength rule:
// at least 8 characters, at least one uppercase letter, at least one
// special character.
var ErrWeakPassword = errors.New("password does not meet strength requirements")

// GenerateStrongPassword returns a random password of the given length, each
// character drawn independently and uniformly from the full charset using a
// cryptographically secure source.
func GenerateStrongPassword(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid password length %d", length)
	}
	var sb strings.Builder
	sb.Grow(length)
	max := big.NewInt(int64(len(passwordCharset)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("draw random character: %w", err)
		}
		sb.WriteByte(passwordCharset[n.Int64()])
	}
	return sb.String(), nil
}

// ValidateStrength checks a password against the vault's strength rule and
// returns ErrWeakPassword if it fails.
func ValidateStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	hasUpper := false
	hasSpecial := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(specialChars, r) {
			hasSpecial = true
		}
	}
	if !hasUpper || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
