package security

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateStrongPassword_Length(t *testing.T) {
	for _, length := range []int{1, 8, GeneratedPasswordLength, 64} {
		pw, err := GenerateStrongPassword(length)
		if err != nil {
			t.Fatalf("GenerateStrongPassword(%d) failed: %v", length, err)
		}
		if len(pw) != length {
			t.Errorf("GenerateStrongPassword(%d) returned %d characters", length, len(pw))
		}
		for _, c := range pw {
			if !strings.ContainsRune(passwordCharset, c) {
				t.Errorf("generated password contains %q, outside the charset", c)
			}
		}
	}
}

func TestGenerateStrongPassword_InvalidLength(t *testing.T) {
	if _, err := GenerateStrongPassword(0); err == nil {
		t.Error("expected error for length 0")
	}
}

func TestGenerateStrongPassword_Distinct(t *testing.T) {
	p1, err := GenerateStrongPassword(GeneratedPasswordLength)
	if err != nil {
		t.Fatalf("first generation failed: %v", err)
	}
	p2, err := GenerateStrongPassword(GeneratedPasswordLength)
	if err != nil {
		t.Fatalf("second generation failed: %v", err)
	}
	if p1 == p2 {
		t.Error("two generated passwords are identical")
	}
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantWeak bool
	}{
		{"valid", "Abcdef1!", false},
		{"valid with brace", "Password{1}", false},
		{"too short", "Ab1!", true},
		{"no uppercase", "abcdef1!", true},
		{"no special", "Abcdefg1", true},
		{"all lowercase", "alllowercase", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrength(tt.password)
			if tt.wantWeak && !errors.Is(err, ErrWeakPassword) {
				t.Errorf("ValidateStrength(%q) = %v; want ErrWeakPassword", tt.password, err)
			}
			if !tt.wantWeak && err != nil {
				t.Errorf("ValidateStrength(%q) = %v; want nil", tt.password, err)
			}
		})
	}
}
