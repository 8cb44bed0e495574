package security

import (
	"bytes"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	k1 := DeriveKey("Correct Horse1!", salt)
	k2 := DeriveKey("Correct Horse1!", salt)

	if len(k1) != KeySize {
		t.Fatalf("derived key length = %d; want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("same password and salt produced different keys")
	}
}

func TestDeriveKey_SaltMatters(t *testing.T) {
	k1 := DeriveKey("Correct Horse1!", []byte("salt-one--------"))
	k2 := DeriveKey("Correct Horse1!", []byte("salt-two--------"))
	if bytes.Equal(k1, k2) {
		t.Error("different salts produced the same key")
	}
}

func TestHashMasterPassword_Verify(t *testing.T) {
	hash, err := HashMasterPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("HashMasterPassword failed: %v", err)
	}
	if len(hash) != AuthSaltSize+VerifierSize {
		t.Fatalf("hash length = %d; want %d", len(hash), AuthSaltSize+VerifierSize)
	}

	if !VerifyMasterPassword("Abcdef1!", hash) {
		t.Error("correct password did not verify")
	}
	if VerifyMasterPassword("wrong password", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashMasterPassword_FreshSalt(t *testing.T) {
	h1, err := HashMasterPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}
	h2, err := HashMasterPassword("Abcdef1!")
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}
	if bytes.Equal(h1, h2) {
		t.Error("two enrollments of the same password produced identical hashes")
	}
}

func TestVerifyMasterPassword_Malformed(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		[]byte("short"),
		make([]byte, AuthSaltSize),
		make([]byte, AuthSaltSize+VerifierSize+1),
	}
	for _, stored := range cases {
		if VerifyMasterPassword("Abcdef1!", stored) {
			t.Errorf("malformed stored hash of length %d verified", len(stored))
		}
	}
}

func TestGenerateEncryptionSalt(t *testing.T) {
	s1, err := GenerateEncryptionSalt()
	if err != nil {
		t.Fatalf("GenerateEncryptionSalt failed: %v", err)
	}
	if len(s1) != EncryptionSaltSize {
		t.Fatalf("salt length = %d; want %d", len(s1), EncryptionSaltSize)
	}
	s2, err := GenerateEncryptionSalt()
	if err != nil {
		t.Fatalf("GenerateEncryptionSalt failed: %v", err)
	}
	if bytes.Equal(s1, s2) {
		t.Error("two generated salts are identical")
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Wipe(b)
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: %d", i, v)
		}
	}
}
