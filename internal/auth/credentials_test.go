package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashProducesSaltedValues(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	h1, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	// ソルトにより同じ平文でもハッシュは一致しない
	if h1 == h2 {
		t.Fatal("expected different hashes for the same plaintext")
	}

	if !creds.Verify("secret", h1) {
		t.Fatal("Verify rejected the correct password")
	}
	if !creds.Verify("secret", h2) {
		t.Fatal("Verify rejected the correct password")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	hashed, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if creds.Verify("wrong", hashed) {
		t.Fatal("Verify accepted a wrong password")
	}
	if creds.Verify("", hashed) {
		t.Fatal("Verify accepted an empty password")
	}
}

func TestNewCredentialsOutOfRangeCost(t *testing.T) {
	creds := NewCredentials(bcrypt.MaxCost + 1)

	hashed, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if !creds.Verify("secret", hashed) {
		t.Fatal("Verify rejected the correct password")
	}
}
