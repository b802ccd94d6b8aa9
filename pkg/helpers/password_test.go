package helpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !PasswordMatches(h, "s3cret!") {
		t.Fatal("expected match")
	}
	if PasswordMatches(h, "wrong") {
		t.Fatal("expected mismatch")
	}
	if PasswordMatches("not-a-hash", "s3cret!") {
		t.Fatal("expected mismatch for malformed hash")
	}
}

func TestHashPasswordUsesConfiguredCost(t *testing.T) {
	old := BcryptCost
	BcryptCost = bcrypt.MinCost
	defer func() { BcryptCost = old }()

	h, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.MinCost)
	}
}
