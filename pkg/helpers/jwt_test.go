package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", 2*time.Hour)
	tok, exp, err := m.Generate(42, "a@b.c", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if d := time.Until(exp); d < 119*time.Minute || d > 2*time.Hour {
		t.Fatalf("unexpected expiry %v", d)
	}
	c, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != 42 || c.Email != "a@b.c" || c.Role != "admin" {
		t.Fatalf("claims = %+v", c)
	}
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, _, _ := m.Generate(1, "a@b.c", "admin")

	other := NewJWTManager("other", time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("expected signature error")
	}

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	old, _, _ := expired.Generate(1, "a@b.c", "admin")
	if _, err := m.Parse(old); err == nil {
		t.Fatal("expected expiry error")
	}

	if _, err := m.Parse("not-a-token"); err == nil {
		t.Fatal("expected malformed error")
	}
}
