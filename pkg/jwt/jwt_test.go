package jwt

import (
	"testing"
	"time"

	"cz4r/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		SessionSecret: "test-secret-key-for-unit-testing-2026",
		SessionTTL:    12 * time.Hour,
	})
}

func TestGenerateAndParseSessionToken(t *testing.T) {
	m := newTestManager()

	token, issued, err := m.GenerateSessionToken(42, "$2a$10$hash")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if claims.WorkerID != 42 {
		t.Errorf("expected WorkerID=42, got %d", claims.WorkerID)
	}
	if claims.PasswordStamp != PasswordStamp("$2a$10$hash") {
		t.Errorf("unexpected password stamp %q", claims.PasswordStamp)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Errorf("expected jti %q, got %q", issued.ID, claims.ID)
	}
	if claims.Issuer != "cz4r" {
		t.Errorf("expected Issuer=cz4r, got %s", claims.Issuer)
	}

	ttl := claims.Remaining(time.Now())
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("expected ~12h remaining, got %v", ttl)
	}
}

func TestRefresh_KeepsIdentity(t *testing.T) {
	m := newTestManager()

	_, first, _ := m.GenerateSessionToken(7, "h")
	token, _, err := m.Refresh(first)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.ID != first.ID || claims.WorkerID != 7 || claims.PasswordStamp != first.PasswordStamp {
		t.Errorf("refreshed claims changed identity: %+v", claims)
	}
}

func TestPasswordStamp_ChangesWithHash(t *testing.T) {
	if PasswordStamp("a") == PasswordStamp("b") {
		t.Error("different hashes should produce different stamps")
	}
	if PasswordStamp("a") != PasswordStamp("a") {
		t.Error("stamp should be deterministic")
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.ParseToken("invalid.token.string"); err != ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		SessionSecret: "different-secret-key",
		SessionTTL:    time.Hour,
	})

	token, _, _ := m1.GenerateSessionToken(1, "h")
	if _, err := m2.ParseToken(token); err == nil {
		t.Error("token signed with another secret must not verify")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		SessionSecret: "test-secret-0123456789",
		SessionTTL:    1 * time.Millisecond,
	})

	token, _, _ := m.GenerateSessionToken(1, "h")
	time.Sleep(1100 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
