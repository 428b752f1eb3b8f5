package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"cz4r/config"
)

var (
	ErrTokenExpired = errors.New("session expired")
	ErrTokenInvalid = errors.New("session invalid")
)

const issuer = "cz4r"

// Claims is the payload of a session cookie.
type Claims struct {
	WorkerID int64 `json:"worker_id"`
	// PasswordStamp ties the session to the password hash it was issued under.
	PasswordStamp string `json:"pw_stamp"`
	jwtv5.RegisteredClaims
}

// Remaining returns the time left before the session expires.
func (c *Claims) Remaining(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return c.ExpiresAt.Time.Sub(now)
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session token manager.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
	}
}

// TTL is the lifetime of a freshly issued session.
func (m *Manager) TTL() time.Duration { return m.ttl }

// PasswordStamp derives a short fingerprint of a password hash. A password
// change produces a different stamp and invalidates older sessions.
func PasswordStamp(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}

// GenerateSessionToken issues a new session for a worker.
func (m *Manager) GenerateSessionToken(workerID int64, passwordHash string) (string, *Claims, error) {
	return m.sign(workerID, PasswordStamp(passwordHash), uuid.New().String())
}

// Refresh reissues a session keeping its id and password stamp.
func (m *Manager) Refresh(c *Claims) (string, *Claims, error) {
	return m.sign(c.WorkerID, c.PasswordStamp, c.ID)
}

func (m *Manager) sign(workerID int64, stamp, jti string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		WorkerID:      workerID,
		PasswordStamp: stamp,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseToken verifies a session token.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
