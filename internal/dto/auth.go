package dto

import "time"

// ── Auth ──

// LoginRequest login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password"`
}

// ChangePasswordRequest first-login password form
type ChangePasswordRequest struct {
	Password1 string `form:"password1" binding:"required"`
	Password2 string `form:"password2"`
}

// Identity is the authenticated worker behind a request.
type Identity struct {
	WorkerID int64
	Name     string
	Admin    bool
}

// Session is a validated session cookie.
type Session struct {
	Identity  Identity
	ID        string
	ExpiresAt time.Time
	// RenewedToken is set when the session was slid forward and the cookie
	// must be rewritten.
	RenewedToken string
}

// SessionToken is a freshly issued cookie value.
type SessionToken struct {
	Token  string
	MaxAge time.Duration
}

// LoginResult tells the handler where to send the browser. Session is nil
// when no session was started.
type LoginResult struct {
	Location string
	Session  *SessionToken
}
