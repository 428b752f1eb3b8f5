package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"cz4r/config"
	"cz4r/internal/dto"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/response"
)

const (
	identityKey = "identity"
	sessionKey  = "session"
)

// SessionAuthenticator resolves a session cookie to a live session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*dto.Session, error)
}

// Session loads the identity behind the session cookie, if any. A missing or
// stale cookie leaves the request anonymous; whether that is acceptable is
// decided by Authorize on each route.
func Session(auth SessionAuthenticator, cookie config.CookieConfig, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookie.Name)
		if err != nil || token == "" {
			c.Next()
			return
		}

		sess, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, pkgerrors.ErrAuthenticationRequired) {
				ClearSessionCookie(c, cookie)
				c.Next()
				return
			}
			response.Fail(c, err)
			return
		}

		if sess.RenewedToken != "" {
			WriteSessionCookie(c, cookie, sess.RenewedToken, ttl)
		}

		c.Set(identityKey, sess.Identity)
		c.Set(sessionKey, sess)
		c.Set(response.KeyLoggedIn, true)
		c.Set(response.KeyAdmin, sess.Identity.Admin)
		c.Next()
	}
}

// CurrentIdentity returns the identity Session stored, if the request has one.
func CurrentIdentity(c *gin.Context) (dto.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return dto.Identity{}, false
	}
	who, ok := v.(dto.Identity)
	return who, ok
}

// CurrentSession returns the loaded session, if any.
func CurrentSession(c *gin.Context) (*dto.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*dto.Session)
	return sess, ok && sess != nil
}

// ── Cookie ──

// WriteSessionCookie sets an HttpOnly session cookie valid for maxAge.
func WriteSessionCookie(c *gin.Context, cookie config.CookieConfig, token string, maxAge time.Duration) {
	c.SetSameSite(sameSite(cookie.SameSite))
	c.SetCookie(cookie.Name, token, int(maxAge.Seconds()), "/", cookie.Domain, cookie.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cookie config.CookieConfig) {
	c.SetSameSite(sameSite(cookie.SameSite))
	c.SetCookie(cookie.Name, "", -1, "/", cookie.Domain, cookie.Secure, true)
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
