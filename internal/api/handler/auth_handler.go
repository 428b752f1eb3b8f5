package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cz4r/config"
	"cz4r/internal/api/middleware"
	"cz4r/internal/dto"
	"cz4r/internal/service"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/response"
)

// AuthHandler login, logout and first-login password change
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cookie: cookie}
}

// LoginPage GET /loginpage?failure=true
func (h *AuthHandler) LoginPage(c *gin.Context) {
	response.HTML(c, http.StatusOK, "login.html", gin.H{
		"title":   "CZ4R Login",
		"failure": c.Query("failure") == "true",
	})
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Redirect(c, "/loginpage?failure=true")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if result.Session != nil {
		middleware.WriteSessionCookie(c, h.cookie, result.Session.Token, result.Session.MaxAge)
	}
	response.Redirect(c, result.Location)
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		if err := h.authSvc.Logout(c.Request.Context(), sess); err != nil {
			response.Fail(c, err)
			return
		}
	}
	middleware.ClearSessionCookie(c, h.cookie)
	response.Redirect(c, "/")
}

// ChangePasswordPage GET /change-pw?id=&no_match=
func (h *AuthHandler) ChangePasswordPage(c *gin.Context) {
	f := newFields(c.Request.URL.Query())
	id := f.requireInt64("id")
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}
	response.HTML(c, http.StatusOK, "changepw.html", gin.H{
		"title":    "CZ4R Change Password",
		"id":       id,
		"no_match": c.Query("no_match") == "true",
	})
}

// ChangePassword POST /api/v1/change-pw/:id
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	f := newFields(map[string][]string{"id": {c.Param("id")}})
	id := f.requireInt64("id")
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, pkgerrors.InvalidClientData("password1", "", "is required"))
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), id, &req)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		response.Redirect(c, fmt.Sprintf("/change-pw?id=%d&no_match=true", id))
	case err != nil:
		response.Fail(c, err)
	default:
		response.Redirect(c, "/loginpage")
	}
}
