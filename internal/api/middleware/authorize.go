package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cz4r/internal/dto"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/response"
)

// Policy decides whether who may continue. who is nil for anonymous requests.
type Policy func(c *gin.Context, who *dto.Identity) error

// Authorize runs p before the handler binds anything. A rejected request is
// answered with an error page and never reaches the handler.
func Authorize(p Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var who *dto.Identity
		if id, ok := CurrentIdentity(c); ok {
			who = &id
		}
		if err := p(c, who); err != nil {
			if !c.IsAborted() {
				response.Fail(c, err)
			}
			return
		}
		c.Next()
	}
}

// LoggedIn admits any live session.
func LoggedIn(_ *gin.Context, who *dto.Identity) error {
	if who == nil {
		return pkgerrors.AuthenticationRequired("Please log in to continue")
	}
	return nil
}

// AdminOnly admits administrators.
func AdminOnly(c *gin.Context, who *dto.Identity) error {
	if err := LoggedIn(c, who); err != nil {
		return err
	}
	if !who.Admin {
		return pkgerrors.AuthorizationDenied("Only administrators can do that")
	}
	return nil
}

// SelfOrAdmin admits administrators, and workers whose id equals the
// request's field (query string or form body).
func SelfOrAdmin(field string) Policy {
	return func(c *gin.Context, who *dto.Identity) error {
		if err := LoggedIn(c, who); err != nil {
			return err
		}
		if who.Admin {
			return nil
		}
		if err := c.Request.ParseForm(); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.ErrorPage(c, http.StatusRequestEntityTooLarge, "Request body too large")
				return err
			}
			return pkgerrors.InvalidClientData("body", "", "is not a valid form")
		}
		id, err := strconv.ParseInt(strings.TrimSpace(c.Request.FormValue(field)), 10, 64)
		if err != nil || id != who.WorkerID {
			return pkgerrors.AuthorizationDenied("You can only view or change your own shifts")
		}
		return nil
	}
}
