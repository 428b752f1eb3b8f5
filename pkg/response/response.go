package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "cz4r/pkg/errors"
)

// Context keys the session middleware fills for page chrome.
const (
	KeyLoggedIn = "logged_in"
	KeyAdmin    = "admin"
)

// Response is the JSON envelope used by machine endpoints.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── JSON ──

// OK 200 JSON response
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error JSON error response
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ── HTML ──

// HTML renders a page template. The navigation flags for the current
// session are added to data unless the caller set them.
func HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data[KeyLoggedIn]; !ok {
		data[KeyLoggedIn] = c.GetBool(KeyLoggedIn)
	}
	if _, ok := data[KeyAdmin]; !ok {
		data[KeyAdmin] = c.GetBool(KeyAdmin)
	}
	if _, ok := data["title"]; !ok {
		data["title"] = "CZ4R"
	}
	c.HTML(status, name, data)
}

// ErrorPage renders error.html with a status and message and aborts.
func ErrorPage(c *gin.Context, status int, message string) {
	HTML(c, status, "error.html", gin.H{
		"title":  "CZ4R Error",
		"status": status,
		"cause":  message,
	})
	c.Abort()
}

// Fail renders err as an error page. The status follows the error kind;
// unclassified errors become a generic 500.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	kind := pkgerrors.KindOf(err)
	ErrorPage(c, pkgerrors.HTTPStatus(kind), pkgerrors.MessageOf(err))
}

// Redirect answers a form post with 303 See Other.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
