package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"cz4r/internal/api/middleware"
	"cz4r/internal/dto"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/form"
	"cz4r/pkg/response"
)

// MustGetIdentity returns the logged-in identity. When the route was not
// guarded by the session gate it renders 401 and returns false; the caller
// should return immediately.
func MustGetIdentity(c *gin.Context) (dto.Identity, bool) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Fail(c, pkgerrors.AuthenticationRequired("Please log in to continue"))
		return dto.Identity{}, false
	}
	return who, true
}

// postValues parses the url-encoded body. An oversized body renders 413.
func postValues(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorPage(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		response.Fail(c, pkgerrors.InvalidClientData("body", "", "is not a valid form"))
		return nil, false
	}
	return c.Request.PostForm, true
}

// ── Form reading ──

// fields reads typed form values and keeps the first parse error, so a
// handler can read every field and check once.
type fields struct {
	values url.Values
	err    error
}

func newFields(values url.Values) *fields {
	return &fields{values: values}
}

func (f *fields) keep(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// text returns the trimmed value, "" when absent or blank.
func (f *fields) text(name string) string {
	return form.Text(f.values, name).Value
}

func (f *fields) optText(name string) *string {
	return form.Text(f.values, name).Ptr()
}

func (f *fields) int64(name string) form.Field[int64] {
	v, err := form.Int64(f.values, name)
	f.keep(err)
	return v
}

func (f *fields) requireInt64(name string) int64 {
	v, err := f.int64(name).Require()
	f.keep(err)
	return v
}

func (f *fields) number(name string) float64 {
	v, err := form.NonNegative(f.values, name)
	f.keep(err)
	return v.Or(0)
}

func (f *fields) cents(name string) int64 {
	v, err := form.Cents(f.values, name)
	f.keep(err)
	return v.Or(0)
}

func (f *fields) boolean(name string) form.Field[bool] {
	v, err := form.Bool(f.values, name)
	f.keep(err)
	return v
}

func (f *fields) date(name string) form.Field[time.Time] {
	v, err := form.Date(f.values, name)
	f.keep(err)
	return v
}
