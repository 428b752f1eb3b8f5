package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cz4r/internal/dto"
	"cz4r/internal/service"
	"cz4r/pkg/response"
)

// WorkerHandler worker administration
type WorkerHandler struct {
	workerSvc service.WorkerService
}

// NewWorkerHandler creates a WorkerHandler.
func NewWorkerHandler(workerSvc service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerSvc: workerSvc}
}

// EditPage GET /admin/worker-edit?worker=&creating=
func (h *WorkerHandler) EditPage(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	f := newFields(c.Request.URL.Query())
	selected := f.int64("worker").Ptr()
	creating := f.boolean("creating").Or(false)
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	page, err := h.workerSvc.EditPage(c.Request.Context(), who.WorkerID, selected, creating)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "workeredit.html", gin.H{"title": "CZ4R Workers", "page": page})
}

// readWorkerForm reads the profile fields shared by create and change.
func readWorkerForm(f *fields) *dto.WorkerForm {
	return &dto.WorkerForm{
		Name:                 f.text("Name"),
		Address:              f.text("Address"),
		Phone:                f.text("Phone"),
		Email:                f.text("Email"),
		RateHourlyCents:      f.cents("Hourly"),
		RateMileageCents:     f.cents("Mileage"),
		RateDriveHourlyCents: f.cents("Drivetime"),
		FlatRateCents:        f.cents("Flatrate"),
		Admin:                f.boolean("Admin").Or(false),
	}
}

// Create POST /admin/api/v1/create-worker
func (h *WorkerHandler) Create(c *gin.Context) {
	values, ok := postValues(c)
	if !ok {
		return
	}

	f := newFields(values)
	form := readWorkerForm(f)
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	id, err := h.workerSvc.Create(c.Request.Context(), form)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/admin/worker-edit?worker=%d", id))
}

// Change POST /admin/api/v1/change-worker
func (h *WorkerHandler) Change(c *gin.Context) {
	values, ok := postValues(c)
	if !ok {
		return
	}

	f := newFields(values)
	id := f.requireInt64("id")
	form := readWorkerForm(f)
	form.ID = id
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	if err := h.workerSvc.Update(c.Request.Context(), form); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/admin/worker-edit?worker=%d", id))
}

// Deactivate POST /admin/api/v1/deactivate-worker
func (h *WorkerHandler) Deactivate(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}
	id, ok := h.postedID(c, "user")
	if !ok {
		return
	}

	if err := h.workerSvc.Deactivate(c.Request.Context(), who, id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, "/admin/worker-edit")
}

// Restore POST /admin/api/v1/restore-worker
func (h *WorkerHandler) Restore(c *gin.Context) {
	id, ok := h.postedID(c, "user")
	if !ok {
		return
	}

	if err := h.workerSvc.Restore(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, "/admin/restore")
}

// ResetPassword POST /admin/api/v1/reset-pw
func (h *WorkerHandler) ResetPassword(c *gin.Context) {
	id, ok := h.postedID(c, "id")
	if !ok {
		return
	}

	if err := h.workerSvc.ResetPassword(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/admin/worker-edit?worker=%d", id))
}

// RestorePage GET /admin/restore
func (h *WorkerHandler) RestorePage(c *gin.Context) {
	workers, err := h.workerSvc.ListDeactivated(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "restore.html", gin.H{"title": "CZ4R Restore Workers", "workers": workers})
}

func (h *WorkerHandler) postedID(c *gin.Context, name string) (int64, bool) {
	values, ok := postValues(c)
	if !ok {
		return 0, false
	}
	f := newFields(values)
	id := f.requireInt64(name)
	if f.err != nil {
		response.Fail(c, f.err)
		return 0, false
	}
	return id, true
}
