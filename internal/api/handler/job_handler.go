package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cz4r/internal/dto"
	"cz4r/internal/service"
	"cz4r/pkg/response"
)

// JobHandler job list, job editing and the calendar feed
type JobHandler struct {
	jobSvc service.JobService
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobSvc service.JobService) *JobHandler {
	return &JobHandler{jobSvc: jobSvc}
}

// List GET /joblist
func (h *JobHandler) List(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	f := newFields(c.Request.URL.Query())
	q := &dto.JobListQuery{
		From:      f.date("start_date").Ptr(),
		To:        f.date("end_date").Ptr(),
		SiteName:  f.text("site_name"),
		WorkOrder: f.text("work_order"),
		Address:   f.text("address"),
		Notes:     f.text("notes"),
		Order:     f.text("order"),
		Assigned:  f.boolean("assigned").Ptr(),
		Started:   f.boolean("started").Ptr(),
		Completed: f.boolean("completed").Ptr(),
	}
	if joined := strings.Join(c.QueryArray("workers"), ","); strings.Trim(joined, ", ") != "" {
		q.Workers = &joined
	}
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	page, err := h.jobSvc.List(c.Request.Context(), who, q)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "joblist.html", gin.H{"title": "CZ4R Jobs", "page": page})
}

// EditPage GET /jobedit?id=
func (h *JobHandler) EditPage(c *gin.Context) {
	f := newFields(c.Request.URL.Query())
	id := f.int64("id").Ptr()
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	page, err := h.jobSvc.EditPage(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "jobedit.html", gin.H{"title": "CZ4R Edit Job", "page": page})
}

// Save POST /admin/api/v1/edit-job
func (h *JobHandler) Save(c *gin.Context) {
	values, ok := postValues(c)
	if !ok {
		return
	}

	f := newFields(values)
	form := &dto.JobForm{
		ID:          f.int64("jobid").Ptr(),
		SiteName:    f.text("sitename"),
		WorkOrder:   f.text("workorder"),
		ServiceCode: f.text("servcode"),
		Address:     f.text("address"),
		Notes:       f.text("notes"),
		Assigned:    strings.Join(values["assigned"], ","),
		FlatRate:    strings.Join(values["flatrate"], ","),
	}
	date, err := f.date("date").Require()
	f.keep(err)
	form.Date = date
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	id, err := h.jobSvc.Save(c.Request.Context(), form)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/jobedit?id=%d", id))
}

// Delete POST /admin/api/v1/delete-job
func (h *JobHandler) Delete(c *gin.Context) {
	values, ok := postValues(c)
	if !ok {
		return
	}

	f := newFields(values)
	id := f.requireInt64("jobid")
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	if err := h.jobSvc.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, "/joblist")
}

// Calendar GET /api/v1/calendar.ics
func (h *JobHandler) Calendar(c *gin.Context) {
	who, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	data, err := h.jobSvc.Calendar(c.Request.Context(), who.WorkerID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\"cz4r-jobs.ics\"")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}
