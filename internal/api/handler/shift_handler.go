package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	"cz4r/internal/service"
	"cz4r/pkg/form"
	"cz4r/pkg/response"
)

// ShiftHandler check-in/out
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler creates a ShiftHandler.
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// Page GET /checkinout?id=&worker=
func (h *ShiftHandler) Page(c *gin.Context) {
	f := newFields(c.Request.URL.Query())
	jobID := f.requireInt64("id")
	workerID := f.requireInt64("worker")
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	page, err := h.shiftSvc.Get(c.Request.Context(), jobID, workerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.HTML(c, http.StatusOK, "checkinout.html", gin.H{"title": "CZ4R Check In/Out", "shift": page})
}

// Record POST /api/v1/checkinout
func (h *ShiftHandler) Record(c *gin.Context) {
	values, ok := postValues(c)
	if !ok {
		return
	}

	f := newFields(values)
	shift := &dto.ShiftForm{
		JobID:             f.requireInt64("JobId"),
		WorkerID:          f.requireInt64("WorkerId"),
		SignIn:            f.timeOfDay("Signin"),
		SignOut:           f.timeOfDay("Signout"),
		MilesDriven:       f.number("MilesDriven"),
		HoursDriven:       f.number("HoursDriven"),
		MinutesDriven:     f.number("MinutesDriven"),
		ExtraExpenseCents: f.cents("ExtraExpenses"),
		Notes:             f.text("Notes"),
	}
	if f.err != nil {
		response.Fail(c, f.err)
		return
	}

	if err := h.shiftSvc.Record(c.Request.Context(), shift); err != nil {
		response.Fail(c, err)
		return
	}
	response.Redirect(c, fmt.Sprintf("/checkinout?id=%d&worker=%d", shift.JobID, shift.WorkerID))
}

// timeOfDay reads an HH:MM field; blank clears the time.
func (f *fields) timeOfDay(name string) model.TimeOfDay {
	v, err := form.Parse(f.values, name, model.ParseTimeOfDay)
	f.keep(err)
	return v.Or(model.TimeOfDay{})
}
