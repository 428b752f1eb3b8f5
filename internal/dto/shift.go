package dto

import "cz4r/internal/model"

// ── Check-in/out ──

// ShiftForm is a submitted check-in/out. Absent numbers are zero.
type ShiftForm struct {
	JobID             int64
	WorkerID          int64
	SignIn            model.TimeOfDay
	SignOut           model.TimeOfDay
	MilesDriven       float64
	HoursDriven       float64
	MinutesDriven     float64
	ExtraExpenseCents int64
	Notes             string
}

// ShiftPage check-in/out page
type ShiftPage struct {
	JobID        int64
	WorkerID     int64
	WorkOrder    string
	ServiceCode  string
	SiteName     string
	Address      string
	Date         string
	SignIn       string
	SignOut      string
	Miles        float64
	Hours        int
	Minutes      int
	ExtraExpense string
	Notes        string
	JobNotes     string
}
