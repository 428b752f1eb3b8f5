package dto

import "time"

// ── Payroll ──

// PayrollEntry is one shift prepared for display.
type PayrollEntry struct {
	JobID           int64
	WorkerID        int64
	Date            string
	Location        string
	FlatRate        bool
	Completed       bool
	HoursWorked     string
	TrueHoursWorked string
	HoursDriven     string
	MilesDriven     string
	ExtraExpenses   string
	Notes           string

	BilledHours       float64
	RawHours          float64
	HoursDrivenValue  float64
	MilesDrivenValue  float64
	ExtraExpenseCents int64
}

// PayrollTotals sums a pay period. Driving and expense figures count only
// completed shifts; HoursWorked is "N/A" unless every shift is complete.
type PayrollTotals struct {
	HoursWorked   string
	HoursDriven   string
	MilesDriven   string
	ExtraExpenses string

	BilledHours       float64
	HoursDrivenValue  float64
	MilesDrivenValue  float64
	ExtraExpenseCents int64
	AllComplete       bool
	Shifts            int
	CompletedShifts   int
}

// WorkerDataQuery selects a worker and an optional period.
type WorkerDataQuery struct {
	WorkerID *int64
	From     *time.Time
	To       *time.Time
}

// WorkerDataPage payroll lookup page
type WorkerDataPage struct {
	Workers  []WorkerOption
	Selected *WorkerOption
	From     string
	To       string
	Entries  []PayrollEntry
	Totals   PayrollTotals
}
