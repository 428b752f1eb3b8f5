package model

import "time"

// Assignment links a worker to a job and carries that worker's shift data
// in table job_workers
type Assignment struct {
	JobID             int64     `gorm:"primaryKey;autoIncrement:false" json:"job_id"`
	WorkerID          int64     `gorm:"primaryKey;autoIncrement:false" json:"worker_id"`
	SignIn            TimeOfDay `gorm:"type:time"                      json:"sign_in"`
	SignOut           TimeOfDay `gorm:"type:time"                      json:"sign_out"`
	MilesDriven       float64   `gorm:"not null"                       json:"miles_driven"`
	HoursDriven       float64   `gorm:"not null"                       json:"hours_driven"`
	ExtraExpenseCents int64     `gorm:"not null"                       json:"extra_expense_cents"`
	Notes             string    `gorm:"not null"                       json:"notes"`
	UsingFlatRate     bool      `gorm:"not null"                       json:"using_flat_rate"`
}

// TableName table name
func (Assignment) TableName() string { return "job_workers" }

// Complete reports whether the worker both signed in and signed out.
func (a *Assignment) Complete() bool {
	return a.SignIn.Valid && a.SignOut.Valid
}

// ShiftRecord is an assignment joined with the job it belongs to. It is a
// read model, not a table.
type ShiftRecord struct {
	Assignment
	Date        time.Time `json:"date"`
	SiteName    string    `json:"site_name"`
	Address     string    `json:"address"`
	WorkOrder   string    `json:"work_order"`
	ServiceCode string    `json:"service_code"`
}
