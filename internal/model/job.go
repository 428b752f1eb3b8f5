package model

import "time"

// Job is one work order at one site on one date in table jobs
type Job struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SiteName    string    `gorm:"not null"                 json:"site_name"`
	WorkOrder   string    `gorm:"not null"                 json:"work_order"`
	ServiceCode string    `gorm:"not null"                 json:"service_code"`
	Address     string    `gorm:"not null"                 json:"address"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date"`
	Notes       string    `gorm:"not null"                 json:"notes"`
	BaseModel
}

// TableName table name
func (Job) TableName() string { return "jobs" }
