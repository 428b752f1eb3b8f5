package model

// Worker is an employee account in table workers
type Worker struct {
	ID                   int64  `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name                 string `gorm:"type:varchar(128);not null;unique" json:"name"`
	PasswordHash         string `gorm:"type:varchar(255);not null"        json:"-"`
	Admin                bool   `gorm:"not null"                          json:"admin"`
	Address              string `gorm:"not null"                          json:"address"`
	Phone                string `gorm:"type:varchar(64);not null"         json:"phone"`
	Email                string `gorm:"type:varchar(255);not null"        json:"email"`
	RateHourlyCents      int64  `gorm:"not null"                          json:"rate_hourly_cents"`
	RateMileageCents     int64  `gorm:"not null"                          json:"rate_mileage_cents"`
	RateDriveHourlyCents int64  `gorm:"not null"                          json:"rate_drive_hourly_cents"`
	FlatRateCents        int64  `gorm:"not null"                          json:"flat_rate_cents"`
	MustChangePassword   bool   `gorm:"not null"                          json:"must_change_password"`
	Deactivated          bool   `gorm:"not null"                          json:"deactivated"`
	BaseModel
}

// TableName table name
func (Worker) TableName() string { return "workers" }
