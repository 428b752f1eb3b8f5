package dto

// ── Worker admin ──

// WorkerForm is a submitted worker profile. ID is ignored when creating.
type WorkerForm struct {
	ID                   int64
	Name                 string
	Address              string
	Phone                string
	Email                string
	RateHourlyCents      int64
	RateMileageCents     int64
	RateDriveHourlyCents int64
	FlatRateCents        int64
	Admin                bool
}

// WorkerView is a worker profile with rates formatted for editing.
type WorkerView struct {
	ID                 int64
	Name               string
	Admin              bool
	Address            string
	Phone              string
	Email              string
	RateHourly         string
	RateMileage        string
	RateDriveHourly    string
	FlatRate           string
	MustChangePassword bool
}

// WorkerEditPage worker admin page
type WorkerEditPage struct {
	Creating bool
	OwnID    int64
	Workers  []WorkerOption
	Selected *WorkerView
}
