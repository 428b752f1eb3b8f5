package dto

import "time"

// ── Job edit ──

// JobForm is a submitted job edit. ID is nil when creating.
type JobForm struct {
	ID          *int64
	SiteName    string
	WorkOrder   string
	ServiceCode string
	Address     string
	Date        time.Time
	Notes       string
	// Assigned and FlatRate are the raw id lists from the worker picker.
	Assigned string
	FlatRate string
}

// JobView is a job as shown on the edit page.
type JobView struct {
	ID          int64
	SiteName    string
	WorkOrder   string
	ServiceCode string
	Address     string
	Date        string
	Notes       string
}

// JobWorkerOption is one row of the assignment picker.
type JobWorkerOption struct {
	ID       int64
	Name     string
	Assigned bool
	FlatRate bool
}

// JobEditPage job edit page
type JobEditPage struct {
	Job     *JobView
	Workers []JobWorkerOption
}

// ── Job list ──

// Job list statuses.
const (
	StatusAssigned  = "assigned"
	StatusStarted   = "started"
	StatusSignedOut = "signedout"
	StatusOutNotIn  = "outnotin"
	StatusOrphan    = "orphan"
)

// Job list orderings.
const (
	OrderLatest   = "Latest"
	OrderEarliest = "Earliest"
)

// JobListQuery is the job search form. Nil fields were not submitted.
type JobListQuery struct {
	From      *time.Time
	To        *time.Time
	SiteName  string
	WorkOrder string
	Address   string
	Notes     string
	Order     string
	Assigned  *bool
	Started   *bool
	Completed *bool
	Workers   *string
}

// JobListItem is one (job, worker) line of the list. WorkerID is 0 for a
// job nobody is assigned to.
type JobListItem struct {
	JobID       int64
	WorkerID    int64
	WorkerName  string
	SiteName    string
	Address     string
	Date        string
	Notes       string
	WorkOrder   string
	ServiceCode string
	Status      string
}

// JobListParams echoes the effective search back to the form.
type JobListParams struct {
	Start      string
	End        string
	SiteName   string
	WorkOrder  string
	Address    string
	FieldNotes string
	Workers    []WorkerOption
}

// JobListPage job list page
type JobListPage struct {
	Jobs      []JobListItem
	Params    JobListParams
	Order     string
	Assigned  bool
	Started   bool
	Completed bool
}
