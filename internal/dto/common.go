package dto

// WorkerOption is one entry of a worker picker.
type WorkerOption struct {
	ID       int64
	Name     string
	Selected bool
}
