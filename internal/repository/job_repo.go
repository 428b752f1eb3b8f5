package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"cz4r/internal/model"
)

// JobFilter narrows a job search. Text fields match case-insensitively as
// substrings; empty text fields are ignored.
type JobFilter struct {
	From      time.Time
	To        time.Time
	SiteName  string
	WorkOrder string
	Address   string
	// Notes matches the worker's shift notes.
	Notes string
	// WorkerIDs restricts rows to these workers; nil means every worker.
	WorkerIDs []int64
	Ascending bool
}

// JobRow is one (job, worker) pair returned by Search.
type JobRow struct {
	JobID             int64
	WorkerID          int64
	WorkerName        string
	SiteName          string
	Address           string
	WorkOrder         string
	ServiceCode       string
	JobNotes          string
	Date              time.Time
	SignIn            model.TimeOfDay
	SignOut           model.TimeOfDay
	WorkerNotes       string
	MilesDriven       float64
	HoursDriven       float64
	ExtraExpenseCents int64
	UsingFlatRate     bool
}

// JobRepository job data access
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, f JobFilter) ([]JobRow, error)
	// ListUnassigned returns jobs in the filter's range that nobody is
	// assigned to. Worker and notes criteria do not apply.
	ListUnassigned(ctx context.Context, f JobFilter) ([]model.Job, error)
}

type jobRepo struct {
	db *gorm.DB
}

// NewJobRepo creates a JobRepository.
func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) Update(ctx context.Context, job *model.Job) error {
	res := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"site_name":    job.SiteName,
			"work_order":   job.WorkOrder,
			"service_code": job.ServiceCode,
			"address":      job.Address,
			"date":         job.Date,
			"notes":        job.Notes,
		})
	return affected(res)
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Job{})
	return affected(res)
}

const jobRowColumns = `jobs.id AS job_id, job_workers.worker_id, workers.name AS worker_name,
	jobs.site_name, jobs.address, jobs.work_order, jobs.service_code, jobs.notes AS job_notes, jobs.date,
	job_workers.sign_in, job_workers.sign_out, job_workers.notes AS worker_notes,
	job_workers.miles_driven, job_workers.hours_driven, job_workers.extra_expense_cents,
	job_workers.using_flat_rate`

func (r *jobRepo) Search(ctx context.Context, f JobFilter) ([]JobRow, error) {
	rows := []JobRow{}
	if f.WorkerIDs != nil && len(f.WorkerIDs) == 0 {
		return rows, nil
	}

	db := r.db.WithContext(ctx).
		Table("jobs").
		Select(jobRowColumns).
		Joins("JOIN job_workers ON job_workers.job_id = jobs.id").
		Joins("JOIN workers ON workers.id = job_workers.worker_id")
	db = applyJobFilter(db, f)

	if f.WorkerIDs != nil {
		db = db.Where("job_workers.worker_id IN ?", f.WorkerIDs)
	}
	if f.Notes != "" {
		db = db.Where("LOWER(job_workers.notes) LIKE ? ESCAPE '\\'", likePattern(f.Notes))
	}

	err := db.Order(dateOrder(f.Ascending)).Order("workers.name ASC").Scan(&rows).Error
	return rows, err
}

func (r *jobRepo) ListUnassigned(ctx context.Context, f JobFilter) ([]model.Job, error) {
	var jobs []model.Job
	db := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("NOT EXISTS (SELECT 1 FROM job_workers WHERE job_workers.job_id = jobs.id)")
	db = applyJobFilter(db, f)

	err := db.Order(dateOrder(f.Ascending)).Find(&jobs).Error
	return jobs, err
}

func applyJobFilter(db *gorm.DB, f JobFilter) *gorm.DB {
	db = db.Where("jobs.date >= ? AND jobs.date <= ?", f.From, f.To)
	if f.SiteName != "" {
		db = db.Where("LOWER(jobs.site_name) LIKE ? ESCAPE '\\'", likePattern(f.SiteName))
	}
	if f.WorkOrder != "" {
		db = db.Where("LOWER(jobs.work_order) LIKE ? ESCAPE '\\'", likePattern(f.WorkOrder))
	}
	if f.Address != "" {
		db = db.Where("LOWER(jobs.address) LIKE ? ESCAPE '\\'", likePattern(f.Address))
	}
	return db
}

func dateOrder(ascending bool) string {
	if ascending {
		return "jobs.date ASC, jobs.id ASC"
	}
	return "jobs.date DESC, jobs.id DESC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches s literally anywhere in the column. Use with ESCAPE '\'.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
