package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cz4r/internal/model"
)

// batchSize bounds the rows sent per INSERT statement.
const batchSize = 250

// AssignmentRepository worker-to-job assignment data access
type AssignmentRepository interface {
	ListForJob(ctx context.Context, jobID int64) ([]model.Assignment, error)
	Get(ctx context.Context, jobID, workerID int64) (*model.Assignment, error)
	ClearFlatRate(ctx context.Context, jobID int64, workerIDs []int64) error
	SetFlatRate(ctx context.Context, jobID int64, workerIDs []int64) error
	Delete(ctx context.Context, jobID int64, workerIDs []int64) error
	DeleteForJob(ctx context.Context, jobID int64) error
	CreateBatch(ctx context.Context, rows []model.Assignment) error
	// UpdateShift writes the check-in/out fields and reports how many rows matched.
	UpdateShift(ctx context.Context, a *model.Assignment) (int64, error)
	// ListShifts returns a worker's assignments on jobs dated within
	// [from, to], newest first.
	ListShifts(ctx context.Context, workerID int64, from, to time.Time) ([]model.ShiftRecord, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo creates an AssignmentRepository.
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) ListForJob(ctx context.Context, jobID int64) ([]model.Assignment, error) {
	var rows []model.Assignment
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("worker_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *assignmentRepo) Get(ctx context.Context, jobID, workerID int64) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND worker_id = ?", jobID, workerID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) ClearFlatRate(ctx context.Context, jobID int64, workerIDs []int64) error {
	return r.setFlatRate(ctx, jobID, workerIDs, false)
}

func (r *assignmentRepo) SetFlatRate(ctx context.Context, jobID int64, workerIDs []int64) error {
	return r.setFlatRate(ctx, jobID, workerIDs, true)
}

func (r *assignmentRepo) setFlatRate(ctx context.Context, jobID int64, workerIDs []int64, value bool) error {
	if len(workerIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("job_id = ? AND worker_id IN ?", jobID, workerIDs).
		Update("using_flat_rate", value).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, jobID int64, workerIDs []int64) error {
	if len(workerIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("job_id = ? AND worker_id IN ?", jobID, workerIDs).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) DeleteForJob(ctx context.Context, jobID int64) error {
	return r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) CreateBatch(ctx context.Context, rows []model.Assignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error
}

func (r *assignmentRepo) UpdateShift(ctx context.Context, a *model.Assignment) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("job_id = ? AND worker_id = ?", a.JobID, a.WorkerID).
		Updates(map[string]interface{}{
			"sign_in":             a.SignIn,
			"sign_out":            a.SignOut,
			"miles_driven":        a.MilesDriven,
			"hours_driven":        a.HoursDriven,
			"extra_expense_cents": a.ExtraExpenseCents,
			"notes":               a.Notes,
		})
	return res.RowsAffected, res.Error
}

func (r *assignmentRepo) ListShifts(ctx context.Context, workerID int64, from, to time.Time) ([]model.ShiftRecord, error) {
	rows := []model.ShiftRecord{}
	err := r.db.WithContext(ctx).
		Table("job_workers").
		Select(`job_workers.*, jobs.date, jobs.site_name, jobs.address, jobs.work_order, jobs.service_code`).
		Joins("JOIN jobs ON jobs.id = job_workers.job_id").
		Where("job_workers.worker_id = ?", workerID).
		Where("jobs.date >= ? AND jobs.date <= ?", from, to).
		Order("jobs.date DESC, jobs.id DESC").
		Scan(&rows).Error
	return rows, err
}
