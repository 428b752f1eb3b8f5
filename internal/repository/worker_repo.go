package repository

import (
	"context"

	"gorm.io/gorm"

	"cz4r/internal/model"
)

// WorkerRepository worker data access
type WorkerRepository interface {
	Create(ctx context.Context, w *model.Worker) error
	GetByID(ctx context.Context, id int64) (*model.Worker, error)
	GetByName(ctx context.Context, name string) (*model.Worker, error)
	// Update writes the profile and rate fields, never the password state.
	Update(ctx context.Context, w *model.Worker) error
	List(ctx context.Context, deactivated bool) ([]model.Worker, error)
	SetDeactivated(ctx context.Context, id int64, deactivated bool) error
	SetMustChangePassword(ctx context.Context, id int64) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo creates a WorkerRepository.
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, w *model.Worker) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *workerRepo) GetByID(ctx context.Context, id int64) (*model.Worker, error) {
	var w model.Worker
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workerRepo) GetByName(ctx context.Context, name string) (*model.Worker, error) {
	var w model.Worker
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workerRepo) Update(ctx context.Context, w *model.Worker) error {
	res := r.db.WithContext(ctx).
		Model(&model.Worker{}).
		Where("id = ?", w.ID).
		Updates(map[string]interface{}{
			"name":                    w.Name,
			"admin":                   w.Admin,
			"address":                 w.Address,
			"phone":                   w.Phone,
			"email":                   w.Email,
			"rate_hourly_cents":       w.RateHourlyCents,
			"rate_mileage_cents":      w.RateMileageCents,
			"rate_drive_hourly_cents": w.RateDriveHourlyCents,
			"flat_rate_cents":         w.FlatRateCents,
		})
	return affected(res)
}

func (r *workerRepo) List(ctx context.Context, deactivated bool) ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.WithContext(ctx).
		Where("deactivated = ?", deactivated).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *workerRepo) SetDeactivated(ctx context.Context, id int64, deactivated bool) error {
	return r.setColumns(ctx, id, map[string]interface{}{"deactivated": deactivated})
}

func (r *workerRepo) SetMustChangePassword(ctx context.Context, id int64) error {
	return r.setColumns(ctx, id, map[string]interface{}{"must_change_password": true})
}

func (r *workerRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.setColumns(ctx, id, map[string]interface{}{
		"password_hash":        hash,
		"must_change_password": false,
	})
}

func (r *workerRepo) setColumns(ctx context.Context, id int64, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Worker{}).Where("id = ?", id).Updates(cols)
	return affected(res)
}

// affected turns an update that matched nothing into ErrRecordNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
