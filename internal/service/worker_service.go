package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	"cz4r/internal/repository"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/money"
)

// minAdminPasswordLen applies to the bootstrap account only; workers set
// their own password on first login.
const minAdminPasswordLen = 8

// WorkerService worker administration
type WorkerService interface {
	EditPage(ctx context.Context, ownID int64, selected *int64, creating bool) (*dto.WorkerEditPage, error)
	// Create adds a worker who must choose a password on first login.
	Create(ctx context.Context, f *dto.WorkerForm) (int64, error)
	Update(ctx context.Context, f *dto.WorkerForm) error
	// Deactivate blocks a worker from logging in. Admins cannot deactivate
	// themselves.
	Deactivate(ctx context.Context, actor dto.Identity, id int64) error
	Restore(ctx context.Context, id int64) error
	// ResetPassword forces a password change on the worker's next login.
	ResetPassword(ctx context.Context, id int64) error
	ListDeactivated(ctx context.Context) ([]dto.WorkerOption, error)
	// CreateAdmin creates an administrator with a usable password.
	CreateAdmin(ctx context.Context, name, password string) (int64, error)
}

type workerService struct {
	repo   *repository.Repository
	logger *zap.Logger
	cost   int
}

// NewWorkerService creates a WorkerService.
func NewWorkerService(repo *repository.Repository, logger *zap.Logger) WorkerService {
	return &workerService{repo: repo, logger: logger, cost: bcrypt.DefaultCost}
}

// ────── Page ──────

func (s *workerService) EditPage(ctx context.Context, ownID int64, selected *int64, creating bool) (*dto.WorkerEditPage, error) {
	workers, err := s.repo.Worker.List(ctx, false)
	if err != nil {
		return nil, storeError(s.logger, "list workers", err, "")
	}

	page := &dto.WorkerEditPage{Creating: creating, OwnID: ownID}
	page.Workers = make([]dto.WorkerOption, len(workers))
	for i, w := range workers {
		page.Workers[i] = dto.WorkerOption{ID: w.ID, Name: w.Name, Selected: selected != nil && *selected == w.ID}
	}

	if selected != nil && !creating {
		w, err := s.repo.Worker.GetByID(ctx, *selected)
		if err != nil {
			return nil, storeError(s.logger, "load worker", err, "Worker not found", zap.Int64("worker_id", *selected))
		}
		page.Selected = workerView(w)
	}
	return page, nil
}

func workerView(w *model.Worker) *dto.WorkerView {
	return &dto.WorkerView{
		ID:                 w.ID,
		Name:               w.Name,
		Admin:              w.Admin,
		Address:            w.Address,
		Phone:              w.Phone,
		Email:              w.Email,
		RateHourly:         money.FormatCents(w.RateHourlyCents),
		RateMileage:        money.FormatCents(w.RateMileageCents),
		RateDriveHourly:    money.FormatCents(w.RateDriveHourlyCents),
		FlatRate:           money.FormatCents(w.FlatRateCents),
		MustChangePassword: w.MustChangePassword,
	}
}

// ────── Create / Update ──────

func (s *workerService) Create(ctx context.Context, f *dto.WorkerForm) (int64, error) {
	if err := s.checkName(ctx, f.Name, 0); err != nil {
		return 0, err
	}

	w := &model.Worker{
		Name:                 f.Name,
		Admin:                f.Admin,
		Address:              f.Address,
		Phone:                f.Phone,
		Email:                f.Email,
		RateHourlyCents:      f.RateHourlyCents,
		RateMileageCents:     f.RateMileageCents,
		RateDriveHourlyCents: f.RateDriveHourlyCents,
		FlatRateCents:        f.FlatRateCents,
		MustChangePassword:   true,
	}
	if err := s.repo.Worker.Create(ctx, w); err != nil {
		return 0, storeError(s.logger, "create worker", err, "")
	}

	s.logger.Info("worker created", zap.Int64("worker_id", w.ID), zap.Bool("admin", w.Admin))
	return w.ID, nil
}

func (s *workerService) Update(ctx context.Context, f *dto.WorkerForm) error {
	if err := s.checkName(ctx, f.Name, f.ID); err != nil {
		return err
	}

	w := &model.Worker{
		ID:                   f.ID,
		Name:                 f.Name,
		Admin:                f.Admin,
		Address:              f.Address,
		Phone:                f.Phone,
		Email:                f.Email,
		RateHourlyCents:      f.RateHourlyCents,
		RateMileageCents:     f.RateMileageCents,
		RateDriveHourlyCents: f.RateDriveHourlyCents,
		FlatRateCents:        f.FlatRateCents,
	}
	if err := s.repo.Worker.Update(ctx, w); err != nil {
		return storeError(s.logger, "update worker", err, "Worker not found", zap.Int64("worker_id", f.ID))
	}

	s.logger.Info("worker updated", zap.Int64("worker_id", f.ID))
	return nil
}

// checkName rejects a blank name or one already used by a worker other
// than self.
func (s *workerService) checkName(ctx context.Context, name string, self int64) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.InvalidClientData("Name", name, "is required")
	}
	other, err := s.repo.Worker.GetByName(ctx, name)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return storeError(s.logger, "look up worker name", err, "")
	case other.ID != self:
		return pkgerrors.InvalidClientData("Name", name, "is already taken")
	}
	return nil
}

// ────── Status ──────

func (s *workerService) Deactivate(ctx context.Context, actor dto.Identity, id int64) error {
	if actor.WorkerID == id {
		return pkgerrors.AuthorizationDenied("You cannot deactivate yourself")
	}
	if err := s.repo.Worker.SetDeactivated(ctx, id, true); err != nil {
		return storeError(s.logger, "deactivate worker", err, "Worker not found", zap.Int64("worker_id", id))
	}
	s.logger.Info("worker deactivated", zap.Int64("worker_id", id), zap.Int64("by", actor.WorkerID))
	return nil
}

func (s *workerService) Restore(ctx context.Context, id int64) error {
	if err := s.repo.Worker.SetDeactivated(ctx, id, false); err != nil {
		return storeError(s.logger, "restore worker", err, "Worker not found", zap.Int64("worker_id", id))
	}
	s.logger.Info("worker restored", zap.Int64("worker_id", id))
	return nil
}

func (s *workerService) ResetPassword(ctx context.Context, id int64) error {
	if err := s.repo.Worker.SetMustChangePassword(ctx, id); err != nil {
		return storeError(s.logger, "reset password", err, "Worker not found", zap.Int64("worker_id", id))
	}
	s.logger.Info("password reset requested", zap.Int64("worker_id", id))
	return nil
}

func (s *workerService) ListDeactivated(ctx context.Context) ([]dto.WorkerOption, error) {
	workers, err := s.repo.Worker.List(ctx, true)
	if err != nil {
		return nil, storeError(s.logger, "list deactivated workers", err, "")
	}
	out := make([]dto.WorkerOption, len(workers))
	for i, w := range workers {
		out[i] = dto.WorkerOption{ID: w.ID, Name: w.Name}
	}
	return out, nil
}

// ────── Bootstrap ──────

func (s *workerService) CreateAdmin(ctx context.Context, name, password string) (int64, error) {
	if err := s.checkName(ctx, name, 0); err != nil {
		return 0, err
	}
	if len(password) < minAdminPasswordLen {
		return 0, pkgerrors.InvalidClientData("password", "", "must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, err
	}
	w := &model.Worker{Name: name, Admin: true, PasswordHash: string(hash)}
	if err := s.repo.Worker.Create(ctx, w); err != nil {
		return 0, storeError(s.logger, "create admin", err, "")
	}

	s.logger.Info("admin created", zap.Int64("worker_id", w.ID))
	return w.ID, nil
}
