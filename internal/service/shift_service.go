package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	"cz4r/internal/repository"
	pkgerrors "cz4r/pkg/errors"
	"cz4r/pkg/money"
)

// ShiftService check-in/out for one worker on one job
type ShiftService interface {
	Get(ctx context.Context, jobID, workerID int64) (*dto.ShiftPage, error)
	// Record overwrites the shift fields. Driven time is stored as hours.
	Record(ctx context.Context, f *dto.ShiftForm) error
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService creates a ShiftService.
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) Get(ctx context.Context, jobID, workerID int64) (*dto.ShiftPage, error) {
	fields := []zap.Field{zap.Int64("job_id", jobID), zap.Int64("worker_id", workerID)}

	a, err := s.repo.Assignment.Get(ctx, jobID, workerID)
	if err != nil {
		return nil, storeError(s.logger, "load assignment", err, "This worker is not assigned to this job", fields...)
	}
	job, err := s.repo.Job.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError(s.logger, "load job", err, "Job not found", fields...)
	}

	hours, minutes := splitHours(a.HoursDriven)
	return &dto.ShiftPage{
		JobID:        jobID,
		WorkerID:     workerID,
		WorkOrder:    job.WorkOrder,
		ServiceCode:  job.ServiceCode,
		SiteName:     job.SiteName,
		Address:      job.Address,
		Date:         job.Date.Format(displayDate),
		SignIn:       a.SignIn.String(),
		SignOut:      a.SignOut.String(),
		Miles:        a.MilesDriven,
		Hours:        hours,
		Minutes:      minutes,
		ExtraExpense: money.FormatCents(a.ExtraExpenseCents),
		Notes:        a.Notes,
		JobNotes:     job.Notes,
	}, nil
}

// splitHours turns fractional hours into whole hours and minutes.
func splitHours(h float64) (int, int) {
	whole := math.Floor(h)
	minutes := int(math.Round(60 * (h - whole)))
	if minutes == 60 {
		return int(whole) + 1, 0
	}
	return int(whole), minutes
}

func (s *shiftService) Record(ctx context.Context, f *dto.ShiftForm) error {
	if f.SignIn.Valid && f.SignOut.Valid && f.SignOut.Seconds < f.SignIn.Seconds {
		return pkgerrors.InvalidClientData("Signout", f.SignOut.String(), "is earlier than the sign-in time")
	}
	a := &model.Assignment{
		JobID:             f.JobID,
		WorkerID:          f.WorkerID,
		SignIn:            f.SignIn,
		SignOut:           f.SignOut,
		MilesDriven:       f.MilesDriven,
		HoursDriven:       f.HoursDriven + f.MinutesDriven/60,
		ExtraExpenseCents: f.ExtraExpenseCents,
		Notes:             f.Notes,
	}

	n, err := s.repo.Assignment.UpdateShift(ctx, a)
	if err != nil {
		return storeError(s.logger, "record shift", err, "",
			zap.Int64("job_id", f.JobID), zap.Int64("worker_id", f.WorkerID))
	}
	if n == 0 {
		return pkgerrors.NotFound("This worker is not assigned to this job")
	}

	s.logger.Info("shift recorded",
		zap.Int64("job_id", f.JobID),
		zap.Int64("worker_id", f.WorkerID),
		zap.Bool("complete", a.Complete()),
	)
	return nil
}
