package service

import (
	"go.uber.org/zap"

	"cz4r/config"
	"cz4r/internal/repository"
	"cz4r/pkg/clock"
	"cz4r/pkg/jwt"
)

// Service groups every service.
type Service struct {
	Auth    AuthService
	Job     JobService
	Worker  WorkerService
	Shift   ShiftService
	Payroll PayrollService
}

// NewService wires the services. revoker may be nil, in which case logout
// only clears the cookie.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	revoker SessionRevoker,
	clk *clock.Clock,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, revoker, logger),
		Job:     NewJobService(cfg, repo, clk, logger),
		Worker:  NewWorkerService(repo, logger),
		Shift:   NewShiftService(repo, logger),
		Payroll: NewPayrollService(cfg, repo, clk, logger),
	}
}
