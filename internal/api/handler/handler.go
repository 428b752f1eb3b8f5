package handler

import (
	"cz4r/config"
	"cz4r/internal/service"
)

// Handler groups every handler.
type Handler struct {
	Auth    *AuthHandler
	Page    *PageHandler
	Job     *JobHandler
	Worker  *WorkerHandler
	Shift   *ShiftHandler
	Payroll *PayrollHandler
	Health  *HealthHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(cfg *config.Config, svc *service.Service, checks map[string]HealthCheck) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, cfg.Auth.Cookie),
		Page:    NewPageHandler(),
		Job:     NewJobHandler(svc.Job),
		Worker:  NewWorkerHandler(svc.Worker),
		Shift:   NewShiftHandler(svc.Shift),
		Payroll: NewPayrollHandler(svc.Payroll),
		Health:  NewHealthHandler(checks),
	}
}
