package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"cz4r/config"
	"cz4r/internal/dto"
	"cz4r/internal/repository"
	"cz4r/pkg/clock"
	pkgerrors "cz4r/pkg/errors"
)

// PayrollService per-worker pay period reports
type PayrollService interface {
	// WorkerData aggregates the selected worker's shifts. Without a worker
	// only the picker is filled; without dates the current semi-monthly
	// period is used.
	WorkerData(ctx context.Context, q *dto.WorkerDataQuery) (*dto.WorkerDataPage, error)
	// Export renders the same report as an .xlsx workbook.
	Export(ctx context.Context, q *dto.WorkerDataQuery) (*bytes.Buffer, string, error)
}

type payrollService struct {
	repo   *repository.Repository
	clock  *clock.Clock
	floor  float64
	logger *zap.Logger
}

// NewPayrollService creates a PayrollService.
func NewPayrollService(cfg *config.Config, repo *repository.Repository, clk *clock.Clock, logger *zap.Logger) PayrollService {
	return &payrollService{
		repo:   repo,
		clock:  clk,
		floor:  cfg.Payroll.HoursFloor,
		logger: logger,
	}
}

func (s *payrollService) WorkerData(ctx context.Context, q *dto.WorkerDataQuery) (*dto.WorkerDataPage, error) {
	workers, err := s.repo.Worker.List(ctx, false)
	if err != nil {
		return nil, storeError(s.logger, "list workers", err, "")
	}

	page := &dto.WorkerDataPage{Workers: make([]dto.WorkerOption, len(workers))}
	for i, w := range workers {
		page.Workers[i] = dto.WorkerOption{ID: w.ID, Name: w.Name, Selected: q.WorkerID != nil && *q.WorkerID == w.ID}
	}
	if q.WorkerID == nil {
		return page, nil
	}

	if err := s.fill(ctx, q, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *payrollService) fill(ctx context.Context, q *dto.WorkerDataQuery, page *dto.WorkerDataPage) error {
	id := *q.WorkerID
	w, err := s.repo.Worker.GetByID(ctx, id)
	if err != nil {
		return storeError(s.logger, "load worker", err, "Worker not found", zap.Int64("worker_id", id))
	}

	from, to := DefaultPayPeriod(s.clock.Today())
	if q.From != nil {
		from = *q.From
	}
	if q.To != nil {
		to = *q.To
	}
	if to.Before(from) {
		return pkgerrors.InvalidClientData("end_date", to.Format(time.DateOnly), "is before the start date")
	}

	shifts, err := s.repo.Assignment.ListShifts(ctx, id, from, to)
	if err != nil {
		return storeError(s.logger, "list shifts", err, "", zap.Int64("worker_id", id))
	}

	page.Selected = &dto.WorkerOption{ID: w.ID, Name: w.Name, Selected: true}
	page.From = from.Format(time.DateOnly)
	page.To = to.Format(time.DateOnly)
	page.Entries, page.Totals = AggregatePayroll(shifts, s.floor)

	s.logger.Debug("payroll data retrieved",
		zap.Int64("worker_id", id),
		zap.String("from", page.From),
		zap.String("to", page.To),
		zap.Int("shifts", len(shifts)),
	)
	return nil
}

// ────── Export ──────

var payrollHeader = []interface{}{
	"Date", "Location", "Flat rate", "Completed", "Hours worked", "True hours worked",
	"Hours driven", "Miles driven", "Extra expenses", "Notes",
}

func (s *payrollService) Export(ctx context.Context, q *dto.WorkerDataQuery) (*bytes.Buffer, string, error) {
	if q.WorkerID == nil {
		return nil, "", pkgerrors.InvalidClientData("worker", "", "is required")
	}
	page := &dto.WorkerDataPage{}
	if err := s.fill(ctx, q, page); err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	numStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 2})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s: %s to %s", page.Selected.Name, page.From, page.To))
	f.SetSheetRow(sheet, "A2", &payrollHeader)
	f.SetCellStyle(sheet, "A2", "J2", headerStyle)
	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 28)
	f.SetColWidth(sheet, "C", "I", 14)
	f.SetColWidth(sheet, "J", "J", 40)

	row := 3
	for _, e := range page.Entries {
		values := []interface{}{e.Date, e.Location, e.FlatRate, e.Completed}
		if e.Completed {
			values = append(values, e.BilledHours, e.RawHours)
		} else {
			values = append(values, e.HoursWorked, e.TrueHoursWorked)
		}
		values = append(values, e.HoursDrivenValue, e.MilesDrivenValue, float64(e.ExtraExpenseCents)/100, e.Notes)
		f.SetSheetRow(sheet, cell("A", row), &values)
		row++
	}

	t := page.Totals
	totals := []interface{}{"Total", "", "", t.AllComplete}
	if t.AllComplete {
		totals = append(totals, t.BilledHours)
	} else {
		totals = append(totals, t.HoursWorked)
	}
	totals = append(totals, "", t.HoursDrivenValue, t.MilesDrivenValue, float64(t.ExtraExpenseCents)/100)
	f.SetSheetRow(sheet, cell("A", row), &totals)
	f.SetCellStyle(sheet, "E3", cell("I", row), numStyle)
	f.SetCellStyle(sheet, cell("A", row), cell("J", row), headerStyle)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write payroll workbook", zap.Error(err))
		return nil, "", err
	}

	name := strings.ReplaceAll(page.Selected.Name, " ", "_")
	filename := fmt.Sprintf("payroll_%s_%s_%s.xlsx", name, page.From, page.To)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
