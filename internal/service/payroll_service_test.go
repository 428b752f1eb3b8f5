package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	pkgerrors "cz4r/pkg/errors"
)

func setupTestPayrollService() (PayrollService, *fixture) {
	f := newFixture()
	return NewPayrollService(f.cfg, f.repo, f.clock, f.logger), f
}

func seedPayroll(f *fixture) {
	f.workers.add(model.Worker{Name: "alice"})
	a := f.jobs.add(model.Job{SiteName: "A", Date: day(16)})
	b := f.jobs.add(model.Job{SiteName: "B", Date: day(18)})
	c := f.jobs.add(model.Job{SiteName: "C", Date: day(10)})
	f.assignments.add(model.Assignment{JobID: a.ID, WorkerID: 1, SignIn: model.NewTimeOfDay(9, 0), SignOut: model.NewTimeOfDay(9, 10), ExtraExpenseCents: 250})
	f.assignments.add(model.Assignment{JobID: b.ID, WorkerID: 1, SignIn: model.NewTimeOfDay(9, 0), SignOut: model.NewTimeOfDay(17, 0), MilesDriven: 10})
	f.assignments.add(model.Assignment{JobID: c.ID, WorkerID: 1, SignIn: model.NewTimeOfDay(9, 0)})
}

func TestWorkerData_DefaultPeriod(t *testing.T) {
	svc, f := setupTestPayrollService()
	seedPayroll(f)

	page, err := svc.WorkerData(context.Background(), &dto.WorkerDataQuery{WorkerID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("expected data, got %v", err)
	}
	if page.From != "2024-03-16" || page.To != "2024-03-20" {
		t.Errorf("expected 2024-03-16..2024-03-20, got %s..%s", page.From, page.To)
	}
	if len(page.Entries) != 2 || page.Entries[0].Location != "B" {
		t.Fatalf("expected two entries newest first, got %+v", page.Entries)
	}
	if page.Totals.HoursWorked != "9.00" || page.Totals.ExtraExpenses != "2.50" {
		t.Errorf("unexpected totals %+v", page.Totals)
	}
	if page.Selected == nil || page.Selected.Name != "alice" {
		t.Errorf("expected alice selected, got %+v", page.Selected)
	}
}

func TestWorkerData_IncompleteShiftBlocksTotal(t *testing.T) {
	svc, f := setupTestPayrollService()
	seedPayroll(f)

	page, err := svc.WorkerData(context.Background(), &dto.WorkerDataQuery{
		WorkerID: int64Ptr(1), From: timePtr(day(1)), To: timePtr(day(31)),
	})
	if err != nil {
		t.Fatalf("expected data, got %v", err)
	}
	if len(page.Entries) != 3 {
		t.Fatalf("expected every shift listed, got %d", len(page.Entries))
	}
	if page.Totals.HoursWorked != NotApplicable || page.Totals.AllComplete {
		t.Errorf("expected N/A total, got %+v", page.Totals)
	}
	if page.Totals.MilesDriven != "10.00" {
		t.Errorf("expected complete shifts summed, got %s", page.Totals.MilesDriven)
	}
}

func TestWorkerData_Errors(t *testing.T) {
	svc, f := setupTestPayrollService()
	seedPayroll(f)

	page, err := svc.WorkerData(context.Background(), &dto.WorkerDataQuery{})
	if err != nil || page.Selected != nil || len(page.Workers) != 1 {
		t.Errorf("expected picker only, got %+v, %v", page, err)
	}
	if _, err := svc.WorkerData(context.Background(), &dto.WorkerDataQuery{WorkerID: int64Ptr(7)}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
	_, err = svc.WorkerData(context.Background(), &dto.WorkerDataQuery{WorkerID: int64Ptr(1), From: timePtr(day(10)), To: timePtr(day(5))})
	if !errors.Is(err, pkgerrors.ErrInvalidClientData) {
		t.Errorf("expected InvalidClientData for reversed range, got %v", err)
	}
}

func TestExport(t *testing.T) {
	svc, f := setupTestPayrollService()
	seedPayroll(f)

	buf, name, err := svc.Export(context.Background(), &dto.WorkerDataQuery{WorkerID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("expected workbook, got %v", err)
	}
	if name != "payroll_alice_2024-03-16_2024-03-20.xlsx" {
		t.Errorf("unexpected filename %s", name)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("expected a readable workbook, got %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Payroll")
	if err != nil {
		t.Fatalf("expected Payroll sheet, got %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected title, header, two shifts and totals, got %d rows", len(rows))
	}
	if rows[1][0] != "Date" || rows[2][1] != "B" || rows[4][0] != "Total" {
		t.Errorf("unexpected sheet layout %v", rows)
	}

	if _, _, err := svc.Export(context.Background(), &dto.WorkerDataQuery{}); !errors.Is(err, pkgerrors.ErrInvalidClientData) {
		t.Errorf("expected InvalidClientData without a worker, got %v", err)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
