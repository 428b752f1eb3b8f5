package service

import (
	"context"
	"errors"
	"testing"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	pkgerrors "cz4r/pkg/errors"
)

func TestShiftGet(t *testing.T) {
	f := newFixture()
	svc := NewShiftService(f.repo, f.logger)
	j := f.jobs.add(model.Job{SiteName: "Depot", WorkOrder: "WO-1", Date: day(4), Notes: "gate code 12"})
	f.assignments.add(model.Assignment{
		JobID: j.ID, WorkerID: 3,
		SignIn: model.NewTimeOfDay(7, 5), HoursDriven: 1.5, ExtraExpenseCents: 1234,
	})

	page, err := svc.Get(context.Background(), j.ID, 3)
	if err != nil {
		t.Fatalf("expected page, got %v", err)
	}
	if page.SignIn != "07:05" || page.SignOut != "" {
		t.Errorf("expected 07:05 and blank sign-out, got %q %q", page.SignIn, page.SignOut)
	}
	if page.Hours != 1 || page.Minutes != 30 {
		t.Errorf("expected 1h30m, got %dh%dm", page.Hours, page.Minutes)
	}
	if page.ExtraExpense != "12.34" || page.Date != "March 4, 2024" || page.JobNotes != "gate code 12" {
		t.Errorf("unexpected page %+v", page)
	}

	if _, err := svc.Get(context.Background(), j.ID, 9); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestShiftRecord(t *testing.T) {
	f := newFixture()
	svc := NewShiftService(f.repo, f.logger)
	f.assignments.add(model.Assignment{JobID: 1, WorkerID: 2})

	err := svc.Record(context.Background(), &dto.ShiftForm{
		JobID: 1, WorkerID: 2,
		SignIn: model.NewTimeOfDay(8, 0), SignOut: model.NewTimeOfDay(16, 30),
		MilesDriven: 12.5, HoursDriven: 1, MinutesDriven: 15, ExtraExpenseCents: 500, Notes: "done",
	})
	if err != nil {
		t.Fatalf("expected record to succeed, got %v", err)
	}
	a, _ := f.assignments.Get(context.Background(), 1, 2)
	if a.HoursDriven != 1.25 || !a.Complete() || a.Notes != "done" {
		t.Errorf("unexpected stored shift %+v", a)
	}

	err = svc.Record(context.Background(), &dto.ShiftForm{JobID: 1, WorkerID: 3})
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("expected NotFound for an unassigned worker, got %v", err)
	}
}

func TestShiftRecord_RejectsReversedTimes(t *testing.T) {
	f := newFixture()
	svc := NewShiftService(f.repo, f.logger)
	f.assignments.add(model.Assignment{JobID: 1, WorkerID: 2})

	err := svc.Record(context.Background(), &dto.ShiftForm{
		JobID: 1, WorkerID: 2,
		SignIn: model.NewTimeOfDay(17, 0), SignOut: model.NewTimeOfDay(9, 0),
	})
	if !errors.Is(err, pkgerrors.ErrInvalidClientData) {
		t.Fatalf("expected InvalidClientData, got %v", err)
	}
	a, _ := f.assignments.Get(context.Background(), 1, 2)
	if a.SignIn.Valid || a.SignOut.Valid {
		t.Errorf("expected nothing stored, got %+v", a)
	}
}

func TestSplitHours(t *testing.T) {
	cases := []struct {
		in   float64
		h, m int
	}{
		{0, 0, 0},
		{1.25, 1, 15},
		{2.999, 3, 0},
		{0.5, 0, 30},
	}
	for _, tc := range cases {
		h, m := splitHours(tc.in)
		if h != tc.h || m != tc.m {
			t.Errorf("splitHours(%v): expected %d,%d got %d,%d", tc.in, tc.h, tc.m, h, m)
		}
	}
}
