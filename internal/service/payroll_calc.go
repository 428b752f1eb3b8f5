package service

import (
	"fmt"
	"math"
	"time"

	"cz4r/internal/dto"
	"cz4r/internal/model"
	"cz4r/pkg/money"
)

const (
	// DefaultHoursFloor is the minimum billable hours per completed shift.
	DefaultHoursFloor = 1.0
	// NotApplicable stands in for worked hours that cannot be computed yet.
	NotApplicable = "N/A"
)

// WorkedHours returns sign-out minus sign-in in hours. The result is
// negative when the times are reversed; the billable floor covers that.
func WorkedHours(in, out model.TimeOfDay) (float64, bool) {
	if !in.Valid || !out.Valid {
		return 0, false
	}
	return (out.Duration() - in.Duration()).Hours(), true
}

// AggregatePayroll builds one entry per shift, in input order, and the period
// totals. Every shift is listed; incomplete ones show NotApplicable hours.
func AggregatePayroll(shifts []model.ShiftRecord, floor float64) ([]dto.PayrollEntry, dto.PayrollTotals) {
	entries := make([]dto.PayrollEntry, 0, len(shifts))
	totals := dto.PayrollTotals{AllComplete: true, Shifts: len(shifts)}

	for i := range shifts {
		s := &shifts[i]
		e := dto.PayrollEntry{
			JobID:             s.JobID,
			WorkerID:          s.WorkerID,
			Date:              s.Date.Format(time.DateOnly),
			Location:          s.SiteName,
			FlatRate:          s.UsingFlatRate,
			HoursWorked:       NotApplicable,
			TrueHoursWorked:   NotApplicable,
			HoursDriven:       formatHours(s.HoursDriven),
			MilesDriven:       formatHours(s.MilesDriven),
			ExtraExpenses:     money.FormatCents(s.ExtraExpenseCents),
			Notes:             s.Notes,
			HoursDrivenValue:  s.HoursDriven,
			MilesDrivenValue:  s.MilesDriven,
			ExtraExpenseCents: s.ExtraExpenseCents,
		}

		raw, ok := WorkedHours(s.SignIn, s.SignOut)
		if !ok {
			totals.AllComplete = false
			entries = append(entries, e)
			continue
		}

		e.Completed = true
		e.RawHours = raw
		e.BilledHours = math.Max(raw, floor)
		e.TrueHoursWorked = formatHours(raw)
		e.HoursWorked = formatHours(e.BilledHours)
		entries = append(entries, e)

		totals.CompletedShifts++
		totals.BilledHours += e.BilledHours
		totals.HoursDrivenValue += s.HoursDriven
		totals.MilesDrivenValue += s.MilesDriven
		totals.ExtraExpenseCents += s.ExtraExpenseCents
	}

	totals.HoursWorked = NotApplicable
	if totals.AllComplete {
		totals.HoursWorked = formatHours(totals.BilledHours)
	}
	totals.HoursDriven = formatHours(totals.HoursDrivenValue)
	totals.MilesDriven = formatHours(totals.MilesDrivenValue)
	totals.ExtraExpenses = money.FormatCents(totals.ExtraExpenseCents)

	return entries, totals
}

// DefaultPayPeriod returns the semi-monthly period containing today: the
// 1st through today for days 1-15, otherwise the 16th through today.
func DefaultPayPeriod(today time.Time) (from, to time.Time) {
	y, m, d := today.Date()
	start := 1
	if d > 15 {
		start = 16
	}
	return time.Date(y, m, start, 0, 0, 0, 0, time.UTC), time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatHours(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
