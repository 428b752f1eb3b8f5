package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cz4r/internal/model"
)

func shift(in, out model.TimeOfDay, hoursDriven, miles float64, cents int64) model.ShiftRecord {
	return model.ShiftRecord{
		Assignment: model.Assignment{
			JobID: 1, WorkerID: 2,
			SignIn: in, SignOut: out,
			HoursDriven: hoursDriven, MilesDriven: miles, ExtraExpenseCents: cents,
		},
		Date:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		SiteName: "Depot",
	}
}

func TestAggregate_FloorApplies(t *testing.T) {
	entries, totals := AggregatePayroll([]model.ShiftRecord{
		shift(model.NewTimeOfDay(9, 0), model.NewTimeOfDay(9, 10), 0, 0, 0),
	}, DefaultHoursFloor)

	require.Len(t, entries, 1)
	assert.Equal(t, 1.0, entries[0].BilledHours)
	assert.Equal(t, "1.00", entries[0].HoursWorked)
	assert.Equal(t, "0.17", entries[0].TrueHoursWorked)
	assert.Equal(t, "1.00", totals.HoursWorked)
	assert.Equal(t, "2024-05-10", entries[0].Date)
}

func TestAggregate_FloorNotBinding(t *testing.T) {
	entries, _ := AggregatePayroll([]model.ShiftRecord{
		shift(model.NewTimeOfDay(9, 0), model.NewTimeOfDay(17, 0), 0, 0, 0),
	}, DefaultHoursFloor)

	assert.Equal(t, 8.0, entries[0].BilledHours)
	assert.Equal(t, "8.00", entries[0].HoursWorked)
}

func TestAggregate_AllComplete(t *testing.T) {
	entries, totals := AggregatePayroll([]model.ShiftRecord{
		shift(model.NewTimeOfDay(8, 0), model.NewTimeOfDay(12, 30), 1.5, 20, 1250),
		shift(model.NewTimeOfDay(13, 0), model.NewTimeOfDay(13, 20), 0.25, 4.5, 99),
	}, DefaultHoursFloor)

	require.Len(t, entries, 2)
	assert.True(t, totals.AllComplete)
	assert.Equal(t, 2, totals.CompletedShifts)
	assert.Equal(t, "5.50", totals.HoursWorked)
	assert.Equal(t, "1.75", totals.HoursDriven)
	assert.Equal(t, "24.50", totals.MilesDriven)
	assert.Equal(t, "13.49", totals.ExtraExpenses)
	assert.Equal(t, int64(1349), totals.ExtraExpenseCents)
}

func TestAggregate_SomeIncomplete(t *testing.T) {
	entries, totals := AggregatePayroll([]model.ShiftRecord{
		shift(model.NewTimeOfDay(8, 0), model.NewTimeOfDay(10, 0), 1, 10, 500),
		shift(model.NewTimeOfDay(11, 0), model.TimeOfDay{}, 2, 30, 700),
	}, DefaultHoursFloor)

	require.Len(t, entries, 2)
	assert.True(t, entries[0].Completed)
	assert.False(t, entries[1].Completed)
	assert.Equal(t, NotApplicable, entries[1].HoursWorked)
	assert.Equal(t, NotApplicable, entries[1].TrueHoursWorked)
	assert.Equal(t, "2.00", entries[1].HoursDriven)

	assert.False(t, totals.AllComplete)
	assert.Equal(t, NotApplicable, totals.HoursWorked)
	assert.Equal(t, 2.0, totals.BilledHours)
	assert.Equal(t, "1.00", totals.HoursDriven)
	assert.Equal(t, "10.00", totals.MilesDriven)
	assert.Equal(t, "5.00", totals.ExtraExpenses)
	assert.Equal(t, 1, totals.CompletedShifts)
	assert.Equal(t, 2, totals.Shifts)
}

func TestAggregate_Empty(t *testing.T) {
	entries, totals := AggregatePayroll(nil, DefaultHoursFloor)

	assert.Empty(t, entries)
	assert.True(t, totals.AllComplete)
	assert.Equal(t, "0.00", totals.HoursWorked)
	assert.Equal(t, "0.00", totals.ExtraExpenses)
}

func TestWorkedHours_Reversed(t *testing.T) {
	h, ok := WorkedHours(model.NewTimeOfDay(17, 0), model.NewTimeOfDay(9, 0))
	require.True(t, ok)
	assert.Equal(t, -8.0, h)

	_, ok = WorkedHours(model.TimeOfDay{}, model.NewTimeOfDay(2, 30))
	assert.False(t, ok)
}

func TestAggregate_ReversedTimesBillFloor(t *testing.T) {
	shifts := []model.ShiftRecord{{
		Assignment: model.Assignment{SignIn: model.NewTimeOfDay(17, 0), SignOut: model.NewTimeOfDay(9, 0)},
		Date:       time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC),
	}}
	entries, totals := AggregatePayroll(shifts, DefaultHoursFloor)

	require.Len(t, entries, 1)
	assert.Equal(t, 1.0, entries[0].BilledHours)
	assert.Equal(t, "1.00", entries[0].HoursWorked)
	assert.Equal(t, "-8.00", entries[0].TrueHoursWorked)
	assert.Equal(t, "1.00", totals.HoursWorked)
}

func TestDefaultPayPeriod(t *testing.T) {
	from, to := DefaultPayPeriod(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), to)

	from, to = DefaultPayPeriod(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), to)

	from, _ = DefaultPayPeriod(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, from.Day())
	from, _ = DefaultPayPeriod(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 16, from.Day())
}
