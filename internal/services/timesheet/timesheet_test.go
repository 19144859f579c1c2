package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orbix/internal/models"
)

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	end := start.Add(125 * time.Minute)
	assert.Equal(t, 125, DurationMinutes(start, &end))

	// floored, not rounded
	end = start.Add(124*time.Minute + 59*time.Second)
	assert.Equal(t, 124, DurationMinutes(start, &end))

	assert.Equal(t, 0, DurationMinutes(start, nil))

	before := start.Add(-time.Hour)
	assert.Equal(t, 0, DurationMinutes(start, &before))
}

func TestSummarize(t *testing.T) {
	// Wednesday; week starts Monday Aug 24, month starts Aug 1
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	rate := 60.0

	entries := []models.TimeEntry{
		{StartTime: now.AddDate(0, 0, -1), DurationMinutes: 90, Billable: true, HourlyRate: &rate},
		{StartTime: now.AddDate(0, 0, -10), DurationMinutes: 30, Billable: true, HourlyRate: &rate},
		{StartTime: now.AddDate(0, -2, 0), DurationMinutes: 60, Billable: false},
	}
	s := Summarize(entries, now)

	assert.Equal(t, 180, s.TotalMinutes)
	assert.Equal(t, 120, s.BillableMinutes)
	assert.Equal(t, 120.0, s.TotalEarnings) // 2h * $60
	assert.Equal(t, 90, s.ThisWeekMinutes)
	assert.Equal(t, 120, s.ThisMonthMinutes)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, time.Now())
	assert.Equal(t, Summary{}, s)
}

func TestStartOfWeekSunday(t *testing.T) {
	// Sunday belongs to the week starting the previous Monday
	sunday := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), startOfWeek(sunday))
}
