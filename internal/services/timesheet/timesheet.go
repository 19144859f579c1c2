// Package timesheet holds the time-tracking arithmetic: entry durations
// and the dashboard summary aggregation.
package timesheet

import (
	"math"
	"time"

	"orbix/internal/models"
)

// DurationMinutes is whole minutes elapsed between start and end, floored.
// An entry without an end time (a running timer) has duration 0.
func DurationMinutes(start time.Time, end *time.Time) int {
	if end == nil {
		return 0
	}
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

type Summary struct {
	TotalMinutes     int     `json:"total_minutes"`
	BillableMinutes  int     `json:"billable_minutes"`
	TotalEarnings    float64 `json:"total_earnings"`
	ThisWeekMinutes  int     `json:"this_week_minutes"`
	ThisMonthMinutes int     `json:"this_month_minutes"`
}

// Summarize aggregates the user's entries. Earnings only count billable
// entries with an hourly rate. The week starts Monday; the month is the
// calendar month containing now.
func Summarize(entries []models.TimeEntry, now time.Time) Summary {
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var s Summary
	var earnings float64
	for _, e := range entries {
		s.TotalMinutes += e.DurationMinutes
		if e.Billable {
			s.BillableMinutes += e.DurationMinutes
			if e.HourlyRate != nil {
				earnings += float64(e.DurationMinutes) / 60 * *e.HourlyRate
			}
		}
		if !e.StartTime.Before(weekStart) {
			s.ThisWeekMinutes += e.DurationMinutes
		}
		if !e.StartTime.Before(monthStart) {
			s.ThisMonthMinutes += e.DurationMinutes
		}
	}
	s.TotalEarnings = math.Round(earnings*100) / 100
	return s
}

func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7
	}
	return day.AddDate(0, 0, -(wd - 1))
}
