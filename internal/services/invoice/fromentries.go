package invoice

import (
	"errors"

	"orbix/internal/models"
)

var ErrNoBillableEntries = errors.New("no billable time entries selected")

// LinesFromEntries maps billable time entries to invoice line items:
// quantity is hours worked, rate the entry's hourly rate. Entries marked
// non-billable are skipped; if nothing remains the invoice cannot be
// generated.
func LinesFromEntries(entries []models.TimeEntry) (models.LineItems, error) {
	items := models.LineItems{}
	for _, e := range entries {
		if !e.Billable {
			continue
		}
		var rate float64
		if e.HourlyRate != nil {
			rate = *e.HourlyRate
		}
		items = append(items, models.LineItem{
			Description: e.Description,
			Quantity:    Round2(float64(e.DurationMinutes) / 60),
			Rate:        rate,
		})
	}
	if len(items) == 0 {
		return nil, ErrNoBillableEntries
	}
	return items, nil
}
