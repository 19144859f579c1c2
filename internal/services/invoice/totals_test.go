package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbix/internal/models"
)

func TestComputeTotals(t *testing.T) {
	items := models.LineItems{
		{Description: "Design", Quantity: 2, Rate: 50, Amount: 9999}, // client amount ignored
		{Description: "Review", Quantity: 1, Rate: 30},
	}
	items, totals := ComputeTotals(items, 10, 5)

	assert.Equal(t, 100.0, items[0].Amount)
	assert.Equal(t, 30.0, items[1].Amount)
	assert.Equal(t, 130.0, totals.Subtotal)
	assert.Equal(t, 135.0, totals.Total)
}

func TestComputeTotalsRoundsToCents(t *testing.T) {
	items := models.LineItems{{Quantity: 3, Rate: 0.333}}
	_, totals := ComputeTotals(items, 0, 0)
	assert.Equal(t, 1.0, totals.Subtotal)
	assert.Equal(t, 1.0, totals.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	items, totals := ComputeTotals(models.LineItems{}, 0, 0)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, totals.Total)
}

func TestLinesFromEntries(t *testing.T) {
	rate := 50.0
	entries := []models.TimeEntry{
		{Description: "API work", DurationMinutes: 120, HourlyRate: &rate, Billable: true},
		{Description: "Lunch", DurationMinutes: 60, Billable: false},
		{Description: "Call", DurationMinutes: 90, HourlyRate: &rate, Billable: true},
	}
	lines, err := LinesFromEntries(entries)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "API work", lines[0].Description)
	assert.Equal(t, 2.0, lines[0].Quantity)
	assert.Equal(t, 50.0, lines[0].Rate)
	assert.Equal(t, 1.5, lines[1].Quantity)
}

func TestLinesFromEntriesNoBillable(t *testing.T) {
	entries := []models.TimeEntry{
		{Description: "Lunch", DurationMinutes: 60, Billable: false},
	}
	_, err := LinesFromEntries(entries)
	assert.ErrorIs(t, err, ErrNoBillableEntries)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.0, Round2(0.999))
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.236))
}
