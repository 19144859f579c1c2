// Package invoice holds the billing arithmetic shared by the invoice
// handlers: line totals, the per-user invoice number sequence, and the
// time-entry to line-item mapping. Client-supplied amounts are never
// trusted; everything here recomputes from quantity and rate.
package invoice

import (
	"math"

	"orbix/internal/models"
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Round2 rounds a monetary value to cents, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeTotals fills each item's amount from quantity*rate and derives
// subtotal and total. The returned slice aliases items.
func ComputeTotals(items models.LineItems, tax, discount float64) (models.LineItems, Totals) {
	var subtotal float64
	for i := range items {
		items[i].Amount = Round2(items[i].Quantity * items[i].Rate)
		subtotal += items[i].Amount
	}
	subtotal = Round2(subtotal)
	tax = Round2(tax)
	discount = Round2(discount)
	return items, Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discount,
		Total:    Round2(subtotal + tax - discount),
	}
}
