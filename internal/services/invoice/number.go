package invoice

import (
	"fmt"

	"gorm.io/gorm"
)

// NextNumber hands out the next invoice number for a user, formatted
// "INV-00001". The counter row is bumped in a single upsert so two
// concurrent creates for the same user cannot receive the same number.
// Call inside the same transaction as the invoice insert.
func NextNumber(tx *gorm.DB, userID string) (string, error) {
	var n int64
	err := tx.Raw(`INSERT INTO invoice_counters (user_id, n) VALUES (?, 1)
		ON CONFLICT (user_id) DO UPDATE SET n = invoice_counters.n + 1
		RETURNING n`, userID).Scan(&n).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%05d", n), nil
}
