package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return jsonbValue(l)
}

func (l *LineItems) Scan(value any) error { return jsonbScan(l, value) }

type Invoice struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:36;index;not null" json:"user_id"`
	ClientID      string    `gorm:"size:36;not null" json:"client_id"`
	InvoiceNumber string    `gorm:"not null" json:"invoice_number"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
	Items         LineItems `gorm:"type:jsonb" json:"items"`
	Subtotal      float64   `json:"subtotal"`
	Tax           float64   `json:"tax"`
	Discount      float64   `json:"discount"`
	Total         float64   `json:"total"`
	Currency      string    `gorm:"not null;default:USD" json:"currency"`
	Status        string    `gorm:"not null;default:draft" json:"status"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// InvoiceCounter backs per-user sequential invoice numbers. It is only
// touched through an atomic upsert so concurrent creates cannot hand out
// the same number twice.
type InvoiceCounter struct {
	UserID string `gorm:"primaryKey;size:36" json:"user_id"`
	N      int64  `gorm:"not null;default:0" json:"n"`
}

func (InvoiceCounter) TableName() string { return "invoice_counters" }
