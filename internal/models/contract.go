package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContractStatusDraft     = "draft"
	ContractStatusSent      = "sent"
	ContractStatusSigned    = "signed"
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
)

type Party struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

type Parties []Party

func (p Parties) Value() (driver.Value, error) {
	if p == nil {
		p = Parties{}
	}
	return jsonbValue(p)
}

func (p *Parties) Scan(value any) error { return jsonbScan(p, value) }

type ContractTerms struct {
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	PaymentAmount *float64   `json:"payment_amount,omitempty"`
	Deliverables  []string   `json:"deliverables"`
}

func (t ContractTerms) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *ContractTerms) Scan(value any) error        { return jsonbScan(t, value) }

type Contract struct {
	ID         string        `gorm:"primaryKey;size:36" json:"id"`
	UserID     string        `gorm:"size:36;index;not null" json:"user_id"`
	ClientID   *string       `gorm:"size:36" json:"client_id,omitempty"`
	Title      string        `gorm:"not null" json:"title"`
	Type       string        `gorm:"not null" json:"type"`
	Content    string        `gorm:"type:text" json:"content"`
	Parties    Parties       `gorm:"type:jsonb" json:"parties"`
	Terms      ContractTerms `gorm:"type:jsonb" json:"terms"`
	Status     string        `gorm:"not null;default:draft" json:"status"`
	TemplateID *string       `json:"template_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func ValidContractStatus(s string) bool {
	switch s {
	case ContractStatusDraft, ContractStatusSent, ContractStatusSigned,
		ContractStatusActive, ContractStatusCompleted:
		return true
	}
	return false
}
