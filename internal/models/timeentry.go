package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeEntry struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	UserID          string     `gorm:"size:36;index;not null" json:"user_id"`
	ClientID        *string    `gorm:"size:36" json:"client_id,omitempty"`
	ProjectID       *string    `gorm:"size:36" json:"project_id,omitempty"`
	Description     string     `gorm:"not null" json:"description"`
	StartTime       time.Time  `gorm:"not null" json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `gorm:"not null;default:0" json:"duration_minutes"`
	HourlyRate      *float64   `json:"hourly_rate,omitempty"`
	Billable        bool       `gorm:"not null;default:true" json:"billable"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (TimeEntry) TableName() string { return "time_entries" }

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Running reports whether the entry is an open timer.
func (e *TimeEntry) Running() bool { return e.EndTime == nil }
