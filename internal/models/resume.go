package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonalInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

func (p PersonalInfo) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *PersonalInfo) Scan(value any) error        { return jsonbScan(p, value) }

type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type Experiences []Experience

func (e Experiences) Value() (driver.Value, error) {
	if e == nil {
		e = Experiences{}
	}
	return jsonbValue(e)
}

func (e *Experiences) Scan(value any) error { return jsonbScan(e, value) }

type Education struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       string  `json:"field"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date,omitempty"`
	GPA         *string `json:"gpa,omitempty"`
}

type Educations []Education

func (e Educations) Value() (driver.Value, error) {
	if e == nil {
		e = Educations{}
	}
	return jsonbValue(e)
}

func (e *Educations) Scan(value any) error { return jsonbScan(e, value) }

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return jsonbValue(s)
}

func (s *StringList) Scan(value any) error { return jsonbScan(s, value) }

type ResumeProject struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	URL          string `json:"url,omitempty"`
}

type ResumeProjects []ResumeProject

func (p ResumeProjects) Value() (driver.Value, error) {
	if p == nil {
		p = ResumeProjects{}
	}
	return jsonbValue(p)
}

func (p *ResumeProjects) Scan(value any) error { return jsonbScan(p, value) }

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url,omitempty"`
}

type Certifications []Certification

func (c Certifications) Value() (driver.Value, error) {
	if c == nil {
		c = Certifications{}
	}
	return jsonbValue(c)
}

func (c *Certifications) Scan(value any) error { return jsonbScan(c, value) }

type Resume struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	UserID         string         `gorm:"size:36;index;not null" json:"user_id"`
	Title          string         `gorm:"not null" json:"title"`
	PersonalInfo   PersonalInfo   `gorm:"type:jsonb" json:"personal_info"`
	Experience     Experiences    `gorm:"type:jsonb" json:"experience"`
	Education      Educations     `gorm:"type:jsonb" json:"education"`
	Skills         StringList     `gorm:"type:jsonb" json:"skills"`
	Projects       ResumeProjects `gorm:"type:jsonb" json:"projects"`
	Certifications Certifications `gorm:"type:jsonb" json:"certifications"`
	TemplateID     string         `gorm:"not null;default:modern" json:"template_id"`
	AtsScore       *int           `json:"ats_score,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
