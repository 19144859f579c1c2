package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/models"
	"orbix/internal/services/invoice"
	"orbix/internal/services/timesheet"
)

func CreateTimeEntry(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID    *string    `json:"client_id"`
			ProjectID   *string    `json:"project_id"`
			Description string     `json:"description"`
			StartTime   *time.Time `json:"start_time"`
			EndTime     *time.Time `json:"end_time"`
			HourlyRate  *float64   `json:"hourly_rate"`
			Billable    *bool      `json:"billable"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Description) == "" || req.StartTime == nil {
			respondError(w, http.StatusBadRequest, "description and start_time required")
			return
		}
		e := models.TimeEntry{
			UserID:          auth.Subject(r.Context()),
			ClientID:        req.ClientID,
			ProjectID:       req.ProjectID,
			Description:     strings.TrimSpace(req.Description),
			StartTime:       *req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: timesheet.DurationMinutes(*req.StartTime, req.EndTime),
			HourlyRate:      req.HourlyRate,
			Billable:        true,
		}
		if req.Billable != nil {
			e.Billable = *req.Billable
		}
		if err := db.Create(&e).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, e)
	}
}

func ListTimeEntries(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Where("user_id = ?", auth.Subject(r.Context()))
		if c := r.URL.Query().Get("client_id"); c != "" {
			q = q.Where("client_id = ?", c)
		}
		if p := r.URL.Query().Get("project_id"); p != "" {
			q = q.Where("project_id = ?", p)
		}
		if from := r.URL.Query().Get("from"); from != "" {
			if ts, err := time.Parse(time.RFC3339, from); err == nil {
				q = q.Where("start_time >= ?", ts)
			}
		}
		if to := r.URL.Query().Get("to"); to != "" {
			if ts, err := time.Parse(time.RFC3339, to); err == nil {
				q = q.Where("start_time <= ?", ts)
			}
		}
		var entries []models.TimeEntry
		if err := q.Order("start_time desc").Find(&entries).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, entries)
	}
}

func GetTimeEntry(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.TimeEntry
		if err := db.First(&e, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "time entry")
			return
		}
		respondJSON(w, e)
	}
}

func UpdateTimeEntry(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID    *string    `json:"client_id"`
			ProjectID   *string    `json:"project_id"`
			Description *string    `json:"description"`
			StartTime   *time.Time `json:"start_time"`
			EndTime     *time.Time `json:"end_time"`
			HourlyRate  *float64   `json:"hourly_rate"`
			Billable    *bool      `json:"billable"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var e models.TimeEntry
		if err := db.First(&e, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "time entry")
			return
		}
		if req.ClientID != nil {
			e.ClientID = req.ClientID
		}
		if req.ProjectID != nil {
			e.ProjectID = req.ProjectID
		}
		if req.Description != nil {
			e.Description = *req.Description
		}
		if req.StartTime != nil {
			e.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			e.EndTime = req.EndTime
		}
		if req.HourlyRate != nil {
			e.HourlyRate = req.HourlyRate
		}
		if req.Billable != nil {
			e.Billable = *req.Billable
		}
		e.DurationMinutes = timesheet.DurationMinutes(e.StartTime, e.EndTime)
		e.UpdatedAt = time.Now()
		if err := db.Save(&e).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, e)
	}
}

func DeleteTimeEntry(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.TimeEntry{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "time entry not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// StartTimer opens a new running entry. The check inside the transaction
// gives a friendly message; the partial unique index on open entries is
// what actually guarantees a single running timer under concurrent
// requests.
func StartTimer(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Description string   `json:"description"`
			ClientID    *string  `json:"client_id"`
			ProjectID   *string  `json:"project_id"`
			HourlyRate  *float64 `json:"hourly_rate"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Description) == "" {
			respondError(w, http.StatusBadRequest, "description required")
			return
		}
		uid := auth.Subject(r.Context())
		e := models.TimeEntry{
			UserID:      uid,
			ClientID:    req.ClientID,
			ProjectID:   req.ProjectID,
			Description: strings.TrimSpace(req.Description),
			StartTime:   time.Now(),
			Billable:    true,
			HourlyRate:  req.HourlyRate,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			var open models.TimeEntry
			if err := tx.First(&open, "user_id = ? AND end_time IS NULL", uid).Error; err == nil {
				return errTimerRunning
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return tx.Create(&e).Error
		})
		if err != nil {
			if errors.Is(err, errTimerRunning) {
				respondError(w, http.StatusBadRequest, "timer already running")
				return
			}
			// unique index violation from a racing start lands here too
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		lg.Infow("timer started", "entry_id", e.ID)
		respondJSON(w, e)
	}
}

var errTimerRunning = errors.New("timer already running")

func StopTimer(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.TimeEntry
		if err := db.First(&e, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "time entry")
			return
		}
		now := time.Now()
		e.EndTime = &now
		e.DurationMinutes = timesheet.DurationMinutes(e.StartTime, e.EndTime)
		e.UpdatedAt = now
		if err := db.Save(&e).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lg.Infow("timer stopped", "entry_id", e.ID, "duration_minutes", e.DurationMinutes)
		respondJSON(w, e)
	}
}

func ActiveTimer(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e models.TimeEntry
		err := db.First(&e, "user_id = ? AND end_time IS NULL", auth.Subject(r.Context())).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondJSON(w, nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, e)
	}
}

func TimeStats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entries []models.TimeEntry
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).Find(&entries).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, timesheet.Summarize(entries, time.Now()))
	}
}

// GenerateInvoice turns selected billable time entries into a draft
// invoice through the standard create path.
func GenerateInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EntryIDs []string   `json:"entry_ids"`
			ClientID string     `json:"client_id"`
			DueDate  *time.Time `json:"due_date"`
			Tax      float64    `json:"tax"`
			Notes    *string    `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(req.EntryIDs) == 0 || req.ClientID == "" {
			respondError(w, http.StatusBadRequest, "entry_ids and client_id required")
			return
		}
		uid := auth.Subject(r.Context())
		var entries []models.TimeEntry
		if err := db.Where("user_id = ? AND id IN ?", uid, req.EntryIDs).Find(&entries).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lines, err := invoice.LinesFromEntries(entries)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		items, totals := invoice.ComputeTotals(lines, req.Tax, 0)
		inv := models.Invoice{
			UserID:    uid,
			ClientID:  req.ClientID,
			IssueDate: time.Now(),
			DueDate:   time.Now().AddDate(0, 0, 30),
			Items:     items,
			Subtotal:  totals.Subtotal,
			Tax:       totals.Tax,
			Discount:  totals.Discount,
			Total:     totals.Total,
			Currency:  "USD",
			Status:    models.InvoiceStatusDraft,
			Notes:     req.Notes,
		}
		if req.DueDate != nil {
			inv.DueDate = *req.DueDate
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			number, err := invoice.NextNumber(tx, uid)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
			return tx.Create(&inv).Error
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		lg.Infow("invoice generated from time entries", "invoice_id", inv.ID, "entries", len(entries))
		respondJSON(w, inv)
	}
}
