package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/models"
)

func CreateProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID    *string    `json:"client_id"`
			Name        string     `json:"name"`
			Description *string    `json:"description"`
			HourlyRate  *float64   `json:"hourly_rate"`
			Budget      *float64   `json:"budget"`
			Deadline    *time.Time `json:"deadline"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			respondError(w, http.StatusBadRequest, "name required")
			return
		}
		p := models.Project{
			UserID:      auth.Subject(r.Context()),
			ClientID:    req.ClientID,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			HourlyRate:  req.HourlyRate,
			Budget:      req.Budget,
			Deadline:    req.Deadline,
			Status:      models.ProjectStatusActive,
		}
		if err := db.Create(&p).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, p)
	}
}

func ListProjects(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Where("user_id = ?", auth.Subject(r.Context()))
		if s := r.URL.Query().Get("status"); s != "" {
			q = q.Where("status = ?", s)
		}
		if c := r.URL.Query().Get("client_id"); c != "" {
			q = q.Where("client_id = ?", c)
		}
		var ps []models.Project
		if err := q.Order("created_at desc").Find(&ps).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, ps)
	}
}

func GetProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p models.Project
		if err := db.First(&p, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "project")
			return
		}
		respondJSON(w, p)
	}
}

func UpdateProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID    *string    `json:"client_id"`
			Name        *string    `json:"name"`
			Description *string    `json:"description"`
			HourlyRate  *float64   `json:"hourly_rate"`
			Budget      *float64   `json:"budget"`
			Deadline    *time.Time `json:"deadline"`
			Status      *string    `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Status != nil && !models.ValidProjectStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		var p models.Project
		if err := db.First(&p, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "project")
			return
		}
		if req.ClientID != nil {
			p.ClientID = req.ClientID
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = req.Description
		}
		if req.HourlyRate != nil {
			p.HourlyRate = req.HourlyRate
		}
		if req.Budget != nil {
			p.Budget = req.Budget
		}
		if req.Deadline != nil {
			p.Deadline = req.Deadline
		}
		if req.Status != nil {
			p.Status = *req.Status
		}
		p.UpdatedAt = time.Now()
		if err := db.Save(&p).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, p)
	}
}

func DeleteProject(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Project{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "project not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}
