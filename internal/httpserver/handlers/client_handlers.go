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

func CreateClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name    string  `json:"name"`
			Email   string  `json:"email"`
			Phone   *string `json:"phone,omitempty"`
			Address *string `json:"address,omitempty"`
			Company *string `json:"company,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
			respondError(w, http.StatusBadRequest, "name and email required")
			return
		}
		c := models.Client{
			UserID:  auth.Subject(r.Context()),
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Phone:   req.Phone,
			Address: req.Address,
			Company: req.Company,
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, c)
	}
}

func ListClients(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Client
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).
			Order("created_at desc").Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, cs)
	}
}

func GetClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Client
		if err := db.First(&c, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "client")
			return
		}
		respondJSON(w, c)
	}
}

func UpdateClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name    *string `json:"name"`
			Email   *string `json:"email"`
			Phone   *string `json:"phone"`
			Address *string `json:"address"`
			Company *string `json:"company"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var c models.Client
		if err := db.First(&c, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "client")
			return
		}
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Email != nil {
			c.Email = *req.Email
		}
		if req.Phone != nil {
			c.Phone = req.Phone
		}
		if req.Address != nil {
			c.Address = req.Address
		}
		if req.Company != nil {
			c.Company = req.Company
		}
		c.UpdatedAt = time.Now()
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, c)
	}
}

func DeleteClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Client{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "client not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// ClientStats aggregates what the user has billed and tracked against one
// client.
func ClientStats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		var c models.Client
		if err := db.First(&c, "id = ? AND user_id = ?", chi.URLParam(r, "id"), uid).Error; err != nil {
			notFoundOr500(w, err, "client")
			return
		}

		var invoices []models.Invoice
		if err := db.Where("user_id = ? AND client_id = ?", uid, c.ID).Find(&invoices).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		var billed, paid float64
		for _, inv := range invoices {
			billed += inv.Total
			if inv.Status == models.InvoiceStatusPaid {
				paid += inv.Total
			}
		}

		var minutes int64
		db.Model(&models.TimeEntry{}).
			Where("user_id = ? AND client_id = ?", uid, c.ID).
			Select("COALESCE(SUM(duration_minutes), 0)").Scan(&minutes)

		var contracts int64
		db.Model(&models.Contract{}).Where("user_id = ? AND client_id = ?", uid, c.ID).Count(&contracts)

		respondJSON(w, map[string]any{
			"invoice_count":   len(invoices),
			"total_billed":    billed,
			"total_paid":      paid,
			"minutes_tracked": minutes,
			"contract_count":  contracts,
		})
	}
}
