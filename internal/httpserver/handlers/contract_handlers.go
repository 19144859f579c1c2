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
	"orbix/internal/services/contracttpl"
)

func CreateContract(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID   *string              `json:"client_id"`
			Title      string               `json:"title"`
			Type       string               `json:"type"`
			Content    string               `json:"content"`
			Parties    models.Parties       `json:"parties"`
			Terms      models.ContractTerms `json:"terms"`
			TemplateID *string              `json:"template_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Title) == "" || req.Type == "" {
			respondError(w, http.StatusBadRequest, "title and type required")
			return
		}

		content := req.Content
		if content == "" {
			rendered, err := contracttpl.Render(req.Type, templateData(req.Parties, req.Terms))
			if err != nil {
				respondError(w, http.StatusBadRequest, err.Error())
				return
			}
			content = rendered
		}

		c := models.Contract{
			UserID:     auth.Subject(r.Context()),
			ClientID:   req.ClientID,
			Title:      strings.TrimSpace(req.Title),
			Type:       req.Type,
			Content:    content,
			Parties:    req.Parties,
			Terms:      req.Terms,
			Status:     models.ContractStatusDraft,
			TemplateID: req.TemplateID,
		}
		if err := db.Create(&c).Error; err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, c)
	}
}

func templateData(parties models.Parties, terms models.ContractTerms) contracttpl.Data {
	d := contracttpl.Data{
		Amount: terms.PaymentAmount,
		Scope:  strings.Join(terms.Deliverables, "\n"),
		Date:   time.Now(),
	}
	if len(parties) > 0 {
		d.PartyA = parties[0].Name
	}
	if len(parties) > 1 {
		d.PartyB = parties[1].Name
	}
	if terms.StartDate != nil && terms.EndDate != nil {
		d.Duration = "the period from " + terms.StartDate.Format("January 2, 2006") +
			" to " + terms.EndDate.Format("January 2, 2006")
	}
	return d
}

func ListContracts(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Where("user_id = ?", auth.Subject(r.Context()))
		if s := r.URL.Query().Get("status"); s != "" {
			q = q.Where("status = ?", s)
		}
		if t := r.URL.Query().Get("type"); t != "" {
			q = q.Where("type = ?", t)
		}
		if c := r.URL.Query().Get("client_id"); c != "" {
			q = q.Where("client_id = ?", c)
		}
		var cs []models.Contract
		if err := q.Order("created_at desc").Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, cs)
	}
}

func GetContract(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Contract
		if err := db.First(&c, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "contract")
			return
		}
		respondJSON(w, c)
	}
}

func UpdateContract(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID   *string               `json:"client_id"`
			Title      *string               `json:"title"`
			Type       *string               `json:"type"`
			Content    *string               `json:"content"`
			Parties    *models.Parties       `json:"parties"`
			Terms      *models.ContractTerms `json:"terms"`
			Status     *string               `json:"status"`
			TemplateID *string               `json:"template_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Status != nil && !models.ValidContractStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		var c models.Contract
		if err := db.First(&c, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "contract")
			return
		}
		if req.ClientID != nil {
			c.ClientID = req.ClientID
		}
		if req.Title != nil {
			c.Title = *req.Title
		}
		if req.Type != nil {
			c.Type = *req.Type
		}
		if req.Content != nil {
			c.Content = *req.Content
		}
		if req.Parties != nil {
			c.Parties = *req.Parties
		}
		if req.Terms != nil {
			c.Terms = *req.Terms
		}
		if req.Status != nil {
			c.Status = *req.Status
		}
		if req.TemplateID != nil {
			c.TemplateID = req.TemplateID
		}
		c.UpdatedAt = time.Now()
		if err := db.Save(&c).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, c)
	}
}

func DeleteContract(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Contract{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "contract not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

// DuplicateContract copies everything except status, which is forced back
// to draft.
func DuplicateContract(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		var src models.Contract
		if err := db.First(&src, "id = ? AND user_id = ?", chi.URLParam(r, "id"), uid).Error; err != nil {
			notFoundOr500(w, err, "contract")
			return
		}
		dup := models.Contract{
			UserID:     uid,
			ClientID:   src.ClientID,
			Title:      src.Title + " (Copy)",
			Type:       src.Type,
			Content:    src.Content,
			Parties:    src.Parties,
			Terms:      src.Terms,
			Status:     models.ContractStatusDraft,
			TemplateID: src.TemplateID,
		}
		if err := db.Create(&dup).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, dup)
	}
}

func ContractStats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cs []models.Contract
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).Find(&cs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts := map[string]int{}
		var totalValue float64
		for _, c := range cs {
			counts[c.Status]++
			if c.Terms.PaymentAmount != nil {
				totalValue += *c.Terms.PaymentAmount
			}
		}
		respondJSON(w, map[string]any{
			"total_count":     len(cs),
			"draft_count":     counts[models.ContractStatusDraft],
			"sent_count":      counts[models.ContractStatusSent],
			"signed_count":    counts[models.ContractStatusSigned],
			"active_count":    counts[models.ContractStatusActive],
			"completed_count": counts[models.ContractStatusCompleted],
			"total_value":     totalValue,
		})
	}
}

func ListContractTemplates(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, contracttpl.Catalog())
	}
}
