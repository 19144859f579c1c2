package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/models"
	"orbix/internal/services/invoice"
)

type lineItemReq struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

func lineItemsFromReq(items []lineItemReq) models.LineItems {
	out := make(models.LineItems, 0, len(items))
	for _, it := range items {
		out = append(out, models.LineItem{Description: it.Description, Quantity: it.Quantity, Rate: it.Rate})
	}
	return out
}

func CreateInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID  string        `json:"client_id"`
			IssueDate *time.Time    `json:"issue_date"`
			DueDate   *time.Time    `json:"due_date"`
			Items     []lineItemReq `json:"items"`
			Tax       float64       `json:"tax"`
			Discount  float64       `json:"discount"`
			Currency  string        `json:"currency"`
			Notes     *string       `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.ClientID == "" || len(req.Items) == 0 {
			respondError(w, http.StatusBadRequest, "client_id and items required")
			return
		}

		items, totals := invoice.ComputeTotals(lineItemsFromReq(req.Items), req.Tax, req.Discount)
		inv := models.Invoice{
			UserID:    auth.Subject(r.Context()),
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
		if req.IssueDate != nil {
			inv.IssueDate = *req.IssueDate
		}
		if req.DueDate != nil {
			inv.DueDate = *req.DueDate
		}
		if req.Currency != "" {
			inv.Currency = req.Currency
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			number, err := invoice.NextNumber(tx, inv.UserID)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = number
			return tx.Create(&inv).Error
		})
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		lg.Infow("invoice created", "invoice_id", inv.ID, "number", inv.InvoiceNumber)
		respondJSON(w, inv)
	}
}

func ListInvoices(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := db.Where("user_id = ?", auth.Subject(r.Context()))
		if s := r.URL.Query().Get("status"); s != "" {
			q = q.Where("status = ?", s)
		}
		if c := r.URL.Query().Get("client_id"); c != "" {
			q = q.Where("client_id = ?", c)
		}
		var invs []models.Invoice
		if err := q.Order("created_at desc").Find(&invs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, invs)
	}
}

func GetInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inv models.Invoice
		if err := db.First(&inv, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "invoice")
			return
		}
		respondJSON(w, inv)
	}
}

func UpdateInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ClientID  *string       `json:"client_id"`
			IssueDate *time.Time    `json:"issue_date"`
			DueDate   *time.Time    `json:"due_date"`
			Items     []lineItemReq `json:"items"`
			Tax       *float64      `json:"tax"`
			Discount  *float64      `json:"discount"`
			Currency  *string       `json:"currency"`
			Notes     *string       `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var inv models.Invoice
		if err := db.First(&inv, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "invoice")
			return
		}
		if req.ClientID != nil {
			inv.ClientID = *req.ClientID
		}
		if req.IssueDate != nil {
			inv.IssueDate = *req.IssueDate
		}
		if req.DueDate != nil {
			inv.DueDate = *req.DueDate
		}
		if req.Items != nil {
			inv.Items = lineItemsFromReq(req.Items)
		}
		if req.Tax != nil {
			inv.Tax = *req.Tax
		}
		if req.Discount != nil {
			inv.Discount = *req.Discount
		}
		if req.Currency != nil {
			inv.Currency = *req.Currency
		}
		if req.Notes != nil {
			inv.Notes = req.Notes
		}

		// totals always recomputed server-side, whatever the patch touched
		items, totals := invoice.ComputeTotals(inv.Items, inv.Tax, inv.Discount)
		inv.Items = items
		inv.Subtotal = totals.Subtotal
		inv.Tax = totals.Tax
		inv.Discount = totals.Discount
		inv.Total = totals.Total
		inv.UpdatedAt = time.Now()

		if err := db.Save(&inv).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, inv)
	}
}

func DeleteInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := db.Delete(&models.Invoice{}, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context()))
		if res.Error != nil {
			respondError(w, http.StatusInternalServerError, res.Error.Error())
			return
		}
		if res.RowsAffected == 0 {
			respondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

func UpdateInvoiceStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !models.ValidInvoiceStatus(req.Status) {
			respondError(w, http.StatusBadRequest, "invalid status")
			return
		}
		var inv models.Invoice
		if err := db.First(&inv, "id = ? AND user_id = ?", chi.URLParam(r, "id"), auth.Subject(r.Context())).Error; err != nil {
			notFoundOr500(w, err, "invoice")
			return
		}
		inv.Status = req.Status
		inv.UpdatedAt = time.Now()
		if err := db.Save(&inv).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, inv)
	}
}

func DuplicateInvoice(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := auth.Subject(r.Context())
		var src models.Invoice
		if err := db.First(&src, "id = ? AND user_id = ?", chi.URLParam(r, "id"), uid).Error; err != nil {
			notFoundOr500(w, err, "invoice")
			return
		}
		dup := models.Invoice{
			UserID:    uid,
			ClientID:  src.ClientID,
			IssueDate: time.Now(),
			DueDate:   time.Now().AddDate(0, 0, 30),
			Items:     src.Items,
			Subtotal:  src.Subtotal,
			Tax:       src.Tax,
			Discount:  src.Discount,
			Total:     src.Total,
			Currency:  src.Currency,
			Status:    models.InvoiceStatusDraft,
			Notes:     src.Notes,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			number, err := invoice.NextNumber(tx, uid)
			if err != nil {
				return err
			}
			dup.InvoiceNumber = number
			return tx.Create(&dup).Error
		})
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, dup)
	}
}

func InvoiceStats(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var invs []models.Invoice
		if err := db.Where("user_id = ?", auth.Subject(r.Context())).Find(&invs).Error; err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		counts := map[string]int{}
		var billed, paid float64
		for _, inv := range invs {
			counts[inv.Status]++
			billed += inv.Total
			if inv.Status == models.InvoiceStatusPaid {
				paid += inv.Total
			}
		}
		respondJSON(w, map[string]any{
			"total_count":   len(invs),
			"draft_count":   counts[models.InvoiceStatusDraft],
			"sent_count":    counts[models.InvoiceStatusSent],
			"paid_count":    counts[models.InvoiceStatusPaid],
			"overdue_count": counts[models.InvoiceStatusOverdue],
			"total_billed":  invoice.Round2(billed),
			"total_paid":    invoice.Round2(paid),
			"outstanding":   invoice.Round2(billed - paid),
		})
	}
}
