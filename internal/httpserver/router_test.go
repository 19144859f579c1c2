package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"orbix/internal/models"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Project{},
		&models.Invoice{}, &models.InvoiceCounter{}, &models.TimeEntry{},
		&models.Contract{}, &models.Resume{},
	))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_one_running
		ON time_entries (user_id) WHERE end_time IS NULL`).Error)

	return NewRouter(db, zap.NewNop().Sugar())
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": email, "password": "hunter22", "name": "Test User",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tok, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)
	w := doJSON(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)

	w := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@example.com", "password": "hunter22", "name": "A",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["token"])

	// duplicate email hits the unique index, no token issued
	w = doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@example.com", "password": "other", "name": "B",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, decode(t, w), "token")

	w = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMissingTokenRejected(t *testing.T) {
	h := newTestServer(t)
	w := doJSON(t, h, http.MethodGet, "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/clients", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientCRUD(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "c@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/clients", tok, map[string]any{
		"name": "Acme", "email": "billing@acme.test", "company": "Acme Corp",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = doJSON(t, h, http.MethodPut, "/api/clients/"+id, tok, map[string]any{"name": "Acme Inc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme Inc", decode(t, w)["name"])

	w = doJSON(t, h, http.MethodGet, "/api/clients/"+id+"/stats", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["invoice_count"])

	w = doJSON(t, h, http.MethodDelete, "/api/clients/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/clients/"+id, tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnershipMissIs404(t *testing.T) {
	h := newTestServer(t)
	tokA := registerUser(t, h, "owner@example.com")
	tokB := registerUser(t, h, "intruder@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/invoices", tokA, map[string]any{
		"client_id": "11111111-1111-1111-1111-111111111111",
		"items":     []map[string]any{{"description": "Work", "quantity": 1, "rate": 100}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	// another owner's invoice is absent, not forbidden
	w = doJSON(t, h, http.MethodGet, "/api/invoices/"+id, tokB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/api/invoices/"+id, tokB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/invoices/"+id, tokA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvoiceTotalsAndNumbering(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "inv@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/invoices", tok, map[string]any{
		"client_id": "22222222-2222-2222-2222-222222222222",
		"items": []map[string]any{
			{"description": "Design", "quantity": 2, "rate": 50, "amount": 9999},
			{"description": "Review", "quantity": 1, "rate": 30},
		},
		"tax":      10,
		"discount": 5,
		"total":    1, // client-supplied, ignored
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 130.0, body["subtotal"])
	assert.Equal(t, 135.0, body["total"])
	assert.Equal(t, "INV-00001", body["invoice_number"])
	assert.Equal(t, "draft", body["status"])

	w = doJSON(t, h, http.MethodPost, "/api/invoices", tok, map[string]any{
		"client_id": "22222222-2222-2222-2222-222222222222",
		"items":     []map[string]any{{"description": "More", "quantity": 1, "rate": 10}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-00002", decode(t, w)["invoice_number"])
}

func TestInvoiceStatusAndStats(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "stats@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/invoices", tok, map[string]any{
		"client_id": "33333333-3333-3333-3333-333333333333",
		"items":     []map[string]any{{"description": "Work", "quantity": 1, "rate": 200}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"].(string)

	w = doJSON(t, h, http.MethodPatch, "/api/invoices/"+id+"/status", tok, map[string]any{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPatch, "/api/invoices/"+id+"/status", tok, map[string]any{"status": "paid"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "paid", decode(t, w)["status"])

	w = doJSON(t, h, http.MethodGet, "/api/invoices/stats/summary", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["total_count"])
	assert.Equal(t, float64(1), body["paid_count"])
	assert.Equal(t, 200.0, body["total_paid"])
	assert.Equal(t, 0.0, body["outstanding"])
}

func TestTimerLifecycle(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "timer@example.com")

	w := doJSON(t, h, http.MethodGet, "/api/time-tracking/timer/active", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	w = doJSON(t, h, http.MethodPost, "/api/time-tracking/timer/start", tok, map[string]any{
		"description": "Sprint work",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	// second start while running
	w = doJSON(t, h, http.MethodPost, "/api/time-tracking/timer/start", tok, map[string]any{
		"description": "Other work",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "timer already running")

	w = doJSON(t, h, http.MethodGet, "/api/time-tracking/timer/active", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w)["id"])

	w = doJSON(t, h, http.MethodPost, "/api/time-tracking/timer/stop/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, decode(t, w)["end_time"])

	w = doJSON(t, h, http.MethodGet, "/api/time-tracking/timer/active", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))

	// a fresh timer may start once the first is stopped
	w = doJSON(t, h, http.MethodPost, "/api/time-tracking/timer/start", tok, map[string]any{
		"description": "Round two",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestManualEntryDuration(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "manual@example.com")

	start := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	end := start.Add(125 * time.Minute)
	w := doJSON(t, h, http.MethodPost, "/api/time-tracking/entries", tok, map[string]any{
		"description": "Backfilled work",
		"start_time":  start.Format(time.RFC3339),
		"end_time":    end.Format(time.RFC3339),
		"hourly_rate": 80,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(125), decode(t, w)["duration_minutes"])

	w = doJSON(t, h, http.MethodGet, "/api/time-tracking/stats/summary", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(125), body["total_minutes"])
	assert.Equal(t, float64(125), body["billable_minutes"])
	assert.Equal(t, 166.67, body["total_earnings"]) // 125/60 h * $80
}

func TestGenerateInvoiceFromEntries(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "gen@example.com")

	start := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	mkEntry := func(minutes int, billable bool, rate float64) string {
		end := start.Add(time.Duration(minutes) * time.Minute)
		w := doJSON(t, h, http.MethodPost, "/api/time-tracking/entries", tok, map[string]any{
			"description": "Tracked work",
			"start_time":  start.Format(time.RFC3339),
			"end_time":    end.Format(time.RFC3339),
			"hourly_rate": rate,
			"billable":    billable,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)["id"].(string)
	}

	billableID := mkEntry(120, true, 50)
	nonBillableID := mkEntry(60, false, 50)

	w := doJSON(t, h, http.MethodPost, "/api/time-tracking/generate-invoice", tok, map[string]any{
		"entry_ids": []string{billableID, nonBillableID},
		"client_id": "44444444-4444-4444-4444-444444444444",
		"tax":       10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, 100.0, body["subtotal"]) // 2h * $50
	assert.Equal(t, 110.0, body["total"])
	items := body["items"].([]any)
	assert.Len(t, items, 1)

	// only non-billable entries selected
	w = doJSON(t, h, http.MethodPost, "/api/time-tracking/generate-invoice", tok, map[string]any{
		"entry_ids": []string{nonBillableID},
		"client_id": "44444444-4444-4444-4444-444444444444",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractDuplicate(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "nda@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/contracts", tok, map[string]any{
		"title": "NDA v1",
		"type":  "nda",
		"parties": []map[string]any{
			{"name": "Jordan Reyes", "role": "disclosing", "email": "j@example.com"},
			{"name": "Acme Corp", "role": "receiving", "email": "legal@acme.test"},
		},
		"terms": map[string]any{"deliverables": []string{"product roadmap"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	id := body["id"].(string)
	content := body["content"].(string)
	assert.Contains(t, content, "NON-DISCLOSURE AGREEMENT")
	assert.Contains(t, content, "Jordan Reyes")

	w = doJSON(t, h, http.MethodPost, "/api/contracts/"+id+"/duplicate", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	dup := decode(t, w)
	assert.Equal(t, "NDA v1 (Copy)", dup["title"])
	assert.Equal(t, "draft", dup["status"])
	assert.Equal(t, content, dup["content"])
	assert.NotEqual(t, id, dup["id"])
}

func TestContractTemplatesAndUnknownType(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "tpl@example.com")

	w := doJSON(t, h, http.MethodGet, "/api/contracts/templates/list", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.GreaterOrEqual(t, len(list), 5)

	w = doJSON(t, h, http.MethodPost, "/api/contracts", tok, map[string]any{
		"title": "Mystery", "type": "barter",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeAtsScore(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "resume@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/resumes", tok, map[string]any{
		"title": "Backend Engineer",
		"personal_info": map[string]any{
			"full_name": "Jordan Reyes",
			"email":     "jordan@example.com",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	w = doJSON(t, h, http.MethodPost, "/api/resumes/"+id+"/ats-score", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(20), body["score"]) // name + email
	assert.Equal(t, "Needs improvement", body["feedback"])

	// score persisted on the resume
	w = doJSON(t, h, http.MethodGet, "/api/resumes/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(20), decode(t, w)["ats_score"])
}

func TestResumeDuplicateAndTemplates(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "resume2@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/resumes", tok, map[string]any{
		"title":  "CV 2026",
		"skills": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	id := decode(t, w)["id"].(string)

	w = doJSON(t, h, http.MethodPost, "/api/resumes/"+id+"/duplicate", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CV 2026 (Copy)", decode(t, w)["title"])

	w = doJSON(t, h, http.MethodGet, "/api/resumes/templates/list", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)
}

func TestProjectCRUD(t *testing.T) {
	h := newTestServer(t)
	tok := registerUser(t, h, "proj@example.com")

	w := doJSON(t, h, http.MethodPost, "/api/time-tracking/projects", tok, map[string]any{
		"name": "Website relaunch", "hourly_rate": 95,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	id := body["id"].(string)
	assert.Equal(t, "active", body["status"])

	w = doJSON(t, h, http.MethodPut, "/api/time-tracking/projects/"+id, tok, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["status"])

	w = doJSON(t, h, http.MethodPut, "/api/time-tracking/projects/"+id, tok, map[string]any{"status": "nonsense"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/api/time-tracking/projects/"+id, tok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
