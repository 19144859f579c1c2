package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"orbix/internal/auth"
	"orbix/internal/httpserver/handlers"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Post("/api/auth/register", handlers.Register(db, lg))
	r.Post("/api/auth/login", handlers.Login(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth)
		protected.Get("/api/me", handlers.Me(db, lg))

		protected.Route("/api/clients", func(cr chi.Router) {
			cr.Get("/", handlers.ListClients(db, lg))
			cr.Post("/", handlers.CreateClient(db, lg))
			cr.Get("/{id}", handlers.GetClient(db, lg))
			cr.Put("/{id}", handlers.UpdateClient(db, lg))
			cr.Delete("/{id}", handlers.DeleteClient(db, lg))
			cr.Get("/{id}/stats", handlers.ClientStats(db, lg))
		})

		protected.Route("/api/invoices", func(ir chi.Router) {
			ir.Get("/", handlers.ListInvoices(db, lg))
			ir.Post("/", handlers.CreateInvoice(db, lg))
			ir.Get("/stats/summary", handlers.InvoiceStats(db, lg))
			ir.Get("/{id}", handlers.GetInvoice(db, lg))
			ir.Put("/{id}", handlers.UpdateInvoice(db, lg))
			ir.Delete("/{id}", handlers.DeleteInvoice(db, lg))
			ir.Patch("/{id}/status", handlers.UpdateInvoiceStatus(db, lg))
			ir.Post("/{id}/duplicate", handlers.DuplicateInvoice(db, lg))
		})

		protected.Route("/api/contracts", func(cr chi.Router) {
			cr.Get("/", handlers.ListContracts(db, lg))
			cr.Post("/", handlers.CreateContract(db, lg))
			cr.Get("/stats/summary", handlers.ContractStats(db, lg))
			cr.Get("/templates/list", handlers.ListContractTemplates(db, lg))
			cr.Get("/{id}", handlers.GetContract(db, lg))
			cr.Put("/{id}", handlers.UpdateContract(db, lg))
			cr.Delete("/{id}", handlers.DeleteContract(db, lg))
			cr.Post("/{id}/duplicate", handlers.DuplicateContract(db, lg))
		})

		protected.Route("/api/time-tracking", func(tr chi.Router) {
			tr.Get("/entries", handlers.ListTimeEntries(db, lg))
			tr.Post("/entries", handlers.CreateTimeEntry(db, lg))
			tr.Get("/entries/{id}", handlers.GetTimeEntry(db, lg))
			tr.Put("/entries/{id}", handlers.UpdateTimeEntry(db, lg))
			tr.Delete("/entries/{id}", handlers.DeleteTimeEntry(db, lg))
			tr.Post("/timer/start", handlers.StartTimer(db, lg))
			tr.Post("/timer/stop/{id}", handlers.StopTimer(db, lg))
			tr.Get("/timer/active", handlers.ActiveTimer(db, lg))
			tr.Get("/stats/summary", handlers.TimeStats(db, lg))
			tr.Post("/generate-invoice", handlers.GenerateInvoice(db, lg))
			tr.Get("/projects", handlers.ListProjects(db, lg))
			tr.Post("/projects", handlers.CreateProject(db, lg))
			tr.Get("/projects/{id}", handlers.GetProject(db, lg))
			tr.Put("/projects/{id}", handlers.UpdateProject(db, lg))
			tr.Delete("/projects/{id}", handlers.DeleteProject(db, lg))
		})

		protected.Route("/api/resumes", func(rr chi.Router) {
			rr.Get("/", handlers.ListResumes(db, lg))
			rr.Post("/", handlers.CreateResume(db, lg))
			rr.Get("/templates/list", handlers.ListResumeTemplates(db, lg))
			rr.Get("/{id}", handlers.GetResume(db, lg))
			rr.Put("/{id}", handlers.UpdateResume(db, lg))
			rr.Delete("/{id}", handlers.DeleteResume(db, lg))
			rr.Post("/{id}/duplicate", handlers.DuplicateResume(db, lg))
			rr.Post("/{id}/ats-score", handlers.AtsScore(db, lg))
			rr.Post("/{id}/improve-section", handlers.ImproveSection(db, lg))
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return r
}
