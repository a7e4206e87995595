package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/swiftmoveclean/ops-backend/internal/auth"
	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/catalog"
	"github.com/swiftmoveclean/ops-backend/internal/chat"
	"github.com/swiftmoveclean/ops-backend/internal/conversion"
	"github.com/swiftmoveclean/ops-backend/internal/http/handlers"
	httpmiddleware "github.com/swiftmoveclean/ops-backend/internal/http/middleware"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/payments"
	"github.com/swiftmoveclean/ops-backend/internal/quotes"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	LeadsHandler      *leads.Handler
	ChatHandler       *chat.Handler
	BookingsHandler   *bookings.Handler
	QuotesHandler     *quotes.Handler
	CatalogHandler    *catalog.Handler
	TasksHandler      *tasks.Handler
	PaymentsHandler   *payments.Handler
	ConversionHandler *conversion.Handler
	AuthHandler       *auth.Handler
	AdminDashboard    *handlers.AdminDashboardHandler
	AdminReset        *handlers.AdminResetHandler

	AdminAuthSecret    string
	AdminUsername      string
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests per second per client IP on public endpoints. Zero disables
	// rate limiting.
	PublicRateLimit float64
	PublicRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Public surface: contact form, chatbot, booking form, quote form,
	// marketing catalog.
	r.Group(func(public chi.Router) {
		if cfg.PublicRateLimit > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.PublicRateLimit, cfg.PublicRateBurst))
		}

		public.Route("/api/contacts", func(r chi.Router) {
			r.Post("/", cfg.LeadsHandler.Create)
			r.Get("/", cfg.LeadsHandler.ListContacts)
			r.Get("/{id}", cfg.LeadsHandler.Get)
			r.Put("/{id}", cfg.LeadsHandler.UpdateStatus)
		})

		public.Route("/api/chat", func(r chi.Router) {
			r.Post("/message", cfg.ChatHandler.SendMessage)
			r.Get("/messages/{session_id}", cfg.ChatHandler.ListMessages)
			r.Delete("/session/{session_id}", cfg.ChatHandler.ClearSession)
			r.Get("/quote-requests", cfg.LeadsHandler.ListChatbotLeads)
		})

		public.Route("/api/bookings", func(r chi.Router) {
			r.Post("/", cfg.BookingsHandler.Create)
			r.Get("/", cfg.BookingsHandler.List)
			r.Get("/{id}", cfg.BookingsHandler.Get)
			r.Put("/{id}/status", cfg.BookingsHandler.UpdateStatus)
			r.Put("/{id}/cost", cfg.BookingsHandler.UpdateCost)
			r.Delete("/{id}", cfg.BookingsHandler.Cancel)
		})

		public.Post("/api/quotes", cfg.QuotesHandler.Create)
		public.Get("/api/quotes/{id}", cfg.QuotesHandler.Get)

		public.Route("/api/services", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.Services)
			r.Get("/testimonials", cfg.CatalogHandler.Testimonials)
			r.Get("/areas", cfg.CatalogHandler.Areas)
			r.Get("/stats", cfg.CatalogHandler.Stats)
		})

		public.Post("/api/admin/login", cfg.AuthHandler.Login)
	})

	// Admin surface, everything behind the bearer token.
	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret, cfg.AdminUsername))

		admin.Route("/api/admin", func(r chi.Router) {
			r.Get("/dashboard/stats", cfg.AdminDashboard.GetDashboardStats)
			r.Post("/reset-all-data", cfg.AdminReset.ResetAllData)

			r.Get("/contacts", cfg.LeadsHandler.ListAll)
			r.Put("/contacts/{id}/status", cfg.LeadsHandler.UpdateStatus)
			r.Get("/chatbot-quotes", cfg.LeadsHandler.ListChatbotLeads)

			r.Get("/bookings", cfg.BookingsHandler.List)
			r.Put("/bookings/{id}/status", cfg.BookingsHandler.UpdateStatus)
			r.Put("/bookings/{id}/cost", cfg.BookingsHandler.UpdateCost)
			r.Get("/bookings/{id}/details", cfg.PaymentsHandler.BookingDetails)

			r.Post("/convert-chatbot-lead/{lead_id}", cfg.ConversionHandler.Convert)

			r.Get("/payments", cfg.PaymentsHandler.List)
			r.Post("/payments", cfg.PaymentsHandler.Record)
			r.Delete("/payments/{payment_id}", cfg.PaymentsHandler.Delete)
			r.Get("/revenue/summary", cfg.PaymentsHandler.Summary)
			r.Get("/revenue/monthly", cfg.PaymentsHandler.Monthly)

			r.Get("/tasks", cfg.TasksHandler.List)
			r.Post("/tasks", cfg.TasksHandler.Create)
			r.Get("/tasks/{id}", cfg.TasksHandler.Get)
			r.Put("/tasks/{id}", cfg.TasksHandler.Update)
			r.Delete("/tasks/{id}", cfg.TasksHandler.Delete)
		})

		admin.Get("/api/quotes", cfg.QuotesHandler.List)
		admin.Put("/api/quotes/{id}", cfg.QuotesHandler.Update)
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
