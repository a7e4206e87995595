package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// AdminDashboardHandler serves the dashboard statistics endpoint.
type AdminDashboardHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminDashboardHandler creates a new admin dashboard handler.
func NewAdminDashboardHandler(db *sql.DB, logger *logging.Logger) *AdminDashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminDashboardHandler{
		db:     db,
		logger: logger,
	}
}

// DashboardStatsResponse contains the headline dashboard counts. Contact-form
// and chatbot leads are counted disjointly.
type DashboardStatsResponse struct {
	TotalContacts   int       `json:"total_contacts"`
	TotalBookings   int       `json:"total_bookings"`
	ChatbotQuotes   int       `json:"chatbot_quotes"`
	PendingContacts int       `json:"pending_contacts"`
	RecentContacts  int       `json:"recent_contacts"`
	RecentBookings  int       `json:"recent_bookings"`
	LastUpdated     time.Time `json:"last_updated"`
}

// GetDashboardStats returns the dashboard statistics.
// GET /api/admin/dashboard/stats
func (h *AdminDashboardHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)

	stats := DashboardStatsResponse{LastUpdated: now}

	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&stats.TotalContacts, `SELECT COUNT(*) FROM leads WHERE source IS DISTINCT FROM 'chatbot'`, nil},
		{&stats.TotalBookings, `SELECT COUNT(*) FROM bookings`, nil},
		{&stats.ChatbotQuotes, `SELECT COUNT(*) FROM leads WHERE source = 'chatbot'`, nil},
		{&stats.PendingContacts, `SELECT COUNT(*) FROM leads WHERE status = 'new'`, nil},
		{&stats.RecentContacts, `SELECT COUNT(*) FROM leads WHERE created_at >= $1`, []any{weekAgo}},
		{&stats.RecentBookings, `SELECT COUNT(*) FROM bookings WHERE created_at >= $1`, []any{weekAgo}},
	}
	for _, c := range counts {
		if err := h.db.QueryRowContext(r.Context(), c.query, c.args...).Scan(c.dst); err != nil {
			h.logger.Error("dashboard stat query failed", "error", err)
			http.Error(w, "failed to compute dashboard stats", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
