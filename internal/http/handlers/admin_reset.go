package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// resetConfirmation must be sent verbatim before any data is destroyed.
const resetConfirmation = "DELETE ALL DATA"

// AdminResetHandler wipes every operational table. Destructive and only
// reachable behind admin auth.
type AdminResetHandler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewAdminResetHandler creates a new admin reset handler.
func NewAdminResetHandler(db *sql.DB, logger *logging.Logger) *AdminResetHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminResetHandler{
		db:     db,
		logger: logger,
	}
}

type resetRequest struct {
	Confirmation string `json:"confirmation"`
}

// ResetAllData deletes every lead, booking, payment, task, quote, and chat
// record. The delete order respects foreign keys.
// POST /api/admin/reset-all-data
func (h *AdminResetHandler) ResetAllData(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Confirmation != resetConfirmation {
		http.Error(w, `confirmation must be exactly "DELETE ALL DATA"`, http.StatusBadRequest)
		return
	}

	tables := []string{"tasks", "payments", "bookings", "leads", "chat_messages", "chat_sessions", "quotes"}
	deleted := map[string]int64{}
	for _, table := range tables {
		res, err := h.db.ExecContext(r.Context(), `DELETE FROM `+table)
		if err != nil {
			h.logger.Error("reset delete failed", "error", err, "table", table)
			http.Error(w, "failed to reset data", http.StatusInternalServerError)
			return
		}
		n, _ := res.RowsAffected()
		deleted[table] = n
	}

	h.logger.Info("all operational data deleted", "tables", len(tables))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message": "All data deleted successfully",
		"deleted": deleted,
	})
}
