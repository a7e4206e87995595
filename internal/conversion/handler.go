package conversion

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler exposes the lead-to-booking conversion endpoint.
type Handler struct {
	svc    *Service
	logger *logging.Logger
}

func NewHandler(svc *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Convert handles POST /api/admin/convert-chatbot-lead/{lead_id}. The body
// is an optional overrides object; an empty body converts with extracted
// values only.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "lead_id")

	var ov Overrides
	if err := json.NewDecoder(r.Body).Decode(&ov); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.svc.Convert(r.Context(), leadID, &ov)
	if err != nil {
		switch {
		case errors.Is(err, leads.ErrLeadNotFound), errors.Is(err, ErrNotChatbotLead):
			http.Error(w, "chatbot lead not found", http.StatusNotFound)
		case errors.Is(err, bookings.ErrAlreadyConverted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrInvalidDate), errors.Is(err, bookings.ErrInvalidServiceType),
			errors.Is(err, bookings.ErrInvalidMoveSize), errors.Is(err, bookings.ErrInvalidPreferredTime):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("conversion failed", "error", err, "lead_id", leadID)
			http.Error(w, "failed to convert chatbot lead", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"bookingId": booking.ID,
		"message":   "Chatbot lead converted to booking successfully",
		"booking":   booking,
	})
}
