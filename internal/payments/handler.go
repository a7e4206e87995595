package payments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler exposes the admin payment ledger and revenue endpoints.
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

// List handles GET /api/admin/payments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list payments", "error", err)
		http.Error(w, "failed to list payments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Record handles POST /api/admin/payments.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.svc.RecordPayment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingBooking), errors.Is(err, ErrNegativeAmount),
			errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidMethod):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, bookings.ErrBookingNotFound):
			http.Error(w, "booking not found", http.StatusNotFound)
		default:
			h.logger.Error("failed to record payment", "error", err)
			http.Error(w, "failed to record payment", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"paymentId": p.ID,
		"message":   "Payment recorded successfully",
	})
}

// Delete handles DELETE /api/admin/payments/{payment_id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "payment_id")
	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			http.Error(w, "payment not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete payment", "error", err, "id", id)
		http.Error(w, "failed to delete payment", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Payment deleted successfully"})
}

// Summary handles GET /api/admin/revenue/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to compute revenue summary", "error", err)
		http.Error(w, "failed to compute revenue summary", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// Monthly handles GET /api/admin/revenue/monthly.
func (h *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.MonthlySeries(r.Context())
	if err != nil {
		h.logger.Error("failed to compute monthly revenue", "error", err)
		http.Error(w, "failed to compute monthly revenue", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(series)
}

// BookingDetails handles GET /api/admin/bookings/{id}/details.
func (h *Handler) BookingDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	details, err := h.svc.Details(r.Context(), id)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load booking details", "error", err, "id", id)
		http.Error(w, "failed to load booking details", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}
