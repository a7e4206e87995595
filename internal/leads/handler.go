package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler handles HTTP requests for leads
type Handler struct {
	repo    *Repository
	metrics *metrics.OpsMetrics
	logger  *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(repo *Repository, m *metrics.OpsMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, metrics: m, logger: logger}
}

// Create handles POST /api/contacts, the public contact form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName), errors.Is(err, ErrMissingContact), errors.Is(err, ErrMissingMessage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("failed to create lead", "error", err)
			http.Error(w, "failed to create contact message", http.StatusInternalServerError)
		}
		return
	}

	h.metrics.ObserveLead(SourceContactForm)
	h.logger.Info("lead created", "id", lead.ID, "subject", lead.Subject)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lead)
}

// ListContacts handles GET /api/contacts: the contact-form view, which never
// includes chatbot leads.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ListFilter{Status: r.URL.Query().Get("status"), ExcludeChatbot: true})
}

// ListAll handles GET /api/admin/contacts: every lead regardless of source.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ListFilter{
		Source: r.URL.Query().Get("source"),
		Status: r.URL.Query().Get("status"),
	})
}

// ListChatbotLeads handles GET /api/admin/chatbot-quotes.
func (h *Handler) ListChatbotLeads(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, ListFilter{Source: SourceChatbot})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, filter ListFilter) {
	out, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list leads", "error", err)
		http.Error(w, "failed to list contacts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Get handles GET /api/contacts/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			http.Error(w, "contact message not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch lead", "error", err, "id", id)
		http.Error(w, "failed to fetch contact message", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/admin/contacts/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	lead, err := h.repo.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			http.Error(w, "invalid status, must be one of: new, read, replied, contacted", http.StatusBadRequest)
		case errors.Is(err, ErrLeadNotFound):
			http.Error(w, "contact message not found", http.StatusNotFound)
		default:
			h.logger.Error("failed to update lead status", "error", err, "id", id)
			http.Error(w, "failed to update contact status", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("lead status updated", "id", id, "status", req.Status)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lead)
}
