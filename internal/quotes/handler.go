package quotes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler handles HTTP requests for quote requests.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Create handles POST /api/quotes, the public quote form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create quote request", "error", err)
		http.Error(w, "failed to create quote request", http.StatusInternalServerError)
		return
	}

	h.logger.Info("quote request created", "id", q.ID, "service_type", q.ServiceType)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(q)
}

// List handles GET /api/quotes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list quote requests", "error", err)
		http.Error(w, "failed to list quote requests", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Get handles GET /api/quotes/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrQuoteNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to fetch quote request", "error", err, "id", id)
		http.Error(w, "failed to fetch quote request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(q)
}

// Update handles PUT /api/quotes/{id}, the admin pricing follow-up.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req UpdateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNegativePrice):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrQuoteNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("failed to update quote request", "error", err, "id", id)
			http.Error(w, "failed to update quote request", http.StatusInternalServerError)
		}
		return
	}

	h.logger.Info("quote request updated", "id", id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(q)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) || errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrMissingPhone) || errors.Is(err, ErrInvalidServiceType) ||
		errors.Is(err, ErrInvalidMoveSize) || errors.Is(err, ErrMissingAddress)
}
