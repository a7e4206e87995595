package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler serves the marketing catalog. Stored rows win; an empty table or a
// read failure falls back to the built-in defaults so the public site never
// renders blank.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a catalog handler. A nil store serves defaults only.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Services handles GET /api/services.
func (h *Handler) Services(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		services, err := h.store.Services(r.Context())
		if err != nil {
			h.logger.Error("catalog services read failed", "error", err)
		} else if len(services) > 0 {
			respondJSON(w, services)
			return
		}
	}
	respondJSON(w, DefaultServices())
}

// Testimonials handles GET /api/services/testimonials.
func (h *Handler) Testimonials(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		testimonials, err := h.store.Testimonials(r.Context())
		if err != nil {
			h.logger.Error("catalog testimonials read failed", "error", err)
		} else if len(testimonials) > 0 {
			respondJSON(w, testimonials)
			return
		}
	}
	respondJSON(w, DefaultTestimonials())
}

// Areas handles GET /api/services/areas.
func (h *Handler) Areas(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		areas, err := h.store.Areas(r.Context())
		if err != nil {
			h.logger.Error("catalog areas read failed", "error", err)
		} else if len(areas) > 0 {
			respondJSON(w, areas)
			return
		}
	}
	respondJSON(w, DefaultServiceAreas())
}

// Stats handles GET /api/services/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		stats, err := h.store.Stats(r.Context())
		if err != nil {
			h.logger.Error("catalog stats read failed", "error", err)
		} else if stats != nil {
			respondJSON(w, stats)
			return
		}
	}
	respondJSON(w, DefaultStats())
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
