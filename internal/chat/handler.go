package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// Handler exposes the chatbot over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// SendMessage handles POST /api/chat/message.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.service.SendMessage(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSession), errors.Is(err, ErrEmptyMessage):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("chat message failed", "error", err)
			http.Error(w, "failed to process chat message", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msg)
}

// ListMessages handles GET /api/chat/messages/{session_id}.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	msgs, err := h.service.Messages(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to list chat messages", "error", err, "session_id", sessionID)
		http.Error(w, "failed to fetch chat messages", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(msgs)
}

// ClearSession handles DELETE /api/chat/session/{session_id}.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	count, err := h.service.ClearSession(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to clear chat session", "error", err, "session_id", sessionID)
		http.Error(w, "failed to clear chat session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Cleared %d messages from session %s", count, sessionID),
	})
}
