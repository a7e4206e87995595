package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

var (
	// ErrMissingSession is returned when the request has no session id
	ErrMissingSession = errors.New("sessionId is required")

	// ErrEmptyMessage is returned when the message body is blank
	ErrEmptyMessage = errors.New("message is required")
)

// LeadWriter is the slice of the lead store the chat service needs.
type LeadWriter interface {
	UpsertBySession(ctx context.Context, sl *leads.SessionLead) (*leads.Lead, error)
}

// Options carries the tunables and provider settings for the chat service.
type Options struct {
	ModelID      string
	MaxTokens    int32
	Timeout      time.Duration
	HistoryLimit int
	CompanyPhone string
}

// Service orchestrates one chatbot turn: persist the user message, capture a
// lead when the user asks about pricing, call the model, and persist whatever
// reply the customer ends up seeing.
type Service struct {
	store      *Store
	transcript *TranscriptStore
	llm        LLMClient
	leadWriter LeadWriter
	metrics    *metrics.OpsMetrics
	logger     *logging.Logger
	tracer     trace.Tracer
	opts       Options
}

func NewService(store *Store, transcript *TranscriptStore, llm LLMClient, leadWriter LeadWriter,
	m *metrics.OpsMetrics, logger *logging.Logger, opts Options) *Service {
	if store == nil {
		panic("chat: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	return &Service{
		store:      store,
		transcript: transcript,
		llm:        llm,
		leadWriter: leadWriter,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("swiftmove.internal.chat"),
		opts:       opts,
	}
}

// SendMessage handles one user turn and returns the bot reply that was stored.
func (s *Service) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	if req.SessionID == "" {
		return nil, ErrMissingSession
	}
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}

	ctx, span := s.tracer.Start(ctx, "chat.send_message")
	defer span.End()

	userMsg, err := s.store.InsertMessage(ctx, req.SessionID, SenderUser, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.transcript.Append(ctx, req.SessionID, userMsg); err != nil {
		s.logger.Warn("transcript cache append failed", "error", err, "session_id", req.SessionID)
	}

	if IsQuoteRequest(req.Message) {
		s.captureLead(ctx, req)
	}

	reply, fellBack := s.reply(ctx, req)
	s.metrics.ObserveChatReply(fellBack)

	botMsg, err := s.store.InsertMessage(ctx, req.SessionID, SenderBot, reply)
	if err != nil {
		return nil, err
	}
	if err := s.transcript.Append(ctx, req.SessionID, botMsg); err != nil {
		s.logger.Warn("transcript cache append failed", "error", err, "session_id", req.SessionID)
	}
	if err := s.store.TouchSession(ctx, req.SessionID); err != nil {
		s.logger.Warn("session touch failed", "error", err, "session_id", req.SessionID)
	}
	return botMsg, nil
}

// captureLead folds the session into a profile and upserts a chatbot lead.
// Failures are logged, never surfaced: losing a lead must not break the chat.
func (s *Service) captureLead(ctx context.Context, req SendMessageRequest) {
	if s.leadWriter == nil {
		return
	}

	var profile *SessionProfile
	if history, err := s.store.UserMessages(ctx, req.SessionID); err == nil {
		profile = AggregateSession(history)
	} else {
		s.logger.Warn("lead aggregation fell back to single message", "error", err, "session_id", req.SessionID)
		profile = AggregateSession([]string{req.Message})
	}

	sl := &leads.SessionLead{
		SessionID: req.SessionID,
		Name:      profile.Name,
		Email:     profile.Email,
		Phone:     profile.Phone,
		Subject:   "quote",
		Message:   fmt.Sprintf("Quote request via chatbot: %s", req.Message),
	}
	if sl.Name == "" {
		tail := req.SessionID
		if len(tail) > 8 {
			tail = tail[len(tail)-8:]
		}
		sl.Name = "ChatBot User - Session " + tail
	}

	lead, err := s.leadWriter.UpsertBySession(ctx, sl)
	if err != nil {
		s.logger.Error("chatbot lead capture failed", "error", err, "session_id", req.SessionID)
		return
	}
	s.metrics.ObserveLead(leads.SourceChatbot)
	s.logger.Info("chatbot lead captured",
		"lead_id", lead.ID,
		"session_id", req.SessionID,
		"missing_fields", profile.MissingFields(),
	)
}

// reply produces the bot text, degrading to the static fallback on any model
// failure. The second return reports whether the fallback was used.
func (s *Service) reply(ctx context.Context, req SendMessageRequest) (string, bool) {
	if s.llm == nil {
		return FallbackMessage(s.opts.CompanyPhone), true
	}

	history, err := s.history(ctx, req.SessionID)
	if err != nil {
		s.logger.Warn("chat history unavailable, prompting without context", "error", err, "session_id", req.SessionID)
	}

	prompt := make([]PromptMessage, 0, len(history)+1)
	for _, m := range history {
		role := RoleUser
		if m.Sender == SenderBot {
			role = RoleAssistant
		}
		prompt = append(prompt, PromptMessage{Role: role, Content: m.Message})
	}
	if len(prompt) == 0 || prompt[len(prompt)-1].Content != req.Message {
		prompt = append(prompt, PromptMessage{Role: RoleUser, Content: req.Message})
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	resp, err := s.llm.Complete(llmCtx, LLMRequest{
		Model:       s.opts.ModelID,
		System:      []string{BuildSystemPrompt(req.Message, s.opts.CompanyPhone)},
		Messages:    prompt,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: 0.7,
	})
	if err != nil || resp.Text == "" {
		s.logger.Error("chat completion failed, using fallback", "error", err, "session_id", req.SessionID)
		return FallbackMessage(s.opts.CompanyPhone), true
	}
	return resp.Text, false
}

// history prefers the Redis transcript cache and falls back to Postgres.
func (s *Service) history(ctx context.Context, sessionID string) ([]*Message, error) {
	if s.transcript != nil {
		msgs, err := s.transcript.Recent(ctx, sessionID, int64(s.opts.HistoryLimit))
		if err == nil && len(msgs) > 0 {
			return msgs, nil
		}
		if err != nil {
			s.logger.Warn("transcript cache read failed", "error", err, "session_id", sessionID)
		}
	}
	return s.store.RecentMessages(ctx, sessionID, s.opts.HistoryLimit)
}

// Messages returns the full stored transcript for a session.
func (s *Service) Messages(ctx context.Context, sessionID string) ([]*Message, error) {
	return s.store.ListMessages(ctx, sessionID)
}

// ClearSession deletes a session's transcript everywhere it is stored.
func (s *Service) ClearSession(ctx context.Context, sessionID string) (int64, error) {
	count, err := s.store.ClearSession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if err := s.transcript.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("transcript cache clear failed", "error", err, "session_id", sessionID)
	}
	return count, nil
}
