package conversion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// TxBeginner is the slice of pgxpool.Pool the engine needs. The whole
// conversion runs in one transaction so a failed step never leaves a lead
// marked converted without a booking, or a booking without its follow-up.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Overrides is the optional admin payload accompanying a conversion. Every
// field falls back to what can be extracted from the lead itself.
type Overrides struct {
	CustomerName   string   `json:"customerName,omitempty"`
	ServiceType    string   `json:"serviceType,omitempty"`
	PreferredDate  string   `json:"preferredDate,omitempty"`
	PreferredTime  string   `json:"preferredTime,omitempty"`
	CurrentAddress string   `json:"currentAddress,omitempty"`
	NewAddress     string   `json:"newAddress,omitempty"`
	MoveSize       string   `json:"moveSize,omitempty"`
	HoursNeeded    *float64 `json:"hoursNeeded,omitempty"`
}

// Markers the chatbot lead-capture embeds in the stored message.
const (
	notesMarker       = "Conversation Notes:"
	fromAddressMarker = "From Address:"
)

// Service promotes chatbot leads into bookings.
type Service struct {
	db      TxBeginner
	tasks   *tasks.Repository
	metrics *metrics.OpsMetrics
	logger  *logging.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

func NewService(db TxBeginner, taskRepo *tasks.Repository, m *metrics.OpsMetrics, logger *logging.Logger) *Service {
	if db == nil {
		panic("conversion: database required")
	}
	if taskRepo == nil {
		panic("conversion: task repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		db:      db,
		tasks:   taskRepo,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer("swiftmove.internal.conversion"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Convert turns a chatbot lead into a pending booking. The booking insert,
// the lead status update, and the follow-up task commit together or not at
// all. The unique index on bookings.converted_from_chatbot rejects a second
// conversion of the same lead with bookings.ErrAlreadyConverted.
func (s *Service) Convert(ctx context.Context, leadID string, ov *Overrides) (*bookings.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "conversion.convert")
	defer span.End()

	if ov == nil {
		ov = &Overrides{}
	}

	preferredDate, err := parsePreferredDate(ov.PreferredDate, s.now())
	if err != nil {
		return nil, err
	}
	if ov.ServiceType != "" && !bookings.ValidServiceType(ov.ServiceType) {
		return nil, bookings.ErrInvalidServiceType
	}
	if !bookings.ValidMoveSize(ov.MoveSize) {
		return nil, bookings.ErrInvalidMoveSize
	}
	if !bookings.ValidPreferredTime(ov.PreferredTime) {
		return nil, bookings.ErrInvalidPreferredTime
	}
	preferredTime := ov.PreferredTime
	if preferredTime == "" {
		preferredTime = bookings.TimeFlexible
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("conversion: begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	leadRepo := leads.NewRepositoryWithDB(tx)
	lead, err := leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Source != leads.SourceChatbot {
		return nil, ErrNotChatbotLead
	}

	serviceType := ov.ServiceType
	if serviceType == "" {
		serviceType = serviceTypeFromLead(lead)
	}

	currentAddress := ov.CurrentAddress
	if currentAddress == "" {
		currentAddress = addressFromNotes(lead.Message)
	}
	if currentAddress == "" {
		currentAddress = "To be confirmed"
	}

	booking := &bookings.Booking{
		Name:                 deriveName(ov.CustomerName, lead),
		Email:                lead.Email,
		Phone:                lead.Phone,
		ServiceType:          serviceType,
		MoveSize:             ov.MoveSize,
		CurrentAddress:       currentAddress,
		NewAddress:           ov.NewAddress,
		PreferredDate:        preferredDate,
		PreferredTime:        preferredTime,
		HoursNeeded:          ov.HoursNeeded,
		ConvertedFromChatbot: lead.ID,
	}

	created, err := bookings.NewRepositoryWithDB(tx).CreateConverted(ctx, booking)
	if err != nil {
		if errors.Is(err, bookings.ErrAlreadyConverted) {
			s.metrics.ObserveConversion("conflict")
		}
		return nil, err
	}
	if err := leadRepo.MarkConverted(ctx, lead.ID, created.ID); err != nil {
		return nil, err
	}
	followUp := tasks.NewConversionFollowUp(created, lead.ID, s.now())
	if _, err := s.tasks.CreateIn(ctx, tx, followUp); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("conversion: commit failed: %w", err)
	}

	s.metrics.ObserveConversion("converted")
	s.logger.Info("chatbot lead converted",
		"lead_id", lead.ID, "booking_id", created.ID, "service_type", created.ServiceType)
	return created, nil
}

// deriveName picks the booking's customer name: the admin override wins,
// then a name embedded after the conversation-notes marker, then whatever
// name the lead was stored under.
func deriveName(override string, lead *leads.Lead) string {
	if override != "" {
		return override
	}
	if name := nameFromNotes(lead.Message); name != "" {
		return name
	}
	return lead.Name
}

// serviceTypeFromLead guesses a service type from the lead's subject and
// message. Chatbot leads rarely name one outright, so anything without a
// recognizable service keyword books as full-service.
func serviceTypeFromLead(lead *leads.Lead) string {
	text := strings.ToLower(lead.Subject + " " + lead.Message)
	switch {
	case strings.Contains(text, "office clean"):
		return bookings.ServiceOfficeCleaning
	case strings.Contains(text, "clean"):
		return bookings.ServiceHouseCleaning
	case strings.Contains(text, "commercial") || strings.Contains(text, "office move"):
		return bookings.ServiceCommercialMoving
	case strings.Contains(text, "residential") || strings.Contains(text, "apartment move") || strings.Contains(text, "moving"):
		return bookings.ServiceResidentialMoving
	}
	return bookings.ServiceFullService
}

func nameFromNotes(message string) string {
	_, rest, ok := strings.Cut(message, notesMarker)
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(rest, "|")
	first = strings.TrimSpace(first)
	if first == "" || strings.Contains(first, "@") || numericOnly(first) {
		return ""
	}
	return first
}

func addressFromNotes(message string) string {
	_, rest, ok := strings.Cut(message, fromAddressMarker)
	if !ok {
		return ""
	}
	addr, _, _ := strings.Cut(rest, "|")
	addr, _, _ = strings.Cut(addr, "\n")
	return strings.TrimSpace(addr)
}

// numericOnly reports whether s looks like a bare phone number rather than
// a name.
func numericOnly(s string) bool {
	sawDigit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			sawDigit = true
		case strings.ContainsRune("()+-. ", r):
		default:
			return false
		}
	}
	return sawDigit
}

// parsePreferredDate accepts RFC 3339 timestamps or bare dates. Without an
// override the booking defaults to a week out.
func parsePreferredDate(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now.AddDate(0, 0, 7), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}
