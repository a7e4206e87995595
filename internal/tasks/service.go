package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// BookingLookup resolves booking ids for snapshot enrichment.
type BookingLookup interface {
	GetByID(ctx context.Context, id string) (*bookings.Booking, error)
}

// LeadLookup resolves contact ids for snapshot enrichment.
type LeadLookup interface {
	GetByID(ctx context.Context, id string) (*leads.Lead, error)
}

// Service owns task lifecycle rules: snapshot enrichment on create, the
// status state machine, and the canned auto-generation templates.
type Service struct {
	repo     *Repository
	bookings BookingLookup
	leads    LeadLookup
	metrics  *metrics.OpsMetrics
	logger   *logging.Logger
	now      func() time.Time
}

func NewService(repo *Repository, bookingLookup BookingLookup, leadLookup LeadLookup,
	m *metrics.OpsMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("tasks: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		bookings: bookingLookup,
		leads:    leadLookup,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the request, copies display fields from the referenced
// booking or contact, and stores the task.
func (s *Service) Create(ctx context.Context, req *CreateTaskRequest) (*Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &Task{
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		Priority:    req.Priority,
		Status:      StatusPending,
		BookingID:   req.BookingID,
		ContactID:   req.ContactID,
		DueDate:     req.DueDate,
	}

	if req.BookingID != "" && s.bookings != nil {
		b, err := s.bookings.GetByID(ctx, req.BookingID)
		if err != nil {
			return nil, err
		}
		t.CustomerName = b.Name
		t.CustomerEmail = b.Email
		t.ServiceType = b.ServiceType
	}
	if req.ContactID != "" && s.leads != nil {
		lead, err := s.leads.GetByID(ctx, req.ContactID)
		if err != nil {
			return nil, err
		}
		if t.CustomerName == "" {
			t.CustomerName = lead.Name
		}
		if t.CustomerEmail == "" {
			t.CustomerEmail = lead.Email
		}
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.logger.Info("task created", "id", created.ID, "type", created.TaskType)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]*Task, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status)
}

// Update applies partial edits. A status change runs through the transition
// graph and maintains the started/completed timestamps.
func (s *Service) Update(ctx context.Context, id string, req *UpdateTaskRequest) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := t.ApplyStatus(*req.Status, s.now()); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		if !ValidPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		t.Priority = *req.Priority
	}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, ErrMissingTitle
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}

	return s.repo.Update(ctx, t)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

type taskTemplate struct {
	taskType  string
	title     string
	desc      string
	priority  string
	dueOffset time.Duration
}

// bookingStatusTemplates maps a booking's new status to the canned task it
// spawns. Cancelled bookings have no template on purpose.
var bookingStatusTemplates = map[string]taskTemplate{
	bookings.StatusPending: {
		taskType:  TypePreMoveCheck,
		title:     "Pre-move check",
		desc:      "Verify all details before the scheduled service",
		priority:  PriorityMedium,
		dueOffset: 3 * 24 * time.Hour,
	},
	bookings.StatusConfirmed: {
		taskType:  TypeConfirmationCall,
		title:     "Confirmation call",
		desc:      "Call the customer to confirm date, time, and crew details",
		priority:  PriorityHigh,
		dueOffset: 24 * time.Hour,
	},
	bookings.StatusCompleted: {
		taskType:  TypeFollowUp,
		title:     "Post-service follow-up",
		desc:      "Check in with the customer and request a review",
		priority:  PriorityMedium,
		dueOffset: 2 * 24 * time.Hour,
	},
}

// AutoGenerateForBookingStatus spawns the canned task for a booking status
// change. Statuses without a template are a no-op.
func (s *Service) AutoGenerateForBookingStatus(ctx context.Context, b *bookings.Booking, newStatus string) error {
	tpl, ok := bookingStatusTemplates[newStatus]
	if !ok {
		return nil
	}

	due := s.now().Add(tpl.dueOffset)
	t := &Task{
		Title:         fmt.Sprintf("%s: %s", tpl.title, b.Name),
		Description:   tpl.desc,
		TaskType:      tpl.taskType,
		Priority:      tpl.priority,
		Status:        StatusPending,
		BookingID:     b.ID,
		CustomerName:  b.Name,
		CustomerEmail: b.Email,
		ServiceType:   b.ServiceType,
		DueDate:       &due,
		AutoGenerated: true,
	}
	if _, err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.metrics.ObserveAutoTask("booking_" + newStatus)
	s.logger.Info("auto task generated", "booking_id", b.ID, "type", tpl.taskType, "trigger", newStatus)
	return nil
}

// CreateCollectPaymentTask spawns the balance-collection task that follows a
// deposit payment. Due three days out.
func (s *Service) CreateCollectPaymentTask(ctx context.Context, b *bookings.Booking) error {
	due := s.now().Add(3 * 24 * time.Hour)
	t := &Task{
		Title:         fmt.Sprintf("Collect remaining balance: %s", b.Name),
		Description:   "A deposit was received; collect the remaining balance before the service date",
		TaskType:      TypeCollectPayment,
		Priority:      PriorityMedium,
		Status:        StatusPending,
		BookingID:     b.ID,
		CustomerName:  b.Name,
		CustomerEmail: b.Email,
		ServiceType:   b.ServiceType,
		DueDate:       &due,
		AutoGenerated: true,
	}
	if _, err := s.repo.Create(ctx, t); err != nil {
		return err
	}
	s.metrics.ObserveAutoTask("deposit")
	s.logger.Info("auto task generated", "booking_id", b.ID, "type", TypeCollectPayment, "trigger", "deposit")
	return nil
}

// NewConversionFollowUp builds the follow-up task recorded when a chatbot
// lead becomes a booking. The caller inserts it inside the conversion
// transaction via Repository.CreateIn.
func NewConversionFollowUp(b *bookings.Booking, leadID string, now time.Time) *Task {
	due := now.Add(24 * time.Hour)
	return &Task{
		Title:         fmt.Sprintf("Follow up on converted chatbot lead: %s", b.Name),
		Description:   fmt.Sprintf("Chatbot lead %s was converted to booking %s (%s). Reach out to finalize details.", leadID, b.ID, b.ServiceType),
		TaskType:      TypeFollowUp,
		Priority:      PriorityHigh,
		Status:        StatusPending,
		BookingID:     b.ID,
		ContactID:     leadID,
		CustomerName:  b.Name,
		CustomerEmail: b.Email,
		ServiceType:   b.ServiceType,
		DueDate:       &due,
		AutoGenerated: true,
	}
}
