package bookings

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// TaskGenerator produces workflow tasks in response to booking lifecycle
// changes. Implemented by the tasks service.
type TaskGenerator interface {
	AutoGenerateForBookingStatus(ctx context.Context, b *Booking, newStatus string) error
}

// Service wraps the repository with lifecycle side effects.
type Service struct {
	repo   *Repository
	tasks  TaskGenerator
	logger *logging.Logger
	tracer trace.Tracer
}

func NewService(repo *Repository, tasks TaskGenerator, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:   repo,
		tasks:  tasks,
		logger: logger,
		tracer: otel.Tracer("swiftmove.internal.bookings"),
	}
}

func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Booking, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.create")
	defer span.End()

	b, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("booking.id", b.ID))
	s.logger.Info("booking created", "id", b.ID, "service_type", b.ServiceType)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]*Booking, error) {
	return s.repo.List(ctx, status)
}

// UpdateStatus changes the booking status and fires the matching workflow
// task template. A task failure is logged but never rolls back the status
// change the admin asked for.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.update_status",
		trace.WithAttributes(attribute.String("booking.status", status)))
	defer span.End()

	b, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking status updated", "id", id, "status", status)

	if s.tasks != nil {
		if err := s.tasks.AutoGenerateForBookingStatus(ctx, b, status); err != nil {
			span.RecordError(err)
			s.logger.Error("auto task generation failed", "error", err, "booking_id", id, "status", status)
		}
	}
	return b, nil
}

func (s *Service) UpdateCost(ctx context.Context, id string, req *UpdateCostRequest) (*Booking, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.update_cost")
	defer span.End()

	b, err := s.repo.UpdateCost(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("booking priced", "id", id)
	return b, nil
}

// Cancel soft-deletes a booking by moving it to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled)
}
