package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/leads"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
)

var taskRowColumns = []string{
	"id", "title", "description", "task_type", "priority", "status",
	"booking_id", "contact_id", "customer_name", "customer_email", "service_type",
	"due_date", "auto_generated", "started_at", "completed_at", "created_at", "updated_at",
}

func taskRow(mock pgxmock.PgxPoolIface, id, taskType, priority, status string) *pgxmock.Rows {
	now := time.Now().UTC()
	return mock.NewRows(taskRowColumns).AddRow(
		id, "Task title", "", taskType, priority, status,
		"", "", "", "", "", (*time.Time)(nil), false,
		(*time.Time)(nil), (*time.Time)(nil), now, now,
	)
}

type stubBookingLookup struct {
	booking *bookings.Booking
	err     error
}

func (s *stubBookingLookup) GetByID(_ context.Context, _ string) (*bookings.Booking, error) {
	return s.booking, s.err
}

type stubLeadLookup struct {
	lead *leads.Lead
	err  error
}

func (s *stubLeadLookup) GetByID(_ context.Context, _ string) (*leads.Lead, error) {
	return s.lead, s.err
}

func newTestService(t *testing.T, bl BookingLookup, ll LeadLookup) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewService(NewRepositoryWithDB(mock), bl, ll,
		metrics.NewOpsMetrics(prometheus.NewRegistry()), nil), mock
}

func TestServiceCreateSnapshotsBooking(t *testing.T) {
	bl := &stubBookingLookup{booking: &bookings.Booking{
		ID: "bk-1", Name: "Jane Doe", Email: "jane@example.com",
		ServiceType: bookings.ServiceResidentialMoving,
	}}
	svc, mock := newTestService(t, bl, nil)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(pgxmock.AnyArg(), "Pre-move check for booking", "Verify details",
			TypePreMoveCheck, PriorityHigh, StatusPending,
			"bk-1", "", "Jane Doe", "jane@example.com", bookings.ServiceResidentialMoving,
			(*time.Time)(nil), false).
		WillReturnRows(taskRow(mock, "task-1", TypePreMoveCheck, PriorityHigh, StatusPending))

	_, err := svc.Create(context.Background(), &CreateTaskRequest{
		Title:       "Pre-move check for booking",
		Description: "Verify details",
		TaskType:    TypePreMoveCheck,
		Priority:    PriorityHigh,
		BookingID:   "bk-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServiceCreateUnknownBooking(t *testing.T) {
	bl := &stubBookingLookup{err: bookings.ErrBookingNotFound}
	svc, _ := newTestService(t, bl, nil)

	_, err := svc.Create(context.Background(), &CreateTaskRequest{
		Title: "t", TaskType: TypeFollowUp, BookingID: "missing",
	})
	if !errors.Is(err, bookings.ErrBookingNotFound) {
		t.Errorf("got %v, want ErrBookingNotFound", err)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)

	cases := []struct {
		name string
		req  CreateTaskRequest
		want error
	}{
		{"missing title", CreateTaskRequest{TaskType: TypeFollowUp}, ErrMissingTitle},
		{"bad type", CreateTaskRequest{Title: "t", TaskType: "nap"}, ErrInvalidType},
		{"bad priority", CreateTaskRequest{Title: "t", TaskType: TypeCustom, Priority: "asap"}, ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), &tc.req); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestServiceUpdateStatusTransition(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	mock.ExpectQuery("SELECT .+ FROM tasks WHERE id").
		WithArgs("task-1").
		WillReturnRows(taskRow(mock, "task-1", TypeFollowUp, PriorityLow, StatusPending))
	mock.ExpectQuery("UPDATE tasks SET").
		WithArgs("task-1", "Task title", "", PriorityLow, StatusCompleted,
			(*time.Time)(nil), (*time.Time)(nil), &fixed).
		WillReturnRows(taskRow(mock, "task-1", TypeFollowUp, PriorityLow, StatusCompleted))

	status := StatusCompleted
	if _, err := svc.Update(context.Background(), "task-1", &UpdateTaskRequest{Status: &status}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestServiceUpdateRejectsInvalidTransition(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	mock.ExpectQuery("SELECT .+ FROM tasks WHERE id").
		WithArgs("task-1").
		WillReturnRows(taskRow(mock, "task-1", TypeFollowUp, PriorityLow, StatusCancelled))

	status := StatusCompleted
	_, err := svc.Update(context.Background(), "task-1", &UpdateTaskRequest{Status: &status})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("got %v, want ErrInvalidTransition", err)
	}
	// no UPDATE must have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestAutoGenerateForBookingStatus(t *testing.T) {
	booking := &bookings.Booking{
		ID: "bk-1", Name: "Jane Doe", Email: "jane@example.com",
		ServiceType: bookings.ServiceResidentialMoving,
	}

	cases := []struct {
		status   string
		taskType string
		priority string
	}{
		{bookings.StatusPending, TypePreMoveCheck, PriorityMedium},
		{bookings.StatusConfirmed, TypeConfirmationCall, PriorityHigh},
		{bookings.StatusCompleted, TypeFollowUp, PriorityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.status, func(t *testing.T) {
			svc, mock := newTestService(t, nil, nil)
			mock.ExpectQuery("INSERT INTO tasks").
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
					tc.taskType, tc.priority, StatusPending,
					"bk-1", "", "Jane Doe", "jane@example.com",
					bookings.ServiceResidentialMoving, pgxmock.AnyArg(), true).
				WillReturnRows(taskRow(mock, "task-1", tc.taskType, tc.priority, StatusPending))

			if err := svc.AutoGenerateForBookingStatus(context.Background(), booking, tc.status); err != nil {
				t.Fatalf("AutoGenerateForBookingStatus returned error: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestAutoGenerateCancelledIsNoOp(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)

	booking := &bookings.Booking{ID: "bk-1", Name: "Jane Doe"}
	if err := svc.AutoGenerateForBookingStatus(context.Background(), booking, bookings.StatusCancelled); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected queries: %v", err)
	}
}

func TestCreateCollectPaymentTaskDueInThreeDays(t *testing.T) {
	svc, mock := newTestService(t, nil, nil)
	fixed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	due := fixed.Add(3 * 24 * time.Hour)

	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(pgxmock.AnyArg(), "Collect remaining balance: Jane Doe", pgxmock.AnyArg(),
			TypeCollectPayment, PriorityMedium, StatusPending,
			"bk-1", "", "Jane Doe", "jane@example.com", bookings.ServiceHouseCleaning,
			&due, true).
		WillReturnRows(taskRow(mock, "task-1", TypeCollectPayment, PriorityMedium, StatusPending))

	booking := &bookings.Booking{
		ID: "bk-1", Name: "Jane Doe", Email: "jane@example.com",
		ServiceType: bookings.ServiceHouseCleaning,
	}
	if err := svc.CreateCollectPaymentTask(context.Background(), booking); err != nil {
		t.Fatalf("CreateCollectPaymentTask returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestNewConversionFollowUp(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	booking := &bookings.Booking{
		ID: "bk-1", Name: "Jane Doe", Email: "jane@example.com",
		ServiceType: bookings.ServiceResidentialMoving,
	}

	task := NewConversionFollowUp(booking, "lead-1", now)
	if task.Priority != PriorityHigh || task.TaskType != TypeFollowUp {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.BookingID != "bk-1" || task.ContactID != "lead-1" {
		t.Errorf("task must reference booking and lead, got %+v", task)
	}
	if task.DueDate == nil || !task.DueDate.Equal(now.Add(24*time.Hour)) {
		t.Errorf("due date should be one day out, got %v", task.DueDate)
	}
	if !task.AutoGenerated {
		t.Error("conversion follow-up must be flagged auto-generated")
	}
}
