package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
)

type stubTaskGenerator struct {
	calls []string
	err   error
}

func (s *stubTaskGenerator) AutoGenerateForBookingStatus(_ context.Context, b *Booking, newStatus string) error {
	s.calls = append(s.calls, b.ID+":"+newStatus)
	return s.err
}

func TestServiceUpdateStatusFiresTaskHook(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs("bk-1", StatusConfirmed).
		WillReturnRows(bookingRow(mock, "bk-1", StatusConfirmed, nil))

	gen := &stubTaskGenerator{}
	svc := NewService(NewRepositoryWithDB(mock), gen, nil)

	if _, err := svc.UpdateStatus(context.Background(), "bk-1", StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if len(gen.calls) != 1 || gen.calls[0] != "bk-1:confirmed" {
		t.Errorf("unexpected task generator calls: %v", gen.calls)
	}
}

func TestServiceUpdateStatusSurvivesTaskFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs("bk-1", StatusCompleted).
		WillReturnRows(bookingRow(mock, "bk-1", StatusCompleted, nil))

	gen := &stubTaskGenerator{err: errors.New("tasks store down")}
	svc := NewService(NewRepositoryWithDB(mock), gen, nil)

	b, err := svc.UpdateStatus(context.Background(), "bk-1", StatusCompleted)
	if err != nil {
		t.Fatalf("task failure must not surface, got %v", err)
	}
	if b.Status != StatusCompleted {
		t.Errorf("got status %q, want completed", b.Status)
	}
}

func TestServiceCreateDoesNotFireTaskHook(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	req := validCreateRequest()
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), req.Name, req.Email, req.Phone, req.ServiceType,
			req.MoveSize, req.CurrentAddress, req.NewAddress, req.PreferredDate,
			req.PreferredTime, req.SpecialRequests, StatusPending).
		WillReturnRows(bookingRow(mock, "bk-1", StatusPending, nil))

	gen := &stubTaskGenerator{}
	svc := NewService(NewRepositoryWithDB(mock), gen, nil)

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(gen.calls) != 0 {
		t.Errorf("creating a booking should not generate tasks, got %v", gen.calls)
	}
}

func TestServiceCancel(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs("bk-1", StatusCancelled).
		WillReturnRows(bookingRow(mock, "bk-1", StatusCancelled, nil))

	gen := &stubTaskGenerator{}
	svc := NewService(NewRepositoryWithDB(mock), gen, nil)

	b, err := svc.Cancel(context.Background(), "bk-1")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if b.Status != StatusCancelled {
		t.Errorf("got status %q, want cancelled", b.Status)
	}
}
