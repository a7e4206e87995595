package bookings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func newTestHandler(t *testing.T) (*Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewHandler(NewService(NewRepositoryWithDB(mock), nil, nil), nil), mock
}

func TestHandlerCreate(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), "Jane Doe", "jane@example.com", "513-555-0142",
			ServiceResidentialMoving, SizeTwoBedroom, "123 Main St", "456 Oak Ave",
			pgxmock.AnyArg(), TimeFlexible, "", StatusPending).
		WillReturnRows(bookingRow(mock, "bk-1", StatusPending, nil))

	body, _ := json.Marshal(validCreateRequest())
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var b Booking
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if b.ID != "bk-1" {
		t.Errorf("unexpected booking: %+v", b)
	}
}

func TestHandlerCreateRejectsBadServiceType(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings",
		bytes.NewBufferString(`{"name":"Jane","email":"a@b.com","serviceType":"lawn-care","currentAddress":"123 Main St","preferredDate":"2026-10-01T00:00:00Z"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerUpdateCostNegative(t *testing.T) {
	h, _ := newTestHandler(t)

	r := chi.NewRouter()
	r.Put("/api/admin/bookings/{id}/cost", h.UpdateCost)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/bookings/bk-1/cost",
		bytes.NewBufferString(`{"totalCost":-100}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative cost, got %d", rec.Code)
	}
}

func TestHandlerUpdateCostNotFound(t *testing.T) {
	h, mock := newTestHandler(t)
	cost := int64(10000)
	mock.ExpectQuery("UPDATE bookings SET").
		WithArgs("nonexistent-id", &cost, (*int64)(nil), (*float64)(nil)).
		WillReturnRows(mock.NewRows(bookingRowColumns))

	r := chi.NewRouter()
	r.Put("/api/admin/bookings/{id}/cost", h.UpdateCost)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/bookings/nonexistent-id/cost",
		bytes.NewBufferString(`{"totalCost":100}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerCancel(t *testing.T) {
	h, mock := newTestHandler(t)
	mock.ExpectQuery("UPDATE bookings SET status").
		WithArgs("bk-1", StatusCancelled).
		WillReturnRows(bookingRow(mock, "bk-1", StatusCancelled, nil))

	r := chi.NewRouter()
	r.Delete("/api/bookings/{id}", h.Cancel)

	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/bk-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["message"] != "Booking cancelled successfully" {
		t.Errorf("unexpected message: %q", resp["message"])
	}
}
