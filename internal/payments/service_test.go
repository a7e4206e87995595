package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/money"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
)

type stubBookingStore struct {
	byID   map[string]*bookings.Booking
	listed []*bookings.Booking
}

func (s *stubBookingStore) GetByID(ctx context.Context, id string) (*bookings.Booking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, bookings.ErrBookingNotFound
	}
	return b, nil
}

func (s *stubBookingStore) List(ctx context.Context, status string) ([]*bookings.Booking, error) {
	return s.listed, nil
}

type stubSpawner struct {
	spawned []string
	err     error
}

func (s *stubSpawner) CreateCollectPaymentTask(ctx context.Context, b *bookings.Booking) error {
	s.spawned = append(s.spawned, b.ID)
	return s.err
}

type stubTaskLister struct {
	tasks []*tasks.Task
}

func (s *stubTaskLister) ListByBooking(ctx context.Context, bookingID string) ([]*tasks.Task, error) {
	return s.tasks, nil
}

func cents(v money.Cents) *money.Cents { return &v }

func newTestService(t *testing.T, store *stubBookingStore, spawner *stubSpawner) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewService(NewRepositoryWithDB(mock), store, spawner,
		&stubTaskLister{}, metrics.NewOpsMetrics(prometheus.NewRegistry()), nil)
	return svc, mock
}

func TestRecordDepositSpawnsCollectionTask(t *testing.T) {
	store := &stubBookingStore{byID: map[string]*bookings.Booking{
		"bk-1": {ID: "bk-1", Name: "Jane Doe"},
	}}
	spawner := &stubSpawner{}
	svc, mock := newTestService(t, store, spawner)

	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), "bk-1", int64(20000), TypeDeposit, MethodCard, "").
		WillReturnRows(paymentRow("pay-1", "bk-1", 20000, TypeDeposit))

	p, err := svc.RecordPayment(context.Background(), &RecordPaymentRequest{
		BookingID:     "bk-1",
		Amount:        20000,
		PaymentType:   TypeDeposit,
		PaymentMethod: MethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", p.ID)
	assert.Equal(t, []string{"bk-1"}, spawner.spawned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFullPaymentSpawnsNoTask(t *testing.T) {
	store := &stubBookingStore{byID: map[string]*bookings.Booking{
		"bk-1": {ID: "bk-1"},
	}}
	spawner := &stubSpawner{}
	svc, mock := newTestService(t, store, spawner)

	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), "bk-1", int64(50000), TypeFull, MethodCash, "").
		WillReturnRows(paymentRow("pay-2", "bk-1", 50000, TypeFull))

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentRequest{
		BookingID:     "bk-1",
		Amount:        50000,
		PaymentType:   TypeFull,
		PaymentMethod: MethodCash,
	})
	require.NoError(t, err)
	assert.Empty(t, spawner.spawned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentUnknownBooking(t *testing.T) {
	svc, mock := newTestService(t, &stubBookingStore{byID: map[string]*bookings.Booking{}}, &stubSpawner{})

	_, err := svc.RecordPayment(context.Background(), &RecordPaymentRequest{
		BookingID:     "missing",
		Amount:        20000,
		PaymentType:   TypeDeposit,
		PaymentMethod: MethodCard,
	})
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPaymentSurvivesTaskFailure(t *testing.T) {
	store := &stubBookingStore{byID: map[string]*bookings.Booking{
		"bk-1": {ID: "bk-1"},
	}}
	spawner := &stubSpawner{err: errors.New("task store down")}
	svc, mock := newTestService(t, store, spawner)

	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(pgxmock.AnyArg(), "bk-1", int64(20000), TypeDeposit, MethodCard, "").
		WillReturnRows(paymentRow("pay-1", "bk-1", 20000, TypeDeposit))

	p, err := svc.RecordPayment(context.Background(), &RecordPaymentRequest{
		BookingID:     "bk-1",
		Amount:        20000,
		PaymentType:   TypeDeposit,
		PaymentMethod: MethodCard,
	})
	require.NoError(t, err)
	assert.Equal(t, "pay-1", p.ID)
	assert.Equal(t, []string{"bk-1"}, spawner.spawned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialsRecomputedFromLedger(t *testing.T) {
	store := &stubBookingStore{byID: map[string]*bookings.Booking{
		"bk-1": {ID: "bk-1", TotalCost: cents(100000)},
	}}
	svc, mock := newTestService(t, store, &stubSpawner{})

	rows := pgxmock.NewRows(paymentRowColumns).
		AddRow("pay-2", "bk-1", int64(5000), TypeRefund, MethodCard, "", time.Now().UTC()).
		AddRow("pay-1", "bk-1", int64(20000), TypeDeposit, MethodCard, "", time.Now().UTC())
	mock.ExpectQuery(`FROM payments WHERE booking_id`).WithArgs("bk-1").WillReturnRows(rows)

	fin, err := svc.Financials(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, money.Cents(20000), fin.TotalPaid)
	assert.Equal(t, money.Cents(5000), fin.TotalRefunded)
	assert.Equal(t, money.Cents(85000), fin.BalanceDue)
	assert.Equal(t, StatusPartial, fin.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailsAssemblesBookingView(t *testing.T) {
	store := &stubBookingStore{byID: map[string]*bookings.Booking{
		"bk-1": {ID: "bk-1", Name: "Jane Doe", TotalCost: cents(50000)},
	}}
	svc, mock := newTestService(t, store, &stubSpawner{})
	svc.taskList = &stubTaskLister{tasks: []*tasks.Task{{ID: "task-1", Title: "Confirmation call: Jane Doe"}}}

	mock.ExpectQuery(`FROM payments WHERE booking_id`).
		WithArgs("bk-1").
		WillReturnRows(paymentRow("pay-1", "bk-1", 50000, TypeFull))

	details, err := svc.Details(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", details.Booking.ID)
	require.Len(t, details.Payments, 1)
	require.Len(t, details.Tasks, 1)
	assert.Equal(t, StatusPaid, details.Financials.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRevenueSummary(t *testing.T) {
	store := &stubBookingStore{
		byID: map[string]*bookings.Booking{},
		listed: []*bookings.Booking{
			{ID: "bk-1", TotalCost: cents(100000)},
			{ID: "bk-2", TotalCost: cents(50000), ContractorCost: cents(20000)},
			{ID: "bk-3"},
		},
	}
	svc, mock := newTestService(t, store, &stubSpawner{})
	svc.now = func() time.Time { return time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC) }

	rows := pgxmock.NewRows(paymentRowColumns).
		AddRow("pay-4", "bk-1", int64(5000), TypeRefund, MethodCard, "", time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-3", "bk-1", int64(20000), TypeDeposit, MethodCard, "", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-2", "bk-2", int64(50000), TypeFull, MethodCash, "", time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-1", "bk-2", int64(30000), TypePartial, MethodCheck, "", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`FROM payments ORDER BY created_at DESC`).WillReturnRows(rows)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, money.Cents(95000), summary.TotalRevenue)
	assert.Equal(t, money.Cents(75000), summary.NetRevenue)
	assert.Equal(t, money.Cents(15000), summary.MonthlyRevenue)
	assert.Equal(t, money.Cents(50000), summary.LastMonthRevenue)
	assert.InDelta(t, -70.0, summary.GrowthPercentage, 0.001)
	// bk-1 still owes 85000, bk-2 is settled, bk-3 has no cost to owe
	assert.Equal(t, money.Cents(85000), summary.OutstandingBalance)
	assert.Equal(t, money.Cents(20000), summary.Breakdown.Deposits)
	assert.Equal(t, money.Cents(30000), summary.Breakdown.PartialPayments)
	assert.Equal(t, money.Cents(50000), summary.Breakdown.FullPayments)
	assert.Equal(t, money.Cents(5000), summary.Breakdown.Refunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthlySeries(t *testing.T) {
	svc, mock := newTestService(t, &stubBookingStore{}, &stubSpawner{})

	rows := pgxmock.NewRows(paymentRowColumns).
		AddRow("pay-4", "bk-1", int64(5000), TypeRefund, MethodCard, "", time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-3", "bk-1", int64(20000), TypeDeposit, MethodCard, "", time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-2", "bk-2", int64(50000), TypeFull, MethodCash, "", time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)).
		AddRow("pay-1", "bk-2", int64(30000), TypePartial, MethodCheck, "", time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`FROM payments ORDER BY created_at DESC`).WillReturnRows(rows)

	series, err := svc.MonthlySeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, MonthlyRevenuePoint{Month: "2026-06", Revenue: 30000, Payments: 1}, series[0])
	assert.Equal(t, MonthlyRevenuePoint{Month: "2026-08", Revenue: 50000, Payments: 1}, series[1])
	assert.Equal(t, MonthlyRevenuePoint{Month: "2026-09", Revenue: 15000, Payments: 2}, series[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}
