package payments

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/money"
	"github.com/swiftmoveclean/ops-backend/internal/observability/metrics"
	"github.com/swiftmoveclean/ops-backend/internal/tasks"
	"github.com/swiftmoveclean/ops-backend/pkg/logging"
)

// BookingStore is the slice of the bookings repository the ledger needs.
type BookingStore interface {
	GetByID(ctx context.Context, id string) (*bookings.Booking, error)
	List(ctx context.Context, status string) ([]*bookings.Booking, error)
}

// TaskSpawner creates the auto-generated balance-collection task.
type TaskSpawner interface {
	CreateCollectPaymentTask(ctx context.Context, b *bookings.Booking) error
}

// TaskLister fetches a booking's tasks for the details view.
type TaskLister interface {
	ListByBooking(ctx context.Context, bookingID string) ([]*tasks.Task, error)
}

// BookingDetails is the combined admin view of one booking.
type BookingDetails struct {
	Booking    *bookings.Booking `json:"booking"`
	Payments   []*Payment        `json:"payments"`
	Tasks      []*tasks.Task     `json:"tasks"`
	Financials BookingFinancials `json:"financials"`
}

// Service owns the payment ledger and every derived financial view.
type Service struct {
	repo     *Repository
	bookings BookingStore
	spawner  TaskSpawner
	taskList TaskLister
	metrics  *metrics.OpsMetrics
	logger   *logging.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

func NewService(repo *Repository, bookingStore BookingStore, spawner TaskSpawner,
	taskLister TaskLister, m *metrics.OpsMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("payments: repository required")
	}
	if bookingStore == nil {
		panic("payments: booking store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		bookings: bookingStore,
		spawner:  spawner,
		taskList: taskLister,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("swiftmove.internal.payments"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordPayment validates and appends a ledger entry. Deposits spawn the
// balance-collection follow-up task.
func (s *Service) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*Payment, error) {
	ctx, span := s.tracer.Start(ctx, "payments.record")
	defer span.End()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Insert(ctx, req)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePayment(p.PaymentType)
	s.logger.Info("payment recorded",
		"id", p.ID, "booking_id", p.BookingID, "type", p.PaymentType, "amount_cents", int64(p.Amount))

	if p.PaymentType == TypeDeposit && s.spawner != nil {
		if err := s.spawner.CreateCollectPaymentTask(ctx, booking); err != nil {
			span.RecordError(err)
			s.logger.Error("collect-payment task creation failed", "error", err, "booking_id", booking.ID)
		}
	}
	return p, nil
}

// DeletePayment removes a ledger entry.
func (s *Service) DeletePayment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("payment deleted", "id", id)
	return nil
}

// List returns the full ledger newest-first.
func (s *Service) List(ctx context.Context) ([]*Payment, error) {
	return s.repo.ListAll(ctx)
}

// Financials recomputes one booking's financial state from its ledger.
func (s *Service) Financials(ctx context.Context, bookingID string) (BookingFinancials, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return BookingFinancials{}, err
	}
	ledger, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return BookingFinancials{}, err
	}

	var cost money.Cents
	if booking.TotalCost != nil {
		cost = *booking.TotalCost
	}
	return ComputeFinancials(cost, ledger), nil
}

// Details assembles the booking, its ledger, its tasks, and the derived
// financials in one response.
func (s *Service) Details(ctx context.Context, bookingID string) (*BookingDetails, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var bookingTasks []*tasks.Task
	if s.taskList != nil {
		bookingTasks, err = s.taskList.ListByBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
	}

	var cost money.Cents
	if booking.TotalCost != nil {
		cost = *booking.TotalCost
	}
	return &BookingDetails{
		Booking:    booking,
		Payments:   ledger,
		Tasks:      bookingTasks,
		Financials: ComputeFinancials(cost, ledger),
	}, nil
}

// Summary recomputes the company-wide revenue picture by re-scanning the
// whole ledger and booking set.
func (s *Service) Summary(ctx context.Context) (*RevenueSummary, error) {
	ctx, span := s.tracer.Start(ctx, "payments.revenue_summary")
	defer span.End()

	ledger, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	allBookings, err := s.bookings.List(ctx, "")
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	thisMonthStart := firstOfMonth(asOf)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var (
		total, thisMonth, lastMonth money.Cents
		breakdown                   RevenueBreakdown
		byBooking                   = map[string][]*Payment{}
	)
	for _, p := range ledger {
		byBooking[p.BookingID] = append(byBooking[p.BookingID], p)

		signed := p.Amount
		if p.PaymentType == TypeRefund {
			signed = -p.Amount
		}
		total += signed
		switch {
		case !p.CreatedAt.Before(thisMonthStart):
			thisMonth += signed
		case !p.CreatedAt.Before(lastMonthStart):
			lastMonth += signed
		}

		switch p.PaymentType {
		case TypeDeposit:
			breakdown.Deposits += p.Amount
		case TypePartial:
			breakdown.PartialPayments += p.Amount
		case TypeFull:
			breakdown.FullPayments += p.Amount
		case TypeRefund:
			breakdown.Refunds += p.Amount
		}
	}

	var outstanding, contractorCosts money.Cents
	for _, b := range allBookings {
		if b.ContractorCost != nil {
			contractorCosts += *b.ContractorCost
		}
		if b.TotalCost == nil || *b.TotalCost <= 0 {
			continue
		}
		fin := ComputeFinancials(*b.TotalCost, byBooking[b.ID])
		outstanding += fin.BalanceDue
	}

	return &RevenueSummary{
		TotalRevenue:       total,
		NetRevenue:         total - contractorCosts,
		MonthlyRevenue:     thisMonth,
		LastMonthRevenue:   lastMonth,
		GrowthPercentage:   growthPercentage(thisMonth, lastMonth),
		OutstandingBalance: outstanding,
		Breakdown:          breakdown,
	}, nil
}

// MonthlySeries buckets the ledger into a chronological month-by-month
// revenue series.
func (s *Service) MonthlySeries(ctx context.Context) ([]MonthlyRevenuePoint, error) {
	ledger, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		revenue money.Cents
		count   int
	}
	buckets := map[string]*bucket{}
	for _, p := range ledger {
		key := p.CreatedAt.UTC().Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		if p.PaymentType == TypeRefund {
			b.revenue -= p.Amount
		} else {
			b.revenue += p.Amount
		}
		b.count++
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyRevenuePoint, 0, len(months))
	for _, m := range months {
		out = append(out, MonthlyRevenuePoint{
			Month:    m,
			Revenue:  buckets[m].revenue,
			Payments: buckets[m].count,
		})
	}
	return out, nil
}

// growthPercentage follows the month-over-month rules: a month growing from
// zero reads as 100%, two empty months read as 0%.
func growthPercentage(thisMonth, lastMonth money.Cents) float64 {
	if lastMonth == 0 {
		if thisMonth > 0 {
			return 100
		}
		return 0
	}
	return float64(thisMonth-lastMonth) / float64(lastMonth) * 100
}

func firstOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
