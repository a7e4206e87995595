package payments

import (
	"strings"
	"time"

	"github.com/swiftmoveclean/ops-backend/internal/money"
)

// Payment types.
const (
	TypeDeposit = "deposit"
	TypePartial = "partial"
	TypeFull    = "full"
	TypeRefund  = "refund"
)

// Payment methods.
const (
	MethodCash         = "cash"
	MethodCard         = "card"
	MethodCheck        = "check"
	MethodBankTransfer = "bank_transfer"
	MethodOther        = "other"
)

// Payment statuses derived from a booking's ledger.
const (
	StatusPaid    = "paid"
	StatusPartial = "partial"
	StatusUnpaid  = "unpaid"
)

// Payment is one immutable ledger entry against a booking.
type Payment struct {
	ID            string      `json:"id"`
	BookingID     string      `json:"bookingId"`
	Amount        money.Cents `json:"amount"`
	PaymentType   string      `json:"paymentType"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// RecordPaymentRequest is the admin payment-logging payload. Amount arrives
// as dollars.
type RecordPaymentRequest struct {
	BookingID     string      `json:"bookingId"`
	Amount        money.Cents `json:"amount"`
	PaymentType   string      `json:"paymentType"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	if strings.TrimSpace(r.BookingID) == "" {
		return ErrMissingBooking
	}
	if r.Amount < 0 {
		return ErrNegativeAmount
	}
	if !ValidType(r.PaymentType) {
		return ErrInvalidType
	}
	if !ValidMethod(r.PaymentMethod) {
		return ErrInvalidMethod
	}
	return nil
}

// BookingFinancials is the derived financial view of one booking. It is
// recomputed from the ledger on every read, never stored.
type BookingFinancials struct {
	TotalCost     money.Cents `json:"totalCost"`
	TotalPaid     money.Cents `json:"totalPaid"`
	TotalRefunded money.Cents `json:"totalRefunded"`
	BalanceDue    money.Cents `json:"balanceDue"`
	PaymentStatus string      `json:"paymentStatus"`
}

// ComputeFinancials folds a booking's ledger into its financial state.
// Refunds increase the balance due; a balance can never go below zero.
func ComputeFinancials(totalCost money.Cents, ledger []*Payment) BookingFinancials {
	var paid, refunded money.Cents
	for _, p := range ledger {
		if p.PaymentType == TypeRefund {
			refunded += p.Amount
		} else {
			paid += p.Amount
		}
	}

	balance := totalCost - paid + refunded
	if balance < 0 {
		balance = 0
	}

	status := StatusUnpaid
	switch {
	case balance <= 0 && totalCost > 0:
		status = StatusPaid
	case paid > 0:
		status = StatusPartial
	}

	return BookingFinancials{
		TotalCost:     totalCost,
		TotalPaid:     paid,
		TotalRefunded: refunded,
		BalanceDue:    balance,
		PaymentStatus: status,
	}
}

// RevenueBreakdown sums the ledger by payment type.
type RevenueBreakdown struct {
	Deposits        money.Cents `json:"deposits"`
	PartialPayments money.Cents `json:"partialPayments"`
	FullPayments    money.Cents `json:"fullPayments"`
	Refunds         money.Cents `json:"refunds"`
}

// RevenueSummary is the company-wide financial picture as of a point in time.
type RevenueSummary struct {
	TotalRevenue       money.Cents      `json:"totalRevenue"`
	NetRevenue         money.Cents      `json:"netRevenue"`
	MonthlyRevenue     money.Cents      `json:"monthlyRevenue"`
	LastMonthRevenue   money.Cents      `json:"lastMonthRevenue"`
	GrowthPercentage   float64          `json:"growthPercentage"`
	OutstandingBalance money.Cents      `json:"outstandingBalance"`
	Breakdown          RevenueBreakdown `json:"breakdown"`
}

// MonthlyRevenuePoint is one month of the revenue series.
type MonthlyRevenuePoint struct {
	Month    string      `json:"month"`
	Revenue  money.Cents `json:"revenue"`
	Payments int         `json:"payments"`
}

func ValidType(t string) bool {
	switch t {
	case TypeDeposit, TypePartial, TypeFull, TypeRefund:
		return true
	}
	return false
}

func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodCheck, MethodBankTransfer, MethodOther:
		return true
	}
	return false
}
