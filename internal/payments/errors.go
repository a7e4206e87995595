package payments

import "errors"

var (
	// ErrMissingBooking is returned when the booking id is absent
	ErrMissingBooking = errors.New("bookingId is required")

	// ErrNegativeAmount is returned when the amount is below zero
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidType is returned for a type outside {deposit, partial, full, refund}
	ErrInvalidType = errors.New("invalid payment type")

	// ErrInvalidMethod is returned for a method outside {cash, card, check, bank_transfer, other}
	ErrInvalidMethod = errors.New("invalid payment method")

	// ErrPaymentNotFound is returned when a payment is not found
	ErrPaymentNotFound = errors.New("payment not found")
)
