package quotes

import "errors"

var (
	// ErrMissingName is returned when the name is absent
	ErrMissingName = errors.New("name is required")

	// ErrInvalidEmail is returned when the email is absent or malformed
	ErrInvalidEmail = errors.New("a valid email is required")

	// ErrMissingPhone is returned when the phone number is absent
	ErrMissingPhone = errors.New("phone is required")

	// ErrInvalidServiceType is returned for an unknown service type
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidMoveSize is returned for a move size outside the canonical
	// set that is not marked as free text
	ErrInvalidMoveSize = errors.New("invalid move size")

	// ErrMissingAddress is returned when the from address is absent
	ErrMissingAddress = errors.New("fromAddress is required")

	// ErrInvalidStatus is returned for a status outside {pending, quoted, accepted, declined}
	ErrInvalidStatus = errors.New("invalid quote status")

	// ErrNegativePrice is returned when the estimated price is below zero
	ErrNegativePrice = errors.New("estimated price cannot be negative")

	// ErrQuoteNotFound is returned when a quote is not found
	ErrQuoteNotFound = errors.New("quote request not found")
)
