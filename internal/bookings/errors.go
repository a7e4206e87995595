package bookings

import "errors"

var (
	// ErrMissingName is returned when the customer name is absent
	ErrMissingName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are absent
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrInvalidServiceType is returned for an unknown service type
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidMoveSize is returned for a move size outside the canonical
	// set that is not marked as free text
	ErrInvalidMoveSize = errors.New("invalid move size")

	// ErrInvalidPreferredTime is returned for an unrecognized time window
	ErrInvalidPreferredTime = errors.New("invalid preferred time")

	// ErrMissingAddress is returned when the service address is absent
	ErrMissingAddress = errors.New("current address is required")

	// ErrMissingDate is returned when no preferred date is given
	ErrMissingDate = errors.New("preferred date is required")

	// ErrInvalidStatus is returned for a status outside {pending, confirmed, completed, cancelled}
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrNegativeCost is returned when a monetary field is below zero
	ErrNegativeCost = errors.New("cost cannot be negative")

	// ErrBookingNotFound is returned when a booking is not found
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyConverted is returned when a chatbot lead already has a booking
	ErrAlreadyConverted = errors.New("lead has already been converted to a booking")
)
