package leads

import "errors"

var (
	// ErrInvalidName is returned when the name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrMissingMessage is returned when the message body is empty
	ErrMissingMessage = errors.New("message is required")

	// ErrInvalidStatus is returned for a status outside {new, read, replied, contacted}
	ErrInvalidStatus = errors.New("invalid lead status")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
