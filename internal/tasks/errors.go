package tasks

import "errors"

var (
	// ErrMissingTitle is returned when the title is empty
	ErrMissingTitle = errors.New("title is required")

	// ErrInvalidType is returned for an unknown task type
	ErrInvalidType = errors.New("invalid task type")

	// ErrInvalidPriority is returned for a priority outside {low, medium, high, urgent}
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidStatus is returned for an unknown task status
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidTransition is returned when the status graph forbids the move
	ErrInvalidTransition = errors.New("invalid task status transition")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")
)
