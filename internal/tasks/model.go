package tasks

import (
	"strings"
	"time"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task types.
const (
	TypeFollowUp         = "follow_up"
	TypePreMoveCheck     = "pre_move_check"
	TypeConfirmationCall = "confirmation_call"
	TypeCollectPayment   = "collect_payment"
	TypeCustom           = "custom"
)

// Task is one workflow item. The customer fields are a snapshot copied from
// the booking or contact at creation time; they are not kept in sync with
// later edits.
type Task struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TaskType      string     `json:"taskType"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	BookingID     string     `json:"bookingId,omitempty"`
	ContactID     string     `json:"contactId,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	ServiceType   string     `json:"serviceType,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	AutoGenerated bool       `json:"autoGenerated"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateTaskRequest is the admin task-creation payload.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	TaskType    string     `json:"taskType"`
	Priority    string     `json:"priority,omitempty"`
	BookingID   string     `json:"bookingId,omitempty"`
	ContactID   string     `json:"contactId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if !ValidType(r.TaskType) {
		return ErrInvalidType
	}
	if r.Priority != "" && !ValidPriority(r.Priority) {
		return ErrInvalidPriority
	}
	return nil
}

// UpdateTaskRequest carries partial task edits. Nil fields are untouched.
type UpdateTaskRequest struct {
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
}

// transitions is the allowed status graph. Reopening a finished task is
// permitted, every other move is rejected.
var transitions = map[string][]string{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusPending, StatusCancelled},
	StatusCompleted:  {StatusPending},
	StatusCancelled:  {StatusPending},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ApplyStatus performs a validated transition and maintains the started and
// completed timestamps. Entering pending resets both, so a reopened task
// looks fresh.
func (t *Task) ApplyStatus(status string, now time.Time) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	if !CanTransition(t.Status, status) {
		return ErrInvalidTransition
	}

	switch status {
	case StatusInProgress:
		t.StartedAt = &now
	case StatusCompleted:
		t.CompletedAt = &now
	case StatusPending:
		t.StartedAt = nil
		t.CompletedAt = nil
	}
	t.Status = status
	return nil
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func ValidType(t string) bool {
	switch t {
	case TypeFollowUp, TypePreMoveCheck, TypeConfirmationCall, TypeCollectPayment, TypeCustom:
		return true
	}
	return false
}
