package bookings

import (
	"strings"
	"time"

	"github.com/swiftmoveclean/ops-backend/internal/money"
)

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Service types offered.
const (
	ServiceResidentialMoving = "residential-moving"
	ServiceCommercialMoving  = "commercial-moving"
	ServiceHouseCleaning     = "house-cleaning"
	ServiceOfficeCleaning    = "office-cleaning"
	ServiceFullService       = "full-service"
)

// Move sizes.
const (
	SizeStudio      = "studio"
	SizeTwoBedroom  = "2br"
	SizeFourBedroom = "4br"
	SizeOfficeSmall = "office-small"
	SizeOfficeLarge = "office-large"
)

// Preferred time windows.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeFlexible  = "flexible"
)

// OtherPrefix marks a value outside the canonical set. The free text rides
// in the same field after the prefix, e.g. "other:piano only". Values
// without the prefix must come from the canonical constants above.
const OtherPrefix = "other:"

func otherValue(s string) bool {
	rest, ok := strings.CutPrefix(s, OtherPrefix)
	return ok && strings.TrimSpace(rest) != ""
}

// Booking is a scheduled service job. Financial fields stay null until an
// admin prices the job.
type Booking struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Email                string       `json:"email"`
	Phone                string       `json:"phone"`
	ServiceType          string       `json:"serviceType"`
	MoveSize             string       `json:"moveSize,omitempty"`
	CurrentAddress       string       `json:"currentAddress"`
	NewAddress           string       `json:"newAddress,omitempty"`
	PreferredDate        time.Time    `json:"preferredDate"`
	PreferredTime        string       `json:"preferredTime,omitempty"`
	SpecialRequests      string       `json:"specialRequests,omitempty"`
	Status               string       `json:"status"`
	TotalCost            *money.Cents `json:"totalCost,omitempty"`
	ContractorCost       *money.Cents `json:"contractorCost,omitempty"`
	HoursNeeded          *float64     `json:"hoursNeeded,omitempty"`
	ConvertedFromChatbot string       `json:"convertedFromChatbot,omitempty"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// CreateBookingRequest is the public booking-form payload.
type CreateBookingRequest struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	ServiceType     string    `json:"serviceType"`
	MoveSize        string    `json:"moveSize,omitempty"`
	CurrentAddress  string    `json:"currentAddress"`
	NewAddress      string    `json:"newAddress,omitempty"`
	PreferredDate   time.Time `json:"preferredDate"`
	PreferredTime   string    `json:"preferredTime,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
}

// Validate checks the request before it reaches the store.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if !ValidServiceType(r.ServiceType) {
		return ErrInvalidServiceType
	}
	if !ValidMoveSize(r.MoveSize) {
		return ErrInvalidMoveSize
	}
	if !ValidPreferredTime(r.PreferredTime) {
		return ErrInvalidPreferredTime
	}
	if strings.TrimSpace(r.CurrentAddress) == "" {
		return ErrMissingAddress
	}
	if r.PreferredDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// UpdateCostRequest prices a booking. Amounts arrive as dollars.
type UpdateCostRequest struct {
	TotalCost      *money.Cents `json:"totalCost"`
	ContractorCost *money.Cents `json:"contractorCost"`
	HoursNeeded    *float64     `json:"hoursNeeded"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func ValidServiceType(s string) bool {
	switch s {
	case ServiceResidentialMoving, ServiceCommercialMoving,
		ServiceHouseCleaning, ServiceOfficeCleaning, ServiceFullService:
		return true
	}
	return otherValue(s)
}

// ValidMoveSize accepts the canonical sizes, an "other:" value, or empty
// (the field is optional).
func ValidMoveSize(s string) bool {
	switch s {
	case "", SizeStudio, SizeTwoBedroom, SizeFourBedroom,
		SizeOfficeSmall, SizeOfficeLarge:
		return true
	}
	return otherValue(s)
}

// ValidPreferredTime accepts the canonical windows, an "other:" value, or
// empty.
func ValidPreferredTime(s string) bool {
	switch s {
	case "", TimeMorning, TimeAfternoon, TimeEvening, TimeFlexible:
		return true
	}
	return otherValue(s)
}
