package quotes

import (
	"strings"
	"time"

	"github.com/swiftmoveclean/ops-backend/internal/bookings"
	"github.com/swiftmoveclean/ops-backend/internal/money"
)

// Quote statuses.
const (
	StatusPending  = "pending"
	StatusQuoted   = "quoted"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Quote is a priced service inquiry submitted through the public quote form.
type Quote struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	ServiceType        string       `json:"serviceType"`
	MoveSize           string       `json:"moveSize,omitempty"`
	FromAddress        string       `json:"fromAddress"`
	ToAddress          string       `json:"toAddress,omitempty"`
	AdditionalServices []string     `json:"additionalServices"`
	EstimatedPrice     *money.Cents `json:"estimatedPrice,omitempty"`
	Status             string       `json:"status"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// CreateQuoteRequest is the public quote-form payload.
type CreateQuoteRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	ServiceType        string   `json:"serviceType"`
	MoveSize           string   `json:"moveSize,omitempty"`
	FromAddress        string   `json:"fromAddress"`
	ToAddress          string   `json:"toAddress,omitempty"`
	AdditionalServices []string `json:"additionalServices,omitempty"`
}

func (r *CreateQuoteRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrMissingPhone
	}
	if !bookings.ValidServiceType(r.ServiceType) {
		return ErrInvalidServiceType
	}
	if !bookings.ValidMoveSize(r.MoveSize) {
		return ErrInvalidMoveSize
	}
	if strings.TrimSpace(r.FromAddress) == "" {
		return ErrMissingAddress
	}
	return nil
}

// UpdateQuoteRequest carries the admin follow-up: a firm price, a status
// change, or both.
type UpdateQuoteRequest struct {
	EstimatedPrice *money.Cents `json:"estimatedPrice,omitempty"`
	Status         *string      `json:"status,omitempty"`
}

func (r *UpdateQuoteRequest) Validate() error {
	if r.EstimatedPrice != nil && *r.EstimatedPrice < 0 {
		return ErrNegativePrice
	}
	if r.Status != nil && !ValidStatus(*r.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// ValidStatus reports whether s is one of the allowed quote statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusQuoted, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}
