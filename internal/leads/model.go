package leads

import (
	"strings"
	"time"
)

// Lead sources.
const (
	SourceContactForm = "contact_form"
	SourceChatbot     = "chatbot"
)

// Lead statuses.
const (
	StatusNew       = "new"
	StatusRead      = "read"
	StatusReplied   = "replied"
	StatusContacted = "contacted"
)

// Lead represents an inbound inquiry: a contact-form submission or a
// chatbot-captured quote request.
type Lead struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Subject            string    `json:"subject"`
	Message            string    `json:"message"`
	Source             string    `json:"source"`
	Status             string    `json:"status"`
	SessionID          string    `json:"sessionId,omitempty"`
	ConvertedToBooking string    `json:"convertedToBooking,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// CreateLeadRequest represents the request body for a contact-form lead.
type CreateLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate validates the create lead request
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMissingMessage
	}
	return nil
}

// SessionLead carries the fields merged into a chatbot lead on upsert.
type SessionLead struct {
	SessionID string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

// ValidStatus reports whether s is one of the allowed lead statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusContacted:
		return true
	}
	return false
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Source string
	Status string
	// ExcludeChatbot keeps the contact-form view free of chatbot leads while
	// still including legacy rows that predate the source column.
	ExcludeChatbot bool
}
