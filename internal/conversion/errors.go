package conversion

import "errors"

var (
	// ErrNotChatbotLead is returned when the lead exists but did not come from the chatbot
	ErrNotChatbotLead = errors.New("lead is not a chatbot lead")

	// ErrInvalidDate is returned for an unparseable preferred date override
	ErrInvalidDate = errors.New("invalid preferred date, expected ISO 8601")
)
