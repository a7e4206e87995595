package chat

import "regexp"

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	// Loose on purpose: optional country code, common separators, 10+ digits.
	phonePattern = regexp.MustCompile(`(\+?1[\s.\-]?)?(\(?\d{3}\)?[\s.\-]?)\d{3}[\s.\-]?\d{4}`)
)

// ContactInfo is the result of scanning one message for contact details.
// Empty fields mean no match.
type ContactInfo struct {
	Email string
	Phone string
}

// ExtractContactInfo returns the first email and phone number found in the
// message. Pure function, safe to call repeatedly.
func ExtractContactInfo(message string) ContactInfo {
	return ContactInfo{
		Email: emailPattern.FindString(message),
		Phone: phonePattern.FindString(message),
	}
}
