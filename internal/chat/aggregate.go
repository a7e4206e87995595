package chat

import (
	"regexp"
	"strings"
)

// Service interests and types detected from conversation text. Type values
// line up with the booking service catalog.
const (
	InterestMoving   = "moving"
	InterestCleaning = "cleaning"

	TypeResidentialMoving = "residential-moving"
	TypeCommercialMoving  = "commercial-moving"
	TypeHouseCleaning     = "house-cleaning"
	TypeOfficeCleaning    = "office-cleaning"
)

// SessionProfile is the cumulative picture of one chat session, folded from
// the user's messages in chronological order.
type SessionProfile struct {
	Name            string   `json:"name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	ServiceInterest string   `json:"serviceInterest,omitempty"`
	ServiceType     string   `json:"serviceType,omitempty"`
	FromAddress     string   `json:"fromAddress,omitempty"`
	ToAddress       string   `json:"toAddress,omitempty"`
	MoveDate        string   `json:"moveDate,omitempty"`
	PropertySize    string   `json:"propertySize,omitempty"`
	SpecialItems    string   `json:"specialItems,omitempty"`
	Messages        []string `json:"messages"`
}

var (
	namePhrases = []string{"my name is", "i'm", "i am", "call me", "this is"}

	movingKeywords   = []string{"move", "moving", "mover", "relocat", "mudanza", "mudarme"}
	cleaningKeywords = []string{"clean", "cleaning", "maid", "limpieza", "limpiar"}

	residentialKeywords = []string{"home", "house", "apartment", "apt", "condo", "residential", "casa", "apartamento"}
	commercialKeywords  = []string{"office", "business", "commercial", "warehouse", "store", "oficina", "negocio"}

	serviceKeywords = []string{
		"move", "moving", "clean", "cleaning", "quote", "price", "cost", "estimate",
		"help", "service", "book", "schedule", "hello", "hi", "hey", "thanks", "yes", "no",
	}

	streetTokens = []string{
		"street", "st", "avenue", "ave", "road", "rd", "drive", "dr", "lane", "ln",
		"boulevard", "blvd", "court", "ct", "circle", "way", "place", "pl", "terrace",
	}

	specialItemKeywords = []string{
		"piano", "antique", "artwork", "pool table", "safe", "gun", "aquarium",
		"hot tub", "grandfather clock", "appliance",
	}

	// Ordered by specificity. The first pattern that matches any message wins.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?\b`),
		regexp.MustCompile(`(?i)\b(?:next|this)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|week|month|weekend)\b`),
	}

	bedroomPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:bed(?:room)?s?|br)\b`)
	sqftPattern    = regexp.MustCompile(`(?i)\b(\d[\d,]*)\s*(?:sq\.?\s?ft|sqft|square\s+feet)\b`)

	wordPattern = regexp.MustCompile(`[A-Za-z]+`)

	// Whole words only, so "downtown" or "tomorrow" never reads as a
	// direction cue.
	fromCue = regexp.MustCompile(`\bfrom\b`)
	toCue   = regexp.MustCompile(`\bto\b`)
)

// AggregateSession folds a session's user messages into one profile. Contact
// fields take the latest match; everything else keeps the first.
func AggregateSession(messages []string) *SessionProfile {
	p := &SessionProfile{Messages: messages}
	var items []string
	seen := map[string]bool{}

	for _, msg := range messages {
		lower := strings.ToLower(msg)

		if info := ExtractContactInfo(msg); info.Email != "" || info.Phone != "" {
			if info.Email != "" {
				p.Email = info.Email
			}
			if info.Phone != "" {
				p.Phone = info.Phone
			}
		}

		if p.Name == "" {
			p.Name = detectName(msg, lower)
		}

		// Service detection deliberately lets later messages override: "actually
		// I need cleaning, not moving" should stick.
		if containsAny(lower, movingKeywords) {
			p.ServiceInterest = InterestMoving
		} else if containsAny(lower, cleaningKeywords) {
			p.ServiceInterest = InterestCleaning
		}
		if p.ServiceInterest != "" {
			if containsAny(lower, commercialKeywords) {
				p.ServiceType = commercialType(p.ServiceInterest)
			} else if containsAny(lower, residentialKeywords) {
				p.ServiceType = residentialType(p.ServiceInterest)
			}
		}

		if addr := detectAddress(msg); addr != "" {
			switch {
			case fromCue.MatchString(lower) && p.FromAddress == "":
				p.FromAddress = addr
			case toCue.MatchString(lower) && p.ToAddress == "":
				p.ToAddress = addr
			case p.FromAddress == "":
				p.FromAddress = addr
			case p.ToAddress == "":
				p.ToAddress = addr
			}
		}

		if p.MoveDate == "" {
			p.MoveDate = detectDate(msg)
		}
		if p.PropertySize == "" {
			p.PropertySize = detectPropertySize(msg, lower)
		}

		for _, item := range specialItemKeywords {
			if strings.Contains(lower, item) && !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
	}

	p.SpecialItems = strings.Join(items, ", ")
	return p
}

// MissingFields reports what still has to be collected before the lead is
// actionable. Contact fields are always required; service details depend on
// the detected interest.
func (p *SessionProfile) MissingFields() []string {
	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Email == "" {
		missing = append(missing, "email")
	}
	if p.Phone == "" {
		missing = append(missing, "phone")
	}
	switch p.ServiceInterest {
	case InterestMoving:
		if p.FromAddress == "" {
			missing = append(missing, "fromAddress")
		}
		if p.ToAddress == "" {
			missing = append(missing, "toAddress")
		}
		if p.MoveDate == "" {
			missing = append(missing, "moveDate")
		}
		if p.PropertySize == "" {
			missing = append(missing, "propertySize")
		}
	case InterestCleaning:
		if p.FromAddress == "" {
			missing = append(missing, "address")
		}
		if p.PropertySize == "" {
			missing = append(missing, "propertySize")
		}
	}
	return missing
}

func detectName(msg, lower string) string {
	for _, phrase := range namePhrases {
		idx := strings.Index(lower, phrase)
		if idx == -1 {
			continue
		}
		rest := msg[idx+len(phrase):]
		if cut := strings.IndexAny(rest, ",.!?\n"); cut >= 0 {
			rest = rest[:cut]
		}
		words := wordPattern.FindAllString(rest, 4)
		if len(words) == 0 {
			continue
		}
		if len(words) > 3 {
			words = words[:3]
		}
		candidate := strings.Join(words, " ")
		if !containsAny(strings.ToLower(candidate), serviceKeywords) {
			return candidate
		}
	}

	// A bare short reply like "John Smith" is probably an answer to "what's
	// your name?".
	words := strings.Fields(strings.TrimSpace(msg))
	if len(words) == 0 || len(words) > 3 {
		return ""
	}
	for _, w := range words {
		if !wordPattern.MatchString(w) || strings.ContainsAny(w, "0123456789@") {
			return ""
		}
	}
	if containsAny(lower, serviceKeywords) {
		return ""
	}
	return strings.Join(words, " ")
}

var addressPattern = regexp.MustCompile(
	`(?i)\b\d+\s+(?:[A-Za-z]+\s+){0,3}(?:` + strings.Join(streetTokens, "|") + `)\b\.?`)

func detectAddress(msg string) string {
	return strings.TrimSpace(addressPattern.FindString(msg))
}

func detectDate(msg string) string {
	for _, p := range datePatterns {
		if m := p.FindString(msg); m != "" {
			return m
		}
	}
	return ""
}

func detectPropertySize(msg, lower string) string {
	if m := bedroomPattern.FindString(msg); m != "" {
		return m
	}
	if m := sqftPattern.FindString(msg); m != "" {
		return m
	}
	if strings.Contains(lower, "studio") {
		return "studio"
	}
	return ""
}

func commercialType(interest string) string {
	if interest == InterestCleaning {
		return TypeOfficeCleaning
	}
	return TypeCommercialMoving
}

func residentialType(interest string) string {
	if interest == InterestCleaning {
		return TypeHouseCleaning
	}
	return TypeResidentialMoving
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
