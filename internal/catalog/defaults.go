package catalog

// Service is one marketing catalog entry. Prices here are display strings,
// not ledger amounts; real pricing happens in the quote estimator.
type Service struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Features    []string `json:"features"`
	Category    string   `json:"category"`
	Popular     bool     `json:"popular"`
}

// Testimonial is a customer review shown on the public site.
type Testimonial struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	Location string `json:"location"`
	Verified bool   `json:"verified"`
}

// ServiceArea is a region the company serves.
type ServiceArea struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// CompanyStats are the headline numbers on the public site.
type CompanyStats struct {
	HappyClients    string `json:"happyClients"`
	AverageRating   string `json:"averageRating"`
	YearsExperience string `json:"yearsExperience"`
	CompletedMoves  string `json:"completedMoves"`
}

// DefaultServices returns the built-in service catalog.
func DefaultServices() []Service {
	return []Service{
		{
			ID:          "1",
			Title:       "Residential Moving",
			Description: "Complete home moving services with professional packing and careful handling.",
			Price:       "Starting at $299",
			Features:    []string{"Packing & Unpacking", "Furniture Assembly", "Fragile Item Protection", "Storage Solutions"},
			Category:    "moving",
			Popular:     true,
		},
		{
			ID:          "2",
			Title:       "Commercial Moving",
			Description: "Office relocations with minimal downtime and professional handling.",
			Price:       "Custom Quote",
			Features:    []string{"Office Equipment", "IT Setup", "Document Handling", "Weekend Service"},
			Category:    "moving",
		},
		{
			ID:          "3",
			Title:       "House Cleaning",
			Description: "Deep cleaning services for your old and new home.",
			Price:       "Starting at $149",
			Features:    []string{"Deep Cleaning", "Carpet Cleaning", "Window Cleaning", "Post-Construction"},
			Category:    "cleaning",
		},
		{
			ID:          "4",
			Title:       "Office Cleaning",
			Description: "Professional office cleaning services to maintain work environment.",
			Price:       "Starting at $99",
			Features:    []string{"Daily Cleaning", "Sanitization", "Floor Care", "Restroom Maintenance"},
			Category:    "cleaning",
		},
	}
}

// DefaultTestimonials returns the built-in customer reviews.
func DefaultTestimonials() []Testimonial {
	return []Testimonial{
		{
			ID:       "1",
			Name:     "Sarah Johnson",
			Role:     "Homeowner",
			Rating:   5,
			Text:     "SwiftMove made our family's relocation completely stress-free. The team was professional, careful with our belongings, and the cleaning service left our old home spotless. Highly recommend!",
			Location: "Downtown",
			Verified: true,
		},
		{
			ID:       "2",
			Name:     "Mike Chen",
			Role:     "Business Owner",
			Rating:   5,
			Text:     "Outstanding commercial moving service! They relocated our entire office over the weekend with zero downtime. The cleaning crew also did an amazing job preparing our new space.",
			Location: "Westside",
			Verified: true,
		},
		{
			ID:       "3",
			Name:     "Emily Rodriguez",
			Role:     "Property Manager",
			Rating:   5,
			Text:     "We use SwiftMove for all our tenant move-outs. Their cleaning service is thorough and reliable, always leaving units rent-ready. Great communication and fair pricing.",
			Location: "Eastside",
			Verified: true,
		},
		{
			ID:       "4",
			Name:     "David Thompson",
			Role:     "Homeowner",
			Rating:   5,
			Text:     "The team handled our fragile antiques with exceptional care. The packing service was worth every penny, and the post-move cleaning was impeccable. Professional from start to finish.",
			Location: "Northpark",
			Verified: true,
		},
	}
}

// DefaultServiceAreas returns the built-in coverage list.
func DefaultServiceAreas() []ServiceArea {
	return []ServiceArea{
		{ID: "1", Name: "Ohio", Active: true},
		{ID: "2", Name: "Kentucky", Active: true},
		{ID: "3", Name: "Indiana", Active: true},
	}
}

// DefaultStats returns the built-in headline numbers.
func DefaultStats() CompanyStats {
	return CompanyStats{
		HappyClients:    "500+",
		AverageRating:   "5.0",
		YearsExperience: "3+",
		CompletedMoves:  "1000+",
	}
}
