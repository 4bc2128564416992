package dto

// CreateCircularRequest publishes a circular.
type CreateCircularRequest struct {
	Title    string `json:"title"    binding:"required,max=200"`
	Body     string `json:"body"     binding:"required,max=5000"`
	Audience string `json:"audience" binding:"omitempty,oneof=all students staff"`
}

// CircularResponse is one circular.
type CircularResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Audience  string `json:"audience"`
	CreatedAt string `json:"created_at"`
}

// CreateEventRequest creates a campus event.
type CreateEventRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Venue       string `json:"venue"       binding:"omitempty,max=200"`
	StartsAt    string `json:"starts_at"   binding:"required"` // RFC 3339
	EndsAt      string `json:"ends_at"     binding:"required"` // RFC 3339
}

// EventResponse is one campus event.
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
}
