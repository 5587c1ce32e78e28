package domain

import "time"

// Service is a catalog entry. Requests and provider profiles refer to it by
// name.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	PriceRange  string    `json:"priceRange,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
