package catalog

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceRange  string `json:"priceRange"`
}

// UpdateServiceRequest fields left empty keep their current value.
type UpdateServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceRange  string `json:"priceRange"`
}
