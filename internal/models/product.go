package models

// Product represents a catalog entry in the inventory system.
type Product struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Status   string `json:"status"`
	Image    string `json:"image"`
}
