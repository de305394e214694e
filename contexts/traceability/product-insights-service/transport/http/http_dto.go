package httptransport

import "time"

// ProductDTO is the wire shape of one consumer-facing product view.
type ProductDTO struct {
	ID             string    `json:"id"`
	ProductName    string    `json:"product_name"`
	Category       string    `json:"category"`
	Farmer         string    `json:"farmer"`
	Location       string    `json:"location,omitempty"`
	HarvestDate    string    `json:"harvest_date,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	BlockHash      string    `json:"block_hash"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
	Verifications  int       `json:"verifications"`
}

// ListProductsResponse carries the (possibly filtered) product list.
type ListProductsResponse struct {
	Products []ProductDTO `json:"products"`
	Total    int          `json:"total"`
}

// CategoryStatDTO is one slice of the category distribution.
type CategoryStatDTO struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryStatsResponse lists every known category with its share of the
// ledger, zero counts included.
type CategoryStatsResponse struct {
	Stats        []CategoryStatDTO `json:"stats"`
	TotalRecords int               `json:"total_records"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
