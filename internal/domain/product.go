package domain

// Product is a candidate ingredient returned by the remote product search.
// Nutrients the remote source does not report are zero.
type Product struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Brand   string  `json:"brand,omitempty"`
	Profile Profile `json:"nutrients"`
}

// OFFProduct represents a product record from the Open Food Facts search API
type OFFProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	GenericName string         `json:"generic_name"`
	Brands      string         `json:"brands"`
	Nutriments  map[string]any `json:"nutriments"`
}

// OFFSearchResponse represents the response from the Open Food Facts search API
type OFFSearchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Products []OFFProduct `json:"products"`
}

// SearchRequest represents a product search request
type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}
