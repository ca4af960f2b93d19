package transport

import "storefront_gateway/internal/catalog/domain"

// Product list

// ListProductsRequest holds the query parameters of the product list.
type ListProductsRequest struct {
	Category string `form:"category" validate:"max=64"`
	Search   string `form:"search" validate:"max=100"`
	Brand    string `form:"brand" validate:"max=100"`
	Rin      string `form:"rin" validate:"max=32"`
	Class    string `form:"class" validate:"max=64"`
	Group    string `form:"group" validate:"max=64"`
}

// ProductListResponse is the list view. Error is set when the catalog could
// not be fetched; Items is then empty.
type ProductListResponse struct {
	Items []domain.Product `json:"items"`
	Total int              `json:"total"`
	Error string           `json:"error,omitempty"`
}

// Single product

// ProductRequest holds the query parameters of the single-product lookup.
type ProductRequest struct {
	Related bool `form:"related"`
}

// ProductResponse wraps one product with its related items when requested.
type ProductResponse struct {
	Product domain.Product   `json:"product"`
	Related []domain.Product `json:"related,omitempty"`
}

// RelatedRequest holds the query parameters of the related-items lookup.
type RelatedRequest struct {
	Limit int `form:"limit" validate:"min=0,max=50"`
}

// Brands

// BrandsRequest holds the query parameters of the brand facet.
type BrandsRequest struct {
	Category string `form:"category" validate:"max=64"`
}

// BrandsResponse lists distinct brands.
type BrandsResponse struct {
	Brands []string `json:"brands"`
	Total  int      `json:"total"`
}
